package main

import (
	"context"
	"log"

	"gorm.io/gorm"

	"github.com/cartify/cartify/internal/config"
	"github.com/cartify/cartify/internal/db"
	"github.com/cartify/cartify/internal/models"
)

var sampleItems = []models.Item{
	{Name: "Wireless Bluetooth Headphones", Price: 2999, Category: "electronics", Image: "https://images.unsplash.com/photo-1505740420928-5e560c06d30e?w=500&h=500&fit=crop&crop=center"},
	{Name: "Smartphone - 128GB", Price: 24999, Category: "electronics", Image: "https://images.unsplash.com/photo-1511707171634-5f897ff02aa9?w=500&h=500&fit=crop&crop=center"},
	{Name: "Cotton T-Shirt - Blue", Price: 799, Category: "clothing", Image: "https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=500&h=500&fit=crop&crop=center"},
	{Name: "Denim Jeans - Slim Fit", Price: 1899, Category: "clothing", Image: "https://images.unsplash.com/photo-1542272604-787c3835535d?w=500&h=500&fit=crop&crop=center"},
	{Name: "Running Shoes - Black", Price: 3499, Category: "footwear", Image: "https://images.unsplash.com/photo-1549298916-b41d501d3772?w=500&h=500&fit=crop&crop=center"},
	{Name: "Casual Sneakers - White", Price: 2799, Category: "footwear", Image: "https://images.unsplash.com/photo-1560769629-975ec94e6a86?w=500&h=500&fit=crop&crop=center"},
	{Name: "Laptop - 15.6 inch", Price: 55999, Category: "electronics", Image: "https://images.unsplash.com/photo-1496181133206-80ce9b88a853?w=500&h=500&fit=crop&crop=center"},
	{Name: "Coffee Mug - Ceramic", Price: 299, Category: "home", Image: "https://images.unsplash.com/photo-1544787219-7f47ccb76574?w=500&h=500&fit=crop&crop=center"},
	{Name: "Backpack - Travel", Price: 1599, Category: "accessories", Image: "https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=500&h=500&fit=crop&crop=center"},
	{Name: "Wrist Watch - Analog", Price: 4999, Category: "accessories", Image: "https://images.unsplash.com/photo-1524592094714-0f0654e20314?w=500&h=500&fit=crop&crop=center"},
	{Name: "Gaming Mouse", Price: 1299, Category: "electronics", Image: "https://images.unsplash.com/photo-1527864550417-7fd91fc51a46?w=500&h=500&fit=crop&crop=center"},
	{Name: "Desk Lamp - LED", Price: 899, Category: "home", Image: "https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d?w=500&h=500&fit=crop&crop=center"},
}

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	database, err := db.Open(context.Background(), configuration)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	log.Println("seeding database with sample items...")

	// Cart lines reference items, clear them first.
	all := database.Session(&gorm.Session{AllowGlobalUpdate: true})
	if err := all.Delete(&models.CartLine{}).Error; err != nil {
		log.Fatalf("clear cart lines: %v", err)
	}
	if err := all.Delete(&models.Item{}).Error; err != nil {
		log.Fatalf("clear items: %v", err)
	}

	for _, item := range sampleItems {
		if err := database.Create(&item).Error; err != nil {
			log.Fatalf("create item %q: %v", item.Name, err)
		}
		log.Printf("created item: %s", item.Name)
	}

	log.Printf("done, %d items seeded", len(sampleItems))
}
