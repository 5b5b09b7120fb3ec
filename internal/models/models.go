package models

type Item struct {
	ID       uint    `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name     string  `gorm:"not null"                  json:"name"`
	Price    float64 `gorm:"not null;check:price >= 0" json:"price"`
	Category string  `gorm:"index;not null"            json:"category"`
	Image    string  `json:"image,omitempty"`
}

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string `gorm:"unique;not null"          json:"email"`
	PasswordHash string `gorm:"not null"                 json:"-"`
}

// CartLine is one (user, item) row of a persisted cart. At most one line
// exists per pair; adding the same item again bumps Quantity instead.
type CartLine struct {
	ID       uint `gorm:"primaryKey"                         json:"id"`
	UserID   uint `gorm:"not null;uniqueIndex:idx_user_item" json:"user_id"`
	ItemID   uint `gorm:"not null;uniqueIndex:idx_user_item" json:"item_id"`
	Quantity int  `gorm:"default:1;check:quantity > 0"       json:"quantity"`
	Item     Item `gorm:"foreignKey:ItemID"                  json:"item"`
}
