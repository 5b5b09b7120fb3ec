package items

import (
	"errors"

	"gorm.io/gorm"

	"github.com/cartify/cartify/internal/models"
)

// Filter narrows a catalog listing. Zero values mean "no constraint".
type Filter struct {
	Category string
	MinPrice *float64
	MaxPrice *float64
}

func (f Filter) apply(q *gorm.DB) *gorm.DB {
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.MinPrice != nil {
		q = q.Where("price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("price <= ?", *f.MaxPrice)
	}
	return q
}

type CreateInput struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Image    string  `json:"image"`
}

// UpdateInput is a partial patch; nil fields are left untouched.
type UpdateInput struct {
	Name     *string  `json:"name"`
	Price    *float64 `json:"price"`
	Category *string  `json:"category"`
	Image    *string  `json:"image"`
}

type Service struct {
	DB *gorm.DB
}

func (s *Service) List(f Filter) ([]models.Item, error) {
	var items []models.Item
	if err := f.apply(s.DB).Order("id").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Get returns (nil, nil) when no item with the given id exists.
func (s *Service) Get(id uint) (*models.Item, error) {
	var item models.Item
	if err := s.DB.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (s *Service) Create(in CreateInput) (*models.Item, error) {
	item := models.Item{
		Name:     in.Name,
		Price:    in.Price,
		Category: in.Category,
		Image:    in.Image,
	}
	if err := s.DB.Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Service) Update(id uint, in UpdateInput) (*models.Item, error) {
	var item models.Item
	if err := s.DB.First(&item, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	if in.Name != nil {
		item.Name = *in.Name
	}
	if in.Price != nil {
		item.Price = *in.Price
	}
	if in.Category != nil {
		item.Category = *in.Category
	}
	if in.Image != nil {
		item.Image = *in.Image
	}

	if err := s.DB.Save(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Service) Delete(id uint) error {
	return s.DB.Delete(&models.Item{}, id).Error
}
