package cart

import (
	"errors"

	"gorm.io/gorm"

	"github.com/cartify/cartify/internal/models"
)

// LocalEntry is one line of a client-held, unauthenticated cart as it
// arrives in the login payload.
type LocalEntry struct {
	ItemID   uint `json:"itemId"`
	Quantity int  `json:"quantity"`
}

type Service struct {
	DB *gorm.DB
}

// GetCart returns the user's lines in insertion order, each joined with
// the item's current catalog attributes.
func (s *Service) GetCart(userID uint) ([]models.CartLine, error) {
	var lines []models.CartLine
	err := s.DB.
		Where("user_id = ?", userID).
		Order("id").
		Preload("Item").
		Find(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// AddItem bumps the existing line's quantity or creates a new line.
func (s *Service) AddItem(userID, itemID uint, quantity int) (*models.CartLine, error) {
	var line models.CartLine
	tx := s.DB.Where("user_id = ? AND item_id = ?", userID, itemID).First(&line)
	if tx.Error == nil {
		line.Quantity += quantity
		if err := s.DB.Save(&line).Error; err != nil {
			return nil, err
		}
		return s.reload(line.ID)
	}
	if !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
		return nil, tx.Error
	}

	line = models.CartLine{
		UserID:   userID,
		ItemID:   itemID,
		Quantity: quantity,
	}
	if err := s.DB.Create(&line).Error; err != nil {
		return nil, err
	}
	return s.reload(line.ID)
}

// UpdateQuantity sets the exact quantity of an existing line; a quantity
// of zero or less deletes it. The bool reports whether a line existed.
func (s *Service) UpdateQuantity(userID, itemID uint, quantity int) (*models.CartLine, bool, error) {
	var line models.CartLine
	tx := s.DB.Where("user_id = ? AND item_id = ?", userID, itemID).First(&line)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, tx.Error
	}

	if quantity <= 0 {
		if err := s.DB.Delete(&line).Error; err != nil {
			return nil, true, err
		}
		return nil, true, nil
	}

	line.Quantity = quantity
	if err := s.DB.Save(&line).Error; err != nil {
		return nil, true, err
	}
	loaded, err := s.reload(line.ID)
	return loaded, true, err
}

// RemoveItem deletes the line if present and reports whether one existed.
func (s *Service) RemoveItem(userID, itemID uint) (bool, error) {
	tx := s.DB.
		Where("user_id = ? AND item_id = ?", userID, itemID).
		Delete(&models.CartLine{})
	if tx.Error != nil {
		return false, tx.Error
	}
	return tx.RowsAffected > 0, nil
}

func (s *Service) ClearCart(userID uint) error {
	return s.DB.Where("user_id = ?", userID).Delete(&models.CartLine{}).Error
}

// MergeLocalCart folds a client's unauthenticated cart into the persisted
// one, entry by entry in list order. Quantities compound with existing
// lines; entries with a non-positive quantity count as 1. The first
// persistence failure aborts the rest; there is no rollback.
func (s *Service) MergeLocalCart(userID uint, entries []LocalEntry) error {
	for _, e := range entries {
		qty := e.Quantity
		if qty < 1 {
			qty = 1
		}

		var line models.CartLine
		tx := s.DB.Where("user_id = ? AND item_id = ?", userID, e.ItemID).First(&line)
		if tx.Error == nil {
			line.Quantity += qty
			if err := s.DB.Save(&line).Error; err != nil {
				return err
			}
			continue
		}
		if !errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return tx.Error
		}

		line = models.CartLine{
			UserID:   userID,
			ItemID:   e.ItemID,
			Quantity: qty,
		}
		if err := s.DB.Create(&line).Error; err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) reload(id uint) (*models.CartLine, error) {
	var line models.CartLine
	if err := s.DB.Preload("Item").First(&line, id).Error; err != nil {
		return nil, err
	}
	return &line, nil
}
