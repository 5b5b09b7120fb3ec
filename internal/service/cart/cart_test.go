package cart

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/cartify/cartify/internal/models"
)

func initTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.Item{}, &models.User{}, &models.CartLine{}))
	return db
}

func seedItems(t *testing.T, db *gorm.DB) {
	items := []models.Item{
		{Name: "Headphones", Price: 2999, Category: "electronics"},
		{Name: "T-Shirt", Price: 799, Category: "clothing"},
		{Name: "Mug", Price: 299, Category: "home"},
		{Name: "Backpack", Price: 1599, Category: "accessories"},
		{Name: "Watch", Price: 4999, Category: "accessories"},
	}
	for i := range items {
		require.NoError(t, db.Create(&items[i]).Error)
	}
}

func newService(t *testing.T) *Service {
	db := initTestDB(t)
	seedItems(t, db)
	return &Service{DB: db}
}

func TestAddItemSumsQuantities(t *testing.T) {
	s := newService(t)

	_, err := s.AddItem(1, 2, 2)
	require.NoError(t, err)

	line, err := s.AddItem(1, 2, 3)
	require.NoError(t, err)
	require.Equal(t, 5, line.Quantity)
	require.Equal(t, "T-Shirt", line.Item.Name)

	var count int64
	require.NoError(t, s.DB.Model(&models.CartLine{}).
		Where("user_id = ? AND item_id = ?", 1, 2).Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestGetCartJoinsCurrentItem(t *testing.T) {
	s := newService(t)

	_, err := s.AddItem(1, 1, 1)
	require.NoError(t, err)
	_, err = s.AddItem(1, 3, 2)
	require.NoError(t, err)

	// Catalog price changes must show up on the next read.
	require.NoError(t, s.DB.Model(&models.Item{}).Where("id = ?", 1).
		Update("price", 1999).Error)

	lines, err := s.GetCart(1)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	require.Equal(t, uint(1), lines[0].ItemID)
	require.Equal(t, float64(1999), lines[0].Item.Price)
	require.Equal(t, uint(3), lines[1].ItemID)
}

func TestRemoveItem(t *testing.T) {
	s := newService(t)

	_, err := s.AddItem(1, 1, 1)
	require.NoError(t, err)

	existed, err := s.RemoveItem(1, 1)
	require.NoError(t, err)
	require.True(t, existed)

	existed, err = s.RemoveItem(1, 1)
	require.NoError(t, err)
	require.False(t, existed)

	lines, err := s.GetCart(1)
	require.NoError(t, err)
	require.Empty(t, lines)
}

func TestRemoveAbsentLeavesCartUnchanged(t *testing.T) {
	s := newService(t)

	_, err := s.AddItem(1, 2, 4)
	require.NoError(t, err)

	existed, err := s.RemoveItem(1, 5)
	require.NoError(t, err)
	require.False(t, existed)

	lines, err := s.GetCart(1)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.Equal(t, 4, lines[0].Quantity)
}

func TestClearCart(t *testing.T) {
	s := newService(t)

	_, err := s.AddItem(1, 1, 1)
	require.NoError(t, err)
	_, err = s.AddItem(1, 2, 2)
	require.NoError(t, err)

	require.NoError(t, s.ClearCart(1))

	lines, err := s.GetCart(1)
	require.NoError(t, err)
	require.Empty(t, lines)

	// Clearing an already empty cart still succeeds.
	require.NoError(t, s.ClearCart(1))
}

func TestUpdateQuantitySetsExactValue(t *testing.T) {
	s := newService(t)

	_, err := s.AddItem(1, 1, 5)
	require.NoError(t, err)

	line, existed, err := s.UpdateQuantity(1, 1, 2)
	require.NoError(t, err)
	require.True(t, existed)
	require.Equal(t, 2, line.Quantity)
}

func TestUpdateQuantityZeroDeletesLine(t *testing.T) {
	s := newService(t)

	_, err := s.AddItem(1, 1, 5)
	require.NoError(t, err)

	line, existed, err := s.UpdateQuantity(1, 1, 0)
	require.NoError(t, err)
	require.True(t, existed)
	require.Nil(t, line)

	lines, err := s.GetCart(1)
	require.NoError(t, err)
	require.Empty(t, lines)
}

func TestUpdateQuantityAbsentLine(t *testing.T) {
	s := newService(t)

	line, existed, err := s.UpdateQuantity(1, 4, 3)
	require.NoError(t, err)
	require.False(t, existed)
	require.Nil(t, line)
}

func TestMergeCompoundsDuplicateEntries(t *testing.T) {
	s := newService(t)

	err := s.MergeLocalCart(1, []LocalEntry{
		{ItemID: 1, Quantity: 2},
		{ItemID: 1, Quantity: 3},
	})
	require.NoError(t, err)

	lines, err := s.GetCart(1)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.Equal(t, uint(1), lines[0].ItemID)
	require.Equal(t, 5, lines[0].Quantity)
}

func TestMergeAddsToExistingLine(t *testing.T) {
	s := newService(t)

	_, err := s.AddItem(1, 5, 2)
	require.NoError(t, err)

	err = s.MergeLocalCart(1, []LocalEntry{{ItemID: 5, Quantity: 1}})
	require.NoError(t, err)

	lines, err := s.GetCart(1)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.Equal(t, 3, lines[0].Quantity)
}

func TestMergeDefaultsQuantityToOne(t *testing.T) {
	s := newService(t)

	err := s.MergeLocalCart(1, []LocalEntry{
		{ItemID: 2},
		{ItemID: 3, Quantity: -4},
	})
	require.NoError(t, err)

	lines, err := s.GetCart(1)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	require.Equal(t, 1, lines[0].Quantity)
	require.Equal(t, 1, lines[1].Quantity)
}

func TestMergeEmptyIsNoOp(t *testing.T) {
	s := newService(t)

	require.NoError(t, s.MergeLocalCart(1, nil))

	lines, err := s.GetCart(1)
	require.NoError(t, err)
	require.Empty(t, lines)
}

func TestCartsAreScopedPerUser(t *testing.T) {
	s := newService(t)

	_, err := s.AddItem(1, 1, 1)
	require.NoError(t, err)
	_, err = s.AddItem(2, 1, 7)
	require.NoError(t, err)

	require.NoError(t, s.ClearCart(1))

	lines, err := s.GetCart(2)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.Equal(t, 7, lines[0].Quantity)
}
