package model

import (
	"fmt"
	"strings"
	"time"
)

type StockCategory string

const (
	CategoryIngredients StockCategory = "ingredients"
	CategoryFood        StockCategory = "food"
	CategoryDrinks      StockCategory = "drinks"
	CategorySupplies    StockCategory = "supplies"
)

func (c StockCategory) Valid() bool {
	switch c {
	case CategoryIngredients, CategoryFood, CategoryDrinks, CategorySupplies:
		return true
	}
	return false
}

// StockItem is a discrete ingredient or supply tracked in a convertible
// unit. Quantity is held in the item's native unit as fixed-point
// hundredths. Items are soft-deactivated, never deleted.
type StockItem struct {
	ID              string        `db:"id"`
	Name            string        `db:"name"`
	Category        StockCategory `db:"category"`
	Quantity        Amount        `db:"quantity"`
	Unit            string        `db:"unit"`
	MinimumQuantity Amount        `db:"minimum_quantity"`
	Price           float64       `db:"price"`
	IsActive        bool          `db:"is_active"`
	CreatedAt       time.Time     `db:"created_at"`
	UpdatedAt       time.Time     `db:"updated_at"`
}

// IsLowStock is derived, never stored.
func (s *StockItem) IsLowStock() bool {
	return s.Quantity <= s.MinimumQuantity
}

type NewStockItemParams struct {
	Name            string
	Category        StockCategory
	Quantity        Amount
	Unit            string
	MinimumQuantity Amount
	Price           float64
}

func NewStockItem(p NewStockItemParams) (*StockItem, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return nil, &ValidationError{Message: "stock item name is required"}
	}
	if !p.Category.Valid() {
		return nil, &ValidationError{Message: fmt.Sprintf("unknown stock category %q", p.Category)}
	}
	if strings.TrimSpace(p.Unit) == "" {
		return nil, &ValidationError{Message: "stock item unit is required"}
	}
	if p.Quantity.IsNegative() {
		return nil, &ValidationError{Message: "stock quantity cannot be negative"}
	}
	if p.MinimumQuantity.IsNegative() {
		return nil, &ValidationError{Message: "minimum quantity cannot be negative"}
	}
	now := time.Now()
	return &StockItem{
		Name:            name,
		Category:        p.Category,
		Quantity:        p.Quantity,
		Unit:            strings.ToLower(strings.TrimSpace(p.Unit)),
		MinimumQuantity: p.MinimumQuantity,
		Price:           p.Price,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}
