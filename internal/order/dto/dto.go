package dto

import (
	liquordto "github.com/restopos/inventory-service/internal/liquor/dto"
	stockdto "github.com/restopos/inventory-service/internal/stock/dto"
)

// MissedIngredient records a food-side shortfall that did not block the
// order.
type MissedIngredient struct {
	Name     string  `json:"name"`
	Required float64 `json:"required"`
	Unit     string  `json:"unit"`
	Reason   string  `json:"reason"`
}

type OrderResult struct {
	OrderID            string                        `json:"orderId"`
	Success            bool                          `json:"success"`
	StockConsumptions  []stockdto.ConsumptionReceipt `json:"stockConsumptions"`
	LiquorConsumptions []liquordto.LiquorReceipt     `json:"liquorConsumptions"`
	MissedIngredients  []MissedIngredient            `json:"missedIngredients,omitempty"`
	Notes              []string                      `json:"processingNotes,omitempty"`
}

type LineCheck struct {
	Kind       string  `json:"kind"` // "ingredient" or "liquor"
	Name       string  `json:"name"`
	Sufficient bool    `json:"sufficient"`
	Required   float64 `json:"required"`
	Available  float64 `json:"available"`
	Unit       string  `json:"unit"`
	Reason     string  `json:"reason,omitempty"`
}

type OrderValidation struct {
	OrderID string `json:"orderId"`
	// Sufficient means every line passes. CanConsume only requires the
	// strict liquor lines to pass; food shortfalls would be recorded, not
	// blocking.
	Sufficient bool        `json:"sufficient"`
	CanConsume bool        `json:"canConsume"`
	Lines      []LineCheck `json:"lines"`
}
