package dto

import "github.com/restopos/inventory-service/internal/model"

type ConsumeInput struct {
	Name     string
	Quantity float64
	Unit     string
	Reason   string
	OrderRef string
}

type RestockOp string

const (
	RestockAdd      RestockOp = "add"
	RestockSubtract RestockOp = "subtract"
)

// RestockInput is a direct native-unit correction, no unit conversion.
type RestockInput struct {
	Name     string
	Quantity float64
	Op       RestockOp
	Reason   string
}

type AvailabilityInput struct {
	Name     string
	Quantity float64
	Unit     string
}

type CreateStockInput struct {
	Name            string  `json:"name" binding:"required"`
	Category        string  `json:"category" binding:"required"`
	Quantity        float64 `json:"quantity"`
	Unit            string  `json:"unit" binding:"required"`
	MinimumQuantity float64 `json:"minimumQuantity"`
	Price           float64 `json:"price"`
}

type StockFilters struct {
	Category     model.StockCategory
	LowStockOnly bool
	Page         int
	PageSize     int
}
