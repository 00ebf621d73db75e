package dto

import "github.com/restopos/inventory-service/internal/model"

// ConsumptionReceipt reports one successful ledger decrement.
type ConsumptionReceipt struct {
	ItemID            string       `json:"itemId"`
	ItemName          string       `json:"itemName"`
	RequestedQuantity float64      `json:"requestedQuantity"`
	RequestedUnit     string       `json:"requestedUnit"`
	Consumed          model.Amount `json:"consumed"`
	Unit              string       `json:"unit"`
	Remaining         model.Amount `json:"remaining"`
	LowStock          bool         `json:"lowStock"`
}

type AvailabilityResult struct {
	ItemName   string       `json:"itemName"`
	Sufficient bool         `json:"sufficient"`
	Required   model.Amount `json:"required"`
	Available  model.Amount `json:"available"`
	Unit       string       `json:"unit"`
}
