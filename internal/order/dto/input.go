package dto

type Ingredient struct {
	Name     string  `json:"name" binding:"required"`
	Quantity float64 `json:"quantity" binding:"required"`
	Unit     string  `json:"unit" binding:"required"`
}

type FoodItem struct {
	Name         string       `json:"name" binding:"required"`
	SaleQuantity int64        `json:"saleQuantity" binding:"required"`
	Ingredients  []Ingredient `json:"ingredients"`
}

type PortionRef struct {
	Name     string `json:"name"`
	VolumeML int64  `json:"volume" binding:"required"`
}

type LiquorOrderItem struct {
	LiquorID     string      `json:"liquorId" binding:"required"`
	SaleQuantity int64       `json:"saleQuantity" binding:"required"`
	// SelectedPortion applies to volume-tracked items; VolumeML is the raw
	// per-unit fallback when no portion was chosen. Both absent means a
	// full bottle per sale unit.
	SelectedPortion *PortionRef `json:"selectedPortion,omitempty"`
	VolumeML        *int64      `json:"volume,omitempty"`
}

type OrderInput struct {
	OrderID     string            `json:"orderId" binding:"required"`
	FoodItems   []FoodItem        `json:"foodItems"`
	LiquorItems []LiquorOrderItem `json:"liquorItems"`
}
