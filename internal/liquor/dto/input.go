package dto

import "github.com/restopos/inventory-service/internal/model"

type CreateLiquorInput struct {
	Name             string  `json:"name" binding:"required"`
	Brand            string  `json:"brand"`
	Type             string  `json:"type" binding:"required"`
	BottleVolume     int64   `json:"bottleVolume"`
	Bottles          *int64  `json:"bottles"`
	Price            float64 `json:"price"`
	StandardPortions bool    `json:"standardPortions"`
}

type AddBottlesInput struct {
	ItemID string
	Count  int64
	Reason string
}

type ConsumeVolumeInput struct {
	ItemID   string
	VolumeML int64
	Reason   string
	OrderRef string
}

type ConsumeQuantityInput struct {
	ItemID   string
	Units    int64
	Reason   string
	OrderRef string
}

// OrderConsumeInput is the coordinator's per-line request. For
// volume-tracked items the volume per sale unit comes from the selected
// portion when present, otherwise the full bottle volume.
type OrderConsumeInput struct {
	ItemID          string
	SaleQuantity    int64
	PortionVolumeML *int64
	OrderRef        string
}

type LiquorFilters struct {
	Type     model.LiquorType
	Page     int
	PageSize int
}
