package dto

// PourReceipt reports one volume consumption, including any auto-discarded
// residual.
type PourReceipt struct {
	ItemID           string `json:"itemId"`
	ItemName         string `json:"itemName"`
	Consumed         int64  `json:"consumed"`
	Wasted           int64  `json:"wasted"`
	BottlesCompleted int64  `json:"bottlesCompleted"`
	RemainingBottles int64  `json:"remainingBottles"`
	RemainingVolume  int64  `json:"remainingVolume"`
}

// CountReceipt reports a unit-count consumption. StockTracked is false
// when the item keeps no stock and only the sold counter moved.
type CountReceipt struct {
	ItemID         string `json:"itemId"`
	ItemName       string `json:"itemName"`
	Units          int64  `json:"units"`
	StockTracked   bool   `json:"stockTracked"`
	RemainingUnits int64  `json:"remainingUnits"`
}

type LiquorReceiptKind string

const (
	ReceiptVolume LiquorReceiptKind = "volume"
	ReceiptCount  LiquorReceiptKind = "count"
)

// LiquorReceipt is the variant-agnostic result handed to the coordinator.
type LiquorReceipt struct {
	Kind   LiquorReceiptKind `json:"kind"`
	Pour   *PourReceipt      `json:"pour,omitempty"`
	Count  *CountReceipt     `json:"count,omitempty"`
	ItemID string            `json:"itemId"`
}

type SweepReport struct {
	ItemsChecked   int      `json:"itemsChecked"`
	ItemsDiscarded int      `json:"itemsDiscarded"`
	VolumeWasted   int64    `json:"volumeWasted"`
	SkippedItems   []string `json:"skippedItems,omitempty"`
}
