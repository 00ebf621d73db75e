package liquor

import (
	"context"

	"github.com/restopos/inventory-service/internal/database"
	"github.com/restopos/inventory-service/internal/liquor/dto"
	"github.com/restopos/inventory-service/internal/model"
)

// UseCase is the bottle-based ledger. ConsumeVolume, ConsumeByQuantity and
// ConsumeForOrder participate in a caller-owned transaction; everything
// else runs in its own.
type UseCase interface {
	ConsumeVolume(ctx context.Context, tx *database.Tx, in *dto.ConsumeVolumeInput) (*dto.PourReceipt, error)
	ConsumeByQuantity(ctx context.Context, tx *database.Tx, in *dto.ConsumeQuantityInput) (*dto.CountReceipt, error)
	// ConsumeForOrder dispatches on the item's variant: volume-tracked
	// items pour, everything else counts units.
	ConsumeForOrder(ctx context.Context, tx *database.Tx, in *dto.OrderConsumeInput) (*dto.LiquorReceipt, error)

	AddBottles(ctx context.Context, in *dto.AddBottlesInput) (*model.LiquorItem, error)
	// SweepAutoDiscard applies the residual discard rule to every eligible
	// item. Best effort: items it cannot process are skipped, never fatal.
	SweepAutoDiscard(ctx context.Context) (*dto.SweepReport, error)

	Create(ctx context.Context, in *dto.CreateLiquorInput) (*model.LiquorItem, error)
	Deactivate(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*model.LiquorItem, error)
	FindAll(ctx context.Context, f *dto.LiquorFilters) ([]model.LiquorItem, int, error)
	SetPortionPrice(ctx context.Context, portionID string, price float64) error
}
