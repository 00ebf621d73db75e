package liquor

import (
	"context"

	"github.com/restopos/inventory-service/internal/database"
	"github.com/restopos/inventory-service/internal/liquor/dto"
	"github.com/restopos/inventory-service/internal/model"
)

type Repository interface {
	WithTx(tx *database.Tx) Repository

	// GetByID loads the item with its portions; a miss returns nil, nil.
	GetByID(ctx context.Context, id string) (*model.LiquorItem, error)
	// GetByIDForUpdate locks the row; the auto-discard sweep and in-flight
	// pours serialize on this lock. Only valid inside a tx.
	GetByIDForUpdate(ctx context.Context, id string) (*model.LiquorItem, error)
	FindAll(ctx context.Context, f *dto.LiquorFilters) ([]model.LiquorItem, int, error)
	// FindDiscardCandidates returns ids of active hard liquor items whose
	// open bottle is at or below the discard threshold.
	FindDiscardCandidates(ctx context.Context) ([]string, error)

	Create(ctx context.Context, item *model.LiquorItem) error
	Update(ctx context.Context, item *model.LiquorItem) error
	Deactivate(ctx context.Context, id string) error
	UpdatePortionPrice(ctx context.Context, portionID string, price float64) error
}
