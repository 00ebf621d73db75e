package stock

import (
	"context"

	"github.com/restopos/inventory-service/internal/database"
	"github.com/restopos/inventory-service/internal/model"
	"github.com/restopos/inventory-service/internal/stock/dto"
)

type Repository interface {
	// WithTx returns a copy bound to the transaction; a nil tx returns the
	// receiver unchanged.
	WithTx(tx *database.Tx) Repository

	// Lookups are case-insensitive exact name matches on active items.
	// A miss returns nil, nil (caller decides whether that is an error).
	GetByName(ctx context.Context, name string) (*model.StockItem, error)
	// GetByNameForUpdate takes the row lock that serializes the
	// check-sufficiency-then-decrement sequence. Only valid inside a tx.
	GetByNameForUpdate(ctx context.Context, name string) (*model.StockItem, error)
	FindAll(ctx context.Context, f *dto.StockFilters) ([]model.StockItem, int, error)

	Create(ctx context.Context, item *model.StockItem) error
	UpdateQuantity(ctx context.Context, id string, quantity model.Amount) error
	Deactivate(ctx context.Context, id string) error
}
