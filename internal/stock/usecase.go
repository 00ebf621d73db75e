package stock

import (
	"context"

	"github.com/restopos/inventory-service/internal/database"
	"github.com/restopos/inventory-service/internal/model"
	"github.com/restopos/inventory-service/internal/stock/dto"
)

// UseCase is the stock ledger. Consume participates in a caller-owned
// transaction; the remaining mutating operations run in their own.
type UseCase interface {
	Consume(ctx context.Context, tx *database.Tx, in *dto.ConsumeInput) (*dto.ConsumptionReceipt, error)
	Restock(ctx context.Context, in *dto.RestockInput) (*model.StockItem, error)
	CheckAvailability(ctx context.Context, in *dto.AvailabilityInput) (*dto.AvailabilityResult, error)

	Create(ctx context.Context, in *dto.CreateStockInput) (*model.StockItem, error)
	Deactivate(ctx context.Context, name string) error
	GetByName(ctx context.Context, name string) (*model.StockItem, error)
	FindAll(ctx context.Context, f *dto.StockFilters) ([]model.StockItem, int, error)
}
