package order

import (
	"context"
	"errors"

	"github.com/restopos/inventory-service/internal/order/dto"
)

// ShortfallPolicy decides what an item-level consumption failure does to
// the surrounding order transaction.
type ShortfallPolicy string

const (
	// PolicyStrict aborts the whole transaction on any shortfall.
	PolicyStrict ShortfallPolicy = "strict"
	// PolicyBestEffort records the shortfall and keeps going.
	PolicyBestEffort ShortfallPolicy = "best_effort"
)

// ErrDuplicateOrder means the order id was already consumed; nothing was
// deducted for the repeat.
var ErrDuplicateOrder = errors.New("order already consumed")

// UseCase coordinates one order's consumption across both ledgers inside a
// single transaction.
type UseCase interface {
	ConsumeOrder(ctx context.Context, in *dto.OrderInput) (*dto.OrderResult, error)
	// ValidateOrder is the read-only pre-flight check; it never mutates.
	ValidateOrder(ctx context.Context, in *dto.OrderInput) (*dto.OrderValidation, error)
}
