package audit

import (
	"context"

	"github.com/restopos/inventory-service/internal/database"
	"github.com/restopos/inventory-service/internal/model"
)

// Filters selects audit entries for the read-only reporting stream.
// Results are always ordered by created_at ascending.
type Filters struct {
	ItemKind model.ItemKind
	ItemID   string
	ItemName string
	Action   model.AuditAction
	OrderRef string
	Page     int
	PageSize int
}

type Repository interface {
	WithTx(tx *database.Tx) Repository
	Append(ctx context.Context, entry *model.AuditEntry) error
	List(ctx context.Context, f *Filters) ([]model.AuditEntry, int, error)
}
