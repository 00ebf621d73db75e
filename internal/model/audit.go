package model

import "time"

type ItemKind string

const (
	ItemKindStock  ItemKind = "stock"
	ItemKindLiquor ItemKind = "liquor"
)

type AuditAction string

const (
	AuditCreate           AuditAction = "create"
	AuditUpdate           AuditAction = "update"
	AuditQuantityAdd      AuditAction = "quantity_add"
	AuditQuantitySubtract AuditAction = "quantity_subtract"
)

// AuditEntry is one row of the append-only quantity change log. Delta is
// signed, in hundredths of the native unit for stock items and in ml for
// liquor. Entries are never mutated or deleted.
type AuditEntry struct {
	ID        string      `db:"id"`
	ItemKind  ItemKind    `db:"item_kind"`
	ItemID    string      `db:"item_id"`
	ItemName  string      `db:"item_name"`
	Action    AuditAction `db:"action"`
	Delta     int64       `db:"delta"`
	Unit      string      `db:"unit"`
	Reason    string      `db:"reason"`
	OrderRef  *string     `db:"order_ref"`
	CreatedAt time.Time   `db:"created_at"`
}
