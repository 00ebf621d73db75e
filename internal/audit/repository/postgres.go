package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/restopos/inventory-service/internal/audit"
	"github.com/restopos/inventory-service/internal/database"
	"github.com/restopos/inventory-service/internal/model"
)

type PGRepository struct {
	ext sqlx.ExtContext
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{ext: db}
}

func (r *PGRepository) WithTx(tx *database.Tx) audit.Repository {
	if tx == nil {
		return r
	}
	return &PGRepository{ext: tx.Ext()}
}

func (r *PGRepository) Append(ctx context.Context, entry *model.AuditEntry) error {
	query := `
        INSERT INTO audit_entries (
            id, item_kind, item_id, item_name, action,
            delta, unit, reason, order_ref, created_at
        )
        VALUES (
            :id, :item_kind, :item_id, :item_name, :action,
            :delta, :unit, :reason, :order_ref, :created_at
        )
    `
	_, err := sqlx.NamedExecContext(ctx, r.ext, query, entry)
	return err
}

func (r *PGRepository) List(ctx context.Context, f *audit.Filters) ([]model.AuditEntry, int, error) {
	conditions := []string{}
	args := []interface{}{}

	add := func(cond string, val interface{}) {
		args = append(args, val)
		conditions = append(conditions, fmt.Sprintf(cond, len(args)))
	}

	if f.ItemKind != "" {
		add("item_kind = $%d", f.ItemKind)
	}
	if f.ItemID != "" {
		add("item_id = $%d", f.ItemID)
	}
	if f.ItemName != "" {
		add("lower(item_name) = lower($%d)", f.ItemName)
	}
	if f.Action != "" {
		add("action = $%d", f.Action)
	}
	if f.OrderRef != "" {
		add("order_ref = $%d", f.OrderRef)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var count int
	countQuery := "SELECT count(*) FROM audit_entries" + whereClause
	if err := sqlx.GetContext(ctx, r.ext, &count, countQuery, args...); err != nil {
		return nil, 0, err
	}

	query := "SELECT * FROM audit_entries" + whereClause + " ORDER BY created_at ASC"
	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (page-1)*f.PageSize)
	}

	var entries []model.AuditEntry
	err := sqlx.SelectContext(ctx, r.ext, &entries, query, args...)
	return entries, count, err
}
