package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/restopos/inventory-service/internal/database"
	"github.com/restopos/inventory-service/internal/model"
	"github.com/restopos/inventory-service/internal/stock"
	"github.com/restopos/inventory-service/internal/stock/dto"
)

type PGRepository struct {
	ext sqlx.ExtContext
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{ext: db}
}

func (r *PGRepository) WithTx(tx *database.Tx) stock.Repository {
	if tx == nil {
		return r
	}
	return &PGRepository{ext: tx.Ext()}
}

func (r *PGRepository) GetByName(ctx context.Context, name string) (*model.StockItem, error) {
	return r.getByName(ctx, name, false)
}

func (r *PGRepository) GetByNameForUpdate(ctx context.Context, name string) (*model.StockItem, error) {
	return r.getByName(ctx, name, true)
}

func (r *PGRepository) getByName(ctx context.Context, name string, forUpdate bool) (*model.StockItem, error) {
	query := `SELECT * FROM stock_items WHERE lower(name) = lower($1) AND is_active = TRUE`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var item model.StockItem
	err := sqlx.GetContext(ctx, r.ext, &item, query, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // caller decides whether absence is an error
		}
		return nil, err
	}
	return &item, nil
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.StockFilters) ([]model.StockItem, int, error) {
	conditions := []string{"is_active = TRUE"}
	args := []interface{}{}

	if f.Category != "" {
		args = append(args, f.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}
	if f.LowStockOnly {
		conditions = append(conditions, "quantity <= minimum_quantity")
	}

	whereClause := " WHERE " + strings.Join(conditions, " AND ")

	var count int
	countQuery := "SELECT count(*) FROM stock_items" + whereClause
	if err := sqlx.GetContext(ctx, r.ext, &count, countQuery, args...); err != nil {
		return nil, 0, err
	}

	query := "SELECT * FROM stock_items" + whereClause + " ORDER BY lower(name) ASC"
	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (page-1)*f.PageSize)
	}

	var items []model.StockItem
	err := sqlx.SelectContext(ctx, r.ext, &items, query, args...)
	return items, count, err
}

func (r *PGRepository) Create(ctx context.Context, item *model.StockItem) error {
	query := `
        INSERT INTO stock_items (
            id, name, category, quantity, unit,
            minimum_quantity, price, is_active, created_at, updated_at
        )
        VALUES (
            :id, :name, :category, :quantity, :unit,
            :minimum_quantity, :price, :is_active, :created_at, :updated_at
        )
    `
	_, err := sqlx.NamedExecContext(ctx, r.ext, query, item)
	return err
}

func (r *PGRepository) UpdateQuantity(ctx context.Context, id string, quantity model.Amount) error {
	query := `UPDATE stock_items SET quantity = $1, updated_at = $2 WHERE id = $3`
	res, err := r.ext.ExecContext(ctx, query, quantity, time.Now(), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("stock item %s not updated", id)
	}
	return nil
}

func (r *PGRepository) Deactivate(ctx context.Context, id string) error {
	query := `UPDATE stock_items SET is_active = FALSE, updated_at = $1 WHERE id = $2`
	_, err := r.ext.ExecContext(ctx, query, time.Now(), id)
	return err
}
