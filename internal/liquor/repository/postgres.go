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
	"github.com/restopos/inventory-service/internal/liquor"
	"github.com/restopos/inventory-service/internal/liquor/dto"
	"github.com/restopos/inventory-service/internal/model"
)

type PGRepository struct {
	ext sqlx.ExtContext
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{ext: db}
}

func (r *PGRepository) WithTx(tx *database.Tx) liquor.Repository {
	if tx == nil {
		return r
	}
	return &PGRepository{ext: tx.Ext()}
}

func (r *PGRepository) GetByID(ctx context.Context, id string) (*model.LiquorItem, error) {
	return r.getByID(ctx, id, false)
}

func (r *PGRepository) GetByIDForUpdate(ctx context.Context, id string) (*model.LiquorItem, error) {
	return r.getByID(ctx, id, true)
}

func (r *PGRepository) getByID(ctx context.Context, id string, forUpdate bool) (*model.LiquorItem, error) {
	query := `SELECT * FROM liquor_items WHERE id = $1 AND is_active = TRUE`
	if forUpdate {
		query += ` FOR UPDATE`
	}
	var item model.LiquorItem
	err := sqlx.GetContext(ctx, r.ext, &item, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if err := r.loadPortions(ctx, &item); err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *PGRepository) loadPortions(ctx context.Context, item *model.LiquorItem) error {
	query := `SELECT * FROM liquor_portions WHERE liquor_item_id = $1 ORDER BY volume_ml ASC`
	return sqlx.SelectContext(ctx, r.ext, &item.Portions, query, item.ID)
}

func (r *PGRepository) FindAll(ctx context.Context, f *dto.LiquorFilters) ([]model.LiquorItem, int, error) {
	conditions := []string{"is_active = TRUE"}
	args := []interface{}{}

	if f.Type != "" {
		args = append(args, f.Type)
		conditions = append(conditions, fmt.Sprintf("type = $%d", len(args)))
	}

	whereClause := " WHERE " + strings.Join(conditions, " AND ")

	var count int
	countQuery := "SELECT count(*) FROM liquor_items" + whereClause
	if err := sqlx.GetContext(ctx, r.ext, &count, countQuery, args...); err != nil {
		return nil, 0, err
	}

	query := "SELECT * FROM liquor_items" + whereClause + " ORDER BY lower(name), lower(brand)"
	if f.PageSize > 0 {
		page := f.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.PageSize, (page-1)*f.PageSize)
	}

	var items []model.LiquorItem
	if err := sqlx.SelectContext(ctx, r.ext, &items, query, args...); err != nil {
		return nil, 0, err
	}
	for i := range items {
		if err := r.loadPortions(ctx, &items[i]); err != nil {
			return nil, 0, err
		}
	}
	return items, count, nil
}

func (r *PGRepository) FindDiscardCandidates(ctx context.Context) ([]string, error) {
	query := `
        SELECT id FROM liquor_items
        WHERE is_active = TRUE
          AND type = $1
          AND bottles_in_stock > 0
          AND current_bottle_volume > 0
          AND current_bottle_volume <= $2
    `
	var ids []string
	err := sqlx.SelectContext(ctx, r.ext, &ids, query, model.LiquorHard, model.AutoDiscardThresholdML)
	return ids, err
}

func (r *PGRepository) Create(ctx context.Context, item *model.LiquorItem) error {
	query := `
        INSERT INTO liquor_items (
            id, name, brand, type, bottle_volume, bottles_in_stock,
            current_bottle_volume, wasted_volume, total_sold_volume,
            total_sold_items, price, is_active, created_at, updated_at
        )
        VALUES (
            :id, :name, :brand, :type, :bottle_volume, :bottles_in_stock,
            :current_bottle_volume, :wasted_volume, :total_sold_volume,
            :total_sold_items, :price, :is_active, :created_at, :updated_at
        )
    `
	if _, err := sqlx.NamedExecContext(ctx, r.ext, query, item); err != nil {
		return err
	}
	for i := range item.Portions {
		if err := r.insertPortion(ctx, &item.Portions[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *PGRepository) insertPortion(ctx context.Context, p *model.Portion) error {
	query := `
        INSERT INTO liquor_portions (id, liquor_item_id, name, volume_ml, price, created_at)
        VALUES (:id, :liquor_item_id, :name, :volume_ml, :price, :created_at)
    `
	_, err := sqlx.NamedExecContext(ctx, r.ext, query, p)
	return err
}

// Update persists the bottle state and the cumulative counters.
func (r *PGRepository) Update(ctx context.Context, item *model.LiquorItem) error {
	item.UpdatedAt = time.Now()
	query := `
        UPDATE liquor_items SET
            bottles_in_stock = :bottles_in_stock,
            current_bottle_volume = :current_bottle_volume,
            wasted_volume = :wasted_volume,
            total_sold_volume = :total_sold_volume,
            total_sold_items = :total_sold_items,
            price = :price,
            updated_at = :updated_at
        WHERE id = :id
    `
	res, err := sqlx.NamedExecContext(ctx, r.ext, query, item)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("liquor item %s not updated", item.ID)
	}
	return nil
}

func (r *PGRepository) Deactivate(ctx context.Context, id string) error {
	query := `UPDATE liquor_items SET is_active = FALSE, updated_at = $1 WHERE id = $2`
	_, err := r.ext.ExecContext(ctx, query, time.Now(), id)
	return err
}

func (r *PGRepository) UpdatePortionPrice(ctx context.Context, portionID string, price float64) error {
	query := `UPDATE liquor_portions SET price = $1 WHERE id = $2`
	res, err := r.ext.ExecContext(ctx, query, price, portionID)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("portion %s not found", portionID)
	}
	return nil
}
