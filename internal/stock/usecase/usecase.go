package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/restopos/inventory-service/internal/audit"
	"github.com/restopos/inventory-service/internal/database"
	"github.com/restopos/inventory-service/internal/model"
	"github.com/restopos/inventory-service/internal/stock"
	"github.com/restopos/inventory-service/internal/stock/dto"
	"github.com/restopos/inventory-service/internal/unit"
	"go.uber.org/zap"
)

type stockUseCase struct {
	repo     stock.Repository
	auditLog audit.Repository
	txm      database.Runner
	logger   *zap.Logger
}

func NewStockUseCase(repo stock.Repository, auditLog audit.Repository, txm database.Runner, log *zap.Logger) stock.UseCase {
	return &stockUseCase{
		repo:     repo,
		auditLog: auditLog,
		txm:      txm,
		logger:   log,
	}
}

// Consume decrements an item inside the caller's transaction. The row is
// locked before the sufficiency check so two concurrent orders cannot both
// pass it against a stale quantity.
func (uc *stockUseCase) Consume(ctx context.Context, tx *database.Tx, in *dto.ConsumeInput) (*dto.ConsumptionReceipt, error) {
	if in.Quantity <= 0 {
		return nil, &model.ValidationError{Message: "consume quantity must be positive"}
	}
	if tx == nil {
		return nil, &model.ValidationError{Message: "consume requires a transaction"}
	}

	repo := uc.repo.WithTx(tx)

	item, err := repo.GetByNameForUpdate(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, &model.ItemNotFoundError{Kind: "stock", Name: in.Name}
	}

	required, err := unit.Convert(model.AmountFromFloat(in.Quantity), in.Unit, item.Unit)
	if err != nil {
		return nil, err
	}
	if required > item.Quantity {
		return nil, &model.InsufficientStockError{
			Item:          item.Name,
			Requested:     in.Quantity,
			RequestedUnit: in.Unit,
			Required:      required.Float64(),
			Available:     item.Quantity.Float64(),
			Unit:          item.Unit,
		}
	}

	remaining := item.Quantity.Sub(required)
	if err := repo.UpdateQuantity(ctx, item.ID, remaining); err != nil {
		return nil, err
	}

	if err := uc.appendAudit(ctx, tx, item, model.AuditQuantitySubtract, -int64(required), in.Reason, in.OrderRef); err != nil {
		return nil, err
	}

	item.Quantity = remaining
	if item.IsLowStock() {
		uc.logger.Warn("stock item below minimum",
			zap.String("item", item.Name),
			zap.String("remaining", remaining.String()),
			zap.String("unit", item.Unit),
		)
	}

	return &dto.ConsumptionReceipt{
		ItemID:            item.ID,
		ItemName:          item.Name,
		RequestedQuantity: in.Quantity,
		RequestedUnit:     in.Unit,
		Consumed:          required,
		Unit:              item.Unit,
		Remaining:         remaining,
		LowStock:          item.IsLowStock(),
	}, nil
}

// Restock adjusts quantity directly in the item's native unit, for manual
// corrections. Subtract clamps at zero by policy rather than failing.
func (uc *stockUseCase) Restock(ctx context.Context, in *dto.RestockInput) (*model.StockItem, error) {
	if in.Quantity <= 0 {
		return nil, &model.ValidationError{Message: "restock quantity must be positive"}
	}
	if in.Op != dto.RestockAdd && in.Op != dto.RestockSubtract {
		return nil, &model.ValidationError{Message: "restock operation must be add or subtract"}
	}

	var updated *model.StockItem
	err := uc.txm.RunInTx(ctx, func(tx *database.Tx) error {
		repo := uc.repo.WithTx(tx)

		item, err := repo.GetByNameForUpdate(ctx, in.Name)
		if err != nil {
			return err
		}
		if item == nil {
			return &model.ItemNotFoundError{Kind: "stock", Name: in.Name}
		}

		change := model.AmountFromFloat(in.Quantity)
		var remaining model.Amount
		action := model.AuditQuantityAdd
		if in.Op == dto.RestockAdd {
			remaining = item.Quantity.Add(change)
		} else {
			action = model.AuditQuantitySubtract
			remaining = item.Quantity.Sub(change)
			if remaining.IsNegative() {
				remaining = 0
			}
		}
		delta := int64(remaining.Sub(item.Quantity))

		if err := repo.UpdateQuantity(ctx, item.ID, remaining); err != nil {
			return err
		}
		if err := uc.appendAudit(ctx, tx, item, action, delta, in.Reason, ""); err != nil {
			return err
		}

		item.Quantity = remaining
		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// CheckAvailability is the non-mutating pre-flight check.
func (uc *stockUseCase) CheckAvailability(ctx context.Context, in *dto.AvailabilityInput) (*dto.AvailabilityResult, error) {
	if in.Quantity <= 0 {
		return nil, &model.ValidationError{Message: "quantity must be positive"}
	}

	item, err := uc.repo.GetByName(ctx, in.Name)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, &model.ItemNotFoundError{Kind: "stock", Name: in.Name}
	}

	required, err := unit.Convert(model.AmountFromFloat(in.Quantity), in.Unit, item.Unit)
	if err != nil {
		return nil, err
	}

	return &dto.AvailabilityResult{
		ItemName:   item.Name,
		Sufficient: required <= item.Quantity,
		Required:   required,
		Available:  item.Quantity,
		Unit:       item.Unit,
	}, nil
}

func (uc *stockUseCase) Create(ctx context.Context, in *dto.CreateStockInput) (*model.StockItem, error) {
	item, err := model.NewStockItem(model.NewStockItemParams{
		Name:            in.Name,
		Category:        model.StockCategory(in.Category),
		Quantity:        model.AmountFromFloat(in.Quantity),
		Unit:            in.Unit,
		MinimumQuantity: model.AmountFromFloat(in.MinimumQuantity),
		Price:           in.Price,
	})
	if err != nil {
		return nil, err
	}
	if !unit.Known(item.Unit) {
		return nil, &model.ValidationError{Message: "unknown unit " + item.Unit}
	}
	item.ID = uuid.New().String()

	err = uc.txm.RunInTx(ctx, func(tx *database.Tx) error {
		if err := uc.repo.WithTx(tx).Create(ctx, item); err != nil {
			return err
		}
		return uc.appendAudit(ctx, tx, item, model.AuditCreate, int64(item.Quantity), "item created", "")
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("stock item created",
		zap.String("item", item.Name),
		zap.String("category", string(item.Category)),
	)
	return item, nil
}

func (uc *stockUseCase) Deactivate(ctx context.Context, name string) error {
	return uc.txm.RunInTx(ctx, func(tx *database.Tx) error {
		repo := uc.repo.WithTx(tx)
		item, err := repo.GetByNameForUpdate(ctx, name)
		if err != nil {
			return err
		}
		if item == nil {
			return &model.ItemNotFoundError{Kind: "stock", Name: name}
		}
		if err := repo.Deactivate(ctx, item.ID); err != nil {
			return err
		}
		return uc.appendAudit(ctx, tx, item, model.AuditUpdate, 0, "item deactivated", "")
	})
}

func (uc *stockUseCase) GetByName(ctx context.Context, name string) (*model.StockItem, error) {
	item, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, &model.ItemNotFoundError{Kind: "stock", Name: name}
	}
	return item, nil
}

func (uc *stockUseCase) FindAll(ctx context.Context, f *dto.StockFilters) ([]model.StockItem, int, error) {
	return uc.repo.FindAll(ctx, f)
}

func (uc *stockUseCase) appendAudit(ctx context.Context, tx *database.Tx, item *model.StockItem, action model.AuditAction, delta int64, reason, orderRef string) error {
	var ref *string
	if orderRef != "" {
		ref = &orderRef
	}
	return uc.auditLog.WithTx(tx).Append(ctx, &model.AuditEntry{
		ID:        uuid.New().String(),
		ItemKind:  model.ItemKindStock,
		ItemID:    item.ID,
		ItemName:  item.Name,
		Action:    action,
		Delta:     delta,
		Unit:      item.Unit,
		Reason:    reason,
		OrderRef:  ref,
		CreatedAt: time.Now(),
	})
}
