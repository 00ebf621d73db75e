package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/restopos/inventory-service/internal/audit"
	"github.com/restopos/inventory-service/internal/database"
	"github.com/restopos/inventory-service/internal/liquor"
	"github.com/restopos/inventory-service/internal/liquor/dto"
	"github.com/restopos/inventory-service/internal/metrics"
	"github.com/restopos/inventory-service/internal/model"
	"go.uber.org/zap"
)

type liquorUseCase struct {
	repo     liquor.Repository
	auditLog audit.Repository
	txm      database.Runner
	logger   *zap.Logger
}

func NewLiquorUseCase(repo liquor.Repository, auditLog audit.Repository, txm database.Runner, log *zap.Logger) liquor.UseCase {
	return &liquorUseCase{
		repo:     repo,
		auditLog: auditLog,
		txm:      txm,
		logger:   log,
	}
}

func (uc *liquorUseCase) ConsumeVolume(ctx context.Context, tx *database.Tx, in *dto.ConsumeVolumeInput) (*dto.PourReceipt, error) {
	if tx == nil {
		return nil, &model.ValidationError{Message: "consume requires a transaction"}
	}
	repo := uc.repo.WithTx(tx)

	item, err := repo.GetByIDForUpdate(ctx, in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, &model.ItemNotFoundError{Kind: "liquor", Name: in.ItemID}
	}

	res, err := item.ConsumeVolume(in.VolumeML)
	if err != nil {
		return nil, err
	}
	if err := repo.Update(ctx, item); err != nil {
		return nil, err
	}

	reason := in.Reason
	if reason == "" {
		reason = "pour"
	}
	if err := uc.appendAudit(ctx, tx, item, model.AuditQuantitySubtract, -res.Consumed, "ml", reason, in.OrderRef); err != nil {
		return nil, err
	}
	if res.Wasted > 0 {
		if err := uc.appendAudit(ctx, tx, item, model.AuditQuantitySubtract, -res.Wasted, "ml", "auto-discard", in.OrderRef); err != nil {
			return nil, err
		}
		uc.logger.Info("open bottle residual discarded",
			zap.String("item", item.DisplayName()),
			zap.Int64("wastedMl", res.Wasted),
		)
	}

	return &dto.PourReceipt{
		ItemID:           item.ID,
		ItemName:         item.DisplayName(),
		Consumed:         res.Consumed,
		Wasted:           res.Wasted,
		BottlesCompleted: res.BottlesCompleted,
		RemainingBottles: res.RemainingBottles,
		RemainingVolume:  res.RemainingVolume,
	}, nil
}

func (uc *liquorUseCase) ConsumeByQuantity(ctx context.Context, tx *database.Tx, in *dto.ConsumeQuantityInput) (*dto.CountReceipt, error) {
	if tx == nil {
		return nil, &model.ValidationError{Message: "consume requires a transaction"}
	}
	repo := uc.repo.WithTx(tx)

	item, err := repo.GetByIDForUpdate(ctx, in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, &model.ItemNotFoundError{Kind: "liquor", Name: in.ItemID}
	}

	res, err := item.ConsumeUnits(in.Units)
	if err != nil {
		return nil, err
	}
	if err := repo.Update(ctx, item); err != nil {
		return nil, err
	}

	reason := in.Reason
	if reason == "" {
		reason = "sale"
	}
	if err := uc.appendAudit(ctx, tx, item, model.AuditQuantitySubtract, -res.Units, "pcs", reason, in.OrderRef); err != nil {
		return nil, err
	}

	return &dto.CountReceipt{
		ItemID:         item.ID,
		ItemName:       item.DisplayName(),
		Units:          res.Units,
		StockTracked:   res.StockTracked,
		RemainingUnits: res.RemainingUnits,
	}, nil
}

// ConsumeForOrder resolves the item's variant and consumes accordingly:
// volume-tracked items pour portion volume times sale quantity, counted
// types decrement whole units.
func (uc *liquorUseCase) ConsumeForOrder(ctx context.Context, tx *database.Tx, in *dto.OrderConsumeInput) (*dto.LiquorReceipt, error) {
	if in.SaleQuantity <= 0 {
		return nil, &model.ValidationError{Message: "sale quantity must be positive"}
	}
	if tx == nil {
		return nil, &model.ValidationError{Message: "consume requires a transaction"}
	}

	item, err := uc.repo.WithTx(tx).GetByID(ctx, in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, &model.ItemNotFoundError{Kind: "liquor", Name: in.ItemID}
	}

	if item.Type.TracksVolume() {
		perUnit := item.BottleVolume
		if in.PortionVolumeML != nil {
			perUnit = *in.PortionVolumeML
		}
		if perUnit <= 0 {
			return nil, &model.ValidationError{Message: "portion volume must be positive"}
		}
		pour, err := uc.ConsumeVolume(ctx, tx, &dto.ConsumeVolumeInput{
			ItemID:   in.ItemID,
			VolumeML: perUnit * in.SaleQuantity,
			OrderRef: in.OrderRef,
		})
		if err != nil {
			return nil, err
		}
		return &dto.LiquorReceipt{Kind: dto.ReceiptVolume, Pour: pour, ItemID: item.ID}, nil
	}

	count, err := uc.ConsumeByQuantity(ctx, tx, &dto.ConsumeQuantityInput{
		ItemID:   in.ItemID,
		Units:    in.SaleQuantity,
		OrderRef: in.OrderRef,
	})
	if err != nil {
		return nil, err
	}
	return &dto.LiquorReceipt{Kind: dto.ReceiptCount, Count: count, ItemID: item.ID}, nil
}

func (uc *liquorUseCase) AddBottles(ctx context.Context, in *dto.AddBottlesInput) (*model.LiquorItem, error) {
	var updated *model.LiquorItem
	err := uc.txm.RunInTx(ctx, func(tx *database.Tx) error {
		repo := uc.repo.WithTx(tx)

		item, err := repo.GetByIDForUpdate(ctx, in.ItemID)
		if err != nil {
			return err
		}
		if item == nil {
			return &model.ItemNotFoundError{Kind: "liquor", Name: in.ItemID}
		}

		if err := item.AddBottles(in.Count); err != nil {
			return err
		}
		if err := repo.Update(ctx, item); err != nil {
			return err
		}

		reason := in.Reason
		if reason == "" {
			reason = "restock"
		}
		delta := in.Count
		unitLabel := "pcs"
		if item.Type.TracksVolume() {
			delta = in.Count * item.BottleVolume
			unitLabel = "ml"
		}
		if err := uc.appendAudit(ctx, tx, item, model.AuditQuantityAdd, delta, unitLabel, reason, ""); err != nil {
			return err
		}

		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// SweepAutoDiscard runs the residual discard rule over every candidate,
// each in its own short transaction under the same row lock a pour takes.
// Items that fail are skipped and reported; the sweep itself never fails.
func (uc *liquorUseCase) SweepAutoDiscard(ctx context.Context) (*dto.SweepReport, error) {
	report := &dto.SweepReport{}

	ids, err := uc.repo.FindDiscardCandidates(ctx)
	if err != nil {
		return nil, err
	}
	report.ItemsChecked = len(ids)

	for _, id := range ids {
		err := uc.txm.RunInTx(ctx, func(tx *database.Tx) error {
			repo := uc.repo.WithTx(tx)

			item, err := repo.GetByIDForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if item == nil {
				return nil // deactivated since the candidate scan
			}
			wasted := item.DiscardResidual()
			if wasted == 0 {
				return nil // a concurrent pour already moved the bottle on
			}
			if err := repo.Update(ctx, item); err != nil {
				return err
			}
			if err := uc.appendAudit(ctx, tx, item, model.AuditQuantitySubtract, -wasted, "ml", "auto-discard sweep", ""); err != nil {
				return err
			}
			report.ItemsDiscarded++
			report.VolumeWasted += wasted
			metrics.LiquorVolumeWasted.Add(float64(wasted))
			metrics.BottlesCompleted.Inc()
			return nil
		})
		if err != nil {
			uc.logger.Warn("sweep skipped item", zap.String("itemId", id), zap.Error(err))
			report.SkippedItems = append(report.SkippedItems, id)
		}
	}

	metrics.SweepRuns.Inc()
	if report.ItemsDiscarded > 0 {
		uc.logger.Info("auto-discard sweep completed",
			zap.Int("checked", report.ItemsChecked),
			zap.Int("discarded", report.ItemsDiscarded),
			zap.Int64("volumeWasted", report.VolumeWasted),
		)
	}
	return report, nil
}

func (uc *liquorUseCase) Create(ctx context.Context, in *dto.CreateLiquorInput) (*model.LiquorItem, error) {
	item, err := model.NewLiquorItem(model.NewLiquorItemParams{
		Name:         in.Name,
		Brand:        in.Brand,
		Type:         model.LiquorType(in.Type),
		BottleVolume: in.BottleVolume,
		Bottles:      in.Bottles,
		Price:        in.Price,
	})
	if err != nil {
		return nil, err
	}
	item.ID = uuid.New().String()

	if in.StandardPortions && item.Type.TracksVolume() {
		item.Portions = model.StandardPortions(item.BottleVolume)
		for i := range item.Portions {
			item.Portions[i].ID = uuid.New().String()
			item.Portions[i].LiquorItemID = item.ID
			item.Portions[i].CreatedAt = item.CreatedAt
		}
	}

	err = uc.txm.RunInTx(ctx, func(tx *database.Tx) error {
		if err := uc.repo.WithTx(tx).Create(ctx, item); err != nil {
			return err
		}
		delta := item.TotalVolumeRemaining()
		unitLabel := "ml"
		if !item.Type.TracksVolume() {
			unitLabel = "pcs"
			if item.BottlesInStock != nil {
				delta = *item.BottlesInStock
			} else {
				delta = 0
			}
		}
		return uc.appendAudit(ctx, tx, item, model.AuditCreate, delta, unitLabel, "item created", "")
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("liquor item created",
		zap.String("item", item.DisplayName()),
		zap.String("type", string(item.Type)),
	)
	return item, nil
}

func (uc *liquorUseCase) Deactivate(ctx context.Context, id string) error {
	return uc.txm.RunInTx(ctx, func(tx *database.Tx) error {
		repo := uc.repo.WithTx(tx)
		item, err := repo.GetByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if item == nil {
			return &model.ItemNotFoundError{Kind: "liquor", Name: id}
		}
		if err := repo.Deactivate(ctx, item.ID); err != nil {
			return err
		}
		return uc.appendAudit(ctx, tx, item, model.AuditUpdate, 0, "", "item deactivated", "")
	})
}

func (uc *liquorUseCase) GetByID(ctx context.Context, id string) (*model.LiquorItem, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, &model.ItemNotFoundError{Kind: "liquor", Name: id}
	}
	return item, nil
}

func (uc *liquorUseCase) FindAll(ctx context.Context, f *dto.LiquorFilters) ([]model.LiquorItem, int, error) {
	return uc.repo.FindAll(ctx, f)
}

func (uc *liquorUseCase) SetPortionPrice(ctx context.Context, portionID string, price float64) error {
	if price < 0 {
		return &model.ValidationError{Message: "portion price cannot be negative"}
	}
	return uc.repo.UpdatePortionPrice(ctx, portionID, price)
}

func (uc *liquorUseCase) appendAudit(ctx context.Context, tx *database.Tx, item *model.LiquorItem, action model.AuditAction, delta int64, unitLabel, reason, orderRef string) error {
	var ref *string
	if orderRef != "" {
		ref = &orderRef
	}
	return uc.auditLog.WithTx(tx).Append(ctx, &model.AuditEntry{
		ID:        uuid.New().String(),
		ItemKind:  model.ItemKindLiquor,
		ItemID:    item.ID,
		ItemName:  item.DisplayName(),
		Action:    action,
		Delta:     delta,
		Unit:      unitLabel,
		Reason:    reason,
		OrderRef:  ref,
		CreatedAt: time.Now(),
	})
}
