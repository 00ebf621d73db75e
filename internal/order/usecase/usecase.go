package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/restopos/inventory-service/internal/database"
	"github.com/restopos/inventory-service/internal/liquor"
	liquordto "github.com/restopos/inventory-service/internal/liquor/dto"
	"github.com/restopos/inventory-service/internal/metrics"
	"github.com/restopos/inventory-service/internal/model"
	"github.com/restopos/inventory-service/internal/order"
	"github.com/restopos/inventory-service/internal/order/dto"
	"github.com/restopos/inventory-service/internal/stock"
	stockdto "github.com/restopos/inventory-service/internal/stock/dto"
	"github.com/restopos/inventory-service/internal/unit"
	"go.uber.org/zap"
)

// Locker guards order-level idempotency across instances. Optional; a nil
// locker disables the guard.
type Locker interface {
	AcquireLock(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key, value string) error
}

// Config makes the asymmetric failure policy explicit: food is best-effort
// by default, liquor is strict. Tests flip them independently.
type Config struct {
	FoodPolicy     order.ShortfallPolicy
	LiquorPolicy   order.ShortfallPolicy
	IdempotencyTTL time.Duration
}

func DefaultConfig() Config {
	return Config{
		FoodPolicy:     order.PolicyBestEffort,
		LiquorPolicy:   order.PolicyStrict,
		IdempotencyTTL: 24 * time.Hour,
	}
}

type coordinator struct {
	txm    database.Runner
	stock  stock.UseCase
	liquor liquor.UseCase
	locker Locker
	cfg    Config
	logger *zap.Logger
}

func NewCoordinator(txm database.Runner, stockUC stock.UseCase, liquorUC liquor.UseCase, locker Locker, cfg Config, log *zap.Logger) order.UseCase {
	return &coordinator{
		txm:    txm,
		stock:  stockUC,
		liquor: liquorUC,
		locker: locker,
		cfg:    cfg,
		logger: log,
	}
}

// ConsumeOrder applies an order against both ledgers in one transaction.
// Food shortfalls are recorded and skipped per the food policy; a liquor
// shortfall under the strict policy rolls everything back, audit entries
// included.
func (c *coordinator) ConsumeOrder(ctx context.Context, in *dto.OrderInput) (*dto.OrderResult, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	lockKey := "order:consumed:" + in.OrderID
	lockValue := uuid.New().String()
	if c.locker != nil {
		ok, err := c.locker.AcquireLock(ctx, lockKey, lockValue, c.cfg.IdempotencyTTL)
		if err != nil {
			// Redis being down must not block sales; the DB transaction is
			// still the source of truth.
			c.logger.Warn("idempotency lock unavailable", zap.Error(err))
		} else if !ok {
			metrics.DuplicateOrders.Inc()
			return nil, order.ErrDuplicateOrder
		}
	}

	res := &dto.OrderResult{OrderID: in.OrderID}

	txErr := c.txm.RunInTx(ctx, func(tx *database.Tx) error {
		for _, item := range in.FoodItems {
			for _, ing := range item.Ingredients {
				required := ing.Quantity * float64(item.SaleQuantity)
				receipt, err := c.stock.Consume(ctx, tx, &stockdto.ConsumeInput{
					Name:     ing.Name,
					Quantity: required,
					Unit:     ing.Unit,
					Reason:   "order sale: " + item.Name,
					OrderRef: in.OrderID,
				})
				if err != nil {
					if c.cfg.FoodPolicy == order.PolicyBestEffort && isShortfall(err) {
						res.MissedIngredients = append(res.MissedIngredients, dto.MissedIngredient{
							Name:     ing.Name,
							Required: required,
							Unit:     ing.Unit,
							Reason:   err.Error(),
						})
						metrics.MissedIngredients.Inc()
						continue
					}
					return err
				}
				res.StockConsumptions = append(res.StockConsumptions, *receipt)
			}
		}

		for _, item := range in.LiquorItems {
			receipt, err := c.liquor.ConsumeForOrder(ctx, tx, &liquordto.OrderConsumeInput{
				ItemID:          item.LiquorID,
				SaleQuantity:    item.SaleQuantity,
				PortionVolumeML: portionVolume(&item),
				OrderRef:        in.OrderID,
			})
			if err != nil {
				if c.cfg.LiquorPolicy == order.PolicyBestEffort && isShortfall(err) {
					res.Notes = append(res.Notes, fmt.Sprintf("liquor item %s skipped: %v", item.LiquorID, err))
					continue
				}
				return err
			}
			res.LiquorConsumptions = append(res.LiquorConsumptions, *receipt)
		}

		return nil
	})
	if txErr != nil {
		if c.locker != nil {
			// Free the idempotency key so a corrected retry can go through.
			if err := c.locker.ReleaseLock(ctx, lockKey, lockValue); err != nil {
				c.logger.Warn("failed to release idempotency lock", zap.Error(err))
			}
		}
		metrics.OrdersAborted.Inc()
		c.logger.Warn("order consumption aborted",
			zap.String("orderId", in.OrderID),
			zap.Error(txErr),
		)
		return &dto.OrderResult{OrderID: in.OrderID}, &model.TransactionAbortedError{Cause: txErr}
	}

	res.Success = true
	metrics.OrdersConsumed.Inc()
	metrics.StockConsumptions.Add(float64(len(res.StockConsumptions)))
	for _, lc := range res.LiquorConsumptions {
		if lc.Pour != nil {
			metrics.LiquorVolumeSold.Add(float64(lc.Pour.Consumed))
			metrics.LiquorVolumeWasted.Add(float64(lc.Pour.Wasted))
			metrics.BottlesCompleted.Add(float64(lc.Pour.BottlesCompleted))
		}
	}

	c.logger.Info("order consumed",
		zap.String("orderId", in.OrderID),
		zap.Int("stockConsumptions", len(res.StockConsumptions)),
		zap.Int("liquorConsumptions", len(res.LiquorConsumptions)),
		zap.Int("missedIngredients", len(res.MissedIngredients)),
	)
	return res, nil
}

// ValidateOrder answers "would this order go through" without touching
// either ledger.
func (c *coordinator) ValidateOrder(ctx context.Context, in *dto.OrderInput) (*dto.OrderValidation, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	v := &dto.OrderValidation{OrderID: in.OrderID, Sufficient: true, CanConsume: true}

	for _, item := range in.FoodItems {
		for _, ing := range item.Ingredients {
			required := ing.Quantity * float64(item.SaleQuantity)
			line := dto.LineCheck{Kind: "ingredient", Name: ing.Name, Required: required, Unit: ing.Unit}

			check, err := c.stock.CheckAvailability(ctx, &stockdto.AvailabilityInput{
				Name:     ing.Name,
				Quantity: required,
				Unit:     ing.Unit,
			})
			switch {
			case err != nil && isShortfall(err):
				line.Reason = err.Error()
			case err != nil:
				return nil, err
			default:
				line.Sufficient = check.Sufficient
				line.Available = check.Available.Float64()
				line.Unit = check.Unit
				line.Required = check.Required.Float64()
			}
			if !line.Sufficient {
				v.Sufficient = false
			}
			v.Lines = append(v.Lines, line)
		}
	}

	for _, item := range in.LiquorItems {
		line := c.checkLiquorLine(ctx, &item)
		if !line.Sufficient {
			v.Sufficient = false
			v.CanConsume = false
		}
		v.Lines = append(v.Lines, line)
	}

	return v, nil
}

func (c *coordinator) checkLiquorLine(ctx context.Context, item *dto.LiquorOrderItem) dto.LineCheck {
	line := dto.LineCheck{Kind: "liquor", Name: item.LiquorID, Required: float64(item.SaleQuantity), Unit: "pcs"}

	li, err := c.liquor.GetByID(ctx, item.LiquorID)
	if err != nil {
		line.Reason = err.Error()
		return line
	}
	line.Name = li.DisplayName()

	if li.Type.TracksVolume() {
		perUnit := li.BottleVolume
		if pv := portionVolume(item); pv != nil {
			perUnit = *pv
		}
		required := perUnit * item.SaleQuantity
		available := li.TotalVolumeRemaining()
		line.Required = float64(required)
		line.Available = float64(available)
		line.Unit = "ml"
		line.Sufficient = required <= available
		if !line.Sufficient {
			line.Reason = (&model.InsufficientVolumeError{
				Item:        li.DisplayName(),
				RequiredML:  required,
				AvailableML: available,
			}).Error()
		}
		return line
	}

	if !li.StockTracked() {
		line.Sufficient = true
		line.Reason = "stock not tracked"
		return line
	}
	line.Available = float64(*li.BottlesInStock)
	line.Sufficient = item.SaleQuantity <= *li.BottlesInStock
	if !line.Sufficient {
		line.Reason = (&model.InsufficientStockError{
			Item:      li.DisplayName(),
			Required:  float64(item.SaleQuantity),
			Available: float64(*li.BottlesInStock),
			Unit:      "pcs",
		}).Error()
	}
	return line
}

func validateInput(in *dto.OrderInput) error {
	if in.OrderID == "" {
		return &model.ValidationError{Message: "order id is required"}
	}
	if len(in.FoodItems) == 0 && len(in.LiquorItems) == 0 {
		return &model.ValidationError{Message: "order has no items"}
	}
	for _, item := range in.FoodItems {
		if item.SaleQuantity <= 0 {
			return &model.ValidationError{Message: fmt.Sprintf("food item %q sale quantity must be positive", item.Name)}
		}
		for _, ing := range item.Ingredients {
			if ing.Quantity <= 0 {
				return &model.ValidationError{Message: fmt.Sprintf("ingredient %q quantity must be positive", ing.Name)}
			}
		}
	}
	for _, item := range in.LiquorItems {
		if item.SaleQuantity <= 0 {
			return &model.ValidationError{Message: fmt.Sprintf("liquor item %q sale quantity must be positive", item.LiquorID)}
		}
		if pv := portionVolume(&item); pv != nil && *pv <= 0 {
			return &model.ValidationError{Message: fmt.Sprintf("liquor item %q portion volume must be positive", item.LiquorID)}
		}
	}
	return nil
}

func portionVolume(item *dto.LiquorOrderItem) *int64 {
	if item.SelectedPortion != nil {
		return &item.SelectedPortion.VolumeML
	}
	return item.VolumeML
}

// isShortfall separates expected, recoverable consumption failures from
// real faults. Only the former are eligible for best-effort handling.
func isShortfall(err error) bool {
	var notFound *model.ItemNotFoundError
	var stockErr *model.InsufficientStockError
	var volErr *model.InsufficientVolumeError
	var unitErr *unit.IncompatibleUnitsError
	return errors.As(err, &notFound) ||
		errors.As(err, &stockErr) ||
		errors.As(err, &volErr) ||
		errors.As(err, &unitErr)
}
