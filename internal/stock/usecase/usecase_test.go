package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/restopos/inventory-service/internal/audit"
	"github.com/restopos/inventory-service/internal/database"
	"github.com/restopos/inventory-service/internal/model"
	"github.com/restopos/inventory-service/internal/stock"
	"github.com/restopos/inventory-service/internal/stock/dto"
	"github.com/restopos/inventory-service/internal/unit"
)

type fakeStockRepo struct {
	items map[string]*model.StockItem // keyed by id
}

func newFakeStockRepo(items ...*model.StockItem) *fakeStockRepo {
	r := &fakeStockRepo{items: make(map[string]*model.StockItem)}
	for _, item := range items {
		r.items[item.ID] = item
	}
	return r
}

func (r *fakeStockRepo) WithTx(tx *database.Tx) stock.Repository { return r }

func (r *fakeStockRepo) GetByName(ctx context.Context, name string) (*model.StockItem, error) {
	for _, item := range r.items {
		if item.IsActive && strings.EqualFold(item.Name, name) {
			cp := *item
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeStockRepo) GetByNameForUpdate(ctx context.Context, name string) (*model.StockItem, error) {
	return r.GetByName(ctx, name)
}

func (r *fakeStockRepo) FindAll(ctx context.Context, f *dto.StockFilters) ([]model.StockItem, int, error) {
	var out []model.StockItem
	for _, item := range r.items {
		out = append(out, *item)
	}
	return out, len(out), nil
}

func (r *fakeStockRepo) Create(ctx context.Context, item *model.StockItem) error {
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *fakeStockRepo) UpdateQuantity(ctx context.Context, id string, quantity model.Amount) error {
	item, ok := r.items[id]
	if !ok {
		return errors.New("no such row")
	}
	item.Quantity = quantity
	return nil
}

func (r *fakeStockRepo) Deactivate(ctx context.Context, id string) error {
	item, ok := r.items[id]
	if !ok {
		return errors.New("no such row")
	}
	item.IsActive = false
	return nil
}

type fakeAuditLog struct {
	entries []model.AuditEntry
}

func (l *fakeAuditLog) WithTx(tx *database.Tx) audit.Repository { return l }

func (l *fakeAuditLog) Append(ctx context.Context, entry *model.AuditEntry) error {
	l.entries = append(l.entries, *entry)
	return nil
}

func (l *fakeAuditLog) List(ctx context.Context, f *audit.Filters) ([]model.AuditEntry, int, error) {
	return l.entries, len(l.entries), nil
}

// fakeRunner hands out a zero-value tx and records whether fn failed, which
// a real TxManager would translate into a rollback.
type fakeRunner struct {
	rolledBack bool
}

func (r *fakeRunner) RunInTx(ctx context.Context, fn func(tx *database.Tx) error) error {
	if err := fn(&database.Tx{}); err != nil {
		r.rolledBack = true
		return err
	}
	return nil
}

func riceItem() *model.StockItem {
	return &model.StockItem{
		ID:              "rice-1",
		Name:            "Rice",
		Category:        model.CategoryIngredients,
		Quantity:        model.AmountFromFloat(100),
		Unit:            "kg",
		MinimumQuantity: model.AmountFromFloat(5),
		IsActive:        true,
	}
}

func newTestUseCase(repo *fakeStockRepo) (stock.UseCase, *fakeAuditLog, *fakeRunner) {
	auditLog := &fakeAuditLog{}
	runner := &fakeRunner{}
	return NewStockUseCase(repo, auditLog, runner, zap.NewNop()), auditLog, runner
}

func TestConsume_ConvertsAndDecrements(t *testing.T) {
	repo := newFakeStockRepo(riceItem())
	uc, auditLog, _ := newTestUseCase(repo)

	receipt, err := uc.Consume(context.Background(), &database.Tx{}, &dto.ConsumeInput{
		Name:     "rice",
		Quantity: 500,
		Unit:     "g",
		Reason:   "order sale: Fried Rice",
		OrderRef: "order-42",
	})
	require.NoError(t, err)

	assert.Equal(t, "Rice", receipt.ItemName)
	assert.Equal(t, model.AmountFromFloat(0.5), receipt.Consumed)
	assert.Equal(t, "kg", receipt.Unit)
	assert.Equal(t, model.AmountFromFloat(99.5), receipt.Remaining)
	assert.False(t, receipt.LowStock)

	assert.Equal(t, model.AmountFromFloat(99.5), repo.items["rice-1"].Quantity)

	require.Len(t, auditLog.entries, 1)
	entry := auditLog.entries[0]
	assert.Equal(t, model.AuditQuantitySubtract, entry.Action)
	assert.Equal(t, -int64(model.AmountFromFloat(0.5)), entry.Delta)
	require.NotNil(t, entry.OrderRef)
	assert.Equal(t, "order-42", *entry.OrderRef)
}

func TestConsume_RequiresTransaction(t *testing.T) {
	uc, _, _ := newTestUseCase(newFakeStockRepo(riceItem()))

	_, err := uc.Consume(context.Background(), nil, &dto.ConsumeInput{
		Name: "rice", Quantity: 1, Unit: "kg",
	})
	var valErr *model.ValidationError
	require.True(t, errors.As(err, &valErr))
}

func TestConsume_InsufficientReportsBothUnits(t *testing.T) {
	item := riceItem()
	item.Quantity = model.AmountFromFloat(0.2)
	repo := newFakeStockRepo(item)
	uc, auditLog, _ := newTestUseCase(repo)

	_, err := uc.Consume(context.Background(), &database.Tx{}, &dto.ConsumeInput{
		Name:     "rice",
		Quantity: 500,
		Unit:     "g",
	})
	var stockErr *model.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Contains(t, err.Error(), "500 g")
	assert.Contains(t, err.Error(), "0.5 kg")
	assert.Contains(t, err.Error(), "0.2 kg")

	// Nothing moved.
	assert.Equal(t, model.AmountFromFloat(0.2), repo.items["rice-1"].Quantity)
	assert.Empty(t, auditLog.entries)
}

func TestConsume_UnknownItem(t *testing.T) {
	uc, _, _ := newTestUseCase(newFakeStockRepo())

	_, err := uc.Consume(context.Background(), &database.Tx{}, &dto.ConsumeInput{
		Name: "truffle oil", Quantity: 1, Unit: "ml",
	})
	var notFound *model.ItemNotFoundError
	require.True(t, errors.As(err, &notFound))
}

func TestConsume_IncompatibleUnits(t *testing.T) {
	uc, _, _ := newTestUseCase(newFakeStockRepo(riceItem()))

	_, err := uc.Consume(context.Background(), &database.Tx{}, &dto.ConsumeInput{
		Name: "rice", Quantity: 2, Unit: "l",
	})
	var unitErr *unit.IncompatibleUnitsError
	require.True(t, errors.As(err, &unitErr))
}

func TestConsume_WarnsOnLowStock(t *testing.T) {
	item := riceItem()
	item.Quantity = model.AmountFromFloat(5.4)
	repo := newFakeStockRepo(item)
	uc, _, _ := newTestUseCase(repo)

	receipt, err := uc.Consume(context.Background(), &database.Tx{}, &dto.ConsumeInput{
		Name: "rice", Quantity: 0.5, Unit: "kg",
	})
	require.NoError(t, err)
	assert.True(t, receipt.LowStock)
}

func TestRestock_Add(t *testing.T) {
	repo := newFakeStockRepo(riceItem())
	uc, auditLog, _ := newTestUseCase(repo)

	updated, err := uc.Restock(context.Background(), &dto.RestockInput{
		Name:     "rice",
		Quantity: 25,
		Op:       dto.RestockAdd,
		Reason:   "weekly delivery",
	})
	require.NoError(t, err)
	assert.Equal(t, model.AmountFromFloat(125), updated.Quantity)

	require.Len(t, auditLog.entries, 1)
	assert.Equal(t, model.AuditQuantityAdd, auditLog.entries[0].Action)
	assert.Equal(t, int64(model.AmountFromFloat(25)), auditLog.entries[0].Delta)
}

func TestRestock_SubtractClampsAtZero(t *testing.T) {
	item := riceItem()
	item.Quantity = model.AmountFromFloat(10)
	repo := newFakeStockRepo(item)
	uc, auditLog, _ := newTestUseCase(repo)

	updated, err := uc.Restock(context.Background(), &dto.RestockInput{
		Name:     "rice",
		Quantity: 50,
		Op:       dto.RestockSubtract,
		Reason:   "spoilage",
	})
	require.NoError(t, err)
	assert.True(t, updated.Quantity.IsZero())

	// The audit delta is the actual change, not the requested one.
	require.Len(t, auditLog.entries, 1)
	assert.Equal(t, -int64(model.AmountFromFloat(10)), auditLog.entries[0].Delta)
}

func TestRestock_InvalidOp(t *testing.T) {
	uc, _, _ := newTestUseCase(newFakeStockRepo(riceItem()))

	_, err := uc.Restock(context.Background(), &dto.RestockInput{
		Name: "rice", Quantity: 1, Op: "set",
	})
	var valErr *model.ValidationError
	require.True(t, errors.As(err, &valErr))
}

func TestCheckAvailability(t *testing.T) {
	uc, auditLog, _ := newTestUseCase(newFakeStockRepo(riceItem()))

	res, err := uc.CheckAvailability(context.Background(), &dto.AvailabilityInput{
		Name: "rice", Quantity: 99000, Unit: "g",
	})
	require.NoError(t, err)
	assert.True(t, res.Sufficient)
	assert.Equal(t, model.AmountFromFloat(99), res.Required)
	assert.Equal(t, "kg", res.Unit)

	res, err = uc.CheckAvailability(context.Background(), &dto.AvailabilityInput{
		Name: "rice", Quantity: 101, Unit: "kg",
	})
	require.NoError(t, err)
	assert.False(t, res.Sufficient)

	// Read-only: no audit entries.
	assert.Empty(t, auditLog.entries)
}

func TestCreate(t *testing.T) {
	repo := newFakeStockRepo()
	uc, auditLog, _ := newTestUseCase(repo)

	item, err := uc.Create(context.Background(), &dto.CreateStockInput{
		Name:            "Olive Oil",
		Category:        "ingredients",
		Quantity:        5,
		Unit:            "L",
		MinimumQuantity: 1,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, "l", item.Unit)
	assert.True(t, item.IsActive)

	stored, err := uc.GetByName(context.Background(), "olive oil")
	require.NoError(t, err)
	assert.Equal(t, item.ID, stored.ID)

	require.Len(t, auditLog.entries, 1)
	assert.Equal(t, model.AuditCreate, auditLog.entries[0].Action)
}

func TestCreate_UnknownUnit(t *testing.T) {
	uc, _, _ := newTestUseCase(newFakeStockRepo())

	_, err := uc.Create(context.Background(), &dto.CreateStockInput{
		Name: "Saffron", Category: "ingredients", Quantity: 1, Unit: "pinch",
	})
	var valErr *model.ValidationError
	require.True(t, errors.As(err, &valErr))
}

func TestDeactivate(t *testing.T) {
	repo := newFakeStockRepo(riceItem())
	uc, _, _ := newTestUseCase(repo)

	require.NoError(t, uc.Deactivate(context.Background(), "rice"))
	assert.False(t, repo.items["rice-1"].IsActive)

	err := uc.Deactivate(context.Background(), "rice")
	var notFound *model.ItemNotFoundError
	require.True(t, errors.As(err, &notFound))
}
