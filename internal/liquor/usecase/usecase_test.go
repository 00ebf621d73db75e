package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/restopos/inventory-service/internal/audit"
	"github.com/restopos/inventory-service/internal/database"
	"github.com/restopos/inventory-service/internal/liquor"
	"github.com/restopos/inventory-service/internal/liquor/dto"
	"github.com/restopos/inventory-service/internal/model"
)

type fakeLiquorRepo struct {
	items     map[string]*model.LiquorItem
	updateErr map[string]error
}

func newFakeLiquorRepo(items ...*model.LiquorItem) *fakeLiquorRepo {
	r := &fakeLiquorRepo{
		items:     make(map[string]*model.LiquorItem),
		updateErr: make(map[string]error),
	}
	for _, item := range items {
		r.items[item.ID] = cloneItem(item)
	}
	return r
}

func cloneItem(item *model.LiquorItem) *model.LiquorItem {
	cp := *item
	if item.BottlesInStock != nil {
		b := *item.BottlesInStock
		cp.BottlesInStock = &b
	}
	cp.Portions = append([]model.Portion(nil), item.Portions...)
	return &cp
}

func (r *fakeLiquorRepo) WithTx(tx *database.Tx) liquor.Repository { return r }

func (r *fakeLiquorRepo) GetByID(ctx context.Context, id string) (*model.LiquorItem, error) {
	item, ok := r.items[id]
	if !ok || !item.IsActive {
		return nil, nil
	}
	return cloneItem(item), nil
}

func (r *fakeLiquorRepo) GetByIDForUpdate(ctx context.Context, id string) (*model.LiquorItem, error) {
	return r.GetByID(ctx, id)
}

func (r *fakeLiquorRepo) FindAll(ctx context.Context, f *dto.LiquorFilters) ([]model.LiquorItem, int, error) {
	var out []model.LiquorItem
	for _, item := range r.items {
		out = append(out, *cloneItem(item))
	}
	return out, len(out), nil
}

func (r *fakeLiquorRepo) FindDiscardCandidates(ctx context.Context) ([]string, error) {
	var ids []string
	for id, item := range r.items {
		if item.IsActive && item.Type.TracksVolume() &&
			item.CurrentBottleVolume > 0 && item.CurrentBottleVolume <= model.AutoDiscardThresholdML {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func (r *fakeLiquorRepo) Create(ctx context.Context, item *model.LiquorItem) error {
	r.items[item.ID] = cloneItem(item)
	return nil
}

func (r *fakeLiquorRepo) Update(ctx context.Context, item *model.LiquorItem) error {
	if err := r.updateErr[item.ID]; err != nil {
		return err
	}
	if _, ok := r.items[item.ID]; !ok {
		return errors.New("no such row")
	}
	r.items[item.ID] = cloneItem(item)
	return nil
}

func (r *fakeLiquorRepo) Deactivate(ctx context.Context, id string) error {
	item, ok := r.items[id]
	if !ok {
		return errors.New("no such row")
	}
	item.IsActive = false
	return nil
}

func (r *fakeLiquorRepo) UpdatePortionPrice(ctx context.Context, portionID string, price float64) error {
	for _, item := range r.items {
		for i := range item.Portions {
			if item.Portions[i].ID == portionID {
				item.Portions[i].Price = price
				return nil
			}
		}
	}
	return errors.New("no such portion")
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

type fakeRunner struct{}

func (r *fakeRunner) RunInTx(ctx context.Context, fn func(tx *database.Tx) error) error {
	return fn(&database.Tx{})
}

func int64Ptr(v int64) *int64 { return &v }

func whiskyItem(bottles int64) *model.LiquorItem {
	return &model.LiquorItem{
		ID:                  "whisky-1",
		Name:                "Whisky",
		Brand:               "Old Monk",
		Type:                model.LiquorHard,
		BottleVolume:        750,
		BottlesInStock:      int64Ptr(bottles),
		CurrentBottleVolume: 750,
		IsActive:            true,
	}
}

func beerItem(bottles int64) *model.LiquorItem {
	return &model.LiquorItem{
		ID:             "beer-1",
		Name:           "Lager",
		Brand:          "Kingfisher",
		Type:           model.LiquorBeer,
		BottlesInStock: int64Ptr(bottles),
		IsActive:       true,
	}
}

func newTestUseCase(repo *fakeLiquorRepo) (liquor.UseCase, *fakeAuditLog) {
	auditLog := &fakeAuditLog{}
	return NewLiquorUseCase(repo, auditLog, &fakeRunner{}, zap.NewNop()), auditLog
}

func TestConsumeVolume_AuditsPourAndDiscard(t *testing.T) {
	repo := newFakeLiquorRepo(whiskyItem(2))
	uc, auditLog := newTestUseCase(repo)

	receipt, err := uc.ConsumeVolume(context.Background(), &database.Tx{}, &dto.ConsumeVolumeInput{
		ItemID:   "whisky-1",
		VolumeML: 730,
		OrderRef: "order-7",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(730), receipt.Consumed)
	assert.Equal(t, int64(20), receipt.Wasted)
	assert.Equal(t, int64(1), receipt.BottlesCompleted)
	assert.Equal(t, int64(1), receipt.RemainingBottles)
	assert.Equal(t, int64(750), receipt.RemainingVolume)

	stored := repo.items["whisky-1"]
	assert.Equal(t, int64(1), *stored.BottlesInStock)
	assert.Equal(t, int64(750), stored.CurrentBottleVolume)
	assert.Equal(t, int64(20), stored.WastedVolume)

	require.Len(t, auditLog.entries, 2)
	assert.Equal(t, int64(-730), auditLog.entries[0].Delta)
	assert.Equal(t, "pour", auditLog.entries[0].Reason)
	assert.Equal(t, int64(-20), auditLog.entries[1].Delta)
	assert.Equal(t, "auto-discard", auditLog.entries[1].Reason)
	require.NotNil(t, auditLog.entries[0].OrderRef)
	assert.Equal(t, "order-7", *auditLog.entries[0].OrderRef)
}

func TestConsumeVolume_InsufficientLeavesRepoUntouched(t *testing.T) {
	repo := newFakeLiquorRepo(whiskyItem(1))
	uc, auditLog := newTestUseCase(repo)

	_, err := uc.ConsumeVolume(context.Background(), &database.Tx{}, &dto.ConsumeVolumeInput{
		ItemID:   "whisky-1",
		VolumeML: 800,
	})
	var volErr *model.InsufficientVolumeError
	require.True(t, errors.As(err, &volErr))

	assert.Equal(t, int64(750), repo.items["whisky-1"].CurrentBottleVolume)
	assert.Empty(t, auditLog.entries)
}

func TestConsumeForOrder_VolumeTrackedUsesPortion(t *testing.T) {
	repo := newFakeLiquorRepo(whiskyItem(2))
	uc, _ := newTestUseCase(repo)

	receipt, err := uc.ConsumeForOrder(context.Background(), &database.Tx{}, &dto.OrderConsumeInput{
		ItemID:          "whisky-1",
		SaleQuantity:    3,
		PortionVolumeML: int64Ptr(50),
		OrderRef:        "order-8",
	})
	require.NoError(t, err)

	assert.Equal(t, dto.ReceiptVolume, receipt.Kind)
	require.NotNil(t, receipt.Pour)
	assert.Equal(t, int64(150), receipt.Pour.Consumed)
	assert.Equal(t, int64(600), repo.items["whisky-1"].CurrentBottleVolume)
}

func TestConsumeForOrder_DefaultsToFullBottle(t *testing.T) {
	repo := newFakeLiquorRepo(whiskyItem(2))
	uc, _ := newTestUseCase(repo)

	receipt, err := uc.ConsumeForOrder(context.Background(), &database.Tx{}, &dto.OrderConsumeInput{
		ItemID:       "whisky-1",
		SaleQuantity: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(750), receipt.Pour.Consumed)
	assert.Equal(t, int64(1), receipt.Pour.BottlesCompleted)
}

func TestConsumeForOrder_CountedType(t *testing.T) {
	repo := newFakeLiquorRepo(beerItem(10))
	uc, auditLog := newTestUseCase(repo)

	receipt, err := uc.ConsumeForOrder(context.Background(), &database.Tx{}, &dto.OrderConsumeInput{
		ItemID:       "beer-1",
		SaleQuantity: 4,
		OrderRef:     "order-9",
	})
	require.NoError(t, err)

	assert.Equal(t, dto.ReceiptCount, receipt.Kind)
	require.NotNil(t, receipt.Count)
	assert.True(t, receipt.Count.StockTracked)
	assert.Equal(t, int64(6), receipt.Count.RemainingUnits)
	assert.Equal(t, int64(6), *repo.items["beer-1"].BottlesInStock)

	require.Len(t, auditLog.entries, 1)
	assert.Equal(t, "pcs", auditLog.entries[0].Unit)
	assert.Equal(t, int64(-4), auditLog.entries[0].Delta)
}

func TestAddBottles(t *testing.T) {
	repo := newFakeLiquorRepo(whiskyItem(1))
	uc, auditLog := newTestUseCase(repo)

	updated, err := uc.AddBottles(context.Background(), &dto.AddBottlesInput{
		ItemID: "whisky-1",
		Count:  2,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), *updated.BottlesInStock)

	// Volume-tracked restocks are audited in ml.
	require.Len(t, auditLog.entries, 1)
	assert.Equal(t, model.AuditQuantityAdd, auditLog.entries[0].Action)
	assert.Equal(t, int64(1500), auditLog.entries[0].Delta)
	assert.Equal(t, "ml", auditLog.entries[0].Unit)
	assert.Equal(t, "restock", auditLog.entries[0].Reason)
}

func TestSweepAutoDiscard(t *testing.T) {
	dying := whiskyItem(1)
	dying.CurrentBottleVolume = 25

	healthy := whiskyItem(1)
	healthy.ID = "whisky-2"
	healthy.CurrentBottleVolume = 400

	repo := newFakeLiquorRepo(dying, healthy)
	uc, auditLog := newTestUseCase(repo)

	report, err := uc.SweepAutoDiscard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, report.ItemsChecked)
	assert.Equal(t, 1, report.ItemsDiscarded)
	assert.Equal(t, int64(25), report.VolumeWasted)
	assert.Empty(t, report.SkippedItems)

	stored := repo.items["whisky-1"]
	assert.Equal(t, int64(0), *stored.BottlesInStock)
	assert.Equal(t, int64(25), stored.WastedVolume)
	assert.Equal(t, int64(400), repo.items["whisky-2"].CurrentBottleVolume)

	require.Len(t, auditLog.entries, 1)
	assert.Equal(t, "auto-discard sweep", auditLog.entries[0].Reason)
	assert.Equal(t, int64(-25), auditLog.entries[0].Delta)
}

func TestSweepAutoDiscard_SkipsFailingItems(t *testing.T) {
	dying := whiskyItem(1)
	dying.CurrentBottleVolume = 25

	repo := newFakeLiquorRepo(dying)
	repo.updateErr["whisky-1"] = errors.New("deadlock detected")
	uc, _ := newTestUseCase(repo)

	report, err := uc.SweepAutoDiscard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, report.ItemsDiscarded)
	assert.Equal(t, []string{"whisky-1"}, report.SkippedItems)
}

func TestCreate_WithStandardPortions(t *testing.T) {
	repo := newFakeLiquorRepo()
	uc, auditLog := newTestUseCase(repo)

	item, err := uc.Create(context.Background(), &dto.CreateLiquorInput{
		Name:             "Vodka",
		Brand:            "Magic Moments",
		Type:             string(model.LiquorHard),
		BottleVolume:     750,
		Bottles:          int64Ptr(4),
		StandardPortions: true,
	})
	require.NoError(t, err)

	require.Len(t, item.Portions, 7)
	for _, p := range item.Portions {
		assert.NotEmpty(t, p.ID)
		assert.Equal(t, item.ID, p.LiquorItemID)
	}

	require.Len(t, auditLog.entries, 1)
	assert.Equal(t, model.AuditCreate, auditLog.entries[0].Action)
	assert.Equal(t, int64(3000), auditLog.entries[0].Delta)
	assert.Equal(t, "ml", auditLog.entries[0].Unit)
}

func TestSetPortionPrice(t *testing.T) {
	item := whiskyItem(1)
	item.Portions = []model.Portion{{ID: "portion-1", LiquorItemID: item.ID, Name: "50ml Shot", VolumeML: 50}}
	repo := newFakeLiquorRepo(item)
	uc, _ := newTestUseCase(repo)

	require.NoError(t, uc.SetPortionPrice(context.Background(), "portion-1", 120))
	assert.Equal(t, float64(120), repo.items["whisky-1"].Portions[0].Price)

	err := uc.SetPortionPrice(context.Background(), "portion-1", -1)
	var valErr *model.ValidationError
	require.True(t, errors.As(err, &valErr))
}
