package model

import (
	"fmt"
	"strings"
	"time"
)

type LiquorType string

const (
	LiquorHard       LiquorType = "hard_liquor"
	LiquorBeer       LiquorType = "beer"
	LiquorWine       LiquorType = "wine"
	LiquorCigarettes LiquorType = "cigarettes"
	LiquorIceCubes   LiquorType = "ice_cubes"
	LiquorSandy      LiquorType = "sandy_bottles"
	LiquorBites      LiquorType = "bites"
	LiquorOther      LiquorType = "other"
)

func (t LiquorType) Valid() bool {
	switch t {
	case LiquorHard, LiquorBeer, LiquorWine, LiquorCigarettes,
		LiquorIceCubes, LiquorSandy, LiquorBites, LiquorOther:
		return true
	}
	return false
}

// TracksVolume reports whether the type runs the open-bottle volume state
// machine. Every other type uses plain unit counting.
func (t LiquorType) TracksVolume() bool {
	return t == LiquorHard
}

// AutoDiscardThresholdML is the residual at or below which an open bottle
// is considered dead and its remainder is written off as waste.
const AutoDiscardThresholdML int64 = 30

// LiquorItem is a bottle-based item. For hard liquor at most one bottle is
// open at a time; BottlesInStock counts full-equivalent bottles where the
// open bottle counts as one. A nil BottlesInStock means stock is not
// tracked for the item at all (sales are counted, availability is not).
type LiquorItem struct {
	ID                  string     `db:"id"`
	Name                string     `db:"name"`
	Brand               string     `db:"brand"`
	Type                LiquorType `db:"type"`
	BottleVolume        int64      `db:"bottle_volume"`
	BottlesInStock      *int64     `db:"bottles_in_stock"`
	CurrentBottleVolume int64      `db:"current_bottle_volume"`
	WastedVolume        int64      `db:"wasted_volume"`
	TotalSoldVolume     int64      `db:"total_sold_volume"`
	TotalSoldItems      int64      `db:"total_sold_items"`
	Price               float64    `db:"price"`
	IsActive            bool       `db:"is_active"`
	CreatedAt           time.Time  `db:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at"`

	Portions []Portion `db:"-"`
}

// Portion is a named pour size with its own price, hard liquor only.
type Portion struct {
	ID           string    `db:"id"`
	LiquorItemID string    `db:"liquor_item_id"`
	Name         string    `db:"name"`
	VolumeML     int64     `db:"volume_ml"`
	Price        float64   `db:"price"`
	CreatedAt    time.Time `db:"created_at"`
}

// StandardPortions is the fixed pour list for a bottle volume. Quarter and
// half sizes for the two standard bottles follow trade convention rather
// than exact division: 750ml pours 180/375, 1000ml pours 250/500. Any other
// bottle volume falls back to true quartering and halving. Prices start at
// zero and are set later by staff.
func StandardPortions(bottleVolume int64) []Portion {
	var quarter, half int64
	switch bottleVolume {
	case 750:
		quarter, half = 180, 375
	case 1000:
		quarter, half = 250, 500
	default:
		quarter, half = bottleVolume/4, bottleVolume/2
	}
	return []Portion{
		{Name: "25ml Shot", VolumeML: 25},
		{Name: "50ml Shot", VolumeML: 50},
		{Name: "75ml Shot", VolumeML: 75},
		{Name: "100ml Shot", VolumeML: 100},
		{Name: "Quarter Bottle", VolumeML: quarter},
		{Name: "Half Bottle", VolumeML: half},
		{Name: "Full Bottle", VolumeML: bottleVolume},
	}
}

type NewLiquorItemParams struct {
	Name         string
	Brand        string
	Type         LiquorType
	BottleVolume int64  // required for hard_liquor
	Bottles      *int64 // nil means stock is not tracked
	Price        float64
}

// NewLiquorItem enforces the per-variant required fields at construction so
// type checks do not leak into the rest of the code.
func NewLiquorItem(p NewLiquorItemParams) (*LiquorItem, error) {
	name := strings.TrimSpace(p.Name)
	if name == "" {
		return nil, &ValidationError{Message: "liquor item name is required"}
	}
	if !p.Type.Valid() {
		return nil, &ValidationError{Message: fmt.Sprintf("unknown liquor type %q", p.Type)}
	}
	if p.Bottles != nil && *p.Bottles < 0 {
		return nil, &ValidationError{Message: "bottles in stock cannot be negative"}
	}
	item := &LiquorItem{
		Name:     name,
		Brand:    strings.TrimSpace(p.Brand),
		Type:     p.Type,
		Price:    p.Price,
		IsActive: true,
	}
	if p.Type.TracksVolume() {
		if p.BottleVolume <= 0 {
			return nil, &ValidationError{Message: "hard liquor requires a bottle volume"}
		}
		if p.Bottles == nil {
			return nil, &ValidationError{Message: "hard liquor stock must be tracked"}
		}
		item.BottleVolume = p.BottleVolume
		item.BottlesInStock = p.Bottles
		if *p.Bottles > 0 {
			item.CurrentBottleVolume = p.BottleVolume
		}
	} else {
		if p.BottleVolume != 0 {
			return nil, &ValidationError{Message: fmt.Sprintf("bottle volume does not apply to %s", p.Type)}
		}
		item.BottlesInStock = p.Bottles
	}
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now
	return item, nil
}

// DisplayName is the name+brand identity shown to staff.
func (l *LiquorItem) DisplayName() string {
	if l.Brand == "" {
		return l.Name
	}
	return l.Name + " " + l.Brand
}

func (l *LiquorItem) StockTracked() bool {
	return l.BottlesInStock != nil
}

// TotalVolumeRemaining is derived: unopened bottles plus whatever is left
// in the open one.
func (l *LiquorItem) TotalVolumeRemaining() int64 {
	if !l.Type.TracksVolume() || l.BottlesInStock == nil || *l.BottlesInStock <= 0 {
		return 0
	}
	return (*l.BottlesInStock-1)*l.BottleVolume + l.CurrentBottleVolume
}

// PourResult reports what a single ConsumeVolume call did.
type PourResult struct {
	Consumed         int64
	Wasted           int64
	BottlesCompleted int64
	RemainingBottles int64
	RemainingVolume  int64
}

// CountResult reports a unit-count consumption. StockTracked is false when
// the item does not track stock and only the sold counter moved.
type CountResult struct {
	Units          int64
	StockTracked   bool
	RemainingUnits int64
}

// AddBottles transitions NoBottle directly to FreshBottle, opening the
// first bottle full. When stock is already present only the count moves;
// the open bottle's partial volume is untouched.
func (l *LiquorItem) AddBottles(count int64) error {
	if count <= 0 {
		return &ValidationError{Message: "bottle count must be positive"}
	}
	if l.BottlesInStock == nil {
		return &ValidationError{Message: fmt.Sprintf("%q does not track stock", l.DisplayName())}
	}
	wasEmpty := *l.BottlesInStock == 0
	*l.BottlesInStock += count
	if l.Type.TracksVolume() && wasEmpty {
		l.CurrentBottleVolume = l.BottleVolume
	}
	return nil
}

// ConsumeVolume runs the open-bottle state machine for hard liquor. The
// sufficiency check happens before any mutation, so a failed call leaves
// the item untouched. Consumption drains the open bottle first; a bottle
// that empties exactly is completed and the next one is opened. After the
// requested volume is satisfied, a residual of (0, 30]ml in the open
// bottle is discarded as waste in the same operation.
func (l *LiquorItem) ConsumeVolume(ml int64) (PourResult, error) {
	var res PourResult
	if !l.Type.TracksVolume() {
		return res, &ValidationError{Message: fmt.Sprintf("%q is not volume tracked", l.DisplayName())}
	}
	if ml <= 0 {
		return res, &ValidationError{Message: "volume to consume must be positive"}
	}
	if total := l.TotalVolumeRemaining(); ml > total {
		return res, &InsufficientVolumeError{
			Item:        l.DisplayName(),
			RequiredML:  ml,
			AvailableML: total,
		}
	}

	remaining := ml
	for remaining > 0 {
		pour := remaining
		if pour > l.CurrentBottleVolume {
			pour = l.CurrentBottleVolume
		}
		l.CurrentBottleVolume -= pour
		remaining -= pour
		if l.CurrentBottleVolume == 0 {
			l.completeOpenBottle(&res)
		}
	}

	if *l.BottlesInStock > 0 && l.CurrentBottleVolume > 0 && l.CurrentBottleVolume <= AutoDiscardThresholdML {
		res.Wasted = l.CurrentBottleVolume
		l.WastedVolume += l.CurrentBottleVolume
		l.CurrentBottleVolume = 0
		l.completeOpenBottle(&res)
	}

	l.TotalSoldVolume += ml
	res.Consumed = ml
	res.RemainingBottles = *l.BottlesInStock
	res.RemainingVolume = l.TotalVolumeRemaining()
	return res, nil
}

// DiscardResidual applies the auto-discard rule outside a sale, for the
// maintenance sweep. It reports the ml written off, zero when the open
// bottle is above the threshold.
func (l *LiquorItem) DiscardResidual() int64 {
	if !l.Type.TracksVolume() || l.BottlesInStock == nil || *l.BottlesInStock == 0 {
		return 0
	}
	if l.CurrentBottleVolume == 0 || l.CurrentBottleVolume > AutoDiscardThresholdML {
		return 0
	}
	var res PourResult
	wasted := l.CurrentBottleVolume
	l.WastedVolume += wasted
	l.CurrentBottleVolume = 0
	l.completeOpenBottle(&res)
	return wasted
}

// ConsumeUnits decrements counted stock. Untracked items only move the
// sold counter and report StockTracked false instead of failing.
func (l *LiquorItem) ConsumeUnits(count int64) (CountResult, error) {
	var res CountResult
	if l.Type.TracksVolume() {
		return res, &ValidationError{Message: fmt.Sprintf("%q is volume tracked, consume by volume", l.DisplayName())}
	}
	if count <= 0 {
		return res, &ValidationError{Message: "unit count must be positive"}
	}
	if l.BottlesInStock == nil {
		l.TotalSoldItems += count
		return CountResult{Units: count, StockTracked: false}, nil
	}
	if count > *l.BottlesInStock {
		return res, &InsufficientStockError{
			Item:      l.DisplayName(),
			Required:  float64(count),
			Available: float64(*l.BottlesInStock),
			Unit:      "pcs",
		}
	}
	*l.BottlesInStock -= count
	l.TotalSoldItems += count
	return CountResult{Units: count, StockTracked: true, RemainingUnits: *l.BottlesInStock}, nil
}

// completeOpenBottle retires the current bottle and, if stock remains,
// opens a fresh one.
func (l *LiquorItem) completeOpenBottle(res *PourResult) {
	*l.BottlesInStock--
	l.TotalSoldItems++
	res.BottlesCompleted++
	if *l.BottlesInStock > 0 {
		l.CurrentBottleVolume = l.BottleVolume
	} else {
		l.CurrentBottleVolume = 0
	}
}
