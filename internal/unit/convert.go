// Package unit converts quantities between compatible measurement units.
// Units belong to exactly one of three categories (weight, volume, count);
// conversion across categories is an error, never a silent pass-through.
package unit

import (
	"fmt"
	"math"
	"strings"

	"github.com/restopos/inventory-service/internal/model"
)

type Category string

const (
	Weight Category = "weight" // base gram
	Volume Category = "volume" // base milliliter
	Count  Category = "count"  // base single unit
)

type unitDef struct {
	category Category
	factor   float64 // multiplier to the category base unit
}

var units = map[string]unitDef{
	// weight, base gram
	"g":         {Weight, 1},
	"gram":      {Weight, 1},
	"grams":     {Weight, 1},
	"kg":        {Weight, 1000},
	"kilogram":  {Weight, 1000},
	"kilograms": {Weight, 1000},
	"mg":        {Weight, 0.001},
	"lb":        {Weight, 453.592},
	"lbs":       {Weight, 453.592},
	"pound":     {Weight, 453.592},
	"oz":        {Weight, 28.3495},
	"ounce":     {Weight, 28.3495},

	// volume, base milliliter
	"ml":          {Volume, 1},
	"milliliter":  {Volume, 1},
	"milliliters": {Volume, 1},
	"l":           {Volume, 1000},
	"liter":       {Volume, 1000},
	"liters":      {Volume, 1000},
	"cup":         {Volume, 240},
	"cups":        {Volume, 240},
	"tbsp":        {Volume, 15},
	"tsp":         {Volume, 5},
	"fl_oz":       {Volume, 29.5735},
	"gal":         {Volume, 3785.41},
	"gallon":      {Volume, 3785.41},

	// count, base single unit
	"unit":   {Count, 1},
	"units":  {Count, 1},
	"pc":     {Count, 1},
	"pcs":    {Count, 1},
	"piece":  {Count, 1},
	"pieces": {Count, 1},
	"dozen":  {Count, 12},
	"pair":   {Count, 2},
}

// IncompatibleUnitsError reports a conversion between units that do not
// resolve to the same category, or a unit outside the vocabulary.
type IncompatibleUnitsError struct {
	From string
	To   string
}

func (e *IncompatibleUnitsError) Error() string {
	return fmt.Sprintf("cannot convert %q to %q", e.From, e.To)
}

func normalize(u string) string {
	return strings.ToLower(strings.TrimSpace(u))
}

// CategoryOf returns the category of a unit and whether it is known.
func CategoryOf(u string) (Category, bool) {
	def, ok := units[normalize(u)]
	return def.category, ok
}

// Known reports whether the unit is in the vocabulary.
func Known(u string) bool {
	_, ok := units[normalize(u)]
	return ok
}

// Compatible reports whether two units resolve to the same category.
func Compatible(a, b string) bool {
	da, ok := units[normalize(a)]
	if !ok {
		return false
	}
	db, ok := units[normalize(b)]
	return ok && da.category == db.category
}

// Convert converts a fixed-point quantity from one unit to another within
// the same category. Weight and volume results are fixed to hundredths;
// count results are additionally rounded to whole units.
func Convert(q model.Amount, from, to string) (model.Amount, error) {
	nf, nt := normalize(from), normalize(to)
	if nf == nt {
		return q, nil
	}
	df, ok := units[nf]
	if !ok {
		return 0, &IncompatibleUnitsError{From: from, To: to}
	}
	dt, ok := units[nt]
	if !ok || df.category != dt.category {
		return 0, &IncompatibleUnitsError{From: from, To: to}
	}
	converted := q.Float64() * df.factor / dt.factor
	if df.category == Count {
		converted = math.Round(converted)
	}
	return model.AmountFromFloat(converted), nil
}
