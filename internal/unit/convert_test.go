package unit

import (
	"errors"
	"testing"

	"github.com/restopos/inventory-service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name     string
		quantity float64
		from, to string
		want     float64
	}{
		{"same unit", 12.5, "kg", "kg", 12.5},
		{"g to kg", 500, "g", "kg", 0.5},
		{"kg to g", 2.5, "kg", "g", 2500},
		{"lb to g", 1, "lb", "g", 453.59},
		{"l to ml", 1.5, "l", "ml", 1500},
		{"cup to ml", 2, "cup", "ml", 480},
		{"tbsp to tsp", 1, "tbsp", "tsp", 3},
		{"dozen to units", 2, "dozen", "unit", 24},
		{"case-insensitive", 1, "KG", "G", 1000},
		{"alias", 3, "pieces", "pcs", 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert(model.AmountFromFloat(tt.quantity), tt.from, tt.to)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got.Float64(), 0.01)
		})
	}
}

func TestConvertCountRoundsToWholeUnits(t *testing.T) {
	// Count quantities have zero decimal places: 7 units is 0.58 dozen
	// mathematically but rounds to 1 whole dozen.
	d, err := Convert(model.AmountFromFloat(7), "unit", "dozen")
	require.NoError(t, err)
	assert.Equal(t, float64(1), d.Float64())

	u, err := Convert(d, "dozen", "unit")
	require.NoError(t, err)
	assert.Equal(t, float64(12), u.Float64())
}

func TestConvertIncompatible(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
	}{
		{"cross category", "kg", "ml"},
		{"unknown from", "bushel", "g"},
		{"unknown to", "g", "smidgen"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Convert(model.AmountFromFloat(1), tt.from, tt.to)
			var incompat *IncompatibleUnitsError
			require.True(t, errors.As(err, &incompat))
		})
	}
}

func TestConvertRoundTrip(t *testing.T) {
	// Quantities sit on the hundredths grid of both units so the only
	// permitted loss is the category rounding tolerance.
	cases := []struct {
		quantity float64
		from, to string
	}{
		{250, "g", "kg"},
		{2, "kg", "lb"},
		{1500, "ml", "l"},
		{360, "ml", "cup"},
		{9, "tsp", "tbsp"},
	}
	for _, c := range cases {
		q := model.AmountFromFloat(c.quantity)
		there, err := Convert(q, c.from, c.to)
		require.NoError(t, err)
		back, err := Convert(there, c.to, c.from)
		require.NoError(t, err)
		assert.InDeltaf(t, q.Float64(), back.Float64(), 0.01, "%s <-> %s", c.from, c.to)
	}
}

func TestCompatible(t *testing.T) {
	assert.True(t, Compatible("g", "lb"))
	assert.True(t, Compatible("ml", "gal"))
	assert.False(t, Compatible("g", "ml"))
	assert.False(t, Compatible("g", "nonsense"))
}
