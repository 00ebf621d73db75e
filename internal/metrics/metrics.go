// Package metrics exposes the Prometheus instruments for the consumption
// engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersConsumed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "restopos_orders_consumed_total",
		Help: "Orders whose consumption transaction committed.",
	})

	OrdersAborted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "restopos_orders_aborted_total",
		Help: "Orders rolled back by a strict consumption failure.",
	})

	DuplicateOrders = promauto.NewCounter(prometheus.CounterOpts{
		Name: "restopos_orders_duplicate_total",
		Help: "Order consumptions skipped by the idempotency guard.",
	})

	StockConsumptions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "restopos_stock_consumptions_total",
		Help: "Stock ledger decrements committed for orders.",
	})

	MissedIngredients = promauto.NewCounter(prometheus.CounterOpts{
		Name: "restopos_missed_ingredients_total",
		Help: "Food ingredients that could not be consumed for an order.",
	})

	LiquorVolumeSold = promauto.NewCounter(prometheus.CounterOpts{
		Name: "restopos_liquor_volume_sold_ml_total",
		Help: "Milliliters of hard liquor sold.",
	})

	LiquorVolumeWasted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "restopos_liquor_volume_wasted_ml_total",
		Help: "Milliliters of hard liquor written off as waste.",
	})

	BottlesCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "restopos_liquor_bottles_completed_total",
		Help: "Bottles fully consumed or discarded.",
	})

	SweepRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "restopos_autodiscard_sweep_runs_total",
		Help: "Auto-discard sweep executions.",
	})
)
