package model

import "fmt"

// ItemNotFoundError reports a lookup miss on either ledger.
type ItemNotFoundError struct {
	Kind string // "stock" or "liquor"
	Name string
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("%s item %q not found", e.Kind, e.Name)
}

// InsufficientStockError carries the shortfall in both the caller's unit and
// the item's native unit so it can be shown to staff as-is.
type InsufficientStockError struct {
	Item          string
	Requested     float64
	RequestedUnit string
	Required      float64
	Available     float64
	Unit          string
}

func (e *InsufficientStockError) Error() string {
	if e.RequestedUnit != "" && e.RequestedUnit != e.Unit {
		return fmt.Sprintf("insufficient stock for %q: requested %g %s, need %g %s but only %g %s available",
			e.Item, e.Requested, e.RequestedUnit, e.Required, e.Unit, e.Available, e.Unit)
	}
	return fmt.Sprintf("insufficient stock for %q: need %g %s but only %g %s available",
		e.Item, e.Required, e.Unit, e.Available, e.Unit)
}

type InsufficientVolumeError struct {
	Item        string
	RequiredML  int64
	AvailableML int64
}

func (e *InsufficientVolumeError) Error() string {
	return fmt.Sprintf("insufficient volume for %q: need %dml but only %dml available",
		e.Item, e.RequiredML, e.AvailableML)
}

// ValidationError covers malformed input caught before any mutation.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Message
}

// TransactionAbortedError wraps the error that forced a coordinated
// consumption to roll back. No mutation from the aborted run persists.
type TransactionAbortedError struct {
	Cause error
}

func (e *TransactionAbortedError) Error() string {
	return "order consumption aborted: " + e.Cause.Error()
}

func (e *TransactionAbortedError) Unwrap() error { return e.Cause }
