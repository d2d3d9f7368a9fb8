package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNoAllocations      = errors.New("reservation requires at least one zone allocation")
	ErrUnknownZone        = errors.New("unknown pricing zone")
	ErrNoTablesRequested  = errors.New("table-based allocation requires at least one table")
	ErrInvalidSurface     = errors.New("area-based allocation requires a positive surface")
	ErrInvalidPaymentMode = errors.New("invalid payment mode")
	ErrInvalidDiscount    = errors.New("discount must be between zero and the computed price")

	ErrInsufficientStock    = errors.New("insufficient table stock")
	ErrDuplicateReservation = errors.New("reservant already has a reservation for this festival")
	ErrReservationNotFound  = errors.New("reservation not found")
	ErrFestivalNotFound     = errors.New("festival not found")

	// ErrStockInconsistent marks an available_tables counter that would
	// leave the 0 <= available <= total range. Never expected in correct
	// operation; the enclosing transaction must abort.
	ErrStockInconsistent = errors.New("zone stock counter inconsistent")
)

// InsufficientStockError names the first zone that cannot satisfy a
// reservation and by how much. errors.Is(err, ErrInsufficientStock)
// matches it.
type InsufficientStockError struct {
	ZoneName  string
	Needed    int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient table stock in zone %q: need %d, %d available", e.ZoneName, e.Needed, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// Shortfall is the number of missing tables in the failing zone.
func (e *InsufficientStockError) Shortfall() int {
	return e.Needed - e.Available
}
