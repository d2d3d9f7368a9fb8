package domain

import "time"

type PaymentMode string

const (
	PayByTable PaymentMode = "by_table"
	PayByArea  PaymentMode = "by_area"
)

// ZoneAllocationRequest is one line of a reservation request. Exactly one
// of {table counts, surface} is meaningful depending on Mode.
type ZoneAllocationRequest struct {
	ZoneID         uint
	Mode           PaymentMode
	StandardTables int
	LargeTables    int
	TownHallTables int
	SurfaceM2      float64
	Chairs         int
}

// TableCount sums the requested tables across sizes.
func (r ZoneAllocationRequest) TableCount() int {
	return r.StandardTables + r.LargeTables + r.TownHallTables
}

// TablesNeeded is the stock the request consumes from its zone: the
// direct table sum when paying by table, the area conversion otherwise.
func (r ZoneAllocationRequest) TablesNeeded() int {
	if r.Mode == PayByArea {
		return TablesForSurface(r.SurfaceM2)
	}

	return r.TableCount()
}

// Reservant is the exhibitor making a reservation, identified by email.
type Reservant struct {
	ID    uint
	Name  string
	Email string
	Phone string
}

// Reservation is the commercial record for one exhibitor at one festival.
type Reservation struct {
	ID                   uint
	ReservantID          uint
	FestivalID           uint
	WorkflowID           uint
	StartPrice           float64
	FinalPrice           float64
	TableDiscountOffered int
	DirectDiscount       float64
	ChairCount           int
	Note                 string
	Allocations          []ZoneAllocation
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// ZoneAllocation is the committed line item binding a reservation to a
// pricing zone. TablesOccupied is the ledger amount computed once at
// quote time; release paths restore exactly this value.
type ZoneAllocation struct {
	ID             uint
	ReservationID  uint
	ZoneID         uint
	Mode           PaymentMode
	StandardTables int
	LargeTables    int
	TownHallTables int
	SurfaceM2      float64
	Chairs         int
	TablesOccupied int
	LinePrice      float64
}

// ReservationRequest carries everything needed to create a reservation.
type ReservationRequest struct {
	Reservant            Reservant
	WorkflowID           uint
	TableDiscountOffered int
	DirectDiscount       float64
	Note                 string
	Allocations          []ZoneAllocationRequest
}

// ReservationUpdate replaces the financial fields and the full zone
// allocation set of an existing reservation.
type ReservationUpdate struct {
	WorkflowID           uint
	TableDiscountOffered int
	DirectDiscount       float64
	Note                 string
	Allocations          []ZoneAllocationRequest
}

// Quote is the computed outcome of pricing a reservation request.
type Quote struct {
	TotalPrice  float64
	TotalChairs int
	Lines       []QuoteLine
}

// QuoteLine prices a single allocation request and fixes the table count
// it will consume from stock.
type QuoteLine struct {
	Request   ZoneAllocationRequest
	ZoneName  string
	Tables    int
	LinePrice float64
}

// AvailabilityReport is the advisory result of simulating a request set
// against a stock snapshot. It must be re-validated under lock.
type AvailabilityReport struct {
	OK          bool
	FailingZone string
	Needed      int
	Available   int
}

// Shortfall is how many tables the failing zone is missing.
func (r AvailabilityReport) Shortfall() int {
	return r.Needed - r.Available
}
