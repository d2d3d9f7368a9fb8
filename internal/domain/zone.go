package domain

import "math"

// SquareMetersPerTable is the policy constant converting an area-based
// booking into consumed tables. It is the single definition used by both
// the advisory availability check and the authoritative stock ledger.
const SquareMetersPerTable = 4.0

// TablesForSurface returns the number of tables an area-based allocation
// consumes from a zone's stock.
func TablesForSurface(surfaceM2 float64) int {
	return int(math.Ceil(surfaceM2 / SquareMetersPerTable))
}

// PricingZone is a named stock pool of tables scoped to one festival.
// AvailableTables is the live counter mutated exclusively by the stock
// ledger; 0 <= AvailableTables <= TotalTables holds at every commit.
type PricingZone struct {
	ID                  uint
	FestivalID          uint
	Name                string
	TotalTables         int
	AvailableTables     int
	PricePerTable       float64
	PricePerSquareMeter float64
}
