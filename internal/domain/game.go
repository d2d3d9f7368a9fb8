package domain

type TableSize string

const (
	TableStandard TableSize = "standard"
	TableLarge    TableSize = "large"
	TableTownHall TableSize = "town_hall"
)

// GameTableAllocation binds one game copy, for one reservation, to a
// required table size and a specific zone-plan slot.
type GameTableAllocation struct {
	ID             uint
	ReservationID  uint
	GameName       string
	ZonePlanID     uint
	TableSize      TableSize
	TablesOccupied int
}
