package domain

import "time"

// Festival holds the global table and chair capacities used as the
// denominators of the stock dashboard.
type Festival struct {
	ID                  uint
	Name                string
	Location            string
	StartDate           time.Time
	EndDate             time.Time
	StandardTablesTotal int
	LargeTablesTotal    int
	TownHallTablesTotal int
	ChairsTotal         int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// TableStock is one row of the festival stock dashboard.
type TableStock struct {
	Total     int `json:"total"`
	Reserved  int `json:"reserved"`
	Available int `json:"available"`
}

// StockSummary is the festival-wide view combining zone-tarifaire table
// reservations and game-to-table assignments.
type StockSummary struct {
	Standard TableStock      `json:"standard"`
	Large    TableStock      `json:"large"`
	TownHall TableStock      `json:"town_hall"`
	Chairs   TableStock      `json:"chairs"`
	Zones    []ZoneOccupancy `json:"zones"`
}

// ZoneOccupancy reports a single zone's live counter against its capacity.
type ZoneOccupancy struct {
	ZoneID    uint   `json:"zone_id"`
	Name      string `json:"name"`
	Total     int    `json:"total"`
	Occupied  int    `json:"occupied"`
	Available int    `json:"available"`
}

// TableSizeTotals aggregates table counts by size.
type TableSizeTotals struct {
	Standard int
	Large    int
	TownHall int
}
