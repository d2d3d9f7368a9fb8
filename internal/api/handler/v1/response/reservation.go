package response

import (
	"time"

	"github.com/ludotek/festival-booking-api/internal/domain"
)

type ZoneAllocation struct {
	ID             uint    `json:"id"`
	ZoneID         uint    `json:"zone_id"`
	Mode           string  `json:"mode"`
	StandardTables int     `json:"standard_tables"`
	LargeTables    int     `json:"large_tables"`
	TownHallTables int     `json:"town_hall_tables"`
	SurfaceM2      float64 `json:"surface_m2"`
	Chairs         int     `json:"chairs"`
	TablesOccupied int     `json:"tables_occupied"`
	LinePrice      float64 `json:"line_price"`
}

type Reservation struct {
	ID                   uint             `json:"id"`
	ReservantID          uint             `json:"reservant_id"`
	FestivalID           uint             `json:"festival_id"`
	WorkflowID           uint             `json:"workflow_id"`
	StartPrice           float64          `json:"start_price"`
	FinalPrice           float64          `json:"final_price"`
	TableDiscountOffered int              `json:"table_discount_offered"`
	DirectDiscount       float64          `json:"direct_discount"`
	ChairCount           int              `json:"chair_count"`
	Note                 string           `json:"note,omitempty"`
	Allocations          []ZoneAllocation `json:"allocations"`
	CreatedAt            time.Time        `json:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at"`
}

func NewReservation(r domain.Reservation) Reservation {
	allocations := make([]ZoneAllocation, len(r.Allocations))
	for i, a := range r.Allocations {
		allocations[i] = ZoneAllocation{
			ID:             a.ID,
			ZoneID:         a.ZoneID,
			Mode:           string(a.Mode),
			StandardTables: a.StandardTables,
			LargeTables:    a.LargeTables,
			TownHallTables: a.TownHallTables,
			SurfaceM2:      a.SurfaceM2,
			Chairs:         a.Chairs,
			TablesOccupied: a.TablesOccupied,
			LinePrice:      a.LinePrice,
		}
	}

	return Reservation{
		ID:                   r.ID,
		ReservantID:          r.ReservantID,
		FestivalID:           r.FestivalID,
		WorkflowID:           r.WorkflowID,
		StartPrice:           r.StartPrice,
		FinalPrice:           r.FinalPrice,
		TableDiscountOffered: r.TableDiscountOffered,
		DirectDiscount:       r.DirectDiscount,
		ChairCount:           r.ChairCount,
		Note:                 r.Note,
		Allocations:          allocations,
		CreatedAt:            r.CreatedAt,
		UpdatedAt:            r.UpdatedAt,
	}
}

func NewReservations(reservations []domain.Reservation) []Reservation {
	result := make([]Reservation, len(reservations))
	for i, reservation := range reservations {
		result[i] = NewReservation(reservation)
	}

	return result
}

type QuoteLine struct {
	ZoneID    uint    `json:"zone_id"`
	ZoneName  string  `json:"zone_name"`
	Tables    int     `json:"tables"`
	LinePrice float64 `json:"line_price"`
}

type Quote struct {
	TotalPrice  float64     `json:"total_price"`
	TotalChairs int         `json:"total_chairs"`
	Available   bool        `json:"available"`
	FailingZone string      `json:"failing_zone,omitempty"`
	Shortfall   int         `json:"shortfall,omitempty"`
	Lines       []QuoteLine `json:"lines"`
}

func NewQuote(q domain.Quote, report domain.AvailabilityReport) Quote {
	lines := make([]QuoteLine, len(q.Lines))
	for i, line := range q.Lines {
		lines[i] = QuoteLine{
			ZoneID:    line.Request.ZoneID,
			ZoneName:  line.ZoneName,
			Tables:    line.Tables,
			LinePrice: line.LinePrice,
		}
	}

	quote := Quote{
		TotalPrice:  q.TotalPrice,
		TotalChairs: q.TotalChairs,
		Available:   report.OK,
		Lines:       lines,
	}
	if !report.OK {
		quote.FailingZone = report.FailingZone
		quote.Shortfall = report.Shortfall()
	}

	return quote
}

type GameTableAllocation struct {
	ID             uint   `json:"id"`
	ReservationID  uint   `json:"reservation_id"`
	GameName       string `json:"game_name"`
	ZonePlanID     uint   `json:"zone_plan_id"`
	TableSize      string `json:"table_size"`
	TablesOccupied int    `json:"tables_occupied"`
}

func NewGameTableAllocation(g domain.GameTableAllocation) GameTableAllocation {
	return GameTableAllocation{
		ID:             g.ID,
		ReservationID:  g.ReservationID,
		GameName:       g.GameName,
		ZonePlanID:     g.ZonePlanID,
		TableSize:      string(g.TableSize),
		TablesOccupied: g.TablesOccupied,
	}
}

func NewGameTableAllocations(allocations []domain.GameTableAllocation) []GameTableAllocation {
	result := make([]GameTableAllocation, len(allocations))
	for i, allocation := range allocations {
		result[i] = NewGameTableAllocation(allocation)
	}

	return result
}
