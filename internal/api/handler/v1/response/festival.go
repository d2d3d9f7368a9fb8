package response

import (
	"time"

	"github.com/ludotek/festival-booking-api/internal/domain"
)

type Festival struct {
	ID                  uint      `json:"id"`
	Name                string    `json:"name"`
	Location            string    `json:"location"`
	StartDate           time.Time `json:"start_date"`
	EndDate             time.Time `json:"end_date"`
	StandardTablesTotal int       `json:"standard_tables_total"`
	LargeTablesTotal    int       `json:"large_tables_total"`
	TownHallTablesTotal int       `json:"town_hall_tables_total"`
	ChairsTotal         int       `json:"chairs_total"`
}

func NewFestival(f domain.Festival) Festival {
	return Festival{
		ID:                  f.ID,
		Name:                f.Name,
		Location:            f.Location,
		StartDate:           f.StartDate,
		EndDate:             f.EndDate,
		StandardTablesTotal: f.StandardTablesTotal,
		LargeTablesTotal:    f.LargeTablesTotal,
		TownHallTablesTotal: f.TownHallTablesTotal,
		ChairsTotal:         f.ChairsTotal,
	}
}

func NewFestivals(festivals []domain.Festival) []Festival {
	result := make([]Festival, len(festivals))
	for i, festival := range festivals {
		result[i] = NewFestival(festival)
	}

	return result
}

type PricingZone struct {
	ID                  uint    `json:"id"`
	FestivalID          uint    `json:"festival_id"`
	Name                string  `json:"name"`
	TotalTables         int     `json:"total_tables"`
	AvailableTables     int     `json:"available_tables"`
	PricePerTable       float64 `json:"price_per_table"`
	PricePerSquareMeter float64 `json:"price_per_square_meter"`
}

func NewPricingZone(z domain.PricingZone) PricingZone {
	return PricingZone{
		ID:                  z.ID,
		FestivalID:          z.FestivalID,
		Name:                z.Name,
		TotalTables:         z.TotalTables,
		AvailableTables:     z.AvailableTables,
		PricePerTable:       z.PricePerTable,
		PricePerSquareMeter: z.PricePerSquareMeter,
	}
}

func NewPricingZones(zones []domain.PricingZone) []PricingZone {
	result := make([]PricingZone, len(zones))
	for i, zone := range zones {
		result[i] = NewPricingZone(zone)
	}

	return result
}
