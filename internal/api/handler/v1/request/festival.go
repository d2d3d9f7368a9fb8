package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

type CreateFestivalRequest struct {
	Name                string    `json:"name"`
	Location            string    `json:"location"`
	StartDate           time.Time `json:"start_date"`
	EndDate             time.Time `json:"end_date"`
	StandardTablesTotal int       `json:"standard_tables_total"`
	LargeTablesTotal    int       `json:"large_tables_total"`
	TownHallTablesTotal int       `json:"town_hall_tables_total"`
	ChairsTotal         int       `json:"chairs_total"`
}

func (req *CreateFestivalRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Location, validation.Required),
		validation.Field(&req.StartDate, validation.Required),
		validation.Field(&req.EndDate, validation.Required),
		validation.Field(&req.StandardTablesTotal, validation.Min(0)),
		validation.Field(&req.LargeTablesTotal, validation.Min(0)),
		validation.Field(&req.TownHallTablesTotal, validation.Min(0)),
		validation.Field(&req.ChairsTotal, validation.Min(0)),
	)
}

type CreateZoneRequest struct {
	Name                string  `json:"name"`
	TotalTables         int     `json:"total_tables"`
	PricePerTable       float64 `json:"price_per_table"`
	PricePerSquareMeter float64 `json:"price_per_square_meter"`
}

func (req *CreateZoneRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.TotalTables, validation.Required, validation.Min(1)),
		validation.Field(&req.PricePerTable, validation.Min(0.0)),
		validation.Field(&req.PricePerSquareMeter, validation.Min(0.0)),
	)
}
