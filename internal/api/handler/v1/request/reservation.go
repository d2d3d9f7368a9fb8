package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/ludotek/festival-booking-api/internal/domain"
)

type ZoneAllocationRequest struct {
	ZoneID         uint    `json:"zone_id"`
	Mode           string  `json:"mode"`
	StandardTables int     `json:"standard_tables"`
	LargeTables    int     `json:"large_tables"`
	TownHallTables int     `json:"town_hall_tables"`
	SurfaceM2      float64 `json:"surface_m2"`
	Chairs         int     `json:"chairs"`
}

func (req ZoneAllocationRequest) Validate() error {
	return validation.ValidateStruct(
		&req,
		validation.Field(&req.ZoneID, validation.Required),
		validation.Field(&req.Mode, validation.Required, validation.In(string(domain.PayByTable), string(domain.PayByArea))),
		validation.Field(&req.StandardTables, validation.Min(0)),
		validation.Field(&req.LargeTables, validation.Min(0)),
		validation.Field(&req.TownHallTables, validation.Min(0)),
		validation.Field(&req.SurfaceM2, validation.Min(0.0)),
		validation.Field(&req.Chairs, validation.Min(0)),
	)
}

func (req ZoneAllocationRequest) ToDomain() domain.ZoneAllocationRequest {
	return domain.ZoneAllocationRequest{
		ZoneID:         req.ZoneID,
		Mode:           domain.PaymentMode(req.Mode),
		StandardTables: req.StandardTables,
		LargeTables:    req.LargeTables,
		TownHallTables: req.TownHallTables,
		SurfaceM2:      req.SurfaceM2,
		Chairs:         req.Chairs,
	}
}

type ReservantRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func (req ReservantRequest) Validate() error {
	return validation.ValidateStruct(
		&req,
		validation.Field(&req.Name, validation.Required, validation.Length(2, 100)),
		validation.Field(&req.Email, validation.Required, is.Email),
	)
}

type CreateReservationRequest struct {
	Reservant            ReservantRequest        `json:"reservant"`
	WorkflowID           uint                    `json:"workflow_id"`
	TableDiscountOffered int                     `json:"table_discount_offered"`
	DirectDiscount       float64                 `json:"direct_discount"`
	Note                 string                  `json:"note"`
	Allocations          []ZoneAllocationRequest `json:"allocations"`
}

func (req *CreateReservationRequest) Validate() error {
	if err := req.Reservant.Validate(); err != nil {
		return err
	}

	if err := validation.ValidateStruct(
		req,
		validation.Field(&req.TableDiscountOffered, validation.Min(0)),
		validation.Field(&req.DirectDiscount, validation.Min(0.0)),
		validation.Field(&req.Allocations, validation.Required),
	); err != nil {
		return err
	}

	return validateAllocations(req.Allocations)
}

func (req *CreateReservationRequest) ToDomain() domain.ReservationRequest {
	return domain.ReservationRequest{
		Reservant: domain.Reservant{
			Name:  req.Reservant.Name,
			Email: req.Reservant.Email,
			Phone: req.Reservant.Phone,
		},
		WorkflowID:           req.WorkflowID,
		TableDiscountOffered: req.TableDiscountOffered,
		DirectDiscount:       req.DirectDiscount,
		Note:                 req.Note,
		Allocations:          allocationsToDomain(req.Allocations),
	}
}

type UpdateReservationRequest struct {
	WorkflowID           uint                    `json:"workflow_id"`
	TableDiscountOffered int                     `json:"table_discount_offered"`
	DirectDiscount       float64                 `json:"direct_discount"`
	Note                 string                  `json:"note"`
	Allocations          []ZoneAllocationRequest `json:"allocations"`
}

func (req *UpdateReservationRequest) Validate() error {
	if err := validation.ValidateStruct(
		req,
		validation.Field(&req.TableDiscountOffered, validation.Min(0)),
		validation.Field(&req.DirectDiscount, validation.Min(0.0)),
		validation.Field(&req.Allocations, validation.Required),
	); err != nil {
		return err
	}

	return validateAllocations(req.Allocations)
}

func (req *UpdateReservationRequest) ToDomain() domain.ReservationUpdate {
	return domain.ReservationUpdate{
		WorkflowID:           req.WorkflowID,
		TableDiscountOffered: req.TableDiscountOffered,
		DirectDiscount:       req.DirectDiscount,
		Note:                 req.Note,
		Allocations:          allocationsToDomain(req.Allocations),
	}
}

type QuoteRequest struct {
	Allocations []ZoneAllocationRequest `json:"allocations"`
}

func (req *QuoteRequest) Validate() error {
	if err := validation.ValidateStruct(
		req,
		validation.Field(&req.Allocations, validation.Required),
	); err != nil {
		return err
	}

	return validateAllocations(req.Allocations)
}

func (req *QuoteRequest) ToDomain() []domain.ZoneAllocationRequest {
	return allocationsToDomain(req.Allocations)
}

type CreateGameAllocationRequest struct {
	GameName       string `json:"game_name"`
	ZonePlanID     uint   `json:"zone_plan_id"`
	TableSize      string `json:"table_size"`
	TablesOccupied int    `json:"tables_occupied"`
}

func (req *CreateGameAllocationRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.GameName, validation.Required, validation.Length(1, 100)),
		validation.Field(&req.TableSize, validation.Required, validation.In(
			string(domain.TableStandard),
			string(domain.TableLarge),
			string(domain.TableTownHall),
		)),
		validation.Field(&req.TablesOccupied, validation.Required, validation.Min(1)),
	)
}

func validateAllocations(allocations []ZoneAllocationRequest) error {
	for _, allocation := range allocations {
		if err := allocation.Validate(); err != nil {
			return err
		}
	}

	return nil
}

func allocationsToDomain(allocations []ZoneAllocationRequest) []domain.ZoneAllocationRequest {
	result := make([]domain.ZoneAllocationRequest, len(allocations))
	for i, allocation := range allocations {
		result[i] = allocation.ToDomain()
	}

	return result
}
