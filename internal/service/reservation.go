package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/ludotek/festival-booking-api/internal/domain"
	"github.com/ludotek/festival-booking-api/internal/repository"
)

var (
	ErrInsufficientStock    = repository.ErrInsufficientStock
	ErrDuplicateReservation = repository.ErrDuplicateReservation
	ErrReservationNotFound  = repository.ErrReservationNotFound
	ErrFestivalNotFound     = repository.ErrFestivalNotFound
)

type ReservationRepository interface {
	UpsertReservantByEmail(ctx context.Context, reservant domain.Reservant) (domain.Reservant, error)
	CreateReservation(ctx context.Context, reservation domain.Reservation, lines []domain.QuoteLine) (domain.Reservation, error)
	UpdateReservation(ctx context.Context, reservation domain.Reservation, lines []domain.QuoteLine) (domain.Reservation, error)
	DeleteReservation(ctx context.Context, id uint) error
	GetReservationByID(ctx context.Context, id uint) (domain.Reservation, error)
	GetReservationsByFestivalID(ctx context.Context, festivalID uint) ([]domain.Reservation, error)
	CreateGameAllocation(ctx context.Context, allocation domain.GameTableAllocation) (domain.GameTableAllocation, error)
	GetGameAllocationsByReservationID(ctx context.Context, reservationID uint) ([]domain.GameTableAllocation, error)
}

type ZoneLookup interface {
	GetZonesForFestival(ctx context.Context, festivalID uint) ([]domain.PricingZone, error)
}

type ReservationService struct {
	repo  ReservationRepository
	zones ZoneLookup
}

func NewReservationService(repo ReservationRepository, zones ZoneLookup) *ReservationService {
	return &ReservationService{
		repo:  repo,
		zones: zones,
	}
}

// QuoteReservation prices an allocation set and reports current
// availability without persisting anything.
func (s *ReservationService) QuoteReservation(ctx context.Context, festivalID uint, requests []domain.ZoneAllocationRequest) (domain.Quote, domain.AvailabilityReport, error) {
	zones, err := s.zones.GetZonesForFestival(ctx, festivalID)
	if err != nil {
		return domain.Quote{}, domain.AvailabilityReport{}, fmt.Errorf("s.zones.GetZonesForFestival -> %w", err)
	}

	quote, err := ComputeQuote(requests, zones)
	if err != nil {
		return domain.Quote{}, domain.AvailabilityReport{}, err
	}

	report, err := CheckAvailability(requests, zones)
	if err != nil {
		return domain.Quote{}, domain.AvailabilityReport{}, err
	}

	return quote, report, nil
}

// CreateReservation runs the full create cycle: price the request, check
// availability against a snapshot, then commit the reservation with its
// allocations and the ledger decrements in one transaction. The advisory
// check can pass and the commit still fail with ErrInsufficientStock; a
// concurrent reservation may have drained the zone in between.
func (s *ReservationService) CreateReservation(ctx context.Context, festivalID uint, req domain.ReservationRequest) (domain.Reservation, error) {
	zones, err := s.zones.GetZonesForFestival(ctx, festivalID)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("s.zones.GetZonesForFestival -> %w", err)
	}

	quote, err := ComputeQuote(req.Allocations, zones)
	if err != nil {
		return domain.Reservation{}, err
	}

	report, err := CheckAvailability(req.Allocations, zones)
	if err != nil {
		return domain.Reservation{}, err
	}
	if !report.OK {
		return domain.Reservation{}, &domain.InsufficientStockError{
			ZoneName:  report.FailingZone,
			Needed:    report.Needed,
			Available: report.Available,
		}
	}

	finalPrice, err := applyDiscount(quote.TotalPrice, req.DirectDiscount)
	if err != nil {
		return domain.Reservation{}, err
	}

	reservant, err := s.repo.UpsertReservantByEmail(ctx, req.Reservant)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("s.repo.UpsertReservantByEmail -> %w", err)
	}

	reservation := domain.Reservation{
		ReservantID:          reservant.ID,
		FestivalID:           festivalID,
		WorkflowID:           req.WorkflowID,
		StartPrice:           quote.TotalPrice,
		FinalPrice:           finalPrice,
		TableDiscountOffered: req.TableDiscountOffered,
		DirectDiscount:       req.DirectDiscount,
		ChairCount:           quote.TotalChairs,
		Note:                 req.Note,
	}

	created, err := s.repo.CreateReservation(ctx, reservation, quote.Lines)
	if err != nil {
		return domain.Reservation{}, err
	}

	return created, nil
}

// UpdateReservation replaces the allocation set and recomputes prices.
// The advisory check runs against a snapshot in which the reservation's
// current allocations are already restored, mirroring what the ledger
// will see once it has released them inside the transaction.
func (s *ReservationService) UpdateReservation(ctx context.Context, id uint, req domain.ReservationUpdate) (domain.Reservation, error) {
	existing, err := s.repo.GetReservationByID(ctx, id)
	if err != nil {
		return domain.Reservation{}, err
	}

	zones, err := s.zones.GetZonesForFestival(ctx, existing.FestivalID)
	if err != nil {
		return domain.Reservation{}, fmt.Errorf("s.zones.GetZonesForFestival -> %w", err)
	}

	snapshot := restoredSnapshot(zones, existing.Allocations)

	quote, err := ComputeQuote(req.Allocations, snapshot)
	if err != nil {
		return domain.Reservation{}, err
	}

	report, err := CheckAvailability(req.Allocations, snapshot)
	if err != nil {
		return domain.Reservation{}, err
	}
	if !report.OK {
		return domain.Reservation{}, &domain.InsufficientStockError{
			ZoneName:  report.FailingZone,
			Needed:    report.Needed,
			Available: report.Available,
		}
	}

	finalPrice, err := applyDiscount(quote.TotalPrice, req.DirectDiscount)
	if err != nil {
		return domain.Reservation{}, err
	}

	existing.WorkflowID = req.WorkflowID
	existing.StartPrice = quote.TotalPrice
	existing.FinalPrice = finalPrice
	existing.TableDiscountOffered = req.TableDiscountOffered
	existing.DirectDiscount = req.DirectDiscount
	existing.ChairCount = quote.TotalChairs
	existing.Note = req.Note

	updated, err := s.repo.UpdateReservation(ctx, existing, quote.Lines)
	if err != nil {
		if isConsistencyFault(err) {
			zap.L().Error("stock counter inconsistency during reservation update",
				zap.Uint("reservation_id", id), zap.Error(err))
		}

		return domain.Reservation{}, err
	}

	return updated, nil
}

// DeleteReservation releases every allocation and removes the
// reservation; the rollback guarantee of the enclosing transaction means
// stock is never partially restored.
func (s *ReservationService) DeleteReservation(ctx context.Context, id uint) error {
	if err := s.repo.DeleteReservation(ctx, id); err != nil {
		if isConsistencyFault(err) {
			zap.L().Error("stock counter inconsistency during reservation delete",
				zap.Uint("reservation_id", id), zap.Error(err))
		}

		return err
	}

	return nil
}

func (s *ReservationService) GetReservation(ctx context.Context, id uint) (domain.Reservation, error) {
	return s.repo.GetReservationByID(ctx, id)
}

func (s *ReservationService) GetFestivalReservations(ctx context.Context, festivalID uint) ([]domain.Reservation, error) {
	reservations, err := s.repo.GetReservationsByFestivalID(ctx, festivalID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.GetReservationsByFestivalID -> %w", err)
	}

	return reservations, nil
}

func (s *ReservationService) AllocateGame(ctx context.Context, allocation domain.GameTableAllocation) (domain.GameTableAllocation, error) {
	created, err := s.repo.CreateGameAllocation(ctx, allocation)
	if err != nil {
		return domain.GameTableAllocation{}, err
	}

	return created, nil
}

func (s *ReservationService) GetGameAllocations(ctx context.Context, reservationID uint) ([]domain.GameTableAllocation, error) {
	allocations, err := s.repo.GetGameAllocationsByReservationID(ctx, reservationID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.GetGameAllocationsByReservationID -> %w", err)
	}

	return allocations, nil
}

func applyDiscount(startPrice, directDiscount float64) (float64, error) {
	if directDiscount < 0 || directDiscount > startPrice {
		return 0, domain.ErrInvalidDiscount
	}

	return startPrice - directDiscount, nil
}

// restoredSnapshot returns a copy of the zones with the reservation's
// current allocations added back to availability.
func restoredSnapshot(zones []domain.PricingZone, allocations []domain.ZoneAllocation) []domain.PricingZone {
	restored := make(map[uint]int)
	for _, allocation := range allocations {
		restored[allocation.ZoneID] += allocation.TablesOccupied
	}

	snapshot := make([]domain.PricingZone, len(zones))
	copy(snapshot, zones)
	for i := range snapshot {
		snapshot[i].AvailableTables += restored[snapshot[i].ID]
	}

	return snapshot
}

func isConsistencyFault(err error) bool {
	return errors.Is(err, domain.ErrStockInconsistent)
}
