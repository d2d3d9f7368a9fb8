package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludotek/festival-booking-api/internal/domain"
)

type fakeReservationRepo struct {
	reservations map[uint]domain.Reservation
	nextID       uint

	lastCreateLines []domain.QuoteLine
	lastUpdateLines []domain.QuoteLine
	createErr       error
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{
		reservations: make(map[uint]domain.Reservation),
		nextID:       1,
	}
}

func (f *fakeReservationRepo) UpsertReservantByEmail(_ context.Context, reservant domain.Reservant) (domain.Reservant, error) {
	reservant.ID = 7

	return reservant, nil
}

func (f *fakeReservationRepo) CreateReservation(_ context.Context, reservation domain.Reservation, lines []domain.QuoteLine) (domain.Reservation, error) {
	if f.createErr != nil {
		return domain.Reservation{}, f.createErr
	}

	reservation.ID = f.nextID
	f.nextID++
	f.lastCreateLines = lines

	allocations := make([]domain.ZoneAllocation, len(lines))
	for i, line := range lines {
		allocations[i] = domain.ZoneAllocation{
			ReservationID:  reservation.ID,
			ZoneID:         line.Request.ZoneID,
			Mode:           line.Request.Mode,
			TablesOccupied: line.Tables,
			LinePrice:      line.LinePrice,
		}
	}
	reservation.Allocations = allocations

	f.reservations[reservation.ID] = reservation

	return reservation, nil
}

func (f *fakeReservationRepo) UpdateReservation(_ context.Context, reservation domain.Reservation, lines []domain.QuoteLine) (domain.Reservation, error) {
	if _, ok := f.reservations[reservation.ID]; !ok {
		return domain.Reservation{}, domain.ErrReservationNotFound
	}

	f.lastUpdateLines = lines
	f.reservations[reservation.ID] = reservation

	return reservation, nil
}

func (f *fakeReservationRepo) DeleteReservation(_ context.Context, id uint) error {
	if _, ok := f.reservations[id]; !ok {
		return domain.ErrReservationNotFound
	}

	delete(f.reservations, id)

	return nil
}

func (f *fakeReservationRepo) GetReservationByID(_ context.Context, id uint) (domain.Reservation, error) {
	reservation, ok := f.reservations[id]
	if !ok {
		return domain.Reservation{}, domain.ErrReservationNotFound
	}

	return reservation, nil
}

func (f *fakeReservationRepo) GetReservationsByFestivalID(_ context.Context, festivalID uint) ([]domain.Reservation, error) {
	var result []domain.Reservation
	for _, reservation := range f.reservations {
		if reservation.FestivalID == festivalID {
			result = append(result, reservation)
		}
	}

	return result, nil
}

func (f *fakeReservationRepo) CreateGameAllocation(_ context.Context, allocation domain.GameTableAllocation) (domain.GameTableAllocation, error) {
	if _, ok := f.reservations[allocation.ReservationID]; !ok {
		return domain.GameTableAllocation{}, domain.ErrReservationNotFound
	}

	allocation.ID = 1

	return allocation, nil
}

func (f *fakeReservationRepo) GetGameAllocationsByReservationID(_ context.Context, _ uint) ([]domain.GameTableAllocation, error) {
	return nil, nil
}

type fakeZoneLookup struct {
	zones []domain.PricingZone
}

func (f *fakeZoneLookup) GetZonesForFestival(_ context.Context, _ uint) ([]domain.PricingZone, error) {
	return f.zones, nil
}

func TestReservationService_CreateReservation(t *testing.T) {
	request := domain.ReservationRequest{
		Reservant: domain.Reservant{Name: "Club Meeple", Email: "contact@meeple.example"},
		Allocations: []domain.ZoneAllocationRequest{
			{ZoneID: 1, Mode: domain.PayByTable, StandardTables: 4, LargeTables: 1, Chairs: 10},
		},
	}

	t.Run("happy path fixes prices and chairs", func(t *testing.T) {
		repo := newFakeReservationRepo()
		svc := NewReservationService(repo, &fakeZoneLookup{zones: testZones()})

		req := request
		req.DirectDiscount = 50

		created, err := svc.CreateReservation(context.Background(), 1, req)

		require.NoError(t, err)
		assert.Equal(t, uint(7), created.ReservantID)
		assert.Equal(t, 250.0, created.StartPrice)
		assert.Equal(t, 200.0, created.FinalPrice)
		assert.Equal(t, 10, created.ChairCount)

		require.Len(t, repo.lastCreateLines, 1)
		assert.Equal(t, 5, repo.lastCreateLines[0].Tables)
	})

	t.Run("discount larger than price is rejected", func(t *testing.T) {
		repo := newFakeReservationRepo()
		svc := NewReservationService(repo, &fakeZoneLookup{zones: testZones()})

		req := request
		req.DirectDiscount = 300

		_, err := svc.CreateReservation(context.Background(), 1, req)

		assert.ErrorIs(t, err, domain.ErrInvalidDiscount)
		assert.Empty(t, repo.reservations)
	})

	t.Run("advisory check rejects oversized request", func(t *testing.T) {
		repo := newFakeReservationRepo()
		svc := NewReservationService(repo, &fakeZoneLookup{zones: testZones()})

		req := request
		req.Allocations = []domain.ZoneAllocationRequest{
			{ZoneID: 2, Mode: domain.PayByTable, StandardTables: 5},
		}

		_, err := svc.CreateReservation(context.Background(), 1, req)

		require.ErrorIs(t, err, domain.ErrInsufficientStock)

		var stockErr *domain.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, "Mezzanine", stockErr.ZoneName)
		assert.Equal(t, 3, stockErr.Shortfall())
	})

	t.Run("ledger failure surfaces from the repository", func(t *testing.T) {
		repo := newFakeReservationRepo()
		repo.createErr = &domain.InsufficientStockError{ZoneName: "Allée centrale", Needed: 5, Available: 1}
		svc := NewReservationService(repo, &fakeZoneLookup{zones: testZones()})

		_, err := svc.CreateReservation(context.Background(), 1, request)

		assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	})
}

func TestReservationService_UpdateReservation(t *testing.T) {
	t.Run("existing allocations count as available again", func(t *testing.T) {
		repo := newFakeReservationRepo()

		// Zone 2 has 2 free tables; the reservation already holds 5.
		repo.reservations[1] = domain.Reservation{
			ID:         1,
			FestivalID: 1,
			Allocations: []domain.ZoneAllocation{
				{ZoneID: 2, Mode: domain.PayByTable, TablesOccupied: 5},
			},
		}
		repo.nextID = 2

		svc := NewReservationService(repo, &fakeZoneLookup{zones: testZones()})

		updated, err := svc.UpdateReservation(context.Background(), 1, domain.ReservationUpdate{
			Allocations: []domain.ZoneAllocationRequest{
				{ZoneID: 2, Mode: domain.PayByTable, StandardTables: 6},
			},
		})

		require.NoError(t, err)
		assert.Equal(t, 210.0, updated.StartPrice)
		require.Len(t, repo.lastUpdateLines, 1)
		assert.Equal(t, 6, repo.lastUpdateLines[0].Tables)
	})

	t.Run("growth beyond restored stock is rejected", func(t *testing.T) {
		repo := newFakeReservationRepo()
		repo.reservations[1] = domain.Reservation{
			ID:         1,
			FestivalID: 1,
			Allocations: []domain.ZoneAllocation{
				{ZoneID: 2, Mode: domain.PayByTable, TablesOccupied: 5},
			},
		}

		svc := NewReservationService(repo, &fakeZoneLookup{zones: testZones()})

		_, err := svc.UpdateReservation(context.Background(), 1, domain.ReservationUpdate{
			Allocations: []domain.ZoneAllocationRequest{
				{ZoneID: 2, Mode: domain.PayByTable, StandardTables: 8},
			},
		})

		assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	})

	t.Run("missing reservation", func(t *testing.T) {
		repo := newFakeReservationRepo()
		svc := NewReservationService(repo, &fakeZoneLookup{zones: testZones()})

		_, err := svc.UpdateReservation(context.Background(), 42, domain.ReservationUpdate{
			Allocations: []domain.ZoneAllocationRequest{
				{ZoneID: 1, Mode: domain.PayByTable, StandardTables: 1},
			},
		})

		assert.ErrorIs(t, err, domain.ErrReservationNotFound)
	})
}

func TestReservationService_QuoteReservation(t *testing.T) {
	svc := NewReservationService(newFakeReservationRepo(), &fakeZoneLookup{zones: testZones()})

	quote, report, err := svc.QuoteReservation(context.Background(), 1, []domain.ZoneAllocationRequest{
		{ZoneID: 1, Mode: domain.PayByArea, SurfaceM2: 9},
	})

	require.NoError(t, err)
	assert.Equal(t, 112.5, quote.TotalPrice)
	assert.True(t, report.OK)
}
