package repository

import (
	"context"
	"fmt"

	"github.com/ludotek/festival-booking-api/internal/domain"
	"github.com/ludotek/festival-booking-api/internal/repository/dao"
)

var (
	ErrInsufficientStock    = domain.ErrInsufficientStock
	ErrDuplicateReservation = domain.ErrDuplicateReservation
	ErrReservationNotFound  = domain.ErrReservationNotFound
)

type ReservationDAO interface {
	Insert(ctx context.Context, reservation dao.Reservation, allocations []dao.ZoneAllocation) (dao.Reservation, error)
	Update(ctx context.Context, reservation dao.Reservation, allocations []dao.ZoneAllocation) (dao.Reservation, error)
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (dao.Reservation, error)
	GetByFestivalID(ctx context.Context, festivalID uint) ([]dao.Reservation, error)
	SumAllocatedTablesBySize(ctx context.Context, festivalID uint) (standard, large, townHall int, err error)
	SumGameTablesBySize(ctx context.Context, festivalID uint) (map[string]int, error)
	SumReservedChairs(ctx context.Context, festivalID uint) (int, error)
}

type ReservantDAO interface {
	UpsertByEmail(ctx context.Context, reservant dao.Reservant) (dao.Reservant, error)
}

type GameAllocationDAO interface {
	Insert(ctx context.Context, allocation dao.GameTableAllocation) (dao.GameTableAllocation, error)
	GetByReservationID(ctx context.Context, reservationID uint) ([]dao.GameTableAllocation, error)
}

type ReservationRepository struct {
	dao        ReservationDAO
	reservants ReservantDAO
	games      GameAllocationDAO
}

func NewReservationRepository(dao ReservationDAO, reservants ReservantDAO, games GameAllocationDAO) *ReservationRepository {
	return &ReservationRepository{
		dao:        dao,
		reservants: reservants,
		games:      games,
	}
}

func (r *ReservationRepository) domainToDao(res domain.Reservation) dao.Reservation {
	return dao.Reservation{
		ID:                   res.ID,
		ReservantID:          res.ReservantID,
		FestivalID:           res.FestivalID,
		WorkflowID:           res.WorkflowID,
		StartPrice:           res.StartPrice,
		FinalPrice:           res.FinalPrice,
		TableDiscountOffered: res.TableDiscountOffered,
		DirectDiscount:       res.DirectDiscount,
		ChairCount:           res.ChairCount,
		Note:                 res.Note,
	}
}

func (r *ReservationRepository) daoToDomain(res dao.Reservation) domain.Reservation {
	allocations := make([]domain.ZoneAllocation, len(res.Allocations))
	for i, allocation := range res.Allocations {
		allocations[i] = r.allocationDaoToDomain(allocation)
	}

	return domain.Reservation{
		ID:                   res.ID,
		ReservantID:          res.ReservantID,
		FestivalID:           res.FestivalID,
		WorkflowID:           res.WorkflowID,
		StartPrice:           res.StartPrice,
		FinalPrice:           res.FinalPrice,
		TableDiscountOffered: res.TableDiscountOffered,
		DirectDiscount:       res.DirectDiscount,
		ChairCount:           res.ChairCount,
		Note:                 res.Note,
		Allocations:          allocations,
		CreatedAt:            res.CreatedAt,
		UpdatedAt:            res.UpdatedAt,
	}
}

func (r *ReservationRepository) allocationDaoToDomain(a dao.ZoneAllocation) domain.ZoneAllocation {
	return domain.ZoneAllocation{
		ID:             a.ID,
		ReservationID:  a.ReservationID,
		ZoneID:         a.ZoneID,
		Mode:           domain.PaymentMode(a.Mode),
		StandardTables: a.StandardTables,
		LargeTables:    a.LargeTables,
		TownHallTables: a.TownHallTables,
		SurfaceM2:      a.SurfaceM2,
		Chairs:         a.Chairs,
		TablesOccupied: a.TablesOccupied,
		LinePrice:      a.LinePrice,
	}
}

// linesToDao turns priced quote lines into allocation rows; the ledger
// amount is fixed here from the quote's table count.
func (r *ReservationRepository) linesToDao(lines []domain.QuoteLine) []dao.ZoneAllocation {
	allocations := make([]dao.ZoneAllocation, len(lines))
	for i, line := range lines {
		allocations[i] = dao.ZoneAllocation{
			ZoneID:         line.Request.ZoneID,
			Mode:           string(line.Request.Mode),
			StandardTables: line.Request.StandardTables,
			LargeTables:    line.Request.LargeTables,
			TownHallTables: line.Request.TownHallTables,
			SurfaceM2:      line.Request.SurfaceM2,
			Chairs:         line.Request.Chairs,
			TablesOccupied: line.Tables,
			LinePrice:      line.LinePrice,
		}
	}

	return allocations
}

func (r *ReservationRepository) UpsertReservantByEmail(ctx context.Context, reservant domain.Reservant) (domain.Reservant, error) {
	upserted, err := r.reservants.UpsertByEmail(ctx, dao.Reservant{
		ID:    reservant.ID,
		Name:  reservant.Name,
		Email: reservant.Email,
		Phone: reservant.Phone,
	})
	if err != nil {
		return domain.Reservant{}, fmt.Errorf("r.reservants.UpsertByEmail -> %w", err)
	}

	return domain.Reservant{
		ID:    upserted.ID,
		Name:  upserted.Name,
		Email: upserted.Email,
		Phone: upserted.Phone,
	}, nil
}

func (r *ReservationRepository) CreateReservation(ctx context.Context, reservation domain.Reservation, lines []domain.QuoteLine) (domain.Reservation, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(reservation), r.linesToDao(lines))
	if err != nil {
		return domain.Reservation{}, err
	}

	return r.daoToDomain(created), nil
}

func (r *ReservationRepository) UpdateReservation(ctx context.Context, reservation domain.Reservation, lines []domain.QuoteLine) (domain.Reservation, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(reservation), r.linesToDao(lines))
	if err != nil {
		return domain.Reservation{}, err
	}

	return r.daoToDomain(updated), nil
}

func (r *ReservationRepository) DeleteReservation(ctx context.Context, id uint) error {
	return r.dao.Delete(ctx, id)
}

func (r *ReservationRepository) GetReservationByID(ctx context.Context, id uint) (domain.Reservation, error) {
	reservation, err := r.dao.GetByID(ctx, id)
	if err != nil {
		return domain.Reservation{}, err
	}

	return r.daoToDomain(reservation), nil
}

func (r *ReservationRepository) GetReservationsByFestivalID(ctx context.Context, festivalID uint) ([]domain.Reservation, error) {
	reservations, err := r.dao.GetByFestivalID(ctx, festivalID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.GetByFestivalID -> %w", err)
	}

	result := make([]domain.Reservation, len(reservations))
	for i, reservation := range reservations {
		result[i] = r.daoToDomain(reservation)
	}

	return result, nil
}

func (r *ReservationRepository) CreateGameAllocation(ctx context.Context, allocation domain.GameTableAllocation) (domain.GameTableAllocation, error) {
	created, err := r.games.Insert(ctx, dao.GameTableAllocation{
		ReservationID:  allocation.ReservationID,
		GameName:       allocation.GameName,
		ZonePlanID:     allocation.ZonePlanID,
		TableSize:      string(allocation.TableSize),
		TablesOccupied: allocation.TablesOccupied,
	})
	if err != nil {
		return domain.GameTableAllocation{}, err
	}

	return r.gameDaoToDomain(created), nil
}

func (r *ReservationRepository) GetGameAllocationsByReservationID(ctx context.Context, reservationID uint) ([]domain.GameTableAllocation, error) {
	allocations, err := r.games.GetByReservationID(ctx, reservationID)
	if err != nil {
		return nil, fmt.Errorf("r.games.GetByReservationID -> %w", err)
	}

	result := make([]domain.GameTableAllocation, len(allocations))
	for i, allocation := range allocations {
		result[i] = r.gameDaoToDomain(allocation)
	}

	return result, nil
}

func (r *ReservationRepository) gameDaoToDomain(g dao.GameTableAllocation) domain.GameTableAllocation {
	return domain.GameTableAllocation{
		ID:             g.ID,
		ReservationID:  g.ReservationID,
		GameName:       g.GameName,
		ZonePlanID:     g.ZonePlanID,
		TableSize:      domain.TableSize(g.TableSize),
		TablesOccupied: g.TablesOccupied,
	}
}

// SumAllocatedTablesBySize reports committed zone-tarifaire table counts
// by size for the festival.
func (r *ReservationRepository) SumAllocatedTablesBySize(ctx context.Context, festivalID uint) (domain.TableSizeTotals, error) {
	standard, large, townHall, err := r.dao.SumAllocatedTablesBySize(ctx, festivalID)
	if err != nil {
		return domain.TableSizeTotals{}, fmt.Errorf("r.dao.SumAllocatedTablesBySize -> %w", err)
	}

	return domain.TableSizeTotals{Standard: standard, Large: large, TownHall: townHall}, nil
}

// SumGameTablesBySize reports jeux_alloues table occupation by size for
// the festival.
func (r *ReservationRepository) SumGameTablesBySize(ctx context.Context, festivalID uint) (domain.TableSizeTotals, error) {
	totals, err := r.dao.SumGameTablesBySize(ctx, festivalID)
	if err != nil {
		return domain.TableSizeTotals{}, fmt.Errorf("r.dao.SumGameTablesBySize -> %w", err)
	}

	return domain.TableSizeTotals{
		Standard: totals[string(domain.TableStandard)],
		Large:    totals[string(domain.TableLarge)],
		TownHall: totals[string(domain.TableTownHall)],
	}, nil
}

func (r *ReservationRepository) SumReservedChairs(ctx context.Context, festivalID uint) (int, error) {
	chairs, err := r.dao.SumReservedChairs(ctx, festivalID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.SumReservedChairs -> %w", err)
	}

	return chairs, nil
}
