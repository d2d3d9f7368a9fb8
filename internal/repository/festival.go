package repository

import (
	"context"
	"fmt"

	"github.com/ludotek/festival-booking-api/internal/domain"
	"github.com/ludotek/festival-booking-api/internal/repository/dao"
)

var ErrFestivalNotFound = domain.ErrFestivalNotFound

type FestivalDAO interface {
	Insert(ctx context.Context, festival dao.Festival) (dao.Festival, error)
	GetByID(ctx context.Context, id uint) (dao.Festival, error)
	GetAll(ctx context.Context) ([]dao.Festival, error)
}

type ZoneDAO interface {
	Insert(ctx context.Context, zone dao.PricingZone) (dao.PricingZone, error)
	GetByFestivalID(ctx context.Context, festivalID uint) ([]dao.PricingZone, error)
}

type FestivalRepository struct {
	dao   FestivalDAO
	zones ZoneDAO
}

func NewFestivalRepository(dao FestivalDAO, zones ZoneDAO) *FestivalRepository {
	return &FestivalRepository{
		dao:   dao,
		zones: zones,
	}
}

func (r *FestivalRepository) domainToDao(f domain.Festival) dao.Festival {
	return dao.Festival{
		ID:                  f.ID,
		Name:                f.Name,
		Location:            f.Location,
		StartDate:           f.StartDate,
		EndDate:             f.EndDate,
		StandardTablesTotal: f.StandardTablesTotal,
		LargeTablesTotal:    f.LargeTablesTotal,
		TownHallTablesTotal: f.TownHallTablesTotal,
		ChairsTotal:         f.ChairsTotal,
		CreatedAt:           f.CreatedAt,
		UpdatedAt:           f.UpdatedAt,
	}
}

func (r *FestivalRepository) daoToDomain(f dao.Festival) domain.Festival {
	return domain.Festival{
		ID:                  f.ID,
		Name:                f.Name,
		Location:            f.Location,
		StartDate:           f.StartDate,
		EndDate:             f.EndDate,
		StandardTablesTotal: f.StandardTablesTotal,
		LargeTablesTotal:    f.LargeTablesTotal,
		TownHallTablesTotal: f.TownHallTablesTotal,
		ChairsTotal:         f.ChairsTotal,
		CreatedAt:           f.CreatedAt,
		UpdatedAt:           f.UpdatedAt,
	}
}

func (r *FestivalRepository) zoneDomainToDao(z domain.PricingZone) dao.PricingZone {
	return dao.PricingZone{
		ID:                  z.ID,
		FestivalID:          z.FestivalID,
		Name:                z.Name,
		TotalTables:         z.TotalTables,
		AvailableTables:     z.AvailableTables,
		PricePerTable:       z.PricePerTable,
		PricePerSquareMeter: z.PricePerSquareMeter,
	}
}

func (r *FestivalRepository) zoneDaoToDomain(z dao.PricingZone) domain.PricingZone {
	return domain.PricingZone{
		ID:                  z.ID,
		FestivalID:          z.FestivalID,
		Name:                z.Name,
		TotalTables:         z.TotalTables,
		AvailableTables:     z.AvailableTables,
		PricePerTable:       z.PricePerTable,
		PricePerSquareMeter: z.PricePerSquareMeter,
	}
}

func (r *FestivalRepository) Create(ctx context.Context, festival domain.Festival) (domain.Festival, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(festival))
	if err != nil {
		return domain.Festival{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *FestivalRepository) GetByID(ctx context.Context, id uint) (domain.Festival, error) {
	festival, err := r.dao.GetByID(ctx, id)
	if err != nil {
		return domain.Festival{}, fmt.Errorf("r.dao.GetByID -> %w", err)
	}

	return r.daoToDomain(festival), nil
}

func (r *FestivalRepository) GetAll(ctx context.Context) ([]domain.Festival, error) {
	festivals, err := r.dao.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.GetAll -> %w", err)
	}

	result := make([]domain.Festival, len(festivals))
	for i, festival := range festivals {
		result[i] = r.daoToDomain(festival)
	}

	return result, nil
}

func (r *FestivalRepository) CreateZone(ctx context.Context, zone domain.PricingZone) (domain.PricingZone, error) {
	created, err := r.zones.Insert(ctx, r.zoneDomainToDao(zone))
	if err != nil {
		return domain.PricingZone{}, fmt.Errorf("r.zones.Insert -> %w", err)
	}

	return r.zoneDaoToDomain(created), nil
}

func (r *FestivalRepository) GetZonesForFestival(ctx context.Context, festivalID uint) ([]domain.PricingZone, error) {
	zones, err := r.zones.GetByFestivalID(ctx, festivalID)
	if err != nil {
		return nil, fmt.Errorf("r.zones.GetByFestivalID -> %w", err)
	}

	result := make([]domain.PricingZone, len(zones))
	for i, zone := range zones {
		result[i] = r.zoneDaoToDomain(zone)
	}

	return result, nil
}
