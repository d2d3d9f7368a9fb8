package service

import (
	"context"
	"fmt"

	"github.com/ludotek/festival-booking-api/internal/domain"
)

type FestivalRepository interface {
	Create(ctx context.Context, festival domain.Festival) (domain.Festival, error)
	GetByID(ctx context.Context, id uint) (domain.Festival, error)
	GetAll(ctx context.Context) ([]domain.Festival, error)
	CreateZone(ctx context.Context, zone domain.PricingZone) (domain.PricingZone, error)
	GetZonesForFestival(ctx context.Context, festivalID uint) ([]domain.PricingZone, error)
}

type FestivalService struct {
	repo FestivalRepository
}

func NewFestivalService(repo FestivalRepository) *FestivalService {
	return &FestivalService{
		repo: repo,
	}
}

func (s *FestivalService) CreateFestival(ctx context.Context, festival domain.Festival) (domain.Festival, error) {
	created, err := s.repo.Create(ctx, festival)
	if err != nil {
		return domain.Festival{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *FestivalService) GetFestival(ctx context.Context, id uint) (domain.Festival, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *FestivalService) GetFestivals(ctx context.Context) ([]domain.Festival, error) {
	festivals, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.GetAll -> %w", err)
	}

	return festivals, nil
}

// CreateZone seeds the zone's availability counter from its capacity.
func (s *FestivalService) CreateZone(ctx context.Context, zone domain.PricingZone) (domain.PricingZone, error) {
	if _, err := s.repo.GetByID(ctx, zone.FestivalID); err != nil {
		return domain.PricingZone{}, err
	}

	zone.AvailableTables = zone.TotalTables

	created, err := s.repo.CreateZone(ctx, zone)
	if err != nil {
		return domain.PricingZone{}, fmt.Errorf("s.repo.CreateZone -> %w", err)
	}

	return created, nil
}

func (s *FestivalService) GetZones(ctx context.Context, festivalID uint) ([]domain.PricingZone, error) {
	zones, err := s.repo.GetZonesForFestival(ctx, festivalID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.GetZonesForFestival -> %w", err)
	}

	return zones, nil
}
