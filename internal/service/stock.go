package service

import (
	"context"
	"fmt"

	"github.com/ludotek/festival-booking-api/internal/domain"
)

type StockRepository interface {
	SumAllocatedTablesBySize(ctx context.Context, festivalID uint) (domain.TableSizeTotals, error)
	SumGameTablesBySize(ctx context.Context, festivalID uint) (domain.TableSizeTotals, error)
	SumReservedChairs(ctx context.Context, festivalID uint) (int, error)
}

type FestivalLookup interface {
	GetByID(ctx context.Context, id uint) (domain.Festival, error)
	GetZonesForFestival(ctx context.Context, festivalID uint) ([]domain.PricingZone, error)
}

type StockService struct {
	stock     StockRepository
	festivals FestivalLookup
}

func NewStockService(stock StockRepository, festivals FestivalLookup) *StockService {
	return &StockService{
		stock:     stock,
		festivals: festivals,
	}
}

// FestivalStockSummary aggregates reserved table counts across every
// reservation of the festival, by size, plus chairs and per-zone
// occupancy. Reserved counts combine the zone-tarifaire allocations and
// the per-game table assignments.
func (s *StockService) FestivalStockSummary(ctx context.Context, festivalID uint) (domain.StockSummary, error) {
	festival, err := s.festivals.GetByID(ctx, festivalID)
	if err != nil {
		return domain.StockSummary{}, err
	}

	allocated, err := s.stock.SumAllocatedTablesBySize(ctx, festivalID)
	if err != nil {
		return domain.StockSummary{}, fmt.Errorf("s.stock.SumAllocatedTablesBySize -> %w", err)
	}

	games, err := s.stock.SumGameTablesBySize(ctx, festivalID)
	if err != nil {
		return domain.StockSummary{}, fmt.Errorf("s.stock.SumGameTablesBySize -> %w", err)
	}

	chairs, err := s.stock.SumReservedChairs(ctx, festivalID)
	if err != nil {
		return domain.StockSummary{}, fmt.Errorf("s.stock.SumReservedChairs -> %w", err)
	}

	zones, err := s.festivals.GetZonesForFestival(ctx, festivalID)
	if err != nil {
		return domain.StockSummary{}, fmt.Errorf("s.festivals.GetZonesForFestival -> %w", err)
	}

	occupancy := make([]domain.ZoneOccupancy, len(zones))
	for i, zone := range zones {
		occupancy[i] = domain.ZoneOccupancy{
			ZoneID:    zone.ID,
			Name:      zone.Name,
			Total:     zone.TotalTables,
			Occupied:  zone.TotalTables - zone.AvailableTables,
			Available: zone.AvailableTables,
		}
	}

	return domain.StockSummary{
		Standard: tableStock(festival.StandardTablesTotal, allocated.Standard+games.Standard),
		Large:    tableStock(festival.LargeTablesTotal, allocated.Large+games.Large),
		TownHall: tableStock(festival.TownHallTablesTotal, allocated.TownHall+games.TownHall),
		Chairs:   tableStock(festival.ChairsTotal, chairs),
		Zones:    occupancy,
	}, nil
}

func tableStock(total, reserved int) domain.TableStock {
	return domain.TableStock{
		Total:     total,
		Reserved:  reserved,
		Available: total - reserved,
	}
}
