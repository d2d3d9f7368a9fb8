package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludotek/festival-booking-api/internal/domain"
)

type fakeStockRepo struct {
	allocated domain.TableSizeTotals
	games     domain.TableSizeTotals
	chairs    int
}

func (f *fakeStockRepo) SumAllocatedTablesBySize(_ context.Context, _ uint) (domain.TableSizeTotals, error) {
	return f.allocated, nil
}

func (f *fakeStockRepo) SumGameTablesBySize(_ context.Context, _ uint) (domain.TableSizeTotals, error) {
	return f.games, nil
}

func (f *fakeStockRepo) SumReservedChairs(_ context.Context, _ uint) (int, error) {
	return f.chairs, nil
}

type fakeFestivalLookup struct {
	festival domain.Festival
	zones    []domain.PricingZone
	err      error
}

func (f *fakeFestivalLookup) GetByID(_ context.Context, _ uint) (domain.Festival, error) {
	if f.err != nil {
		return domain.Festival{}, f.err
	}

	return f.festival, nil
}

func (f *fakeFestivalLookup) GetZonesForFestival(_ context.Context, _ uint) ([]domain.PricingZone, error) {
	return f.zones, nil
}

func TestStockService_FestivalStockSummary(t *testing.T) {
	t.Run("combines reservations and game assignments", func(t *testing.T) {
		svc := NewStockService(
			&fakeStockRepo{
				allocated: domain.TableSizeTotals{Standard: 12, Large: 3, TownHall: 1},
				games:     domain.TableSizeTotals{Standard: 4, Large: 1},
				chairs:    40,
			},
			&fakeFestivalLookup{
				festival: domain.Festival{
					ID:                  1,
					StandardTablesTotal: 30,
					LargeTablesTotal:    10,
					TownHallTablesTotal: 2,
					ChairsTotal:         100,
				},
				zones: []domain.PricingZone{
					{ID: 1, Name: "Allée centrale", TotalTables: 20, AvailableTables: 6},
				},
			},
		)

		summary, err := svc.FestivalStockSummary(context.Background(), 1)

		require.NoError(t, err)
		assert.Equal(t, domain.TableStock{Total: 30, Reserved: 16, Available: 14}, summary.Standard)
		assert.Equal(t, domain.TableStock{Total: 10, Reserved: 4, Available: 6}, summary.Large)
		assert.Equal(t, domain.TableStock{Total: 2, Reserved: 1, Available: 1}, summary.TownHall)
		assert.Equal(t, domain.TableStock{Total: 100, Reserved: 40, Available: 60}, summary.Chairs)

		require.Len(t, summary.Zones, 1)
		assert.Equal(t, 14, summary.Zones[0].Occupied)
		assert.Equal(t, 6, summary.Zones[0].Available)
	})

	t.Run("unknown festival", func(t *testing.T) {
		svc := NewStockService(&fakeStockRepo{}, &fakeFestivalLookup{err: domain.ErrFestivalNotFound})

		_, err := svc.FestivalStockSummary(context.Background(), 42)

		assert.ErrorIs(t, err, domain.ErrFestivalNotFound)
	})
}
