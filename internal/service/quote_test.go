package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ludotek/festival-booking-api/internal/domain"
)

func testZones() []domain.PricingZone {
	return []domain.PricingZone{
		{
			ID:                  1,
			FestivalID:          1,
			Name:                "Allée centrale",
			TotalTables:         20,
			AvailableTables:     10,
			PricePerTable:       50,
			PricePerSquareMeter: 12.5,
		},
		{
			ID:                  2,
			FestivalID:          1,
			Name:                "Mezzanine",
			TotalTables:         8,
			AvailableTables:     2,
			PricePerTable:       35,
			PricePerSquareMeter: 10,
		},
	}
}

func TestComputeQuote(t *testing.T) {
	tests := []struct {
		name       string
		requests   []domain.ZoneAllocationRequest
		wantPrice  float64
		wantChairs int
		wantTables []int
		wantErr    error
	}{
		{
			name: "tables priced per table with chairs",
			requests: []domain.ZoneAllocationRequest{
				{ZoneID: 1, Mode: domain.PayByTable, StandardTables: 4, LargeTables: 1, Chairs: 10},
			},
			wantPrice:  250,
			wantChairs: 10,
			wantTables: []int{5},
		},
		{
			name: "area priced per square meter without chairs",
			requests: []domain.ZoneAllocationRequest{
				{ZoneID: 1, Mode: domain.PayByArea, SurfaceM2: 9, Chairs: 4},
			},
			wantPrice:  112.5,
			wantChairs: 0,
			wantTables: []int{3},
		},
		{
			name: "mixed modes accumulate",
			requests: []domain.ZoneAllocationRequest{
				{ZoneID: 1, Mode: domain.PayByTable, StandardTables: 2, Chairs: 4},
				{ZoneID: 2, Mode: domain.PayByArea, SurfaceM2: 4},
			},
			wantPrice:  140,
			wantChairs: 4,
			wantTables: []int{2, 1},
		},
		{
			name:     "no allocations",
			requests: nil,
			wantErr:  domain.ErrNoAllocations,
		},
		{
			name: "unknown zone",
			requests: []domain.ZoneAllocationRequest{
				{ZoneID: 99, Mode: domain.PayByTable, StandardTables: 1},
			},
			wantErr: domain.ErrUnknownZone,
		},
		{
			name: "table mode with zero tables",
			requests: []domain.ZoneAllocationRequest{
				{ZoneID: 1, Mode: domain.PayByTable, Chairs: 4},
			},
			wantErr: domain.ErrNoTablesRequested,
		},
		{
			name: "area mode with zero surface",
			requests: []domain.ZoneAllocationRequest{
				{ZoneID: 1, Mode: domain.PayByArea},
			},
			wantErr: domain.ErrInvalidSurface,
		},
		{
			name: "invalid payment mode",
			requests: []domain.ZoneAllocationRequest{
				{ZoneID: 1, Mode: "by_magic", StandardTables: 1},
			},
			wantErr: domain.ErrInvalidPaymentMode,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := ComputeQuote(tt.requests, testZones())

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantPrice, quote.TotalPrice)
			assert.Equal(t, tt.wantChairs, quote.TotalChairs)

			require.Len(t, quote.Lines, len(tt.wantTables))
			for i, want := range tt.wantTables {
				assert.Equal(t, want, quote.Lines[i].Tables)
			}
		})
	}
}

func TestCheckAvailability(t *testing.T) {
	t.Run("all requests fit", func(t *testing.T) {
		report, err := CheckAvailability([]domain.ZoneAllocationRequest{
			{ZoneID: 1, Mode: domain.PayByTable, StandardTables: 6},
			{ZoneID: 2, Mode: domain.PayByArea, SurfaceM2: 8},
		}, testZones())

		require.NoError(t, err)
		assert.True(t, report.OK)
	})

	t.Run("first failing zone is reported", func(t *testing.T) {
		report, err := CheckAvailability([]domain.ZoneAllocationRequest{
			{ZoneID: 1, Mode: domain.PayByTable, StandardTables: 4},
			{ZoneID: 2, Mode: domain.PayByTable, StandardTables: 5},
		}, testZones())

		require.NoError(t, err)
		assert.False(t, report.OK)
		assert.Equal(t, "Mezzanine", report.FailingZone)
		assert.Equal(t, 5, report.Needed)
		assert.Equal(t, 2, report.Available)
		assert.Equal(t, 3, report.Shortfall())
	})

	t.Run("repeated zone decrements the simulation", func(t *testing.T) {
		report, err := CheckAvailability([]domain.ZoneAllocationRequest{
			{ZoneID: 1, Mode: domain.PayByTable, StandardTables: 7},
			{ZoneID: 1, Mode: domain.PayByTable, StandardTables: 7},
		}, testZones())

		require.NoError(t, err)
		assert.False(t, report.OK)
		assert.Equal(t, "Allée centrale", report.FailingZone)
		assert.Equal(t, 3, report.Available)
	})

	t.Run("unknown zone", func(t *testing.T) {
		_, err := CheckAvailability([]domain.ZoneAllocationRequest{
			{ZoneID: 42, Mode: domain.PayByTable, StandardTables: 1},
		}, testZones())

		assert.ErrorIs(t, err, domain.ErrUnknownZone)
	})

	t.Run("empty request set", func(t *testing.T) {
		_, err := CheckAvailability(nil, testZones())

		assert.ErrorIs(t, err, domain.ErrNoAllocations)
	})
}
