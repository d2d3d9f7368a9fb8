package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTablesForSurface(t *testing.T) {
	tests := []struct {
		name      string
		surfaceM2 float64
		want      int
	}{
		{
			name:      "exact multiple",
			surfaceM2: 8,
			want:      2,
		},
		{
			name:      "fraction rounds up",
			surfaceM2: 9,
			want:      3,
		},
		{
			name:      "below one table",
			surfaceM2: 0.5,
			want:      1,
		},
		{
			name:      "zero surface",
			surfaceM2: 0,
			want:      0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TablesForSurface(tt.surfaceM2))
		})
	}
}

func TestZoneAllocationRequest_TablesNeeded(t *testing.T) {
	tests := []struct {
		name    string
		request ZoneAllocationRequest
		want    int
	}{
		{
			name: "table mode sums sizes",
			request: ZoneAllocationRequest{
				Mode:           PayByTable,
				StandardTables: 3,
				LargeTables:    1,
				TownHallTables: 1,
			},
			want: 5,
		},
		{
			name: "area mode converts surface",
			request: ZoneAllocationRequest{
				Mode:      PayByArea,
				SurfaceM2: 9,
			},
			want: 3,
		},
		{
			name: "area mode ignores table counts",
			request: ZoneAllocationRequest{
				Mode:           PayByArea,
				StandardTables: 10,
				SurfaceM2:      4,
			},
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.request.TablesNeeded())
		})
	}
}

func TestInsufficientStockError(t *testing.T) {
	err := &InsufficientStockError{
		ZoneName:  "Allée centrale",
		Needed:    5,
		Available: 2,
	}

	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.Equal(t, 3, err.Shortfall())
	assert.Contains(t, err.Error(), "Allée centrale")
}
