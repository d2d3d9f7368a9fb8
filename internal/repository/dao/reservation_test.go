package dao

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"testing"

	"github.com/ory/dockertest/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ludotek/festival-booking-api/internal/domain"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		log.Fatalf("could not connect to docker: %v", err)
	}

	resource, err := pool.Run("postgres", "16-alpine", []string{
		"POSTGRES_USER=test",
		"POSTGRES_PASSWORD=test",
		"POSTGRES_DB=festival_test",
	})
	if err != nil {
		log.Fatalf("could not start postgres: %v", err)
	}

	dsn := fmt.Sprintf("host=localhost port=%v user=test password=test dbname=festival_test sslmode=disable", resource.GetPort("5432/tcp"))

	if err = pool.Retry(func() error {
		testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			return err
		}

		sqlDB, err := testDB.DB()
		if err != nil {
			return err
		}

		return sqlDB.Ping()
	}); err != nil {
		log.Fatalf("could not connect to postgres: %v", err)
	}

	if err = InitTables(testDB); err != nil {
		log.Fatalf("could not migrate tables: %v", err)
	}

	code := m.Run()

	if err = pool.Purge(resource); err != nil {
		log.Fatalf("could not purge resource: %v", err)
	}

	os.Exit(code)
}

func resetTables(t *testing.T) {
	t.Helper()

	for _, table := range []string{"jeux_alloues", "reservation_zones_tarifaires", "reservations", "reservants", "zones_tarifaires", "festivals"} {
		require.NoError(t, testDB.Exec("DELETE FROM "+table).Error)
	}
}

func seedFestivalWithZone(t *testing.T, totalTables int) (Festival, PricingZone) {
	t.Helper()

	festival := Festival{
		Name:                "Ludopolis",
		Location:            "Lyon",
		StandardTablesTotal: 50,
		ChairsTotal:         200,
	}
	require.NoError(t, testDB.Create(&festival).Error)

	zone := PricingZone{
		FestivalID:          festival.ID,
		Name:                "Allée centrale",
		TotalTables:         totalTables,
		AvailableTables:     totalTables,
		PricePerTable:       50,
		PricePerSquareMeter: 12.5,
	}
	require.NoError(t, testDB.Create(&zone).Error)

	return festival, zone
}

func seedReservant(t *testing.T, email string) Reservant {
	t.Helper()

	reservant := Reservant{
		Name:  "Club Meeple",
		Email: email,
	}
	require.NoError(t, testDB.Create(&reservant).Error)

	return reservant
}

func zoneAvailability(t *testing.T, zoneID uint) int {
	t.Helper()

	var zone PricingZone
	require.NoError(t, testDB.First(&zone, zoneID).Error)

	return zone.AvailableTables
}

func TestReservationDAO_Insert(t *testing.T) {
	ctx := context.Background()
	reservationDAO := NewReservationDAO(testDB)

	t.Run("decrements stock and persists allocations", func(t *testing.T) {
		resetTables(t)
		festival, zone := seedFestivalWithZone(t, 10)
		reservant := seedReservant(t, "a@club.example")

		created, err := reservationDAO.Insert(ctx, Reservation{
			ReservantID: reservant.ID,
			FestivalID:  festival.ID,
			StartPrice:  250,
			FinalPrice:  250,
			ChairCount:  10,
		}, []ZoneAllocation{
			{ZoneID: zone.ID, Mode: "by_table", StandardTables: 5, Chairs: 10, TablesOccupied: 5, LinePrice: 250},
		})

		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		require.Len(t, created.Allocations, 1)
		assert.Equal(t, 5, created.Allocations[0].TablesOccupied)
		assert.Equal(t, 5, zoneAvailability(t, zone.ID))
	})

	t.Run("insufficient stock rolls back everything", func(t *testing.T) {
		resetTables(t)
		festival, zone := seedFestivalWithZone(t, 10)
		emptyZone := PricingZone{
			FestivalID:      festival.ID,
			Name:            "Mezzanine",
			TotalTables:     2,
			AvailableTables: 2,
		}
		require.NoError(t, testDB.Create(&emptyZone).Error)
		reservant := seedReservant(t, "b@club.example")

		_, err := reservationDAO.Insert(ctx, Reservation{
			ReservantID: reservant.ID,
			FestivalID:  festival.ID,
		}, []ZoneAllocation{
			{ZoneID: zone.ID, Mode: "by_table", StandardTables: 4, TablesOccupied: 4},
			{ZoneID: emptyZone.ID, Mode: "by_table", StandardTables: 5, TablesOccupied: 5},
		})

		require.ErrorIs(t, err, domain.ErrInsufficientStock)

		var stockErr *domain.InsufficientStockError
		require.ErrorAs(t, err, &stockErr)
		assert.Equal(t, "Mezzanine", stockErr.ZoneName)

		// The first zone's decrement must not survive the rollback.
		assert.Equal(t, 10, zoneAvailability(t, zone.ID))
		assert.Equal(t, 2, zoneAvailability(t, emptyZone.ID))

		var count int64
		require.NoError(t, testDB.Model(&Reservation{}).Count(&count).Error)
		assert.Zero(t, count)
	})

	t.Run("second reservation for same festival conflicts", func(t *testing.T) {
		resetTables(t)
		festival, zone := seedFestivalWithZone(t, 10)
		reservant := seedReservant(t, "c@club.example")

		_, err := reservationDAO.Insert(ctx, Reservation{
			ReservantID: reservant.ID,
			FestivalID:  festival.ID,
		}, []ZoneAllocation{
			{ZoneID: zone.ID, Mode: "by_table", StandardTables: 2, TablesOccupied: 2},
		})
		require.NoError(t, err)

		_, err = reservationDAO.Insert(ctx, Reservation{
			ReservantID: reservant.ID,
			FestivalID:  festival.ID,
		}, []ZoneAllocation{
			{ZoneID: zone.ID, Mode: "by_table", StandardTables: 1, TablesOccupied: 1},
		})

		require.ErrorIs(t, err, domain.ErrDuplicateReservation)
		// The failed attempt must not leak stock.
		assert.Equal(t, 8, zoneAvailability(t, zone.ID))
	})

	t.Run("concurrent reservations never oversell", func(t *testing.T) {
		resetTables(t)
		festival, zone := seedFestivalWithZone(t, 5)

		const attempts = 4

		var wg sync.WaitGroup
		errs := make([]error, attempts)

		for i := 0; i < attempts; i++ {
			reservant := seedReservant(t, fmt.Sprintf("racer%d@club.example", i))

			wg.Add(1)
			go func(idx int, reservantID uint) {
				defer wg.Done()

				_, errs[idx] = reservationDAO.Insert(ctx, Reservation{
					ReservantID: reservantID,
					FestivalID:  festival.ID,
				}, []ZoneAllocation{
					{ZoneID: zone.ID, Mode: "by_table", StandardTables: 3, TablesOccupied: 3},
				})
			}(i, reservant.ID)
		}
		wg.Wait()

		succeeded := 0
		for _, err := range errs {
			if err == nil {
				succeeded++
			} else {
				require.ErrorIs(t, err, domain.ErrInsufficientStock)
			}
		}

		// 5 tables, 3 per attempt: exactly one can win.
		assert.Equal(t, 1, succeeded)
		assert.Equal(t, 2, zoneAvailability(t, zone.ID))
	})
}

func TestReservationDAO_Update(t *testing.T) {
	ctx := context.Background()
	reservationDAO := NewReservationDAO(testDB)

	t.Run("releases old allocations before reserving new ones", func(t *testing.T) {
		resetTables(t)
		festival, zone := seedFestivalWithZone(t, 10)
		reservant := seedReservant(t, "d@club.example")

		created, err := reservationDAO.Insert(ctx, Reservation{
			ReservantID: reservant.ID,
			FestivalID:  festival.ID,
		}, []ZoneAllocation{
			{ZoneID: zone.ID, Mode: "by_table", StandardTables: 8, TablesOccupied: 8},
		})
		require.NoError(t, err)
		require.Equal(t, 2, zoneAvailability(t, zone.ID))

		// 8 held + 2 free allows growing to 9 within the same zone.
		updated, err := reservationDAO.Update(ctx, Reservation{
			ID:          created.ID,
			ReservantID: reservant.ID,
			FestivalID:  festival.ID,
		}, []ZoneAllocation{
			{ZoneID: zone.ID, Mode: "by_table", StandardTables: 9, TablesOccupied: 9},
		})

		require.NoError(t, err)
		require.Len(t, updated.Allocations, 1)
		assert.Equal(t, 9, updated.Allocations[0].TablesOccupied)
		assert.Equal(t, 1, zoneAvailability(t, zone.ID))
	})

	t.Run("missing reservation", func(t *testing.T) {
		resetTables(t)

		_, err := reservationDAO.Update(ctx, Reservation{ID: 999}, nil)

		assert.ErrorIs(t, err, domain.ErrReservationNotFound)
	})
}

func TestReservationDAO_Delete(t *testing.T) {
	ctx := context.Background()
	reservationDAO := NewReservationDAO(testDB)

	t.Run("restores the exact reserved amount", func(t *testing.T) {
		resetTables(t)
		festival, zone := seedFestivalWithZone(t, 10)
		reservant := seedReservant(t, "e@club.example")

		created, err := reservationDAO.Insert(ctx, Reservation{
			ReservantID: reservant.ID,
			FestivalID:  festival.ID,
		}, []ZoneAllocation{
			{ZoneID: zone.ID, Mode: "by_area", SurfaceM2: 9, TablesOccupied: 3},
		})
		require.NoError(t, err)
		require.Equal(t, 7, zoneAvailability(t, zone.ID))

		require.NoError(t, reservationDAO.Delete(ctx, created.ID))
		assert.Equal(t, 10, zoneAvailability(t, zone.ID))

		_, err = reservationDAO.GetByID(ctx, created.ID)
		assert.ErrorIs(t, err, domain.ErrReservationNotFound)
	})

	t.Run("missing reservation", func(t *testing.T) {
		resetTables(t)

		err := reservationDAO.Delete(ctx, 999)

		assert.ErrorIs(t, err, domain.ErrReservationNotFound)
	})
}

func TestReservationDAO_Aggregates(t *testing.T) {
	ctx := context.Background()
	reservationDAO := NewReservationDAO(testDB)
	gameDAO := NewGameAllocationDAO(testDB)

	resetTables(t)
	festival, zone := seedFestivalWithZone(t, 20)

	first := seedReservant(t, "f@club.example")
	second := seedReservant(t, "g@club.example")

	createdFirst, err := reservationDAO.Insert(ctx, Reservation{
		ReservantID: first.ID,
		FestivalID:  festival.ID,
		ChairCount:  10,
	}, []ZoneAllocation{
		{ZoneID: zone.ID, Mode: "by_table", StandardTables: 4, LargeTables: 1, Chairs: 10, TablesOccupied: 5},
	})
	require.NoError(t, err)

	_, err = reservationDAO.Insert(ctx, Reservation{
		ReservantID: second.ID,
		FestivalID:  festival.ID,
		ChairCount:  6,
	}, []ZoneAllocation{
		{ZoneID: zone.ID, Mode: "by_table", StandardTables: 2, TownHallTables: 1, Chairs: 6, TablesOccupied: 3},
	})
	require.NoError(t, err)

	_, err = gameDAO.Insert(ctx, GameTableAllocation{
		ReservationID:  createdFirst.ID,
		GameName:       "Terraforming Mars",
		TableSize:      "large",
		TablesOccupied: 2,
	})
	require.NoError(t, err)

	standard, large, townHall, err := reservationDAO.SumAllocatedTablesBySize(ctx, festival.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, standard)
	assert.Equal(t, 1, large)
	assert.Equal(t, 1, townHall)

	games, err := reservationDAO.SumGameTablesBySize(ctx, festival.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, games["large"])

	chairs, err := reservationDAO.SumReservedChairs(ctx, festival.ID)
	require.NoError(t, err)
	assert.Equal(t, 16, chairs)

	// Ledger reconciliation: occupied counter equals the committed rows.
	var occupied int
	require.NoError(t, testDB.Raw(
		"SELECT COALESCE(SUM(tables_occupied), 0) FROM reservation_zones_tarifaires",
	).Scan(&occupied).Error)
	assert.Equal(t, zone.TotalTables-zoneAvailability(t, zone.ID), occupied)
}
