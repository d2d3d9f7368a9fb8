package dao

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/ludotek/festival-booking-api/internal/domain"
)

type Reservation struct {
	ID          uint `gorm:"primaryKey"`
	ReservantID uint `gorm:"not null;uniqueIndex:idx_reservations_reservant_festival"`
	FestivalID  uint `gorm:"not null;index;uniqueIndex:idx_reservations_reservant_festival"`
	WorkflowID  uint `gorm:"not null;default:0"`

	StartPrice           float64 `gorm:"not null"`
	FinalPrice           float64 `gorm:"not null"`
	TableDiscountOffered int     `gorm:"not null;default:0"`
	DirectDiscount       float64 `gorm:"not null;default:0"`
	ChairCount           int     `gorm:"not null;default:0"`
	Note                 string

	Allocations []ZoneAllocation `gorm:"foreignKey:ReservationID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type ZoneAllocation struct {
	ID            uint   `gorm:"primaryKey"`
	ReservationID uint   `gorm:"not null;index"`
	ZoneID        uint   `gorm:"not null;index"`
	Mode          string `gorm:"not null"`

	StandardTables int `gorm:"not null;default:0"`
	LargeTables    int `gorm:"not null;default:0"`
	TownHallTables int `gorm:"not null;default:0"`

	SurfaceM2 float64 `gorm:"not null;default:0"`
	Chairs    int     `gorm:"not null;default:0"`

	// TablesOccupied is the amount the stock ledger moved for this line;
	// release paths restore exactly this value.
	TablesOccupied int     `gorm:"not null"`
	LinePrice      float64 `gorm:"not null"`
}

func (ZoneAllocation) TableName() string {
	return "reservation_zones_tarifaires"
}

type ReservationDAO struct {
	db    *gorm.DB
	zones *ZoneDAO
}

func NewReservationDAO(db *gorm.DB) *ReservationDAO {
	return &ReservationDAO{
		db:    db,
		zones: NewZoneDAO(db),
	}
}

// Insert creates the reservation and its allocation rows and decrements
// the zone counters, all inside one transaction. Any failure, including
// insufficient stock detected under lock, rolls everything back.
func (d *ReservationDAO) Insert(ctx context.Context, reservation Reservation, allocations []ZoneAllocation) (Reservation, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Allocations").Create(&reservation).Error; err != nil {
			return translateReservationError(err)
		}

		for i := range allocations {
			allocations[i].ID = 0
			allocations[i].ReservationID = reservation.ID

			if err := d.zones.ReserveTables(tx, allocations[i].ZoneID, allocations[i].TablesOccupied); err != nil {
				return err
			}
		}

		if len(allocations) > 0 {
			if err := tx.Create(&allocations).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return Reservation{}, err
	}

	reservation.Allocations = allocations

	return reservation, nil
}

// Update replaces the full allocation set: every existing allocation is
// released first, rows are swapped, then the new set is reserved. All of
// it runs in one transaction so a failed reserve rolls back the releases
// and the original allocations survive untouched.
func (d *ReservationDAO) Update(ctx context.Context, reservation Reservation, allocations []ZoneAllocation) (Reservation, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current Reservation
		if err := tx.First(&current, reservation.ID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrReservationNotFound
			}

			return err
		}

		if err := d.releaseAllocations(tx, reservation.ID); err != nil {
			return err
		}

		for i := range allocations {
			allocations[i].ID = 0
			allocations[i].ReservationID = reservation.ID

			if err := d.zones.ReserveTables(tx, allocations[i].ZoneID, allocations[i].TablesOccupied); err != nil {
				return err
			}
		}

		if len(allocations) > 0 {
			if err := tx.Create(&allocations).Error; err != nil {
				return err
			}
		}

		updates := map[string]interface{}{
			"workflow_id":            reservation.WorkflowID,
			"start_price":            reservation.StartPrice,
			"final_price":            reservation.FinalPrice,
			"table_discount_offered": reservation.TableDiscountOffered,
			"direct_discount":        reservation.DirectDiscount,
			"chair_count":            reservation.ChairCount,
			"note":                   reservation.Note,
		}

		return tx.Model(&Reservation{}).Where("id = ?", reservation.ID).Updates(updates).Error
	})
	if err != nil {
		return Reservation{}, err
	}

	return d.GetByID(ctx, reservation.ID)
}

// Delete restores every allocation's tables to its zone, removes the
// allocation and game rows, then the reservation itself.
func (d *ReservationDAO) Delete(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current Reservation
		if err := tx.First(&current, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrReservationNotFound
			}

			return err
		}

		if err := d.releaseAllocations(tx, id); err != nil {
			return err
		}

		if err := tx.Where("reservation_id = ?", id).Delete(&GameTableAllocation{}).Error; err != nil {
			return err
		}

		return tx.Delete(&Reservation{}, id).Error
	})
}

// releaseAllocations restores stock for, and deletes, every allocation
// row of the reservation. Must run inside tx.
func (d *ReservationDAO) releaseAllocations(tx *gorm.DB, reservationID uint) error {
	var existing []ZoneAllocation
	if err := tx.Where("reservation_id = ?", reservationID).Find(&existing).Error; err != nil {
		return err
	}

	for _, allocation := range existing {
		if err := d.zones.ReleaseTables(tx, allocation.ZoneID, allocation.TablesOccupied); err != nil {
			return err
		}
	}

	return tx.Where("reservation_id = ?", reservationID).Delete(&ZoneAllocation{}).Error
}

func (d *ReservationDAO) GetByID(ctx context.Context, id uint) (Reservation, error) {
	var reservation Reservation

	result := d.db.WithContext(ctx).Preload("Allocations").First(&reservation, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Reservation{}, domain.ErrReservationNotFound
		}

		return Reservation{}, result.Error
	}

	return reservation, nil
}

func (d *ReservationDAO) GetByFestivalID(ctx context.Context, festivalID uint) ([]Reservation, error) {
	var reservations []Reservation

	result := d.db.WithContext(ctx).
		Preload("Allocations").
		Where("festival_id = ?", festivalID).
		Order("id").
		Find(&reservations)
	if result.Error != nil {
		return nil, result.Error
	}

	return reservations, nil
}

// SumAllocatedTablesBySize totals the sized table counts of all committed
// zone allocations for the festival.
func (d *ReservationDAO) SumAllocatedTablesBySize(ctx context.Context, festivalID uint) (standard, large, townHall int, err error) {
	row := d.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(a.standard_tables), 0),
		       COALESCE(SUM(a.large_tables), 0),
		       COALESCE(SUM(a.town_hall_tables), 0)
		FROM reservation_zones_tarifaires a
		JOIN reservations r ON r.id = a.reservation_id
		WHERE r.festival_id = ?`, festivalID).Row()

	if err = row.Scan(&standard, &large, &townHall); err != nil {
		return 0, 0, 0, err
	}

	return standard, large, townHall, nil
}

// SumGameTablesBySize totals jeux_alloues table occupation by required
// table size for the festival.
func (d *ReservationDAO) SumGameTablesBySize(ctx context.Context, festivalID uint) (map[string]int, error) {
	rows, err := d.db.WithContext(ctx).Raw(`
		SELECT g.table_size, COALESCE(SUM(g.tables_occupied), 0)
		FROM jeux_alloues g
		JOIN reservations r ON r.id = g.reservation_id
		WHERE r.festival_id = ?
		GROUP BY g.table_size`, festivalID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	totals := make(map[string]int)
	for rows.Next() {
		var (
			size  string
			count int
		)
		if err := rows.Scan(&size, &count); err != nil {
			return nil, err
		}
		totals[size] = count
	}

	return totals, rows.Err()
}

// SumReservedChairs totals chair counts across the festival's reservations.
func (d *ReservationDAO) SumReservedChairs(ctx context.Context, festivalID uint) (int, error) {
	var chairs int

	row := d.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(chair_count), 0) FROM reservations WHERE festival_id = ?`, festivalID).Row()
	if err := row.Scan(&chairs); err != nil {
		return 0, err
	}

	return chairs, nil
}

func translateReservationError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return domain.ErrDuplicateReservation
	}

	return err
}
