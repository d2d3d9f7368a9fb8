package dao

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ludotek/festival-booking-api/internal/domain"
)

type PricingZone struct {
	ID         uint   `gorm:"primaryKey"`
	FestivalID uint   `gorm:"not null;index"`
	Name       string `gorm:"not null"`

	TotalTables     int `gorm:"not null"`
	AvailableTables int `gorm:"not null"`

	PricePerTable       float64 `gorm:"not null"`
	PricePerSquareMeter float64 `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (PricingZone) TableName() string {
	return "zones_tarifaires"
}

// ZoneDAO owns the stock ledger: available_tables is mutated only here,
// under a row lock, inside a caller-supplied transaction.
type ZoneDAO struct {
	db *gorm.DB
}

func NewZoneDAO(db *gorm.DB) *ZoneDAO {
	return &ZoneDAO{
		db: db,
	}
}

func (d *ZoneDAO) Insert(ctx context.Context, zone PricingZone) (PricingZone, error) {
	result := d.db.WithContext(ctx).Create(&zone)
	if result.Error != nil {
		return PricingZone{}, result.Error
	}

	return zone, nil
}

func (d *ZoneDAO) GetByFestivalID(ctx context.Context, festivalID uint) ([]PricingZone, error) {
	var zones []PricingZone

	result := d.db.WithContext(ctx).Where("festival_id = ?", festivalID).Order("id").Find(&zones)
	if result.Error != nil {
		return nil, result.Error
	}

	return zones, nil
}

// ReserveTables acquires an exclusive row lock on the zone, re-reads the
// live counter under that lock and decrements it by tables. It must run
// inside an active transaction; on insufficient stock the caller must
// abort the whole transaction.
func (d *ZoneDAO) ReserveTables(tx *gorm.DB, zoneID uint, tables int) error {
	zone, err := lockZone(tx, zoneID)
	if err != nil {
		return err
	}

	if zone.AvailableTables < tables {
		return &domain.InsufficientStockError{
			ZoneName:  zone.Name,
			Needed:    tables,
			Available: zone.AvailableTables,
		}
	}

	result := tx.Model(&PricingZone{}).
		Where("id = ?", zoneID).
		Update("available_tables", gorm.Expr("available_tables - ?", tables))

	return result.Error
}

// ReleaseTables restores tables to the zone's live counter under the same
// row lock discipline. Restoring beyond total_tables means the counter
// and the allocation rows have diverged; the transaction must abort.
func (d *ZoneDAO) ReleaseTables(tx *gorm.DB, zoneID uint, tables int) error {
	zone, err := lockZone(tx, zoneID)
	if err != nil {
		return err
	}

	if zone.AvailableTables+tables > zone.TotalTables {
		return fmt.Errorf("%w: zone %q would hold %d/%d available tables",
			domain.ErrStockInconsistent, zone.Name, zone.AvailableTables+tables, zone.TotalTables)
	}

	result := tx.Model(&PricingZone{}).
		Where("id = ?", zoneID).
		Update("available_tables", gorm.Expr("available_tables + ?", tables))

	return result.Error
}

// lockZone issues SELECT ... FOR UPDATE on the zone's stock row.
func lockZone(tx *gorm.DB, zoneID uint) (PricingZone, error) {
	var zone PricingZone

	result := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&zone, zoneID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return PricingZone{}, fmt.Errorf("%w: id %d", domain.ErrUnknownZone, zoneID)
		}

		return PricingZone{}, result.Error
	}

	return zone, nil
}
