package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ludotek/festival-booking-api/internal/domain"
)

type GameTableAllocation struct {
	ID            uint   `gorm:"primaryKey"`
	ReservationID uint   `gorm:"not null;index"`
	GameName      string `gorm:"not null"`
	ZonePlanID    uint   `gorm:"not null;default:0"`
	TableSize     string `gorm:"not null"`

	TablesOccupied int `gorm:"not null;default:1"`
}

func (GameTableAllocation) TableName() string {
	return "jeux_alloues"
}

type GameAllocationDAO struct {
	db *gorm.DB
}

func NewGameAllocationDAO(db *gorm.DB) *GameAllocationDAO {
	return &GameAllocationDAO{
		db: db,
	}
}

func (d *GameAllocationDAO) Insert(ctx context.Context, allocation GameTableAllocation) (GameTableAllocation, error) {
	// Reject allocations against reservations that do not exist.
	var reservation Reservation
	if err := d.db.WithContext(ctx).First(&reservation, allocation.ReservationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return GameTableAllocation{}, domain.ErrReservationNotFound
		}

		return GameTableAllocation{}, err
	}

	if err := d.db.WithContext(ctx).Create(&allocation).Error; err != nil {
		return GameTableAllocation{}, err
	}

	return allocation, nil
}

func (d *GameAllocationDAO) GetByReservationID(ctx context.Context, reservationID uint) ([]GameTableAllocation, error) {
	var allocations []GameTableAllocation

	result := d.db.WithContext(ctx).Where("reservation_id = ?", reservationID).Order("id").Find(&allocations)
	if result.Error != nil {
		return nil, result.Error
	}

	return allocations, nil
}
