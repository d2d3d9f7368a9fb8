package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Reservant struct {
	ID    uint   `gorm:"primaryKey"`
	Name  string `gorm:"not null"`
	Email string `gorm:"not null;uniqueIndex"`
	Phone string

	CreatedAt time.Time
	UpdatedAt time.Time
}

type ReservantDAO struct {
	db *gorm.DB
}

func NewReservantDAO(db *gorm.DB) *ReservantDAO {
	return &ReservantDAO{
		db: db,
	}
}

// UpsertByEmail finds the reservant with the given email or creates one.
// Name and phone are refreshed from the incoming record when they differ.
func (d *ReservantDAO) UpsertByEmail(ctx context.Context, reservant Reservant) (Reservant, error) {
	var existing Reservant

	result := d.db.WithContext(ctx).Where("email = ?", reservant.Email).First(&existing)
	if result.Error != nil {
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Reservant{}, result.Error
		}

		if err := d.db.WithContext(ctx).Create(&reservant).Error; err != nil {
			return Reservant{}, err
		}

		return reservant, nil
	}

	if existing.Name != reservant.Name || existing.Phone != reservant.Phone {
		existing.Name = reservant.Name
		existing.Phone = reservant.Phone
		if err := d.db.WithContext(ctx).Save(&existing).Error; err != nil {
			return Reservant{}, err
		}
	}

	return existing, nil
}
