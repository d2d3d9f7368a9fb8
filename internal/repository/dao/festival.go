package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/ludotek/festival-booking-api/internal/domain"
)

type Festival struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"not null;uniqueIndex"`
	Location  string
	StartDate time.Time
	EndDate   time.Time

	StandardTablesTotal int `gorm:"not null;default:0"`
	LargeTablesTotal    int `gorm:"not null;default:0"`
	TownHallTablesTotal int `gorm:"not null;default:0"`
	ChairsTotal         int `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type FestivalDAO struct {
	db *gorm.DB
}

func NewFestivalDAO(db *gorm.DB) *FestivalDAO {
	return &FestivalDAO{
		db: db,
	}
}

func (d *FestivalDAO) Insert(ctx context.Context, festival Festival) (Festival, error) {
	result := d.db.WithContext(ctx).Create(&festival)
	if result.Error != nil {
		return Festival{}, result.Error
	}

	return festival, nil
}

func (d *FestivalDAO) GetByID(ctx context.Context, id uint) (Festival, error) {
	var festival Festival

	result := d.db.WithContext(ctx).First(&festival, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Festival{}, domain.ErrFestivalNotFound
		}

		return Festival{}, result.Error
	}

	return festival, nil
}

func (d *FestivalDAO) GetAll(ctx context.Context) ([]Festival, error) {
	var festivals []Festival

	result := d.db.WithContext(ctx).Order("start_date").Find(&festivals)
	if result.Error != nil {
		return nil, result.Error
	}

	return festivals, nil
}
