package dao

import "gorm.io/gorm"

func InitTables(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Festival{},
		&PricingZone{},
		&Reservant{},
		&Reservation{},
		&ZoneAllocation{},
		&GameTableAllocation{},
	)
}
