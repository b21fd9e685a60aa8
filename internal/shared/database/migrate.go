package database

import (
	"tripcoach/internal/bookings"
	"tripcoach/internal/guides"
	"tripcoach/internal/packages"
	"tripcoach/internal/packagetypes"
	"tripcoach/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	// uuid_generate_v4 defaults on the models need the extension present
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return err
	}

	return db.AutoMigrate(
		&users.User{},
		&packagetypes.PackageType{},
		&packages.Package{},
		&bookings.Booking{},
		&bookings.Payment{},
		&guides.GuideApplication{},
	)
}
