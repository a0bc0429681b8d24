package seeders

import (
	"errors"

	"github.com/shashiranjanraj/pizzeria/app/models"
	"github.com/shashiranjanraj/pizzeria/config"
	"github.com/shashiranjanraj/pizzeria/pkg/auth"
	"gorm.io/gorm"
)

func init() {
	Register("staff-user", SeedStaffUser)
}

// SeedStaffUser creates the initial staff account if it does not exist.
// Username/password come from SEED_STAFF_USERNAME / SEED_STAFF_PASSWORD,
// with dev defaults.
func SeedStaffUser(db *gorm.DB) error {
	username := config.Get("SEED_STAFF_USERNAME", "admin")
	password := config.Get("SEED_STAFF_PASSWORD", "admin12345")
	email := config.Get("SEED_STAFF_EMAIL", "admin@pizzeria.local")

	var existing models.User
	err := db.Where("username = ?", username).First(&existing).Error
	if err == nil {
		return nil // already seeded
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	return db.Create(&models.User{
		Username: username,
		Email:    email,
		Password: hash,
		IsActive: true,
		IsStaff:  true,
	}).Error
}
