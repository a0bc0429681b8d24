package services_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shashiranjanraj/pizzeria/app/models"
	"github.com/shashiranjanraj/pizzeria/app/repositories"
	"github.com/shashiranjanraj/pizzeria/pkg/auth"
)

// testDB opens a throwaway sqlite database in the test's temp dir.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(
		sqlite.Open(filepath.Join(t.TempDir(), "test.db")),
		&gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)},
	)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Order{}))
	return db
}

// seedUser inserts a user with a bcrypt-hashed password.
func seedUser(t *testing.T, db *gorm.DB, username, password string, staff bool) *models.User {
	t.Helper()

	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	user := &models.User{
		Username: username,
		Email:    username + "@example.com",
		Password: hash,
		IsActive: true,
		IsStaff:  staff,
	}
	require.NoError(t, repositories.NewUserRepository(db).Create(user))
	return user
}
