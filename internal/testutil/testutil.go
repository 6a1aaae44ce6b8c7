// Package testutil holds shared fixtures for package tests.
package testutil

import (
	"testing"

	"risk-register/internal/database"
	"risk-register/internal/models"

	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// OpenDB gives the test a fresh in-memory database with the full
// schema. The pool is pinned to one connection so every query sees the
// same :memory: instance.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	// TranslateError matches the production gorm config, so unique
	// violations read as gorm.ErrDuplicatedKey here too
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// CreateUser inserts a user with a bcrypt hash of the given password.
func CreateUser(t *testing.T, db *gorm.DB, email, password string, role models.UserRole) models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", email, err)
	}
	return user
}
