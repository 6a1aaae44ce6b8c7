package database

import (
	"errors"

	"risk-register/internal/models"

	"gorm.io/gorm"
)

// Store is the repository over the persistent entities. Handlers get
// one injected; nothing in the process holds a global DB handle.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

// CreateUser registers a regular user. The unique index on email is
// the authority on duplicates, so two concurrent registrations cannot
// both win.
func (s *Store) CreateUser(email, passwordHash string) (models.User, error) {
	user := models.User{
		Email:        email,
		PasswordHash: passwordHash,
		Role:         models.RoleUser,
	}
	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.User{}, ErrConflict
		}
		return models.User{}, err
	}
	return user, nil
}

func (s *Store) UserByEmail(email string) (models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrNotFound
		}
		return models.User{}, err
	}
	return user, nil
}
