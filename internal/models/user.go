package models

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type User struct {
	ID           uint     `gorm:"primaryKey" json:"id"`
	Email        string   `gorm:"uniqueIndex;size:120;not null" json:"email"`
	PasswordHash string   `gorm:"size:128;not null" json:"-"`
	Role         UserRole `gorm:"type:varchar(80);not null;default:user" json:"role"`
}
