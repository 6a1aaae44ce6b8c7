package models

type RiskGroup struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Name   string `gorm:"size:100;not null" json:"name"`
	UserID uint   `gorm:"not null;index" json:"user_id"`
}
