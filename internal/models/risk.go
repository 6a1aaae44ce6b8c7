package models

// Category labels shared by risk_level, impact and likelihood.
// Storage accepts other values; they sort last in aggregations.
const (
	LevelLow    = "Low"
	LevelMedium = "Medium"
	LevelHigh   = "High"
)

type Risk struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	AssetName      string     `gorm:"size:100;not null" json:"asset_name"`
	RiskLevel      string     `gorm:"size:50;not null" json:"risk_level"`
	Impact         string     `gorm:"size:50;not null" json:"impact"`
	Likelihood     string     `gorm:"size:50;not null" json:"likelihood"`
	MitigationPlan *string    `gorm:"type:text" json:"mitigation_plan"`
	GroupID        uint       `gorm:"not null;index" json:"-"`
	Group          *RiskGroup `gorm:"foreignKey:GroupID" json:"group"`
	UserID         uint       `gorm:"not null;index" json:"user_id"`
}
