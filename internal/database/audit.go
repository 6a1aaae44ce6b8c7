package database

import (
	"log/slog"

	"risk-register/internal/auth"
	"risk-register/internal/models"
)

// audit records a mutation in the audit trail. Failures are logged and
// swallowed: the trail never blocks the operation it describes.
func (s *Store) audit(userID uint, entity string, entityID uint, action, details string) {
	record := models.AuditLog{
		UserID:   userID,
		Entity:   entity,
		EntityID: entityID,
		Action:   action,
		Details:  details,
	}
	if err := s.db.Create(&record).Error; err != nil {
		slog.Error("failed to write audit log", "entity", entity, "action", action, "error", err)
	}
}

// AuditLogs returns the trail, newest first. Admin only.
func (s *Store) AuditLogs(p auth.Principal) ([]models.AuditLog, error) {
	if !p.IsAdmin() {
		return nil, ErrForbidden
	}
	logs := []models.AuditLog{}
	err := s.db.Order("id desc").Find(&logs).Error
	return logs, err
}
