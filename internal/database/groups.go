package database

import (
	"errors"

	"risk-register/internal/access"
	"risk-register/internal/auth"
	"risk-register/internal/models"

	"gorm.io/gorm"
)

// CreateGroup records a new risk group owned by the caller.
func (s *Store) CreateGroup(name string, ownerID uint) (models.RiskGroup, error) {
	group := models.RiskGroup{Name: name, UserID: ownerID}
	if err := s.db.Create(&group).Error; err != nil {
		return models.RiskGroup{}, err
	}
	s.audit(ownerID, "risk_group", group.ID, "create", "created group: "+group.Name)
	return group, nil
}

// Groups lists the groups visible to the principal.
func (s *Store) Groups(p auth.Principal) ([]models.RiskGroup, error) {
	groups := []models.RiskGroup{}
	err := s.db.Scopes(access.OwnedBy(p)).Order("id asc").Find(&groups).Error
	return groups, err
}

// Group fetches a single group. Existence is checked before the
// ownership rule, so a missing id is NotFound even for callers who
// would also be denied.
func (s *Store) Group(p auth.Principal, id uint) (models.RiskGroup, error) {
	var group models.RiskGroup
	if err := s.db.First(&group, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.RiskGroup{}, ErrNotFound
		}
		return models.RiskGroup{}, err
	}
	if !access.CanAccess(p, group.UserID) {
		return models.RiskGroup{}, ErrForbidden
	}
	return group, nil
}

// GroupRisks lists all risks inside one group, owner-or-admin only.
func (s *Store) GroupRisks(p auth.Principal, groupID uint) ([]models.Risk, error) {
	group, err := s.Group(p, groupID)
	if err != nil {
		return nil, err
	}

	risks := []models.Risk{}
	err = s.db.Scopes(access.InGroup(group.ID)).
		Preload("Group").
		Order("id asc").
		Find(&risks).Error
	return risks, err
}
