package database

import (
	"errors"

	"risk-register/internal/access"
	"risk-register/internal/auth"
	"risk-register/internal/models"

	"gorm.io/gorm"
)

// RiskInput carries the fields of a new risk. Category fields left
// empty default to Low.
type RiskInput struct {
	AssetName      string
	RiskLevel      string
	Impact         string
	Likelihood     string
	MitigationPlan *string
	GroupID        uint
}

// RiskPatch is a partial update: nil fields stay untouched. Ownership
// is never part of a patch.
type RiskPatch struct {
	AssetName      *string
	RiskLevel      *string
	Impact         *string
	Likelihood     *string
	MitigationPlan *string
	GroupID        *uint
}

func orLow(v string) string {
	if v == "" {
		return models.LevelLow
	}
	return v
}

// CreateRisk records a new risk owned by the caller. The referenced
// group must exist.
func (s *Store) CreateRisk(in RiskInput, ownerID uint) (models.Risk, error) {
	var group models.RiskGroup
	if err := s.db.First(&group, in.GroupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Risk{}, ErrNotFound
		}
		return models.Risk{}, err
	}

	risk := models.Risk{
		AssetName:      in.AssetName,
		RiskLevel:      orLow(in.RiskLevel),
		Impact:         orLow(in.Impact),
		Likelihood:     orLow(in.Likelihood),
		MitigationPlan: in.MitigationPlan,
		GroupID:        group.ID,
		UserID:         ownerID,
	}
	if err := s.db.Create(&risk).Error; err != nil {
		return models.Risk{}, err
	}
	risk.Group = &group

	s.audit(ownerID, "risk", risk.ID, "create", "created risk: "+risk.AssetName)
	return risk, nil
}

// Risks lists the risks visible to the principal.
func (s *Store) Risks(p auth.Principal) ([]models.Risk, error) {
	risks := []models.Risk{}
	err := s.db.Scopes(access.OwnedBy(p)).
		Preload("Group").
		Order("id asc").
		Find(&risks).Error
	return risks, err
}

// Risk fetches a single risk, existence first, then the ownership rule.
func (s *Store) Risk(p auth.Principal, id uint) (models.Risk, error) {
	var risk models.Risk
	if err := s.db.Preload("Group").First(&risk, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Risk{}, ErrNotFound
		}
		return models.Risk{}, err
	}
	if !access.CanAccess(p, risk.UserID) {
		return models.Risk{}, ErrForbidden
	}
	return risk, nil
}

// UpdateRisk applies the present fields of the patch and leaves the
// rest as stored. Reassigning the group requires the target to exist;
// the risk keeps its original owner either way.
func (s *Store) UpdateRisk(p auth.Principal, id uint, patch RiskPatch) (models.Risk, error) {
	risk, err := s.Risk(p, id)
	if err != nil {
		return models.Risk{}, err
	}

	if patch.AssetName != nil {
		risk.AssetName = *patch.AssetName
	}
	if patch.RiskLevel != nil {
		risk.RiskLevel = *patch.RiskLevel
	}
	if patch.Impact != nil {
		risk.Impact = *patch.Impact
	}
	if patch.Likelihood != nil {
		risk.Likelihood = *patch.Likelihood
	}
	if patch.MitigationPlan != nil {
		risk.MitigationPlan = patch.MitigationPlan
	}
	if patch.GroupID != nil {
		var group models.RiskGroup
		if err := s.db.First(&group, *patch.GroupID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.Risk{}, ErrNotFound
			}
			return models.Risk{}, err
		}
		risk.GroupID = group.ID
		risk.Group = &group
	}

	if err := s.db.Omit("Group").Save(&risk).Error; err != nil {
		return models.Risk{}, err
	}

	s.audit(p.ID, "risk", risk.ID, "update", "updated risk: "+risk.AssetName)
	return risk, nil
}

// DeleteRisk removes a risk for good. No soft delete.
func (s *Store) DeleteRisk(p auth.Principal, id uint) error {
	risk, err := s.Risk(p, id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(&models.Risk{}, risk.ID).Error; err != nil {
		return err
	}

	s.audit(p.ID, "risk", risk.ID, "delete", "deleted risk: "+risk.AssetName)
	return nil
}
