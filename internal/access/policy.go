// Package access holds the ownership rules: who may touch a single
// record, and which rows a principal sees in list and aggregate
// queries. Handlers never reimplement these checks inline.
package access

import (
	"risk-register/internal/auth"

	"gorm.io/gorm"
)

// CanAccess reports whether the principal may read or mutate a record
// owned by ownerID. Admins may touch everything.
func CanAccess(p auth.Principal, ownerID uint) bool {
	return p.IsAdmin() || p.ID == ownerID
}

// OwnedBy is the visibility scope for list and aggregate queries:
// admins see the whole table, everyone else only their own rows.
// It applies to both risk_groups and risks (user_id on either).
func OwnedBy(p auth.Principal) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if p.IsAdmin() {
			return tx
		}
		return tx.Where("user_id = ?", p.ID)
	}
}

// InGroup narrows a risk query to a single group.
func InGroup(groupID uint) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		return tx.Where("group_id = ?", groupID)
	}
}
