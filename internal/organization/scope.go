package organization

import "gorm.io/gorm"

// Scope returns a GORM scope that filters by organization_id.
func Scope(orgID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("organization_id = ?", orgID)
	}
}
