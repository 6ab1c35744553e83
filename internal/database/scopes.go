package database

import (
	"gorm.io/gorm"
)

// Paginate applies page-based offset pagination to a GORM query. Page
// numbers start at 1; a non-positive page or page size leaves the
// query unpaginated.
func Paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page <= 0 || pageSize <= 0 {
			return db
		}
		return db.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}
