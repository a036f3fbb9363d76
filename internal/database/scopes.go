package database

import (
	"gorm.io/gorm"
)

// Paginate applies page-based offset and limit to a GORM query.
// Non-positive values leave the query unpaginated.
func Paginate(page, limit int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page > 0 && limit > 0 {
			return db.Offset((page - 1) * limit).Limit(limit)
		}
		return db
	}
}
