// Package repository holds gorm scopes shared by the API handlers.
package repository

import (
	"cradle-api/internal/domain/access"
	"cradle-api/internal/domain/apperr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OwnerScope restricts a query on an artist-owned table to the filter's
// owner. An unrestricted filter leaves the query alone.
func OwnerScope(f access.Filter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !f.Restricted() {
			return db
		}
		return db.Where("artist_id = ?", f.OwnerArtistID)
	}
}

// Published keeps rows whose status column is "published".
func Published(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", "published")
}

// Paginate applies limit/offset. Non-positive limits mean no limit.
func Paginate(limit, offset int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if offset > 0 {
			db = db.Offset(offset)
		}
		if limit > 0 {
			db = db.Limit(limit)
		}
		return db
	}
}

// ValidID reports whether id can be compared against a uuid column.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// First loads the row with id into dest through scopes. A malformed id or a
// row outside the scopes is reported as not found.
func First(db *gorm.DB, dest any, id, what string, scopes ...func(*gorm.DB) *gorm.DB) error {
	if !ValidID(id) {
		return apperr.NotFound("%s %s not found", what, id)
	}
	if err := db.Scopes(scopes...).First(dest, "id = ?", id).Error; err != nil {
		return apperr.FromDB(err, what)
	}
	return nil
}
