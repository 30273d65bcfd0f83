package works

import (
	"strings"

	"cradle-api/internal/domain/access"
	"cradle-api/internal/domain/apperr"
	"cradle-api/internal/domain/works"
	"cradle-api/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func artworksQuery(db *gorm.DB, f access.Filter) *gorm.DB {
	return db.Model(&works.Artwork{}).Scopes(repository.OwnerScope(f))
}

func collectionsQuery(db *gorm.DB, f access.Filter) *gorm.DB {
	return db.Model(&works.Collection{}).Scopes(repository.OwnerScope(f))
}

// listFilters applies the optional ?status, ?category, ?collection_id,
// ?artist_id and ?q query parameters shared by the list endpoints.
func listFilters(c *gin.Context, q *gorm.DB, withCategory, withCollection bool) (*gorm.DB, error) {
	if v := c.Query("status"); v != "" {
		if !works.Status(v).Valid() {
			return nil, apperr.Invalid("unknown status %q", v)
		}
		q = q.Where("status = ?", v)
	}
	if withCategory {
		if v := c.Query("category"); v != "" {
			if !works.Category(v).Valid() {
				return nil, apperr.Invalid("unknown category %q", v)
			}
			q = q.Where("category = ?", v)
		}
	}
	if withCollection {
		if v, ok := c.GetQuery("collection_id"); ok {
			if v == "" || v == "none" {
				q = q.Where("collection_id IS NULL")
			} else if !repository.ValidID(v) {
				return nil, apperr.Invalid("malformed collection_id %q", v)
			} else {
				q = q.Where("collection_id = ?", v)
			}
		}
	}
	if v := c.Query("artist_id"); v != "" {
		if !repository.ValidID(v) {
			return nil, apperr.Invalid("malformed artist_id %q", v)
		}
		q = q.Where("artist_id = ?", v)
	}
	if v := strings.TrimSpace(c.Query("q")); v != "" {
		q = q.Where("LOWER(title) LIKE ?", "%"+strings.ToLower(v)+"%")
	}
	return q, nil
}

func parseStatus(v string) (works.Status, error) {
	if v == "" {
		return works.StatusDraft, nil
	}
	s := works.Status(v)
	if !s.Valid() {
		return "", apperr.Invalid("unknown status %q", v)
	}
	return s, nil
}

func parseCategory(v string) (works.Category, error) {
	c := works.Category(v)
	if !c.Valid() {
		return "", apperr.Invalid("unknown category %q", v)
	}
	return c, nil
}

func optionalID(v *string) *string {
	if v == nil || *v == "" {
		return nil
	}
	id := *v
	return &id
}
