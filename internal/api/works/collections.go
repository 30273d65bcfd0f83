package works

import (
	"net/http"

	"cradle-api/database"
	"cradle-api/internal/api/params"
	"cradle-api/internal/api/respond"
	"cradle-api/internal/app/http/middleware"
	"cradle-api/internal/domain/apperr"
	"cradle-api/internal/domain/graph"
	"cradle-api/internal/domain/works"
	"cradle-api/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ------------------------------
// GET /collections
// ------------------------------
func ListCollections(c *gin.Context) {
	f := middleware.Filter(c)
	limit, offset, err := params.Page(c, 100)
	if err != nil {
		respond.Error(c, err)
		return
	}

	q, err := listFilters(c, collectionsQuery(database.DB.WithContext(c.Request.Context()), f), false, false)
	if err != nil {
		respond.Error(c, err)
		return
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		respond.Error(c, apperr.Upstream(err, "count collections"))
		return
	}

	q, _ = listFilters(c, collectionsQuery(database.DB.WithContext(c.Request.Context()), f), false, false)

	var list []works.Collection
	if err := q.Scopes(repository.Paginate(limit, offset)).
		Order("created_at DESC").Order("id ASC").
		Find(&list).Error; err != nil {
		respond.Error(c, apperr.Upstream(err, "load collections"))
		return
	}

	out, err := toCollectionDTOs(database.DB.WithContext(c.Request.Context()), list)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"collections": out, "total": total})
}

// ------------------------------
// GET /collections/:id  (with its artworks)
// ------------------------------
func GetCollection(c *gin.Context) {
	f := middleware.Filter(c)

	var col works.Collection
	if err := repository.First(database.DB.WithContext(c.Request.Context()), &col, c.Param("id"), "collection", repository.OwnerScope(f)); err != nil {
		respond.Error(c, err)
		return
	}

	artworks := []works.Artwork{}
	if err := artworksQuery(database.DB.WithContext(c.Request.Context()), f).
		Where("collection_id = ?", col.ID).
		Order("created_at ASC").Order("id ASC").
		Find(&artworks).Error; err != nil {
		respond.Error(c, apperr.Upstream(err, "load collection artworks"))
		return
	}

	dtos, err := toCollectionDTOs(database.DB.WithContext(c.Request.Context()), []works.Collection{col})
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, CollectionDetailDTO{CollectionDTO: dtos[0], Artworks: artworks})
}

// ------------------------------
// POST /collections
// ------------------------------
func CreateCollection(c *gin.Context) {
	var req CreateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}
	status, err := parseStatus(req.Status)
	if err != nil {
		respond.Error(c, err)
		return
	}

	col := works.Collection{
		ArtistID:    middleware.Filter(c).ForceOwner(req.ArtistID),
		Title:       req.Title,
		TitleEN:     req.TitleEN,
		Description: req.Description,
		CoverImage:  req.CoverImage,
		Status:      status,
	}
	if col.ArtistID == "" {
		respond.Error(c, apperr.Invalid("artist_id is required"))
		return
	}

	db := database.DB.WithContext(c.Request.Context())
	if err := graph.ValidateArtist(db, col.ArtistID); err != nil {
		respond.Error(c, err)
		return
	}
	if err := db.Create(&col).Error; err != nil {
		respond.Error(c, apperr.Upstream(err, "create collection"))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": col.ID})
}

// ------------------------------
// PUT /collections/:id
// ------------------------------
func UpdateCollection(c *gin.Context) {
	var req UpdateCollectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}
	f := middleware.Filter(c)

	err := database.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var col works.Collection
		if err := repository.First(tx, &col, c.Param("id"), "collection", repository.OwnerScope(f)); err != nil {
			return err
		}
		updates := map[string]any{}

		if req.ArtistID != nil && *req.ArtistID != col.ArtistID {
			if f.Restricted() {
				return apperr.InsufficientRole("collections cannot be moved to another artist")
			}
			if err := graph.ValidateArtist(tx, *req.ArtistID); err != nil {
				return err
			}
			// its artworks would end up in another artist's collection
			var n int64
			if err := tx.Model(&works.Artwork{}).Where("collection_id = ?", col.ID).Count(&n).Error; err != nil {
				return apperr.Upstream(err, "count collection artworks")
			}
			if n > 0 {
				return apperr.Referential("collection %s still holds %d artwork(s) of its artist", col.ID, n)
			}
			updates["artist_id"] = *req.ArtistID
		}
		if req.Title != nil {
			if *req.Title == "" {
				return apperr.Invalid("title must not be empty")
			}
			updates["title"] = *req.Title
		}
		if req.TitleEN != nil {
			updates["title_en"] = *req.TitleEN
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.CoverImage != nil {
			updates["cover_image"] = *req.CoverImage
		}
		if req.Status != nil {
			s := works.Status(*req.Status)
			if !s.Valid() {
				return apperr.Invalid("unknown status %q", *req.Status)
			}
			updates["status"] = s
		}

		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&works.Collection{}).Where("id = ?", col.ID).Updates(updates).Error; err != nil {
			return apperr.Upstream(err, "update collection")
		}
		return nil
	})
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ------------------------------
// DELETE /collections/:id  (artworks are detached, not deleted)
// ------------------------------
func DeleteCollection(c *gin.Context) {
	f := middleware.Filter(c)
	err := database.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var col works.Collection
		if err := repository.First(tx.Select("id"), &col, c.Param("id"), "collection", repository.OwnerScope(f)); err != nil {
			return err
		}
		return graph.DeleteCollectionCascade(tx, col.ID)
	})
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
