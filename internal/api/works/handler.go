package works

import (
	"net/http"

	"cradle-api/database"
	"cradle-api/internal/api/params"
	"cradle-api/internal/api/respond"
	"cradle-api/internal/app/http/middleware"
	"cradle-api/internal/domain/access"
	"cradle-api/internal/domain/apperr"
	"cradle-api/internal/domain/graph"
	"cradle-api/internal/domain/works"
	"cradle-api/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ------------------------------
// GET /artworks
// ------------------------------
func ListArtworks(c *gin.Context) {
	f := middleware.Filter(c)
	limit, offset, err := params.Page(c, 100)
	if err != nil {
		respond.Error(c, err)
		return
	}

	q, err := listFilters(c, artworksQuery(database.DB.WithContext(c.Request.Context()), f), true, true)
	if err != nil {
		respond.Error(c, err)
		return
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		respond.Error(c, apperr.Upstream(err, "count artworks"))
		return
	}

	// a counted chain cannot be reused
	q, _ = listFilters(c, artworksQuery(database.DB.WithContext(c.Request.Context()), f), true, true)

	var list []works.Artwork
	if err := q.Scopes(repository.Paginate(limit, offset)).
		Order("created_at DESC").Order("id ASC").
		Find(&list).Error; err != nil {
		respond.Error(c, apperr.Upstream(err, "load artworks"))
		return
	}

	out, err := toArtworkDTOs(database.DB.WithContext(c.Request.Context()), list)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"artworks": out, "total": total})
}

// ------------------------------
// GET /artworks/:id
// ------------------------------
func GetArtwork(c *gin.Context) {
	var a works.Artwork
	if err := repository.First(database.DB.WithContext(c.Request.Context()), &a, c.Param("id"), "artwork", repository.OwnerScope(middleware.Filter(c))); err != nil {
		respond.Error(c, err)
		return
	}

	out, err := toArtworkDTOs(database.DB.WithContext(c.Request.Context()), []works.Artwork{a})
	if err != nil {
		respond.Error(c, err)
		return
	}
	dto := out[0]
	if dto.TagIDs, err = graph.ArtworkTagIDs(database.DB.WithContext(c.Request.Context()), a.ID); err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

// ------------------------------
// POST /artworks
// ------------------------------
func CreateArtwork(c *gin.Context) {
	var req CreateArtworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}

	category, err := parseCategory(req.Category)
	if err != nil {
		respond.Error(c, err)
		return
	}
	status, err := parseStatus(req.Status)
	if err != nil {
		respond.Error(c, err)
		return
	}

	a := works.Artwork{
		ArtistID:     middleware.Filter(c).ForceOwner(req.ArtistID),
		CollectionID: optionalID(req.CollectionID),
		Title:        req.Title,
		Description:  req.Description,
		Category:     category,
		Medium:       req.Medium,
		Size:         req.Size,
		Year:         req.Year,
		ImageURL:     req.ImageURL,
		Status:       status,
	}

	if a.ArtistID == "" {
		respond.Error(c, apperr.Invalid("artist_id is required"))
		return
	}

	err = database.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := graph.ValidateArtist(tx, a.ArtistID); err != nil {
			return err
		}
		if err := graph.ValidateArtworkCollection(tx, a.ArtistID, a.CollectionID); err != nil {
			return err
		}
		if err := tx.Create(&a).Error; err != nil {
			return apperr.Upstream(err, "create artwork")
		}
		if len(req.TagIDs) > 0 {
			if err := graph.ReplaceArtworkTags(tx, a.ID, req.TagIDs); err != nil {
				return err
			}
		}
		if a.CollectionID != nil {
			return graph.RefreshCollectionCounts(tx, *a.CollectionID)
		}
		return nil
	})
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": a.ID})
}

// ------------------------------
// PUT /artworks/:id
// ------------------------------
func UpdateArtwork(c *gin.Context) {
	var req UpdateArtworkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}
	f := middleware.Filter(c)
	id := c.Param("id")

	err := database.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var a works.Artwork
		if err := repository.First(tx, &a, id, "artwork", repository.OwnerScope(f)); err != nil {
			return err
		}
		oldCollection := a.CollectionID
		updates := map[string]any{}

		if req.ArtistID != nil && *req.ArtistID != a.ArtistID {
			if f.Restricted() {
				return apperr.InsufficientRole("artworks cannot be moved to another artist")
			}
			if err := graph.ValidateArtist(tx, *req.ArtistID); err != nil {
				return err
			}
			a.ArtistID = *req.ArtistID
			updates["artist_id"] = a.ArtistID
		}
		if req.CollectionID != nil {
			a.CollectionID = optionalID(req.CollectionID)
			updates["collection_id"] = a.CollectionID
		}
		// the owner or the collection may have changed
		if _, ok := updates["artist_id"]; ok || req.CollectionID != nil {
			if err := graph.ValidateArtworkCollection(tx, a.ArtistID, a.CollectionID); err != nil {
				return err
			}
		}

		if req.Title != nil {
			if *req.Title == "" {
				return apperr.Invalid("title must not be empty")
			}
			updates["title"] = *req.Title
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.Category != nil {
			cat, err := parseCategory(*req.Category)
			if err != nil {
				return err
			}
			updates["category"] = cat
		}
		if req.Medium != nil {
			updates["medium"] = *req.Medium
		}
		if req.Size != nil {
			updates["size"] = *req.Size
		}
		if req.Year != nil {
			updates["year"] = *req.Year
		}
		if req.ImageURL != nil {
			updates["image_url"] = *req.ImageURL
		}
		if req.Status != nil {
			s := works.Status(*req.Status)
			if !s.Valid() {
				return apperr.Invalid("unknown status %q", *req.Status)
			}
			updates["status"] = s
		}

		if len(updates) > 0 {
			if err := tx.Model(&works.Artwork{}).Where("id = ?", a.ID).Updates(updates).Error; err != nil {
				return apperr.Upstream(err, "update artwork")
			}
		}
		if req.TagIDs != nil {
			if err := graph.ReplaceArtworkTags(tx, a.ID, req.TagIDs); err != nil {
				return err
			}
		}

		var touched []string
		if oldCollection != nil {
			touched = append(touched, *oldCollection)
		}
		if a.CollectionID != nil {
			touched = append(touched, *a.CollectionID)
		}
		return graph.RefreshCollectionCounts(tx, touched...)
	})
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ------------------------------
// DELETE /artworks/:id
// ------------------------------
func DeleteArtwork(c *gin.Context) {
	f := middleware.Filter(c)
	id := c.Param("id")
	err := database.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := scopedArtwork(tx, f, id); err != nil {
			return err
		}
		return graph.DeleteArtworkCascade(tx, id)
	})
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ------------------------------
// PUT /artworks/:id/tags
// ------------------------------
func ReplaceArtworkTags(c *gin.Context) {
	var req ReplaceTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}

	f := middleware.Filter(c)
	id := c.Param("id")
	var ids []string
	err := database.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := scopedArtwork(tx, f, id); err != nil {
			return err
		}
		if err := graph.ReplaceArtworkTags(tx, id, req.TagIDs); err != nil {
			return err
		}
		var err error
		ids, err = graph.ArtworkTagIDs(tx, id)
		return err
	})
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tag_ids": ids})
}

// scopedArtwork reports 404 for artworks outside the filter so the graph
// operations, which are unscoped, never see them.
func scopedArtwork(tx *gorm.DB, f access.Filter, id string) error {
	var a works.Artwork
	return repository.First(tx.Select("id"), &a, id, "artwork", repository.OwnerScope(f))
}
