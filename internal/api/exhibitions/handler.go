package exhibitions

import (
	"net/http"
	"sort"

	"cradle-api/database"
	"cradle-api/internal/api/respond"
	"cradle-api/internal/domain/apperr"
	"cradle-api/internal/domain/exhibitions"
	"cradle-api/internal/domain/graph"
	"cradle-api/internal/domain/partners"
	"cradle-api/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ------------------------------
// GET /exhibitions  (?owner_type= ?status= ?partner_id=)
// ------------------------------
func ListExhibitions(c *gin.Context) {
	owner := exhibitions.OwnerType(c.Query("owner_type"))
	if owner != "" && !owner.Valid() {
		respond.Error(c, apperr.Invalid("unknown owner_type %q", owner))
		return
	}
	status := exhibitions.Status(c.Query("status"))
	if status != "" && !status.Valid() {
		respond.Error(c, apperr.Invalid("unknown status %q", status))
		return
	}
	kind := exhibitions.Type(c.Query("type"))
	if kind != "" && !kind.Valid() {
		respond.Error(c, apperr.Invalid("unknown type %q", kind))
		return
	}
	partnerID := c.Query("partner_id")
	if partnerID != "" && !repository.ValidID(partnerID) {
		respond.Error(c, apperr.Invalid("malformed partner_id %q", partnerID))
		return
	}
	db := database.DB

	out := []ExhibitionDTO{}

	if (owner == "" || owner == exhibitions.OwnerPlatform) && partnerID == "" {
		q := db.Model(&exhibitions.Exhibition{})
		if status != "" {
			q = q.Where("status = ?", status)
		}
		if kind != "" {
			q = q.Where("type = ?", kind)
		}
		var list []exhibitions.Exhibition
		if err := q.Find(&list).Error; err != nil {
			respond.Error(c, apperr.Upstream(err, "load exhibitions"))
			return
		}
		for _, e := range list {
			out = append(out, platformDTO(e))
		}
	}

	if owner == "" || owner == exhibitions.OwnerPartner {
		q := db.Model(&exhibitions.PartnerExhibition{})
		if status != "" {
			q = q.Where("status = ?", status)
		}
		if partnerID != "" {
			q = q.Where("partner_id = ?", partnerID)
		}
		var list []exhibitions.PartnerExhibition
		if err := q.Find(&list).Error; err != nil {
			respond.Error(c, apperr.Upstream(err, "load partner exhibitions"))
			return
		}
		names, err := partnerNames(db, list)
		if err != nil {
			respond.Error(c, err)
			return
		}
		for _, e := range list {
			out = append(out, partnerDTO(e, names[e.PartnerID]))
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	c.JSON(http.StatusOK, gin.H{"exhibitions": out, "total": len(out)})
}

// ------------------------------
// GET /exhibitions/:id
// ------------------------------
func GetExhibition(c *gin.Context) {
	dto, err := loadDTO(database.DB, c.Param("id"))
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

// ------------------------------
// POST /exhibitions
// ------------------------------
func CreateExhibition(c *gin.Context) {
	var req ExhibitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}

	var id string
	err := database.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		switch exhibitions.OwnerType(req.OwnerType) {
		case exhibitions.OwnerPlatform, "":
			e := exhibitions.Exhibition{Type: exhibitions.TypeRegular, Status: exhibitions.StatusDraft}
			if err := req.applyPlatform(&e); err != nil {
				return err
			}
			if err := tx.Create(&e).Error; err != nil {
				return apperr.Upstream(err, "create exhibition")
			}
			id = e.ID
			if req.ArtworkIDs != nil {
				return graph.ReplaceExhibitionArtworks(tx, e.ID, req.ArtworkIDs)
			}
			return nil

		case exhibitions.OwnerPartner:
			if req.ArtworkIDs != nil {
				return apperr.Invalid("partner exhibitions carry no artworks")
			}
			e := exhibitions.PartnerExhibition{Status: exhibitions.StatusDraft}
			if err := req.applyPartner(&e); err != nil {
				return err
			}
			if err := graph.ValidatePartner(tx, e.PartnerID); err != nil {
				return err
			}
			if err := tx.Create(&e).Error; err != nil {
				return apperr.Upstream(err, "create partner exhibition")
			}
			id = e.ID
			return nil
		}
		return apperr.Invalid("unknown owner_type %q", req.OwnerType)
	})
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// ------------------------------
// PUT /exhibitions/:id
// ------------------------------
func UpdateExhibition(c *gin.Context) {
	var req ExhibitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}
	id := c.Param("id")

	err := database.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		ref, err := graph.LoadExhibition(tx, id)
		if err != nil {
			return err
		}
		if req.OwnerType != "" && exhibitions.OwnerType(req.OwnerType) != ref.Owner {
			return apperr.Invalid("owner_type cannot change")
		}

		switch ref.Owner {
		case exhibitions.OwnerPlatform:
			e := *ref.Platform
			if err := req.applyPlatform(&e); err != nil {
				return err
			}
			if err := tx.Save(&e).Error; err != nil {
				return apperr.Upstream(err, "update exhibition")
			}
			if req.ArtworkIDs != nil {
				return graph.ReplaceExhibitionArtworks(tx, e.ID, req.ArtworkIDs)
			}
		case exhibitions.OwnerPartner:
			if req.ArtworkIDs != nil {
				return apperr.Invalid("partner exhibitions carry no artworks")
			}
			e := *ref.Partner
			if err := req.applyPartner(&e); err != nil {
				return err
			}
			if e.PartnerID != ref.Partner.PartnerID {
				if err := graph.ValidatePartner(tx, e.PartnerID); err != nil {
					return err
				}
			}
			if err := tx.Save(&e).Error; err != nil {
				return apperr.Upstream(err, "update partner exhibition")
			}
		}
		return nil
	})
	if err != nil {
		respond.Error(c, err)
		return
	}

	dto, err := loadDTO(database.DB, id)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto)
}

// ------------------------------
// DELETE /exhibitions/:id
// ------------------------------
func DeleteExhibition(c *gin.Context) {
	owner, err := graph.DeleteExhibition(database.DB.WithContext(c.Request.Context()), c.Param("id"))
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted", "owner_type": owner})
}

// ------------------------------
// PUT /exhibitions/:id/artworks
// ------------------------------
func ReplaceExhibitionArtworks(c *gin.Context) {
	var req ReplaceArtworksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}
	if req.ArtworkIDs == nil {
		req.ArtworkIDs = []string{}
	}

	id := c.Param("id")
	if err := graph.ReplaceExhibitionArtworks(database.DB.WithContext(c.Request.Context()), id, req.ArtworkIDs); err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "artwork_ids": req.ArtworkIDs})
}

// ---------- helpers

func loadDTO(db *gorm.DB, id string) (ExhibitionDTO, error) {
	ref, err := graph.LoadExhibition(db, id)
	if err != nil {
		return ExhibitionDTO{}, err
	}

	if ref.Owner == exhibitions.OwnerPartner {
		names, err := partnerNames(db, []exhibitions.PartnerExhibition{*ref.Partner})
		if err != nil {
			return ExhibitionDTO{}, err
		}
		return partnerDTO(*ref.Partner, names[ref.Partner.PartnerID]), nil
	}

	dto := platformDTO(*ref.Platform)
	if dto.ArtworkIDs, err = graph.ExhibitionArtworkIDs(db, dto.ID); err != nil {
		return ExhibitionDTO{}, err
	}
	return dto, nil
}

func partnerNames(db *gorm.DB, list []exhibitions.PartnerExhibition) (map[string]string, error) {
	out := map[string]string{}
	if len(list) == 0 {
		return out, nil
	}
	ids := make([]string, 0, len(list))
	for _, e := range list {
		ids = append(ids, e.PartnerID)
	}
	var ps []partners.Partner
	if err := db.Select("id", "name").Where("id IN ?", ids).Find(&ps).Error; err != nil {
		return nil, apperr.Upstream(err, "load partners")
	}
	for _, p := range ps {
		out[p.ID] = p.Name
	}
	return out, nil
}
