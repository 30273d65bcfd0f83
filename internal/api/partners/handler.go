package partners

import (
	"net/http"
	"strings"

	"cradle-api/database"
	"cradle-api/internal/api/respond"
	"cradle-api/internal/domain/apperr"
	"cradle-api/internal/domain/exhibitions"
	"cradle-api/internal/domain/graph"
	"cradle-api/internal/domain/partners"
	"cradle-api/internal/repository"

	"github.com/gin-gonic/gin"
)

type PartnerRequest struct {
	Name         *string `json:"name"`
	NameEN       *string `json:"name_en"`
	Type         *string `json:"type"`
	Description  *string `json:"description"`
	City         *string `json:"city"`
	Address      *string `json:"address"`
	Website      *string `json:"website"`
	ContactEmail *string `json:"contact_email"`
	ContactPhone *string `json:"contact_phone"`
	LogoURL      *string `json:"logo_url"`
	Status       *string `json:"status"`
}

type PartnerDetailDTO struct {
	partners.Partner
	ExhibitionsCount int64 `json:"exhibitions_count"`
}

// apply copies the set fields onto p and validates the result.
func (r PartnerRequest) apply(p *partners.Partner) error {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	set(&p.Name, r.Name)
	set(&p.NameEN, r.NameEN)
	set(&p.Description, r.Description)
	set(&p.City, r.City)
	set(&p.Address, r.Address)
	set(&p.Website, r.Website)
	set(&p.ContactEmail, r.ContactEmail)
	set(&p.ContactPhone, r.ContactPhone)
	set(&p.LogoURL, r.LogoURL)
	if r.Type != nil {
		p.Type = partners.Type(*r.Type)
	}
	if r.Status != nil {
		p.Status = partners.Status(*r.Status)
	}

	if p.Name == "" {
		return apperr.Invalid("name is required")
	}
	if !p.Type.Valid() {
		return apperr.Invalid("unknown partner type %q", p.Type)
	}
	if !p.Status.Valid() {
		return apperr.Invalid("unknown partner status %q", p.Status)
	}
	return nil
}

// GET /partners  (?status= ?type= ?q=)
func ListPartners(c *gin.Context) {
	q := database.DB.Model(&partners.Partner{})
	if v := c.Query("status"); v != "" {
		if !partners.Status(v).Valid() {
			respond.Error(c, apperr.Invalid("unknown status %q", v))
			return
		}
		q = q.Where("status = ?", v)
	}
	if v := c.Query("type"); v != "" {
		if !partners.Type(v).Valid() {
			respond.Error(c, apperr.Invalid("unknown type %q", v))
			return
		}
		q = q.Where("type = ?", v)
	}
	if v := strings.TrimSpace(c.Query("q")); v != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(v)+"%")
	}

	list := []partners.Partner{}
	if err := q.Order("created_at DESC").Order("id ASC").Find(&list).Error; err != nil {
		respond.Error(c, apperr.Upstream(err, "load partners"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"partners": list})
}

// GET /partners/:id
func GetPartner(c *gin.Context) {
	var p partners.Partner
	if err := repository.First(database.DB, &p, c.Param("id"), "partner"); err != nil {
		respond.Error(c, err)
		return
	}

	var n int64
	if err := database.DB.Model(&exhibitions.PartnerExhibition{}).Where("partner_id = ?", p.ID).Count(&n).Error; err != nil {
		respond.Error(c, apperr.Upstream(err, "count partner exhibitions"))
		return
	}
	c.JSON(http.StatusOK, PartnerDetailDTO{Partner: p, ExhibitionsCount: n})
}

// POST /partners
func CreatePartner(c *gin.Context) {
	var req PartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}

	p := partners.Partner{Type: partners.TypeGallery, Status: partners.StatusActive}
	if err := req.apply(&p); err != nil {
		respond.Error(c, err)
		return
	}
	if err := database.DB.WithContext(c.Request.Context()).Create(&p).Error; err != nil {
		respond.Error(c, apperr.Upstream(err, "create partner"))
		return
	}
	c.JSON(http.StatusCreated, p)
}

// PUT /partners/:id
func UpdatePartner(c *gin.Context) {
	var req PartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}

	db := database.DB.WithContext(c.Request.Context())
	var p partners.Partner
	if err := repository.First(db, &p, c.Param("id"), "partner"); err != nil {
		respond.Error(c, err)
		return
	}
	if err := req.apply(&p); err != nil {
		respond.Error(c, err)
		return
	}
	if err := db.Save(&p).Error; err != nil {
		respond.Error(c, apperr.Upstream(err, "update partner"))
		return
	}
	c.JSON(http.StatusOK, p)
}

// DELETE /partners/:id  (refused while partner exhibitions reference it)
func DeletePartner(c *gin.Context) {
	if err := graph.DeletePartner(database.DB.WithContext(c.Request.Context()), c.Param("id")); err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
