package tags

import (
	"net/http"

	"cradle-api/database"
	"cradle-api/internal/api/respond"
	"cradle-api/internal/domain/apperr"
	"cradle-api/internal/domain/graph"
	"cradle-api/internal/domain/tags"
	"cradle-api/internal/repository"

	"github.com/gin-gonic/gin"
)

type CreateTagRequest struct {
	Name     string `json:"name" binding:"required"`
	NameEN   string `json:"name_en"`
	Category string `json:"category" binding:"required"`
}

type UpdateTagRequest struct {
	Name     *string `json:"name"`
	NameEN   *string `json:"name_en"`
	Category *string `json:"category"`
}

// GET /tags  (?category=)
func ListTags(c *gin.Context) {
	q := database.DB.Model(&tags.Tag{})
	if v := c.Query("category"); v != "" {
		if !tags.Category(v).Valid() {
			respond.Error(c, apperr.Invalid("unknown tag category %q", v))
			return
		}
		q = q.Where("category = ?", v)
	}

	list := []tags.Tag{}
	if err := q.Order("category ASC").Order("name ASC").Find(&list).Error; err != nil {
		respond.Error(c, apperr.Upstream(err, "load tags"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": list})
}

// POST /tags
func CreateTag(c *gin.Context) {
	var req CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}
	cat := tags.Category(req.Category)
	if !cat.Valid() {
		respond.Error(c, apperr.Invalid("unknown tag category %q", req.Category))
		return
	}

	t := tags.Tag{Name: req.Name, NameEN: req.NameEN, Category: cat}
	if err := database.DB.WithContext(c.Request.Context()).Create(&t).Error; err != nil {
		respond.Error(c, apperr.Upstream(err, "create tag"))
		return
	}
	c.JSON(http.StatusCreated, t)
}

// PUT /tags/:id
func UpdateTag(c *gin.Context) {
	var req UpdateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}

	db := database.DB.WithContext(c.Request.Context())
	var t tags.Tag
	if err := repository.First(db, &t, c.Param("id"), "tag"); err != nil {
		respond.Error(c, err)
		return
	}

	updates := map[string]any{}
	if req.Name != nil {
		if *req.Name == "" {
			respond.Error(c, apperr.Invalid("name must not be empty"))
			return
		}
		updates["name"] = *req.Name
	}
	if req.NameEN != nil {
		updates["name_en"] = *req.NameEN
	}
	if req.Category != nil {
		cat := tags.Category(*req.Category)
		if !cat.Valid() {
			respond.Error(c, apperr.Invalid("unknown tag category %q", *req.Category))
			return
		}
		updates["category"] = cat
	}
	if len(updates) > 0 {
		if err := db.Model(&t).Updates(updates).Error; err != nil {
			respond.Error(c, apperr.Upstream(err, "update tag"))
			return
		}
		if err := db.First(&t, "id = ?", t.ID).Error; err != nil {
			respond.Error(c, apperr.FromDB(err, "tag"))
			return
		}
	}
	c.JSON(http.StatusOK, t)
}

// DELETE /tags/:id  (removed from every artwork first)
func DeleteTag(c *gin.Context) {
	if err := graph.DeleteTagCascade(database.DB.WithContext(c.Request.Context()), c.Param("id")); err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
