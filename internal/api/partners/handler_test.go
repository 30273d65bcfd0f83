package partners

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cradle-api/database"
	"cradle-api/internal/domain/exhibitions"
	"cradle-api/internal/domain/partners"
	"cradle-api/internal/testdb"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func call(method, path, body string) *httptest.ResponseRecorder {
	r := gin.New()
	r.GET("/partners", ListPartners)
	r.GET("/partners/:id", GetPartner)
	r.POST("/partners", CreatePartner)
	r.PUT("/partners/:id", UpdatePartner)
	r.DELETE("/partners/:id", DeletePartner)

	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPartners_CRUD(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testdb.New(t)
	database.DB = db

	w := call(http.MethodPost, "/partners", `{"name":"Riverside Gallery","type":"museum","city":"Hangzhou"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var p partners.Partner
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &p))
	assert.Equal(t, partners.TypeMuseum, p.Type)
	assert.Equal(t, partners.StatusActive, p.Status)

	w = call(http.MethodPost, "/partners", `{"name":"X","type":"shop"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = call(http.MethodPost, "/partners", `{"type":"studio"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = call(http.MethodPut, "/partners/"+p.ID, `{"status":"inactive","website":"https://riverside.example"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, db.First(&p, "id = ?", p.ID).Error)
	assert.Equal(t, partners.StatusInactive, p.Status)
	assert.Equal(t, "Hangzhou", p.City)

	w = call(http.MethodGet, "/partners?status=inactive", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), p.ID)

	w = call(http.MethodGet, "/partners/"+p.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"exhibitions_count":0`)
}

func TestDeletePartner_ConflictWhileReferenced(t *testing.T) {
	gin.SetMode(gin.TestMode)
	db := testdb.New(t)
	database.DB = db

	p := partners.Partner{Name: "Riverside", Type: partners.TypeGallery, Status: partners.StatusActive}
	require.NoError(t, db.Create(&p).Error)
	pe := exhibitions.PartnerExhibition{PartnerID: p.ID, Title: "Ink", Status: exhibitions.StatusActive}
	require.NoError(t, db.Create(&pe).Error)

	w := call(http.MethodDelete, "/partners/"+p.ID, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	require.NoError(t, db.Delete(&pe).Error)
	w = call(http.MethodDelete, "/partners/"+p.ID, "")
	assert.Equal(t, http.StatusOK, w.Code)
}
