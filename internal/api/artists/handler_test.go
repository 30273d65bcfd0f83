package artists

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cradle-api/database"
	"cradle-api/internal/domain/access"
	"cradle-api/internal/domain/accounts"
	"cradle-api/internal/domain/artists"
	"cradle-api/internal/domain/works"
	"cradle-api/internal/testdb"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingSessions struct {
	invalidated []uint
}

func (r *recordingSessions) Invalidate(id uint) {
	r.invalidated = append(r.invalidated, id)
}

func setup(t *testing.T) (*gorm.DB, *gin.Engine, *recordingSessions) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testdb.New(t)
	database.DB = db

	sessions := &recordingSessions{}
	h := NewHandler(sessions)
	r := gin.New()
	r.GET("/artists", h.List)
	r.GET("/artists/:id", h.Get)
	r.POST("/artists", h.Create)
	r.PUT("/artists/:id", h.Update)
	r.DELETE("/artists/:id", h.Delete)
	return db, r, sessions
}

func call(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
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

func TestCreateArtist_CreatesAccountAndProfile(t *testing.T) {
	db, r, sessions := setup(t)

	w := call(r, http.MethodPost, "/artists",
		`{"email":"Mei@Example.com","password":"brush2024","display_name":"Mei","specialty":"ink"}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var body struct {
		ID        string `json:"id"`
		AccountID uint   `json:"account_id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	var acc accounts.Account
	require.NoError(t, db.First(&acc, body.AccountID).Error)
	assert.Equal(t, "mei@example.com", acc.Email)
	assert.Equal(t, access.RoleArtist, acc.Role)
	assert.Equal(t, "Mei", acc.Username)
	assert.True(t, accounts.CheckPassword(acc.PasswordHash, "brush2024"))

	var p artists.Profile
	require.NoError(t, db.First(&p, "id = ?", body.ID).Error)
	assert.Equal(t, acc.ID, p.AccountID)
	assert.Equal(t, "ink", p.Specialty)
	assert.Equal(t, []uint{acc.ID}, sessions.invalidated)

	w = call(r, http.MethodPost, "/artists", `{"email":"mei@example.com","display_name":"Mei again"}`)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateArtist_RollsBackOnFailure(t *testing.T) {
	db, r, _ := setup(t)

	w := call(r, http.MethodPost, "/artists", `{"email":"mei@example.com","password":"weak","display_name":"Mei"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var n int64
	require.NoError(t, db.Model(&accounts.Account{}).Count(&n).Error)
	assert.Zero(t, n)

	w = call(r, http.MethodPost, "/artists", `{"display_name":"Mei"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateArtist_ExistingAccount(t *testing.T) {
	db, r, _ := setup(t)
	acc := accounts.Account{Email: "lin@example.com", Role: access.RoleArtist}
	require.NoError(t, db.Create(&acc).Error)

	w := call(r, http.MethodPost, "/artists", `{"account_id":`+jsonUint(acc.ID)+`,"display_name":"Lin"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = call(r, http.MethodPost, "/artists", `{"account_id":`+jsonUint(acc.ID)+`,"display_name":"Lin 2"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = call(r, http.MethodPost, "/artists", `{"account_id":4242,"display_name":"Nobody"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func jsonUint(v uint) string {
	b, _ := json.Marshal(v)
	return string(b)
}

func TestUpdateArtist_AlsoUpdatesAccount(t *testing.T) {
	db, r, _ := setup(t)
	acc := accounts.Account{Email: "mei@example.com", Username: "mei", Role: access.RoleArtist}
	require.NoError(t, db.Create(&acc).Error)
	p := artists.Profile{AccountID: acc.ID, DisplayName: "Mei"}
	require.NoError(t, db.Create(&p).Error)

	w := call(r, http.MethodPut, "/artists/"+p.ID,
		`{"display_name":"Mei Lan","avatar_url":"https://cdn/a.png","is_verified":true,"username":"meilan"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	require.NoError(t, db.First(&p, "id = ?", p.ID).Error)
	assert.Equal(t, "Mei Lan", p.DisplayName)
	assert.True(t, p.IsVerified)

	require.NoError(t, db.First(&acc, acc.ID).Error)
	assert.Equal(t, "meilan", acc.Username)
	assert.Equal(t, "https://cdn/a.png", acc.AvatarURL)
	assert.True(t, acc.IsVerified)

	w = call(r, http.MethodPut, "/artists/"+p.ID, `{"display_name":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetAndListArtists(t *testing.T) {
	db, r, _ := setup(t)
	acc := accounts.Account{Email: "mei@example.com", Role: access.RoleArtist}
	require.NoError(t, db.Create(&acc).Error)
	p := artists.Profile{AccountID: acc.ID, DisplayName: "Mei"}
	require.NoError(t, db.Create(&p).Error)
	for _, s := range []works.Status{works.StatusPublished, works.StatusDraft} {
		a := works.Artwork{ArtistID: p.ID, Title: "w", Category: works.CategoryPainting, Status: s}
		require.NoError(t, db.Create(&a).Error)
	}

	w := call(r, http.MethodGet, "/artists/"+p.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	var got ArtistDetailDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "Mei", got.DisplayName)
	require.NotNil(t, got.Account)
	assert.Equal(t, "mei@example.com", got.Account.Email)
	assert.Equal(t, StatsDTO{Artworks: 2, PublishedArtworks: 1}, got.Stats)

	w = call(r, http.MethodGet, "/artists?q=me", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), p.ID)

	w = call(r, http.MethodGet, "/artists?q=zz", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), p.ID)
}

func TestDeleteArtist_KeepsWorksAndAccount(t *testing.T) {
	db, r, sessions := setup(t)
	acc := accounts.Account{Email: "mei@example.com", Role: access.RoleArtist}
	require.NoError(t, db.Create(&acc).Error)
	p := artists.Profile{AccountID: acc.ID, DisplayName: "Mei"}
	require.NoError(t, db.Create(&p).Error)
	a := works.Artwork{ArtistID: p.ID, Title: "w", Category: works.CategoryPainting, Status: works.StatusDraft}
	require.NoError(t, db.Create(&a).Error)

	w := call(r, http.MethodDelete, "/artists/"+p.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []uint{acc.ID}, sessions.invalidated)

	var n int64
	require.NoError(t, db.Model(&works.Artwork{}).Where("id = ?", a.ID).Count(&n).Error)
	assert.Equal(t, int64(1), n)
	require.NoError(t, db.Model(&accounts.Account{}).Where("id = ?", acc.ID).Count(&n).Error)
	assert.Equal(t, int64(1), n)

	w = call(r, http.MethodDelete, "/artists/"+p.ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
