package works

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"cradle-api/database"
	"cradle-api/internal/app/http/middleware"
	"cradle-api/internal/domain/access"
	"cradle-api/internal/domain/accounts"
	"cradle-api/internal/domain/artists"
	"cradle-api/internal/domain/tags"
	"cradle-api/internal/domain/works"
	"cradle-api/internal/testdb"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type env struct {
	db    *gorm.DB
	admin access.Actor
	mei   access.Actor
	lin   access.Actor
	meiID string
	linID string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testdb.New(t)
	database.DB = db

	mk := func(email string, role access.Role) accounts.Account {
		a := accounts.Account{Email: email, Role: role}
		require.NoError(t, db.Create(&a).Error)
		return a
	}
	admin := mk("admin@example.com", access.RoleAdmin)
	meiAcc := mk("mei@example.com", access.RoleArtist)
	linAcc := mk("lin@example.com", access.RoleArtist)

	mei := artists.Profile{AccountID: meiAcc.ID, DisplayName: "Mei"}
	lin := artists.Profile{AccountID: linAcc.ID, DisplayName: "Lin"}
	require.NoError(t, db.Create(&mei).Error)
	require.NoError(t, db.Create(&lin).Error)

	return &env{
		db:    db,
		admin: access.Actor{AccountID: admin.ID, Role: access.RoleAdmin},
		mei:   access.Actor{AccountID: meiAcc.ID, Role: access.RoleArtist, OwnedArtistID: mei.ID},
		lin:   access.Actor{AccountID: linAcc.ID, Role: access.RoleArtist, OwnedArtistID: lin.ID},
		meiID: mei.ID,
		linID: lin.ID,
	}
}

func router(actor access.Actor) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) { middleware.SetActor(c, actor) })

	aw := func(op access.Operation) gin.HandlerFunc { return middleware.RequireAccess(access.Artworks, op) }
	co := func(op access.Operation) gin.HandlerFunc { return middleware.RequireAccess(access.Collections, op) }

	r.GET("/artworks", aw(access.OpList), ListArtworks)
	r.GET("/artworks/:id", aw(access.OpRead), GetArtwork)
	r.POST("/artworks", aw(access.OpCreate), CreateArtwork)
	r.PUT("/artworks/:id", aw(access.OpUpdate), UpdateArtwork)
	r.DELETE("/artworks/:id", aw(access.OpDelete), DeleteArtwork)
	r.PUT("/artworks/:id/tags", aw(access.OpUpdate), ReplaceArtworkTags)

	r.GET("/collections", co(access.OpList), ListCollections)
	r.GET("/collections/:id", co(access.OpRead), GetCollection)
	r.POST("/collections", co(access.OpCreate), CreateCollection)
	r.PUT("/collections/:id", co(access.OpUpdate), UpdateCollection)
	r.DELETE("/collections/:id", co(access.OpDelete), DeleteCollection)
	return r
}

func call(t *testing.T, actor access.Actor, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router(actor).ServeHTTP(w, req)
	return w
}

func createdID(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var body struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotEmpty(t, body.ID)
	return body.ID
}

func TestCreateArtwork_ArtistOwnerIsForced(t *testing.T) {
	e := newEnv(t)

	w := call(t, e.mei, http.MethodPost, "/artworks",
		`{"artist_id":"`+e.linID+`","title":"Dawn","category":"painting"}`)
	id := createdID(t, w)

	var a works.Artwork
	require.NoError(t, e.db.First(&a, "id = ?", id).Error)
	assert.Equal(t, e.meiID, a.ArtistID)
	assert.Equal(t, works.StatusDraft, a.Status)
}

func TestCreateArtwork_Validation(t *testing.T) {
	e := newEnv(t)

	w := call(t, e.admin, http.MethodPost, "/artworks", `{"title":"Dawn","category":"painting"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = call(t, e.admin, http.MethodPost, "/artworks", `{"artist_id":"`+e.meiID+`","title":"Dawn","category":"fresco"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = call(t, e.admin, http.MethodPost, "/artworks", `{"artist_id":"`+e.meiID+`","title":"Dawn","category":"painting","status":"live"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = call(t, e.admin, http.MethodPost, "/artworks", `{"artist_id":"0b6f6c52-4a4c-4a8e-9d8e-1f1f1f1f1f1f","title":"Dawn","category":"painting"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateArtwork_CollectionOfAnotherArtist(t *testing.T) {
	e := newEnv(t)
	col := works.Collection{ArtistID: e.linID, Title: "Lin's", Status: works.StatusDraft}
	require.NoError(t, e.db.Create(&col).Error)

	w := call(t, e.mei, http.MethodPost, "/artworks",
		`{"title":"Dawn","category":"painting","collection_id":"`+col.ID+`"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	var n int64
	require.NoError(t, e.db.Model(&works.Artwork{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestCreateArtwork_WithTagsAndCollection(t *testing.T) {
	e := newEnv(t)
	col := works.Collection{ArtistID: e.meiID, Title: "Rivers", Status: works.StatusDraft}
	require.NoError(t, e.db.Create(&col).Error)
	tg := tags.Tag{Name: "ink", Category: tags.CategoryTechnique}
	require.NoError(t, e.db.Create(&tg).Error)

	w := call(t, e.mei, http.MethodPost, "/artworks",
		`{"title":"Dawn","category":"painting","collection_id":"`+col.ID+`","tag_ids":["`+tg.ID+`"]}`)
	id := createdID(t, w)

	w = call(t, e.mei, http.MethodGet, "/artworks/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	var got ArtworkDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, []string{tg.ID}, got.TagIDs)
	assert.Equal(t, "Rivers", got.CollectionTitle)
	assert.Equal(t, "Mei", got.ArtistName)

	require.NoError(t, e.db.First(&col, "id = ?", col.ID).Error)
	assert.Equal(t, 1, col.ArtworksCount)
}

func TestArtworks_ScopedToOwner(t *testing.T) {
	e := newEnv(t)
	mine := works.Artwork{ArtistID: e.meiID, Title: "Mine", Category: works.CategoryPainting, Status: works.StatusDraft}
	theirs := works.Artwork{ArtistID: e.linID, Title: "Theirs", Category: works.CategoryPhoto, Status: works.StatusPublished}
	require.NoError(t, e.db.Create(&mine).Error)
	require.NoError(t, e.db.Create(&theirs).Error)

	w := call(t, e.mei, http.MethodGet, "/artworks", "")
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Artworks []ArtworkDTO `json:"artworks"`
		Total    int64        `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Artworks, 1)
	assert.Equal(t, mine.ID, list.Artworks[0].ID)
	assert.Equal(t, int64(1), list.Total)

	w = call(t, e.admin, http.MethodGet, "/artworks?status=published", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Artworks, 1)
	assert.Equal(t, theirs.ID, list.Artworks[0].ID)

	w = call(t, e.mei, http.MethodGet, "/artworks/"+theirs.ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = call(t, e.mei, http.MethodPut, "/artworks/"+theirs.ID, `{"title":"Stolen"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = call(t, e.mei, http.MethodDelete, "/artworks/"+theirs.ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = call(t, e.mei, http.MethodPut, "/artworks/"+theirs.ID+"/tags", `{"tag_ids":[]}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var still works.Artwork
	require.NoError(t, e.db.First(&still, "id = ?", theirs.ID).Error)
	assert.Equal(t, "Theirs", still.Title)
}

func TestListArtworks_MalformedFilters(t *testing.T) {
	e := newEnv(t)

	for _, path := range []string{
		"/artworks?artist_id=not-a-uuid",
		"/artworks?collection_id=42",
		"/artworks?status=live",
		"/collections?artist_id=mei",
	} {
		w := call(t, e.admin, http.MethodGet, path, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}

	w := call(t, e.admin, http.MethodGet, "/artworks?artist_id="+e.meiID+"&collection_id=none", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestArtworks_ArtistWithoutProfileIsDenied(t *testing.T) {
	newEnv(t)
	orphan := access.Actor{AccountID: 99, Role: access.RoleArtist}

	w := call(t, orphan, http.MethodGet, "/artworks", "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = call(t, access.Actor{}, http.MethodGet, "/artworks", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUpdateArtwork(t *testing.T) {
	e := newEnv(t)
	c1 := works.Collection{ArtistID: e.meiID, Title: "One", Status: works.StatusDraft}
	c2 := works.Collection{ArtistID: e.meiID, Title: "Two", Status: works.StatusDraft}
	require.NoError(t, e.db.Create(&c1).Error)
	require.NoError(t, e.db.Create(&c2).Error)

	id := createdID(t, call(t, e.mei, http.MethodPost, "/artworks",
		`{"title":"Dawn","category":"painting","collection_id":"`+c1.ID+`"}`))

	w := call(t, e.mei, http.MethodPut, "/artworks/"+id,
		`{"title":"Dusk","status":"published","collection_id":"`+c2.ID+`"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var a works.Artwork
	require.NoError(t, e.db.First(&a, "id = ?", id).Error)
	assert.Equal(t, "Dusk", a.Title)
	assert.Equal(t, works.StatusPublished, a.Status)
	require.NotNil(t, a.CollectionID)
	assert.Equal(t, c2.ID, *a.CollectionID)

	require.NoError(t, e.db.First(&c1, "id = ?", c1.ID).Error)
	require.NoError(t, e.db.First(&c2, "id = ?", c2.ID).Error)
	assert.Equal(t, 0, c1.ArtworksCount)
	assert.Equal(t, 1, c2.ArtworksCount)

	// publication status has no state machine
	w = call(t, e.mei, http.MethodPut, "/artworks/"+id, `{"status":"draft"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = call(t, e.mei, http.MethodPut, "/artworks/"+id, `{"collection_id":""}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, e.db.First(&a, "id = ?", id).Error)
	assert.Nil(t, a.CollectionID)

	w = call(t, e.mei, http.MethodPut, "/artworks/"+id, `{"artist_id":"`+e.linID+`"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = call(t, e.admin, http.MethodPut, "/artworks/"+id, `{"artist_id":"`+e.linID+`"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, e.db.First(&a, "id = ?", id).Error)
	assert.Equal(t, e.linID, a.ArtistID)
}

func TestUpdateArtwork_AdminMoveKeepsCollectionInvariant(t *testing.T) {
	e := newEnv(t)
	col := works.Collection{ArtistID: e.meiID, Title: "Rivers", Status: works.StatusDraft}
	require.NoError(t, e.db.Create(&col).Error)
	id := createdID(t, call(t, e.admin, http.MethodPost, "/artworks",
		`{"artist_id":"`+e.meiID+`","title":"Dawn","category":"painting","collection_id":"`+col.ID+`"}`))

	w := call(t, e.admin, http.MethodPut, "/artworks/"+id, `{"artist_id":"`+e.linID+`"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = call(t, e.admin, http.MethodPut, "/artworks/"+id, `{"artist_id":"`+e.linID+`","collection_id":""}`)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeleteArtwork(t *testing.T) {
	e := newEnv(t)
	tg := tags.Tag{Name: "ink", Category: tags.CategoryTechnique}
	require.NoError(t, e.db.Create(&tg).Error)
	id := createdID(t, call(t, e.mei, http.MethodPost, "/artworks",
		`{"title":"Dawn","category":"painting","tag_ids":["`+tg.ID+`"]}`))

	w := call(t, e.mei, http.MethodDelete, "/artworks/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)

	var n int64
	require.NoError(t, e.db.Model(&works.ArtworkTag{}).Where("artwork_id = ?", id).Count(&n).Error)
	assert.Zero(t, n)

	w = call(t, e.mei, http.MethodDelete, "/artworks/"+id, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReplaceArtworkTags_Handler(t *testing.T) {
	e := newEnv(t)
	t1 := tags.Tag{Name: "ink", Category: tags.CategoryTechnique}
	t2 := tags.Tag{Name: "blue", Category: tags.CategoryColor}
	require.NoError(t, e.db.Create(&t1).Error)
	require.NoError(t, e.db.Create(&t2).Error)
	id := createdID(t, call(t, e.mei, http.MethodPost, "/artworks", `{"title":"Dawn","category":"painting"}`))

	w := call(t, e.mei, http.MethodPut, "/artworks/"+id+"/tags", `{"tag_ids":["`+t1.ID+`","`+t2.ID+`"]}`)
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		TagIDs []string `json:"tag_ids"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.ElementsMatch(t, []string{t1.ID, t2.ID}, body.TagIDs)

	w = call(t, e.mei, http.MethodPut, "/artworks/"+id+"/tags", `{"tag_ids":["0b6f6c52-4a4c-4a8e-9d8e-1f1f1f1f1f1f"]}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCollections(t *testing.T) {
	e := newEnv(t)

	id := createdID(t, call(t, e.mei, http.MethodPost, "/collections", `{"artist_id":"`+e.linID+`","title":"Rivers"}`))
	var col works.Collection
	require.NoError(t, e.db.First(&col, "id = ?", id).Error)
	assert.Equal(t, e.meiID, col.ArtistID)

	aw := createdID(t, call(t, e.mei, http.MethodPost, "/artworks",
		`{"title":"Dawn","category":"painting","collection_id":"`+id+`"}`))

	w := call(t, e.mei, http.MethodGet, "/collections/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)
	var detail CollectionDetailDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	require.Len(t, detail.Artworks, 1)
	assert.Equal(t, aw, detail.Artworks[0].ID)

	w = call(t, e.lin, http.MethodGet, "/collections/"+id, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = call(t, e.lin, http.MethodGet, "/collections", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":0`)

	w = call(t, e.admin, http.MethodPut, "/collections/"+id, `{"artist_id":"`+e.linID+`"}`)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = call(t, e.mei, http.MethodPut, "/collections/"+id, `{"title":"Streams","status":"published"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = call(t, e.mei, http.MethodDelete, "/collections/"+id, "")
	require.Equal(t, http.StatusOK, w.Code)

	var a works.Artwork
	require.NoError(t, e.db.First(&a, "id = ?", aw).Error)
	assert.Nil(t, a.CollectionID)
	assert.Equal(t, e.meiID, a.ArtistID)
}

func TestDeleteCollection_OtherArtistLeavesArtworksAttached(t *testing.T) {
	e := newEnv(t)
	col := works.Collection{ArtistID: e.linID, Title: "Harbour", Status: works.StatusDraft}
	require.NoError(t, e.db.Create(&col).Error)
	aw := works.Artwork{ArtistID: e.linID, CollectionID: &col.ID, Title: "Boats", Category: works.CategoryPhoto, Status: works.StatusDraft}
	require.NoError(t, e.db.Create(&aw).Error)

	w := call(t, e.mei, http.MethodDelete, "/collections/"+col.ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	var a works.Artwork
	require.NoError(t, e.db.First(&a, "id = ?", aw.ID).Error)
	require.NotNil(t, a.CollectionID)
	assert.Equal(t, col.ID, *a.CollectionID)

	w = call(t, e.admin, http.MethodDelete, "/collections/"+col.ID, "")
	require.Equal(t, http.StatusOK, w.Code)

	var n int64
	require.NoError(t, e.db.Model(&works.Collection{}).Where("id = ?", col.ID).Count(&n).Error)
	assert.Zero(t, n)
}
