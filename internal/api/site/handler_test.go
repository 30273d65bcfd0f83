package siteapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cradle-api/database"
	"cradle-api/internal/domain/access"
	"cradle-api/internal/domain/accounts"
	"cradle-api/internal/domain/artists"
	"cradle-api/internal/domain/exhibitions"
	"cradle-api/internal/domain/partners"
	"cradle-api/internal/domain/works"
	"cradle-api/internal/testdb"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setup(t *testing.T, at time.Time) *gorm.DB {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := testdb.New(t)
	database.DB = db

	prev := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = prev })
	return db
}

func get(t *testing.T, path string, out any) int {
	t.Helper()
	r := gin.New()
	r.GET("/site/home", GetHome)
	r.GET("/site/exhibitions/daily", GetDailyExhibition)
	r.GET("/site/collections/:id", GetCollectionPage)
	r.GET("/site/artists/:id", GetArtistPage)
	r.GET("/site/partners", ListPartners)
	r.GET("/site/partners/:id", GetPartnerPage)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	if out != nil && w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out), w.Body.String())
	}
	return w.Code
}

func artist(t *testing.T, db *gorm.DB, email, name string) artists.Profile {
	t.Helper()
	acc := accounts.Account{Email: email, Username: name, Role: access.RoleArtist}
	require.NoError(t, db.Create(&acc).Error)
	p := artists.Profile{AccountID: acc.ID, DisplayName: name}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func dailyExhibitions(t *testing.T, db *gorm.DB, titles ...string) []exhibitions.Exhibition {
	t.Helper()
	base := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	var out []exhibitions.Exhibition
	for i, title := range titles {
		e := exhibitions.Exhibition{
			Title:     title,
			Type:      exhibitions.TypeDaily,
			Status:    exhibitions.StatusActive,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}
		require.NoError(t, db.Create(&e).Error)
		out = append(out, e)
	}
	return out
}

func TestDaily_PicksByDateHash(t *testing.T) {
	db := setup(t, time.Date(2024, time.March, 7, 15, 0, 0, 0, time.Local))
	list := dailyExhibitions(t, db, "E1", "E2", "E3")

	// these must never be candidates
	require.NoError(t, db.Create(&exhibitions.Exhibition{Title: "regular", Type: exhibitions.TypeRegular, Status: exhibitions.StatusActive}).Error)
	require.NoError(t, db.Create(&exhibitions.Exhibition{Title: "draft", Type: exhibitions.TypeDaily, Status: exhibitions.StatusDraft}).Error)

	var resp DailyResponse
	require.Equal(t, http.StatusOK, get(t, "/site/exhibitions/daily", &resp))
	require.NotNil(t, resp.Exhibition)
	assert.Equal(t, list[1].ID, resp.Exhibition.ID)
	assert.Equal(t, "2024-3-7", resp.DateKey)
}

func TestDaily_NoCandidates(t *testing.T) {
	setup(t, time.Now())

	var resp DailyResponse
	require.Equal(t, http.StatusOK, get(t, "/site/exhibitions/daily", &resp))
	assert.Nil(t, resp.Exhibition)
}

func TestHome(t *testing.T) {
	db := setup(t, time.Date(2024, time.March, 7, 9, 0, 0, 0, time.Local))
	dailyExhibitions(t, db, "E1")
	mei := artist(t, db, "mei@example.com", "Mei")

	for i := 0; i < 10; i++ {
		require.NoError(t, db.Create(&works.Collection{ArtistID: mei.ID, Title: "c", Status: works.StatusPublished}).Error)
	}
	require.NoError(t, db.Create(&works.Collection{ArtistID: mei.ID, Title: "hidden", Status: works.StatusDraft}).Error)
	for i := 0; i < 5; i++ {
		require.NoError(t, db.Create(&partners.Partner{Name: "p", Type: partners.TypeGallery, Status: partners.StatusActive}).Error)
	}
	require.NoError(t, db.Create(&partners.Partner{Name: "gone", Type: partners.TypeGallery, Status: partners.StatusInactive}).Error)

	var resp HomeResponse
	require.Equal(t, http.StatusOK, get(t, "/site/home", &resp))
	require.NotNil(t, resp.Daily)
	assert.Equal(t, "E1", resp.Daily.Title)

	require.Len(t, resp.Collections, homeCollections)
	for _, c := range resp.Collections {
		assert.Equal(t, works.StatusPublished, c.Status)
		require.NotNil(t, c.Artist)
		assert.Equal(t, "Mei", c.Artist.DisplayName)
		require.NotNil(t, c.Artist.Account)
		assert.Equal(t, "Mei", c.Artist.Account.Username)
	}

	assert.Len(t, resp.Artists, 1)
	require.Len(t, resp.Partners, homePartners)
	for _, p := range resp.Partners {
		assert.Equal(t, partners.StatusActive, p.Status)
	}
}

func TestCollectionPage_OnlyPublished(t *testing.T) {
	db := setup(t, time.Now())
	mei := artist(t, db, "mei@example.com", "Mei")

	col := works.Collection{ArtistID: mei.ID, Title: "Sea", Status: works.StatusPublished}
	require.NoError(t, db.Create(&col).Error)
	draft := works.Collection{ArtistID: mei.ID, Title: "WIP", Status: works.StatusDraft}
	require.NoError(t, db.Create(&draft).Error)

	for _, s := range []works.Status{works.StatusPublished, works.StatusDraft, works.StatusPublished} {
		a := works.Artwork{ArtistID: mei.ID, CollectionID: &col.ID, Title: "w", Category: works.CategoryPhoto, Status: s}
		require.NoError(t, db.Create(&a).Error)
	}

	var resp CollectionPageResponse
	require.Equal(t, http.StatusOK, get(t, "/site/collections/"+col.ID, &resp))
	assert.Equal(t, "Sea", resp.Collection.Title)
	require.NotNil(t, resp.Collection.Artist)
	assert.Len(t, resp.Artworks, 2)

	assert.Equal(t, http.StatusNotFound, get(t, "/site/collections/"+draft.ID, nil))
	assert.Equal(t, http.StatusNotFound, get(t, "/site/collections/not-a-uuid", nil))
}

func TestArtistPage_CategoryCounts(t *testing.T) {
	db := setup(t, time.Now())
	mei := artist(t, db, "mei@example.com", "Mei")
	lin := artist(t, db, "lin@example.com", "Lin")

	mk := func(artistID string, cat works.Category, s works.Status) {
		a := works.Artwork{ArtistID: artistID, Title: "w", Category: cat, Status: s}
		require.NoError(t, db.Create(&a).Error)
	}
	mk(mei.ID, works.CategoryPainting, works.StatusPublished)
	mk(mei.ID, works.CategoryPainting, works.StatusPublished)
	mk(mei.ID, works.CategoryPhoto, works.StatusPublished)
	mk(mei.ID, works.CategorySculpture, works.StatusDraft)
	mk(lin.ID, works.CategoryPainting, works.StatusPublished)
	require.NoError(t, db.Create(&works.Collection{ArtistID: mei.ID, Title: "Sea", Status: works.StatusPublished}).Error)
	require.NoError(t, db.Create(&works.Collection{ArtistID: mei.ID, Title: "WIP", Status: works.StatusDraft}).Error)

	var resp ArtistPageResponse
	require.Equal(t, http.StatusOK, get(t, "/site/artists/"+mei.ID, &resp))
	assert.Equal(t, "Mei", resp.Artist.DisplayName)
	assert.Len(t, resp.Artworks, 3)
	assert.Len(t, resp.Collections, 1)
	assert.Equal(t, map[works.Category]int64{
		works.CategoryPainting: 2,
		works.CategoryPhoto:    1,
	}, resp.CategoryCounts)

	assert.Equal(t, http.StatusNotFound, get(t, "/site/artists/0b6f6c52-4a4c-4a8e-9d8e-1f1f1f1f1f1f", nil))
}

func TestPartnerPage_HidesDraftExhibitions(t *testing.T) {
	db := setup(t, time.Now())
	p := partners.Partner{Name: "Riverside", Type: partners.TypeMuseum, Status: partners.StatusActive}
	require.NoError(t, db.Create(&p).Error)
	for _, s := range []exhibitions.Status{exhibitions.StatusDraft, exhibitions.StatusActive, exhibitions.StatusArchived} {
		require.NoError(t, db.Create(&exhibitions.PartnerExhibition{PartnerID: p.ID, Title: string(s), Status: s}).Error)
	}

	var resp PartnerPageResponse
	require.Equal(t, http.StatusOK, get(t, "/site/partners/"+p.ID, &resp))
	assert.Equal(t, "Riverside", resp.Partner.Name)
	require.Len(t, resp.Exhibitions, 2)
	for _, e := range resp.Exhibitions {
		assert.NotEqual(t, exhibitions.StatusDraft, e.Status)
	}

	var list struct {
		Partners []partners.Partner `json:"partners"`
	}
	require.Equal(t, http.StatusOK, get(t, "/site/partners", &list))
	assert.Len(t, list.Partners, 1)
}
