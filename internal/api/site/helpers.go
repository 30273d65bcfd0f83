package siteapi

import (
	"net/http"
	"time"

	"cradle-api/database"
	"cradle-api/internal/api/respond"
	"cradle-api/internal/domain/apperr"
	"cradle-api/internal/domain/artists"
	"cradle-api/internal/domain/exhibitions"
	"cradle-api/internal/domain/partners"
	"cradle-api/internal/domain/works"
	"cradle-api/internal/repository"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// now is the server-local clock the daily pick is keyed on.
var now = time.Now

// GET /site/home
// The four sections are independent and load concurrently.
func GetHome(c *gin.Context) {
	g, ctx := errgroup.WithContext(c.Request.Context())
	db := database.DB.WithContext(ctx)
	var resp HomeResponse

	g.Go(func() error {
		daily, err := dailyExhibition(db, now())
		resp.Daily = daily
		return err
	})

	g.Go(func() error {
		var cols []works.Collection
		if err := db.Scopes(repository.Published).
			Order("created_at DESC").Order("id ASC").
			Limit(homeCollections).
			Find(&cols).Error; err != nil {
			return apperr.Upstream(err, "load collections")
		}
		dtos, err := withArtists(db, cols)
		resp.Collections = dtos
		return err
	})

	g.Go(func() error {
		var profiles []artists.Profile
		if err := db.Order("created_at DESC").Order("id ASC").Limit(homeArtists).Find(&profiles).Error; err != nil {
			return apperr.Upstream(err, "load artists")
		}
		dtos, err := withAccounts(db, profiles)
		resp.Artists = dtos
		return err
	})

	g.Go(func() error {
		resp.Partners = []partners.Partner{}
		if err := db.Where("status = ?", partners.StatusActive).
			Order("created_at DESC").Order("id ASC").
			Limit(homePartners).
			Find(&resp.Partners).Error; err != nil {
			return apperr.Upstream(err, "load partners")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GET /site/exhibitions/daily
func GetDailyExhibition(c *gin.Context) {
	t := now()
	daily, err := dailyExhibition(database.DB, t)
	if err != nil {
		respond.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, DailyResponse{Exhibition: daily, DateKey: exhibitions.DateKey(t)})
}

// GET /site/collections/:id
func GetCollectionPage(c *gin.Context) {
	db := database.DB

	var col works.Collection
	if err := repository.First(db, &col, c.Param("id"), "collection", repository.Published); err != nil {
		respond.Error(c, err)
		return
	}
	dtos, err := withArtists(db, []works.Collection{col})
	if err != nil {
		respond.Error(c, err)
		return
	}

	list := []works.Artwork{}
	if err := publishedArtworks(db).
		Where("collection_id = ?", col.ID).
		Order("created_at DESC").Order("id ASC").
		Find(&list).Error; err != nil {
		respond.Error(c, apperr.Upstream(err, "load artworks"))
		return
	}

	c.JSON(http.StatusOK, CollectionPageResponse{Collection: dtos[0], Artworks: list})
}

// GET /site/artists/:id
func GetArtistPage(c *gin.Context) {
	db := database.DB

	var p artists.Profile
	if err := repository.First(db, &p, c.Param("id"), "artist"); err != nil {
		respond.Error(c, err)
		return
	}
	dtos, err := withAccounts(db, []artists.Profile{p})
	if err != nil {
		respond.Error(c, err)
		return
	}

	cols := []works.Collection{}
	if err := db.Scopes(repository.Published).
		Where("artist_id = ?", p.ID).
		Order("created_at DESC").Order("id ASC").
		Find(&cols).Error; err != nil {
		respond.Error(c, apperr.Upstream(err, "load collections"))
		return
	}

	arts := []ArtworkSummary{}
	if err := publishedArtworks(db).
		Select("id", "title", "category").
		Where("artist_id = ?", p.ID).
		Order("created_at DESC").Order("id ASC").
		Scan(&arts).Error; err != nil {
		respond.Error(c, apperr.Upstream(err, "load artworks"))
		return
	}

	counts, err := categoryCounts(db, p.ID)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, ArtistPageResponse{
		Artist:         dtos[0],
		Collections:    cols,
		Artworks:       arts,
		CategoryCounts: counts,
	})
}

// GET /site/partners
func ListPartners(c *gin.Context) {
	list := []partners.Partner{}
	if err := database.DB.Order("created_at DESC").Order("id ASC").Find(&list).Error; err != nil {
		respond.Error(c, apperr.Upstream(err, "load partners"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"partners": list})
}

// GET /site/partners/:id
func GetPartnerPage(c *gin.Context) {
	db := database.DB

	var p partners.Partner
	if err := repository.First(db, &p, c.Param("id"), "partner"); err != nil {
		respond.Error(c, err)
		return
	}

	list := []exhibitions.PartnerExhibition{}
	if err := db.Where("partner_id = ? AND status <> ?", p.ID, exhibitions.StatusDraft).
		Order("start_date DESC").Order("id ASC").
		Find(&list).Error; err != nil {
		respond.Error(c, apperr.Upstream(err, "load partner exhibitions"))
		return
	}

	c.JSON(http.StatusOK, PartnerPageResponse{Partner: p, Exhibitions: list})
}
