package routes

import (
	"net/http"

	"cradle-api/config"
	adminapi "cradle-api/internal/api/admin"
	artistsapi "cradle-api/internal/api/artists"
	authapi "cradle-api/internal/api/auth"
	exhibitionsapi "cradle-api/internal/api/exhibitions"
	partnersapi "cradle-api/internal/api/partners"
	siteapi "cradle-api/internal/api/site"
	tagsapi "cradle-api/internal/api/tags"
	uploadsapi "cradle-api/internal/api/uploads"
	"cradle-api/internal/api/users"
	worksapi "cradle-api/internal/api/works"
	"cradle-api/internal/app/http/middleware"
	"cradle-api/internal/domain/access"
	"cradle-api/internal/infra/storage"
	"cradle-api/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Deps struct {
	Sessions *session.Resolver
	Store    storage.Store
	Uploads  config.UploadSettings
}

func RegisterRoutes(r *gin.Engine, deps Deps) {
	r.Use(middleware.Metrics())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if mem, ok := deps.Store.(*storage.Memory); ok {
		r.GET("/uploads/*key", uploadsapi.ServeMemory(mem))
	}

	// Public
	public := r.Group("/")
	public.Use(middleware.SanitizeAndCleanInputMiddleware())

	public.POST("/login", authapi.Login)
	public.GET("/auth/google", authapi.GoogleStart)
	public.GET("/auth/google/callback", authapi.GoogleCallback)

	public.GET("/site/home", siteapi.GetHome)
	public.GET("/site/exhibitions/daily", siteapi.GetDailyExhibition)
	public.GET("/site/collections/:id", siteapi.GetCollectionPage)
	public.GET("/site/artists/:id", siteapi.GetArtistPage)
	public.GET("/site/partners", siteapi.ListPartners)
	public.GET("/site/partners/:id", siteapi.GetPartnerPage)

	// Authenticated
	auth := r.Group("/")
	auth.Use(
		middleware.AuthMiddleware(),
		middleware.ActorMiddleware(deps.Sessions),
		middleware.SanitizeAndCleanInputMiddleware(),
	)
	auth.GET("/me", users.GetCurrentUser)
	auth.POST("/change-password", authapi.ChangePassword)

	uploads := uploadsapi.NewHandler(deps.Store, deps.Uploads)
	auth.POST("/uploads", uploads.Upload)
	auth.DELETE("/uploads", uploads.Delete)

	can := middleware.RequireAccess

	// Artist-scoped for artists, unrestricted for admins
	auth.GET("/artworks", can(access.Artworks, access.OpList), worksapi.ListArtworks)
	auth.GET("/artworks/:id", can(access.Artworks, access.OpRead), worksapi.GetArtwork)
	auth.POST("/artworks", can(access.Artworks, access.OpCreate), worksapi.CreateArtwork)
	auth.PUT("/artworks/:id", can(access.Artworks, access.OpUpdate), worksapi.UpdateArtwork)
	auth.DELETE("/artworks/:id", can(access.Artworks, access.OpDelete), worksapi.DeleteArtwork)
	auth.PUT("/artworks/:id/tags", can(access.Artworks, access.OpUpdate), worksapi.ReplaceArtworkTags)

	auth.GET("/collections", can(access.Collections, access.OpList), worksapi.ListCollections)
	auth.GET("/collections/:id", can(access.Collections, access.OpRead), worksapi.GetCollection)
	auth.POST("/collections", can(access.Collections, access.OpCreate), worksapi.CreateCollection)
	auth.PUT("/collections/:id", can(access.Collections, access.OpUpdate), worksapi.UpdateCollection)
	auth.DELETE("/collections/:id", can(access.Collections, access.OpDelete), worksapi.DeleteCollection)

	// Admin only
	artists := artistsapi.NewHandler(deps.Sessions)
	auth.GET("/artists", can(access.Artists, access.OpList), artists.List)
	auth.GET("/artists/:id", can(access.Artists, access.OpRead), artists.Get)
	auth.POST("/artists", can(access.Artists, access.OpCreate), artists.Create)
	auth.PUT("/artists/:id", can(access.Artists, access.OpUpdate), artists.Update)
	auth.DELETE("/artists/:id", can(access.Artists, access.OpDelete), artists.Delete)

	auth.GET("/tags", can(access.Tags, access.OpList), tagsapi.ListTags)
	auth.POST("/tags", can(access.Tags, access.OpCreate), tagsapi.CreateTag)
	auth.PUT("/tags/:id", can(access.Tags, access.OpUpdate), tagsapi.UpdateTag)
	auth.DELETE("/tags/:id", can(access.Tags, access.OpDelete), tagsapi.DeleteTag)

	auth.GET("/exhibitions", can(access.Exhibitions, access.OpList), exhibitionsapi.ListExhibitions)
	auth.GET("/exhibitions/:id", can(access.Exhibitions, access.OpRead), exhibitionsapi.GetExhibition)
	auth.POST("/exhibitions", can(access.Exhibitions, access.OpCreate), exhibitionsapi.CreateExhibition)
	auth.PUT("/exhibitions/:id", can(access.Exhibitions, access.OpUpdate), exhibitionsapi.UpdateExhibition)
	auth.DELETE("/exhibitions/:id", can(access.Exhibitions, access.OpDelete), exhibitionsapi.DeleteExhibition)
	auth.PUT("/exhibitions/:id/artworks", can(access.Exhibitions, access.OpUpdate), exhibitionsapi.ReplaceExhibitionArtworks)

	auth.GET("/partners", can(access.Partners, access.OpList), partnersapi.ListPartners)
	auth.GET("/partners/:id", can(access.Partners, access.OpRead), partnersapi.GetPartner)
	auth.POST("/partners", can(access.Partners, access.OpCreate), partnersapi.CreatePartner)
	auth.PUT("/partners/:id", can(access.Partners, access.OpUpdate), partnersapi.UpdatePartner)
	auth.DELETE("/partners/:id", can(access.Partners, access.OpDelete), partnersapi.DeletePartner)

	admin := auth.Group("/admin")
	admin.Use(middleware.RequireAdmin())
	admin.GET("/stats", adminapi.GetAdminStats)
	admin.GET("/accounts", adminapi.ListAllAccounts)
	admin.GET("/accounts/:id", adminapi.GetAccountDetails)
}
