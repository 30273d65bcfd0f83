package users

import (
	"net/http"

	"cradle-api/database"
	"cradle-api/internal/api/respond"
	"cradle-api/internal/app/http/middleware"
	"cradle-api/internal/domain/accounts"
	"cradle-api/internal/domain/apperr"
	"cradle-api/internal/domain/artists"

	"github.com/gin-gonic/gin"
)

// GET /me
func GetCurrentUser(c *gin.Context) {
	actor := middleware.Actor(c)
	if !actor.Authenticated() {
		respond.Error(c, apperr.NotAuthenticated("login required"))
		return
	}

	var acc accounts.Account
	if err := database.DB.First(&acc, actor.AccountID).Error; err != nil {
		respond.Error(c, apperr.FromDB(err, "account"))
		return
	}

	var profile *artists.Profile
	if actor.OwnedArtistID != "" {
		var p artists.Profile
		if err := database.DB.First(&p, "id = ?", actor.OwnedArtistID).Error; err != nil {
			respond.Error(c, apperr.FromDB(err, "artist"))
			return
		}
		profile = &p
	}

	c.JSON(http.StatusOK, MeResponse{
		User:   BuildUserDTO(acc),
		Artist: BuildArtistDTO(profile),
		Access: BuildAccessDTO(actor),
	})
}
