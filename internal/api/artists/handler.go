package artists

import (
	"net/http"
	"strings"

	"cradle-api/database"
	"cradle-api/internal/api/params"
	"cradle-api/internal/api/respond"
	"cradle-api/internal/domain/access"
	"cradle-api/internal/domain/accounts"
	"cradle-api/internal/domain/apperr"
	"cradle-api/internal/domain/artists"
	"cradle-api/internal/domain/graph"
	"cradle-api/internal/domain/works"
	"cradle-api/internal/repository"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Sessions is told when an account gains or loses its artist profile.
type Sessions interface {
	Invalidate(accountID uint)
}

type Handler struct {
	sessions Sessions
}

func NewHandler(sessions Sessions) *Handler {
	return &Handler{sessions: sessions}
}

func (h *Handler) invalidate(accountID uint) {
	if h.sessions != nil {
		h.sessions.Invalidate(accountID)
	}
}

// GET /artists
func (h *Handler) List(c *gin.Context) {
	limit, offset, err := params.Page(c, 100)
	if err != nil {
		respond.Error(c, err)
		return
	}

	q := database.DB.Model(&artists.Profile{})
	if v := strings.TrimSpace(c.Query("q")); v != "" {
		q = q.Where("LOWER(display_name) LIKE ?", "%"+strings.ToLower(v)+"%")
	}

	var list []artists.Profile
	if err := q.Scopes(repository.Paginate(limit, offset)).
		Order("created_at DESC").Order("id ASC").
		Find(&list).Error; err != nil {
		respond.Error(c, apperr.Upstream(err, "load artists"))
		return
	}

	accs, err := loadAccounts(database.DB, list)
	if err != nil {
		respond.Error(c, err)
		return
	}
	out := make([]ArtistDTO, 0, len(list))
	for _, p := range list {
		out = append(out, ArtistDTO{Profile: p, Account: accs[p.AccountID]})
	}
	c.JSON(http.StatusOK, gin.H{"artists": out})
}

// GET /artists/:id
func (h *Handler) Get(c *gin.Context) {
	var p artists.Profile
	if err := repository.First(database.DB, &p, c.Param("id"), "artist"); err != nil {
		respond.Error(c, err)
		return
	}

	accs, err := loadAccounts(database.DB, []artists.Profile{p})
	if err != nil {
		respond.Error(c, err)
		return
	}
	stats, err := loadStats(database.DB, p.ID)
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, ArtistDetailDTO{
		ArtistDTO: ArtistDTO{Profile: p, Account: accs[p.AccountID]},
		Stats:     stats,
	})
}

// POST /artists  (account + profile in one transaction)
func (h *Handler) Create(c *gin.Context) {
	var req CreateArtistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}

	var p artists.Profile
	err := database.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		acc, err := accountForProfile(tx, req)
		if err != nil {
			return err
		}

		p = artists.Profile{
			AccountID:   acc.ID,
			DisplayName: req.DisplayName,
			Specialty:   req.Specialty,
			Intro:       req.Intro,
			Philosophy:  req.Philosophy,
			AvatarURL:   req.AvatarURL,
			IsVerified:  req.IsVerified,
		}
		if err := tx.Create(&p).Error; err != nil {
			return apperr.Upstream(err, "create artist")
		}
		return nil
	})
	if err != nil {
		respond.Error(c, err)
		return
	}

	h.invalidate(p.AccountID)
	c.JSON(http.StatusCreated, gin.H{"id": p.ID, "account_id": p.AccountID})
}

func accountForProfile(tx *gorm.DB, req CreateArtistRequest) (accounts.Account, error) {
	var acc accounts.Account

	if req.AccountID != 0 {
		if err := tx.First(&acc, req.AccountID).Error; err != nil {
			return acc, apperr.FromDB(err, "account")
		}
		var n int64
		if err := tx.Model(&artists.Profile{}).Where("account_id = ?", acc.ID).Count(&n).Error; err != nil {
			return acc, apperr.Upstream(err, "check artist profile")
		}
		if n > 0 {
			return acc, apperr.Referential("account %d already owns an artist profile", acc.ID)
		}
		return acc, nil
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return acc, apperr.Invalid("email or account_id is required")
	}
	var n int64
	if err := tx.Model(&accounts.Account{}).Where("email = ?", email).Count(&n).Error; err != nil {
		return acc, apperr.Upstream(err, "check email")
	}
	if n > 0 {
		return acc, apperr.Referential("email %s is already registered", email)
	}

	acc = accounts.Account{
		Email:        email,
		Username:     req.Username,
		AuthProvider: accounts.ProviderLocal,
		Role:         access.RoleArtist,
		AvatarURL:    req.AvatarURL,
		IsVerified:   req.IsVerified,
	}
	if acc.Username == "" {
		acc.Username = req.DisplayName
	}
	if req.Password != "" {
		hashed, err := accounts.HashPassword(req.Password)
		if err != nil {
			return acc, err
		}
		acc.PasswordHash = &hashed
	}
	if err := tx.Create(&acc).Error; err != nil {
		return acc, apperr.Upstream(err, "create account")
	}
	return acc, nil
}

// PUT /artists/:id  (profile, plus the owning account's username, avatar
// and verified flag)
func (h *Handler) Update(c *gin.Context) {
	var req UpdateArtistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.BadRequest(c, err)
		return
	}

	err := database.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var p artists.Profile
		if err := repository.First(tx, &p, c.Param("id"), "artist"); err != nil {
			return err
		}

		profile := map[string]any{}
		account := map[string]any{}
		if req.DisplayName != nil {
			if *req.DisplayName == "" {
				return apperr.Invalid("display_name must not be empty")
			}
			profile["display_name"] = *req.DisplayName
		}
		if req.Specialty != nil {
			profile["specialty"] = *req.Specialty
		}
		if req.Intro != nil {
			profile["intro"] = *req.Intro
		}
		if req.Philosophy != nil {
			profile["philosophy"] = *req.Philosophy
		}
		if req.AvatarURL != nil {
			profile["avatar_url"] = *req.AvatarURL
			account["avatar_url"] = *req.AvatarURL
		}
		if req.IsVerified != nil {
			profile["is_verified"] = *req.IsVerified
			account["is_verified"] = *req.IsVerified
		}
		if req.Username != nil {
			account["username"] = *req.Username
		}

		if len(profile) > 0 {
			if err := tx.Model(&artists.Profile{}).Where("id = ?", p.ID).Updates(profile).Error; err != nil {
				return apperr.Upstream(err, "update artist")
			}
		}
		if len(account) > 0 {
			if err := tx.Model(&accounts.Account{}).Where("id = ?", p.AccountID).Updates(account).Error; err != nil {
				return apperr.Upstream(err, "update artist account")
			}
		}
		return nil
	})
	if err != nil {
		respond.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// DELETE /artists/:id  (artworks, collections and the account stay)
func (h *Handler) Delete(c *gin.Context) {
	p, err := graph.DeleteArtistProfile(database.DB.WithContext(c.Request.Context()), c.Param("id"))
	if err != nil {
		respond.Error(c, err)
		return
	}
	h.invalidate(p.AccountID)
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func loadAccounts(db *gorm.DB, list []artists.Profile) (map[uint]*AccountDTO, error) {
	ids := make([]uint, 0, len(list))
	for _, p := range list {
		ids = append(ids, p.AccountID)
	}
	out := make(map[uint]*AccountDTO, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var rows []accounts.Account
	if err := db.Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, apperr.Upstream(err, "load artist accounts")
	}
	for _, a := range rows {
		out[a.ID] = &AccountDTO{
			ID:         a.ID,
			Email:      a.Email,
			Username:   a.Username,
			AvatarURL:  a.AvatarURL,
			IsVerified: a.IsVerified,
			CreatedAt:  a.CreatedAt,
		}
	}
	return out, nil
}

func loadStats(db *gorm.DB, artistID string) (StatsDTO, error) {
	var s StatsDTO
	if err := db.Model(&works.Artwork{}).Where("artist_id = ?", artistID).Count(&s.Artworks).Error; err != nil {
		return s, apperr.Upstream(err, "count artworks")
	}
	if err := db.Model(&works.Artwork{}).Where("artist_id = ? AND status = ?", artistID, works.StatusPublished).Count(&s.PublishedArtworks).Error; err != nil {
		return s, apperr.Upstream(err, "count published artworks")
	}
	if err := db.Model(&works.Collection{}).Where("artist_id = ?", artistID).Count(&s.Collections).Error; err != nil {
		return s, apperr.Upstream(err, "count collections")
	}
	return s, nil
}
