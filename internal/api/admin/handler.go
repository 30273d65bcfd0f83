package admin

import (
	"net/http"

	"cradle-api/database"
	"cradle-api/internal/api/params"
	"cradle-api/internal/api/respond"
	"cradle-api/internal/domain/access"
	"cradle-api/internal/domain/accounts"
	"cradle-api/internal/domain/apperr"
	"cradle-api/internal/domain/artists"
	"cradle-api/internal/domain/exhibitions"
	"cradle-api/internal/domain/partners"
	"cradle-api/internal/domain/tags"
	"cradle-api/internal/domain/works"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AdminAccount struct {
	ID           uint        `json:"id"`
	Email        string      `json:"email"`
	Username     string      `json:"username"`
	Role         access.Role `json:"role"`
	AuthProvider string      `json:"auth_provider"`
	IsVerified   bool        `json:"is_verified"`
	ArtistID     *string     `json:"artist_id,omitempty"`
	CreatedAt    string      `json:"created_at"`
}

type AdminStats struct {
	Accounts           int64                  `json:"accounts"`
	AccountsPerRole    map[access.Role]int64  `json:"accounts_per_role"`
	Artists            int64                  `json:"artists"`
	Artworks           int64                  `json:"artworks"`
	ArtworksPerStatus  map[works.Status]int64 `json:"artworks_per_status"`
	Collections        int64                  `json:"collections"`
	Tags               int64                  `json:"tags"`
	Exhibitions        int64                  `json:"exhibitions"`
	PartnerExhibitions int64                  `json:"partner_exhibitions"`
	Partners           int64                  `json:"partners"`
}

func GetAdminStats(c *gin.Context) {
	db := database.DB
	var stats AdminStats

	counts := []struct {
		model any
		dst   *int64
	}{
		{&accounts.Account{}, &stats.Accounts},
		{&artists.Profile{}, &stats.Artists},
		{&works.Artwork{}, &stats.Artworks},
		{&works.Collection{}, &stats.Collections},
		{&tags.Tag{}, &stats.Tags},
		{&exhibitions.Exhibition{}, &stats.Exhibitions},
		{&exhibitions.PartnerExhibition{}, &stats.PartnerExhibitions},
		{&partners.Partner{}, &stats.Partners},
	}
	for _, n := range counts {
		if err := db.Model(n.model).Count(n.dst).Error; err != nil {
			respond.Error(c, apperr.Upstream(err, "count rows"))
			return
		}
	}

	var perRole []struct {
		Role  access.Role
		Count int64
	}
	if err := db.Model(&accounts.Account{}).Select("role, COUNT(*) AS count").Group("role").Scan(&perRole).Error; err != nil {
		respond.Error(c, apperr.Upstream(err, "count accounts per role"))
		return
	}
	stats.AccountsPerRole = map[access.Role]int64{}
	for _, r := range perRole {
		stats.AccountsPerRole[r.Role] = r.Count
	}

	var perStatus []struct {
		Status works.Status
		Count  int64
	}
	if err := db.Model(&works.Artwork{}).Select("status, COUNT(*) AS count").Group("status").Scan(&perStatus).Error; err != nil {
		respond.Error(c, apperr.Upstream(err, "count artworks per status"))
		return
	}
	stats.ArtworksPerStatus = map[works.Status]int64{}
	for _, s := range perStatus {
		stats.ArtworksPerStatus[s.Status] = s.Count
	}

	c.JSON(http.StatusOK, stats)
}

// GET /admin/accounts  (?role=)
func ListAllAccounts(c *gin.Context) {
	limit, offset, err := params.Page(c, 100)
	if err != nil {
		respond.Error(c, err)
		return
	}

	q := database.DB.Model(&accounts.Account{})
	if v := c.Query("role"); v != "" {
		if !access.Role(v).Valid() {
			respond.Error(c, apperr.Invalid("unknown role %q", v))
			return
		}
		q = q.Where("role = ?", v)
	}

	var list []accounts.Account
	if err := q.Order("id ASC").Limit(limit).Offset(offset).Find(&list).Error; err != nil {
		respond.Error(c, apperr.Upstream(err, "load accounts"))
		return
	}

	owned, err := profilesByAccount(database.DB, list)
	if err != nil {
		respond.Error(c, err)
		return
	}

	out := make([]AdminAccount, 0, len(list))
	for _, a := range list {
		out = append(out, toAdminAccount(a, owned))
	}
	c.JSON(http.StatusOK, gin.H{"accounts": out})
}

// GET /admin/accounts/:id
func GetAccountDetails(c *gin.Context) {
	var acc accounts.Account
	if err := database.DB.First(&acc, "id = ?", c.Param("id")).Error; err != nil {
		respond.Error(c, apperr.FromDB(err, "account"))
		return
	}

	var profile *artists.Profile
	var p artists.Profile
	err := database.DB.Where("account_id = ?", acc.ID).Limit(1).Find(&p).Error
	if err != nil {
		respond.Error(c, apperr.Upstream(err, "load artist profile"))
		return
	}
	if p.ID != "" {
		profile = &p
	}

	owned := map[uint]string{}
	if profile != nil {
		owned[acc.ID] = profile.ID
	}
	c.JSON(http.StatusOK, gin.H{
		"account": toAdminAccount(acc, owned),
		"artist":  profile,
	})
}

func profilesByAccount(db *gorm.DB, list []accounts.Account) (map[uint]string, error) {
	out := map[uint]string{}
	if len(list) == 0 {
		return out, nil
	}
	ids := make([]uint, 0, len(list))
	for _, a := range list {
		ids = append(ids, a.ID)
	}
	var rows []artists.Profile
	if err := db.Select("id", "account_id").Where("account_id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, apperr.Upstream(err, "load artist profiles")
	}
	for _, p := range rows {
		out[p.AccountID] = p.ID
	}
	return out, nil
}

func toAdminAccount(a accounts.Account, owned map[uint]string) AdminAccount {
	out := AdminAccount{
		ID:           a.ID,
		Email:        a.Email,
		Username:     a.Username,
		Role:         a.Role,
		AuthProvider: a.AuthProvider,
		IsVerified:   a.IsVerified,
		CreatedAt:    a.CreatedAt.Format("2006-01-02 15:04"),
	}
	if id, ok := owned[a.ID]; ok {
		out.ArtistID = &id
	}
	return out
}
