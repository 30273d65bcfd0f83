// Package session turns an authenticated account id into the Actor the
// access rules work with.
package session

import (
	"context"
	"errors"
	"time"

	"cradle-api/internal/domain/access"
	"cradle-api/internal/domain/accounts"
	"cradle-api/internal/domain/apperr"
	"cradle-api/internal/domain/artists"

	lru "github.com/hashicorp/golang-lru"
	"gorm.io/gorm"
)

const defaultCacheSize = 1024

type cachedActor struct {
	actor     access.Actor
	timestamp time.Time
}

// Resolver loads an account's role and owned artist profile. Results are
// kept in an LRU for ttl; Invalidate drops an entry when the profile
// ownership of an account changes.
type Resolver struct {
	db    *gorm.DB
	cache *lru.Cache
	ttl   time.Duration
	now   func() time.Time
}

func NewResolver(db *gorm.DB, cacheSize int, ttl time.Duration) *Resolver {
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	cache, _ := lru.New(cacheSize)
	return &Resolver{db: db, cache: cache, ttl: ttl, now: time.Now}
}

// Actor resolves accountID. A missing account means the token outlived it
// and is reported as not authenticated.
func (r *Resolver) Actor(ctx context.Context, accountID uint) (access.Actor, error) {
	if accountID == 0 {
		return access.Actor{}, apperr.NotAuthenticated("login required")
	}

	if cached, ok := r.cache.Get(accountID); ok {
		entry := cached.(cachedActor)
		if r.ttl <= 0 || r.now().Sub(entry.timestamp) < r.ttl {
			return entry.actor, nil
		}
		r.cache.Remove(accountID)
	}

	db := r.db.WithContext(ctx)

	var acc accounts.Account
	if err := db.Select("id", "role").First(&acc, accountID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return access.Actor{}, apperr.NotAuthenticated("account no longer exists")
		}
		return access.Actor{}, apperr.Upstream(err, "load account")
	}

	actor := access.Actor{AccountID: acc.ID, Role: acc.Role}

	var ids []string
	if err := db.Model(&artists.Profile{}).Where("account_id = ?", acc.ID).Limit(1).Pluck("id", &ids).Error; err != nil {
		return access.Actor{}, apperr.Upstream(err, "load artist profile")
	}
	if len(ids) > 0 {
		actor.OwnedArtistID = ids[0]
	}

	r.cache.Add(accountID, cachedActor{actor: actor, timestamp: r.now()})
	return actor, nil
}

func (r *Resolver) Invalidate(accountID uint) {
	r.cache.Remove(accountID)
}
