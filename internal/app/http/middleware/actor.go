package middleware

import (
	"cradle-api/internal/api/respond"
	"cradle-api/internal/domain/access"
	"cradle-api/internal/domain/apperr"
	"cradle-api/internal/session"

	"github.com/gin-gonic/gin"
)

const (
	actorKey    = "actor"
	decisionKey = "decision"
)

// ActorMiddleware resolves the account behind the token once per request.
// The role always comes from the database, never from the token.
func ActorMiddleware(r *session.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, err := r.Actor(c.Request.Context(), c.GetUint("account_id"))
		if err != nil {
			respond.Error(c, err)
			return
		}
		SetActor(c, actor)
		c.Next()
	}
}

func SetActor(c *gin.Context, actor access.Actor) {
	c.Set(actorKey, actor)
}

// RequireAccess denies the request before any query runs unless the actor
// may perform op on collection. The granted filter is kept for the handler.
func RequireAccess(collection access.Collection, op access.Operation) gin.HandlerFunc {
	return func(c *gin.Context) {
		d := access.Authorize(Actor(c), collection, op)
		if !d.Allowed {
			respond.Error(c, d.Err())
			return
		}
		c.Set(decisionKey, d)
		c.Next()
	}
}

// Actor returns the request's actor; the zero Actor when none was resolved.
func Actor(c *gin.Context) access.Actor {
	if v, ok := c.Get(actorKey); ok {
		if a, ok := v.(access.Actor); ok {
			return a
		}
	}
	return access.Actor{}
}

// Filter returns the row filter granted by RequireAccess.
func Filter(c *gin.Context) access.Filter {
	if v, ok := c.Get(decisionKey); ok {
		if d, ok := v.(access.Decision); ok {
			return d.Filter
		}
	}
	return access.Filter{}
}

// RequireAdmin guards admin surfaces that are not one of the entity
// collections.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		a := Actor(c)
		if !a.Authenticated() {
			respond.Error(c, apperr.NotAuthenticated("login required"))
			return
		}
		if !a.IsAdmin() {
			respond.Error(c, apperr.InsufficientRole("admin only"))
			return
		}
		c.Next()
	}
}
