package auth

import (
	"time"

	"cradle-api/config"
	"cradle-api/internal/domain/accounts"

	"github.com/golang-jwt/jwt/v5"
)

// IssueToken signs the session token the AuthMiddleware accepts. The role is
// informational only; every request reloads it from the database.
func IssueToken(acc accounts.Account) (string, error) {
	ttl := config.Current.Auth.TokenTTL()
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"account_id": acc.ID,
		"email":      acc.Email,
		"role":       acc.Role,
		"exp":        time.Now().Add(ttl).Unix(),
	})
	return t.SignedString([]byte(config.JWT_SECRET))
}
