package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"cradle-api/config"
	"cradle-api/database"
	"cradle-api/internal/api/respond"
	"cradle-api/internal/domain/accounts"
	"cradle-api/internal/domain/apperr"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"gorm.io/gorm"
)

func googleOAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     config.GOOGLE_CLIENT_ID,
		ClientSecret: config.GOOGLE_CLIENT_SECRET,
		RedirectURL:  config.GOOGLE_REDIRECT_URL,
		Scopes: []string{
			"openid",
			"email",
			"profile",
		},
		Endpoint: google.Endpoint,
	}
}

func randomState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// GET /auth/google
func GoogleStart(c *gin.Context) {
	if !config.GoogleEnabled() {
		respond.Error(c, apperr.NotFound("google sign-in is not configured"))
		return
	}

	state, err := randomState()
	if err != nil {
		respond.Error(c, apperr.Upstream(err, "generate state"))
		return
	}

	c.SetCookie("oauth_state", state, 300, "/", "", c.Request.TLS != nil, true)

	url := googleOAuthConfig().AuthCodeURL(state, oauth2.AccessTypeOnline)
	c.Redirect(http.StatusFound, url)
}

// GET /auth/google/callback
func GoogleCallback(c *gin.Context) {
	if !config.GoogleEnabled() {
		respond.Error(c, apperr.NotFound("google sign-in is not configured"))
		return
	}

	state := c.Query("state")
	code := c.Query("code")
	if code == "" || state == "" {
		respond.Error(c, apperr.Invalid("missing code/state"))
		return
	}

	cookieState, err := c.Cookie("oauth_state")
	if err != nil || cookieState != state {
		respond.Error(c, apperr.Invalid("invalid oauth state"))
		return
	}

	tok, err := googleOAuthConfig().Exchange(c.Request.Context(), code)
	if err != nil {
		respond.Error(c, apperr.NotAuthenticated("failed to exchange code"))
		return
	}

	rawIDToken, ok := tok.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		respond.Error(c, apperr.NotAuthenticated("missing id_token"))
		return
	}

	claims, err := verifyGoogleIDToken(c, rawIDToken)
	if err != nil {
		respond.Error(c, apperr.NotAuthenticated(err.Error()))
		return
	}

	acc, err := linkGoogleAccount(database.DB, claims)
	if err != nil {
		respond.Error(c, err)
		return
	}

	tokenString, err := IssueToken(acc)
	if err != nil {
		respond.Error(c, apperr.Upstream(err, "create token"))
		return
	}

	redirect := config.GOOGLE_FRONTEND_REDIRECT
	if redirect == "" {
		c.JSON(http.StatusOK, gin.H{"token": tokenString})
		return
	}
	c.Redirect(http.StatusFound, redirect+"?token="+tokenString)
}

type googleIDClaims struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

func verifyGoogleIDToken(c *gin.Context, rawIDToken string) (*googleIDClaims, error) {
	ctx := c.Request.Context()

	provider, err := oidc.NewProvider(ctx, "https://accounts.google.com")
	if err != nil {
		return nil, errors.New("failed to init google oidc provider")
	}

	verifier := provider.Verifier(&oidc.Config{
		ClientID: config.GOOGLE_CLIENT_ID,
	})

	idToken, err := verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, errors.New("invalid id_token")
	}

	var claims googleIDClaims
	if err := idToken.Claims(&claims); err != nil {
		return nil, errors.New("failed to decode token claims")
	}
	if claims.Email == "" || claims.Sub == "" {
		return nil, errors.New("token missing required claims")
	}
	return &claims, nil
}

// linkGoogleAccount finds the account for a Google identity: by google_sub
// first, then by a verified email, linking the sub on first use. Accounts
// are created by admins only, so an unknown identity is refused.
func linkGoogleAccount(db *gorm.DB, gc *googleIDClaims) (accounts.Account, error) {
	var acc accounts.Account

	err := db.Where("google_sub = ?", gc.Sub).First(&acc).Error
	if err == nil {
		return acc, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return acc, apperr.Upstream(err, "load account")
	}

	if !gc.EmailVerified {
		return acc, apperr.InsufficientRole("google email is not verified")
	}

	err = db.Where("email = ?", strings.ToLower(gc.Email)).First(&acc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return acc, apperr.InsufficientRole("no account for this Google identity")
	}
	if err != nil {
		return acc, apperr.Upstream(err, "load account")
	}

	if acc.GoogleSub != nil && *acc.GoogleSub != gc.Sub {
		return acc, apperr.InsufficientRole("account is linked to another Google identity")
	}

	sub := gc.Sub
	updates := map[string]any{"google_sub": sub, "is_verified": true}
	if acc.AvatarURL == "" && gc.Picture != "" {
		updates["avatar_url"] = gc.Picture
	}
	if err := db.Model(&acc).Updates(updates).Error; err != nil {
		return acc, apperr.Upstream(err, "link google account")
	}
	acc.GoogleSub = &sub
	acc.IsVerified = true
	return acc, nil
}
