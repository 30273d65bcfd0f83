package auth

import (
	"errors"
	"net/http"
	"strings"

	"cradle-api/database"
	"cradle-api/internal/api/respond"
	"cradle-api/internal/domain/accounts"
	"cradle-api/internal/domain/apperr"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		respond.BadRequest(c, err)
		return
	}

	var acc accounts.Account
	err := database.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(input.Email))).First(&acc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respond.Error(c, apperr.NotAuthenticated("invalid credentials"))
			return
		}
		respond.Error(c, apperr.Upstream(err, "load account"))
		return
	}

	if acc.PasswordHash == nil || *acc.PasswordHash == "" {
		respond.Error(c, apperr.NotAuthenticated("this account uses Google sign-in"))
		return
	}
	if !accounts.CheckPassword(acc.PasswordHash, input.Password) {
		respond.Error(c, apperr.NotAuthenticated("invalid credentials"))
		return
	}

	tokenString, err := IssueToken(acc)
	if err != nil {
		respond.Error(c, apperr.Upstream(err, "create token"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": tokenString})
}

func ChangePassword(c *gin.Context) {
	accountID := c.GetUint("account_id")

	var body struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.BadRequest(c, err)
		return
	}

	var acc accounts.Account
	if err := database.DB.First(&acc, accountID).Error; err != nil {
		respond.Error(c, apperr.FromDB(err, "account"))
		return
	}

	// google-only accounts may set a first password without an old one
	if acc.PasswordHash != nil && *acc.PasswordHash != "" && !accounts.CheckPassword(acc.PasswordHash, body.OldPassword) {
		respond.Error(c, apperr.NotAuthenticated("old password is incorrect"))
		return
	}

	hashed, err := accounts.HashPassword(body.NewPassword)
	if err != nil {
		respond.Error(c, err)
		return
	}
	if err := database.DB.Model(&acc).Update("password_hash", hashed).Error; err != nil {
		respond.Error(c, apperr.Upstream(err, "update password"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
}
