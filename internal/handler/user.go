package handler

import (
	"net/http"
	"strings"

	"github.com/pormanms/ifs24057-pbo-proyek/internal/auth"
	"github.com/pormanms/ifs24057-pbo-proyek/internal/middleware"
	"github.com/pormanms/ifs24057-pbo-proyek/internal/models"
	"github.com/pormanms/ifs24057-pbo-proyek/internal/service"
	"github.com/pormanms/ifs24057-pbo-proyek/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserHandler serves the current user's profile and account lifecycle.
type UserHandler struct {
	DB       *gorm.DB
	Tokens   *auth.TokenStore
	Products *service.ProductService
}

func NewUserHandler(db *gorm.DB, tokens *auth.TokenStore, products *service.ProductService) *UserHandler {
	return &UserHandler{
		DB:       db,
		Tokens:   tokens,
		Products: products,
	}
}

// GetMe returns the authenticated user.
func (h *UserHandler) GetMe(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Fail(c, http.StatusUnauthorized, util.MsgTokenMissing)
		return
	}

	util.Success(c, "", gin.H{
		"user": gin.H{
			"id":         user.ID,
			"name":       user.Name,
			"email":      user.Email,
			"created_at": user.CreatedAt,
		},
	})
}

type updateProfileReq struct {
	Name string `json:"name" binding:"required,max=100"`
}

// UpdateProfile changes the display name.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Fail(c, http.StatusUnauthorized, util.MsgTokenMissing)
		return
	}

	var req updateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Fail(c, http.StatusBadRequest, util.MsgBadRequest)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		util.Fail(c, http.StatusBadRequest, util.MsgBadRequest)
		return
	}

	if err := h.DB.Model(user).Update("name", req.Name).Error; err != nil {
		util.Error(c, util.MsgServerError)
		return
	}
	user.Name = req.Name

	util.Success(c, util.MsgProfileUpdated, gin.H{
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
		},
	})
}

type changePasswordReq struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=64"`
}

// ChangePassword verifies the old password and stores a new hash.
func (h *UserHandler) ChangePassword(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Fail(c, http.StatusUnauthorized, util.MsgTokenMissing)
		return
	}

	var req changePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Fail(c, http.StatusBadRequest, util.MsgBadRequest)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		util.Fail(c, http.StatusBadRequest, util.MsgWrongPassword)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		util.Error(c, util.MsgServerError)
		return
	}

	if err := h.DB.Model(user).Update("password_hash", string(hash)).Error; err != nil {
		util.Error(c, util.MsgServerError)
		return
	}

	util.Success(c, util.MsgPasswordChanged, nil)
}

// DeleteAccount deregisters the caller: all tokens revoked, all products and
// their images removed, then the user row itself.
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Fail(c, http.StatusUnauthorized, util.MsgTokenMissing)
		return
	}

	if err := h.Tokens.RevokeAll(user.ID); err != nil {
		util.Error(c, util.MsgServerError)
		return
	}

	if err := h.Products.DeleteAllForUser(user.ID); err != nil {
		util.Error(c, util.MsgServerError)
		return
	}

	if err := h.DB.Delete(&models.User{}, user.ID).Error; err != nil {
		util.Error(c, util.MsgServerError)
		return
	}

	util.Success(c, util.MsgAccountDeleted, nil)
}
