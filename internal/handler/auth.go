package handler

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/pormanms/ifs24057-pbo-proyek/internal/auth"
	"github.com/pormanms/ifs24057-pbo-proyek/internal/middleware"
	"github.com/pormanms/ifs24057-pbo-proyek/internal/models"
	"github.com/pormanms/ifs24057-pbo-proyek/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthHandler serves registration, login and logout.
type AuthHandler struct {
	DB         *gorm.DB
	Codec      *auth.Codec
	Tokens     *auth.TokenStore
	BcryptCost int
}

func NewAuthHandler(db *gorm.DB, codec *auth.Codec, tokens *auth.TokenStore, bcryptCost int) *AuthHandler {
	if bcryptCost <= 0 {
		bcryptCost = 12
	}
	return &AuthHandler{
		DB:         db,
		Codec:      codec,
		Tokens:     tokens,
		BcryptCost: bcryptCost,
	}
}

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ---------- register ----------

type registerReq struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required,min=8,max=64"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Fail(c, http.StatusBadRequest, util.MsgBadRequest)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if req.Name == "" || !emailRe.MatchString(req.Email) {
		util.Fail(c, http.StatusBadRequest, util.MsgBadRequest)
		return
	}

	var count int64
	if err := h.DB.Model(&models.User{}).
		Where("email = ?", req.Email).
		Count(&count).Error; err != nil {
		util.Error(c, util.MsgServerError)
		return
	}
	if count > 0 {
		util.Fail(c, http.StatusBadRequest, util.MsgEmailTaken)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.BcryptCost)
	if err != nil {
		util.Error(c, util.MsgServerError)
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := h.DB.Create(&user).Error; err != nil {
		util.Error(c, util.MsgServerError)
		return
	}

	util.Success(c, util.MsgRegistered, gin.H{
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
		},
	})
}

// ---------- login ----------

type loginReq struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Fail(c, http.StatusBadRequest, util.MsgBadRequest)
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// same message as a wrong password
			util.Fail(c, http.StatusUnauthorized, util.MsgWrongCredential)
		} else {
			util.Error(c, util.MsgServerError)
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		util.Fail(c, http.StatusUnauthorized, util.MsgWrongCredential)
		return
	}

	token, err := h.Codec.Issue(user.ID)
	if err != nil {
		util.Error(c, util.MsgServerError)
		return
	}

	// the token only authenticates while this row exists; logout deletes it
	if _, err := h.Tokens.Create(user.ID, token); err != nil {
		util.Error(c, util.MsgServerError)
		return
	}

	util.Success(c, util.MsgLoggedIn, gin.H{
		"token": token,
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
		},
	})
}

// ---------- logout ----------

// Logout revokes every token of the caller, on all devices.
func (h *AuthHandler) Logout(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Fail(c, http.StatusUnauthorized, util.MsgTokenMissing)
		return
	}

	if err := h.Tokens.RevokeAll(user.ID); err != nil {
		util.Error(c, util.MsgServerError)
		return
	}

	util.Success(c, util.MsgLoggedOut, nil)
}
