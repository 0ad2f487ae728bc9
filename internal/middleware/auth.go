package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/pormanms/ifs24057-pbo-proyek/internal/auth"
	"github.com/pormanms/ifs24057-pbo-proyek/internal/models"
	"github.com/pormanms/ifs24057-pbo-proyek/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// CurrentUserKey is the gin context key holding the authenticated user.
const CurrentUserKey = "currentUser"

// AuthGate authenticates every request outside publicPaths: it extracts the
// bearer token, decodes it, confirms it has not been revoked, resolves the
// user row and puts it on the request context. Any failure aborts the chain
// with a fail envelope.
func AuthGate(codec *auth.Codec, tokens *auth.TokenStore, db *gorm.DB, publicPaths []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, prefix := range publicPaths {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		// Header must be "Authorization: Bearer <token>". A missing header
		// and a header without the Bearer scheme are the same condition.
		raw := ""
		header := c.GetHeader("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			raw = strings.TrimSpace(header[len("Bearer "):])
		}
		if raw == "" {
			util.Fail(c, http.StatusUnauthorized, util.MsgTokenMissing)
			c.Abort()
			return
		}

		userID, err := codec.Decode(raw)
		if err != nil {
			util.Fail(c, http.StatusUnauthorized, util.MsgTokenInvalid)
			c.Abort()
			return
		}

		// A token that decodes fine but is absent from the store was revoked
		// (logout). A store fault must not be read as revocation.
		if _, err := tokens.FindActive(userID, raw); err != nil {
			if errors.Is(err, auth.ErrTokenNotFound) {
				util.Fail(c, http.StatusUnauthorized, util.MsgTokenExpired)
			} else {
				util.Error(c, util.MsgServerError)
			}
			c.Abort()
			return
		}

		var user models.User
		if err := db.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				util.Fail(c, http.StatusNotFound, util.MsgUserNotFound)
			} else {
				util.Error(c, util.MsgServerError)
			}
			c.Abort()
			return
		}

		c.Set(CurrentUserKey, &user)
		c.Next()
	}
}

// CurrentUser returns the user the gate resolved for this request, or nil on
// public routes.
func CurrentUser(c *gin.Context) *models.User {
	v, ok := c.Get(CurrentUserKey)
	if !ok {
		return nil
	}
	user, ok := v.(*models.User)
	if !ok {
		return nil
	}
	return user
}
