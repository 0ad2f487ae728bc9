package middleware

import (
	"time"

	"github.com/pormanms/ifs24057-pbo-proyek/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Audit persists one row per handled request of an authenticated user.
// It runs after the handler chain, so it records the final status.
func Audit(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		user := CurrentUser(c)
		if user == nil {
			return
		}

		userID := user.ID
		entry := models.AuditLog{
			UserID:     &userID,
			Method:     c.Request.Method,
			Path:       c.Request.URL.Path,
			Status:     c.Writer.Status(),
			DurationMS: time.Since(start).Milliseconds(),
			IP:         c.ClientIP(),
			UserAgent:  c.Request.UserAgent(),
		}

		_ = db.Create(&entry).Error
	}
}
