package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/pormanms/ifs24057-pbo-proyek/internal/middleware"
	"github.com/pormanms/ifs24057-pbo-proyek/internal/models"
	"github.com/pormanms/ifs24057-pbo-proyek/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ActivityHandler lists the caller's request audit trail.
type ActivityHandler struct {
	DB       *gorm.DB
	PageSize int
}

func NewActivityHandler(db *gorm.DB, pageSize int) *ActivityHandler {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &ActivityHandler{DB: db, PageSize: pageSize}
}

type activityResp struct {
	Method     string    `json:"method"`
	Path       string    `json:"path"`
	Status     int       `json:"status"`
	DurationMS int64     `json:"duration_ms"`
	IP         string    `json:"ip"`
	CreatedAt  time.Time `json:"created_at"`
}

// List returns one page of the caller's audit rows, newest first.
func (h *ActivityHandler) List(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		util.Fail(c, http.StatusUnauthorized, util.MsgTokenMissing)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}

	var logs []models.AuditLog
	if err := h.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Limit(h.PageSize).
		Offset((page - 1) * h.PageSize).
		Find(&logs).Error; err != nil {
		util.Error(c, util.MsgServerError)
		return
	}

	resp := make([]activityResp, 0, len(logs))
	for _, l := range logs {
		resp = append(resp, activityResp{
			Method:     l.Method,
			Path:       l.Path,
			Status:     l.Status,
			DurationMS: l.DurationMS,
			IP:         l.IP,
			CreatedAt:  l.CreatedAt,
		})
	}

	util.Success(c, "", gin.H{
		"page":       page,
		"activities": resp,
	})
}
