package router

import (
	"net/http"
	"time"

	"github.com/pormanms/ifs24057-pbo-proyek/internal/auth"
	"github.com/pormanms/ifs24057-pbo-proyek/internal/config"
	"github.com/pormanms/ifs24057-pbo-proyek/internal/handler"
	"github.com/pormanms/ifs24057-pbo-proyek/internal/middleware"
	"github.com/pormanms/ifs24057-pbo-proyek/internal/service"
	"github.com/pormanms/ifs24057-pbo-proyek/internal/storage"
	"github.com/pormanms/ifs24057-pbo-proyek/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine, middleware chain and routes.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	codec := auth.NewCodec(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpireHours)*time.Hour)
	tokens := auth.NewTokenStore(db)
	files := storage.NewAttachmentStore(cfg.Upload.Dir)
	products := service.NewProductService(db, files)

	// uploaded images are served statically, never through handlers
	r.Static("/uploads", cfg.Upload.Dir)

	r.GET("/error", func(c *gin.Context) {
		util.Fail(c, http.StatusNotFound, util.MsgPageNotFound)
	})
	r.NoRoute(func(c *gin.Context) {
		util.Fail(c, http.StatusNotFound, util.MsgPageNotFound)
	})

	// ====== API ======
	api := r.Group("/api")
	api.Use(
		middleware.AuthGate(codec, tokens, db, cfg.Auth.PublicPaths),
		middleware.Audit(db),
	)

	authHandler := handler.NewAuthHandler(db, codec, tokens, cfg.Security.BcryptCost)
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)

	userHandler := handler.NewUserHandler(db, tokens, products)
	api.GET("/users/me", userHandler.GetMe)
	api.PUT("/users/me", userHandler.UpdateProfile)
	api.PUT("/users/me/password", userHandler.ChangePassword)
	api.DELETE("/users/me", userHandler.DeleteAccount)

	productHandler := handler.NewProductHandler(products)
	api.POST("/products", productHandler.Create)
	api.GET("/products", productHandler.List)
	api.GET("/products/:id", productHandler.Detail)
	api.PUT("/products/:id", productHandler.Update)
	api.DELETE("/products/:id", productHandler.Delete)

	exportHandler := handler.NewExportHandler(products)
	api.GET("/export/csv", exportHandler.ExportCSV)
	api.GET("/export/xlsx", exportHandler.ExportXLSX)

	activityHandler := handler.NewActivityHandler(db, cfg.App.PageSize)
	api.GET("/activities", activityHandler.List)

	return r
}
