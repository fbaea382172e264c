package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Frey210/SiWarga/config"
	"github.com/Frey210/SiWarga/internal/api/handler"
	"github.com/Frey210/SiWarga/internal/api/middleware"
	"github.com/Frey210/SiWarga/internal/model"
	"github.com/Frey210/SiWarga/pkg/jwt"
	"github.com/Frey210/SiWarga/pkg/redis"
)

// Setup builds the Gin engine and mounts every route.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(cfg.Storage.MaxUploadBytes))

	// ── health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// auth (no token required)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
		}

		// public announcement board
		announcements := v1.Group("/announcements")
		{
			announcements.GET("", h.Announcement.PublicList)
			announcements.GET("/:slug", h.Announcement.PublicGetBySlug)
			announcements.GET("/:slug/cover", h.Announcement.PublicGetCover)
		}

		// authenticated routes
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.POST("/auth/logout", h.Auth.Logout)

			// resident submissions
			submissions := authorized.Group("/submissions")
			{
				submissions.POST("", middleware.RoleAuth(model.RoleWarga), h.Submission.Create)
				submissions.GET("", middleware.RoleAuth(model.RoleWarga), h.Submission.List)
				submissions.GET("/:id", middleware.RoleAuth(model.RoleWarga), h.Submission.GetDetail)
				// owner or admin; Service layer enforces access
				submissions.POST("/:id/files", h.Submission.UploadFile)
			}

			// attachments (owner or admin; Service layer enforces access)
			authorized.GET("/files/:id", h.Submission.DownloadFile)

			// administrator review queue and board management
			admin := authorized.Group("/admin")
			admin.Use(middleware.RoleAuth(model.RoleAdminRW))
			{
				admin.GET("/submissions", h.AdminSubmission.List)
				admin.GET("/submissions/export", h.AdminSubmission.Export)
				admin.GET("/submissions/:id", h.AdminSubmission.GetDetail)
				admin.POST("/submissions/:id/actions", h.AdminSubmission.ApplyAction)

				admin.POST("/announcements", h.Announcement.Create)
				admin.GET("/announcements", h.Announcement.AdminList)
				admin.GET("/announcements/:id", h.Announcement.GetByID)
				admin.PUT("/announcements/:id", h.Announcement.Update)
				admin.DELETE("/announcements/:id", h.Announcement.Delete)
				admin.PUT("/announcements/:id/status", h.Announcement.ChangeStatus)
				admin.PUT("/announcements/:id/cover", h.Announcement.UploadCover)
				admin.DELETE("/announcements/:id/cover", h.Announcement.DeleteCover)
			}
		}
	}

	return r
}
