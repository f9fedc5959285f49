package app

import (
	"github.com/AlyonaQA/ptm-server/internal/auth"
	"github.com/AlyonaQA/ptm-server/internal/cache"
	"github.com/AlyonaQA/ptm-server/internal/config"
	"github.com/AlyonaQA/ptm-server/internal/handlers"
	"github.com/AlyonaQA/ptm-server/internal/repo"
	"github.com/AlyonaQA/ptm-server/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, db *pgxpool.Pool, rdb *redis.Client) {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))

	api := r.Group("/api/v1")

	secret := []byte(cfg.Auth.Secret)
	userRepo := repo.NewPGUserRepo(db)
	userSvc := service.NewUserService(userRepo, secret, cfg.Auth.TokenTTL.Duration())
	authHandler := handlers.NewAuthHandler(userSvc)
	api.POST("/auth/signup", authHandler.SignUp)
	api.POST("/auth/signin", authHandler.SignIn)

	protected := api.Group("", auth.RequireAuth(secret))
	protected.DELETE("/auth/user", authHandler.DeleteUser)

	taskRepo := repo.NewPGTaskRepo(db)
	taskCache := cache.NewTaskCache(rdb, cfg.Redis.DefaultTTL.Duration())
	taskSvc := service.NewTaskService(taskRepo, taskCache)
	taskHandler := handlers.NewTaskHandler(taskSvc)
	registerTaskRoutes(protected, taskHandler)
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "PTM API",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"health":  "/health",
			"api":     "/api/v1",
		})
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
	}
}

func registerTaskRoutes(api *gin.RouterGroup, h *handlers.TaskHandler) {
	api.POST("/tasks", h.Create)
	api.GET("/tasks", h.List)
	api.DELETE("/tasks", h.DeleteAll)
	api.GET("/tasks/:id", h.GetByID)
	api.PATCH("/tasks/:id", h.Update)
	api.DELETE("/tasks/:id", h.Delete)
	api.PATCH("/tasks/:id/status", h.UpdateStatus)
	api.PUT("/tasks/:id/project", h.SetProject)
	api.DELETE("/tasks/:id/project", h.ClearProject)

	api.GET("/projects/:projectId/tasks", h.ListByProject)
	api.DELETE("/projects/:projectId/tasks", h.DeleteByProject)
	api.DELETE("/projects/:projectId", h.ClearProjectFromTasks)
}
