package app

import (
	"net/http"

	_ "TaskTracker/docs"
	"TaskTracker/internal/auth"
	"TaskTracker/internal/config"
	"TaskTracker/internal/handlers"
	"TaskTracker/internal/service"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, users *service.UserService, tasks *service.TaskService) {
	maxAge := int(cfg.Session.TTL.Duration().Seconds())
	secure := cfg.Session.CookieSecure

	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(http.StatusFound, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
		ginSwagger.PersistAuthorization(true),
	))

	pages := handlers.NewPageHandler(users, tasks, maxAge, secure)
	registerPageRoutes(r, pages)

	api := r.Group("/api/v1")
	authHandler := handlers.NewAuthHandler(users, maxAge, secure)
	registerAuthRoutes(api, authHandler)

	protected := api.Group("", auth.RequireAPI())
	protected.GET("/auth/me", authHandler.Me)
	taskHandler := handlers.NewTaskHandler(tasks)
	registerTaskRoutes(protected, taskHandler)
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
	}
}

func registerPageRoutes(r *gin.Engine, h *handlers.PageHandler) {
	r.GET("/", h.Index)
	r.GET("/register", h.RegisterForm)
	r.POST("/register", h.Register)
	r.GET("/login", h.LoginForm)
	r.POST("/login", h.Login)

	protected := r.Group("", auth.RequirePage())
	protected.GET("/logout", h.Logout)
	protected.GET("/dashboard", h.Dashboard)
	protected.POST("/add", h.Add)
	protected.GET("/complete/:id", h.Complete)
	protected.GET("/uncomplete/:id", h.Uncomplete)
	protected.POST("/edit/:id", h.Edit)
	protected.GET("/delete/:id", h.Delete)
}

func registerTaskRoutes(api *gin.RouterGroup, h *handlers.TaskHandler) {
	api.GET("/tasks", h.List)
	api.POST("/tasks", h.Create)
	api.GET("/tasks/today", h.Today)
	api.GET("/tasks/stats", h.Stats)
	api.PUT("/tasks/:id", h.Update)
	api.DELETE("/tasks/:id", h.Delete)
	api.POST("/tasks/:id/complete", h.Complete)
	api.POST("/tasks/:id/uncomplete", h.Uncomplete)
}

func registerAuthRoutes(api *gin.RouterGroup, h *handlers.AuthHandler) {
	api.POST("/auth/login", h.Login)
	api.POST("/auth/register", h.Register)
	api.POST("/auth/logout", h.Logout)
}
