package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bloggerum-backend/internal/shared/middleware"
	"bloggerum-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// DELETE /api/images/*imageUrlOrName nhận URL đã encode
	router.UseRawPath = true
	router.MaxMultipartMemory = int64(c.Config.Image.MaxUploadMB) << 20

	// Global middlewares
	router.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.Metrics(),
		middleware.CORS(c.Config.App.ClientURL),
		middleware.ErrorHandler(c.Config.IsProduction()),
	)

	router.GET("/health", healthCheckHandler(c))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		setupPostRoutes(api, c)
		setupTagRoutes(api, c)
		setupImageRoutes(api, c)
		setupUserRoutes(api, c)
	}

	router.NoRoute(middleware.NotFound())
	return router
}

// ========================================
// POST ROUTES
// ========================================
func setupPostRoutes(api *gin.RouterGroup, c *container.Container) {
	posts := api.Group("/posts")
	{
		posts.GET("", c.PostHandler.ListPosts)
		posts.GET("/:id", c.PostHandler.GetPost)
		posts.POST("", c.RequireSession, c.PostHandler.CreatePost)
		posts.PUT("/:id", c.RequireSession, c.PostHandler.UpdatePost)
		posts.DELETE("/:id", c.RequireSession, c.PostHandler.DeletePost)
	}
}

// ========================================
// TAG ROUTES
// ========================================
func setupTagRoutes(api *gin.RouterGroup, c *container.Container) {
	tags := api.Group("/tags")
	{
		tags.GET("", c.TagHandler.ListTags)
		tags.POST("", c.RequireSession, c.TagHandler.CreateTag)
	}
}

// ========================================
// IMAGE ROUTES (rich-text editor)
// ========================================
func setupImageRoutes(api *gin.RouterGroup, c *container.Container) {
	images := api.Group("/images")
	images.Use(c.RequireSession)
	{
		images.POST("", c.ImageHandler.UploadImage)
		images.DELETE("/*imageUrlOrName", c.ImageHandler.DeleteImage)
	}
}

// ========================================
// USER ROUTES
// ========================================
func setupUserRoutes(api *gin.RouterGroup, c *container.Container) {
	users := api.Group("/users")
	{
		users.POST("", c.UserHandler.Register)
		users.POST("/login", c.UserHandler.Login)
		users.POST("/logout", c.UserHandler.Logout)
		users.POST("/forgot-password", c.UserHandler.ForgotPassword)
		users.POST("/change-password", c.UserHandler.ChangePassword)
		users.GET("/profile/:id", c.UserHandler.GetPublicProfile)

		users.GET("/profile", c.RequireSession, c.UserHandler.GetProfile)
		users.PUT("/profile", c.RequireSession, c.UserHandler.UpdateProfile)
		users.POST("/validate-password", c.RequireSession, c.UserHandler.ValidatePassword)
	}
}

// ========================================
// HEALTH
// ========================================

func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		services := appCtx.HealthCheck(ctx)
		status, code := "ok", http.StatusOK
		for _, s := range services {
			if s != "UP" {
				status, code = "degraded", http.StatusServiceUnavailable
			}
		}

		c.JSON(code, gin.H{
			"status":    status,
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
			"services":  services,
			"pool":      appCtx.DB.Stats(),
		})
	}
}
