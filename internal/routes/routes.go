package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/inkwell/inkwell-backend/internal/handler"
	"github.com/inkwell/inkwell-backend/internal/middleware"
	"github.com/inkwell/inkwell-backend/pkg/jwt"
)

// Setup configures all API routes
func Setup(
	router *gin.Engine,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	blogHandler *handler.BlogHandler,
	commentHandler *handler.CommentHandler,
	jwtManager *jwt.Manager,
	redisClient *redis.Client,
) {
	authLimiter := middleware.RateLimit(redisClient, middleware.AuthRateLimit())
	apiLimiter := middleware.RateLimit(redisClient, middleware.APIRateLimit())
	createLimiter := middleware.RateLimit(redisClient, middleware.CreateBlogRateLimit())
	authRequired := middleware.JWTAuth(jwtManager)

	api := router.Group("/api/v1")

	// Authentication
	auth := api.Group("/auth")
	auth.POST("/register", authLimiter, authHandler.Register)
	auth.POST("/login", authLimiter, authHandler.Login)
	auth.POST("/refresh", authLimiter, authHandler.Refresh)

	// Profiles
	users := api.Group("/users")
	users.GET("/profile", authRequired, userHandler.GetProfile)
	users.PUT("/profile", authRequired, userHandler.UpdateProfile)

	// Blogs
	blogs := api.Group("/blogs")
	blogs.POST("", authRequired, createLimiter, blogHandler.CreateBlog)
	blogs.GET("", apiLimiter, blogHandler.ListBlogs)
	blogs.GET("/drafts", apiLimiter, authRequired, blogHandler.ListDrafts)
	blogs.GET("/my-blogs", apiLimiter, authRequired, blogHandler.ListMyBlogs)
	blogs.GET("/:slug", apiLimiter, blogHandler.GetBlog)
	blogs.PUT("/:slug", apiLimiter, authRequired, blogHandler.UpdateBlog)
	blogs.PUT("/:slug/toggle-publish", apiLimiter, authRequired, blogHandler.TogglePublish)
	blogs.GET("/:slug/versions", apiLimiter, blogHandler.ListVersions)
	blogs.POST("/:slug/restore/:versionIndex", apiLimiter, authRequired, blogHandler.RestoreVersion)
	blogs.POST("/:slug/reaction", authRequired, blogHandler.React)
	blogs.DELETE("/:slug", apiLimiter, authRequired, blogHandler.DeleteBlog)

	// Comments
	comments := api.Group("/comments")
	comments.POST("", authRequired, commentHandler.CreateComment)
	comments.GET("/:blogId", apiLimiter, commentHandler.ListComments)
	comments.DELETE("/:id", authRequired, commentHandler.DeleteComment)
}
