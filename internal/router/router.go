package router

import (
	"fmt"
	"strings"

	"github.com/millerserhii/shipment-tracking-api/internal/cache"
	"github.com/millerserhii/shipment-tracking-api/internal/config"
	adminhandlers "github.com/millerserhii/shipment-tracking-api/internal/http/handlers/admin"
	apihandlers "github.com/millerserhii/shipment-tracking-api/internal/http/handlers/api"
	"github.com/millerserhii/shipment-tracking-api/internal/logger"
	"github.com/millerserhii/shipment-tracking-api/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter builds the gin engine with all middleware and routes.
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	r := gin.New()

	apiHandler := apihandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "sta"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
	}

	// Recovery sits outside the audit middleware so a re-raised panic
	// still turns into a 500 for the caller.
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(AuditLogMiddleware(logger.Z(), "/api/"))
	r.Use(CORSMiddleware(cfg.CORS))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"ping": "pong!"})
	})

	apiV1 := r.Group("/api/v1")
	{
		auth := apiV1.Group("/auth")
		{
			auth.POST("/register", apiHandler.Register)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), apiHandler.Login)
		}

		parcel := apiV1.Group("/parcel")
		parcel.Use(AuthOptionalMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		{
			parcel.GET("/addresses", apiHandler.ListAddresses)
			parcel.GET("/addresses/:id", apiHandler.GetAddress)
			parcel.GET("/articles", apiHandler.ListArticles)
			parcel.GET("/articles/:id", apiHandler.GetArticle)
		}

		shipments := apiV1.Group("/parcel/user-shipments")
		shipments.Use(AuthRequiredMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		{
			shipments.GET("", apiHandler.ListShipments)
			shipments.POST("", apiHandler.CreateShipment)
			shipments.GET("/:id", apiHandler.GetShipment)
			shipments.PUT("/:id", apiHandler.UpdateShipment)
			shipments.PATCH("/:id/status", apiHandler.UpdateShipmentStatus)
			shipments.DELETE("/:id", apiHandler.DeleteShipment)
		}

		apiV1.GET("/me", AuthRequiredMiddleware(cfg.JWT.SecretKey, c.UserRepo), apiHandler.Me)

		weather := apiV1.Group("/weather")
		{
			weather.GET("/get-weather", apiHandler.GetWeather)
		}

		admin := apiV1.Group("/admin")
		admin.Use(AuthRequiredMiddleware(cfg.JWT.SecretKey, c.UserRepo))
		admin.Use(SuperuserRequiredMiddleware())
		{
			admin.GET("/addresses", adminHandler.ListAddresses)
			admin.POST("/addresses", adminHandler.CreateAddress)
			admin.DELETE("/addresses/:id", adminHandler.DeleteAddress)
			admin.POST("/addresses/:id/restore", adminHandler.RestoreAddress)

			admin.GET("/articles", adminHandler.ListArticles)
			admin.POST("/articles", adminHandler.CreateArticle)
			admin.DELETE("/articles/:id", adminHandler.DeleteArticle)
			admin.POST("/articles/:id/restore", adminHandler.RestoreArticle)

			admin.GET("/shipments", adminHandler.ListShipments)
			admin.DELETE("/shipments/:id", adminHandler.DeleteShipment)
			admin.POST("/shipments/:id/restore", adminHandler.RestoreShipment)

			admin.GET("/revisions", adminHandler.ListRevisions)
			admin.GET("/revisions/:entity_type/:id", adminHandler.GetEntityRevisions)

			admin.POST("/permissions", adminHandler.GrantPermission)
			admin.DELETE("/permissions", adminHandler.RevokePermission)
			admin.GET("/permissions/:user_id", adminHandler.ListUserPermissions)
		}
	}

	return r
}
