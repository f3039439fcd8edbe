package provider

import (
	"github.com/millerserhii/shipment-tracking-api/internal/authz"
	"github.com/millerserhii/shipment-tracking-api/internal/cache"
	"github.com/millerserhii/shipment-tracking-api/internal/config"
	"github.com/millerserhii/shipment-tracking-api/internal/constants"
	"github.com/millerserhii/shipment-tracking-api/internal/logger"
	"github.com/millerserhii/shipment-tracking-api/internal/models"
	"github.com/millerserhii/shipment-tracking-api/internal/repository"
	"github.com/millerserhii/shipment-tracking-api/internal/service"
	"github.com/millerserhii/shipment-tracking-api/internal/weather"
)

// Container holds every wired dependency of the process.
type Container struct {
	Config *config.Config

	// Repositories
	UserRepo     repository.UserRepository
	AddressRepo  repository.AddressRepository
	ArticleRepo  repository.ArticleRepository
	ShipmentRepo repository.ShipmentRepository
	RevisionRepo repository.RevisionRepository

	// Services
	AuthzService    *authz.Service
	AuthService     *service.AuthService
	AddressService  *service.AddressService
	ArticleService  *service.ArticleService
	ShipmentService *service.ShipmentService
	WeatherService  *weather.Service

	// Access policies per exposed model
	AddressPolicy  authz.Policy
	ArticlePolicy  authz.Policy
	ShipmentPolicy authz.Policy
}

// NewContainer wires repositories, services and policies.
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	c := &Container{Config: cfg}
	c.initRepositories()
	c.initServices()
	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.AddressRepo = repository.NewAddressRepository(db)
	c.ArticleRepo = repository.NewArticleRepository(db)
	c.ShipmentRepo = repository.NewShipmentRepository(db)
	c.RevisionRepo = repository.NewRevisionRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService

	c.AuthService = service.NewAuthService(c.Config, c.UserRepo)
	c.AddressService = service.NewAddressService(c.AddressRepo)
	c.ArticleService = service.NewArticleService(c.ArticleRepo)
	c.ShipmentService = service.NewShipmentService(c.ShipmentRepo, c.ArticleRepo, c.AddressRepo)

	connector := weather.NewConnector(c.Config.Weather)
	c.WeatherService = weather.NewService(connector, cache.NewRedisStore(), c.Config.Weather.CacheTTL())

	// Addresses and articles are an open catalogue; their public routes
	// only expose reads. Shipments fall back to ownership for reads
	// only, so owners without model permissions cannot modify them.
	c.AddressPolicy = authz.AllowAny{}
	c.ArticlePolicy = authz.AllowAny{}
	c.ShipmentPolicy = authz.NewReadOnlyOwnerPolicy(c.AuthzService, constants.ObjectShipment)
}
