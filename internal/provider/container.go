package provider

import (
	"fmt"

	"github.com/whitebirds/internal/authz"
	"github.com/whitebirds/internal/cache"
	"github.com/whitebirds/internal/config"
	"github.com/whitebirds/internal/logger"
	"github.com/whitebirds/internal/models"
	"github.com/whitebirds/internal/ratelimit"
	"github.com/whitebirds/internal/repository"
	"github.com/whitebirds/internal/service"

	"gorm.io/gorm"
)

// Container wires repositories and services for the HTTP layer
type Container struct {
	Config      *config.Config
	RateLimiter ratelimit.Limiter

	// Repositories
	UserRepo    repository.UserRepository
	ProductRepo repository.ProductRepository
	CartRepo    repository.CartRepository
	OrderRepo   repository.OrderRepository
	ReviewRepo  repository.ReviewRepository

	// Services
	AuthzService   *authz.Service
	AuthService    *service.AuthService
	ProductService *service.ProductService
	CartService    *service.CartService
	OrderService   *service.OrderService
	ReviewService  *service.ReviewService
	ProfileService *service.ProfileService
}

// NewContainer builds the container on the global DB; it panics when authz cannot start
func NewContainer(cfg *config.Config) *Container {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}
	c, err := Build(cfg, models.DB)
	if err != nil {
		logger.Errorw("provider_init_failed", "error", err)
		panic(err)
	}
	return c
}

// Build wires everything on db
func Build(cfg *config.Config, db *gorm.DB) (*Container, error) {
	if cfg == nil || db == nil {
		return nil, fmt.Errorf("provider requires config and db")
	}
	c := &Container{Config: cfg}
	c.initRepositories(db)
	if err := c.initServices(db); err != nil {
		return nil, err
	}
	c.initRateLimiter()
	return c, nil
}

func (c *Container) initRepositories(db *gorm.DB) {
	c.UserRepo = repository.NewUserRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.ReviewRepo = repository.NewReviewRepository(db)
}

func (c *Container) initServices(db *gorm.DB) error {
	authzService, err := authz.NewService(db)
	if err != nil {
		return err
	}
	if err := authzService.BootstrapBuiltinRoles(); err != nil {
		return fmt.Errorf("bootstrap builtin roles failed: %w", err)
	}
	c.AuthzService = authzService

	c.AuthService = service.NewAuthService(c.Config, c.UserRepo)
	c.ProductService = service.NewProductService(c.ProductRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo, c.OrderRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.ProductRepo, c.UserRepo)
	c.ReviewService = service.NewReviewService(c.ReviewRepo, c.ProductRepo, c.Config.Review.DailyLimit)
	c.ProfileService = service.NewProfileService(c.UserRepo)
	return nil
}

// initRateLimiter prefers shared Redis counters and keeps an in-process fallback
func (c *Container) initRateLimiter() {
	memory := ratelimit.NewMemory()
	if client := cache.Client(); client != nil {
		c.RateLimiter = ratelimit.NewFailover(ratelimit.NewRedis(client, cache.Prefix()), memory)
		return
	}
	c.RateLimiter = memory
}
