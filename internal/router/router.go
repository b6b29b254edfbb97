package router

import (
	"net/http"
	"sort"
	"strings"

	"github.com/whitebirds/internal/authz"
	"github.com/whitebirds/internal/config"
	"github.com/whitebirds/internal/constants"
	"github.com/whitebirds/internal/http/binding"
	publichandlers "github.com/whitebirds/internal/http/handlers/public"
	"github.com/whitebirds/internal/http/response"
	"github.com/whitebirds/internal/logger"
	"github.com/whitebirds/internal/provider"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

const routeNotFoundMessage = "Route not found"

// SetupRouter builds the HTTP engine
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	if err := binding.RegisterValidators(); err != nil {
		logger.Errorw("register_validators_failed", "error", err)
	}

	r := gin.New()
	r.HandleMethodNotAllowed = false

	h := publichandlers.New(c)
	globalRule := ruleFromConfig("global", cfg.Security.RateLimit, globalRateLimitMessage)
	signinRule := ruleFromConfig("signin", cfg.Security.LoginRateLimit, signinRateLimitMessage)

	r.Use(RecoveryMiddleware(cfg.Server.IsRelease()))
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(SecurityHeadersMiddleware())
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(CORSMiddleware(cfg.CORS))
	r.Use(BodyLimitMiddleware(cfg.Server.MaxBodyBytes))
	r.Use(RateLimitMiddleware(c.RateLimiter, globalRule, KeyByIP))

	api := r.Group("/api")
	{
		api.GET("", func(ctx *gin.Context) {
			response.OK(ctx, gin.H{"status": "ok", "message": "Welcome to WhiteBirds"})
		})

		auth := api.Group("/auth")
		{
			auth.POST("/signup", h.Signup)
			auth.POST("/signin", RateLimitMiddleware(c.RateLimiter, signinRule, KeyByIPAndJSONField("email")), h.Signin)
			auth.POST("/signout", h.Signout)
		}

		api.GET("/products", h.ListProducts)

		session := api.Group("")
		session.Use(UserAuthMiddleware(cfg.Cookie.Name, c.AuthService), RoleAuthzMiddleware(c.AuthzService))
		{
			session.GET("/personal", h.GetProfile)
			session.PUT("/personal/update", h.UpdatePersonal)
			session.PUT("/profile/update", h.UpdateProfile)

			session.GET("/cart", h.GetCart)
			session.POST("/cart", h.AddToCart)
			session.POST("/cart/order-all", h.OrderAllCartItems)
			session.PUT("/cart/:id", h.UpdateCartItem)
			session.DELETE("/cart/:id", h.RemoveCartItem)

			session.GET("/orders", h.ListOrders)
			session.POST("/orders", h.CreateOrder)
			session.GET("/orders/:id", h.GetOrder)
			session.PUT("/orders/:id/cancel", h.CancelOrder)

			session.POST("/reviews", h.CreateReview)
		}
	}

	r.NoRoute(func(ctx *gin.Context) {
		response.NotFound(ctx, routeNotFoundMessage)
	})
	r.NoMethod(func(ctx *gin.Context) {
		response.NotFound(ctx, routeNotFoundMessage)
	})

	missing, err := ungrantedSessionRoutes(r, c.AuthzService)
	if err != nil {
		logger.Errorw("authz_catalog_check_failed", "error", err)
	}
	for _, policy := range missing {
		logger.Warnw("authz_route_without_customer_policy", "method", policy.Action, "route", policy.Object)
	}

	return r
}

// publicRoutes routes reachable without a session
var publicRoutes = map[string]struct{}{
	"GET /api":               {},
	"GET /api/products":      {},
	"POST /api/auth/signup":  {},
	"POST /api/auth/signin":  {},
	"POST /api/auth/signout": {},
}

// sessionRouteCatalog the session routes registered on engine as authz policies, sorted
func sessionRouteCatalog(engine *gin.Engine) []authz.Policy {
	if engine == nil {
		return []authz.Policy{}
	}

	routes := engine.Routes()
	seen := make(map[string]struct{}, len(routes))
	items := make([]authz.Policy, 0, len(routes))
	for _, item := range routes {
		method := strings.ToUpper(strings.TrimSpace(item.Method))
		if method == "" || method == http.MethodOptions || method == http.MethodHead {
			continue
		}
		if !strings.HasPrefix(item.Path, "/api") {
			continue
		}
		permission := method + " " + item.Path
		if _, public := publicRoutes[permission]; public {
			continue
		}
		if _, exists := seen[permission]; exists {
			continue
		}
		seen[permission] = struct{}{}
		items = append(items, authz.Policy{Object: authz.NormalizeObject(item.Path), Action: method})
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Object == items[j].Object {
			return items[i].Action < items[j].Action
		}
		return items[i].Object < items[j].Object
	})
	return items
}

// ungrantedSessionRoutes session routes the customer role has no policy for; such routes answer 403 to everyone
func ungrantedSessionRoutes(engine *gin.Engine, authzService *authz.Service) ([]authz.Policy, error) {
	granted, err := authzService.GetRolePolicies(constants.RoleCustomer)
	if err != nil {
		return nil, err
	}
	have := make(map[string]struct{}, len(granted))
	for _, policy := range granted {
		have[policy.Action+" "+policy.Object] = struct{}{}
	}
	missing := make([]authz.Policy, 0)
	for _, policy := range sessionRouteCatalog(engine) {
		if _, ok := have[policy.Action+" "+policy.Object]; !ok {
			missing = append(missing, policy)
		}
	}
	return missing, nil
}
