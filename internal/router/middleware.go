package router

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/whitebirds/internal/authz"
	"github.com/whitebirds/internal/config"
	"github.com/whitebirds/internal/constants"
	"github.com/whitebirds/internal/http/response"
	"github.com/whitebirds/internal/logger"
	"github.com/whitebirds/internal/service"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	requestIDHeader        = "X-Request-ID"
	defaultAllowedOrigin   = "http://localhost:3000"
	internalErrorMessage   = "Internal Server Error"
	requestTooLargeMessage = "request entity too large"
	signinRequiredMessage  = "signin required"
	tokenInvalidMessage    = "Not authorized, token invalid"
	accessDeniedMessage    = "Access denied"
)

// RecoveryMiddleware turns a panic into a 500; the recovered value is only exposed outside release mode
func RecoveryMiddleware(release bool) gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(nil, func(c *gin.Context, recovered interface{}) {
		logger.Errorw("request_panic",
			"request_id", getRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"panic", recovered,
		)
		msg := internalErrorMessage
		if !release {
			msg = fmt.Sprint(recovered)
		}
		response.Abort(c, response.CodeInternal, msg)
	})
}

// RequestIDMiddleware propagates or generates X-Request-ID
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(constants.ContextKeyRequestID, requestID)
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

// LoggerMiddleware structured access log
func LoggerMiddleware(log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.L()
	}
	sugar := log.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := sugar.With(
			"request_id", getRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
		if len(c.Errors) > 0 {
			entry.Errorw("request", "errors", c.Errors.String())
			return
		}
		entry.Infow("request")
	}
}

func getRequestID(c *gin.Context) string {
	return c.GetString(constants.ContextKeyRequestID)
}

// SecurityHeadersMiddleware hardening headers for a JSON API
func SecurityHeadersMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "SAMEORIGIN")
		h.Set("X-DNS-Prefetch-Control", "off")
		h.Set("X-XSS-Protection", "0")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Strict-Transport-Security", "max-age=15552000; includeSubDomains")
		h.Set("Cross-Origin-Opener-Policy", "same-origin")
		h.Set("Content-Security-Policy", "default-src 'self'; frame-ancestors 'self'; object-src 'none'")
		c.Next()
	}
}

// CORSMiddleware credentialed CORS for the storefront origin
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	return cors.New(buildCORSConfig(cfg))
}

func buildCORSConfig(cfg config.CORSConfig) cors.Config {
	out := cors.Config{
		AllowMethods:     cfg.AllowedMethods,
		AllowHeaders:     cfg.AllowedHeaders,
		ExposeHeaders:    []string{requestIDHeader},
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           time.Duration(cfg.MaxAge) * time.Second,
	}
	if len(out.AllowMethods) == 0 {
		out.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	}
	if len(out.AllowHeaders) == 0 {
		out.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	}

	origins := make([]string, 0, len(cfg.AllowedOrigins))
	for _, origin := range cfg.AllowedOrigins {
		origin = strings.TrimRight(strings.TrimSpace(origin), "/")
		if origin == "" {
			continue
		}
		if origin == "*" {
			// a literal * is refused by browsers on credentialed requests, so echo the caller
			out.AllowOriginFunc = func(string) bool { return true }
			return out
		}
		origins = append(origins, origin)
	}
	if len(origins) == 0 {
		origins = []string{defaultAllowedOrigin}
	}
	out.AllowOrigins = origins
	return out
}

// BodyLimitMiddleware caps request bodies at maxBytes
func BodyLimitMiddleware(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes <= 0 || c.Request.Body == nil {
			c.Next()
			return
		}
		if c.Request.ContentLength > maxBytes {
			response.Abort(c, response.CodeEntityTooLarge, requestTooLargeMessage)
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// UserAuthMiddleware verifies the session token from the cookie, falling back to a Bearer header
func UserAuthMiddleware(cookieName string, authService *service.AuthService) gin.HandlerFunc {
	if strings.TrimSpace(cookieName) == "" {
		cookieName = "token"
	}
	return func(c *gin.Context) {
		tokenString := sessionToken(c, cookieName)
		if tokenString == "" {
			response.Abort(c, response.CodeUnauthorized, signinRequiredMessage)
			return
		}
		if authService == nil {
			response.Abort(c, response.CodeUnauthorized, tokenInvalidMessage)
			return
		}

		claims, err := authService.ParseToken(tokenString)
		if err != nil {
			response.Abort(c, response.CodeUnauthorized, tokenInvalidMessage)
			return
		}

		c.Set(constants.ContextKeyUserID, claims.ID)
		c.Set(constants.ContextKeyUserEmail, claims.Email)
		c.Set(constants.ContextKeyUserRole, claims.Role)
		c.Next()
	}
}

func sessionToken(c *gin.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && strings.TrimSpace(cookie) != "" {
		return strings.TrimSpace(cookie)
	}
	parts := strings.SplitN(strings.TrimSpace(c.GetHeader("Authorization")), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// RoleAuthzMiddleware checks the session role against the casbin policies of the matched route
func RoleAuthzMiddleware(authzService *authz.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		if authzService == nil {
			logger.Errorw("role_authz_service_unavailable")
			response.Abort(c, response.CodeForbidden, accessDeniedMessage)
			return
		}

		role := c.GetString(constants.ContextKeyUserRole)
		resource := c.FullPath()
		if strings.TrimSpace(resource) == "" {
			resource = c.Request.URL.Path
		}

		allowed, err := authzService.EnforceRole(role, resource, c.Request.Method)
		if err != nil {
			logger.Errorw("role_authz_enforce_failed",
				"role", role,
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"error", err,
			)
			response.Abort(c, response.CodeForbidden, accessDeniedMessage)
			return
		}
		if !allowed {
			logger.Warnw("role_authz_denied",
				"user_id", c.GetUint(constants.ContextKeyUserID),
				"role", role,
				"method", c.Request.Method,
				"resource", authz.NormalizeObject(resource),
			)
			response.Abort(c, response.CodeForbidden, accessDeniedMessage)
			return
		}
		c.Next()
	}
}
