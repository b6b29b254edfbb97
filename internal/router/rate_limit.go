package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/whitebirds/internal/config"
	"github.com/whitebirds/internal/http/response"
	"github.com/whitebirds/internal/logger"
	"github.com/whitebirds/internal/ratelimit"

	"github.com/gin-gonic/gin"
)

const (
	globalRateLimitMessage = "Too many requests, please try again later."
	signinRateLimitMessage = "Too many signin attempts, please try again later."
)

// RateLimitKeyFunc builds the limiter key for a request
type RateLimitKeyFunc func(*gin.Context) string

// RateLimitRule limiter rule bound to a key namespace and a rejection message
type RateLimitRule struct {
	Namespace string
	Rule      ratelimit.Rule
	Message   string
}

// ruleFromConfig converts a window/max pair from config
func ruleFromConfig(namespace string, cfg config.RateLimitConfig, message string) RateLimitRule {
	return RateLimitRule{
		Namespace: namespace,
		Rule: ratelimit.Rule{
			Window: time.Duration(cfg.WindowSeconds) * time.Second,
			Max:    cfg.MaxRequests,
		},
		Message: message,
	}
}

// RateLimitMiddleware rejects requests over the rule with 429; limiter errors let the request through
func RateLimitMiddleware(limiter ratelimit.Limiter, rule RateLimitRule, keyFunc RateLimitKeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil || !rule.Rule.Valid() {
			c.Next()
			return
		}

		key := ""
		if keyFunc != nil {
			key = strings.TrimSpace(keyFunc(c))
		}
		if key == "" {
			key = c.ClientIP()
		}
		if rule.Namespace != "" {
			key = fmt.Sprintf("%s:%s", rule.Namespace, key)
		}

		decision, err := limiter.Allow(c.Request.Context(), key, rule.Rule)
		if err != nil {
			logger.Warnw("rate_limit_unavailable", "key", key, "error", err)
			c.Next()
			return
		}

		c.Header("RateLimit-Limit", strconv.Itoa(rule.Rule.Max))
		remaining := rule.Rule.Max - decision.Count
		if remaining < 0 {
			remaining = 0
		}
		c.Header("RateLimit-Remaining", strconv.Itoa(remaining))

		if !decision.Allowed {
			waitSeconds := int(math.Ceil(decision.RetryAfter.Seconds()))
			if waitSeconds < 1 {
				waitSeconds = 1
			}
			c.Header("Retry-After", strconv.Itoa(waitSeconds))
			msg := strings.TrimSpace(rule.Message)
			if msg == "" {
				msg = globalRateLimitMessage
			}
			response.Abort(c, response.CodeTooManyRequests, msg)
			return
		}

		c.Next()
	}
}

// KeyByIP client IP as the key
func KeyByIP(c *gin.Context) string {
	return c.ClientIP()
}

// KeyByIPAndJSONField lower-cased JSON body field plus client IP; the body is restored for the handler
func KeyByIPAndJSONField(field string) RateLimitKeyFunc {
	return func(c *gin.Context) string {
		value := strings.ToLower(strings.TrimSpace(readJSONField(c, field)))
		if value == "" {
			return c.ClientIP()
		}
		return fmt.Sprintf("%s|%s", value, c.ClientIP())
	}
}

func readJSONField(c *gin.Context, field string) string {
	if c == nil || c.Request == nil || c.Request.Body == nil {
		return ""
	}
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		// replay what was read, then the read error, so the handler still sees an oversize body
		c.Request.Body = io.NopCloser(io.MultiReader(bytes.NewReader(body), errorReader{err: err}))
		return ""
	}
	c.Request.Body = io.NopCloser(bytes.NewBuffer(body))
	if len(body) == 0 {
		return ""
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if text, ok := payload[field].(string); ok {
		return strings.TrimSpace(text)
	}
	return ""
}

type errorReader struct {
	err error
}

func (r errorReader) Read([]byte) (int, error) {
	return 0, r.err
}
