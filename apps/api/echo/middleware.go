package echoapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/BHARGAV15008/Cryptography-Resource-Manager/core"
	ratelimitsvc "github.com/BHARGAV15008/Cryptography-Resource-Manager/services/ratelimit"
)

// NewMemoryRateLimiterStore allows max requests per window and client on a single instance.
func NewMemoryRateLimiterStore(conf core.RateLimitConfig) middleware.RateLimiterStore {
	return ratelimitsvc.NewMemoryStore(conf.Max, conf.Window)
}

// rateLimiter throttles API requests per client IP.
func rateLimiter(store middleware.RateLimiterStore, window time.Duration) echo.MiddlewareFunc {
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(ctx echo.Context) (string, error) {
			return ctx.RealIP(), nil
		},
		DenyHandler: func(ctx echo.Context, _ string, _ error) error {
			ctx.Response().Header().Set("Retry-After", retryAfter(window))
			return ctx.JSON(http.StatusTooManyRequests, echo.Map{"message": msgTooManyRequests})
		},
	})
}

// retryAfter is the Retry-After header value, in seconds.
func retryAfter(window time.Duration) string {
	return strconv.Itoa(int(window.Seconds()))
}

// formOverhead is the room left for the non-file fields of an upload form.
const formOverhead = 1 << 20

// uploadBodyLimit caps multipart bodies at the largest of maxSizes plus the form fields.
// Other bodies are left to the JSON limit. A zero size means the policy is unbounded.
func uploadBodyLimit(maxSizes ...int64) echo.MiddlewareFunc {
	var largest int64
	for _, size := range maxSizes {
		if size <= 0 {
			return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
		}
		if size > largest {
			largest = size
		}
	}
	return middleware.BodyLimitWithConfig(middleware.BodyLimitConfig{
		Skipper: func(ctx echo.Context) bool { return !isMultipart(ctx) },
		Limit:   strconv.FormatInt(largest+formOverhead, 10),
	})
}
