package rest

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/bibbank/conveyor/pkg/auth"
)

// requireJWT rejects requests without a valid bearer token and stores the
// claims in the request context.
func requireJWT(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.BearerToken(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		claims, err := jwtService.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Request = c.Request.WithContext(auth.ContextWithClaims(c.Request.Context(), claims))
		c.Next()
	}
}

// requestLogger writes one structured line per request.
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		level := slog.LevelInfo
		if c.Writer.Status() >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		attrs := []any{
			"method", c.Request.Method,
			"route", c.FullPath(),
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if claims, ok := auth.ClaimsFromContext(c.Request.Context()); ok {
			attrs = append(attrs, "subject", claims.Subject)
		}
		logger.Log(c.Request.Context(), level, "http request", attrs...)
	}
}

// requestMetrics records request latency and count per route and status.
func requestMetrics(meter metric.Meter) (gin.HandlerFunc, error) {
	latency, err := meter.Int64Histogram("http.server.latency",
		metric.WithUnit("ms"),
		metric.WithDescription("The latency of HTTP requests."))
	if err != nil {
		return nil, err
	}
	requests, err := meter.Int64Counter("http.server.requests",
		metric.WithDescription("The total number of HTTP requests."))
	if err != nil {
		return nil, err
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		attrs := metric.WithAttributes(
			attribute.String("http.route", c.FullPath()),
			attribute.String("http.request.method", c.Request.Method),
			attribute.Int("http.response.status_code", c.Writer.Status()),
		)
		latency.Record(c.Request.Context(), time.Since(start).Milliseconds(), attrs)
		requests.Add(c.Request.Context(), 1, attrs)
	}, nil
}
