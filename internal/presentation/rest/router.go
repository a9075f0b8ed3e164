package rest

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel/metric"

	"github.com/bibbank/conveyor/pkg/auth"
)

// RouterConfig collects what the HTTP surface needs.
type RouterConfig struct {
	ServiceName    string
	Conveyor       *ConveyorHandler
	Health         *HealthHandler
	JWT            *auth.JWTService
	Meter          metric.Meter
	MetricsHandler http.Handler
	Logger         *slog.Logger
}

// NewRouter builds the gin engine: health checks and /metrics are public, the
// conveyor endpoints under /conveyor require a bearer token.
func NewRouter(cfg RouterConfig) (*gin.Engine, error) {
	metricsMW, err := requestMetrics(cfg.Meter)
	if err != nil {
		return nil, fmt.Errorf("create http metrics: %w", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(cfg.ServiceName))
	r.Use(requestLogger(cfg.Logger))

	cfg.Health.RegisterRoutes(r)
	if cfg.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(cfg.MetricsHandler))
	}

	api := r.Group("/conveyor", metricsMW, requireJWT(cfg.JWT))
	cfg.Conveyor.RegisterRoutes(api)

	return r, nil
}
