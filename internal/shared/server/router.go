package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"audiofields-backend/internal/intake"
	"audiofields-backend/internal/services/health"
	"audiofields-backend/internal/shared/config"
	"audiofields-backend/internal/shared/metrics"
	"audiofields-backend/internal/shared/server/middleware"
	"audiofields-backend/internal/shared/server/respond"
)

// RouterDeps holds the handlers mounted on the router.
type RouterDeps struct {
	Config        config.Config
	IntakeHandler *intake.Handler
	Health        *health.Service
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/health", func(c *gin.Context) {
		status := deps.Health.Check(c.Request.Context())
		if !status.OK {
			respond.JSON(c, http.StatusServiceUnavailable, status)
			return
		}
		respond.OK(c, status)
	})
	r.GET("/metrics", metrics.Handler())

	if deps.IntakeHandler != nil {
		deps.IntakeHandler.RegisterRoutes(r)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8000"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
