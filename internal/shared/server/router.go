package server

import (
	"net/http"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"

	"resume-booster/internal/resumes"
	"resume-booster/internal/services/health"
	"resume-booster/internal/shared/auth"
	"resume-booster/internal/shared/config"
	"resume-booster/internal/shared/metrics"
	"resume-booster/internal/shared/server/middleware"
	"resume-booster/internal/shared/server/respond"
	"resume-booster/internal/users"
)

// RouterDeps carries the handlers and collaborators the router mounts.
type RouterDeps struct {
	Config        config.Config
	Health        *health.Service
	Metrics       *metrics.Metrics
	Verifier      auth.Verifier
	UserResolver  middleware.UserResolver
	UserHandler   *users.Handler
	ResumeHandler *resumes.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.IsDevLike() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)
	r.NoRoute(func(c *gin.Context) {
		respond.Error(c, http.StatusNotFound, respond.CodeNotFound, "route not found", nil)
	})

	healthHandler := func(c *gin.Context) {
		report := deps.Health.Status(c.Request.Context())
		status := http.StatusOK
		if !report.OK {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, report)
	}
	r.GET("/healthcheck", healthHandler)
	if deps.Metrics != nil {
		r.GET("/metrics", deps.Metrics.Handler())
	}
	if deps.Config.PprofEnabled {
		pprof.Register(r)
	}

	api := r.Group("/api")
	api.GET("/health", healthHandler)

	authn := middleware.Authenticate(deps.Verifier)
	requireUser := middleware.RequireUser(deps.UserResolver)
	if deps.UserHandler != nil {
		deps.UserHandler.RegisterRoutes(api, authn, requireUser)
	}
	if deps.ResumeHandler != nil {
		deps.ResumeHandler.RegisterRoutes(api.Group("", authn, requireUser))
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
