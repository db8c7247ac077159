package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"interview-prep-api/internal/applications"
	"interview-prep-api/internal/documents"
	"interview-prep-api/internal/interview"
	"interview-prep-api/internal/jobdesc"
	"interview-prep-api/internal/lookup"
	"interview-prep-api/internal/pdfexport"
	"interview-prep-api/internal/resumes"
	"interview-prep-api/internal/services/health"
	"interview-prep-api/internal/shared/config"
	"interview-prep-api/internal/shared/metrics"
	"interview-prep-api/internal/shared/server/middleware"
	"interview-prep-api/internal/shared/server/respond"
	"interview-prep-api/internal/speech"
)

const generationGroup = "GENERATION"

// generationRoutes call paid upstreams and share one rate limit bucket per caller.
var generationRoutes = map[string]string{
	"POST /api/resume/tailor":       generationGroup,
	"POST /api/resume/parse":        generationGroup,
	"POST /api/resume/generate-pdf": generationGroup,
	"POST /api/jobs/analyze":        generationGroup,
	"POST /api/interview/questions": generationGroup,
	"POST /api/speech/tts":          generationGroup,
	"POST /api/speech/transcribe":   generationGroup,
}

// RouterDeps carries the handlers mounted under /api. Nil handlers are skipped.
type RouterDeps struct {
	Config       config.Config
	Health       *health.Service
	Resumes      *resumes.Handler
	Documents    *documents.Handler
	Applications *applications.Handler
	PDF          *pdfexport.Handler
	JobDesc      *jobdesc.Handler
	Interview    *interview.Handler
	Speech       *speech.Handler
	Lookup       *lookup.Handler
	RateLimiter  *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Identity(),
		middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				generationGroup: {Rate: deps.Config.GenerationRateLimit, Burst: deps.Config.GenerationBurst},
			},
			GroupFor: middleware.GroupByRoute(generationRoutes),
			Limiter:  deps.RateLimiter,
		}),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	api.GET("/health", func(c *gin.Context) {
		if deps.Health == nil {
			respond.OK(c, gin.H{"ok": true})
			return
		}
		report := deps.Health.Status(c.Request.Context())
		status := http.StatusOK
		if !report.OK {
			status = http.StatusServiceUnavailable
		}
		respond.JSON(c, status, report)
	})

	if deps.Resumes != nil {
		deps.Resumes.RegisterRoutes(api)
	}
	if deps.Documents != nil {
		deps.Documents.RegisterRoutes(api)
	}
	if deps.Applications != nil {
		deps.Applications.RegisterRoutes(api)
	}
	if deps.PDF != nil {
		deps.PDF.RegisterRoutes(api)
	}
	if deps.JobDesc != nil {
		deps.JobDesc.RegisterRoutes(api)
	}
	if deps.Interview != nil {
		deps.Interview.RegisterRoutes(api)
	}
	if deps.Speech != nil {
		deps.Speech.RegisterRoutes(api)
	}
	if deps.Lookup != nil {
		deps.Lookup.RegisterRoutes(api)
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
