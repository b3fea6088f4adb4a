// Package http serves the FinApp web UI: a sidebar of pages, each a form that
// forwards its input to one backend endpoint and renders the JSON reply.
package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"finapp/internal/api"
	"finapp/internal/cache"
	"finapp/internal/events"
	applog "finapp/internal/log"
	"finapp/internal/middleware/ratelimit"
	"finapp/internal/middleware/security"
	"finapp/internal/middleware/trace"
	"finapp/internal/session"
	appweb "finapp/web"
)

// Backend is the subset of the API client the handlers call.
type Backend interface {
	BaseURL() string
	Status(ctx context.Context) (*api.Response, error)
	UploadStatement(ctx context.Context, filename string, data []byte) (*api.Response, error)
	AnalyzeFreeform(ctx context.Context, text string) (*api.Response, error)
	Analyze(ctx context.Context, req api.AnalyzeRequest) (*api.Response, error)
	Advise(ctx context.Context, req api.AdviseRequest) (*api.Response, error)
	KBInit(ctx context.Context) (*api.Response, error)
	KBSearch(ctx context.Context, req api.SearchRequest, advanced bool) (*api.Response, error)
}

// Submitter queues submission events without blocking.
type Submitter interface {
	Submit(s *events.Submission) bool
}

type noopSubmitter struct{}

func (noopSubmitter) Submit(*events.Submission) bool { return false }

// Dependencies wires the server to its collaborators. Only Backend is required.
type Dependencies struct {
	Backend  Backend
	Sessions *session.Store
	Events   Submitter
	Caches   *cache.Manager
	Logger   *applog.Logger
}

// Options tunes the server.
type Options struct {
	RateLimitPerMinute int
	MaxUploadBytes     int64
}

func DefaultOptions() Options {
	return Options{
		RateLimitPerMinute: 60,
		MaxUploadBytes:     20 << 20,
	}
}

type Server struct {
	http.Server
	templates *template.Template
	backend   Backend
	sessions  *session.Store
	events    Submitter
	caches    *cache.Manager
	logger    *applog.Logger
	structlog *applog.StructuredLogger
	opts      Options

	tracer      *trace.Middleware
	rateLimiter *ratelimit.Limiter
	detector    *security.Detector

	ready        func() bool
	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run server.
func NewServer(addr string, deps Dependencies, opts Options) (*Server, error) {
	def := DefaultOptions()
	if opts.RateLimitPerMinute <= 0 {
		opts.RateLimitPerMinute = def.RateLimitPerMinute
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = def.MaxUploadBytes
	}
	if deps.Logger == nil {
		deps.Logger = applog.New(applog.DefaultConfig())
	}
	if deps.Caches == nil {
		deps.Caches = cache.NewManager(deps.Logger.Logger)
	}
	if deps.Sessions == nil {
		deps.Sessions = session.NewStore(session.DefaultConfig(), deps.Caches)
	}
	if deps.Events == nil {
		deps.Events = noopSubmitter{}
	}

	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}

	logger := deps.Logger.WithComponent(applog.ComponentHTTP)
	s := &Server{
		templates:   tmpl,
		backend:     deps.Backend,
		sessions:    deps.Sessions,
		events:      deps.Events,
		caches:      deps.Caches,
		logger:      logger,
		structlog:   applog.NewStructuredLogger(deps.Logger),
		opts:        opts,
		detector:    security.NewDetector(),
		rateLimiter: ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: opts.RateLimitPerMinute}),
		ready:       func() bool { return true },
	}
	s.tracer = trace.NewMiddleware(deps.Logger, s.detector.ExtractClientIP)
	s.Server = http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
		// backend calls may take up to a minute
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}
	return s, nil
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(applog.Middleware(s.logger))
	r.Use(s.tracer.Handler)
	r.Use(s.detector.Middleware(s.logger.Logger))
	r.Use(security.Headers(security.DefaultHeadersConfig()))

	r.Get("/healthz", handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Get("/metrics", s.handleMetrics)

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		r.With(security.StaticAssetMiddleware(3600)).Handle("/static/*", static)
	} else {
		s.logger.Warn("Failed to mount embedded static FS", applog.FieldError, err)
	}

	r.Group(func(r chi.Router) {
		r.Use(security.NoStore)
		r.Use(s.rateLimiter.Middleware(s.detector.ExtractClientIP, s.onRateLimit))

		r.Get("/", s.handleIndex)
		r.Get("/pages/{page}", s.handlePage)

		r.Post("/api-status", s.handleAPIStatus)
		r.Post("/accounts/statement", s.handleStatementUpload)
		r.Post("/entries/{action}", s.handleEntries)
		r.Post("/budget/analyze", s.handleBudgetAnalyze)
		r.Post("/advice/insights", s.handleAdviceInsights)
		r.Post("/advice/goals", s.handleAddGoal)
		r.Post("/kb/init", s.handleKBInit)
		r.Post("/kb/search", s.handleKBSearch)
	})

	r.NotFound(s.handleNotFound)
	return r
}

// SetReadiness replaces the readiness probe used by /readyz.
func (s *Server) SetReadiness(ready func() bool) {
	if ready != nil {
		s.ready = ready
	}
}

// Shutdown stops background cleanup and drains the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.rateLimiter.Stop()
		s.caches.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func (s *Server) onRateLimit(w http.ResponseWriter, r *http.Request) {
	s.logger.WarnContext(r.Context(), "Rate limit exceeded",
		applog.FieldClientIP, s.detector.ExtractClientIP(r),
		applog.FieldPath, r.URL.Path)
	ErrorResponse(http.StatusTooManyRequests, "Too many requests. Please wait a minute and try again.").Write(w)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	NotFoundError("Page not found.").Write(w)
}
