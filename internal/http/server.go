package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"networth/internal/ledger"
	applog "networth/internal/log"
	"networth/internal/middleware/ratelimit"
	"networth/internal/middleware/security"
	"networth/internal/middleware/trace"
	appweb "networth/web"
)

// Server serves the page, its partials and the two form endpoints. Every
// render re-reads the whole deal table from store.
type Server struct {
	http.Server
	templates *template.Template
	store     ledger.Store
	logger    *applog.Logger

	rateLimiter      *ratelimit.Limiter
	securityDetector *security.Detector
	traceMiddleware  *trace.Middleware

	appMetrics   *appMetrics
	shutdownOnce sync.Once
}

type appMetrics struct {
	dealsAdded   atomic.Int64
	dealsDeleted atomic.Int64
	rejected     atomic.Int64
	failed       atomic.Int64
	uptime       time.Time
}

type options struct {
	logger         *applog.Logger
	rateLimit      int
	readTimeout    time.Duration
	writeTimeout   time.Duration
	staticCacheAge int
}

// Option configures a Server.
type Option func(*options)

// WithLogger sets the server logger. Defaults to slog's default logger.
func WithLogger(l *applog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithRateLimit sets the POST requests allowed per client per minute.
func WithRateLimit(perMinute int) Option {
	return func(o *options) { o.rateLimit = perMinute }
}

// NewServer configures routes and templates, returning a ready-to-run http.Server.
func NewServer(addr string, store ledger.Store, opts ...Option) *Server {
	o := options{
		rateLimit:      ratelimit.DefaultConfig().RequestsPerMinute,
		readTimeout:    15 * time.Second,
		writeTimeout:   15 * time.Second,
		staticCacheAge: 3600,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = applog.FromContext(context.Background())
	}

	logger := o.logger.WithComponent(applog.ComponentHTTP)
	detector := security.NewDetector()

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			ReadTimeout:       o.readTimeout,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      o.writeTimeout,
			IdleTimeout:       60 * time.Second,
		},
		store:            store,
		logger:           logger,
		securityDetector: detector,
		traceMiddleware:  trace.NewMiddleware(detector.ExtractClientIP, o.logger),
		rateLimiter: ratelimit.NewLimiter(ratelimit.Config{
			RequestsPerMinute: o.rateLimit,
			CleanupInterval:   5 * time.Minute,
		}),
		appMetrics: &appMetrics{uptime: time.Now()},
	}

	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		logger.Error("Failed parsing templates",
			applog.FieldError, err,
			applog.FieldErrorType, applog.ErrorTypeConfiguration)
	}
	s.templates = t

	mux := http.NewServeMux()

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", security.StaticAssetMiddleware(o.staticCacheAge)(static))
	} else {
		logger.Warn("Failed to mount embedded static FS", applog.FieldError, err)
	}

	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/readyz", s.handleReady)
	mux.HandleFunc("/metrics", s.handleMetrics)

	// UI partials
	mux.HandleFunc("/ui/summary", s.handleSummary)
	mux.HandleFunc("/ui/history", s.handleHistory)

	// Form submits
	mux.HandleFunc("/deals", s.handleCreateDeal)
	mux.HandleFunc("/deals/delete", s.handleDeleteDeal)

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())

	var handler http.Handler = mux
	handler = s.limitPOST(handler)
	handler = detector.Middleware(handler)
	handler = headers.Middleware(handler)
	handler = s.traceMiddleware.Middleware(handler)
	s.Handler = otelhttp.NewHandler(handler, "networth")

	return s
}

// limitPOST applies the rate limiter to form submits only; page and partial
// reads are never limited.
func (s *Server) limitPOST(next http.Handler) http.Handler {
	limited := s.rateLimiter.Middleware(s.securityDetector.ExtractClientIP, s.handleRateLimited)(next)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			limited.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleRateLimited(w http.ResponseWriter, r *http.Request) {
	applog.FromContext(r.Context()).WithComponent(applog.ComponentRateLimit).WarnContext(r.Context(), "Rate limit exceeded",
		applog.FieldClientIP, s.securityDetector.ExtractClientIP(r),
		applog.FieldMethod, r.Method,
		applog.FieldPath, r.URL.Path)

	NewHTMXResponse().
		Status(http.StatusTooManyRequests).
		Header("Retry-After", "60").
		TriggerErrorNotification("Too many requests. Please wait a minute and try again.").
		BodyString("Rate limit exceeded. Please try again later.").
		Write(w)
}

// Shutdown gracefully shuts down the server and the rate limiter cleanup.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.rateLimiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}
