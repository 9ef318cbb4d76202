package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/osse101/StealFarm_Go/internal/catalog"
	"github.com/osse101/StealFarm_Go/internal/database"
	"github.com/osse101/StealFarm_Go/internal/friend"
	"github.com/osse101/StealFarm_Go/internal/handler"
	"github.com/osse101/StealFarm_Go/internal/harvest"
	"github.com/osse101/StealFarm_Go/internal/logger"
	"github.com/osse101/StealFarm_Go/internal/metrics"
	"github.com/osse101/StealFarm_Go/internal/plot"
	"github.com/osse101/StealFarm_Go/internal/theft"
	"github.com/osse101/StealFarm_Go/internal/user"
)

// Options configures the HTTP layer
type Options struct {
	Port              int
	CORSAllowedOrigin string
	TrustedProxies    []string
	RateLimitRPS      float64
	RateLimitBurst    int
	// RequestTimeout bounds each request's context; zero disables it
	RequestTimeout time.Duration
}

// Services are the game services exposed over HTTP
type Services struct {
	User    user.Service
	Plot    plot.Service
	Harvest harvest.Service
	Theft   theft.Service
	Friend  friend.Service
}

type Server struct {
	httpServer *http.Server
	router     chi.Router
}

// NewServer creates a new Server instance
func NewServer(opts Options, dbPool database.Pool, svc Services, crops *catalog.Catalog) *Server {
	r := chi.NewRouter()

	detector := NewSuspiciousActivityDetector()
	limiter := NewIPRateLimiter(opts.RateLimitRPS, opts.RateLimitBurst, MaxTrackedClient, LimiterTTL)

	// Chi middleware executes in order defined (outermost to innermost)
	r.Use(middleware.Recoverer)
	r.Use(SecurityHeadersMiddleware())
	r.Use(CORSMiddleware(opts.CORSAllowedOrigin))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)
	if opts.RequestTimeout > 0 {
		r.Use(middleware.Timeout(opts.RequestTimeout))
	}

	// Health check routes (unversioned)
	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(dbPool))
	r.Handle("/metrics", promhttp.Handler())

	authHandler := handler.NewAuthHandler(svc.User)
	farmHandler := handler.NewFarmHandler(svc.Plot, svc.Harvest, svc.Theft, svc.User, crops)
	friendHandler := handler.NewFriendHandler(svc.Friend)

	r.Route("/api", func(r chi.Router) {
		r.Use(RateLimitMiddleware(limiter, opts.TrustedProxies))

		r.Get("/health", handler.HandleAPIHealth())
		r.Get("/shop/seeds", handler.HandleGetSeeds(crops))

		r.Post("/auth/register", authHandler.HandleRegister)
		r.Post("/auth/login", authHandler.HandleLogin)

		// Authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(BearerAuthMiddleware(svc.User, opts.TrustedProxies, detector))

			r.Get("/auth/me", authHandler.HandleMe)

			r.Route("/farm", func(r chi.Router) {
				r.Get("/", farmHandler.HandleGetFarm)
				r.Get("/visit/{userID}", farmHandler.HandleVisitFarm)
				r.Post("/plant", farmHandler.HandlePlant)
				r.Post("/harvest", farmHandler.HandleHarvest)
				r.Post("/steal", farmHandler.HandleSteal)
			})

			r.Route("/friends", func(r chi.Router) {
				r.Get("/", friendHandler.HandleList)
				r.Get("/search", friendHandler.HandleSearch)
				r.Post("/add", friendHandler.HandleAdd)
				r.Delete("/{friendID}", friendHandler.HandleRemove)
			})
		})
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           r,
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
		router: r,
	}
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func isQuietPath(path string) bool {
	for _, p := range QuietPaths {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isQuietPath(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()

		requestID := logger.GenerateRequestID()
		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)
		w.Header().Set(HeaderRequestID, requestID)

		log := logger.FromContext(ctx)
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header, len(r.Header))
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAuthorization) || strings.EqualFold(k, "Cookie") {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
