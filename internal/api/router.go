package api

import (
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	_ "github.com/tourhub/marketplace/docs"
	"github.com/tourhub/marketplace/internal/api/handler"
	"github.com/tourhub/marketplace/internal/api/middleware"
	"github.com/tourhub/marketplace/internal/core/domain"
	"github.com/tourhub/marketplace/internal/core/ports"
)

// Services are the application services exposed over HTTP.
type Services struct {
	Auth     ports.AuthService
	Bookings ports.BookingService
	Content  ports.ContentService
}

// Options tune the HTTP layer.
type Options struct {
	Log                zerolog.Logger
	ExposeErrorDetails bool
	SecureCookies      bool
	CORSOrigins        []string
	// AuthRatePerMinute limits register and login per client IP.
	AuthRatePerMinute int
	ReadinessChecks   []handler.DependencyCheck

	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, opts Options) *echo.Echo {
	if opts.Registerer == nil {
		opts.Registerer = prometheus.DefaultRegisterer
	}
	if opts.Gatherer == nil {
		opts.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Log, opts.ExposeErrorDetails)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(opts.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     opts.CORSOrigins,
		AllowCredentials: true,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "marketplace",
		Registerer: opts.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics" || c.Path() == "/health"
		},
	}))

	// --- Dependencies ---
	cookies := handler.NewSessionCookies(opts.SecureCookies)
	authHandler := handler.NewAuthHandler(svc.Auth, cookies, opts.Log)
	bookingHandler := handler.NewBookingHandler(svc.Bookings)
	contentHandler := handler.NewContentHandler(svc.Content)
	requireSession := middleware.Auth(svc.Auth)
	authLimiter := authRateLimiter(opts.AuthRatePerMinute)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register, authLimiter)
	auth.POST("/login", authHandler.Login, authLimiter)
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/session", authHandler.Session)
	auth.PATCH("/profile", authHandler.UpdateProfile, requireSession)

	// --- Bookings (owner only) ---
	bookings := e.Group("/api/bookings", requireSession)
	bookings.GET("/:id", bookingHandler.Get)
	bookings.GET("/:id/voucher", bookingHandler.Voucher)

	// --- Public content ---
	e.GET("/api/listings", contentHandler.ListListings)
	e.GET("/api/listings/:slug", contentHandler.GetListing)
	e.GET("/api/destinations", contentHandler.ListDestinations)
	e.GET("/api/blog", contentHandler.ListBlogPosts)
	e.GET("/api/blog/:slug", contentHandler.GetBlogPost)

	// --- Service providers ---
	provider := e.Group("/api/provider", requireSession, middleware.RequireUserType(domain.UserTypeServiceProvider))
	provider.GET("/listings", contentHandler.ProviderListings)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(opts.ReadinessChecks...)

	e.GET("/health", healthHandler.Liveness)            // liveness: is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness: are dependencies up?

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: opts.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// authRateLimiter allows perMinute requests per client IP with a matching burst.
func authRateLimiter(perMinute int) echo.MiddlewareFunc {
	if perMinute <= 0 {
		perMinute = 20
	}
	store := echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(float64(perMinute) / 60),
		Burst:     perMinute,
		ExpiresIn: 3 * time.Minute,
	})
	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusForbidden, "unable to identify client")
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests, try again later")
		},
	})
}

// requestLogger writes one access log line per request through zerolog.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			if v.Status >= http.StatusInternalServerError {
				evt = log.Error().Err(v.Error)
			}
			evt.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
