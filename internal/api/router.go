package api

import (
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/talenthub/talenthub-api/docs"
	"github.com/talenthub/talenthub-api/internal/api/handler"
	"github.com/talenthub/talenthub-api/internal/api/middleware"
	"github.com/talenthub/talenthub-api/internal/core/domain"
	"github.com/talenthub/talenthub-api/internal/core/ports"
)

// Deps are the collaborators the HTTP layer is built from.
type Deps struct {
	Log zerolog.Logger

	Auth     ports.AuthService
	Profiles ports.ProfileService
	Jobs     ports.JobService
	Messages ports.MessageService
	Relay    ports.Relay
	Media    ports.MediaStore

	// Readiness defaults to a probe with no dependency checks.
	Readiness *handler.HealthDependenciesHandler

	Cookie       handler.SessionCookie
	ClientOrigin string
	LoginLimiter echomiddleware.RateLimiterStore

	// IPExtractor decides the client address used for rate limiting. It
	// defaults to the socket peer so forwarding headers cannot be spoofed.
	IPExtractor echo.IPExtractor
	// MaxBodyBytes caps request bodies. Zero means defaultMaxBodyBytes.
	MaxBodyBytes int64

	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

const defaultMaxBodyBytes = 8 << 20

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)
	e.Validator = handler.NewValidator()
	e.IPExtractor = d.IPExtractor
	if e.IPExtractor == nil {
		e.IPExtractor = echo.ExtractIPDirect()
	}
	if d.MaxBodyBytes <= 0 {
		d.MaxBodyBytes = defaultMaxBodyBytes
	}

	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}
	if d.Readiness == nil {
		d.Readiness = handler.NewReadinessHandler(nil)
	}

	// --- Global middleware ---
	e.Pre(echomiddleware.RemoveTrailingSlash())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(echomiddleware.BodyLimit(strconv.FormatInt(d.MaxBodyBytes, 10)))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{d.ClientOrigin},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "talenthub",
		Subsystem:  "http",
		Registerer: d.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics" || c.Path() == "/api/ws"
		},
	}))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth, d.Cookie)
	profileHandler := handler.NewProfileHandler(d.Profiles)
	jobHandler := handler.NewJobHandler(d.Jobs)
	messageHandler := handler.NewMessageHandler(d.Messages)
	realtimeHandler := handler.NewRealtimeHandler(d.Relay, d.ClientOrigin, d.Log)
	mediaHandler := handler.NewMediaHandler(d.Media)
	healthHandler := handler.NewHealthHandler()

	requireAuth := middleware.Auth(d.Auth, d.Cookie.Name)
	employersOnly := middleware.RBAC(domain.RoleEmployer)

	// --- Auth & profile routes ---
	auth := e.Group("/api/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/login", authHandler.Login, middleware.LoginRateLimit(d.LoginLimiter))
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/check", authHandler.Check, requireAuth)
	auth.GET("/profile", profileHandler.Me, requireAuth)
	auth.GET("/profile/:id", profileHandler.ByID)
	auth.PUT("/update-profile", profileHandler.Update, requireAuth)

	// --- Job routes ---
	jobs := e.Group("/api/jobs")
	jobs.GET("", jobHandler.List)
	jobs.GET("/user", jobHandler.ListMine, requireAuth)
	jobs.GET("/:id", jobHandler.Get, requireAuth)
	jobs.POST("", jobHandler.Create, requireAuth, employersOnly)
	jobs.PUT("/:id", jobHandler.Update, requireAuth)
	jobs.PATCH("/:id", jobHandler.Update, requireAuth)
	jobs.DELETE("/:id", jobHandler.Delete, requireAuth)
	jobs.POST("/:id/apply", jobHandler.Apply, requireAuth)

	// --- Messaging routes ---
	messages := e.Group("/api/messages", requireAuth)
	messages.GET("", profileHandler.Others)
	messages.GET("/chat-users", messageHandler.ChatUsers)
	messages.GET("/:id", messageHandler.Conversation)
	messages.POST("/send/:id", messageHandler.Send)

	// --- Realtime & media ---
	e.GET("/api/ws", realtimeHandler.Connect, requireAuth)
	e.GET("/api/media/:id", mediaHandler.Get)

	// --- Operations (no auth required) ---
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", d.Readiness.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger feeds one structured line per request into log.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			event := log.Info()
			switch {
			case v.Status >= http.StatusInternalServerError:
				event = log.Error().Err(v.Error)
			case v.Status >= http.StatusBadRequest:
				event = log.Warn()
			}
			event.
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}

// ClientIPExtractor returns the socket peer extractor when trusted is empty.
// Otherwise X-Forwarded-For is honoured, but only for hops inside the listed
// CIDRs; the default loopback and private ranges are not trusted implicitly.
func ClientIPExtractor(trusted []string) (echo.IPExtractor, error) {
	if len(trusted) == 0 {
		return echo.ExtractIPDirect(), nil
	}
	opts := []echo.TrustOption{
		echo.TrustLoopback(false),
		echo.TrustLinkLocal(false),
		echo.TrustPrivateNet(false),
	}
	for _, cidr := range trusted {
		_, ipNet, err := net.ParseCIDR(cidr)
		if err != nil {
			return nil, fmt.Errorf("trusted proxy %q: %w", cidr, err)
		}
		opts = append(opts, echo.TrustIPRange(ipNet))
	}
	return echo.ExtractIPFromXFFHeader(opts...), nil
}
