package server

import (
	"fmt"
	"net/http"
	"time"

	httpLogger "github.com/chi-middleware/logrus-logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"
	"github.com/riandyrn/otelchi"

	"github.com/author-analysis/gateway/internal"
	"github.com/author-analysis/gateway/pkg/app"
	"github.com/author-analysis/gateway/pkg/auth"
	"github.com/author-analysis/gateway/pkg/backend"
	"github.com/author-analysis/gateway/pkg/models"
	"github.com/author-analysis/gateway/pkg/web"
)

var log = internal.GetLogger()

const ReadHeaderTimeout = 5 * time.Second

// Create creates a new HTTP server with the given app state
func Create(appState *app.AppState) (*http.Server, error) {
	router, err := setupRouter(appState)
	if err != nil {
		return nil, err
	}

	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", appState.Config.Server.Host, appState.Config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: ReadHeaderTimeout,
	}, nil
}

func setupRouter(appState *app.AppState) (*chi.Mux, error) {
	cfg := appState.Config

	router := chi.NewRouter()
	router.Use(httpLogger.Logger("router", log))
	router.Use(middleware.Recoverer)
	router.Use(RequestID)
	router.Use(middleware.RealIP)
	router.Use(SendVersion)
	router.Use(middleware.Heartbeat("/healthz"))
	if cfg.Server.MaxRequestSize > 0 {
		router.Use(middleware.RequestSize(cfg.Server.MaxRequestSize))
	}
	if cfg.Tracing.Enabled {
		router.Use(otelchi.Middleware(
			cfg.Tracing.ServiceName,
			otelchi.WithChiRoutes(router),
			otelchi.WithRequestMethodInSpanName(true),
		))
	}

	apiMiddleware, err := apiMiddleware(appState)
	if err != nil {
		return nil, err
	}

	router.Route("/api", func(r chi.Router) {
		r.Use(middleware.StripSlashes)
		r.Use(apiMiddleware...)
		r.NotFound(APINotFoundHandler)
		r.MethodNotAllowed(APINotFoundHandler)

		backendRoute(r, "/attribution", appState.Attribution)
		backendRoute(
			r.With(ContractVersion(models.ProfilingContractVersion)),
			"/profiling",
			appState.Profiling,
		)
	})

	static, err := web.StaticHandler(cfg.Web)
	if err != nil {
		return nil, err
	}
	notFound, err := web.NotFoundHandler(cfg.Web)
	if err != nil {
		return nil, err
	}
	router.Get("/*", static.ServeHTTP)
	router.Head("/*", static.ServeHTTP)
	router.NotFound(notFound)
	router.MethodNotAllowed(notFound)

	return router, nil
}

func backendRoute(r chi.Router, pattern string, wrapper *backend.Wrapper) {
	if wrapper == nil {
		return
	}
	r.Post(pattern, BackendHandler(wrapper))
	r.Get(pattern, PostOnlyHandler)
}

func apiMiddleware(appState *app.AppState) ([]func(http.Handler) http.Handler, error) {
	cfg := appState.Config
	var mw []func(http.Handler) http.Handler

	if cfg.CORS.Enabled {
		mw = append(mw, cors.Handler(cors.Options{
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: cfg.CORS.AllowedHeaders,
		}))
	}

	if cfg.Auth.Required {
		log.Info("JWT authentication required")
		verifier, err := auth.JWTVerifier(cfg)
		if err != nil {
			return nil, err
		}
		mw = append(mw, verifier, jwtauth.Authenticator)
	}

	return mw, nil
}
