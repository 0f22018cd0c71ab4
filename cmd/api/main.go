package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/victoragudo/hotel-management-system/hotel-search/internal/application/usecase"
	"github.com/victoragudo/hotel-management-system/hotel-search/internal/infrastructure/adapter"
	"github.com/victoragudo/hotel-management-system/hotel-search/internal/infrastructure/config"
	"github.com/victoragudo/hotel-management-system/hotel-search/internal/infrastructure/handler"
	"github.com/victoragudo/hotel-management-system/hotel-search/internal/infrastructure/metrics"
	"github.com/victoragudo/hotel-management-system/hotel-search/internal/infrastructure/middleware"
	"github.com/victoragudo/hotel-management-system/hotel-search/pkg/database"
	"github.com/victoragudo/hotel-management-system/hotel-search/pkg/entities"
	"github.com/victoragudo/hotel-management-system/hotel-search/pkg/logger"

	_ "github.com/victoragudo/hotel-management-system/hotel-search/docs"
)

// @title Hotel Search Service API
// @version 1.0
// @description Keyword, facet and geo-distance search over the hotel index
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8089
// @BasePath /
// @schemes http https

type Application struct {
	config *config.Config
	logger *slog.Logger
	server *http.Server

	searchEngine *adapter.ElasticsearchAdapter
	hotelRepo    *adapter.PostgresHotelRepository
	redis        *adapter.RedisRateLimiter
	localLimiter *middleware.LocalRateLimiter

	searchHotelsUseCase    *usecase.SearchHotelsUseCase
	getHotelFiltersUseCase *usecase.GetHotelFiltersUseCase
	getHotelByIDUseCase    *usecase.GetHotelByIDUseCase

	hotelHandler *handler.HotelHandler
}

func main() {
	applicationLogger := logger.SetupLogger("info")

	cfg, err := config.LoadConfig()
	if err != nil {
		applicationLogger.Error(fmt.Sprintf("Failed to load configuration: %s", err.Error()))
		os.Exit(1)
	}

	applicationLogger = logger.SetupLogger(cfg.Logging.Level, cfg.Logging.Format)

	app, err := NewApplication(cfg, applicationLogger)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if err := app.Start(); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}
}

func NewApplication(cfg *config.Config, applicationLogger *slog.Logger) (*Application, error) {
	searchEngine, err := adapter.NewElasticsearchAdapterFromConfig(cfg.Elasticsearch, applicationLogger)
	if err != nil {
		return nil, err
	}
	instrumentedEngine := metrics.NewInstrumentedEngine(searchEngine)

	app := &Application{
		config:       cfg,
		logger:       applicationLogger,
		searchEngine: searchEngine,
	}

	app.searchHotelsUseCase = usecase.NewSearchHotelsUseCase(instrumentedEngine, applicationLogger)
	app.getHotelFiltersUseCase = usecase.NewGetHotelFiltersUseCase(instrumentedEngine, applicationLogger)

	var hotelGetter handler.HotelGetter
	if cfg.Database.Enabled() {
		db, err := database.GormOpen(cfg.Database.DSN())
		if err != nil {
			return nil, fmt.Errorf("failed to open hotel database: %w", err)
		}

		if err := database.RunMigrations(db, &entities.HotelData{}); err != nil {
			return nil, fmt.Errorf("failed to migrate hotel database: %w", err)
		}

		app.hotelRepo = adapter.NewPostgresHotelRepository(db, applicationLogger)
		app.getHotelByIDUseCase = usecase.NewGetHotelByIDUseCase(app.hotelRepo, applicationLogger)
		hotelGetter = app.getHotelByIDUseCase
	} else {
		applicationLogger.Info("No hotel database configured, hotel lookup disabled")
	}

	app.hotelHandler = handler.NewHotelHandler(
		app.searchHotelsUseCase,
		app.getHotelFiltersUseCase,
		hotelGetter,
		instrumentedEngine,
		applicationLogger,
	)

	var limiter middleware.Limiter
	switch cfg.RateLimit.Backend {
	case "redis":
		app.redis = adapter.NewRedisRateLimiter(initRedis(cfg.Redis, applicationLogger), cfg.RateLimit.MaxRequests, cfg.RateLimit.Window, applicationLogger)
		limiter = app.redis
	case "local":
		app.localLimiter = middleware.NewLocalRateLimiter(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window)
		limiter = app.localLimiter
	}

	app.server = initServer(cfg.Server, app.hotelHandler, limiter, applicationLogger)

	return app, nil
}

func (app *Application) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app.logger.Info("Starting search service",
		"version", "1.0.0",
		"address", app.config.Server.Address())

	if err := app.performHealthChecks(ctx); err != nil {
		app.logger.Error("Health checks failed", "error", err)
		return err
	}

	if app.localLimiter != nil {
		go app.localLimiter.Run(ctx, app.config.RateLimit.Window)
	}

	go func() {
		figure.NewFigure("SEARCH", "", true).Print()
		fmt.Println("")
		fmt.Println("Search service started at " + app.config.Server.Address())
		fmt.Println("")
		if err := app.server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			app.logger.Error("HTTP server failed", "error", err)
		}
	}()

	app.waitForShutdown()

	return nil
}

func (app *Application) performHealthChecks(ctx context.Context) error {
	app.logger.Info("Performing health checks")

	if app.hotelRepo != nil {
		if err := app.hotelRepo.Ping(ctx); err != nil {
			return err
		}
	}

	if app.redis != nil {
		if err := app.redis.Ping(ctx); err != nil {
			app.logger.Warn("Redis health check failed", "error", err)
		}
	}

	if err := app.searchEngine.HealthCheck(ctx); err != nil {
		app.logger.Warn("Elasticsearch health check failed", "error", err)
	}

	return nil
}

func (app *Application) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	app.logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("Server forced to shutdown", "error", err)
	}

	app.searchEngine.Close()

	if app.hotelRepo != nil {
		if err := app.hotelRepo.Close(); err != nil {
			app.logger.Error("Error closing database", "error", err)
		}
	}

	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("Error closing Redis", "error", err)
		}
	}

	app.logger.Info("Server stopped gracefully")
}

func initRedis(cfg config.RedisConfig, logger *slog.Logger) *redis.Client {
	logger.Info("Connecting to Redis", "address", cfg.Address())

	client := redis.NewClient(&redis.Options{
		Addr:            cfg.Address(),
		Password:        cfg.Password,
		DB:              cfg.Database,
		PoolSize:        cfg.PoolSize,
		DialTimeout:     cfg.DialTimeout,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		ConnMaxIdleTime: cfg.IdleTimeout,
	})

	logger.Info("Redis client created")
	return client
}

func initServer(cfg config.ServerConfig, hotelHandler *handler.HotelHandler, limiter middleware.Limiter, logger *slog.Logger) *http.Server {
	router := mux.NewRouter()

	hotelHandler.RegisterRoutes(router)

	router.Handle("/metrics", promhttp.Handler()).Methods("GET")
	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	router.Use(middleware.RequestID)
	router.Use(middleware.Logging(logger))
	router.Use(metrics.Middleware())
	if limiter != nil {
		router.Use(middleware.RateLimit(limiter, logger))
	}

	printRoutes(router, logger)

	// CORS wraps the router so preflights are answered before method matching.
	var serverHandler http.Handler = router
	if cfg.EnableCORS {
		serverHandler = middleware.CORS(router)
	}

	return &http.Server{
		Addr:         cfg.Address(),
		Handler:      serverHandler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}

func printRoutes(router *mux.Router, logger *slog.Logger) {
	fmt.Println("API Routes Overview")
	fmt.Println("═══════════════════════════════════════════════════════════════")

	var routes []string

	err := router.Walk(func(route *mux.Route, router *mux.Router, ancestors []*mux.Route) error {
		pathTemplate, err := route.GetPathTemplate()
		if err != nil {
			return nil
		}

		methods, err := route.GetMethods()
		if err != nil {
			methods = []string{"ALL"}
		}

		routeDesc := fmt.Sprintf("  %-8s %s", strings.Join(methods, ", "), pathTemplate)

		switch pathTemplate {
		case "/health":
			routeDesc += " - Health check endpoint"
		case "/metrics":
			routeDesc += " - Prometheus metrics"
		case "/swagger/":
			routeDesc += " - API documentation (Swagger UI)"
		case "/hotel/list":
			routeDesc += " - Search hotels with filters"
		case "/hotel/filters":
			routeDesc += " - Brand, city and star values for the filters"
		case "/hotel/{id}":
			routeDesc += " - Get specific hotel by ID"
		default:
			routeDesc += " - API endpoint"
		}

		routes = append(routes, routeDesc)
		return nil
	})

	if err != nil {
		logger.Error("Error walking routes", "error", err)
		return
	}

	for _, route := range routes {
		fmt.Println(route)
	}

	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("Total registered routes: %d\n", len(routes))
	fmt.Println("Visit /swagger/ for interactive API documentation")
}
