package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	swaggerfiles "github.com/swaggo/files"
	swagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	_ "github.com/Nazarious-ucu/weather-widget/docs"
	"github.com/Nazarious-ucu/weather-widget/internal/config"
	grpcHandlers "github.com/Nazarious-ucu/weather-widget/internal/handlers/grpc"
	weatherHandler "github.com/Nazarious-ucu/weather-widget/internal/handlers/weather"
	widgetHandler "github.com/Nazarious-ucu/weather-widget/internal/handlers/widget"
	"github.com/Nazarious-ucu/weather-widget/internal/models"
	"github.com/Nazarious-ucu/weather-widget/internal/services/cache"
	loggerT "github.com/Nazarious-ucu/weather-widget/internal/services/logger"
	metricsSvc "github.com/Nazarious-ucu/weather-widget/internal/services/metrics"
	serviceWeather "github.com/Nazarious-ucu/weather-widget/internal/services/weather"
	"github.com/Nazarious-ucu/weather-widget/internal/services/weather/decorators"
	"github.com/Nazarious-ucu/weather-widget/internal/widget"
	fLogger "github.com/Nazarious-ucu/weather-widget/pkg/logger"
)

const (
	shutdownTimeout = 5 * time.Second

	breakerName = "OpenWeatherMap"
)

type weatherGetter interface {
	GetByCity(ctx context.Context, city string) (models.WeatherDisplay, error)
}

// ServiceContainer holds initialized dependencies for servers.
type ServiceContainer struct {
	WeatherService weatherGetter
	Sessions       *widget.Registry
	Health         *grpcHandlers.HealthReporter

	GrpcServer *grpc.Server
	Router     *gin.Engine
	Srv        *http.Server

	fileLogger  *zap.Logger
	redisClient *redis.Client
}

// App ties together config, logger, and metrics for startup/shutdown.
type App struct {
	cfg config.Config
	l   zerolog.Logger
	m   *metricsSvc.Metrics
}

// New prepares a new App with given config, zerolog logger, and metrics.
func New(cfg config.Config, logger zerolog.Logger, met *metricsSvc.Metrics) *App {
	return &App{
		cfg: cfg,
		l:   logger,
		m:   met,
	}
}

// Start wires the services, serves HTTP and gRPC and blocks until ctx is done.
func (a *App) Start(ctx context.Context) error {
	srvContainer, err := a.Init()
	if err != nil {
		return err
	}

	if err := srvContainer.Sessions.Start(); err != nil {
		return err
	}

	grpcListener, err := net.Listen("tcp", a.cfg.GrpcAddress())
	if err != nil {
		return fmt.Errorf("listen gRPC: %w", err)
	}

	errCh := make(chan error, 2)

	go func() {
		a.l.Info().Str("address", a.cfg.GrpcAddress()).Msg("gRPC server running")
		if serveErr := srvContainer.GrpcServer.Serve(grpcListener); serveErr != nil {
			errCh <- fmt.Errorf("gRPC server: %w", serveErr)
		}
	}()

	go func() {
		a.l.Info().Str("address", a.cfg.ServerAddress()).Msg("HTTP server running")
		if serveErr := srvContainer.Srv.ListenAndServe(); serveErr != nil &&
			!errors.Is(serveErr, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server: %w", serveErr)
		}
	}()

	a.l.Info().Msg("weather widget started successfully")

	var runErr error
	select {
	case <-ctx.Done():
		a.l.Info().Msg("shutdown signal received, stopping weather widget")
	case runErr = <-errCh:
		a.l.Error().Err(runErr).Msg("server failed, stopping weather widget")
	}

	if err := a.Shutdown(srvContainer); err != nil {
		a.l.Error().Err(err).Msg("failed to shutdown application")
		return errors.Join(runErr, err)
	}
	a.l.Info().Msg("application shutdown successfully")
	return runErr
}

// Shutdown stops the servers, the session sweeper and flushes loggers.
func (a *App) Shutdown(srvContainer ServiceContainer) error {
	a.l.Info().Msg("stopping weather widget…")

	var errs []error

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srvContainer.Srv.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("HTTP shutdown: %w", err))
	} else {
		a.l.Info().Msg("HTTP server stopped")
	}

	srvContainer.Health.Shutdown()
	srvContainer.GrpcServer.GracefulStop()
	a.l.Info().Msg("gRPC server stopped")

	srvContainer.Sessions.Stop()

	if srvContainer.redisClient != nil {
		if err := srvContainer.redisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("redis close: %w", err))
		}
	}

	if srvContainer.fileLogger != nil {
		if err := srvContainer.fileLogger.Sync(); err != nil {
			a.l.Error().Err(err).Msg("failed to sync file logger")
		} else {
			a.l.Info().Msg("file logger synced successfully")
		}
	}

	a.l.Info().Msg("shutdown complete")
	return errors.Join(errs...)
}

// Init builds every dependency without starting any server.
func (a *App) Init() (ServiceContainer, error) {
	a.l.Info().Msgf("initializing weather widget with config: %s", a.cfg)

	fileLogger, err := fLogger.NewFileLogger(a.cfg.HTTPLogsPath)
	if err != nil {
		a.l.Error().Err(err).Msg("failed to create file logger, outbound requests are not logged")
		fileLogger = zap.NewNop()
	}

	// HTTP client logging
	httpLogClient := &http.Client{Transport: loggerT.NewRoundTripper(fileLogger)}

	health := grpcHandlers.NewHealthReporter(a.l)

	breakerCfg := serviceWeather.BreakerConfig{
		TimeInterval:  time.Duration(a.cfg.Breaker.TimeInterval) * time.Second,
		TimeTimeOut:   time.Duration(a.cfg.Breaker.TimeTimeOut) * time.Second,
		RepeatNumber:  a.cfg.Breaker.RepeatNumber,
		OnStateChange: health.OnBreakerStateChange,
	}
	openWeather := serviceWeather.NewBreakerClient(breakerName, breakerCfg,
		serviceWeather.NewClientOpenWeatherMap(a.cfg.OpenWeatherMapAPIKey, a.cfg.OpenWeatherMapURL, httpLogClient, a.l),
	)

	var weatherService weatherGetter = serviceWeather.NewService(a.l, openWeather)

	var redisClient *redis.Client
	if a.cfg.Redis.Enabled {
		redisClient = newRedisConnection(a.cfg.RedisAddress(), a.cfg.Redis.DbType)
		cacheMetrics := cache.NewMetricsDecorator[models.WeatherDisplay](
			cache.NewRedisClient[models.WeatherDisplay](
				redisClient, a.l, time.Duration(a.cfg.Redis.LiveTime)*time.Minute),
			metricsSvc.NewPromCollector(a.m.Registerer(), a.m.Namespace()),
		)
		weatherService = decorators.NewCachedService(weatherService, cacheMetrics, a.l)
		a.l.Info().Str("address", a.cfg.RedisAddress()).Msg("redis cache enabled")
	}

	sessions := widget.NewRegistry(func() *widget.Widget {
		return widget.New(weatherService, a.l, a.cfg.DefaultCity, a.m)
	}, a.cfg.Session.TTL, a.cfg.Session.MaxCount, a.cfg.Session.SweepSpec, a.l)

	router, err := a.newRouter(weatherService, sessions)
	if err != nil {
		return ServiceContainer{}, err
	}

	grpcServer := grpc.NewServer(
		grpc.UnaryInterceptor(a.m.UnaryInterceptor()),
		grpc.StreamInterceptor(a.m.StreamInterceptor()),
	)
	healthpb.RegisterHealthServer(grpcServer, health.Server())
	a.m.GRPC.InitializeMetrics(grpcServer)

	httpServer := &http.Server{
		Addr:        a.cfg.ServerAddress(),
		Handler:     router,
		ReadTimeout: time.Duration(a.cfg.Server.ReadTimeout) * time.Second,
	}

	return ServiceContainer{
		WeatherService: weatherService,
		Sessions:       sessions,
		Health:         health,
		GrpcServer:     grpcServer,
		Router:         router,
		Srv:            httpServer,
		fileLogger:     fileLogger,
		redisClient:    redisClient,
	}, nil
}

func (a *App) newRouter(ws weatherGetter, sessions *widget.Registry) (*gin.Engine, error) {
	tmpl, err := widgetHandler.Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	router := gin.New()
	router.Use(gin.Recovery(), a.m.HTTPMiddleware())
	router.SetHTMLTemplate(tmpl)

	router.GET("/metrics", gin.WrapH(a.m.Handler()))
	router.GET("/swagger/*any", swagger.WrapHandler(swaggerfiles.Handler))
	router.Static("/static", a.cfg.AssetsDir)

	page := widgetHandler.NewHandler(sessions, a.cfg.Session.TTL)
	router.GET("/", page.Index)
	router.POST("/search", page.Search)

	api := router.Group("/api")
	{
		api.GET("/weather", weatherHandler.NewHandler(ws).GetWeather)
	}

	return router, nil
}

func newRedisConnection(connString string, dbType int) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: connString, DB: dbType})
}
