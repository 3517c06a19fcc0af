package app

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/skycast-dev/skycast/internal/comparison"
	"github.com/skycast-dev/skycast/internal/config"
	"github.com/skycast-dev/skycast/internal/dashboard"
	httpHandler "github.com/skycast-dev/skycast/internal/handlers/http"
	metricsSvc "github.com/skycast-dev/skycast/internal/metrics"
	"github.com/skycast-dev/skycast/internal/refresher"
	"github.com/skycast-dev/skycast/internal/render"
	favRepo "github.com/skycast-dev/skycast/internal/repository/sqlite"
	"github.com/skycast-dev/skycast/internal/services/weather"
	"github.com/skycast-dev/skycast/internal/store"
	fLogger "github.com/skycast-dev/skycast/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// ServiceContainer holds initialized dependencies for the server.
type ServiceContainer struct {
	WeatherService *weather.Service
	Comparison     *comparison.Controller
	Refresher      *refresher.Refresher

	Router   *gin.Engine
	Srv      *http.Server
	db       *sql.DB
	rdb      *redis.Client
	auditLog *zap.Logger
}

// App ties together config, logger, and metrics for startup/shutdown.
type App struct {
	cfg config.Config
	l   zerolog.Logger
	m   *metricsSvc.Metrics
}

// New prepares a new App with given config, zerolog logger, and metrics.
func New(cfg config.Config, logger zerolog.Logger, met *metricsSvc.Metrics) *App {
	return &App{cfg: cfg, l: logger, m: met}
}

// Start initializes services, mounts routes, loads the boot city, and waits
// for shutdown.
func (a *App) Start(ctx context.Context) error {
	srvContainer, err := a.init(ctx)
	if err != nil {
		return err
	}

	a.l.Info().
		Str("addr", a.cfg.Server.Address).
		Msg("starting skycast dashboard service")

	go func() {
		if err := srvContainer.Srv.ListenAndServe(); err != nil &&
			err != http.ErrServerClosed {
			a.l.Error().Err(err).Msg("http server stopped unexpectedly")
		}
	}()

	// Boot like the page load: default city first, then the comparison
	// table. Failures leave the dashboard empty but the service up.
	go func() {
		bootCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
		defer cancel()
		if _, err := srvContainer.WeatherService.Show(bootCtx, a.cfg.DefaultCity, ""); err != nil {
			a.l.Warn().Err(err).Str("city", a.cfg.DefaultCity).Msg("boot city fetch failed")
		}
		srvContainer.Comparison.Refresh(bootCtx)
	}()

	<-ctx.Done()
	a.l.Info().Msg("shutdown signal received, stopping dashboard service")

	if err := a.Shutdown(srvContainer); err != nil {
		a.l.Error().Err(err).Msg("failed to shutdown application")
		return err
	}
	a.l.Info().Msg("application shutdown successfully")
	return nil
}

// Shutdown drains the HTTP server, stops the refresher, and closes storage.
func (a *App) Shutdown(srvContainer *ServiceContainer) error {
	defer func(auditLog *zap.Logger) {
		if err := auditLog.Sync(); err != nil {
			a.l.Error().Err(err).Msg("failed to sync audit logger")
		}
	}(srvContainer.auditLog)

	srvContainer.Refresher.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srvContainer.Srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}

	if err := srvContainer.db.Close(); err != nil {
		a.l.Error().Err(err).Msg("failed to close sqlite database")
	}
	if err := srvContainer.rdb.Close(); err != nil {
		a.l.Error().Err(err).Msg("failed to close redis client")
	}
	return nil
}

func (a *App) init(ctx context.Context) (*ServiceContainer, error) {
	auditLog, err := fLogger.NewFileLogger(a.cfg.AuditLogPath)
	if err != nil {
		return nil, fmt.Errorf("audit logger: %w", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr: a.cfg.Redis.Host + ":" + a.cfg.Redis.Port,
		DB:   a.cfg.Redis.DB,
	})

	db, err := sql.Open("sqlite", a.cfg.DBSource)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	favorites := favRepo.NewFavoritesRepository(db, a.l)
	if err := favorites.Init(ctx); err != nil {
		return nil, fmt.Errorf("init favorites schema: %w", err)
	}

	snapshots := store.NewSnapshotStore()
	view := dashboard.NewModel()

	fanout := render.NewFanout(a.l, render.Surfaces{
		Summary:    view,
		Hourly:     view,
		Background: view,
		Map:        view,
		Globe:      view,
	})

	apiClient := weather.NewClientWeatherAPI(
		a.cfg.WeatherAPIKey,
		a.cfg.WeatherAPIURL,
		&http.Client{},
		a.l,
	)
	gw := weather.NewBreakerClient("weatherapi", weather.BreakerConfig{
		TimeInterval: time.Duration(a.cfg.Breaker.TimeInterval) * time.Second,
		TimeTimeOut:  time.Duration(a.cfg.Breaker.TimeTimeOut) * time.Second,
		RepeatNumber: a.cfg.Breaker.RepeatNumber,
	}, apiClient)

	weatherService := weather.NewService(gw, snapshots, fanout, a.l, a.m)

	cityList := comparison.NewRedisListStore(rdb, a.cfg.CityListKey, a.l)
	comparisonCtl := comparison.NewController(
		ctx, gw, cityList, view, a.l, a.m, a.cfg.FetchLimit)

	refr := refresher.New(
		weatherService, snapshots, comparisonCtl, view,
		a.l, a.cfg.RefreshSpec, a.cfg.ThemeSpec)
	if err := refr.Start(ctx); err != nil {
		return nil, fmt.Errorf("start refresher: %w", err)
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(a.m.HTTPMiddleware())
	router.Use(auditMiddleware(auditLog))

	router.GET("/metrics", gin.WrapH(a.m.Handler()))
	if a.cfg.StaticDir != "" {
		router.Static("/app", a.cfg.StaticDir)
	}

	handler := httpHandler.NewHandler(
		weatherService, comparisonCtl, favorites, view, snapshots, a.l, a.m)
	handler.Register(router.Group("/api/v1"))

	srv := &http.Server{
		Addr:              a.cfg.Server.Address,
		Handler:           router,
		ReadHeaderTimeout: time.Duration(a.cfg.Server.ReadTimeout) * time.Second,
	}

	return &ServiceContainer{
		WeatherService: weatherService,
		Comparison:     comparisonCtl,
		Refresher:      refr,
		Router:         router,
		Srv:            srv,
		db:             db,
		rdb:            rdb,
		auditLog:       auditLog,
	}, nil
}

// auditMiddleware writes one JSON line per request to the audit trail.
func auditMiddleware(auditLog *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		auditLog.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}
