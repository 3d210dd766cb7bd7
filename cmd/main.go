package main

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"

	"logcollector/config"
	_ "logcollector/docs"
	"logcollector/internal/controller"
	"logcollector/internal/daylog"
	"logcollector/internal/kafka"
	"logcollector/internal/logging"
	"logcollector/internal/queue"
	"logcollector/internal/scheduler"
	"logcollector/internal/service"
)

// @title           Log Collector API
// @version         1.0
// @description     Collects raw log lines over HTTP into one file per UTC day, and serves tail, search and listing over the stored files.

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8000
// @BasePath  /
// @schemes   http

// @tag.name         logs
// @tag.description  Log submission and retrieval

// @tag.name         health
// @tag.description  API health check operations

func main() {
	var wg sync.WaitGroup

	app := fx.New(
		// Core Dependencies
		fx.Provide(
			NewConfig,
		),
		// Infrastructure Dependencies
		fx.Provide(
			NewGinEngine,
			NewLogStore,
			NewIngestionQueue,
			kafka.NewKafkaLogForwarder,
			service.NewLogWriterService,
			service.NewLogIngestService,
			service.NewLogQueryService,
			service.NewPipelineMonitor,
			controller.NewLogController,
		),
		// The writer is registered before the HTTP server so that on stop the
		// server shuts down first and the queue is drained afterwards.
		fx.Invoke(
			func(lc fx.Lifecycle, cfg *config.Config, q *queue.Queue, writer service.LogWriterService) {
				startLogWriter(lc, &wg, cfg, q, writer)
			},
			RegisterAPIRoutes,
			RegisterScheduler,
		),
	)

	startCtx, cancelStart := context.WithTimeout(context.Background(), 30*time.Second) // Timeout for startup
	defer cancelStart()
	if err := app.Start(startCtx); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}
	<-app.Done()

	// Initiate shutdown
	stopCtx, cancelStop := context.WithTimeout(context.Background(), 45*time.Second) // Timeout for graceful shutdown
	defer cancelStop()
	log.Info().Msg("Shutting down application...")
	if err := app.Stop(stopCtx); err != nil {
		log.Error().Err(err).Msg("Forced shutdown due to error or timeout")
	}

	log.Info().Msg("Waiting for background goroutines to finish...")
	wg.Wait()
	log.Info().Msg("All background processes finished. Exiting.")
}

func NewConfig() (*config.Config, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, err
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Pretty)
	return cfg, nil
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), controller.RequestID(), controller.RequestLogger())

	// Configure CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Program", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))

	// Add swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// --- Factory Functions ---

func NewLogStore(cfg *config.Config) (daylog.Store, error) {
	store := daylog.NewStore(cfg.Storage.LogDirectory, cfg.Tail.ChunkSize)
	if err := store.EnsureDir(); err != nil {
		return nil, err
	}
	return store, nil
}

func NewIngestionQueue(cfg *config.Config) *queue.Queue {
	log.Info().
		Int("capacity", cfg.Queue.Capacity).
		Str("overflow_policy", string(cfg.Queue.OverflowPolicy)).
		Msg("Ingestion queue created")
	return queue.New(cfg.Queue.Capacity, cfg.Queue.OverflowPolicy)
}

// --- Invoker Functions ---

func RegisterAPIRoutes(
	lifecycle fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	logController *controller.LogController,
) {
	controller.RegisterLogRoutes(router, logController)

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Starting HTTP server on port %s", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Error().Err(err).Msg("HTTP server ListenAndServe error")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Shutting down HTTP server...")
			return server.Shutdown(ctx)
		},
	})
}

func RegisterScheduler(lc fx.Lifecycle, cfg *config.Config, monitor service.PipelineMonitor) error {
	_, err := scheduler.NewScheduler(lc, cfg, monitor)
	return err
}

// startLogWriter runs the writer loop for the lifetime of the app. On stop
// the queue is closed and the writer drains it; if the shutdown timeout
// expires first, the loop is cancelled and the rest is abandoned.
func startLogWriter(lc fx.Lifecycle, wg *sync.WaitGroup, cfg *config.Config, q *queue.Queue, writer service.LogWriterService) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			log.Info().Msg("Starting log writer goroutine")
			wg.Add(1)
			go func() {
				defer close(done)
				writer.Run(ctx, wg)
			}()
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			log.Info().Int("pending", q.Len()).Msg("Draining ingestion queue...")
			q.Close()

			timer := time.NewTimer(cfg.Server.ShutdownTimeout)
			defer timer.Stop()
			select {
			case <-done:
			case <-timer.C:
				log.Warn().Int("pending", q.Len()).Msg("Drain timed out, abandoning queued entries")
			case <-stopCtx.Done():
				log.Warn().Int("pending", q.Len()).Msg("Stop deadline reached, abandoning queued entries")
			}
			cancel()
			return nil
		},
	})
}
