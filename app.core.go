package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/boltdb/bolt"
	"github.com/julienschmidt/httprouter"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type AppProvider interface {
	Run() error
	Serve() func() error
	Stop(context.Context, context.Context) func() error
}

type App struct {
	logger         *zap.Logger
	config         *Config
	server         *http.Server
	redisClient    *redis.Client
	boltClient     *bolt.DB
	cleanups       []func()
	queueConsumers []func(context.Context) error
}

// NewApp provides an instance of App.
func NewApp() (AppProvider, error) {
	config, err := LoadAndInitConfigs(GitCommit, GitTag, BuildTime)
	if err != nil {
		return nil, fmt.Errorf("failed to setup app configuration: %s", err)
	}

	clock := NewClock(config.IsProduction)
	logWriter := NewRSyncWriter(config, clock)
	logger, flusher := SetupLogging(config, logWriter, NewTickClock(clock))
	app := &App{
		logger: logger,
		config: config,
		cleanups: []func(){
			func() {
				if err := flusher(); err != nil {
					fmt.Println("error during flushing of logs: ", err)
				}
			},
			func() {
				if err := logWriter.Close(); err != nil {
					fmt.Println("error during closing of log file: ", err)
				}
			},
		},
	}

	storage := NewMemoryBookStorage(logger)
	queue := NewNopQueue()
	if config.ChangeFeed.Enabled {
		if queue, err = app.setupChangeFeed(); err != nil {
			app.Clean()
			return nil, err
		}
	}

	bookService := NewBookService(logger, config, clock, NewIDsHandler(), storage, queue)
	apiService := NewAPIHandler(
		logger,
		config,
		&Statistics{
			version:   config.GitTag,
			container: IsAppRunningInDocker(),
			started:   clock.Now(),
			runtime:   runtime.Version(),
			platform:  runtime.GOOS + "/" + runtime.GOARCH,
		},
		clock,
		NewIDsHandler(),
		NewMetrics(),
		bookService,
	)

	// Use git commit in case the tag is not set.
	if config.GitTag == "" {
		apiService.stats.version = config.GitCommit
	}

	middlewaresPublic, middlewaresOps := apiService.MiddlewaresStacks()
	router := apiService.SetupRoutes(httprouter.New(),
		&MiddlewareMap{
			public: middlewaresPublic.Chain,
			ops:    middlewaresOps.Chain,
		},
	)
	routerWithTimeout := http.TimeoutHandler(
		router,
		config.Server.RequestTimeout,
		"Timeout. Processing taking too long. Please reach out to support.")

	app.server = &http.Server{
		Addr:           fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
		Handler:        routerWithTimeout,
		ReadTimeout:    config.Server.ReadTimeout,
		WriteTimeout:   config.Server.WriteTimeout,
		MaxHeaderBytes: 1 << 20, // Max headers size : 1MB
	}
	return app, nil
}

// setupChangeFeed connects to redis and boltdb then registers the
// consumer which mirrors the books changes into the archive.
func (app *App) setupChangeFeed() (Queuer, error) {
	redisClient, err := GetRedisClient(app.config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis server: %s", err)
	}
	boltClient, err := GetBoltDBClient(app.config)
	if err != nil {
		redisClient.Close()
		return nil, fmt.Errorf("failed to open boltdb archive: %s", err)
	}
	app.redisClient = redisClient
	app.boltClient = boltClient

	redisQueue := NewRedisQueue(redisClient)
	archive := NewBoltBookArchive(app.logger, &app.config.BoltDB, boltClient)
	consumer := NewBoltDBConsumer(app.logger, redisQueue, archive)
	app.queueConsumers = append(app.queueConsumers, func(ctx context.Context) error {
		return consumer.Consume(ctx, CreateQueue, UpdateQueue, DeleteQueue)
	})
	return redisQueue, nil
}

// Run starts the api web server and a goroutine which is responsible to stop it.
func (app *App) Run() error {
	defer app.Clean()
	nCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(nCtx)

	g.Go(app.ConsumeQueues(gCtx, g))
	g.Go(app.Serve())
	g.Go(app.Stop(nCtx, gCtx))

	err := g.Wait()
	app.logger.Info("api server stopped",
		zap.String("app.host", app.config.Server.Host),
		zap.String("app.port", app.config.Server.Port),
		zap.Error(err),
	)
	return err
}

// Clean calls all registered cleanups functions in reverse order.
func (app *App) Clean() {
	for i := len(app.cleanups) - 1; i >= 0; i-- {
		app.cleanups[i]()
	}
}

// Serve starts the api web server. It returned error
// will be caught by the errorgroup.
func (app *App) Serve() func() error {
	return func() error {
		app.logger.Info("api server starting",
			zap.String("app.host", app.config.Server.Host),
			zap.String("app.port", app.config.Server.Port),
			zap.Bool("app.changefeed", app.config.ChangeFeed.Enabled),
		)
		err := app.server.ListenAndServe()
		if err == http.ErrServerClosed {
			err = nil
		}
		return err
	}
}

// Stop listens for the group context and triggers the server graceful shutdown.
// We proceed with a brutal shutdown if the graceful did not complete successfully.
// It returns `nil` so the errorgroup only catches the `Serve` method result.
func (app *App) Stop(nCtx, gCtx context.Context) func() error {
	return func() error {
		<-gCtx.Done()

		if nCtx.Err() != nil {
			app.logger.Info("api server stopping. reason: requested to stop")
		} else {
			app.logger.Info("api server stopping. reason: errored at running")
		}

		sCtx, cancel := context.WithTimeout(context.Background(), app.config.Server.ShutdownTimeout)
		defer cancel()
		err := app.server.Shutdown(sCtx)
		switch err {
		case nil, http.ErrServerClosed:
			app.logger.Info("api server graceful shutdown succeeded")
		case context.DeadlineExceeded:
			app.logger.Info("api server graceful shutdown timed out")
		default:
			app.logger.Info("api server graceful shutdown failed", zap.Error(err))
		}

		if err != nil && err != http.ErrServerClosed {
			app.logger.Info("api server going to force shutdown", zap.Error(app.server.Close()))
		}

		if app.redisClient != nil {
			if err := app.redisClient.Close(); err != nil {
				app.logger.Error("failed to close redis client", zap.Error(err))
			}
		}
		if app.boltClient != nil {
			if err := app.boltClient.Close(); err != nil {
				app.logger.Error("failed to close boltdb archive", zap.Error(err))
			}
		}
		return nil
	}
}

// ConsumeQueues runs all queue consumers into separate controlled goroutines.
func (app *App) ConsumeQueues(gCtx context.Context, g *errgroup.Group) func() error {
	return func() error {
		for _, consume := range app.queueConsumers {
			consume := consume
			g.Go(func() error {
				return consume(gCtx)
			})
		}
		return nil
	}
}
