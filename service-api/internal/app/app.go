package app

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"car-rental/pkg/auth"
	"car-rental/pkg/config"
	"car-rental/pkg/database"
	"car-rental/pkg/email"
	"car-rental/pkg/events"
	"car-rental/pkg/linktoken"
	"car-rental/pkg/logger"
	"car-rental/pkg/ratelimit"
	"car-rental/pkg/redis"
	"car-rental/pkg/storage"
	ctl "car-rental/service-api/internal/controller"
	rentalRepo "car-rental/service-api/internal/repository/rental"
	requestRepo "car-rental/service-api/internal/repository/request"
	authService "car-rental/service-api/internal/service/auth"
	rentalService "car-rental/service-api/internal/service/rental"
	requestService "car-rental/service-api/internal/service/request"
)

// AppServer wires the HTTP service together
type AppServer struct {
	config            *config.Config
	controller        ctl.ControllerProvider
	requestController *ctl.RequestController
	rentalController  *ctl.RentalController
	linkController    *ctl.LinkController
	eventController   *ctl.EventController
	jwtManager        *auth.JWTManager
	sessions          *auth.SessionStore
	sequencer         *linktoken.Sequencer
	requestLimiter    *ratelimit.Limiter

	db    *sql.DB
	redis *redis.Client
}

// dependencies are the external systems the server talks to
type dependencies struct {
	db          *sql.DB
	requestRepo requestRepo.Repository
	rentalRepo  rentalRepo.Repository
	redis       *redis.Client
	storage     storage.Provider
	email       email.Provider
}

// NewAppServer connects to the configured backends and creates the server.
func NewAppServer(cfg *config.Config) *AppServer {
	ctx := context.Background()
	deps := dependencies{}

	// initialize database
	switch cfg.Database.Provider {
	case config.DatabaseProviderMemory:
		logger.Warn("using in-memory database, data is lost on restart")
		deps.requestRepo = requestRepo.NewMemoryRepository()
		deps.rentalRepo = rentalRepo.NewMemoryRepository()
	default:
		db, err := database.NewPgDB(ctx, cfg)
		if err != nil {
			logger.Fatalf("failed to initialize database: %v", err)
		}
		deps.db = db
		deps.requestRepo = requestRepo.NewRepository(db)
		deps.rentalRepo = rentalRepo.NewRepository(db)
	}

	// initialize redis
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		logger.Fatalf("failed to initialize redis: %v", err)
	}
	deps.redis = redisClient

	// initialize storage provider
	deps.storage, err = storage.NewStorageProvider(ctx, &cfg.Storage)
	if err != nil {
		logger.Fatalf("failed to initialize storage provider: %v", err)
	}

	// shared pkgs
	deps.email, err = email.NewEmailProvider(ctx, &cfg.Email)
	if err != nil {
		logger.Fatalf("failed to initialize email provider: %v", err)
	}

	server, err := newAppServer(cfg, deps)
	if err != nil {
		logger.Fatalf("failed to initialize server: %v", err)
	}
	return server
}

func newAppServer(cfg *config.Config, deps dependencies) (*AppServer, error) {
	codec, err := linktoken.NewCodec(cfg.LinkSecret)
	if err != nil {
		return nil, fmt.Errorf("invalid link secret: %w", err)
	}
	sequencer := linktoken.NewSequencer(codec)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret)
	sessions := auth.NewSessionStore(deps.redis)
	bus := events.NewBus(deps.redis)
	limiter := ratelimit.New(deps.redis, "requests", cfg.RateLimit.Requests, cfg.RateLimit.Window)

	// initialize services
	authSvc := authService.NewAuthService(cfg, jwtManager, sessions)
	requestSvc := requestService.NewService(deps.requestRepo, deps.email, bus, cfg)
	rentalSvc := rentalService.NewService(deps.rentalRepo, deps.storage, deps.email, bus, sequencer, cfg)

	return &AppServer{
		config:            cfg,
		controller:        ctl.NewController(authSvc),
		requestController: ctl.NewRequestController(requestSvc),
		rentalController:  ctl.NewRentalController(rentalSvc),
		linkController:    ctl.NewLinkController(rentalSvc),
		eventController:   ctl.NewEventController(bus, cfg.CORS.AllowedOrigins),
		jwtManager:        jwtManager,
		sessions:          sessions,
		sequencer:         sequencer,
		requestLimiter:    limiter,
		db:                deps.db,
		redis:             deps.redis,
	}, nil
}

func (a *AppServer) Serve() {
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", a.config.Port),
		Handler: a.RegisterHandlers(),
	}

	// serve the server
	go func() {
		err := server.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed to start: %v", err)
		}
	}()

	logger.Infof("server started on port %s", a.config.Port)

	a.gracefulShutdown(server)
	a.close()

	logger.Info("server shutdown complete")
}

func (a *AppServer) gracefulShutdown(server *http.Server) {
	ctx, stopCtx := context.WithCancel(context.Background())

	go func() {
		signals := make(chan os.Signal, 1)
		signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP) // wait for the sigterm
		<-signals

		// we received an os signal, shut down.
		err := server.Shutdown(ctx)
		if err != nil {
			logger.Error(err, "server shutdown error")
		} else {
			logger.Info("server graceful shutdown")
		}

		stopCtx()
	}()

	<-ctx.Done()
}

func (a *AppServer) close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			logger.Error(err, "failed to close redis")
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			logger.Error(err, "failed to close database")
		}
	}
}
