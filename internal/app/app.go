package app

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"github.com/elenaferr0/study-leave-doc-generator/internal/config"
	"github.com/elenaferr0/study-leave-doc-generator/internal/delivery/httpd"
	"github.com/elenaferr0/study-leave-doc-generator/internal/middleware"
	"github.com/elenaferr0/study-leave-doc-generator/internal/repository"
	"github.com/elenaferr0/study-leave-doc-generator/internal/service"
	"github.com/elenaferr0/study-leave-doc-generator/internal/service/assembler"
	"github.com/elenaferr0/study-leave-doc-generator/internal/service/integration"
	"github.com/elenaferr0/study-leave-doc-generator/internal/service/session"
	"github.com/elenaferr0/study-leave-doc-generator/internal/service/storage"
	"github.com/elenaferr0/study-leave-doc-generator/internal/service/validation"
	"github.com/elenaferr0/study-leave-doc-generator/internal/worker"
	"github.com/elenaferr0/study-leave-doc-generator/internal/worker/queue"
	"github.com/elenaferr0/study-leave-doc-generator/pkg/hash"
)

type App struct {
	server       *http.Server
	logger       zerolog.Logger
	config       *config.Config
	db           *sql.DB
	redisClient  *redis.Client
	rabbitMQ     *queue.RabbitMQ
	sessions     *session.Manager
	auditWorker  worker.AuditWorker
	workerCancel context.CancelFunc
}

func New(cfg *config.Config, log zerolog.Logger, db *sql.DB) (*App, error) {
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Address,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	archive, err := storage.NewMinIOArchive(cfg.Storage)
	if err != nil {
		return nil, err
	}

	rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQ.URL, log)
	if err != nil {
		return nil, err
	}

	if err := rabbitMQ.SetupQueue(
		cfg.RabbitMQ.Exchange,
		cfg.RabbitMQ.QueueName,
		cfg.RabbitMQ.RoutingKey,
	); err != nil {
		return nil, err
	}

	publisher := queue.NewSubmissionPublisher(
		rabbitMQ.Channel(),
		cfg.RabbitMQ.Exchange,
		cfg.RabbitMQ.RoutingKey,
		log,
	)
	consumer := queue.NewRabbitMQConsumer(
		rabbitMQ.Channel(),
		cfg.RabbitMQ.QueueName,
		cfg.RabbitMQ.ConsumerTag,
		cfg.RabbitMQ.PrefetchCount,
		log,
	)

	submissionRepo := repository.NewSubmissionRepository(db, log)
	answersRepo := repository.NewAnswersRepository(redisClient, cfg.Answers.TTL, log)

	renderClient := integration.NewRenderClient(
		cfg.Services.Render.URL,
		cfg.Services.Render.Timeout,
		cfg.Services.Render.RetryCount,
		cfg.Services.Render.RetryDelay,
		log,
	)

	catalogClient := integration.NewCatalogClient(
		cfg.Services.Render.URL,
		cfg.Services.Render.Timeout,
		cfg.Document.CatalogTTL,
		log,
	)

	sessions := session.NewManager(session.Config{
		TTL:           cfg.Session.TTL,
		SweepInterval: cfg.Session.SweepInterval,
	}, log)

	engine := validation.NewEngine()
	asm := assembler.New(cfg.Document.BlankWidth)
	hasher := hash.NewDocumentHasher(hash.Algorithm(cfg.Document.HashAlgorithm))

	formService := service.NewFormService(
		sessions,
		engine,
		asm,
		renderClient,
		archive,
		answersRepo,
		publisher,
		hasher,
		log,
	)

	submissionService := service.NewSubmissionService(submissionRepo, log)

	workerPool := worker.NewWorkerPool(cfg.Workers.Count, cfg.Workers.QueueSize, log)

	statusService := service.NewStatusService(
		submissionRepo,
		answersRepo,
		archive,
		renderClient,
		rabbitMQ,
		workerPool,
		log,
	)

	auditWorker := worker.NewAuditWorker(
		workerPool,
		consumer,
		submissionRepo,
		log,
	)

	handler := httpd.NewHandler(
		formService,
		submissionService,
		statusService,
		catalogClient,
		log,
	)

	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.StripSlashes)
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.Timeout(60 * time.Second))

	router.Use(middleware.NewCORS(
		cfg.CORS.AllowedOrigins,
		cfg.CORS.AllowedMethods,
		cfg.CORS.AllowedHeaders,
		cfg.CORS.ExposedHeaders,
		cfg.CORS.AllowCredentials,
		cfg.CORS.MaxAge,
	))

	handler.RegisterRoutes(router)

	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	return &App{
		server:      server,
		logger:      log,
		config:      cfg,
		db:          db,
		redisClient: redisClient,
		rabbitMQ:    rabbitMQ,
		sessions:    sessions,
		auditWorker: auditWorker,
	}, nil
}

func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	a.workerCancel = cancel

	if err := a.auditWorker.Start(ctx); err != nil {
		a.logger.Error().Err(err).Msg("Failed to start audit worker")
		return err
	}

	a.sessions.Start()

	a.logger.Info().Msgf("Starting document service on %s", a.config.Server.Address)
	return a.server.ListenAndServe()
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info().Msg("Shutting down document service...")

	// Сначала гасим контекст воркера, чтобы обработка сообщений
	// завершилась до остановки пула.
	if a.workerCancel != nil {
		a.workerCancel()
	}

	if err := a.auditWorker.Stop(); err != nil {
		a.logger.Error().Err(err).Msg("Failed to stop audit worker")
	}

	a.sessions.Stop()

	if a.rabbitMQ != nil {
		if err := a.rabbitMQ.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to close RabbitMQ connection")
		}
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to close Redis connection")
		}
	}

	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Error().Err(err).Msg("Failed to close database connection")
		}
	}

	if err := a.server.Shutdown(ctx); err != nil {
		a.logger.Error().Err(err).Msg("Failed to shutdown HTTP server")
		return err
	}

	a.logger.Info().Msg("Document service stopped")
	return nil
}
