package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/elenaferr0/study-leave-doc-generator/internal/models"
	"github.com/elenaferr0/study-leave-doc-generator/internal/repository"
	"github.com/elenaferr0/study-leave-doc-generator/internal/service/integration"
	"github.com/elenaferr0/study-leave-doc-generator/internal/service/storage"
)

type StatusService interface {
	GetServiceStatus(ctx context.Context) (*models.StatusResponse, error)
}

// ConnectionStatus отдаёт состояние соединения с брокером.
type ConnectionStatus interface {
	IsClosed() bool
}

// WorkerStatsProvider отдаёт загрузку пула обработчиков.
type WorkerStatsProvider interface {
	GetActiveWorkers() int
}

type statusService struct {
	submissionRepo repository.SubmissionRepository
	answersRepo    repository.AnswersRepository
	archive        storage.DocumentArchive
	renderClient   integration.RenderClient
	queueConn      ConnectionStatus
	workers        WorkerStatsProvider
	logger         zerolog.Logger
}

func NewStatusService(
	submissionRepo repository.SubmissionRepository,
	answersRepo repository.AnswersRepository,
	archive storage.DocumentArchive,
	renderClient integration.RenderClient,
	queueConn ConnectionStatus,
	workers WorkerStatsProvider,
	logger zerolog.Logger,
) StatusService {
	return &statusService{
		submissionRepo: submissionRepo,
		answersRepo:    answersRepo,
		archive:        archive,
		renderClient:   renderClient,
		queueConn:      queueConn,
		workers:        workers,
		logger:         logger,
	}
}

func (s *statusService) GetServiceStatus(ctx context.Context) (*models.StatusResponse, error) {
	dbOK := true
	if err := s.submissionRepo.Ping(ctx); err != nil {
		dbOK = false
		s.logger.Error().Err(err).Msg("Database health check failed")
	}

	redisOK := true
	if err := s.answersRepo.Ping(ctx); err != nil {
		redisOK = false
		s.logger.Error().Err(err).Msg("Redis health check failed")
	}

	storageOK := true
	if err := s.archive.Ping(ctx); err != nil {
		storageOK = false
		s.logger.Error().Err(err).Msg("Storage health check failed")
	}

	rendererOK := true
	if err := s.renderClient.Health(ctx); err != nil {
		rendererOK = false
		s.logger.Warn().Err(err).Msg("Render service health check failed")
	}

	rabbitOK := !s.queueConn.IsClosed()
	if !rabbitOK {
		s.logger.Error().Msg("RabbitMQ connection is closed")
	}

	response := &models.StatusResponse{
		Status:        "healthy",
		Database:      dbOK,
		Redis:         redisOK,
		RabbitMQ:      rabbitOK,
		Storage:       storageOK,
		Renderer:      rendererOK,
		ActiveWorkers: s.workers.GetActiveWorkers(),
		Timestamp:     time.Now(),
	}

	if !dbOK || !redisOK || !rabbitOK || !storageOK || !rendererOK {
		response.Status = "degraded"
	}

	return response, nil
}
