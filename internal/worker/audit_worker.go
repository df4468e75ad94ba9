package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/elenaferr0/study-leave-doc-generator/internal/models"
	"github.com/elenaferr0/study-leave-doc-generator/internal/repository"
	"github.com/elenaferr0/study-leave-doc-generator/internal/worker/queue"
)

// AuditWorker переносит события сборок из очереди в журнал в базе.
type AuditWorker interface {
	Start(ctx context.Context) error
	Stop() error
	GetStats() WorkerStats
}

type WorkerStats struct {
	ActiveWorkers  int `json:"active_workers"`
	ProcessedToday int `json:"processed_today"`
	TotalProcessed int `json:"total_processed"`
	FailedJobs     int `json:"failed_jobs"`
	QueueLength    int `json:"queue_length"`
}

type auditWorker struct {
	workerPool     *WorkerPool
	queueConsumer  queue.RabbitMQConsumer
	submissionRepo repository.SubmissionRepository
	logger         zerolog.Logger
	stats          WorkerStats
	statsMutex     sync.RWMutex
	startTime      time.Time
}

func NewAuditWorker(
	workerPool *WorkerPool,
	queueConsumer queue.RabbitMQConsumer,
	submissionRepo repository.SubmissionRepository,
	logger zerolog.Logger,
) AuditWorker {
	return &auditWorker{
		workerPool:     workerPool,
		queueConsumer:  queueConsumer,
		submissionRepo: submissionRepo,
		logger:         logger,
		startTime:      time.Now(),
	}
}

func (w *auditWorker) Start(ctx context.Context) error {
	w.logger.Info().Msg("Starting audit worker...")

	if err := w.workerPool.Start(ctx); err != nil {
		return fmt.Errorf("failed to start worker pool: %w", err)
	}

	msgs, err := w.queueConsumer.Consume(ctx)
	if err != nil {
		return fmt.Errorf("failed to start consuming messages: %w", err)
	}

	go w.processMessages(ctx, msgs)

	w.logger.Info().Msg("Audit worker started successfully")
	return nil
}

func (w *auditWorker) Stop() error {
	w.logger.Info().Msg("Stopping audit worker...")

	if err := w.workerPool.Stop(); err != nil {
		w.logger.Error().Err(err).Msg("Failed to stop worker pool")
	}

	if err := w.queueConsumer.Close(); err != nil {
		w.logger.Error().Err(err).Msg("Failed to close queue consumer")
	}

	w.logger.Info().
		Int("total_processed", w.stats.TotalProcessed).
		Int("failed_jobs", w.stats.FailedJobs).
		Dur("uptime", time.Since(w.startTime)).
		Msg("Audit worker stopped")

	return nil
}

func (w *auditWorker) processMessages(ctx context.Context, msgs <-chan queue.RabbitMQMessage) {
	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("Stopping message processing")
			return
		case msg, ok := <-msgs:
			if !ok {
				w.logger.Warn().Msg("Message channel closed")
				return
			}

			w.workerPool.Submit(func() {
				if err := w.processMessage(ctx, msg); err != nil {
					w.logger.Error().Err(err).Msg("Failed to process message")

					w.statsMutex.Lock()
					w.stats.FailedJobs++
					w.statsMutex.Unlock()

					// безнадёжные сообщения подтверждаем и выбрасываем,
					// остальные возвращаем в очередь
					if isPermanentError(err) {
						if ackErr := msg.Ack(false); ackErr != nil {
							w.logger.Error().Err(ackErr).Msg("Failed to ack message")
						}
						return
					}

					if nackErr := msg.Nack(false, true); nackErr != nil {
						w.logger.Error().Err(nackErr).Msg("Failed to nack message")
					}
				} else {
					if err := msg.Ack(false); err != nil {
						w.logger.Error().Err(err).Msg("Failed to ack message")
					}

					w.statsMutex.Lock()
					w.stats.TotalProcessed++
					if time.Since(msg.Timestamp).Hours() < 24 {
						w.stats.ProcessedToday++
					}
					w.statsMutex.Unlock()
				}
			})
		}
	}
}

func (w *auditWorker) processMessage(ctx context.Context, msg queue.RabbitMQMessage) error {
	var event models.SubmissionRecordedEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		return permanent(fmt.Errorf("failed to unmarshal event: %w", err))
	}

	if strings.TrimSpace(event.SubmissionID) == "" {
		return permanent(errors.New("empty submission_id"))
	}
	if strings.TrimSpace(event.SessionID) == "" {
		return permanent(errors.New("empty session_id"))
	}
	if !models.IsValidSubmissionStatus(event.Status) {
		return permanent(fmt.Errorf("unknown submission status %q", event.Status))
	}

	w.logger.Info().
		Str("submission_id", event.SubmissionID).
		Str("status", event.Status).
		Msg("Recording submission")

	return w.recordSubmission(ctx, event)
}

func (w *auditWorker) recordSubmission(ctx context.Context, event models.SubmissionRecordedEvent) error {
	existing, err := w.submissionRepo.GetByID(ctx, event.SubmissionID)
	if err != nil {
		return fmt.Errorf("failed to check existing submission: %w", err)
	}
	if existing != nil {
		w.logger.Warn().
			Str("submission_id", event.SubmissionID).
			Msg("Submission already recorded, skipping")
		return nil
	}

	sub := &models.Submission{
		ID:           event.SubmissionID,
		SessionID:    event.SessionID,
		DeviceID:     event.DeviceID,
		ActivityType: event.ActivityType,
		Language:     event.Language,
		Name:         event.Name,
		StudentID:    event.StudentID,
		Degree:       event.Degree,
		City:         event.City,
		Status:       event.Status,
		DurationMs:   event.DurationMs,
		RequestedAt:  event.RequestedAt,
		CompletedAt:  event.CompletedAt,
	}
	if event.Error != "" {
		sub.Error = &event.Error
	}
	if event.DocumentID != "" {
		sub.DocumentID = &event.DocumentID
	}
	if event.Checksum != "" {
		sub.Checksum = &event.Checksum
	}
	if event.SizeBytes > 0 {
		sub.SizeBytes = &event.SizeBytes
	}

	if err := w.submissionRepo.Create(ctx, sub); err != nil {
		return fmt.Errorf("failed to create submission record: %w", err)
	}

	return nil
}

func (w *auditWorker) GetStats() WorkerStats {
	w.statsMutex.RLock()
	defer w.statsMutex.RUnlock()

	stats := w.stats

	queueLength, err := w.queueConsumer.GetQueueLength()
	if err != nil {
		w.logger.Error().Err(err).Msg("Failed to get queue length")
	} else {
		stats.QueueLength = queueLength
	}

	stats.ActiveWorkers = w.workerPool.GetActiveWorkers()

	return stats
}

type permanentError struct {
	err error
}

func (e permanentError) Error() string { return e.err.Error() }
func (e permanentError) Unwrap() error { return e.err }

func permanent(err error) error {
	return permanentError{err: err}
}

func isPermanentError(err error) bool {
	var p permanentError
	return errors.As(err, &p)
}
