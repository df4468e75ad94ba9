package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/elenaferr0/study-leave-doc-generator/internal/models"
	"github.com/elenaferr0/study-leave-doc-generator/internal/repository"
	"github.com/elenaferr0/study-leave-doc-generator/internal/service/assembler"
	"github.com/elenaferr0/study-leave-doc-generator/internal/service/integration"
	"github.com/elenaferr0/study-leave-doc-generator/internal/service/session"
	"github.com/elenaferr0/study-leave-doc-generator/internal/service/storage"
	"github.com/elenaferr0/study-leave-doc-generator/internal/service/validation"
	"github.com/elenaferr0/study-leave-doc-generator/internal/worker/queue"
	"github.com/elenaferr0/study-leave-doc-generator/pkg/hash"
)

type FormService interface {
	CreateSession(ctx context.Context, deviceID string) (*models.SessionResponse, error)
	GetSession(ctx context.Context, id string) (*models.SessionResponse, error)
	UpdateFields(ctx context.Context, id string, changes models.UpdateFieldsRequest) (*models.SessionResponse, error)
	Submit(ctx context.Context, id string) (*BuildResult, error)
	DownloadDocument(ctx context.Context, documentID string) (io.ReadCloser, int64, error)
}

// BuildResult - собранный документ вместе с метаданными для ответа.
type BuildResult struct {
	DocumentID  string
	PDF         []byte
	ContentType string
	Checksum    string
}

type formService struct {
	sessions     *session.Manager
	engine       *validation.Engine
	assembler    *assembler.Assembler
	renderClient integration.RenderClient
	archive      storage.DocumentArchive
	answersRepo  repository.AnswersRepository
	publisher    queue.SubmissionPublisher
	hasher       hash.Hasher
	logger       zerolog.Logger
}

func NewFormService(
	sessions *session.Manager,
	engine *validation.Engine,
	asm *assembler.Assembler,
	renderClient integration.RenderClient,
	archive storage.DocumentArchive,
	answersRepo repository.AnswersRepository,
	publisher queue.SubmissionPublisher,
	hasher hash.Hasher,
	logger zerolog.Logger,
) FormService {
	return &formService{
		sessions:     sessions,
		engine:       engine,
		assembler:    asm,
		renderClient: renderClient,
		archive:      archive,
		answersRepo:  answersRepo,
		publisher:    publisher,
		hasher:       hasher,
		logger:       logger,
	}
}

// CreateSession заводит сессию формы и заполняет личные поля из сохранённых
// ответов устройства. Недоступность хранилища ответов не мешает созданию.
func (s *formService) CreateSession(ctx context.Context, deviceID string) (*models.SessionResponse, error) {
	var defaults models.RawFieldInputs

	if deviceID != "" {
		answers, err := s.answersRepo.Get(ctx, deviceID)
		if err != nil {
			s.logger.Warn().Err(err).Str("device_id", deviceID).Msg("Failed to load saved answers")
		} else if answers != nil {
			defaults.Name = answers.Name
			defaults.ID = answers.ID
			defaults.Degree = answers.Degree
			defaults.City = answers.City
			defaults.Language = answers.Language
		}
	}

	sess := s.sessions.Create(deviceID, defaults)

	s.logger.Info().
		Str("session_id", sess.ID).
		Bool("prefilled", defaults != (models.RawFieldInputs{})).
		Msg("Form session created")

	return s.sessionResponse(sess), nil
}

func (s *formService) GetSession(ctx context.Context, id string) (*models.SessionResponse, error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return nil, translateSessionErr(err)
	}

	return s.sessionResponse(sess), nil
}

// UpdateFields вливает правки в сессию и возвращает результат проверки
// на текущей строгости. Фазу отправки правки не меняют никогда.
func (s *formService) UpdateFields(ctx context.Context, id string, changes models.UpdateFieldsRequest) (*models.SessionResponse, error) {
	sess, err := s.sessions.MergeFields(id, changes)
	if err != nil {
		return nil, translateSessionErr(err)
	}

	return s.sessionResponse(sess), nil
}

// Submit - явное действие отправки. Флаг первой отправки взводится до
// строгой проверки, поэтому условные правила действуют уже на этой попытке
// и на всех последующих перечитываниях сессии.
func (s *formService) Submit(ctx context.Context, id string) (*BuildResult, error) {
	startedAt := time.Now()

	sess, _, err := s.sessions.MarkSubmitted(id)
	if err != nil {
		return nil, translateSessionErr(err)
	}

	result := s.engine.Validate(sess.Fields, true)
	if !result.Valid {
		return nil, &ValidationError{Errors: result.Errors}
	}

	if err := s.sessions.BeginBuild(id); err != nil {
		return nil, translateSessionErr(err)
	}
	defer s.sessions.EndBuild(id)

	model := s.assembler.Assemble(result.Record)

	resp, err := s.renderClient.Build(ctx, &model)
	if err != nil {
		s.logger.Error().Err(err).Str("session_id", id).Msg("Document build failed")
		s.recordSubmission(sess, result.Record, startedAt, "", "", 0, err)
		return nil, err
	}

	documentID := uuid.NewString()

	checksum, err := s.hasher.Calculate(resp.PDF)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to calculate document checksum")
	}

	// Архив нужен только для повторного скачивания: сбой не лишает
	// пользователя уже собранного документа.
	if err := s.archive.Upload(ctx, documentID, bytes.NewReader(resp.PDF), int64(len(resp.PDF))); err != nil {
		s.logger.Error().Err(err).Str("document_id", documentID).Msg("Failed to archive document")
	}

	s.saveAnswers(ctx, sess.DeviceID, result.Record)
	s.recordSubmission(sess, result.Record, startedAt, documentID, checksum, int64(len(resp.PDF)), nil)

	s.logger.Info().
		Str("session_id", id).
		Str("document_id", documentID).
		Str("activity_type", result.Record.ActivityType.String()).
		Int("pdf_size", len(resp.PDF)).
		Dur("duration", time.Since(startedAt)).
		Msg("Document built")

	return &BuildResult{
		DocumentID:  documentID,
		PDF:         resp.PDF,
		ContentType: resp.ContentType,
		Checksum:    checksum,
	}, nil
}

func (s *formService) DownloadDocument(ctx context.Context, documentID string) (io.ReadCloser, int64, error) {
	rc, size, err := s.archive.Download(ctx, documentID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, 0, ErrDocumentNotFound
		}
		return nil, 0, err
	}

	return rc, size, nil
}

// saveAnswers сохраняет личные поля для автозаполнения следующих сессий.
// Поля, зависящие от вида занятия, не сохраняются никогда.
func (s *formService) saveAnswers(ctx context.Context, deviceID string, rec models.FieldRecord) {
	if deviceID == "" {
		return
	}

	answers := models.SavedAnswers{
		Name:     rec.Name,
		ID:       rec.ID,
		Degree:   rec.Degree,
		City:     rec.City,
		Language: rec.Language,
	}

	if err := s.answersRepo.Save(ctx, deviceID, answers); err != nil {
		s.logger.Warn().Err(err).Str("device_id", deviceID).Msg("Failed to save answers for autofill")
	}
}

// recordSubmission публикует строку журнала сборки. Журнал ведётся и для
// успешных, и для неудавшихся сборок; отказ публикации не влияет на ответ.
func (s *formService) recordSubmission(sess models.FormSession, rec models.FieldRecord, startedAt time.Time, documentID, checksum string, size int64, buildErr error) {
	completedAt := time.Now()

	event := models.SubmissionRecordedEvent{
		SubmissionID: uuid.NewString(),
		SessionID:    sess.ID,
		DeviceID:     sess.DeviceID,
		ActivityType: rec.ActivityType.String(),
		Language:     rec.Language,
		Name:         rec.Name,
		StudentID:    rec.ID,
		Degree:       rec.Degree,
		City:         rec.City,
		Status:       models.SubmissionStatusSucceeded.String(),
		DocumentID:   documentID,
		Checksum:     checksum,
		SizeBytes:    size,
		DurationMs:   int(completedAt.Sub(startedAt).Milliseconds()),
		RequestedAt:  startedAt,
		CompletedAt:  completedAt,
	}
	if buildErr != nil {
		event.Status = models.SubmissionStatusFailed.String()
		event.Error = buildErr.Error()
	}

	// Ответ пользователю не ждёт журнал, поэтому контекст запроса не используется.
	if err := s.publisher.PublishSubmissionRecorded(context.Background(), event); err != nil {
		s.logger.Error().Err(err).Str("submission_id", event.SubmissionID).Msg("Failed to publish submission event")
	}
}

// sessionResponse собирает снимок сессии с проверкой на текущей строгости.
func (s *formService) sessionResponse(sess models.FormSession) *models.SessionResponse {
	result := s.engine.Validate(sess.Fields, sess.State.HasSubmittedOnce())

	return &models.SessionResponse{
		SessionID:  sess.ID,
		Fields:     sess.Fields,
		Validation: validationResponse(result),
		CreatedAt:  sess.CreatedAt,
		ExpiresAt:  sess.ExpiresAt,
	}
}

func validationResponse(result validation.Result) models.ValidationResponse {
	resp := models.ValidationResponse{
		Valid:  result.Valid,
		Strict: result.Strict,
		Errors: result.Errors,
	}
	if resp.Errors == nil {
		resp.Errors = []models.FieldError{}
	}
	return resp
}

func translateSessionErr(err error) error {
	switch {
	case errors.Is(err, session.ErrNotFound):
		return ErrSessionNotFound
	case errors.Is(err, session.ErrBuildInFlight):
		return ErrBuildInFlight
	default:
		return err
	}
}
