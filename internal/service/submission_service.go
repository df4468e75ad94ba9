package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/elenaferr0/study-leave-doc-generator/internal/models"
	"github.com/elenaferr0/study-leave-doc-generator/internal/repository"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// SubmissionService - читающий API журнала сборок для delivery-слоя.
type SubmissionService interface {
	GetSubmissions(ctx context.Context, page, limit int) (*models.SubmissionsResponse, error)
	GetSubmission(ctx context.Context, id string) (*models.Submission, error)
	GetStats(ctx context.Context) (*models.SubmissionStatsResponse, error)
}

type submissionService struct {
	repo   repository.SubmissionRepository
	logger zerolog.Logger
}

func NewSubmissionService(repo repository.SubmissionRepository, logger zerolog.Logger) SubmissionService {
	return &submissionService{
		repo:   repo,
		logger: logger,
	}
}

func (s *submissionService) GetSubmissions(ctx context.Context, page, limit int) (*models.SubmissionsResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	offset := (page - 1) * limit

	subs, total, err := s.repo.GetAll(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list submissions: %w", err)
	}

	if subs == nil {
		subs = []models.Submission{}
	}

	totalPages := total / limit
	if total%limit > 0 {
		totalPages++
	}

	return &models.SubmissionsResponse{
		Submissions: subs,
		Total:       total,
		Page:        page,
		Limit:       limit,
		TotalPages:  totalPages,
	}, nil
}

func (s *submissionService) GetSubmission(ctx context.Context, id string) (*models.Submission, error) {
	sub, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}

	if sub == nil {
		return nil, ErrSubmissionNotFound
	}

	return sub, nil
}

func (s *submissionService) GetStats(ctx context.Context) (*models.SubmissionStatsResponse, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count submissions: %w", err)
	}

	stats := &models.SubmissionStatsResponse{
		Succeeded: counts[models.SubmissionStatusSucceeded.String()],
		Failed:    counts[models.SubmissionStatusFailed.String()],
	}
	stats.Total = stats.Succeeded + stats.Failed

	return stats, nil
}
