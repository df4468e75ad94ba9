package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"github.com/elenaferr0/study-leave-doc-generator/internal/models"
)

const answersKeyPrefix = "saved_answers:"

// AnswersRepository - хранилище личных ответов для автозаполнения.
// Записи живут ограниченное время и привязаны к устройству.
type AnswersRepository interface {
	Get(ctx context.Context, deviceID string) (*models.SavedAnswers, error)
	Save(ctx context.Context, deviceID string, answers models.SavedAnswers) error
	Ping(ctx context.Context) error
	Close() error
}

type answersRepository struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

func NewAnswersRepository(client *redis.Client, ttl time.Duration, logger zerolog.Logger) AnswersRepository {
	return &answersRepository{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Get возвращает (nil, nil), когда для устройства ничего не сохранено.
func (r *answersRepository) Get(ctx context.Context, deviceID string) (*models.SavedAnswers, error) {
	data, err := r.client.Get(ctx, answersKeyPrefix+deviceID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read saved answers: %w", err)
	}

	var answers models.SavedAnswers
	if err := json.Unmarshal([]byte(data), &answers); err != nil {
		return nil, fmt.Errorf("failed to unmarshal saved answers: %w", err)
	}

	return &answers, nil
}

func (r *answersRepository) Save(ctx context.Context, deviceID string, answers models.SavedAnswers) error {
	data, err := json.Marshal(answers)
	if err != nil {
		return fmt.Errorf("failed to marshal saved answers: %w", err)
	}

	if err := r.client.Set(ctx, answersKeyPrefix+deviceID, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store saved answers: %w", err)
	}

	return nil
}

func (r *answersRepository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *answersRepository) Close() error {
	return r.client.Close()
}
