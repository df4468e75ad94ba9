package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/elenaferr0/study-leave-doc-generator/internal/models"
)

// SubmissionPublisher отправляет события журнала сборок в очередь.
type SubmissionPublisher interface {
	PublishSubmissionRecorded(ctx context.Context, event models.SubmissionRecordedEvent) error
	Close() error
}

type submissionPublisher struct {
	channel    *amqp.Channel
	exchange   string
	routingKey string
	logger     zerolog.Logger
}

func NewSubmissionPublisher(channel *amqp.Channel, exchange, routingKey string, logger zerolog.Logger) SubmissionPublisher {
	return &submissionPublisher{
		channel:    channel,
		exchange:   exchange,
		routingKey: routingKey,
		logger:     logger,
	}
}

func (p *submissionPublisher) PublishSubmissionRecorded(ctx context.Context, event models.SubmissionRecordedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	publishCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = p.channel.PublishWithContext(
		publishCtx,
		p.exchange,
		p.routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish submission event: %w", err)
	}

	p.logger.Debug().
		Str("submission_id", event.SubmissionID).
		Str("status", event.Status).
		Msg("submission event published")

	return nil
}

func (p *submissionPublisher) Close() error {
	// Канал закрывает владелец соединения
	p.logger.Info().Msg("RabbitMQ publisher closed")
	return nil
}
