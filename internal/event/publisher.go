// Package event publishes booking domain events to RabbitMQ.
package event

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"movie-booking/pkg/utils"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type BookingCreated struct {
	BookingID  string    `json:"booking_id"`
	OrderID    string    `json:"order_id"`
	UserID     string    `json:"user_id"`
	ShowTimeID string    `json:"showtime_id"`
	MovieTitle string    `json:"movie_title"`
	Seats      []string  `json:"seats"`
	TotalPrice float64   `json:"total_price"`
	CreatedAt  time.Time `json:"created_at"`
}

type Publisher interface {
	PublishBookingCreated(ctx context.Context, event BookingCreated) error
	Close() error
}

// NewPublisher connects to the broker in config. Without a URL, or when the
// broker is unreachable, events are dropped by a no-op publisher.
func NewPublisher(config utils.QueueConfig, log *zap.Logger) Publisher {
	if config.URL == "" {
		log.Info("Booking events disabled, no AMQP_URL configured")
		return NoopPublisher{}
	}

	p, err := NewAMQPPublisher(config.URL, config.BookingQueue, log)
	if err != nil {
		log.Warn("Booking events disabled, broker unreachable", zap.Error(err))
		return NoopPublisher{}
	}
	return p
}

type amqpPublisher struct {
	mu    sync.Mutex
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
	log   *zap.Logger
}

func NewAMQPPublisher(url, queue string, log *zap.Logger) (Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	// durable so events survive a broker restart
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare queue %s: %w", queue, err)
	}

	return &amqpPublisher{
		conn:  conn,
		ch:    ch,
		queue: queue,
		log:   log.With(zap.String("publisher", queue)),
	}, nil
}

func (p *amqpPublisher) PublishBookingCreated(ctx context.Context, event BookingCreated) error {
	msg, err := encode(event)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.PublishWithContext(ctx, "", p.queue, false, false, msg); err != nil {
		p.log.Error("Failed to publish booking event",
			zap.Error(err),
			zap.String("order_id", event.OrderID),
		)
		return fmt.Errorf("publish booking %s: %w", event.OrderID, err)
	}

	p.log.Debug("Booking event published", zap.String("order_id", event.OrderID))
	return nil
}

func (p *amqpPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.Close(); err != nil {
		p.conn.Close()
		return err
	}
	return p.conn.Close()
}

func encode(event BookingCreated) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("marshal booking event: %w", err)
	}

	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Type:         "booking.created",
		MessageId:    event.OrderID,
		Timestamp:    event.CreatedAt.UTC(),
		Body:         body,
	}, nil
}

type NoopPublisher struct{}

func (NoopPublisher) PublishBookingCreated(context.Context, BookingCreated) error { return nil }

func (NoopPublisher) Close() error { return nil }
