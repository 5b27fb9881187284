package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/deskhive/RoomBookingService/internal/queue"
)

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Publisher публикует события бронирования в RabbitMQ.
// Соединение устанавливается один раз при старте сервиса; публикация
// best-effort: ошибки логируются и возвращаются, но вызывающие слои
// не прерывают из-за них основной поток запроса.
type Publisher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
	log  Logger
}

// New подключается к брокеру и объявляет durable очереди событий.
func New(url string, log Logger) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("events: dial failed: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("events: channel open failed: %w", err)
	}

	for _, name := range []string{queue.QueueBookingCreated, queue.QueueBookingCancelled} {
		if _, err := ch.QueueDeclare(
			name,  // name
			true,  // durable
			false, // autoDelete
			false, // exclusive
			false, // noWait
			nil,   // args
		); err != nil {
			_ = ch.Close()
			_ = conn.Close()
			return nil, fmt.Errorf("events: queue declare %s failed: %w", name, err)
		}
	}

	return &Publisher{conn: conn, ch: ch, log: log}, nil
}

// PublishBookingCreated публикует событие о созданном бронировании
func (p *Publisher) PublishBookingCreated(ctx context.Context, event queue.BookingCreatedEvent) error {
	return p.publish(ctx, queue.QueueBookingCreated, event)
}

// PublishBookingCancelled публикует событие об отменённом бронировании
func (p *Publisher) PublishBookingCancelled(ctx context.Context, event queue.BookingCancelledEvent) error {
	return p.publish(ctx, queue.QueueBookingCancelled, event)
}

func (p *Publisher) publish(ctx context.Context, queueName string, event interface{}) error {
	body, err := json.Marshal(event)
	if err != nil {
		p.log.Error("events: marshal event for %s failed: %v", queueName, err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent, // сохраняются на диске брокера
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := p.ch.PublishWithContext(ctx,
		"",        // default exchange
		queueName, // routing key = имя очереди
		false,     // mandatory
		false,     // immediate
		pub,
	); err != nil {
		p.log.Warn("events: publish to %s failed: %v", queueName, err)
		return err
	}

	return nil
}

// Close закрывает канал и соединение с брокером
func (p *Publisher) Close() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}
