package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"todo_service/internal/models"

	amqp "github.com/rabbitmq/amqp091-go"
)

type RabbitMQClient struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   amqp.Queue
}

func New(urlForConn string, queueName string) (*RabbitMQClient, error) {
	const op = "rabbitmq.New"

	conn, err := amqp.Dial(urlForConn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	q, err := ch.QueueDeclare(
		queueName, true, false, false, false, nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &RabbitMQClient{
		conn:    conn,
		channel: ch,
		queue:   q,
	}, nil
}

func (r *RabbitMQClient) SendMessage(ctx context.Context, msg models.Message) error {
	const op = "rabbitmq.SendMessage"

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = r.channel.PublishWithContext(
		ctx,
		"",
		r.queue.Name,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Handler processes one delivery body. Returning an error nacks the delivery
// without requeue.
type Handler func(ctx context.Context, body []byte) error

// StartReading consumes the queue until ctx is done or the channel closes.
func (r *RabbitMQClient) StartReading(ctx context.Context, handle Handler) error {
	const op = "rabbitmq.StartReading"

	msgs, err := r.channel.ConsumeWithContext(
		ctx,
		r.queue.Name,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return fmt.Errorf("%s: delivery channel closed", op)
			}

			_ = settle(ctx, d, handle)
		}
	}
}

// settle acks d when handle succeeds and nacks it without requeue otherwise.
func settle(ctx context.Context, d amqp.Delivery, handle Handler) error {
	if err := handle(ctx, d.Body); err != nil {
		return d.Nack(false, false)
	}

	return d.Ack(false)
}

func (r *RabbitMQClient) Close() {
	_ = r.channel.Close()
	_ = r.conn.Close()
}
