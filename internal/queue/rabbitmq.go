package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Michaelnacaya1234/Accounting-services/internal/logger"
	"github.com/Michaelnacaya1234/Accounting-services/internal/mailer"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// RabbitQueue publishes mail to a durable queue and, when consuming,
// delivers it through the configured sender.
type RabbitQueue struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   amqp.Queue
	sender  mailer.Sender
}

func NewRabbitQueue(url, queueName string, sender mailer.Sender) (*RabbitQueue, error) {
	const op = "queue.NewRabbitQueue"

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	q, err := ch.QueueDeclare(queueName, true, false, false, false, nil)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &RabbitQueue{conn: conn, channel: ch, queue: q, sender: sender}, nil
}

func (r *RabbitQueue) Enqueue(ctx context.Context, msg mailer.Message) error {
	const op = "queue.RabbitQueue.Enqueue"

	body, err := encodeMessage(msg)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = r.channel.PublishWithContext(ctx, "", r.queue.Name, false, false, amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Consume runs until ctx is cancelled or the channel closes. Messages that
// fail to decode are dropped; failed sends are requeued once.
func (r *RabbitQueue) Consume(ctx context.Context) error {
	const op = "queue.RabbitQueue.Consume"

	if err := r.channel.Qos(1, 0, false); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	deliveries, err := r.channel.ConsumeWithContext(ctx, r.queue.Name, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return nil
			}
			r.handle(ctx, d)
		}
	}
}

func (r *RabbitQueue) handle(ctx context.Context, d amqp.Delivery) {
	msg, err := decodeMessage(d.Body)
	if err != nil {
		logger.Log.Error("dropping undecodable notification", zap.Error(err))
		_ = d.Nack(false, false)
		return
	}
	if err := deliver(ctx, r.sender, msg); err != nil {
		_ = d.Nack(false, !d.Redelivered)
		return
	}
	_ = d.Ack(false)
}

func (r *RabbitQueue) Close() error {
	_ = r.channel.Close()
	return r.conn.Close()
}

func encodeMessage(msg mailer.Message) ([]byte, error) {
	return json.Marshal(msg)
}

func decodeMessage(body []byte) (mailer.Message, error) {
	var msg mailer.Message
	if err := json.Unmarshal(body, &msg); err != nil {
		return mailer.Message{}, err
	}
	if msg.To == "" {
		return mailer.Message{}, fmt.Errorf("notification without recipient")
	}
	return msg, nil
}
