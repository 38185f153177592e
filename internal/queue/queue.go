package queue

import (
	"context"
	"errors"
	"sync"

	"github.com/Michaelnacaya1234/Accounting-services/internal/logger"
	"github.com/Michaelnacaya1234/Accounting-services/internal/mailer"

	"go.uber.org/zap"
)

var ErrClosed = errors.New("queue is closed")

// Queue accepts outgoing mail for asynchronous delivery.
type Queue interface {
	Enqueue(ctx context.Context, msg mailer.Message) error
	Close() error
}

// MemoryQueue is a buffered channel drained by a fixed pool of workers.
type MemoryQueue struct {
	jobs   chan mailer.Message
	sender mailer.Sender

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func NewMemoryQueue(sender mailer.Sender, buffer, workers int) *MemoryQueue {
	if buffer <= 0 {
		buffer = 100
	}
	if workers <= 0 {
		workers = 1
	}
	q := &MemoryQueue{
		jobs:   make(chan mailer.Message, buffer),
		sender: sender,
	}
	for i := 0; i < workers; i++ {
		q.wg.Add(1)
		go q.work()
	}
	return q
}

func (q *MemoryQueue) work() {
	defer q.wg.Done()
	for msg := range q.jobs {
		deliver(context.Background(), q.sender, msg)
	}
}

func (q *MemoryQueue) Enqueue(ctx context.Context, msg mailer.Message) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrClosed
	}
	select {
	case q.jobs <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting mail and waits for queued messages to be sent.
func (q *MemoryQueue) Close() error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	close(q.jobs)
	q.mu.Unlock()

	q.wg.Wait()
	return nil
}

func deliver(ctx context.Context, sender mailer.Sender, msg mailer.Message) error {
	if err := sender.Send(ctx, msg); err != nil {
		logger.Log.Error("failed to send queued email",
			zap.String("subject", msg.Subject),
			zap.Error(err),
		)
		return err
	}
	logger.Log.Debug("queued email sent", zap.String("subject", msg.Subject))
	return nil
}
