// Package queue provides the bounded in-memory buffer between the batch
// analyze endpoint and the analysis workers.
package queue

import (
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"propwell/server/internal/analysis"
)

var (
	ErrQueueFull   = errors.New("queue is full")
	ErrQueueClosed = errors.New("queue is closed")
)

// AnalysisQueue buffers batches of analysis jobs. Push never blocks; a
// full queue is the caller's signal to shed load.
type AnalysisQueue struct {
	jobs   chan []*analysis.Request
	closed bool
	mu     sync.RWMutex
	logger *logrus.Logger
}

func NewAnalysisQueue(bufferSize int, logger *logrus.Logger) *AnalysisQueue {
	return &AnalysisQueue{
		jobs:   make(chan []*analysis.Request, bufferSize),
		logger: logger,
	}
}

// Push adds a batch of jobs to the queue without blocking.
func (q *AnalysisQueue) Push(jobs []*analysis.Request) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrQueueClosed
	}

	select {
	case q.jobs <- jobs:
		q.logger.WithField("batch_size", len(jobs)).Debug("Pushed batch to queue")
		return nil
	default:
		return ErrQueueFull
	}
}

// Jobs exposes the receive side for workers. The channel closes when the
// queue closes; workers drain whatever was already buffered.
func (q *AnalysisQueue) Jobs() <-chan []*analysis.Request {
	return q.jobs
}

// Close stops the queue and prevents new batches from being added.
func (q *AnalysisQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}

	q.closed = true
	close(q.jobs)
	return nil
}

// Len returns the current number of buffered batches.
func (q *AnalysisQueue) Len() int {
	return len(q.jobs)
}

func (q *AnalysisQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
