// Package processor runs queued analysis jobs on a small worker pool.
package processor

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"propwell/server/config"
	"propwell/server/internal/analysis"
	"propwell/server/internal/database"
	"propwell/server/internal/queue"
)

// BatchProcessor drains the analysis queue and persists each job's
// report. Jobs within a batch are independent; one failure does not
// abort the rest.
type BatchProcessor struct {
	store     *database.Database
	queue     *queue.AnalysisQueue
	config    *config.Config
	logger    *logrus.Logger
	waitGroup sync.WaitGroup
}

func NewBatchProcessor(store *database.Database, q *queue.AnalysisQueue, cfg *config.Config, logger *logrus.Logger) *BatchProcessor {
	return &BatchProcessor{
		store:  store,
		queue:  q,
		config: cfg,
		logger: logger,
	}
}

// Start launches the worker pool.
func (p *BatchProcessor) Start() {
	for i := 0; i < p.config.BatchProcessing.WorkerCount; i++ {
		p.waitGroup.Add(1)
		go p.work()
	}
}

// Stop closes the queue and waits for the workers to drain it.
func (p *BatchProcessor) Stop() {
	p.queue.Close()
	p.waitGroup.Wait()
}

func (p *BatchProcessor) work() {
	defer p.waitGroup.Done()

	for batch := range p.queue.Jobs() {
		p.processBatch(batch)
	}
}

func (p *BatchProcessor) processBatch(batch []*analysis.Request) {
	var failed int
	for _, job := range batch {
		if err := p.processJob(job); err != nil {
			p.logger.WithError(err).WithField("address", job.Subject.Address).Error("Failed to process analysis job")
			failed++
		}
	}

	p.logger.WithFields(logrus.Fields{
		"batch_size": len(batch),
		"failed":     failed,
	}).Info("Processed analysis batch")
}

// processJob runs the pipeline and saves the report, retrying the save
// on failure.
func (p *BatchProcessor) processJob(job *analysis.Request) error {
	report := analysis.Run(*job, p.config.Analysis.VacancyCarryCost, time.Now())

	record, err := analysis.BuildRecord(*job, report)
	if err != nil {
		return fmt.Errorf("failed to serialize analysis: %w", err)
	}

	maxRetries := p.config.BatchProcessing.MaxRetries
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			p.logger.Infof("Retrying analysis save, attempt %d of %d", attempt, maxRetries)
			time.Sleep(time.Duration(p.config.BatchProcessing.RetryDelay) * time.Second)
		}

		if err = p.store.SaveAnalysisRecord(record); err == nil {
			return nil
		}

		p.logger.Errorf("Analysis save failed: %v", err)
	}

	return fmt.Errorf("failed to save analysis after %d attempts: %w", maxRetries, err)
}
