// Package jobs runs the background maintenance work.
package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"linkhub/internal/config"
	"linkhub/internal/database"
)

// Scheduler is responsible for running background jobs
type Scheduler struct {
	dbManager *database.DBManager
	logger    *slog.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	isRunning bool
	cfg       *config.Config

	// Mutex to prevent concurrent job executions
	processingMutex sync.Mutex
	isProcessing    bool

	reconcileJob    *ReconcileJob
	reconcileTicker *time.Ticker
}

func NewScheduler(dbManager *database.DBManager, logger *slog.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	s := &Scheduler{
		dbManager: dbManager,
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
		cfg:       config.GetConfig(),
	}

	s.reconcileJob = NewReconcileJob(dbManager, logger)

	return s
}

// executeJobSafely runs a job only if no other job is currently executing
func (s *Scheduler) executeJobSafely(jobName string, jobFunc func() error) {
	s.processingMutex.Lock()
	if s.isProcessing {
		s.logger.Debug("Skipping job execution - previous job still running", slog.String("job", jobName))
		s.processingMutex.Unlock()
		return
	}
	s.isProcessing = true
	s.processingMutex.Unlock()

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Panic recovered in background job",
				slog.String("job", jobName),
				slog.Any("panic", r))
		}

		s.processingMutex.Lock()
		s.isProcessing = false
		s.processingMutex.Unlock()
	}()

	if err := jobFunc(); err != nil {
		s.logger.Error("Error executing job", slog.String("job", jobName), slog.Any("error", err))
	}
}

// Start begins all background jobs
func (s *Scheduler) Start() error {
	if s.isRunning {
		s.logger.Info("Background jobs already running.")
		return nil
	}

	s.isRunning = true

	interval := time.Duration(s.cfg.ReconcileIntervalSeconds) * time.Second
	s.logger.Info("Starting counter reconciliation job", slog.Duration("interval", interval))
	s.reconcileTicker = time.NewTicker(interval)

	go func() {
		s.executeJobSafely("reconcile_counters", s.reconcileJob.Run)

		for {
			select {
			case <-s.reconcileTicker.C:
				s.executeJobSafely("reconcile_counters", s.reconcileJob.Run)
			case <-s.ctx.Done():
				s.logger.Info("Counter reconciliation job stopped")
				return
			}
		}
	}()

	return nil
}

// Stop halts all background jobs.
func (s *Scheduler) Stop() {
	if !s.isRunning {
		return
	}
	s.isRunning = false
	if s.reconcileTicker != nil {
		s.reconcileTicker.Stop()
	}
	s.cancel()
}
