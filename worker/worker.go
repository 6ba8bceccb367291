package worker

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/robfig/cron"

	"github.com/ytgov/digital-marketplace/dal"
	"github.com/ytgov/digital-marketplace/models"
	"github.com/ytgov/digital-marketplace/services"
	"github.com/ytgov/digital-marketplace/utils/logger"
)

const deadlineSweepLock = "deadline-sweep"

// Worker runs the background jobs: the startup table bootstrap and the
// recurring opportunity-deadline sweep. The sweep is leased through the
// lock manager so only one instance per environment transitions records.
type Worker struct {
	config      *models.Config
	logger      logger.Logger
	cronJob     *cron.Cron
	lockManager *LockManager
	opportunity services.OpportunityServiceInterface
	ownerID     string

	mu        sync.Mutex
	isRunning bool
}

// NewWorker creates the background worker over an existing database client.
func NewWorker(cfg *models.Config, log logger.Logger, db dal.DatabaseClientInterface, opportunity services.OpportunityServiceInterface) *Worker {
	hostname, err := os.Hostname()
	if err != nil || hostname == "" {
		hostname = "localhost"
	}

	return &Worker{
		config:      cfg,
		logger:      log,
		cronJob:     cron.New(),
		lockManager: NewLockManager(db, cfg, log),
		opportunity: opportunity,
		ownerID:     fmt.Sprintf("worker-%s-%s", hostname, uuid.New().String()[:8]),
	}
}

// Start schedules the deadline sweep and begins ticking.
func (w *Worker) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.isRunning {
		return fmt.Errorf("worker is already running")
	}

	if err := w.cronJob.AddFunc(w.config.DeadlineSweepCron, w.runDeadlineSweep); err != nil {
		return fmt.Errorf("invalid sweep schedule %q: %w", w.config.DeadlineSweepCron, err)
	}

	w.cronJob.Start()
	w.isRunning = true
	w.logger.Infof("Worker %s started with schedule %s", w.ownerID, w.config.DeadlineSweepCron)
	return nil
}

// Stop halts the schedule. A sweep already in flight finishes.
func (w *Worker) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.isRunning {
		return
	}
	w.cronJob.Stop()
	w.isRunning = false
	w.logger.Infof("Worker %s stopped", w.ownerID)
}

func (w *Worker) runDeadlineSweep() {
	ctx := context.Background()

	acquired, err := w.lockManager.Acquire(ctx, deadlineSweepLock, w.ownerID)
	if err != nil {
		w.logger.Errorf("Failed to acquire sweep lease: %v", err)
		return
	}
	if !acquired {
		return
	}
	defer func() {
		if err := w.lockManager.Release(ctx, deadlineSweepLock, w.ownerID); err != nil {
			w.logger.Warnf("Failed to release sweep lease: %v", err)
		}
	}()

	swept, err := w.opportunity.SweepDeadlines(ctx)
	if err != nil {
		w.logger.Errorf("Deadline sweep failed: %v", err)
		return
	}
	if swept > 0 {
		w.logger.Infof("Deadline sweep moved %d opportunities to evaluation", swept)
	}
}
