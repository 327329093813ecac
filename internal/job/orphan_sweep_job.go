// Package job holds background maintenance work scheduled via cron.
package job

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"taskboard-api/internal/repository"
)

// sweepBatchSize caps how many orphans one run removes so a backlog
// cannot monopolize the connection pool.
const sweepBatchSize = 500

// OrphanSweepJob removes tasks whose board no longer exists. Board
// deletion is best-effort at request time, so a crash between the task
// and board deletes can leave strays behind; reads already filter them
// out, this job reclaims the rows.
type OrphanSweepJob struct {
	taskRepo repository.TaskRepository
	logger   *zap.Logger
}

// NewOrphanSweepJob creates a new OrphanSweepJob instance
func NewOrphanSweepJob(taskRepo repository.TaskRepository, logger *zap.Logger) *OrphanSweepJob {
	return &OrphanSweepJob{
		taskRepo: taskRepo,
		logger:   logger,
	}
}

// Run executes one sweep. It satisfies cron.Job.
func (j *OrphanSweepJob) Run() {
	ctx := context.Background()

	orphans, err := j.taskRepo.FindOrphaned(ctx, sweepBatchSize)
	if err != nil {
		j.logger.Error("Failed to find orphaned tasks", zap.Error(err))
		return
	}

	if len(orphans) == 0 {
		return
	}

	j.logger.Info("Found orphaned tasks", zap.Int("count", len(orphans)))

	successCount := 0
	failCount := 0
	for _, task := range orphans {
		if err := j.taskRepo.Delete(ctx, task.ID); err != nil {
			j.logger.Error("Failed to delete orphaned task",
				zap.String("task_id", task.ID.String()),
				zap.String("board_id", task.BoardID.String()),
				zap.Error(err))
			failCount++
			continue
		}
		successCount++
	}

	j.logger.Info("Orphan sweep completed",
		zap.Int("total", len(orphans)),
		zap.Int("deleted", successCount),
		zap.Int("failed", failCount))
}

// Schedule registers the job on a new cron runner and starts it. The
// returned cron should be stopped on shutdown.
func Schedule(spec string, jobs ...cron.Job) (*cron.Cron, error) {
	c := cron.New()
	for _, j := range jobs {
		if _, err := c.AddJob(spec, j); err != nil {
			return nil, err
		}
	}
	c.Start()
	return c, nil
}
