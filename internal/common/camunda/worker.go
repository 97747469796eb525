// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"time"

	"rto-workers/internal/common/config"
	"rto-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// Registration binds a task type to its handler.
type Registration struct {
	TaskType string
	Handler  worker.JobHandler
}

// StartWorker opens a job worker for reg unless it is disabled. It returns nil
// for disabled workers.
func StartWorker(client zbc.Client, reg Registration, wcfg config.WorkerConfig, log logger.Logger) worker.JobWorker {
	if !wcfg.Enabled {
		log.Info("worker disabled", map[string]interface{}{"taskType": reg.TaskType})
		return nil
	}

	jw := client.NewJobWorker().
		JobType(reg.TaskType).
		Handler(reg.Handler).
		MaxJobsActive(wcfg.MaxJobsActive).
		Timeout(config.GetDuration(wcfg.Timeout)).
		Open()

	log.Info("worker started", map[string]interface{}{
		"taskType":      reg.TaskType,
		"maxJobsActive": wcfg.MaxJobsActive,
		"timeout_ms":    wcfg.Timeout,
	})
	return jw
}

// StartAll starts every registration with its configured settings.
func StartAll(client zbc.Client, regs []Registration, cfg *config.Config, log logger.Logger) []worker.JobWorker {
	var started []worker.JobWorker
	for _, reg := range regs {
		if jw := StartWorker(client, reg, config.GetWorkerConfig(cfg, reg.TaskType), log); jw != nil {
			started = append(started, jw)
		}
	}
	return started
}

// JobRecorder is implemented by *observability.Observability.
type JobRecorder interface {
	RecordJobProcessed(ctx context.Context, taskType, status string)
	RecordJobDuration(ctx context.Context, taskType string, duration time.Duration, status string)
}

// Instrument wraps reg's handler so every job is counted and timed. Handlers
// report their own outcome to Zeebe, so the status here is always "handled".
func Instrument(reg Registration, rec JobRecorder) Registration {
	next := reg.Handler
	reg.Handler = func(client worker.JobClient, job entities.Job) {
		start := time.Now()
		next(client, job)

		ctx := context.Background()
		rec.RecordJobProcessed(ctx, reg.TaskType, "handled")
		rec.RecordJobDuration(ctx, reg.TaskType, time.Since(start), "handled")
	}
	return reg
}
