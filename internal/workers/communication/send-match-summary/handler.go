package sendmatchsummary

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"rto-workers/internal/common/errors"
	"rto-workers/internal/common/logger"
	"rto-workers/internal/common/metrics"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "send-match-summary"

// Executor is implemented by *Service.
type Executor interface {
	Execute(ctx context.Context, input *Input) (*Output, error)
}

type Handler struct {
	config       *Config
	service      Executor
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, deps ServiceDependencies) (*Handler, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", TaskType, err)
	}

	log := deps.Logger.WithFields(map[string]interface{}{"taskType": TaskType})
	deps.Logger = log
	return newHandler(config, NewService(deps, config), log), nil
}

func newHandler(config *Config, service Executor, log logger.Logger) *Handler {
	return &Handler{
		config:       config,
		service:      service,
		errorHandler: errors.NewErrorHandler(log),
		logger:       log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	startTime := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	input, err := parseInput(job.Variables)
	if err != nil {
		h.fail(ctx, client, job, err)
		return
	}

	output, err := h.service.Execute(ctx, input)
	if err != nil {
		h.fail(ctx, client, job, err)
		return
	}

	h.completeJob(ctx, client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

func parseInput(variables string) (*Input, error) {
	var input Input
	if err := json.Unmarshal([]byte(variables), &input); err != nil {
		return nil, errors.NewParseError(err)
	}
	return &input, nil
}

func (h *Handler) fail(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(errors.AsStandardError(err).Code)).Inc()
	h.errorHandler.HandleJobError(ctx, client, job, err)
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}
