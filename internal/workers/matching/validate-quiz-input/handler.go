package validatequizinput

import (
	"context"
	"fmt"
	"strings"
	"time"

	"rto-workers/internal/common/errors"
	"rto-workers/internal/common/logger"
	"rto-workers/internal/common/metrics"
	"rto-workers/internal/common/validation"
	"rto-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "validate-quiz-input"

var quizSchema = validation.MustCompile(validation.QuizInputSchema)

type Handler struct {
	config       *Config
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, log logger.Logger) (*Handler, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", TaskType, err)
	}

	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		errorHandler: errors.NewErrorHandler(log),
		logger:       log,
	}, nil
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

	variables, err := job.GetVariablesAsMap()
	if err != nil {
		h.fail(ctx, client, job, errors.NewParseError(err))
		return
	}

	output, err := h.Execute(ctx, variables)
	if err != nil {
		h.fail(ctx, client, job, err)
		return
	}

	h.completeJob(ctx, client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

// Execute checks the quiz answers against the input schema and returns them in
// canonical form. Invalid answers complete with Valid=false unless
// FailOnInvalid is set.
func (h *Handler) Execute(_ context.Context, variables map[string]interface{}) (*Output, error) {
	result, err := quizSchema.ValidateGo(variables)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	if !result.Valid {
		messages := result.GetErrorMessages()
		h.logger.Warn("quiz input rejected", map[string]interface{}{"errors": messages})

		if h.config.FailOnInvalid {
			return nil, errors.NewInvalidQuizInputError(strings.Join(messages, "; "))
		}
		return &Output{Valid: false, Errors: messages}, nil
	}

	delivery, _ := models.ParseDeliveryMode(variables["deliveryPreference"].(string))
	return &Output{
		Valid:  true,
		Errors: []string{},
		Normalized: &models.Query{
			DeliveryPreference: string(delivery),
			Region:             models.NormalizeRegion(variables["region"].(string)),
		},
	}, nil
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
