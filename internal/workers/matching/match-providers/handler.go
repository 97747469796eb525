package matchproviders

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"rto-workers/internal/common/errors"
	"rto-workers/internal/common/logger"
	"rto-workers/internal/common/metrics"
	"rto-workers/internal/matcher"
	"rto-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "match-providers"

	metricsChannel = "worker"
)

type Handler struct {
	config       *Config
	catalog      ProviderCatalog
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, catalog ProviderCatalog, log logger.Logger) (*Handler, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", TaskType, err)
	}

	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		catalog:      catalog,
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

	input, err := parseInput(job.Variables)
	if err != nil {
		h.fail(ctx, client, job, err)
		return
	}

	output, err := h.Execute(ctx, input)
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

// Execute ranks the catalog for one set of quiz answers. An empty ranking is a
// successful result with NoMatch set.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.NewInternalError(err)
	}

	query := models.Query{
		DeliveryPreference: input.DeliveryPreference,
		Region:             input.Region,
	}
	result := matcher.Summarize(h.catalog.Providers(), query, h.config.RunnersUp)
	metrics.RecordMatch(metricsChannel, result.TotalMatches)

	ranked := result.RankedProviders
	if h.config.MaxResults > 0 && len(ranked) > h.config.MaxResults {
		ranked = ranked[:h.config.MaxResults]
	}

	fields := map[string]interface{}{
		"deliveryPreference": query.DeliveryPreference,
		"region":             query.Region,
		"totalMatches":       result.TotalMatches,
	}
	if result.NoMatch {
		h.logger.Info("no providers matched", fields)
	} else {
		fields["topMatchId"] = result.TopMatch.ID
		h.logger.Info("providers matched", fields)
	}

	return &Output{
		RankedProviders: ranked,
		TopMatch:        result.TopMatch,
		RunnersUp:       result.RunnersUp,
		TotalMatches:    result.TotalMatches,
		NoMatch:         result.NoMatch,
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
