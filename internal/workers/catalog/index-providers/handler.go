package indexproviders

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"rto-workers/internal/common/errors"
	"rto-workers/internal/common/logger"
	"rto-workers/internal/common/metrics"
	"rto-workers/internal/matcher"
	"rto-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

const (
	TaskType = "index-providers"

	maxReportedErrors = 10
)

type Handler struct {
	config       *Config
	es           *elasticsearch.Client
	catalog      ProviderCatalog
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, es *elasticsearch.Client, catalog ProviderCatalog, log logger.Logger) (*Handler, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", TaskType, err)
	}

	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		es:           es,
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

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.fail(ctx, client, job, errors.NewParseError(err))
		return
	}

	output, err := h.Execute(ctx, &input)
	if err != nil {
		h.fail(ctx, client, job, err)
		return
	}

	h.completeJob(ctx, client, job, output)
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(startTime).Seconds())
}

// Execute bulk-indexes the whole catalog. Documents are keyed by provider id,
// so re-running replaces rather than duplicates.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	index := input.IndexName
	if index == "" {
		index = h.config.IndexName
	}

	if h.config.CreateIndex {
		if err := h.ensureIndex(ctx, index); err != nil {
			return nil, err
		}
	}

	providers := h.catalog.Providers()
	body, err := buildBulkBody(index, providers)
	if err != nil {
		return nil, errors.NewInternalError(err)
	}

	req := esapi.BulkRequest{
		Index:   index,
		Body:    bytes.NewReader(body),
		Refresh: "wait_for",
	}
	res, err := req.Do(ctx, h.es)
	if err != nil {
		return nil, transportError(ctx, index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, errors.NewSearchIndexFailedError(index, fmt.Errorf("bulk request: %s: %s", res.Status(), readBody(res.Body)))
	}

	var br bulkResponse
	if err := json.NewDecoder(res.Body).Decode(&br); err != nil {
		return nil, errors.NewSearchIndexFailedError(index, fmt.Errorf("decode bulk response: %w", err))
	}

	out := &Output{IndexName: index, TookMs: br.Took}
	for _, item := range br.Items {
		for _, result := range item {
			if result.Error == nil && result.Status < http.StatusMultipleChoices {
				out.Indexed++
				continue
			}
			out.Failed++
			if len(out.Errors) < maxReportedErrors && result.Error != nil {
				out.Errors = append(out.Errors, fmt.Sprintf("%s: %s: %s", result.ID, result.Error.Type, result.Error.Reason))
			}
		}
	}

	h.logger.Info("catalog indexed", map[string]interface{}{
		"indexName": index,
		"indexed":   out.Indexed,
		"failed":    out.Failed,
		"tookMs":    out.TookMs,
	})

	if out.Indexed == 0 && out.Failed > 0 {
		return nil, errors.NewSearchIndexFailedError(index, fmt.Errorf("all %d documents rejected: %s", out.Failed, strings.Join(out.Errors, "; ")))
	}

	return out, nil
}

func (h *Handler) ensureIndex(ctx context.Context, index string) error {
	res, err := esapi.IndicesExistsRequest{Index: []string{index}}.Do(ctx, h.es)
	if err != nil {
		return transportError(ctx, index, err)
	}
	res.Body.Close()

	if res.StatusCode == http.StatusOK {
		return nil
	}
	if res.StatusCode != http.StatusNotFound {
		return errors.NewSearchIndexFailedError(index, fmt.Errorf("index exists check: %s", res.Status()))
	}

	res, err = esapi.IndicesCreateRequest{
		Index: index,
		Body:  strings.NewReader(indexMapping),
	}.Do(ctx, h.es)
	if err != nil {
		return transportError(ctx, index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		body := readBody(res.Body)
		// Another worker created it first.
		if strings.Contains(body, "resource_already_exists_exception") {
			return nil
		}
		return errors.NewSearchIndexFailedError(index, fmt.Errorf("create index: %s: %s", res.Status(), body))
	}

	h.logger.Info("search index created", map[string]interface{}{"indexName": index})
	return nil
}

func buildBulkBody(index string, providers []models.Provider) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)

	for _, p := range providers {
		meta := map[string]interface{}{
			"index": map[string]interface{}{"_index": index, "_id": p.ID},
		}
		if err := enc.Encode(meta); err != nil {
			return nil, fmt.Errorf("encode bulk meta for %s: %w", p.ID, err)
		}

		doc := providerDocument{
			Provider:  p,
			National:  p.IsNational(),
			Sponsored: p.IsSponsored(),
			Blended:   matcher.IsUniversallyCompatible(p),
			HasPrice:  p.Price != nil,
		}
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("encode provider %s: %w", p.ID, err)
		}
	}

	return buf.Bytes(), nil
}

func transportError(ctx context.Context, index string, err error) error {
	if stderrors.Is(err, context.DeadlineExceeded) || stderrors.Is(ctx.Err(), context.DeadlineExceeded) {
		return errors.NewSearchTimeoutError(index)
	}
	return errors.NewElasticsearchConnectionFailedError(err)
}

func readBody(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, 4096))
	return strings.TrimSpace(string(b))
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
