// test/e2e/e2e_test.go
package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rto-workers/internal/api"
	"rto-workers/internal/catalog"
	"rto-workers/internal/common/config"
	"rto-workers/internal/common/logger"
	"rto-workers/internal/models"

	sendmatchsummary "rto-workers/internal/workers/communication/send-match-summary"
	matchproviders "rto-workers/internal/workers/matching/match-providers"
	validatequizinput "rto-workers/internal/workers/matching/validate-quiz-input"
)

const catalogFile = "../../configs/providers.json"

type recordingEmail struct {
	sent []*ses.SendEmailInput
}

func (r *recordingEmail) SendEmail(_ context.Context, in *ses.SendEmailInput, _ ...func(*ses.Options)) (*ses.SendEmailOutput, error) {
	r.sent = append(r.sent, in)
	return &ses.SendEmailOutput{}, nil
}

type recordingSMS struct {
	sent []*sns.PublishInput
}

func (r *recordingSMS) Publish(_ context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	r.sent = append(r.sent, in)
	return &sns.PublishOutput{}, nil
}

func loadCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.Load(context.Background(), catalog.NewFileSource(catalogFile))
	require.NoError(t, err)
	return cat
}

// The shipped catalog file must stay in step with the built-in seed.
func TestCatalogFileMatchesSeed(t *testing.T) {
	fromFile := loadCatalog(t)
	seed, err := catalog.Load(context.Background(), catalog.SeedSource{})
	require.NoError(t, err)

	assert.Equal(t, seed.Providers(), fromFile.Providers())
}

// A quiz submission travels validate -> match -> notify in the process model
// and through the HTTP API on the website. Both paths must agree.
func TestQuizFlow(t *testing.T) {
	ctx := context.Background()
	log := logger.NewTestLogger(t)
	cat := loadCatalog(t)

	answers := map[string]interface{}{"deliveryPreference": " Online ", "region": "qld"}

	validator, err := validatequizinput.NewHandler(validatequizinput.DefaultConfig(), log)
	require.NoError(t, err)
	validated, err := validator.Execute(ctx, answers)
	require.NoError(t, err)
	require.True(t, validated.Valid, validated.Errors)

	matcherWorker, err := matchproviders.NewHandler(matchproviders.DefaultConfig(), cat, log)
	require.NoError(t, err)
	matched, err := matcherWorker.Execute(ctx, &matchproviders.Input{
		DeliveryPreference: validated.Normalized.DeliveryPreference,
		Region:             validated.Normalized.Region,
	})
	require.NoError(t, err)
	require.False(t, matched.NoMatch)
	assert.Equal(t, []string{"10", "1", "4"}, matched.RankedProviders.IDs())

	srv := httptest.NewServer(api.NewAPIService(config.APIConfig{RunnersUp: 2}, cat, nil, log).Handler())
	defer srv.Close()

	body, _ := json.Marshal(answers)
	res, err := http.Post(srv.URL+"/api/v1/match", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var viaAPI struct {
		TopMatch  models.Provider `json:"topMatch"`
		Providers models.Ranking  `json:"providers"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&viaAPI))
	assert.Equal(t, matched.RankedProviders.IDs(), viaAPI.Providers.IDs())
	assert.Equal(t, matched.TopMatch.ID, viaAPI.TopMatch.ID)

	email := &recordingEmail{}
	text := &recordingSMS{}
	cfg := sendmatchsummary.DefaultConfig()
	svc := sendmatchsummary.NewService(sendmatchsummary.ServiceDependencies{
		Catalog: cat,
		Email:   email,
		SMS:     text,
		Logger:  log,
	}, cfg)

	summary, err := svc.Execute(ctx, &sendmatchsummary.Input{
		Email:              "learner@example.com",
		Phone:              "+61 400 123 456",
		DeliveryPreference: validated.Normalized.DeliveryPreference,
		Region:             validated.Normalized.Region,
	})
	require.NoError(t, err)
	assert.Equal(t, models.NotificationStatusSent, summary.Status)
	assert.Equal(t, matched.TopMatch.ID, summary.TopMatchID)
	require.Len(t, email.sent, 1)
	require.Len(t, text.sent, 1)
	assert.Contains(t, *email.sent[0].Message.Body.Text.Data, matched.TopMatch.Name)
}

func TestQuizFlow_InvalidAnswers(t *testing.T) {
	log := logger.NewTestLogger(t)

	validator, err := validatequizinput.NewHandler(validatequizinput.DefaultConfig(), log)
	require.NoError(t, err)
	out, err := validator.Execute(context.Background(), map[string]interface{}{"deliveryPreference": "by post"})
	require.NoError(t, err)
	assert.False(t, out.Valid)
	assert.Len(t, out.Errors, 2)
}

// TestZeebeTopology runs only against a live gateway.
func TestZeebeTopology(t *testing.T) {
	addr := os.Getenv("E2E_ZEEBE_ADDRESS")
	if addr == "" {
		t.Skip("E2E_ZEEBE_ADDRESS not set")
	}

	client, err := zbc.NewClient(&zbc.ClientConfig{
		GatewayAddress:         addr,
		UsePlaintextConnection: true,
	})
	require.NoError(t, err)
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	topology, err := client.NewTopologyCommand().Send(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, topology.Brokers)
}
