package matchproviders

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"rto-workers/internal/catalog"
	"rto-workers/internal/common/errors"
	"rto-workers/internal/common/logger"
	"rto-workers/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testLogger struct {
	t *testing.T
}

func (tl *testLogger) Debug(msg string, fields map[string]interface{}) {
	tl.t.Logf("DEBUG: %s %v", msg, fields)
}

func (tl *testLogger) Info(msg string, fields map[string]interface{}) {
	tl.t.Logf("INFO: %s %v", msg, fields)
}

func (tl *testLogger) Warn(msg string, fields map[string]interface{}) {
	tl.t.Logf("WARN: %s %v", msg, fields)
}

func (tl *testLogger) Error(msg string, fields map[string]interface{}) {
	tl.t.Logf("ERROR: %s %v", msg, fields)
}

func (tl *testLogger) WithFields(fields map[string]interface{}) logger.Logger {
	return tl
}

func (tl *testLogger) WithError(err error) logger.Logger {
	return tl
}

func (tl *testLogger) With(fields map[string]interface{}) logger.Logger {
	return tl
}

func newTestHandler(t *testing.T, cfg *Config) *Handler {
	t.Helper()
	cat, err := catalog.Load(context.Background(), catalog.SeedSource{})
	require.NoError(t, err)

	h, err := NewHandler(cfg, cat, &testLogger{t: t})
	require.NoError(t, err)
	return h
}

func TestNewHandler_InvalidConfig(t *testing.T) {
	_, err := NewHandler(&Config{Timeout: 0}, nil, &testLogger{t: t})
	assert.Error(t, err)

	_, err = NewHandler(&Config{Timeout: time.Second, RunnersUp: -1}, nil, &testLogger{t: t})
	assert.Error(t, err)
}

func TestHandler_Execute(t *testing.T) {
	tests := []struct {
		name        string
		input       *Input
		wantTop     string
		wantRunners []string
		wantTotal   int
	}{
		{
			name:        "online in NSW",
			input:       &Input{DeliveryPreference: "online", Region: "NSW"},
			wantTop:     "10",
			wantRunners: []string{"1", "2"},
			wantTotal:   3,
		},
		{
			name:        "in-person in lower-case vic",
			input:       &Input{DeliveryPreference: "in-person", Region: "vic"},
			wantTop:     "10",
			wantRunners: []string{"1", "3"},
			wantTotal:   3,
		},
		{
			name:        "online in QLD includes online-only local provider",
			input:       &Input{DeliveryPreference: "online", Region: "QLD"},
			wantTop:     "10",
			wantRunners: []string{"1", "4"},
			wantTotal:   3,
		},
	}

	h := newTestHandler(t, DefaultConfig())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := h.Execute(context.Background(), tt.input)
			require.NoError(t, err)

			require.NotNil(t, out.TopMatch)
			assert.Equal(t, tt.wantTop, out.TopMatch.ID)
			assert.True(t, out.TopMatch.IsSponsored())
			assert.Equal(t, tt.wantRunners, out.RunnersUp.IDs())
			assert.Equal(t, tt.wantTotal, out.TotalMatches)
			assert.Len(t, out.RankedProviders, tt.wantTotal)
			assert.False(t, out.NoMatch)
		})
	}
}

func TestHandler_Execute_NoMatch(t *testing.T) {
	cat, err := catalog.New("stub", []models.Provider{{
		ID:            "nsw-only",
		Name:          "NSW Only",
		Rating:        9,
		DeliveryModes: []models.DeliveryMode{models.DeliveryOnline},
		Regions:       []string{"NSW"},
	}})
	require.NoError(t, err)

	h, err := NewHandler(DefaultConfig(), cat, &testLogger{t: t})
	require.NoError(t, err)

	out, err := h.Execute(context.Background(), &Input{DeliveryPreference: "online", Region: "QLD"})
	require.NoError(t, err)
	assert.True(t, out.NoMatch)
	assert.Nil(t, out.TopMatch)
	assert.Zero(t, out.TotalMatches)

	// Variables must serialise as empty arrays, not null, for FEEL expressions.
	raw, err := json.Marshal(out)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"rankedProviders":[]`)
	assert.Contains(t, string(raw), `"runnersUp":[]`)
	assert.Contains(t, string(raw), `"topMatch":null`)
}

func TestHandler_Execute_MaxResults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxResults = 1
	cfg.RunnersUp = 1
	h := newTestHandler(t, cfg)

	out, err := h.Execute(context.Background(), &Input{DeliveryPreference: "online", Region: "SA"})
	require.NoError(t, err)
	assert.Len(t, out.RankedProviders, 1)
	assert.Equal(t, 3, out.TotalMatches)
	assert.Equal(t, []string{"1"}, out.RunnersUp.IDs())
}

func TestHandler_Execute_CancelledContext(t *testing.T) {
	h := newTestHandler(t, DefaultConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := h.Execute(ctx, &Input{DeliveryPreference: "online", Region: "NSW"})
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeInternal))
}

func TestParseInput(t *testing.T) {
	in, err := parseInput(`{"deliveryPreference":"online","region":"WA","email":"x@example.com"}`)
	require.NoError(t, err)
	assert.Equal(t, "online", in.DeliveryPreference)
	assert.Equal(t, "WA", in.Region)

	_, err = parseInput(`{"region":`)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrCodeParseError))
}
