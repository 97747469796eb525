package main

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "rto-workers/internal/common/errors"
)

func TestRetryWithBackoff_StopsOnNonRetryable(t *testing.T) {
	calls := 0
	err := retryWithBackoff(func() error {
		calls++
		return apperrors.NewCatalogEmptyError("postgres")
	}, 5, time.Millisecond, zap.NewNop(), "Catalog load")

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeCatalogEmpty))
}

func TestRetryWithBackoff_RetriesTransientErrors(t *testing.T) {
	calls := 0
	err := retryWithBackoff(func() error {
		calls++
		if calls < 3 {
			return apperrors.NewCatalogLoadFailedError("postgres", errors.New("connection refused"))
		}
		return nil
	}, 5, time.Millisecond, zap.NewNop(), "Catalog load")

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetryWithBackoff_GivesUp(t *testing.T) {
	calls := 0
	err := retryWithBackoff(func() error {
		calls++
		return errors.New("dial tcp: connection refused")
	}, 3, time.Millisecond, zap.NewNop(), "Zeebe connect")

	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.Contains(t, err.Error(), "failed after 3 attempts")
}
