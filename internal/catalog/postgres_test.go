package catalog

import (
	"context"
	"errors"
	"testing"

	apperrors "rto-workers/internal/common/errors"
	"rto-workers/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var providerColumns = []string{
	"id", "name", "description", "rating", "delivery_modes", "regions", "features",
	"detail_url", "price", "duration", "sponsorship_tier",
}

func TestPostgresSource_Load(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows(providerColumns).
		AddRow("1", "National Real Estate College", "desc", 9.5, "{online,blended}", "{All}", `{"24/7 Online Access"}`,
			"https://example.test/1", 1895.0, "4-6 months", "none").
		AddRow("2", "Legacy Name (Sponsored)", nil, 9.8, "{blended}", "{nsw}", "{}",
			nil, nil, nil, nil)

	mock.ExpectQuery(`SELECT id, name, description, rating, delivery_modes, regions, features, detail_url, price, duration, sponsorship_tier FROM training_providers ORDER BY sort_order, id`).
		WillReturnRows(rows)

	src, err := NewPostgresSource(db, "training_providers")
	require.NoError(t, err)

	cat, err := Load(context.Background(), src)
	require.NoError(t, err)
	require.Equal(t, 2, cat.Len())

	first, _ := cat.Get("1")
	assert.Equal(t, []models.DeliveryMode{models.DeliveryOnline, models.DeliveryBlended}, first.DeliveryModes)
	assert.Equal(t, []string{models.RegionAll}, first.Regions)
	assert.Equal(t, []string{"24/7 Online Access"}, first.Features)
	require.NotNil(t, first.Price)
	assert.Equal(t, 1895.0, *first.Price)
	assert.False(t, first.IsSponsored())

	second, _ := cat.Get("2")
	assert.Equal(t, "Legacy Name", second.Name)
	assert.True(t, second.IsSponsored())
	assert.Equal(t, []string{"NSW"}, second.Regions)
	assert.Nil(t, second.Price)
	assert.Empty(t, second.Duration)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSource_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT .* FROM training_providers`).WillReturnError(errors.New("relation does not exist"))

	src, err := NewPostgresSource(db, "training_providers")
	require.NoError(t, err)

	_, err = Load(context.Background(), src)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeQueryExecutionFailed))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewPostgresSource_RejectsUnsafeTableName(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	_, err = NewPostgresSource(db, "providers; DROP TABLE users")
	assert.Error(t, err)

	_, err = NewPostgresSource(db, "catalog.training_providers")
	assert.NoError(t, err)
}

func TestPostgresSource_Replace(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	providers := SeedProviders()[:2]

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM training_providers`).WillReturnResult(sqlmock.NewResult(0, 10))
	for i, p := range providers {
		mock.ExpectExec(`INSERT INTO training_providers`).
			WithArgs(p.ID, p.Name, p.Description, p.Rating,
				sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
				p.DetailURL, *p.Price, p.Duration, string(p.Sponsorship), i).
			WillReturnResult(sqlmock.NewResult(0, 1))
	}
	mock.ExpectCommit()

	src, err := NewPostgresSource(db, "training_providers")
	require.NoError(t, err)
	require.NoError(t, src.Replace(context.Background(), providers))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSource_ReplaceRollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM training_providers`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO training_providers`).WillReturnError(errors.New("check constraint"))
	mock.ExpectRollback()

	src, err := NewPostgresSource(db, "training_providers")
	require.NoError(t, err)

	err = src.Replace(context.Background(), SeedProviders()[:1])
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeQueryExecutionFailed))
	assert.NoError(t, mock.ExpectationsWereMet())
}
