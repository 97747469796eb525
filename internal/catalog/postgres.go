package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"

	apperrors "rto-workers/internal/common/errors"
	"rto-workers/internal/models"

	"github.com/lib/pq"
)

var tableNamePattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*(\.[a-z_][a-z0-9_]*)?$`)

// PostgresSource reads providers from a table shaped like
// migrations/001_training_providers.sql.
type PostgresSource struct {
	db    *sql.DB
	table string
}

func NewPostgresSource(db *sql.DB, table string) (*PostgresSource, error) {
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid catalog table name %q", table)
	}
	return &PostgresSource{db: db, table: table}, nil
}

func (s *PostgresSource) Name() string { return "postgres" }

func (s *PostgresSource) Load(ctx context.Context) ([]models.Provider, error) {
	query := fmt.Sprintf(`SELECT id, name, description, rating, delivery_modes, regions, features,
		detail_url, price, duration, sponsorship_tier
		FROM %s ORDER BY sort_order, id`, s.table)

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("load_catalog", err)
	}
	defer rows.Close()

	var providers []models.Provider
	for rows.Next() {
		var (
			p           models.Provider
			description sql.NullString
			detailURL   sql.NullString
			price       sql.NullFloat64
			duration    sql.NullString
			tier        sql.NullString
			modes       []string
		)

		if err := rows.Scan(
			&p.ID, &p.Name, &description, &p.Rating,
			pq.Array(&modes), pq.Array(&p.Regions), pq.Array(&p.Features),
			&detailURL, &price, &duration, &tier,
		); err != nil {
			return nil, apperrors.NewQueryExecutionFailedError("scan_provider", err)
		}

		p.Description = description.String
		p.DetailURL = detailURL.String
		p.Duration = duration.String
		p.Sponsorship = models.SponsorshipTier(tier.String)
		if price.Valid {
			p.Price = models.PriceOf(price.Float64)
		}
		for _, m := range modes {
			p.DeliveryModes = append(p.DeliveryModes, models.DeliveryMode(m))
		}

		providers = append(providers, p)
	}

	if err := rows.Err(); err != nil {
		return nil, apperrors.NewQueryExecutionFailedError("iterate_providers", err)
	}

	return providers, nil
}

// Replace swaps the table contents for providers in one transaction. Row order
// becomes sort_order.
func (s *PostgresSource) Replace(ctx context.Context, providers []models.Provider) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.NewDatabaseConnectionFailedError(err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", s.table)); err != nil {
		return apperrors.NewQueryExecutionFailedError("clear_catalog", err)
	}

	insert := fmt.Sprintf(`INSERT INTO %s (id, name, description, rating, delivery_modes, regions,
		features, detail_url, price, duration, sponsorship_tier, sort_order)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`, s.table)

	for i, p := range providers {
		modes := make([]string, len(p.DeliveryModes))
		for j, m := range p.DeliveryModes {
			modes[j] = string(m)
		}

		var price sql.NullFloat64
		if p.Price != nil {
			price = sql.NullFloat64{Float64: *p.Price, Valid: true}
		}
		duration := sql.NullString{String: p.Duration, Valid: p.Duration != ""}

		if _, err := tx.ExecContext(ctx, insert,
			p.ID, p.Name, p.Description, p.Rating,
			pq.Array(modes), pq.Array(p.Regions), pq.Array(p.Features),
			p.DetailURL, price, duration, string(p.Sponsorship), i,
		); err != nil {
			return apperrors.NewQueryExecutionFailedError("insert_provider", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewQueryExecutionFailedError("commit_catalog", err)
	}
	return nil
}
