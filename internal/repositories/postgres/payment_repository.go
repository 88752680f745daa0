package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"restopos/internal/models"
)

type PaymentIntegrationRepository struct {
	pool *pgxpool.Pool
}

func NewPaymentIntegrationRepository(pool *pgxpool.Pool) *PaymentIntegrationRepository {
	return &PaymentIntegrationRepository{pool: pool}
}

func (r *PaymentIntegrationRepository) Create(ctx context.Context, integration *models.PaymentIntegration) error {
	query := `
        INSERT INTO payment_integrations (id, title, provider, credentials, enabled)
        VALUES ($1, $2, $3, $4, $5)
    `
	_, err := r.pool.Exec(ctx, query,
		integration.ID,
		integration.Title,
		string(integration.Provider),
		integration.Credentials,
		integration.Enabled,
	)
	return err
}

func (r *PaymentIntegrationRepository) Update(ctx context.Context, integration *models.PaymentIntegration) error {
	query := `
        UPDATE payment_integrations SET title = $2, provider = $3, credentials = $4, enabled = $5
        WHERE id = $1
    `
	_, err := r.pool.Exec(ctx, query,
		integration.ID,
		integration.Title,
		string(integration.Provider),
		integration.Credentials,
		integration.Enabled,
	)
	return err
}

func (r *PaymentIntegrationRepository) GetAll(ctx context.Context) ([]*models.PaymentIntegration, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, provider, credentials, enabled FROM payment_integrations`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var integrations []*models.PaymentIntegration
	for rows.Next() {
		integration := &models.PaymentIntegration{}
		var provider string
		if err := rows.Scan(&integration.ID, &integration.Title, &provider, &integration.Credentials, &integration.Enabled); err != nil {
			return nil, err
		}
		integration.Provider = models.PaymentProvider(provider)
		integrations = append(integrations, integration)
	}
	return integrations, rows.Err()
}

func (r *PaymentIntegrationRepository) GetByID(ctx context.Context, id string) (*models.PaymentIntegration, error) {
	integration := &models.PaymentIntegration{}
	var provider string
	err := r.pool.QueryRow(ctx,
		`SELECT id, title, provider, credentials, enabled FROM payment_integrations WHERE id = $1`, id).
		Scan(&integration.ID, &integration.Title, &provider, &integration.Credentials, &integration.Enabled)
	if err != nil {
		return nil, mapNotFound(err)
	}
	integration.Provider = models.PaymentProvider(provider)
	return integration, nil
}

func (r *PaymentIntegrationRepository) SetEnabled(ctx context.Context, id string, enabled bool) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE payment_integrations SET enabled = $2 WHERE id = $1`, id, enabled)
	return err
}

func (r *PaymentIntegrationRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM payment_integrations WHERE id = $1`, id)
	return err
}
