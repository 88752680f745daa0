package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"restopos/internal/models"
)

type SurchargeRepository struct {
	pool *pgxpool.Pool
}

func NewSurchargeRepository(pool *pgxpool.Pool) *SurchargeRepository {
	return &SurchargeRepository{pool: pool}
}

func (r *SurchargeRepository) BulkCreate(ctx context.Context, surcharges []*models.Surcharge) error {
	_, err := r.pool.CopyFrom(
		ctx,
		pgx.Identifier{"surcharges"},
		[]string{"id", "title", "type", "amount", "percent"},
		pgx.CopyFromSlice(len(surcharges), func(i int) ([]interface{}, error) {
			return []interface{}{
				surcharges[i].ID,
				surcharges[i].Title,
				string(surcharges[i].Type),
				int64(surcharges[i].Amount),
				surcharges[i].Percent,
			}, nil
		}),
	)
	return err
}

func (r *SurchargeRepository) Create(ctx context.Context, surcharge *models.Surcharge) error {
	query := `INSERT INTO surcharges (id, title, type, amount, percent) VALUES ($1, $2, $3, $4, $5)`
	_, err := r.pool.Exec(ctx, query,
		surcharge.ID,
		surcharge.Title,
		string(surcharge.Type),
		int64(surcharge.Amount),
		surcharge.Percent,
	)
	return err
}

func (r *SurchargeRepository) GetAll(ctx context.Context) ([]*models.Surcharge, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, title, type, amount, percent FROM surcharges`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var surcharges []*models.Surcharge
	for rows.Next() {
		surcharge := &models.Surcharge{}
		var stype string
		var amount int64
		if err := rows.Scan(&surcharge.ID, &surcharge.Title, &stype, &amount, &surcharge.Percent); err != nil {
			return nil, err
		}
		surcharge.Type = models.AdjustmentType(stype)
		surcharge.Amount = models.Money(amount)
		surcharges = append(surcharges, surcharge)
	}
	return surcharges, rows.Err()
}

func (r *SurchargeRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, "TRUNCATE TABLE surcharges CASCADE")
	return err
}
