package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"restopos/internal/models"
)

type DiscountRepository struct {
	pool *pgxpool.Pool
}

func NewDiscountRepository(pool *pgxpool.Pool) *DiscountRepository {
	return &DiscountRepository{pool: pool}
}

func (r *DiscountRepository) BulkCreate(ctx context.Context, discounts []*models.Discount) error {
	_, err := r.pool.CopyFrom(
		ctx,
		pgx.Identifier{"discounts"},
		[]string{"id", "title", "code", "type", "amount", "percent", "min_order_amount", "order_types", "restaurant_ids"},
		pgx.CopyFromSlice(len(discounts), func(i int) ([]interface{}, error) {
			return []interface{}{
				discounts[i].ID,
				discounts[i].Title,
				discounts[i].Code,
				string(discounts[i].Type),
				int64(discounts[i].Amount),
				discounts[i].Percent,
				int64(discounts[i].MinOrderAmount),
				orderTypesToStrings(discounts[i].OrderTypes),
				discounts[i].RestaurantIDs,
			}, nil
		}),
	)
	return err
}

func (r *DiscountRepository) Create(ctx context.Context, discount *models.Discount) error {
	query := `
        INSERT INTO discounts (id, title, code, type, amount, percent, min_order_amount, order_types, restaurant_ids)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `
	_, err := r.pool.Exec(ctx, query,
		discount.ID,
		discount.Title,
		discount.Code,
		string(discount.Type),
		int64(discount.Amount),
		discount.Percent,
		int64(discount.MinOrderAmount),
		orderTypesToStrings(discount.OrderTypes),
		discount.RestaurantIDs,
	)
	return err
}

const discountColumns = `id, title, code, type, amount, percent, min_order_amount, order_types, restaurant_ids`

func scanDiscount(row pgx.Row) (*models.Discount, error) {
	discount := &models.Discount{}
	var dtype string
	var amount, minOrder int64
	var orderTypes []string
	err := row.Scan(
		&discount.ID,
		&discount.Title,
		&discount.Code,
		&dtype,
		&amount,
		&discount.Percent,
		&minOrder,
		&orderTypes,
		&discount.RestaurantIDs,
	)
	if err != nil {
		return nil, err
	}
	discount.Type = models.AdjustmentType(dtype)
	discount.Amount = models.Money(amount)
	discount.MinOrderAmount = models.Money(minOrder)
	discount.OrderTypes = stringsToOrderTypes(orderTypes)
	return discount, nil
}

func (r *DiscountRepository) GetAll(ctx context.Context) ([]*models.Discount, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+discountColumns+` FROM discounts`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var discounts []*models.Discount
	for rows.Next() {
		discount, err := scanDiscount(rows)
		if err != nil {
			return nil, err
		}
		discounts = append(discounts, discount)
	}
	return discounts, rows.Err()
}

func (r *DiscountRepository) GetByID(ctx context.Context, id string) (*models.Discount, error) {
	discount, err := scanDiscount(r.pool.QueryRow(ctx, `SELECT `+discountColumns+` FROM discounts WHERE id = $1`, id))
	if err != nil {
		return nil, mapNotFound(err)
	}
	return discount, nil
}

func (r *DiscountRepository) GetByCode(ctx context.Context, code string) (*models.Discount, error) {
	discount, err := scanDiscount(r.pool.QueryRow(ctx, `SELECT `+discountColumns+` FROM discounts WHERE code = $1`, code))
	if err != nil {
		return nil, mapNotFound(err)
	}
	return discount, nil
}

func (r *DiscountRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, "TRUNCATE TABLE discounts CASCADE")
	return err
}

func orderTypesToStrings(types []models.OrderType) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}

func stringsToOrderTypes(values []string) []models.OrderType {
	if len(values) == 0 {
		return nil
	}
	out := make([]models.OrderType, len(values))
	for i, v := range values {
		out[i] = models.OrderType(v)
	}
	return out
}
