package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"restopos/internal/models"
)

type CustomerRepository struct {
	pool *pgxpool.Pool
}

func NewCustomerRepository(pool *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{pool: pool}
}

func (r *CustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	query := `
        INSERT INTO customers (id, phone, name, bonus_balance, order_count, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `
	_, err := r.pool.Exec(ctx, query,
		customer.ID,
		customer.Phone,
		customer.Name,
		int64(customer.BonusBalance),
		customer.OrderCount,
		customer.CreatedAt,
	)
	return err
}

func (r *CustomerRepository) GetByPhone(ctx context.Context, phone string) (*models.Customer, error) {
	customer := &models.Customer{}
	var bonus int64
	err := r.pool.QueryRow(ctx,
		`SELECT id, phone, name, bonus_balance, order_count, created_at FROM customers WHERE phone = $1`, phone).
		Scan(&customer.ID, &customer.Phone, &customer.Name, &bonus, &customer.OrderCount, &customer.CreatedAt)
	if err != nil {
		return nil, mapNotFound(err)
	}
	customer.BonusBalance = models.Money(bonus)
	return customer, nil
}

func (r *CustomerRepository) AddBonus(ctx context.Context, id string, amount models.Money) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE customers SET bonus_balance = bonus_balance + $2 WHERE id = $1`, id, int64(amount))
	return err
}

func (r *CustomerRepository) IncrementOrders(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE customers SET order_count = order_count + 1 WHERE id = $1`, id)
	return err
}
