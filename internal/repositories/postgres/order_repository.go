package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"restopos/internal/models"
	"restopos/internal/repositories"
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create persists the order, its items and applied adjustments in one
// transaction. The daily order number is counted inside the transaction;
// two concurrent submissions can still pick the same number, in which case
// the unique constraint fires and the insert retries with a fresh count.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	var err error
	for attempt := 0; attempt < 3; attempt++ {
		err = r.create(ctx, order)
		if !isUniqueViolation(err) {
			return err
		}
	}
	return err
}

func (r *OrderRepository) create(ctx context.Context, order *models.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	day := order.CreatedAt.UTC().Format("20060102")
	var countToday int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM orders WHERE number LIKE $1`, "ORD_"+day+"_%").Scan(&countToday)
	if err != nil {
		return err
	}
	order.Number = fmt.Sprintf("ORD_%s_%03d", day, countToday+1)

	_, err = tx.Exec(ctx, `
        INSERT INTO orders (id, number, restaurant_id, type, status, delivery_zone_id,
            address, table_number, customer_phone, comment, base_price, total, savings, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
    `,
		order.ID,
		order.Number,
		order.RestaurantID,
		string(order.Type),
		order.Status,
		order.DeliveryZoneID,
		order.Address,
		order.TableNumber,
		order.CustomerPhone,
		order.Comment,
		int64(order.BasePrice),
		int64(order.Total),
		int64(order.Savings),
		order.CreatedAt,
	)
	if err != nil {
		return err
	}

	for _, item := range order.Items {
		_, err = tx.Exec(ctx, `
            INSERT INTO order_items (order_id, product_id, product_name, quantity, unit_price, additive_ids, line_total)
            VALUES ($1, $2, $3, $4, $5, $6, $7)
        `,
			order.ID,
			item.ProductID,
			item.ProductName,
			item.Quantity,
			int64(item.UnitPrice),
			item.AdditiveIDs,
			int64(item.LineTotal),
		)
		if err != nil {
			return err
		}
	}

	for _, adj := range order.Adjustments {
		_, err = tx.Exec(ctx, `
            INSERT INTO order_adjustments (order_id, adjustment_id, title, amount, is_discount)
            VALUES ($1, $2, $3, $4, $5)
        `,
			order.ID,
			adj.ID,
			adj.Title,
			int64(adj.Amount),
			adj.IsDiscount,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE orders SET status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

const orderColumns = `id, number, restaurant_id, type, status, delivery_zone_id,
    address, table_number, customer_phone, comment, base_price, total, savings, created_at`

func (r *OrderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	order := &models.Order{}
	var otype string
	var basePrice, total, savings int64
	err := r.pool.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id).Scan(
		&order.ID,
		&order.Number,
		&order.RestaurantID,
		&otype,
		&order.Status,
		&order.DeliveryZoneID,
		&order.Address,
		&order.TableNumber,
		&order.CustomerPhone,
		&order.Comment,
		&basePrice,
		&total,
		&savings,
		&order.CreatedAt,
	)
	if err != nil {
		return nil, mapNotFound(err)
	}
	order.Type = models.OrderType(otype)
	order.BasePrice = models.Money(basePrice)
	order.Total = models.Money(total)
	order.Savings = models.Money(savings)

	if err := r.loadItems(ctx, order); err != nil {
		return nil, err
	}
	if err := r.loadAdjustments(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

func (r *OrderRepository) loadItems(ctx context.Context, order *models.Order) error {
	rows, err := r.pool.Query(ctx, `
        SELECT product_id, product_name, quantity, unit_price, additive_ids, line_total
        FROM order_items WHERE order_id = $1 ORDER BY id
    `, order.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		var unitPrice, lineTotal int64
		err := rows.Scan(&item.ProductID, &item.ProductName, &item.Quantity, &unitPrice, &item.AdditiveIDs, &lineTotal)
		if err != nil {
			return err
		}
		item.UnitPrice = models.Money(unitPrice)
		item.LineTotal = models.Money(lineTotal)
		order.Items = append(order.Items, item)
	}
	return rows.Err()
}

func (r *OrderRepository) loadAdjustments(ctx context.Context, order *models.Order) error {
	rows, err := r.pool.Query(ctx, `
        SELECT adjustment_id, title, amount, is_discount
        FROM order_adjustments WHERE order_id = $1 ORDER BY id
    `, order.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var adj models.AppliedAdjustment
		var amount int64
		if err := rows.Scan(&adj.ID, &adj.Title, &amount, &adj.IsDiscount); err != nil {
			return err
		}
		adj.Amount = models.Money(amount)
		order.Adjustments = append(order.Adjustments, adj)
	}
	return rows.Err()
}

// ListBetween returns orders created in [from, to), without their items.
// Used by the sales report export.
func (r *OrderRepository) ListBetween(ctx context.Context, from, to time.Time) ([]*models.Order, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE created_at >= $1 AND created_at < $2 ORDER BY created_at`,
		from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		order := &models.Order{}
		var otype string
		var basePrice, total, savings int64
		err := rows.Scan(
			&order.ID,
			&order.Number,
			&order.RestaurantID,
			&otype,
			&order.Status,
			&order.DeliveryZoneID,
			&order.Address,
			&order.TableNumber,
			&order.CustomerPhone,
			&order.Comment,
			&basePrice,
			&total,
			&savings,
			&order.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		order.Type = models.OrderType(otype)
		order.BasePrice = models.Money(basePrice)
		order.Total = models.Money(total)
		order.Savings = models.Money(savings)
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func (r *OrderRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM orders").Scan(&count)
	return count, err
}
