package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"restopos/internal/models"
)

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

func (r *ProductRepository) BulkCreate(ctx context.Context, products []*models.Product) error {
	_, err := r.pool.CopyFrom(
		ctx,
		pgx.Identifier{"products"},
		[]string{"id", "network_id", "name", "description", "category", "base_price"},
		pgx.CopyFromSlice(len(products), func(i int) ([]interface{}, error) {
			return []interface{}{
				products[i].ID,
				products[i].NetworkID,
				products[i].Name,
				products[i].Description,
				products[i].Category,
				int64(products[i].BasePrice),
			}, nil
		}),
	)
	if err != nil {
		return err
	}

	for _, p := range products {
		if err := r.insertDetails(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	query := `
        INSERT INTO products (id, network_id, name, description, category, base_price)
        VALUES ($1, $2, $3, $4, $5, $6)
    `
	_, err := r.pool.Exec(ctx, query,
		product.ID,
		product.NetworkID,
		product.Name,
		product.Description,
		product.Category,
		int64(product.BasePrice),
	)
	if err != nil {
		return err
	}
	return r.insertDetails(ctx, product)
}

func (r *ProductRepository) insertDetails(ctx context.Context, product *models.Product) error {
	for _, rp := range product.RestaurantPrices {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO restaurant_prices (product_id, restaurant_id, price, is_stop_list) VALUES ($1, $2, $3, $4)`,
			product.ID, rp.RestaurantID, int64(rp.Price), rp.IsStopList,
		)
		if err != nil {
			return err
		}
	}
	for _, a := range product.Additives {
		_, err := r.pool.Exec(ctx,
			`INSERT INTO additives (id, product_id, name, price) VALUES ($1, $2, $3, $4)`,
			a.ID, product.ID, a.Name, int64(a.Price),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *ProductRepository) GetAll(ctx context.Context) (map[string]*models.Product, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, network_id, name, description, category, base_price FROM products`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make(map[string]*models.Product)
	for rows.Next() {
		product := &models.Product{}
		var basePrice int64
		err := rows.Scan(
			&product.ID,
			&product.NetworkID,
			&product.Name,
			&product.Description,
			&product.Category,
			&basePrice,
		)
		if err != nil {
			return nil, err
		}
		product.BasePrice = models.Money(basePrice)
		products[product.ID] = product
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadRestaurantPrices(ctx, products); err != nil {
		return nil, err
	}
	if err := r.loadAdditives(ctx, products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductRepository) loadRestaurantPrices(ctx context.Context, products map[string]*models.Product) error {
	rows, err := r.pool.Query(ctx,
		`SELECT product_id, restaurant_id, price, is_stop_list FROM restaurant_prices`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var productID string
		var rp models.RestaurantPrice
		var price int64
		if err := rows.Scan(&productID, &rp.RestaurantID, &price, &rp.IsStopList); err != nil {
			return err
		}
		rp.Price = models.Money(price)
		if p, ok := products[productID]; ok {
			p.RestaurantPrices = append(p.RestaurantPrices, rp)
		}
	}
	return rows.Err()
}

func (r *ProductRepository) loadAdditives(ctx context.Context, products map[string]*models.Product) error {
	rows, err := r.pool.Query(ctx, `SELECT id, product_id, name, price FROM additives`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var productID string
		var a models.Additive
		var price int64
		if err := rows.Scan(&a.ID, &productID, &a.Name, &price); err != nil {
			return err
		}
		a.Price = models.Money(price)
		if p, ok := products[productID]; ok {
			p.Additives = append(p.Additives, a)
		}
	}
	return rows.Err()
}

func (r *ProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	product := &models.Product{}
	var basePrice int64
	err := r.pool.QueryRow(ctx,
		`SELECT id, network_id, name, description, category, base_price FROM products WHERE id = $1`, id).
		Scan(&product.ID, &product.NetworkID, &product.Name, &product.Description, &product.Category, &basePrice)
	if err != nil {
		return nil, mapNotFound(err)
	}
	product.BasePrice = models.Money(basePrice)

	single := map[string]*models.Product{product.ID: product}
	if err := r.loadRestaurantPrices(ctx, single); err != nil {
		return nil, err
	}
	if err := r.loadAdditives(ctx, single); err != nil {
		return nil, err
	}
	return product, nil
}

func (r *ProductRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM products").Scan(&count)
	return count, err
}

func (r *ProductRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, "TRUNCATE TABLE products CASCADE")
	return err
}
