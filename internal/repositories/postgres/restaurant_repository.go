package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"restopos/internal/models"
)

type RestaurantRepository struct {
	pool *pgxpool.Pool
}

func NewRestaurantRepository(pool *pgxpool.Pool) *RestaurantRepository {
	return &RestaurantRepository{pool: pool}
}

func (r *RestaurantRepository) CreateNetwork(ctx context.Context, network *models.Network) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO networks (id, name) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`,
		network.ID, network.Name)
	return err
}

func (r *RestaurantRepository) BulkCreate(ctx context.Context, restaurants []*models.Restaurant) error {
	_, err := r.pool.CopyFrom(
		ctx,
		pgx.Identifier{"restaurants"},
		[]string{"id", "network_id", "name", "phone", "town", "address", "lat", "lon", "is_active"},
		pgx.CopyFromSlice(len(restaurants), func(i int) ([]interface{}, error) {
			return []interface{}{
				restaurants[i].ID,
				restaurants[i].NetworkID,
				restaurants[i].Name,
				restaurants[i].Phone,
				restaurants[i].Town,
				restaurants[i].Address,
				restaurants[i].Location.Lat,
				restaurants[i].Location.Lon,
				restaurants[i].IsActive,
			}, nil
		}),
	)
	return err
}

func (r *RestaurantRepository) Create(ctx context.Context, restaurant *models.Restaurant) error {
	query := `
        INSERT INTO restaurants (id, network_id, name, phone, town, address, lat, lon, is_active)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
    `
	_, err := r.pool.Exec(ctx, query,
		restaurant.ID,
		restaurant.NetworkID,
		restaurant.Name,
		restaurant.Phone,
		restaurant.Town,
		restaurant.Address,
		restaurant.Location.Lat,
		restaurant.Location.Lon,
		restaurant.IsActive,
	)
	return err
}

func (r *RestaurantRepository) GetAll(ctx context.Context) (map[string]*models.Restaurant, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, network_id, name, phone, town, address, lat, lon, is_active FROM restaurants`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	restaurants := make(map[string]*models.Restaurant)
	for rows.Next() {
		restaurant := &models.Restaurant{}
		err := rows.Scan(
			&restaurant.ID,
			&restaurant.NetworkID,
			&restaurant.Name,
			&restaurant.Phone,
			&restaurant.Town,
			&restaurant.Address,
			&restaurant.Location.Lat,
			&restaurant.Location.Lon,
			&restaurant.IsActive,
		)
		if err != nil {
			return nil, err
		}
		restaurants[restaurant.ID] = restaurant
	}
	return restaurants, rows.Err()
}

func (r *RestaurantRepository) GetByID(ctx context.Context, id string) (*models.Restaurant, error) {
	restaurant := &models.Restaurant{}
	err := r.pool.QueryRow(ctx,
		`SELECT id, network_id, name, phone, town, address, lat, lon, is_active FROM restaurants WHERE id = $1`, id).
		Scan(
			&restaurant.ID,
			&restaurant.NetworkID,
			&restaurant.Name,
			&restaurant.Phone,
			&restaurant.Town,
			&restaurant.Address,
			&restaurant.Location.Lat,
			&restaurant.Location.Lon,
			&restaurant.IsActive,
		)
	if err != nil {
		return nil, mapNotFound(err)
	}
	return restaurant, nil
}

func (r *RestaurantRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM restaurants").Scan(&count)
	return count, err
}

func (r *RestaurantRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, "TRUNCATE TABLE restaurants CASCADE")
	return err
}
