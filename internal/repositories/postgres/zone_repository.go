package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"restopos/internal/models"
)

type ZoneRepository struct {
	pool *pgxpool.Pool
}

func NewZoneRepository(pool *pgxpool.Pool) *ZoneRepository {
	return &ZoneRepository{pool: pool}
}

func (r *ZoneRepository) BulkCreate(ctx context.Context, zones []*models.DeliveryZone) error {
	_, err := r.pool.CopyFrom(
		ctx,
		pgx.Identifier{"delivery_zones"},
		[]string{"id", "restaurant_id", "title", "price", "min_order", "lat", "lon", "radius_km"},
		pgx.CopyFromSlice(len(zones), func(i int) ([]interface{}, error) {
			return []interface{}{
				zones[i].ID,
				zones[i].RestaurantID,
				zones[i].Title,
				int64(zones[i].Price),
				int64(zones[i].MinOrder),
				zones[i].Center.Lat,
				zones[i].Center.Lon,
				zones[i].RadiusKm,
			}, nil
		}),
	)
	return err
}

func (r *ZoneRepository) Create(ctx context.Context, zone *models.DeliveryZone) error {
	query := `
        INSERT INTO delivery_zones (id, restaurant_id, title, price, min_order, lat, lon, radius_km)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `
	_, err := r.pool.Exec(ctx, query,
		zone.ID,
		zone.RestaurantID,
		zone.Title,
		int64(zone.Price),
		int64(zone.MinOrder),
		zone.Center.Lat,
		zone.Center.Lon,
		zone.RadiusKm,
	)
	return err
}

func (r *ZoneRepository) GetByRestaurantID(ctx context.Context, restaurantID string) ([]*models.DeliveryZone, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, restaurant_id, title, price, min_order, lat, lon, radius_km
         FROM delivery_zones WHERE restaurant_id = $1`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var zones []*models.DeliveryZone
	for rows.Next() {
		zone := &models.DeliveryZone{}
		var price, minOrder int64
		err := rows.Scan(
			&zone.ID,
			&zone.RestaurantID,
			&zone.Title,
			&price,
			&minOrder,
			&zone.Center.Lat,
			&zone.Center.Lon,
			&zone.RadiusKm,
		)
		if err != nil {
			return nil, err
		}
		zone.Price = models.Money(price)
		zone.MinOrder = models.Money(minOrder)
		zones = append(zones, zone)
	}
	return zones, rows.Err()
}

func (r *ZoneRepository) DeleteAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, "TRUNCATE TABLE delivery_zones CASCADE")
	return err
}
