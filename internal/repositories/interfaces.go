package repositories

import (
	"context"
	"errors"
	"time"

	"restopos/internal/models"
)

// ErrNotFound is returned by lookups when no row matches. Callers treat it
// as a non-fatal condition, distinct from infrastructure failures.
var ErrNotFound = errors.New("not found")

type RestaurantRepository interface {
	CreateNetwork(ctx context.Context, network *models.Network) error
	BulkCreate(ctx context.Context, restaurants []*models.Restaurant) error
	Create(ctx context.Context, restaurant *models.Restaurant) error
	GetAll(ctx context.Context) (map[string]*models.Restaurant, error)
	GetByID(ctx context.Context, id string) (*models.Restaurant, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

type ProductRepository interface {
	BulkCreate(ctx context.Context, products []*models.Product) error
	Create(ctx context.Context, product *models.Product) error
	GetAll(ctx context.Context) (map[string]*models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) error
}

type ZoneRepository interface {
	BulkCreate(ctx context.Context, zones []*models.DeliveryZone) error
	Create(ctx context.Context, zone *models.DeliveryZone) error
	GetByRestaurantID(ctx context.Context, restaurantID string) ([]*models.DeliveryZone, error)
	DeleteAll(ctx context.Context) error
}

type DiscountRepository interface {
	BulkCreate(ctx context.Context, discounts []*models.Discount) error
	Create(ctx context.Context, discount *models.Discount) error
	GetAll(ctx context.Context) ([]*models.Discount, error)
	GetByID(ctx context.Context, id string) (*models.Discount, error)
	GetByCode(ctx context.Context, code string) (*models.Discount, error)
	DeleteAll(ctx context.Context) error
}

type SurchargeRepository interface {
	BulkCreate(ctx context.Context, surcharges []*models.Surcharge) error
	Create(ctx context.Context, surcharge *models.Surcharge) error
	GetAll(ctx context.Context) ([]*models.Surcharge, error)
	DeleteAll(ctx context.Context) error
}

type OrderRepository interface {
	// Create persists the order with its items and applied adjustments in
	// one transaction and assigns the daily order number.
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id string) (*models.Order, error)
	UpdateStatus(ctx context.Context, id, status string) error
	ListBetween(ctx context.Context, from, to time.Time) ([]*models.Order, error)
	Count(ctx context.Context) (int, error)
}

type PaymentIntegrationRepository interface {
	Create(ctx context.Context, integration *models.PaymentIntegration) error
	Update(ctx context.Context, integration *models.PaymentIntegration) error
	GetAll(ctx context.Context) ([]*models.PaymentIntegration, error)
	GetByID(ctx context.Context, id string) (*models.PaymentIntegration, error)
	SetEnabled(ctx context.Context, id string, enabled bool) error
	Delete(ctx context.Context, id string) error
}

type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	GetByPhone(ctx context.Context, phone string) (*models.Customer, error)
	AddBonus(ctx context.Context, id string, amount models.Money) error
	IncrementOrders(ctx context.Context, id string) error
}
