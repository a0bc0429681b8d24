package repositories

import (
	"time"

	"github.com/shashiranjanraj/pizzeria/app/models"
	"github.com/shashiranjanraj/pizzeria/pkg/cache"
	"gorm.io/gorm"
)

// listCacheKey caches the full order list served to staff. Any write to the
// orders table invalidates it.
const (
	listCacheKey = "orders:all"
	listCacheTTL = 30 * time.Second
)

// OrderRepository handles database operations for Order, with a Redis
// read-through on the full listing.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create persists a new order.
func (r *OrderRepository) Create(order *models.Order) error {
	if err := r.db.Create(order).Error; err != nil {
		return err
	}
	cache.Del(listCacheKey) //nolint:errcheck
	return nil
}

// All returns every order, newest first. Served from Redis when the cached
// list is still fresh.
func (r *OrderRepository) All() ([]models.Order, error) {
	var orders []models.Order
	if cache.Get(listCacheKey, &orders) {
		return orders, nil
	}

	if err := r.db.Order("id desc").Find(&orders).Error; err != nil {
		return nil, err
	}

	cache.Set(listCacheKey, orders, listCacheTTL) //nolint:errcheck
	return orders, nil
}

// FindByID looks up an order by primary key.
func (r *OrderRepository) FindByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByUser returns all orders placed by the given user, newest first.
func (r *OrderRepository) FindByUser(userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Where("user_id = ?", userID).Order("id desc").Find(&orders).Error
	return orders, err
}

// Update persists changes to an existing order.
func (r *OrderRepository) Update(order *models.Order) error {
	if err := r.db.Save(order).Error; err != nil {
		return err
	}
	cache.Del(listCacheKey) //nolint:errcheck
	return nil
}

// Delete removes an order.
func (r *OrderRepository) Delete(order *models.Order) error {
	if err := r.db.Delete(order).Error; err != nil {
		return err
	}
	cache.Del(listCacheKey) //nolint:errcheck
	return nil
}
