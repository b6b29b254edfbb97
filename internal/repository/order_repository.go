package repository

import (
	"errors"
	"strings"

	"github.com/whitebirds/internal/models"

	"gorm.io/gorm"
)

// OrderRepository order data access
type OrderRepository interface {
	Create(order *models.Order) error
	GetByIDAndUser(id, userID uint) (*models.Order, error)
	ListByUser(userID uint) ([]models.Order, error)
	UpdateStatusUnless(id uint, status string, blocked []string) (int64, error)
	WithTx(tx *gorm.DB) OrderRepository
}

// GormOrderRepository GORM implementation
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates the order repository
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx binds a transaction
func (r *GormOrderRepository) WithTx(tx *gorm.DB) OrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

// Create inserts an order
func (r *GormOrderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

// GetByIDAndUser finds an order owned by the user, with its product
func (r *GormOrderRepository) GetByIDAndUser(id, userID uint) (*models.Order, error) {
	var order models.Order
	err := r.db.
		Preload("Product").
		Preload("Product.Images", orderImages).
		Where("id = ? AND user_id = ?", id, userID).
		First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// ListByUser orders of the user, newest first
func (r *GormOrderRepository) ListByUser(userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.
		Preload("Product").
		Preload("Product.Images", orderImages).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateStatusUnless moves the order to status unless its current status is in blocked.
// Blocked statuses are compared case-insensitively.
func (r *GormOrderRepository) UpdateStatusUnless(id uint, status string, blocked []string) (int64, error) {
	query := r.db.Model(&models.Order{}).Where("id = ?", id)
	if len(blocked) > 0 {
		lowered := make([]string, 0, len(blocked))
		for _, s := range blocked {
			lowered = append(lowered, strings.ToLower(s))
		}
		query = query.Where("LOWER(status) NOT IN ?", lowered)
	}
	result := query.Update("status", status)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
