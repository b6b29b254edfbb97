package repository

import (
	"errors"
	"time"

	"github.com/whitebirds/internal/models"

	"gorm.io/gorm"
)

// ReviewRepository review data access
type ReviewRepository interface {
	CountByUserAndProductBetween(userID, productID uint, from, to time.Time) (int64, error)
	Create(review *models.Review) error
	GetByIDWithRelations(id uint) (*models.Review, error)
	WithTx(tx *gorm.DB) ReviewRepository
}

// GormReviewRepository GORM implementation
type GormReviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository creates the review repository
func NewReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// WithTx binds a transaction
func (r *GormReviewRepository) WithTx(tx *gorm.DB) ReviewRepository {
	if tx == nil {
		return r
	}
	return &GormReviewRepository{db: tx}
}

// CountByUserAndProductBetween counts reviews created in [from, to]
func (r *GormReviewRepository) CountByUserAndProductBetween(userID, productID uint, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.Review{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Where("created_at >= ? AND created_at <= ?", from, to).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// Create inserts a review
func (r *GormReviewRepository) Create(review *models.Review) error {
	return r.db.Create(review).Error
}

// GetByIDWithRelations loads a review with its author and product
func (r *GormReviewRepository) GetByIDWithRelations(id uint) (*models.Review, error) {
	var review models.Review
	err := r.db.
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name")
		}).
		Preload("Product", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "title")
		}).
		First(&review, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}
