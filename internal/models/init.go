package models

import (
	"errors"
	"strings"

	"github.com/whitebirds/internal/logger"

	"gorm.io/gorm"
)

// SeedProducts inserts catalog products whose title is not present yet.
// Images and highlights are created together with their product.
func SeedProducts(db *gorm.DB, products []Product) (int, error) {
	if db == nil {
		return 0, errors.New("db is nil")
	}
	created := 0
	for i := range products {
		product := products[i]
		title := strings.TrimSpace(product.Title)
		if title == "" {
			continue
		}
		var count int64
		if err := db.Model(&Product{}).Where("title = ?", title).Count(&count).Error; err != nil {
			return created, err
		}
		if count > 0 {
			logger.Debugw("seed_product_skipped", "title", title)
			continue
		}
		if err := db.Create(&product).Error; err != nil {
			return created, err
		}
		created++
		logger.Infow("seed_product_created", "product_id", product.ID, "title", title)
	}
	return created, nil
}
