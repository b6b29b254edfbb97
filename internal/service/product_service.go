package service

import (
	"github.com/whitebirds/internal/models"
	"github.com/whitebirds/internal/repository"
)

// ProductService catalog reads
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates the product service
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// List every product with images, reviews and highlights
func (s *ProductService) List() ([]models.Product, error) {
	products, err := s.productRepo.ListWithDetails()
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].Images == nil {
			products[i].Images = []models.Image{}
		}
		if products[i].Reviews == nil {
			products[i].Reviews = []models.Review{}
		}
		if products[i].Highlights == nil {
			products[i].Highlights = []models.Highlight{}
		}
	}
	return products, nil
}
