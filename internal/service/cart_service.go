package service

import (
	"errors"
	"time"

	"github.com/whitebirds/internal/constants"
	"github.com/whitebirds/internal/logger"
	"github.com/whitebirds/internal/models"
	"github.com/whitebirds/internal/repository"

	"gorm.io/gorm"
)

// CartService cart lines and checkout
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	orderRepo   repository.OrderRepository
	now         func() time.Time
}

// NewCartService creates the cart service
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, orderRepo repository.OrderRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		orderRepo:   orderRepo,
		now:         time.Now,
	}
}

// Add puts a product in the user's cart; quantity below 1 is treated as 1
func (s *CartService) Add(userID, productID uint, quantity int) (*models.CartItem, error) {
	if quantity < 1 {
		quantity = 1
	}
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	existing, err := s.cartRepo.GetByUserAndProduct(userID, productID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCartItemExists
	}

	item := &models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := s.cartRepo.Create(item); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCartItemExists
		}
		return nil, err
	}
	return item, nil
}

// List cart lines of the user, newest first
func (s *CartService) List(userID uint) ([]models.CartItem, error) {
	items, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.CartItem{}
	}
	return items, nil
}

// UpdateQuantity sets the quantity of a line; zero removes it and returns a nil item
func (s *CartService) UpdateQuantity(userID, itemID uint, quantity int) (*models.CartItem, error) {
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}
	item, err := s.cartRepo.GetByIDAndUser(itemID, userID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrCartItemNotFound
	}

	if quantity == 0 {
		if _, err := s.cartRepo.DeleteByIDAndUser(itemID, userID); err != nil {
			return nil, err
		}
		return nil, nil
	}
	if err := s.cartRepo.UpdateQuantity(item.ID, quantity); err != nil {
		return nil, err
	}
	item.Quantity = quantity
	return item, nil
}

// Remove deletes a line owned by the user
func (s *CartService) Remove(userID, itemID uint) error {
	affected, err := s.cartRepo.DeleteByIDAndUser(itemID, userID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

// OrderAll turns every cart line into a COD order and empties the cart, all or nothing
func (s *CartService) OrderAll(userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := s.productRepo.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)
		orderRepo := s.orderRepo.WithTx(tx)

		items, err := cartRepo.ListByUser(userID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrCartEmpty
		}

		for _, item := range items {
			if item.Product == nil {
				return ErrProductNotFound
			}
			if item.Product.Stock < item.Quantity {
				return stockErrorFor(item.Product, item.Quantity)
			}
		}

		now := s.now()
		orders = make([]models.Order, 0, len(items))
		for _, item := range items {
			product := item.Product
			order := models.Order{
				UserID:      userID,
				ProductID:   product.ID,
				Quantity:    item.Quantity,
				Expected:    now.AddDate(0, 0, product.Delivery),
				Total:       models.LineTotal(product.Price, product.Discount, item.Quantity),
				PaymentMode: constants.PaymentModeCOD,
				Status:      constants.OrderStatusCheckoutPending,
			}
			if err := orderRepo.Create(&order); err != nil {
				return err
			}
			affected, err := productRepo.DecrementStock(product.ID, item.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				return stockErrorFor(product, item.Quantity)
			}
			orders = append(orders, order)
		}

		return cartRepo.ClearByUser(userID)
	})
	if err != nil {
		return nil, err
	}
	logger.Infow("cart_order_all", "user_id", userID, "orders", len(orders))
	return orders, nil
}

func stockErrorFor(product *models.Product, requested int) *StockError {
	return &StockError{
		ProductID:    product.ID,
		ProductTitle: product.Title,
		Requested:    requested,
		Available:    product.Stock,
	}
}
