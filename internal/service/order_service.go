package service

import (
	"strings"
	"time"

	"github.com/whitebirds/internal/constants"
	"github.com/whitebirds/internal/logger"
	"github.com/whitebirds/internal/models"
	"github.com/whitebirds/internal/repository"

	"gorm.io/gorm"
)

const expectedDateLayout = "2006-01-02"

// OrderService single-product orders
type OrderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	now         func() time.Time
}

// NewOrderService creates the order service
func NewOrderService(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, userRepo repository.UserRepository) *OrderService {
	return &OrderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		userRepo:    userRepo,
		now:         time.Now,
	}
}

// CreateOrderInput order placement fields
type CreateOrderInput struct {
	ProductID   uint
	Quantity    int
	Expected    string
	PaymentMode string
}

// OrderPlacement a placed order with where and whom it ships to
type OrderPlacement struct {
	Order           *models.Order
	DeliveryAddress *models.Address
	Mobile          string
}

// Create places an order for one product
func (s *OrderService) Create(userID uint, input CreateOrderInput) (*OrderPlacement, error) {
	if input.Quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	paymentMode, err := normalizePaymentMode(input.PaymentMode)
	if err != nil {
		return nil, err
	}
	expected, err := s.parseExpected(input.Expected)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	if product.Stock < input.Quantity {
		return nil, ErrInsufficientStock
	}

	user, err := s.userRepo.GetByIDWithAddress(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if !user.HasMobile() {
		return nil, ErrMobileRequired
	}
	if user.Address == nil {
		return nil, ErrAddressRequired
	}

	order := &models.Order{
		UserID:      userID,
		ProductID:   product.ID,
		Quantity:    input.Quantity,
		Expected:    expected,
		Total:       models.LineTotal(product.Price, product.Discount, input.Quantity),
		PaymentMode: paymentMode,
		Status:      constants.OrderStatusPending,
	}
	err = s.productRepo.Transaction(func(tx *gorm.DB) error {
		affected, err := s.productRepo.WithTx(tx).DecrementStock(product.ID, input.Quantity)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrInsufficientStock
		}
		return s.orderRepo.WithTx(tx).Create(order)
	})
	if err != nil {
		return nil, err
	}
	product.Stock -= input.Quantity
	order.Product = product

	logger.Infow("order_created", "user_id", userID, "order_id", order.ID, "product_id", product.ID, "quantity", order.Quantity)
	return &OrderPlacement{
		Order:           order,
		DeliveryAddress: user.Address,
		Mobile:          *user.MobNo,
	}, nil
}

// List orders of the user, newest first
func (s *OrderService) List(userID uint) ([]models.Order, error) {
	orders, err := s.orderRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

// Get an order owned by the user
func (s *OrderService) Get(userID, orderID uint) (*models.Order, error) {
	order, err := s.orderRepo.GetByIDAndUser(orderID, userID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// Cancel moves an order to Cancelled and restores its stock exactly once
func (s *OrderService) Cancel(userID, orderID uint) (*models.Order, error) {
	order, err := s.Get(userID, orderID)
	if err != nil {
		return nil, err
	}
	if !IsOrderCancellable(order.Status) {
		return nil, ErrOrderNotCancellable
	}

	err = s.productRepo.Transaction(func(tx *gorm.DB) error {
		affected, err := s.orderRepo.WithTx(tx).UpdateStatusUnless(order.ID, constants.OrderStatusCancelled, constants.NonCancellableOrderStatuses)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrOrderNotCancellable
		}
		_, err = s.productRepo.WithTx(tx).IncrementStock(order.ProductID, order.Quantity)
		return err
	})
	if err != nil {
		return nil, err
	}

	order.Status = constants.OrderStatusCancelled
	logger.Infow("order_cancelled", "user_id", userID, "order_id", order.ID, "restored", order.Quantity)
	return order, nil
}

// IsOrderCancellable reports whether status still allows a cancel
func IsOrderCancellable(status string) bool {
	for _, blocked := range constants.NonCancellableOrderStatuses {
		if strings.EqualFold(status, blocked) {
			return false
		}
	}
	return true
}

func (s *OrderService) parseExpected(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return s.now(), nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(expectedDateLayout, raw, time.Local); err == nil {
		return t, nil
	}
	return time.Time{}, ErrInvalidExpectedDate
}

func normalizePaymentMode(raw string) (string, error) {
	mode := strings.ToUpper(strings.TrimSpace(raw))
	switch mode {
	case "":
		return constants.PaymentModeCOD, nil
	case constants.PaymentModeCOD, constants.PaymentModeOnline:
		return mode, nil
	default:
		return "", ErrInvalidPaymentMode
	}
}
