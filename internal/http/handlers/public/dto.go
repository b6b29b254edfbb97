package public

import (
	"time"

	"github.com/whitebirds/internal/models"
)

// CartProduct product summary on a cart line
type CartProduct struct {
	ID       uint         `json:"id"`
	Title    string       `json:"title"`
	Price    models.Money `json:"price"`
	Discount int          `json:"discount"`
	Stock    int          `json:"stock"`
	Image    string       `json:"image"`
}

// CartItemResponse cart line
type CartItemResponse struct {
	ID        uint         `json:"id"`
	UserID    uint         `json:"userId"`
	ProductID uint         `json:"productId"`
	Quantity  int          `json:"quantity"`
	CreatedAt time.Time    `json:"createdAt"`
	Product   *CartProduct `json:"product,omitempty"`
}

// OrderProduct product summary on an order
type OrderProduct struct {
	ID       uint         `json:"id"`
	Title    string       `json:"title"`
	Price    models.Money `json:"price"`
	Discount int          `json:"discount"`
	Image    string       `json:"image"`
}

// OrderResponse order with its product summary
type OrderResponse struct {
	ID          uint          `json:"id"`
	UserID      uint          `json:"userId"`
	ProductID   uint          `json:"productId"`
	Quantity    int           `json:"quantity"`
	Expected    time.Time     `json:"expected"`
	Total       models.Money  `json:"total"`
	PaymentMode string        `json:"paymentMode"`
	Status      string        `json:"status"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
	Product     *OrderProduct `json:"product,omitempty"`
}

func toCartItemResponse(item *models.CartItem) CartItemResponse {
	resp := CartItemResponse{
		ID:        item.ID,
		UserID:    item.UserID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
		CreatedAt: item.CreatedAt,
	}
	if p := item.Product; p != nil {
		resp.Product = &CartProduct{
			ID:       p.ID,
			Title:    p.Title,
			Price:    p.Price,
			Discount: p.Discount,
			Stock:    p.Stock,
			Image:    p.PrimaryImageURL(),
		}
	}
	return resp
}

func toOrderResponse(order *models.Order) OrderResponse {
	resp := OrderResponse{
		ID:          order.ID,
		UserID:      order.UserID,
		ProductID:   order.ProductID,
		Quantity:    order.Quantity,
		Expected:    order.Expected,
		Total:       order.Total,
		PaymentMode: order.PaymentMode,
		Status:      order.Status,
		CreatedAt:   order.CreatedAt,
		UpdatedAt:   order.UpdatedAt,
	}
	if p := order.Product; p != nil {
		resp.Product = &OrderProduct{
			ID:       p.ID,
			Title:    p.Title,
			Price:    p.Price,
			Discount: p.Discount,
			Image:    p.PrimaryImageURL(),
		}
	}
	return resp
}

func toOrderResponses(orders []models.Order) []OrderResponse {
	resp := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		resp = append(resp, toOrderResponse(&orders[i]))
	}
	return resp
}
