package public

import (
	"github.com/whitebirds/internal/http/binding"
	"github.com/whitebirds/internal/http/response"
	"github.com/whitebirds/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateOrderRequest order body
type CreateOrderRequest struct {
	ProductID   binding.FlexID `json:"productId" binding:"required,gt=0"`
	Quantity    int            `json:"quantity" binding:"required,gte=1"`
	Expected    string         `json:"expected"`
	PaymentMode string         `json:"paymentMode" binding:"omitempty,paymode"`
}

// CreateOrder places a single-product order
func (h *Handler) CreateOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	placement, err := h.OrderService.Create(uid, service.CreateOrderInput{
		ProductID:   req.ProductID.Uint(),
		Quantity:    req.Quantity,
		Expected:    req.Expected,
		PaymentMode: req.PaymentMode,
	})
	if err != nil {
		respondWithMappedError(c, err, orderCreateErrorRules, response.CodeInternal, "Failed to place order")
		return
	}
	response.Created(c, gin.H{
		"message":         "order placed successfully",
		"order":           toOrderResponse(placement.Order),
		"deliveryAddress": placement.DeliveryAddress,
		"mobile":          placement.Mobile,
	})
}

// ListOrders orders of the caller, newest first
func (h *Handler) ListOrders(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	orders, err := h.OrderService.List(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to fetch orders", err)
		return
	}
	response.OK(c, toOrderResponses(orders))
}

// GetOrder one order of the caller
func (h *Handler) GetOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	order, err := h.OrderService.Get(uid, id)
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "Failed to fetch order")
		return
	}
	response.OK(c, toOrderResponse(order))
}

// CancelOrder cancels an order that has not shipped
func (h *Handler) CancelOrder(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	order, err := h.OrderService.Cancel(uid, id)
	if err != nil {
		respondWithMappedError(c, err, orderErrorRules, response.CodeInternal, "Failed to cancel order")
		return
	}
	response.OK(c, gin.H{"message": "order cancelled successfully", "order": toOrderResponse(order)})
}
