package public

import (
	"github.com/whitebirds/internal/http/binding"
	"github.com/whitebirds/internal/http/response"

	"github.com/gin-gonic/gin"
)

// AddToCartRequest add-to-cart body
type AddToCartRequest struct {
	ProductID binding.FlexID `json:"productId" binding:"required,gt=0"`
	Quantity  int            `json:"quantity" binding:"omitempty,gte=1"`
}

// UpdateCartItemRequest quantity change; 0 removes the line
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required,gte=0"`
}

// AddToCart puts a product in the cart
func (h *Handler) AddToCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req AddToCartRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.CartService.Add(uid, req.ProductID.Uint(), req.Quantity)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "Failed to add to cart")
		return
	}
	response.Created(c, gin.H{"message": "product added to cart", "cartItem": toCartItemResponse(item)})
}

// GetCart cart lines, newest first
func (h *Handler) GetCart(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	items, err := h.CartService.List(uid)
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to fetch cart", err)
		return
	}
	resp := make([]CartItemResponse, 0, len(items))
	for i := range items {
		resp = append(resp, toCartItemResponse(&items[i]))
	}
	response.OK(c, resp)
}

// UpdateCartItem changes the quantity of a line
func (h *Handler) UpdateCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req UpdateCartItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.CartService.UpdateQuantity(uid, id, *req.Quantity)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "Failed to update cart")
		return
	}
	if item == nil {
		response.Message(c, "Item removed from cart")
		return
	}
	response.OK(c, gin.H{"message": "Cart item updated", "cartItem": toCartItemResponse(item)})
}

// RemoveCartItem deletes a line
func (h *Handler) RemoveCartItem(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.CartService.Remove(uid, id); err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "Failed to remove cart item")
		return
	}
	response.Message(c, "Item removed from cart")
}

// OrderAllCartItems checks out the whole cart
func (h *Handler) OrderAllCartItems(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	orders, err := h.CartService.OrderAll(uid)
	if err != nil {
		respondWithMappedError(c, err, cartErrorRules, response.CodeInternal, "Failed to place orders")
		return
	}
	response.Created(c, gin.H{"message": "All cart items ordered successfully", "orders": toOrderResponses(orders)})
}
