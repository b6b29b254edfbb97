package public

import (
	"github.com/whitebirds/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ListProducts full catalog with images, reviews and highlights
func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.ProductService.List()
	if err != nil {
		respondError(c, response.CodeInternal, "Failed to fetch products", err)
		return
	}
	response.OK(c, products)
}
