package public

import (
	"github.com/whitebirds/internal/http/binding"
	"github.com/whitebirds/internal/http/response"
	"github.com/whitebirds/internal/service"

	"github.com/gin-gonic/gin"
)

// CreateReviewRequest review body
type CreateReviewRequest struct {
	ProductID binding.FlexID `json:"productId" binding:"required,gt=0"`
	Rating    int            `json:"rating" binding:"required,gte=1,lte=5"`
	Feedback  string         `json:"feedback" binding:"omitempty,min=1"`
}

// CreateReview adds a product review
func (h *Handler) CreateReview(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req CreateReviewRequest
	if !bindJSON(c, &req) {
		return
	}

	review, err := h.ReviewService.Create(uid, service.CreateReviewInput{
		ProductID: req.ProductID.Uint(),
		Rating:    req.Rating,
		Feedback:  req.Feedback,
	})
	if err != nil {
		respondWithMappedError(c, err, reviewErrorRules, response.CodeInternal, "Failed to add review")
		return
	}
	response.Created(c, gin.H{"message": "Review added successfully", "review": review})
}
