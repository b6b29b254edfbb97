package service

import (
	"strings"
	"time"

	"github.com/whitebirds/internal/models"
	"github.com/whitebirds/internal/repository"
)

const defaultReviewDailyLimit = 2

// ReviewService product reviews with a per-day cap
type ReviewService struct {
	reviewRepo  repository.ReviewRepository
	productRepo repository.ProductRepository
	dailyLimit  int
	now         func() time.Time
}

// NewReviewService creates the review service
func NewReviewService(reviewRepo repository.ReviewRepository, productRepo repository.ProductRepository, dailyLimit int) *ReviewService {
	if dailyLimit <= 0 {
		dailyLimit = defaultReviewDailyLimit
	}
	return &ReviewService{
		reviewRepo:  reviewRepo,
		productRepo: productRepo,
		dailyLimit:  dailyLimit,
		now:         time.Now,
	}
}

// SetClock replaces the clock used for the daily window
func (s *ReviewService) SetClock(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	s.now = now
}

// CreateReviewInput review fields
type CreateReviewInput struct {
	ProductID uint
	Rating    int
	Feedback  string
}

// Create adds a review unless the user already hit the cap for this product today
func (s *ReviewService) Create(userID uint, input CreateReviewInput) (*models.Review, error) {
	if input.Rating < 1 || input.Rating > 5 {
		return nil, ErrInvalidRating
	}
	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}

	now := s.now()
	start, end := localDayWindow(now)
	count, err := s.reviewRepo.CountByUserAndProductBetween(userID, product.ID, start, end)
	if err != nil {
		return nil, err
	}
	if count >= int64(s.dailyLimit) {
		return nil, &ReviewLimitError{Limit: s.dailyLimit}
	}

	review := &models.Review{
		UserID:    userID,
		ProductID: product.ID,
		Rating:    input.Rating,
		Feedback:  strings.TrimSpace(input.Feedback),
		CreatedAt: now,
	}
	if err := s.reviewRepo.Create(review); err != nil {
		return nil, err
	}

	loaded, err := s.reviewRepo.GetByIDWithRelations(review.ID)
	if err != nil {
		return nil, err
	}
	if loaded == nil {
		return review, nil
	}
	return loaded, nil
}

// localDayWindow the calendar day containing t, 00:00:00.000 to 23:59:59.999
func localDayWindow(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	end := start.AddDate(0, 0, 1).Add(-time.Millisecond)
	return start, end
}
