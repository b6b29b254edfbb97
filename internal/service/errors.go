package service

import (
	"errors"
	"fmt"
)

var (
	ErrEmailExists         = errors.New("email already exists")
	ErrWeakPassword        = errors.New("password does not satisfy policy")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidPassword     = errors.New("invalid password")
	ErrInvalidToken        = errors.New("invalid token")
	ErrProductNotFound     = errors.New("product not found")
	ErrCartItemExists      = errors.New("product already in cart")
	ErrCartItemNotFound    = errors.New("cart item not found")
	ErrCartEmpty           = errors.New("cart is empty")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrInvalidQuantity     = errors.New("invalid quantity")
	ErrInvalidPaymentMode  = errors.New("invalid payment mode")
	ErrInvalidExpectedDate = errors.New("invalid expected date")
	ErrMobileRequired      = errors.New("mobile number required")
	ErrAddressRequired     = errors.New("address required")
	ErrOrderNotFound       = errors.New("order not found")
	ErrOrderNotCancellable = errors.New("order cannot be cancelled")
	ErrInvalidRating       = errors.New("invalid rating")
	ErrReviewLimitReached  = errors.New("review daily limit reached")
	ErrProfileUpdateFailed = errors.New("profile update failed")
)

// StockError names the product whose stock cannot cover a cart line.
type StockError struct {
	ProductID    uint
	ProductTitle string
	Requested    int
	Available    int
}

func (e *StockError) Error() string {
	return fmt.Sprintf("Not enough stock for product: %s", e.ProductTitle)
}

func (e *StockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// ReviewLimitError carries the daily cap that was hit.
type ReviewLimitError struct {
	Limit int
}

func (e *ReviewLimitError) Error() string {
	return fmt.Sprintf("Rate limit exceeded: You can only add %d reviews per product per day", e.Limit)
}

func (e *ReviewLimitError) Is(target error) bool {
	return target == ErrReviewLimitReached
}
