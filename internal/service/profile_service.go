package service

import (
	"fmt"
	"strings"

	"github.com/whitebirds/internal/logger"
	"github.com/whitebirds/internal/models"
	"github.com/whitebirds/internal/repository"

	"gorm.io/gorm"
)

// ProfileService customer profile and delivery address
type ProfileService struct {
	userRepo repository.UserRepository
}

// NewProfileService creates the profile service
func NewProfileService(userRepo repository.UserRepository) *ProfileService {
	return &ProfileService{userRepo: userRepo}
}

// AddressInput delivery address fields
type AddressInput struct {
	State       string
	City        string
	Pincode     string
	AddressLine string
}

// UpdateProfileInput partial profile update; nil fields are left untouched
type UpdateProfileInput struct {
	Name    *string
	MobNo   *string
	Address *AddressInput
	// RequireMobile rejects the update when no mobile number would be on file afterwards
	RequireMobile bool
}

// Get the user with address
func (s *ProfileService) Get(userID uint) (*models.User, error) {
	user, err := s.userRepo.GetByIDWithAddress(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Update applies the provided fields and upserts the address
func (s *ProfileService) Update(userID uint, input UpdateProfileInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	fields := map[string]interface{}{}
	if input.Name != nil {
		if name := strings.TrimSpace(*input.Name); name != "" {
			fields["name"] = name
		}
	}
	incomingMobile := ""
	if input.MobNo != nil {
		incomingMobile = strings.TrimSpace(*input.MobNo)
		if incomingMobile != "" {
			fields["mob_no"] = incomingMobile
		}
	}
	if input.RequireMobile && !user.HasMobile() && incomingMobile == "" {
		return nil, ErrMobileRequired
	}

	err = s.userRepo.Transaction(func(tx *gorm.DB) error {
		repo := s.userRepo.WithTx(tx)
		if err := repo.UpdateFields(userID, fields); err != nil {
			return err
		}
		if input.Address == nil {
			return nil
		}
		return repo.UpsertAddress(&models.Address{
			UserID:      userID,
			State:       strings.TrimSpace(input.Address.State),
			City:        strings.TrimSpace(input.Address.City),
			Pincode:     strings.TrimSpace(input.Address.Pincode),
			AddressLine: strings.TrimSpace(input.Address.AddressLine),
		})
	})
	if err != nil {
		return nil, err
	}

	logger.Infow("profile_updated", "user_id", userID, "address", input.Address != nil)
	return s.Get(userID)
}

// UpdatePersonal legacy update without the mobile requirement; any failure wraps ErrProfileUpdateFailed
func (s *ProfileService) UpdatePersonal(userID uint, input UpdateProfileInput) (*models.User, error) {
	input.RequireMobile = false
	user, err := s.Update(userID, input)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProfileUpdateFailed, err)
	}
	return user, nil
}
