package public

import (
	"github.com/whitebirds/internal/http/response"
	"github.com/whitebirds/internal/service"

	"github.com/gin-gonic/gin"
)

// AddressRequest delivery address body
type AddressRequest struct {
	State       string `json:"state" binding:"required,min=1"`
	City        string `json:"city" binding:"required,min=1"`
	Pincode     string `json:"pincode" binding:"required,min=3"`
	AddressLine string `json:"addressLine" binding:"required,min=3"`
}

// UpdateProfileRequest partial profile body
type UpdateProfileRequest struct {
	Name    *string         `json:"name" binding:"omitempty,min=2"`
	MobNo   *string         `json:"mobNo" binding:"omitempty,mobile"`
	Address *AddressRequest `json:"address"`
}

func (r UpdateProfileRequest) toInput(requireMobile bool) service.UpdateProfileInput {
	input := service.UpdateProfileInput{
		Name:          r.Name,
		MobNo:         r.MobNo,
		RequireMobile: requireMobile,
	}
	if r.Address != nil {
		input.Address = &service.AddressInput{
			State:       r.Address.State,
			City:        r.Address.City,
			Pincode:     r.Address.Pincode,
			AddressLine: r.Address.AddressLine,
		}
	}
	return input
}

// GetProfile the caller with address
func (h *Handler) GetProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}

	user, err := h.ProfileService.Get(uid)
	if err != nil {
		respondWithMappedError(c, err, profileErrorRules, response.CodeInternal, "Failed to fetch profile")
		return
	}
	response.OK(c, gin.H{"user": user})
}

// UpdateProfile partial update that insists on a mobile number being on file
func (h *Handler) UpdateProfile(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.ProfileService.Update(uid, req.toInput(true))
	if err != nil {
		respondWithMappedError(c, err, profileErrorRules, response.CodeInternal, "Failed to update profile")
		return
	}
	response.OK(c, gin.H{"message": "Profile updated successfully", "user": user})
}

// UpdatePersonal legacy update; every failure is reported as a plain 400
func (h *Handler) UpdatePersonal(c *gin.Context) {
	uid, ok := getUserID(c)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.ProfileService.UpdatePersonal(uid, req.toInput(false))
	if err != nil {
		respondWithMappedError(c, err, personalUpdateErrorRules, response.CodeInternal, internalErrorMessage)
		return
	}
	response.OK(c, gin.H{"message": "updated successfully", "user": user})
}
