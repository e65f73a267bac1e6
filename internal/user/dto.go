// AngelaMos | 2026
// dto.go

package user

import (
	"time"

	"github.com/google/uuid"
)

// UpdateUserRequest is a partial update: nil fields are left untouched,
// present fields must still be non-empty.
type UpdateUserRequest struct {
	Name     *string `json:"name"     validate:"omitnil,filled,max=255"`
	Email    *string `json:"email"    validate:"omitnil,filled,email,max=255"`
	Phone    *string `json:"phone"    validate:"omitnil,filled,max=15"`
	Password *string `json:"password" validate:"omitnil,filled,min=6"`
}

type ProfileResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

type UpdatedProfileResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToProfileResponse(u *User) ProfileResponse {
	return ProfileResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		CreatedAt: u.CreatedAt,
	}
}

func ToUpdatedProfileResponse(u *User) UpdatedProfileResponse {
	return UpdatedProfileResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Phone:     u.Phone,
		UpdatedAt: u.UpdatedAt,
	}
}
