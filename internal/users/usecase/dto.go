package usecase

import authdomain "tourbook/internal/auth/domain"

type UpdateMeInput struct {
	Name  *string `json:"name" form:"name"`
	Email *string `json:"email" form:"email" validate:"omitempty,email"`
}

type AdminUpdateUserInput struct {
	Name  *string `json:"name" form:"name"`
	Email *string `json:"email" form:"email" validate:"omitempty,email"`
	Role  *string `json:"role" form:"role"`
}

type ReactivateUserInput struct {
	Email string `json:"email" form:"email" validate:"required,email"`
}

type UserProfileResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Photo string `json:"photo"`
	Role  string `json:"role"`
}

func ToUserProfileResponse(user *authdomain.User) UserProfileResponse {
	return UserProfileResponse{
		ID:    user.ID.String(),
		Name:  user.Name,
		Email: user.Email,
		Photo: user.Photo,
		Role:  string(user.Role),
	}
}
