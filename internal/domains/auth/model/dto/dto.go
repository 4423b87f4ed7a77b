package dto

import (
	"fmt"

	"github.com/google/uuid"

	userModel "lunchtime/internal/domains/user/model"
	"lunchtime/shared/constant"
	gModel "lunchtime/shared/model"
	"lunchtime/shared/timezone"
)

type RegisterRequest struct {
	Username       string `json:"username"        validate:"required,max=64"`
	Password       string `json:"password"        validate:"required,min=8"`
	PasswordRepeat string `json:"password_repeat" validate:"required,eqfield=Password"`
	FirstName      string `json:"first_name"      validate:"required,max=64"`
	LastName       string `json:"last_name"       validate:"required,max=64"`
	Email          string `json:"email"           validate:"required,email,max=64"`
}

func (r *RegisterRequest) ToUserModel(hashedPassword string) userModel.User {
	fullName := fmt.Sprintf("%s %s", r.FirstName, r.LastName)

	return userModel.User{
		ID:       uuid.NewString(),
		Username: r.Username,
		Email:    r.Email,
		Password: hashedPassword,
		Role:     constant.RoleDiner,
		FullName: &fullName,
		Active:   true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  r.Username,
			ModifiedBy: r.Username,
		},
	}
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

type ChangePasswordRequest struct {
	OldPassword    string `json:"old_password"    validate:"required"`
	NewPassword    string `json:"new_password"    validate:"required,min=8"`
	PasswordRepeat string `json:"password_repeat" validate:"required,eqfield=NewPassword"`
}
