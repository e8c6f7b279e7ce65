package authdto

import (
	models "github.com/PragyeNawani/bharattube/internal/api/auth/models"
)

// UserSignupInput đầu vào đăng ký người dùng.
type UserSignupInput struct {
	Username string `json:"username" validate:"required,min=3,max=64,no_xss"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,strong_password"`
}

// UserLoginInput đầu vào đăng nhập người dùng. Đăng nhập bằng email.
type UserLoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UserChangeInfoInput đầu vào thay đổi thông tin người dùng.
type UserChangeInfoInput struct {
	AvatarURL string `json:"avatarUrl"`
}

// SignupResult kết quả đăng ký trả về cho client.
type SignupResult struct {
	UserID string `json:"userId"`
}

// LoginResult kết quả đăng nhập trả về cho client: token kèm thông tin
// người dùng (đã xóa password hash).
type LoginResult struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}
