package authhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	authdto "github.com/PragyeNawani/bharattube/internal/api/auth/dto"
	models "github.com/PragyeNawani/bharattube/internal/api/auth/models"
	basehdl "github.com/PragyeNawani/bharattube/internal/api/base/handler"
	basesvc "github.com/PragyeNawani/bharattube/internal/api/base/service"
	authsvc "github.com/PragyeNawani/bharattube/internal/api/auth/service"
	"github.com/PragyeNawani/bharattube/internal/common"
	"github.com/PragyeNawani/bharattube/internal/logger"
)

// UserHandler xử lý các request xác thực và quản lý người dùng
type UserHandler struct {
	*basehdl.BaseHandler[models.User, authdto.UserSignupInput, authdto.UserChangeInfoInput]
	userService *authsvc.UserService
}

// NewUserHandler tạo instance mới của UserHandler
func NewUserHandler() (*UserHandler, error) {
	userService, err := authsvc.NewUserService()
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %v", err)
	}
	baseHandler := basehdl.NewBaseHandler[models.User, authdto.UserSignupInput, authdto.UserChangeInfoInput](userService)
	return &UserHandler{
		BaseHandler: baseHandler,
		userService: userService,
	}, nil
}

// HandleSignup xử lý đăng ký người dùng mới
func (h *UserHandler) HandleSignup(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input authdto.UserSignupInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		user, err := h.userService.Signup(c.Context(), &input)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		logger.LogAuth("signup", c, map[string]interface{}{"username": user.Username})
		h.HandleCreatedResponse(c, authdto.SignupResult{UserID: user.ID.Hex()}, nil)
		return nil
	})
}

// HandleLogin xử lý đăng nhập và phát hành token
func (h *UserHandler) HandleLogin(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		var input authdto.UserLoginInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		result, err := h.userService.Login(c.Context(), &input)
		if err == nil {
			logger.LogAuth("login", c, map[string]interface{}{"username": result.User.Username})
		}
		h.HandleResponse(c, result, err)
		return nil
	})
}

// HandleGetProfile lấy thông tin profile của người dùng đang đăng nhập
func (h *UserHandler) HandleGetProfile(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID := c.Locals("user_id")
		if userID == nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeAuth, "User not authenticated", common.StatusUnauthorized, nil))
			return nil
		}
		objID, err := primitive.ObjectIDFromHex(userID.(string))
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "Invalid user ID", common.StatusBadRequest, err))
			return nil
		}
		user, err := h.userService.FindOneById(c.Context(), objID)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		user.PasswordHash = ""
		h.HandleResponse(c, user, nil)
		return nil
	})
}

// HandleUpdateProfile cập nhật thông tin profile
func (h *UserHandler) HandleUpdateProfile(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		userID := c.Locals("user_id")
		if userID == nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeAuth, "User not authenticated", common.StatusUnauthorized, nil))
			return nil
		}
		var input authdto.UserChangeInfoInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		objID, err := primitive.ObjectIDFromHex(userID.(string))
		if err != nil {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationFormat, "Invalid user ID", common.StatusBadRequest, err))
			return nil
		}
		update := &basesvc.UpdateData{Set: map[string]interface{}{"avatarUrl": input.AvatarURL}}
		updatedUser, err := h.userService.UpdateById(c.Context(), objID, update)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		updatedUser.PasswordHash = ""
		h.HandleResponse(c, updatedUser, nil)
		return nil
	})
}
