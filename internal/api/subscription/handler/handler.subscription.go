package subscriptionhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	authmodels "github.com/PragyeNawani/bharattube/internal/api/auth/models"
	basehdl "github.com/PragyeNawani/bharattube/internal/api/base/handler"
	models "github.com/PragyeNawani/bharattube/internal/api/subscription/models"
	subscriptiondto "github.com/PragyeNawani/bharattube/internal/api/subscription/dto"
	subscriptionsvc "github.com/PragyeNawani/bharattube/internal/api/subscription/service"
	"github.com/PragyeNawani/bharattube/internal/common"
)

// SubscriptionHandler xử lý các request đăng ký kênh
type SubscriptionHandler struct {
	*basehdl.BaseHandler[models.Subscription, subscriptiondto.SubscribeInput, subscriptiondto.SubscribeInput]
	subscriptionService *subscriptionsvc.SubscriptionService
}

// NewSubscriptionHandler tạo instance mới của SubscriptionHandler
func NewSubscriptionHandler() (*SubscriptionHandler, error) {
	subscriptionService, err := subscriptionsvc.NewSubscriptionService()
	if err != nil {
		return nil, fmt.Errorf("failed to create subscription service: %v", err)
	}
	baseHandler := basehdl.NewBaseHandler[models.Subscription, subscriptiondto.SubscribeInput, subscriptiondto.SubscribeInput](subscriptionService)
	return &SubscriptionHandler{
		BaseHandler:         baseHandler,
		subscriptionService: subscriptionService,
	}, nil
}

// requireUserID lấy user ID từ context, trả về lỗi 401 nếu chưa đăng nhập
func (h *SubscriptionHandler) requireUserID(c fiber.Ctx) (primitive.ObjectID, error) {
	userID := c.Locals("user_id")
	if userID == nil {
		return primitive.NilObjectID, common.NewError(common.ErrCodeAuth, "User not authenticated", common.StatusUnauthorized, nil)
	}
	objID, err := primitive.ObjectIDFromHex(userID.(string))
	if err != nil {
		return primitive.NilObjectID, common.NewError(common.ErrCodeValidationFormat, "Invalid user ID", common.StatusBadRequest, err)
	}
	return objID, nil
}

// requireUser lấy user đang đăng nhập từ context, trả về lỗi 401 nếu chưa đăng nhập
func (h *SubscriptionHandler) requireUser(c fiber.Ctx) (authmodels.User, error) {
	user, ok := c.Locals("user").(authmodels.User)
	if !ok || user.ID.IsZero() {
		return authmodels.User{}, common.NewError(common.ErrCodeAuth, "User not authenticated", common.StatusUnauthorized, nil)
	}
	return user, nil
}

// HandleSubscribe xử lý đăng ký kênh
func (h *SubscriptionHandler) HandleSubscribe(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		user, err := h.requireUser(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input subscriptiondto.SubscribeInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		_, err = h.subscriptionService.Subscribe(c.Context(), user.ID, user.Username, input.Channel)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		h.HandleCreatedResponse(c, subscriptiondto.SubscriptionCheckResult{Channel: input.Channel, Subscribed: true}, nil)
		return nil
	})
}

// HandleUnsubscribe xử lý hủy đăng ký kênh
func (h *SubscriptionHandler) HandleUnsubscribe(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		subscriberID, err := h.requireUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input subscriptiondto.SubscribeInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		err = h.subscriptionService.Unsubscribe(c.Context(), subscriberID, input.Channel)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		h.HandleResponse(c, subscriptiondto.SubscriptionCheckResult{Channel: input.Channel, Subscribed: false}, nil)
		return nil
	})
}

// HandleCount đếm số người đăng ký của một kênh (endpoint công khai)
func (h *SubscriptionHandler) HandleCount(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		username := c.Query("username")
		if username == "" {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, "Thiếu tham số username", common.StatusBadRequest, nil))
			return nil
		}
		count, err := h.subscriptionService.CountSubscribers(c.Context(), username)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		h.HandleResponse(c, subscriptiondto.SubscriberCountResult{Channel: username, Count: count}, nil)
		return nil
	})
}

// HandleCheck kiểm tra người dùng hiện tại có đang đăng ký kênh không.
// Endpoint công khai với optional auth: khách vãng lai luôn nhận subscribed=false.
func (h *SubscriptionHandler) HandleCheck(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		channel := c.Query("channel")
		if channel == "" {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, "Thiếu tham số channel", common.StatusBadRequest, nil))
			return nil
		}

		result := subscriptiondto.SubscriptionCheckResult{Channel: channel, Subscribed: false}
		if userID, ok := c.Locals("user_id").(string); ok && userID != "" {
			if objID, err := primitive.ObjectIDFromHex(userID); err == nil {
				result.Subscribed = h.subscriptionService.IsSubscribed(c.Context(), objID, channel)
			}
		}
		h.HandleResponse(c, result, nil)
		return nil
	})
}

// HandleList liệt kê các kênh người dùng đang đăng ký, mới nhất trước
func (h *SubscriptionHandler) HandleList(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		subscriberID, err := h.requireUserID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		subscriptions, err := h.subscriptionService.ListForSubscriber(c.Context(), subscriberID)
		h.HandleResponse(c, subscriptions, err)
		return nil
	})
}
