// Package router đăng ký các route thuộc domain subscription.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"github.com/PragyeNawani/bharattube/internal/api/middleware"
	apirouter "github.com/PragyeNawani/bharattube/internal/api/router"
	subscriptionhdl "github.com/PragyeNawani/bharattube/internal/api/subscription/handler"
)

// Register đăng ký tất cả route subscription lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	subscriptionHandler, err := subscriptionhdl.NewSubscriptionHandler()
	if err != nil {
		return fmt.Errorf("failed to create subscription handler: %w", err)
	}

	// Endpoint công khai
	v1.Get("/subscriptions/count", subscriptionHandler.HandleCount)

	// Endpoint công khai với optional auth (khách vãng lai luôn nhận subscribed=false)
	optionalAuthMiddleware := middleware.OptionalAuthMiddleware()
	apirouter.RegisterRouteWithMiddleware(v1, "/subscriptions", "GET", "/check", []fiber.Handler{optionalAuthMiddleware}, subscriptionHandler.HandleCheck)

	// Endpoint yêu cầu đăng nhập
	authMiddleware := middleware.AuthMiddleware()
	apirouter.RegisterRouteWithMiddleware(v1, "/subscriptions", "POST", "/", []fiber.Handler{authMiddleware}, subscriptionHandler.HandleSubscribe)
	apirouter.RegisterRouteWithMiddleware(v1, "/subscriptions", "POST", "/unsubscribe", []fiber.Handler{authMiddleware}, subscriptionHandler.HandleUnsubscribe)
	apirouter.RegisterRouteWithMiddleware(v1, "/subscriptions", "GET", "/", []fiber.Handler{authMiddleware}, subscriptionHandler.HandleList)

	return nil
}
