// Package router đăng ký các route thuộc domain auth: Signup, Login, Profile, System.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authhdl "github.com/PragyeNawani/bharattube/internal/api/auth/handler"
	basehdl "github.com/PragyeNawani/bharattube/internal/api/base/handler"
	"github.com/PragyeNawani/bharattube/internal/api/middleware"
	apirouter "github.com/PragyeNawani/bharattube/internal/api/router"
)

// Register đăng ký tất cả route auth (system, auth, user) lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	if err := registerSystemRoutes(v1); err != nil {
		return err
	}
	if err := registerAuthRoutes(v1, r); err != nil {
		return err
	}
	return nil
}

func registerSystemRoutes(router fiber.Router) error {
	systemHandler, err := basehdl.NewSystemHandler()
	if err != nil {
		return fmt.Errorf("failed to create system handler: %w", err)
	}
	router.Get("/system/health", systemHandler.HandleHealth)
	return nil
}

func registerAuthRoutes(router fiber.Router, r *apirouter.Router) error {
	userHandler, err := authhdl.NewUserHandler()
	if err != nil {
		return fmt.Errorf("failed to create user handler: %w", err)
	}

	// Endpoint công khai
	router.Post("/auth/signup", userHandler.HandleSignup)
	router.Post("/auth/login", userHandler.HandleLogin)

	// Endpoint yêu cầu đăng nhập
	authOnlyMiddleware := middleware.AuthMiddleware()
	apirouter.RegisterRouteWithMiddleware(router, "/auth", "GET", "/me", []fiber.Handler{authOnlyMiddleware}, userHandler.HandleGetProfile)
	apirouter.RegisterRouteWithMiddleware(router, "/auth", "PUT", "/me", []fiber.Handler{authOnlyMiddleware}, userHandler.HandleUpdateProfile)

	// Surface CRUD read-only cho quản trị (tra cứu user qua filter/pagination)
	r.RegisterCRUDRoutes(router, "/user", userHandler, apirouter.ReadOnlyConfig)
	return nil
}
