// Package router đăng ký các route thuộc domain video.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"github.com/PragyeNawani/bharattube/internal/api/middleware"
	apirouter "github.com/PragyeNawani/bharattube/internal/api/router"
	videohdl "github.com/PragyeNawani/bharattube/internal/api/video/handler"
)

// Register đăng ký tất cả route video lên v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	videoHandler, err := videohdl.NewVideoHandler()
	if err != nil {
		return fmt.Errorf("failed to create video handler: %w", err)
	}

	// Endpoint công khai.
	// Lưu ý thứ tự: các path tĩnh (/trending) phải đăng ký trước /:id
	// để không bị route param nuốt mất.
	v1.Get("/videos/trending", videoHandler.HandleTrending)
	v1.Get("/videos", videoHandler.HandleLatest)
	v1.Get("/videos/:id", videoHandler.HandleGet)
	v1.Patch("/videos/:id", videoHandler.HandleAction)
	v1.Get("/search", videoHandler.HandleSearch)

	// Endpoint yêu cầu đăng nhập
	authMiddleware := middleware.AuthMiddleware()
	apirouter.RegisterRouteWithMiddleware(v1, "/videos", "POST", "/", []fiber.Handler{authMiddleware}, videoHandler.HandleCreate)
	apirouter.RegisterRouteWithMiddleware(v1, "/user", "GET", "/videos", []fiber.Handler{authMiddleware}, videoHandler.HandleOwnerStats)

	return nil
}
