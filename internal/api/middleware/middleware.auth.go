package middleware

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	authmodels "github.com/PragyeNawani/bharattube/internal/api/auth/models"
	authsvc "github.com/PragyeNawani/bharattube/internal/api/auth/service"
	"github.com/PragyeNawani/bharattube/internal/common"
	"github.com/PragyeNawani/bharattube/internal/global"
	"github.com/PragyeNawani/bharattube/internal/logger"
	"github.com/PragyeNawani/bharattube/internal/utility"
)

// AuthManager quản lý xác thực người dùng qua JWT token
type AuthManager struct {
	UserCRUD *authsvc.UserService
	Cache    *utility.Cache
}

var (
	authManagerInstance *AuthManager
	authManagerOnce     sync.Once
)

// GetAuthManager trả về instance duy nhất của AuthManager (singleton pattern)
func GetAuthManager() *AuthManager {
	authManagerOnce.Do(func() {
		var err error
		authManagerInstance, err = newAuthManager()
		if err != nil {
			panic(err)
		}
	})
	return authManagerInstance
}

// newAuthManager khởi tạo một instance mới của AuthManager (private constructor)
func newAuthManager() (*AuthManager, error) {
	newManager := new(AuthManager)

	userService, err := authsvc.NewUserService()
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %v", err)
	}
	newManager.UserCRUD = userService

	// Khởi tạo cache với thời gian sống 5 phút và thời gian dọn dẹp 10 phút
	newManager.Cache = utility.NewCache(5*time.Minute, 10*time.Minute)

	return newManager, nil
}

// resolveUser xác thực token và trả về user tương ứng.
// Kết quả được cache theo token để giảm tải query database cho các request liên tiếp.
func (am *AuthManager) resolveUser(ctx context.Context, token string) (authmodels.User, error) {
	var zero authmodels.User

	cacheKey := "auth_user:" + token
	if cached, found := am.Cache.Get(cacheKey); found {
		return cached.(authmodels.User), nil
	}

	// Xác thực chữ ký và thời hạn của token
	claims, err := utility.ParseToken(global.MongoDB_ServerConfig.JwtSecret, token)
	if err != nil {
		return zero, err
	}

	// Lấy user từ database theo userId trong claims
	user, err := am.UserCRUD.FindOneById(ctx, utility.String2ObjectID(claims.UserID))
	if err != nil {
		return zero, common.ErrTokenInvalid
	}

	am.Cache.Set(cacheKey, user)
	return user, nil
}

// AuthMiddleware middleware xác thực cho Fiber.
// Yêu cầu header Authorization dạng "Bearer <token>", reject request nếu token
// thiếu, sai định dạng, hết hạn hoặc không ứng với user nào.
func AuthMiddleware() fiber.Handler {
	authManager := GetAuthManager()

	return func(c fiber.Ctx) error {
		// Lấy token từ header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			// Chỉ log khi thiếu token (lỗi quan trọng)
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":   c.Path(),
				"method": c.Method(),
			}).Warn("❌ [AUTH] Missing Authorization header")
			HandleErrorResponse(c, common.ErrTokenMissing)
			return nil
		}

		// Kiểm tra định dạng token
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		token := parts[1]

		user, err := authManager.resolveUser(c.Context(), token)
		if err != nil {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":  c.Path(),
				"error": err.Error(),
			}).Warn("❌ [AUTH] Token rejected")
			HandleErrorResponse(c, err)
			return nil
		}

		// Lưu thông tin user vào context
		c.Locals("user_id", user.ID.Hex())
		c.Locals("user", user)

		return c.Next()
	}
}

// OptionalAuthMiddleware middleware xác thực không bắt buộc.
// Nếu có token hợp lệ thì set user vào context, nếu không vẫn cho request đi tiếp.
// Dùng cho các endpoint công khai nhưng thay đổi kết quả theo người đang đăng nhập.
func OptionalAuthMiddleware() fiber.Handler {
	authManager := GetAuthManager()

	return func(c fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Next()
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Next()
		}

		user, err := authManager.resolveUser(c.Context(), parts[1])
		if err != nil {
			// Token không hợp lệ ở endpoint công khai: bỏ qua, xử lý như khách vãng lai
			return c.Next()
		}

		c.Locals("user_id", user.ID.Hex())
		c.Locals("user", user)

		return c.Next()
	}
}
