// Package global chứa các biến toàn cục của ứng dụng: config, database session,
// validator và registry các collection MongoDB.
package global

import (
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/PragyeNawani/bharattube/config"
	"github.com/PragyeNawani/bharattube/internal/registry"
)

// ColNames chứa tên của tất cả các collection trong hệ thống.
// Mọi truy cập collection đều đi qua struct này để tránh hardcode chuỗi.
type ColNames struct {
	Users         string
	Subscriptions string
	Videos        string
}

var (
	// MongoDB_ServerConfig là cấu hình server toàn cục, được khởi tạo khi app start.
	MongoDB_ServerConfig *config.Configuration

	// MongoDB_Session là session kết nối MongoDB dùng chung.
	MongoDB_Session *mongo.Client

	// MongoDB_ColNames là tên các collection trong hệ thống.
	MongoDB_ColNames ColNames

	// Validate là validator singleton dùng chung cho toàn bộ ứng dụng.
	Validate *validator.Validate

	// RegistryCollections quản lý các *mongo.Collection đã khởi tạo theo tên.
	RegistryCollections = registry.NewRegistry[*mongo.Collection]()
)

// InitColNames gán tên cho các collection trong hệ thống.
func InitColNames() {
	MongoDB_ColNames.Users = "users"
	MongoDB_ColNames.Subscriptions = "subscriptions"
	MongoDB_ColNames.Videos = "videos"
}
