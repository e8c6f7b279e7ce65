// Package authsvc - service người dùng (User).
package authsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"

	authdto "github.com/PragyeNawani/bharattube/internal/api/auth/dto"
	models "github.com/PragyeNawani/bharattube/internal/api/auth/models"
	basesvc "github.com/PragyeNawani/bharattube/internal/api/base/service"
	"github.com/PragyeNawani/bharattube/internal/common"
	"github.com/PragyeNawani/bharattube/internal/global"
	"github.com/PragyeNawani/bharattube/internal/utility"
)

// tokenTTL thời hạn của JWT token phát hành khi đăng nhập
const tokenTTL = 72 * time.Hour

// UserService là cấu trúc chứa các phương thức liên quan đến người dùng
type UserService struct {
	*basesvc.BaseServiceMongoImpl[models.User]
}

// NewUserService tạo mới UserService
func NewUserService() (*UserService, error) {
	userCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Users)
	if !exist {
		return nil, fmt.Errorf("failed to get users collection: %v", common.ErrNotFound)
	}

	return &UserService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.User](userCollection),
	}, nil
}

// Signup đăng ký người dùng mới.
// Username và email phải duy nhất trong hệ thống, mật khẩu được băm bcrypt trước khi lưu.
func (s *UserService) Signup(ctx context.Context, input *authdto.UserSignupInput) (*models.User, error) {
	// Kiểm tra trùng username trước để trả về message rõ ràng
	// Unique index vẫn là chốt chặn cuối cùng khi hai request signup chạy đồng thời
	if exists, err := s.DocumentExists(ctx, bson.M{"username": input.Username}); err != nil {
		return nil, err
	} else if exists {
		return nil, common.NewError(common.ErrCodeBusinessState, "Username đã được sử dụng", common.StatusUnprocessableEntity, nil)
	}
	if exists, err := s.DocumentExists(ctx, bson.M{"email": input.Email}); err != nil {
		return nil, err
	} else if exists {
		return nil, common.NewError(common.ErrCodeBusinessState, "Email đã được đăng ký", common.StatusUnprocessableEntity, nil)
	}

	hash, err := utility.HashPassword(input.Password)
	if err != nil {
		return nil, common.NewError(common.ErrCodeInternalServer, "Không thể xử lý mật khẩu", common.StatusInternalServerError, err)
	}

	user := models.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hash,
	}

	created, err := s.InsertOne(ctx, user)
	if err != nil {
		// Race với request signup khác: unique index bắn duplicate
		if errors.Is(err, common.ErrMongoDuplicate) {
			return nil, common.NewError(common.ErrCodeBusinessState, "Username hoặc email đã được sử dụng", common.StatusUnprocessableEntity, nil)
		}
		return nil, err
	}

	logrus.WithFields(logrus.Fields{"user_id": created.ID.Hex(), "username": created.Username}).Info("Signup: Đăng ký thành công")
	return &created, nil
}

// Login xác thực email/mật khẩu và phát hành JWT token.
// Sai email hay sai mật khẩu đều trả về cùng một lỗi 401 để không lộ thông tin
// tài khoản nào tồn tại trong hệ thống.
func (s *UserService) Login(ctx context.Context, input *authdto.UserLoginInput) (*authdto.LoginResult, error) {
	user, err := s.FindOne(ctx, bson.M{"email": input.Email}, nil)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}

	if !utility.CheckPassword(user.PasswordHash, input.Password) {
		return nil, common.ErrInvalidCredentials
	}

	token, err := utility.CreateToken(global.MongoDB_ServerConfig.JwtSecret, user.ID.Hex(), tokenTTL)
	if err != nil {
		return nil, common.NewError(common.ErrCodeInternalServer, "Không thể tạo token", common.StatusInternalServerError, err)
	}

	logrus.WithFields(logrus.Fields{"user_id": user.ID.Hex(), "username": user.Username}).Info("Login: Đăng nhập thành công")
	user.PasswordHash = ""
	return &authdto.LoginResult{
		Token: token,
		User:  user,
	}, nil
}

// FindByUsername tìm người dùng theo username (tên kênh).
func (s *UserService) FindByUsername(ctx context.Context, username string) (models.User, error) {
	return s.FindOne(ctx, bson.M{"username": username}, nil)
}
