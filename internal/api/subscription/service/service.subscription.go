// Package subscriptionsvc - service quản lý đăng ký kênh (Subscription).
package subscriptionsvc

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	authmodels "github.com/PragyeNawani/bharattube/internal/api/auth/models"
	authsvc "github.com/PragyeNawani/bharattube/internal/api/auth/service"
	basesvc "github.com/PragyeNawani/bharattube/internal/api/base/service"
	models "github.com/PragyeNawani/bharattube/internal/api/subscription/models"
	"github.com/PragyeNawani/bharattube/internal/common"
	"github.com/PragyeNawani/bharattube/internal/global"
)

// subscriptionStore gom các thao tác database mà nghiệp vụ đăng ký kênh cần.
// Tách interface để test nghiệp vụ với store trong bộ nhớ.
type subscriptionStore interface {
	DocumentExists(ctx context.Context, filter interface{}) (bool, error)
	InsertOne(ctx context.Context, data models.Subscription) (models.Subscription, error)
	DeleteOne(ctx context.Context, filter interface{}) error
	CountDocuments(ctx context.Context, filter interface{}) (int64, error)
	Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]models.Subscription, error)
}

// channelResolver tra chủ kênh theo username
type channelResolver interface {
	FindByUsername(ctx context.Context, username string) (authmodels.User, error)
}

// SubscriptionService là cấu trúc chứa các phương thức quản lý đăng ký kênh
type SubscriptionService struct {
	*basesvc.BaseServiceMongoImpl[models.Subscription]
	store subscriptionStore
	users channelResolver
}

// NewSubscriptionService tạo mới SubscriptionService
func NewSubscriptionService() (*SubscriptionService, error) {
	subscriptionCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Subscriptions)
	if !exist {
		return nil, fmt.Errorf("failed to get subscriptions collection: %v", common.ErrNotFound)
	}
	userService, err := authsvc.NewUserService()
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %v", err)
	}

	base := basesvc.NewBaseServiceMongo[models.Subscription](subscriptionCollection)
	return &SubscriptionService{
		BaseServiceMongoImpl: base,
		store:                base,
		users:                userService,
	}, nil
}

// resolveChannel tìm chủ kênh theo username, trả về 404 nếu kênh không tồn tại.
func (s *SubscriptionService) resolveChannel(ctx context.Context, channelUsername string) (primitive.ObjectID, error) {
	channel, err := s.users.FindByUsername(ctx, channelUsername)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return primitive.NilObjectID, common.NewError(common.ErrCodeBusinessState, "Channel not found", common.StatusNotFound, nil)
		}
		return primitive.NilObjectID, err
	}
	return channel.ID, nil
}

// Subscribe đăng ký người dùng vào một kênh.
// Không cho tự đăng ký kênh của chính mình và không cho đăng ký trùng.
func (s *SubscriptionService) Subscribe(ctx context.Context, subscriberID primitive.ObjectID, subscriberUsername string, channelUsername string) (*models.Subscription, error) {
	channelID, err := s.resolveChannel(ctx, channelUsername)
	if err != nil {
		return nil, err
	}

	if channelID == subscriberID {
		return nil, common.NewError(common.ErrCodeBusinessOperation, "Cannot subscribe to yourself", common.StatusBadRequest, nil)
	}

	edgeFilter := bson.M{"subscriberId": subscriberID, "channelId": channelID}
	exists, err := s.store.DocumentExists(ctx, edgeFilter)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, common.NewError(common.ErrCodeBusinessState, "Already subscribed", common.StatusBadRequest, nil)
	}

	subscription := models.Subscription{
		SubscriberID:       subscriberID,
		SubscriberUsername: subscriberUsername,
		ChannelID:          channelID,
		ChannelUsername:    channelUsername,
	}

	created, err := s.store.InsertOne(ctx, subscription)
	if err != nil {
		// Race giữa hai request subscribe: compound unique index bắn duplicate
		if errors.Is(err, common.ErrMongoDuplicate) {
			return nil, common.NewError(common.ErrCodeBusinessState, "Already subscribed", common.StatusBadRequest, nil)
		}
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"subscriber_id": subscriberID.Hex(),
		"channel":       channelUsername,
	}).Info("Subscribe: Đăng ký kênh thành công")
	return &created, nil
}

// Unsubscribe hủy đăng ký của người dùng khỏi một kênh.
// Trả về 404 nếu không có subscription tương ứng.
func (s *SubscriptionService) Unsubscribe(ctx context.Context, subscriberID primitive.ObjectID, channelUsername string) error {
	channelID, err := s.resolveChannel(ctx, channelUsername)
	if err != nil {
		return err
	}

	edgeFilter := bson.M{"subscriberId": subscriberID, "channelId": channelID}
	err = s.store.DeleteOne(ctx, edgeFilter)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.NewError(common.ErrCodeBusinessState, "Subscription not found", common.StatusNotFound, nil)
		}
		return err
	}

	logrus.WithFields(logrus.Fields{
		"subscriber_id": subscriberID.Hex(),
		"channel":       channelUsername,
	}).Info("Unsubscribe: Hủy đăng ký kênh thành công")
	return nil
}

// CountSubscribers đếm số người đăng ký của một kênh theo username.
func (s *SubscriptionService) CountSubscribers(ctx context.Context, channelUsername string) (int64, error) {
	channelID, err := s.resolveChannel(ctx, channelUsername)
	if err != nil {
		return 0, err
	}
	return s.store.CountDocuments(ctx, bson.M{"channelId": channelID})
}

// IsSubscribed kiểm tra người dùng có đang đăng ký kênh không.
// Hàm này phục vụ endpoint công khai: mọi lỗi (kênh không tồn tại, lỗi query)
// đều degrade về false thay vì trả lỗi cho client.
func (s *SubscriptionService) IsSubscribed(ctx context.Context, subscriberID primitive.ObjectID, channelUsername string) bool {
	channel, err := s.users.FindByUsername(ctx, channelUsername)
	if err != nil {
		return false
	}

	exists, err := s.store.DocumentExists(ctx, bson.M{"subscriberId": subscriberID, "channelId": channel.ID})
	if err != nil {
		return false
	}
	return exists
}

// ListForSubscriber liệt kê các kênh người dùng đang đăng ký, mới nhất trước.
func (s *SubscriptionService) ListForSubscriber(ctx context.Context, subscriberID primitive.ObjectID) ([]models.Subscription, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.store.Find(ctx, bson.M{"subscriberId": subscriberID}, opts)
}
