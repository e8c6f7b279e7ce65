// Package models - model đăng ký kênh (Subscription) thuộc domain subscription.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Subscription định nghĩa quan hệ đăng ký giữa người xem và kênh.
// Mỗi cặp (subscriberId, channelId) chỉ được tồn tại đúng một document,
// được đảm bảo bằng compound unique index.
type Subscription struct {
	ID                 primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	SubscriberID       primitive.ObjectID `json:"subscriberId" bson:"subscriberId" index:"compound:subscriber_channel_unique"`
	SubscriberUsername string             `json:"subscriberUsername" bson:"subscriberUsername"`
	ChannelID          primitive.ObjectID `json:"channelId" bson:"channelId" index:"compound:subscriber_channel_unique"`
	ChannelUsername    string             `json:"channelUsername" bson:"channelUsername" index:"single"`
	CreatedAt          int64              `json:"createdAt" bson:"createdAt"`
	UpdatedAt          int64              `json:"updatedAt" bson:"updatedAt"`
}

// SubscriptionPaginateResult đại diện cho kết quả phân trang Subscription
type SubscriptionPaginateResult struct {
	Page      int64          `json:"page" bson:"page"`
	Limit     int64          `json:"limit" bson:"limit"`
	ItemCount int64          `json:"itemCount" bson:"itemCount"`
	Items     []Subscription `json:"items" bson:"items"`
}
