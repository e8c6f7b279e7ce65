// Package models - model video thuộc domain video.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Video định nghĩa mô hình video.
// OwnerUsername là username của chủ kênh (denormalize để query search/listing không cần join).
// Views, Likes, Shares là các counter được cập nhật atomic bằng $inc.
// WatchTimeMinutes là tổng thời gian xem tích lũy (phút); nếu chưa có số liệu (=0)
// thì thời gian xem được ước lượng từ lượt view.
type Video struct {
	ID               primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Title            string             `json:"title" bson:"title" index:"text"`
	Description      string             `json:"description,omitempty" bson:"description,omitempty"`
	VideoURL         string             `json:"videoUrl,omitempty" bson:"videoUrl,omitempty"`
	ThumbnailURL     string             `json:"thumbnailUrl,omitempty" bson:"thumbnailUrl,omitempty"`
	UploadType       string             `json:"uploadType,omitempty" bson:"uploadType,omitempty"`
	Tags             []string           `json:"tags,omitempty" bson:"tags,omitempty"`
	OwnerID          primitive.ObjectID `json:"ownerId" bson:"ownerId" index:"single"`
	OwnerUsername    string             `json:"username" bson:"username" index:"single"`
	Views            int64              `json:"views" bson:"views" index:"single,order:-1"`
	Likes            int64              `json:"likes" bson:"likes"`
	Shares           int64              `json:"shares" bson:"shares"`
	WatchTimeMinutes int64              `json:"watchTime" bson:"watchTime"`
	CreatedAt        int64              `json:"createdAt" bson:"createdAt" index:"single,order:-1"`
	UpdatedAt        int64              `json:"updatedAt" bson:"updatedAt"`
}

// VideoPaginateResult đại diện cho kết quả phân trang Video
type VideoPaginateResult struct {
	Page      int64   `json:"page" bson:"page"`
	Limit     int64   `json:"limit" bson:"limit"`
	ItemCount int64   `json:"itemCount" bson:"itemCount"`
	Items     []Video `json:"items" bson:"items"`
}
