// Package videosvc - service quản lý video và các counter tương tác.
package videosvc

import (
	"context"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "github.com/PragyeNawani/bharattube/internal/api/base/service"
	videodto "github.com/PragyeNawani/bharattube/internal/api/video/dto"
	models "github.com/PragyeNawani/bharattube/internal/api/video/models"
	"github.com/PragyeNawani/bharattube/internal/common"
	"github.com/PragyeNawani/bharattube/internal/global"
)

// Các hành động tương tác hợp lệ với video
const (
	ActionLike  = "like"
	ActionShare = "share"
)

// Các kiểu upload video hợp lệ
const (
	UploadTypeURL  = "url"
	UploadTypeFile = "file"
)

// estimatedMinutesPerView số phút xem ước lượng cho mỗi lượt view
// khi video chưa có số liệu watch time thực tế.
const estimatedMinutesPerView = 5

// latestLimit số video trả về mặc định cho listing mới nhất
const latestLimit = 20

// videoStore gom thao tác cập nhật atomic mà các counter video cần.
// Tách interface để test nghiệp vụ view/action với store giả.
type videoStore interface {
	FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}, opts *options.FindOneAndUpdateOptions) (models.Video, error)
}

// VideoService là cấu trúc chứa các phương thức quản lý video
type VideoService struct {
	*basesvc.BaseServiceMongoImpl[models.Video]
	store videoStore
}

// NewVideoService tạo mới VideoService
func NewVideoService() (*VideoService, error) {
	videoCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Videos)
	if !exist {
		return nil, fmt.Errorf("failed to get videos collection: %v", common.ErrNotFound)
	}

	base := basesvc.NewBaseServiceMongo[models.Video](videoCollection)
	return &VideoService{
		BaseServiceMongoImpl: base,
		store:                base,
	}, nil
}

// Create tạo video mới cho chủ kênh đang đăng nhập.
// uploadType mặc định là "url" khi client không gửi.
func (s *VideoService) Create(ctx context.Context, ownerID primitive.ObjectID, ownerUsername string, input *videodto.VideoCreateInput) (*models.Video, error) {
	uploadType := input.UploadType
	if uploadType == "" {
		uploadType = UploadTypeURL
	}

	video := models.Video{
		Title:         input.Title,
		Description:   input.Description,
		VideoURL:      input.VideoURL,
		ThumbnailURL:  input.ThumbnailURL,
		UploadType:    uploadType,
		Tags:          input.Tags,
		OwnerID:       ownerID,
		OwnerUsername: ownerUsername,
	}

	created, err := s.InsertOne(ctx, video)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// RecordView tăng view counter atomic và trả về video sau khi tăng.
// Dùng FindOneAndUpdate với $inc để hai lượt xem đồng thời không mất nhau.
func (s *VideoService) RecordView(ctx context.Context, id primitive.ObjectID) (*models.Video, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := &basesvc.UpdateData{
		Inc: map[string]interface{}{"views": int64(1)},
	}
	video, err := s.store.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts)
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// EngagementUpdate xây dựng update $inc cho một hành động tương tác.
// Trả về lỗi 400 nếu action không phải like | share.
func EngagementUpdate(action string) (*basesvc.UpdateData, error) {
	switch action {
	case ActionLike:
		return &basesvc.UpdateData{Inc: map[string]interface{}{"likes": int64(1)}}, nil
	case ActionShare:
		return &basesvc.UpdateData{Inc: map[string]interface{}{"shares": int64(1)}}, nil
	default:
		return nil, common.NewError(common.ErrCodeBusinessOperation, "Invalid action", common.StatusBadRequest, nil)
	}
}

// ApplyAction ghi nhận một hành động tương tác (like | share) atomic
// và trả về video sau khi cập nhật.
func (s *VideoService) ApplyAction(ctx context.Context, id primitive.ObjectID, action string) (*models.Video, error) {
	update, err := EngagementUpdate(action)
	if err != nil {
		return nil, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	video, err := s.store.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts)
	if err != nil {
		return nil, err
	}
	return &video, nil
}

// Latest trả về các video mới nhất (createdAt giảm dần).
func (s *VideoService) Latest(ctx context.Context) ([]models.Video, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(latestLimit)
	return s.Find(ctx, bson.D{}, opts)
}

// Trending trả về các video hot nhất: views giảm dần, likes giảm dần khi hòa.
func (s *VideoService) Trending(ctx context.Context, limit int64) ([]models.Video, error) {
	if limit <= 0 {
		limit = latestLimit
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "views", Value: -1}, {Key: "likes", Value: -1}}).
		SetLimit(limit)
	return s.Find(ctx, bson.D{}, opts)
}

// SearchFilter xây dựng filter MongoDB cho tìm kiếm video.
// type=channel: match chính xác username chủ kênh (regex anchor, escape ký tự
// đặc biệt, không phân biệt hoa thường). Các type khác: match substring trên
// title, description, tags hoặc username.
func SearchFilter(query string, searchType string) bson.M {
	escaped := regexp.QuoteMeta(query)
	if searchType == "channel" {
		return bson.M{"username": bson.M{"$regex": "^" + escaped + "$", "$options": "i"}}
	}
	substring := bson.M{"$regex": escaped, "$options": "i"}
	return bson.M{"$or": bson.A{
		bson.M{"title": substring},
		bson.M{"description": substring},
		bson.M{"tags": substring},
		bson.M{"username": substring},
	}}
}

// Search tìm video theo từ khóa, kết quả mới nhất trước.
func (s *VideoService) Search(ctx context.Context, query string, searchType string) ([]models.Video, error) {
	filter := SearchFilter(query, searchType)
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.Find(ctx, filter, opts)
}

// EstimateWatchTime tính thời gian xem (phút) của một video:
// dùng số liệu tích lũy nếu có, ngược lại ước lượng từ lượt view.
func EstimateWatchTime(video models.Video) int64 {
	if video.WatchTimeMinutes > 0 {
		return video.WatchTimeMinutes
	}
	return video.Views * estimatedMinutesPerView
}

// OwnerStats trả về danh sách video của chủ kênh kèm tổng số video
// và tổng thời gian xem tích lũy.
func (s *VideoService) OwnerStats(ctx context.Context, ownerID primitive.ObjectID) (*videodto.OwnerStatsResult, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	videos, err := s.Find(ctx, bson.M{"ownerId": ownerID}, opts)
	if err != nil {
		return nil, err
	}

	// Gắn watch time (thực tế hoặc ước lượng) vào từng video trước khi trả về
	var totalWatchTime int64
	for i := range videos {
		videos[i].WatchTimeMinutes = EstimateWatchTime(videos[i])
		totalWatchTime += videos[i].WatchTimeMinutes
	}

	return &videodto.OwnerStatsResult{
		Videos:           videos,
		TotalVideos:      int64(len(videos)),
		WatchTimeMinutes: totalWatchTime,
	}, nil
}
