package videodto

import (
	models "github.com/PragyeNawani/bharattube/internal/api/video/models"
)

// VideoCreateInput đầu vào tạo video mới.
// Chủ kênh được lấy từ token đăng nhập, không nhận từ request.
type VideoCreateInput struct {
	Title        string   `json:"title" validate:"required,min=1,max=256,no_xss"`
	Description  string   `json:"description" validate:"max=4096"`
	VideoURL     string   `json:"videoUrl" validate:"max=2048"`
	ThumbnailURL string   `json:"thumbnailUrl" validate:"max=2048"`
	UploadType   string   `json:"uploadType" validate:"omitempty,oneof=url file"`
	Tags         []string `json:"tags" validate:"max=32,dive,max=64"`
}

// VideoUpdateInput đầu vào cập nhật thông tin video.
type VideoUpdateInput struct {
	Title        string `json:"title" validate:"omitempty,min=1,max=256,no_xss"`
	Description  string `json:"description" validate:"max=4096"`
	ThumbnailURL string `json:"thumbnailUrl" validate:"max=2048"`
}

// VideoActionInput đầu vào ghi nhận tương tác với video (like | share).
type VideoActionInput struct {
	Action string `json:"action" validate:"required"`
}

// OwnerStatsResult thống kê kênh của chủ sở hữu: danh sách video,
// tổng số video và tổng thời gian xem (phút).
type OwnerStatsResult struct {
	Videos           []models.Video `json:"videos"`
	TotalVideos      int64          `json:"totalVideos"`
	WatchTimeMinutes int64          `json:"watchTime"`
}
