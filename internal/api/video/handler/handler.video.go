package videohdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"

	authmodels "github.com/PragyeNawani/bharattube/internal/api/auth/models"
	basehdl "github.com/PragyeNawani/bharattube/internal/api/base/handler"
	videodto "github.com/PragyeNawani/bharattube/internal/api/video/dto"
	models "github.com/PragyeNawani/bharattube/internal/api/video/models"
	videosvc "github.com/PragyeNawani/bharattube/internal/api/video/service"
	"github.com/PragyeNawani/bharattube/internal/common"
	"github.com/PragyeNawani/bharattube/internal/logger"
	"github.com/PragyeNawani/bharattube/internal/worker"
)

// VideoHandler xử lý các request video
type VideoHandler struct {
	*basehdl.BaseHandler[models.Video, videodto.VideoCreateInput, videodto.VideoUpdateInput]
	videoService   *videosvc.VideoService
	trendingWorker *worker.TrendingRefreshWorker
}

// NewVideoHandler tạo instance mới của VideoHandler
func NewVideoHandler() (*VideoHandler, error) {
	videoService, err := videosvc.NewVideoService()
	if err != nil {
		return nil, fmt.Errorf("failed to create video service: %v", err)
	}
	trendingWorker, err := worker.GetTrendingRefreshWorker()
	if err != nil {
		return nil, fmt.Errorf("failed to create trending worker: %v", err)
	}
	baseHandler := basehdl.NewBaseHandler[models.Video, videodto.VideoCreateInput, videodto.VideoUpdateInput](videoService)
	return &VideoHandler{
		BaseHandler:    baseHandler,
		videoService:   videoService,
		trendingWorker: trendingWorker,
	}, nil
}

// requireUser lấy user đang đăng nhập từ context, trả về lỗi 401 nếu chưa đăng nhập
func (h *VideoHandler) requireUser(c fiber.Ctx) (authmodels.User, error) {
	user, ok := c.Locals("user").(authmodels.User)
	if !ok || user.ID.IsZero() {
		return authmodels.User{}, common.NewError(common.ErrCodeAuth, "User not authenticated", common.StatusUnauthorized, nil)
	}
	return user, nil
}

// parseVideoID parse và validate video ID từ URI params
func (h *VideoHandler) parseVideoID(c fiber.Ctx) (primitive.ObjectID, error) {
	id := c.Params("id")
	if !primitive.IsValidObjectID(id) {
		return primitive.NilObjectID, common.NewError(
			common.ErrCodeValidationFormat,
			fmt.Sprintf("ID '%s' không đúng định dạng MongoDB ObjectID (phải là chuỗi hex 24 ký tự)", id),
			common.StatusBadRequest,
			nil,
		)
	}
	return primitive.ObjectIDFromHex(id)
}

// HandleCreate tạo video mới cho kênh của người dùng đang đăng nhập
func (h *VideoHandler) HandleCreate(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		user, err := h.requireUser(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input videodto.VideoCreateInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		video, err := h.videoService.Create(c.Context(), user.ID, user.Username, &input)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		logger.LogCRUD("create", "video", video.ID.Hex(), c, map[string]interface{}{"channel": video.OwnerUsername})
		h.HandleCreatedResponse(c, video, nil)
		return nil
	})
}

// HandleGet lấy một video theo ID, đồng thời ghi nhận lượt xem.
// View counter được tăng atomic và response chứa số view sau khi tăng.
func (h *VideoHandler) HandleGet(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := h.parseVideoID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		video, err := h.videoService.RecordView(c.Context(), id)
		h.HandleResponse(c, video, err)
		return nil
	})
}

// HandleAction ghi nhận tương tác với video (like | share)
func (h *VideoHandler) HandleAction(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		id, err := h.parseVideoID(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		var input videodto.VideoActionInput
		if err := h.ParseRequestBody(c, &input); err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		video, err := h.videoService.ApplyAction(c.Context(), id, input.Action)
		h.HandleResponse(c, video, err)
		return nil
	})
}

// HandleLatest liệt kê các video mới nhất
func (h *VideoHandler) HandleLatest(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		videos, err := h.videoService.Latest(c.Context())
		h.HandleResponse(c, videos, err)
		return nil
	})
}

// HandleTrending trả về snapshot các video hot nhất từ cache
func (h *VideoHandler) HandleTrending(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		videos, err := h.trendingWorker.Snapshot(c.Context())
		h.HandleResponse(c, videos, err)
		return nil
	})
}

// HandleSearch tìm video theo từ khóa.
// Query param q bắt buộc; type=channel match chính xác tên kênh.
func (h *VideoHandler) HandleSearch(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		query := c.Query("q")
		if query == "" {
			h.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, "Thiếu tham số q", common.StatusBadRequest, nil))
			return nil
		}
		videos, err := h.videoService.Search(c.Context(), query, c.Query("type"))
		h.HandleResponse(c, videos, err)
		return nil
	})
}

// HandleOwnerStats trả về danh sách video của kênh người dùng đang đăng nhập
// kèm tổng số video và tổng thời gian xem
func (h *VideoHandler) HandleOwnerStats(c fiber.Ctx) error {
	return h.SafeHandler(c, func() error {
		user, err := h.requireUser(c)
		if err != nil {
			h.HandleResponse(c, nil, err)
			return nil
		}
		stats, err := h.videoService.OwnerStats(c.Context(), user.ID)
		h.HandleResponse(c, stats, err)
		return nil
	})
}
