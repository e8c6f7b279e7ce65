// Package videosvc - Test filter tìm kiếm, ước lượng watch time
// và nghiệp vụ counter view/action với store trong bộ nhớ.
package videosvc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "github.com/PragyeNawani/bharattube/internal/api/base/service"
	models "github.com/PragyeNawani/bharattube/internal/api/video/models"
	"github.com/PragyeNawani/bharattube/internal/common"
)

func TestSearchFilter_ChannelExactMatch(t *testing.T) {
	filter := SearchFilter("MusicIndia", "channel")

	usernameCond, ok := filter["username"].(bson.M)
	if !ok {
		t.Fatalf("filter channel phải match trên username, nhận được: %#v", filter)
	}
	// Match chính xác: regex phải được anchor cả hai đầu và không phân biệt hoa thường
	assert.Equal(t, "^MusicIndia$", usernameCond["$regex"])
	assert.Equal(t, "i", usernameCond["$options"])
}

func TestSearchFilter_EscapesRegexMeta(t *testing.T) {
	// Ký tự đặc biệt của regex trong query phải được escape,
	// nếu không "c++ tutorial" sẽ thành regex không hợp lệ
	filter := SearchFilter("c++ (tutorial)", "channel")

	usernameCond := filter["username"].(bson.M)
	assert.Equal(t, `^c\+\+ \(tutorial\)$`, usernameCond["$regex"])
}

func TestSearchFilter_DefaultSubstringFields(t *testing.T) {
	filter := SearchFilter("bollywood", "")

	orConds, ok := filter["$or"].(bson.A)
	if !ok {
		t.Fatalf("filter mặc định phải dùng $or, nhận được: %#v", filter)
	}
	assert.Len(t, orConds, 4)

	// Substring match không anchor trên cả 4 field
	for i, field := range []string{"title", "description", "tags", "username"} {
		cond := orConds[i].(bson.M)[field].(bson.M)
		assert.Equal(t, "bollywood", cond["$regex"], "field %s", field)
		assert.Equal(t, "i", cond["$options"], "field %s", field)
	}
}

func TestEngagementUpdate_Like(t *testing.T) {
	update, err := EngagementUpdate(ActionLike)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), update.Inc["likes"])
	assert.NotContains(t, update.Inc, "shares")
}

func TestEngagementUpdate_Share(t *testing.T) {
	update, err := EngagementUpdate(ActionShare)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), update.Inc["shares"])
	assert.NotContains(t, update.Inc, "likes")
}

func TestEngagementUpdate_InvalidAction(t *testing.T) {
	update, err := EngagementUpdate("dislike")
	assert.Nil(t, update)

	var appErr *common.Error
	if !assert.ErrorAs(t, err, &appErr) {
		return
	}
	// Action không hợp lệ phải trả về 400, không phải 500
	assert.Equal(t, common.StatusBadRequest, appErr.StatusCode)
	assert.Equal(t, common.ErrCodeBusinessOperation.Code, appErr.Code.Code)
}

func TestEstimateWatchTime_UsesStoredMinutes(t *testing.T) {
	video := models.Video{Views: 100, WatchTimeMinutes: 42}
	assert.Equal(t, int64(42), EstimateWatchTime(video))
}

func TestEstimateWatchTime_FallsBackToViews(t *testing.T) {
	// Chưa có số liệu watch time thực tế: ước lượng từ lượt view
	video := models.Video{Views: 7}
	assert.Equal(t, int64(7*estimatedMinutesPerView), EstimateWatchTime(video))
}

func TestEstimateWatchTime_ZeroViews(t *testing.T) {
	assert.Equal(t, int64(0), EstimateWatchTime(models.Video{}))
}

// memoryVideoStore giả lập collection videos cho test counter view/action
type memoryVideoStore struct {
	video models.Video
	err   error
	calls int
}

func (s *memoryVideoStore) FindOneAndUpdate(ctx context.Context, filter interface{}, update interface{}, opts *options.FindOneAndUpdateOptions) (models.Video, error) {
	s.calls++
	if s.err != nil {
		return models.Video{}, s.err
	}

	// Áp dụng $inc lên bản sao trong bộ nhớ, giống ReturnDocument(After)
	if data, ok := update.(*basesvc.UpdateData); ok {
		s.video.Views += asInt64(data.Inc["views"])
		s.video.Likes += asInt64(data.Inc["likes"])
		s.video.Shares += asInt64(data.Inc["shares"])
	}
	return s.video, nil
}

func asInt64(value interface{}) int64 {
	n, _ := value.(int64)
	return n
}

func TestRecordView_IncrementsViews(t *testing.T) {
	store := &memoryVideoStore{video: models.Video{ID: primitive.NewObjectID(), Views: 9}}
	service := &VideoService{store: store}

	video, err := service.RecordView(context.Background(), store.video.ID)
	assert.NoError(t, err)
	assert.Equal(t, int64(10), video.Views)
}

func TestRecordView_UnknownVideoReturns404(t *testing.T) {
	store := &memoryVideoStore{err: common.ErrNotFound}
	service := &VideoService{store: store}

	_, err := service.RecordView(context.Background(), primitive.NewObjectID())

	// Video không tồn tại: lỗi 404 phải được giữ nguyên tới handler
	var appErr *common.Error
	if assert.ErrorAs(t, err, &appErr) {
		assert.Equal(t, common.StatusNotFound, appErr.StatusCode)
	}
}

func TestApplyAction_LikeIncrementsLikes(t *testing.T) {
	store := &memoryVideoStore{video: models.Video{ID: primitive.NewObjectID(), Likes: 3}}
	service := &VideoService{store: store}

	video, err := service.ApplyAction(context.Background(), store.video.ID, ActionLike)
	assert.NoError(t, err)
	assert.Equal(t, int64(4), video.Likes)
	assert.Equal(t, int64(0), video.Views)
}

func TestApplyAction_UnknownVideoReturns404(t *testing.T) {
	store := &memoryVideoStore{err: common.ErrNotFound}
	service := &VideoService{store: store}

	_, err := service.ApplyAction(context.Background(), primitive.NewObjectID(), ActionShare)

	var appErr *common.Error
	if assert.ErrorAs(t, err, &appErr) {
		assert.Equal(t, common.StatusNotFound, appErr.StatusCode)
	}
}

func TestApplyAction_InvalidActionReturns400WithoutWrite(t *testing.T) {
	store := &memoryVideoStore{}
	service := &VideoService{store: store}

	_, err := service.ApplyAction(context.Background(), primitive.NewObjectID(), "dislike")

	// Action không hợp lệ là 400 và không được chạm vào database
	var appErr *common.Error
	if assert.ErrorAs(t, err, &appErr) {
		assert.Equal(t, common.StatusBadRequest, appErr.StatusCode)
	}
	assert.Equal(t, 0, store.calls)
}
