// Package subscriptionsvc - Test nghiệp vụ đăng ký kênh với store trong bộ nhớ.
package subscriptionsvc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	authmodels "github.com/PragyeNawani/bharattube/internal/api/auth/models"
	models "github.com/PragyeNawani/bharattube/internal/api/subscription/models"
	"github.com/PragyeNawani/bharattube/internal/common"
)

// memorySubscriptionStore giả lập collection subscriptions bằng map trong bộ nhớ,
// key theo cặp (subscriberId, channelId) giống compound unique index thật.
type memorySubscriptionStore struct {
	edges     map[string]models.Subscription
	insertErr error
}

func newMemorySubscriptionStore() *memorySubscriptionStore {
	return &memorySubscriptionStore{edges: make(map[string]models.Subscription)}
}

func edgeKey(subscriberID, channelID primitive.ObjectID) string {
	return subscriberID.Hex() + "|" + channelID.Hex()
}

// filterEdgeKey đọc cặp id từ filter mà service xây dựng
func filterEdgeKey(filter interface{}) (string, bool) {
	m, ok := filter.(bson.M)
	if !ok {
		return "", false
	}
	subscriberID, ok1 := m["subscriberId"].(primitive.ObjectID)
	channelID, ok2 := m["channelId"].(primitive.ObjectID)
	if !ok1 || !ok2 {
		return "", false
	}
	return edgeKey(subscriberID, channelID), true
}

func (s *memorySubscriptionStore) DocumentExists(ctx context.Context, filter interface{}) (bool, error) {
	key, ok := filterEdgeKey(filter)
	if !ok {
		return false, nil
	}
	_, exists := s.edges[key]
	return exists, nil
}

func (s *memorySubscriptionStore) InsertOne(ctx context.Context, data models.Subscription) (models.Subscription, error) {
	if s.insertErr != nil {
		return models.Subscription{}, s.insertErr
	}
	key := edgeKey(data.SubscriberID, data.ChannelID)
	if _, exists := s.edges[key]; exists {
		return models.Subscription{}, common.ErrMongoDuplicate
	}
	data.ID = primitive.NewObjectID()
	s.edges[key] = data
	return data, nil
}

func (s *memorySubscriptionStore) DeleteOne(ctx context.Context, filter interface{}) error {
	key, ok := filterEdgeKey(filter)
	if !ok {
		return common.ErrNotFound
	}
	if _, exists := s.edges[key]; !exists {
		return common.ErrNotFound
	}
	delete(s.edges, key)
	return nil
}

func (s *memorySubscriptionStore) CountDocuments(ctx context.Context, filter interface{}) (int64, error) {
	m, ok := filter.(bson.M)
	if !ok {
		return 0, nil
	}
	channelID, ok := m["channelId"].(primitive.ObjectID)
	if !ok {
		return 0, nil
	}

	var count int64
	for _, edge := range s.edges {
		if edge.ChannelID == channelID {
			count++
		}
	}
	return count, nil
}

func (s *memorySubscriptionStore) Find(ctx context.Context, filter interface{}, opts *options.FindOptions) ([]models.Subscription, error) {
	m, ok := filter.(bson.M)
	if !ok {
		return nil, nil
	}
	subscriberID, ok := m["subscriberId"].(primitive.ObjectID)
	if !ok {
		return nil, nil
	}

	var result []models.Subscription
	for _, edge := range s.edges {
		if edge.SubscriberID == subscriberID {
			result = append(result, edge)
		}
	}
	return result, nil
}

// memoryChannelResolver tra user theo username từ map cố định
type memoryChannelResolver struct {
	users map[string]authmodels.User
}

func (r *memoryChannelResolver) FindByUsername(ctx context.Context, username string) (authmodels.User, error) {
	user, exists := r.users[username]
	if !exists {
		return authmodels.User{}, common.ErrNotFound
	}
	return user, nil
}

// newTestSubscriptionService dựng service với store và resolver trong bộ nhớ,
// kèm hai user: viewer (người đăng ký) và channel (chủ kênh).
func newTestSubscriptionService() (*SubscriptionService, *memorySubscriptionStore, authmodels.User, authmodels.User) {
	viewer := authmodels.User{ID: primitive.NewObjectID(), Username: "viewer1"}
	channel := authmodels.User{ID: primitive.NewObjectID(), Username: "musicindia"}

	store := newMemorySubscriptionStore()
	service := &SubscriptionService{
		store: store,
		users: &memoryChannelResolver{users: map[string]authmodels.User{
			viewer.Username:  viewer,
			channel.Username: channel,
		}},
	}
	return service, store, viewer, channel
}

func assertAppError(t *testing.T, err error, wantStatus int) *common.Error {
	t.Helper()
	var appErr *common.Error
	if !assert.ErrorAs(t, err, &appErr) {
		t.FailNow()
	}
	assert.Equal(t, wantStatus, appErr.StatusCode)
	return appErr
}

func TestSubscribe_ThenIsSubscribedAndCount(t *testing.T) {
	service, _, viewer, channel := newTestSubscriptionService()
	ctx := context.Background()

	before, err := service.CountSubscribers(ctx, channel.Username)
	assert.NoError(t, err)

	created, err := service.Subscribe(ctx, viewer.ID, viewer.Username, channel.Username)
	assert.NoError(t, err)
	assert.Equal(t, channel.ID, created.ChannelID)
	assert.Equal(t, viewer.Username, created.SubscriberUsername)

	// Ngay sau khi subscribe: isSubscribed phải true và count tăng đúng 1
	assert.True(t, service.IsSubscribed(ctx, viewer.ID, channel.Username))

	after, err := service.CountSubscribers(ctx, channel.Username)
	assert.NoError(t, err)
	assert.Equal(t, before+1, after)
}

func TestSubscribe_DuplicateReturns400(t *testing.T) {
	service, _, viewer, channel := newTestSubscriptionService()
	ctx := context.Background()

	_, err := service.Subscribe(ctx, viewer.ID, viewer.Username, channel.Username)
	assert.NoError(t, err)

	_, err = service.Subscribe(ctx, viewer.ID, viewer.Username, channel.Username)
	appErr := assertAppError(t, err, common.StatusBadRequest)
	assert.Equal(t, "Already subscribed", appErr.Message)

	// Subscribe trùng không được làm count tăng thêm
	count, err := service.CountSubscribers(ctx, channel.Username)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestSubscribe_DuplicateRaceReturns400(t *testing.T) {
	service, store, viewer, channel := newTestSubscriptionService()
	ctx := context.Background()

	// Hai request subscribe đồng thời: request thứ hai qua được check exists
	// nhưng InsertOne bắn duplicate từ compound unique index
	store.insertErr = common.ErrMongoDuplicate

	_, err := service.Subscribe(ctx, viewer.ID, viewer.Username, channel.Username)
	appErr := assertAppError(t, err, common.StatusBadRequest)
	assert.Equal(t, "Already subscribed", appErr.Message)
}

func TestSubscribe_SelfReturns400(t *testing.T) {
	service, _, viewer, _ := newTestSubscriptionService()

	_, err := service.Subscribe(context.Background(), viewer.ID, viewer.Username, viewer.Username)
	appErr := assertAppError(t, err, common.StatusBadRequest)
	assert.Equal(t, "Cannot subscribe to yourself", appErr.Message)
}

func TestSubscribe_UnknownChannelReturns404(t *testing.T) {
	service, _, viewer, _ := newTestSubscriptionService()

	_, err := service.Subscribe(context.Background(), viewer.ID, viewer.Username, "khong-ton-tai")
	appErr := assertAppError(t, err, common.StatusNotFound)
	assert.Equal(t, "Channel not found", appErr.Message)
}

func TestUnsubscribe_RemovesEdge(t *testing.T) {
	service, _, viewer, channel := newTestSubscriptionService()
	ctx := context.Background()

	_, err := service.Subscribe(ctx, viewer.ID, viewer.Username, channel.Username)
	assert.NoError(t, err)

	err = service.Unsubscribe(ctx, viewer.ID, channel.Username)
	assert.NoError(t, err)

	assert.False(t, service.IsSubscribed(ctx, viewer.ID, channel.Username))
	count, err := service.CountSubscribers(ctx, channel.Username)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestUnsubscribe_TwiceReturns404(t *testing.T) {
	service, _, viewer, channel := newTestSubscriptionService()
	ctx := context.Background()

	_, err := service.Subscribe(ctx, viewer.ID, viewer.Username, channel.Username)
	assert.NoError(t, err)
	assert.NoError(t, service.Unsubscribe(ctx, viewer.ID, channel.Username))

	// Hủy lần hai: edge đã mất, phải trả về 404 chứ không im lặng thành công
	err = service.Unsubscribe(ctx, viewer.ID, channel.Username)
	appErr := assertAppError(t, err, common.StatusNotFound)
	assert.Equal(t, "Subscription not found", appErr.Message)
}

func TestIsSubscribed_UnknownChannelDegradesToFalse(t *testing.T) {
	service, _, viewer, _ := newTestSubscriptionService()

	// Endpoint công khai: kênh không tồn tại trả về false thay vì lỗi
	assert.False(t, service.IsSubscribed(context.Background(), viewer.ID, "khong-ton-tai"))
}

func TestListForSubscriber_OnlyOwnEdges(t *testing.T) {
	service, store, viewer, channel := newTestSubscriptionService()
	ctx := context.Background()

	_, err := service.Subscribe(ctx, viewer.ID, viewer.Username, channel.Username)
	assert.NoError(t, err)

	// Edge của người khác không được lẫn vào kết quả
	other := models.Subscription{
		SubscriberID:       primitive.NewObjectID(),
		SubscriberUsername: "viewer2",
		ChannelID:          channel.ID,
		ChannelUsername:    channel.Username,
	}
	_, err = store.InsertOne(ctx, other)
	assert.NoError(t, err)

	subscriptions, err := service.ListForSubscriber(ctx, viewer.ID)
	assert.NoError(t, err)
	if assert.Len(t, subscriptions, 1) {
		assert.Equal(t, viewer.Username, subscriptions[0].SubscriberUsername)
		assert.Equal(t, channel.Username, subscriptions[0].ChannelUsername)
	}
}
