package subscriptiondto

// SubscribeInput đầu vào đăng ký hoặc hủy đăng ký một kênh.
// Channel là username của chủ kênh.
type SubscribeInput struct {
	Channel string `json:"channelUsername" validate:"required"`
}

// SubscriberCountResult kết quả đếm số người đăng ký của một kênh.
type SubscriberCountResult struct {
	Channel string `json:"channel"`
	Count   int64  `json:"count"`
}

// SubscriptionCheckResult kết quả kiểm tra trạng thái đăng ký.
type SubscriptionCheckResult struct {
	Channel    string `json:"channel"`
	Subscribed bool   `json:"subscribed"`
}
