// Test hạn sống của cache entry: Get không bao giờ trả về entry quá hạn.
package utility

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCache_SetGet(t *testing.T) {
	cache := NewCache(time.Minute, time.Minute)

	cache.Set("auth_user:token1", "user1")
	value, found := cache.Get("auth_user:token1")
	assert.True(t, found)
	assert.Equal(t, "user1", value)

	_, found = cache.Get("auth_user:khong-ton-tai")
	assert.False(t, found)
}

func TestCache_EntryExpiresAfterTTL(t *testing.T) {
	cache := NewCache(30*time.Millisecond, time.Minute)

	cache.Set("k", "v")
	_, found := cache.Get("k")
	assert.True(t, found, "entry vừa set phải còn sống")

	// Quá hạn ttl: Get phải coi entry như không tồn tại,
	// kể cả khi vòng dọn dẹp chưa chạy
	time.Sleep(60 * time.Millisecond)
	_, found = cache.Get("k")
	assert.False(t, found, "entry quá hạn ttl không được trả về")
}

func TestCache_ZeroTTLNeverExpires(t *testing.T) {
	cache := NewCache(0, time.Minute)

	cache.Set("k", "v")
	time.Sleep(20 * time.Millisecond)
	_, found := cache.Get("k")
	assert.True(t, found, "ttl <= 0 nghĩa là entry sống mãi")
}

func TestCache_Delete(t *testing.T) {
	cache := NewCache(time.Minute, time.Minute)

	cache.Set("k", "v")
	cache.Delete("k")
	_, found := cache.Get("k")
	assert.False(t, found)
}
