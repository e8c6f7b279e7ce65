package utility

import (
	"sync"
	"time"
)

// cacheItem là một entry trong cache kèm hạn sống của nó
type cacheItem struct {
	value     interface{}
	expiresAt time.Time
}

// expired kiểm tra entry đã quá hạn chưa. Entry không có hạn (ttl <= 0) sống mãi.
func (i cacheItem) expired(now time.Time) bool {
	return !i.expiresAt.IsZero() && now.After(i.expiresAt)
}

// Cache là struct để quản lý cache với thời gian sống và thời gian dọn dẹp.
// Mỗi entry hết hạn sau ttl kể từ lúc Set; vòng dọn dẹp chạy mỗi chu kỳ
// cleanup chỉ để giải phóng bộ nhớ của các entry đã quá hạn, Get tự kiểm
// tra hạn nên không bao giờ trả về entry hết hạn.
type Cache struct {
	items    map[string]cacheItem
	mu       sync.RWMutex
	ttl      time.Duration
	cleanup  time.Duration
	stopChan chan struct{}
}

// NewCache tạo một instance mới của Cache
func NewCache(ttl, cleanup time.Duration) *Cache {
	cache := &Cache{
		items:    make(map[string]cacheItem),
		ttl:      ttl,
		cleanup:  cleanup,
		stopChan: make(chan struct{}),
	}
	go cache.cleanupLoop()
	return cache
}

// Set lưu giá trị vào cache với hạn sống ttl của cache
func (c *Cache) Set(key string, value interface{}) {
	item := cacheItem{value: value}
	if c.ttl > 0 {
		item.expiresAt = time.Now().Add(c.ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = item
}

// Get lấy giá trị từ cache. Entry quá hạn coi như không tồn tại.
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, exists := c.items[key]
	if !exists || item.expired(time.Now()) {
		return nil, false
	}
	return item.value, true
}

// Delete xóa một key khỏi cache
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, key)
}

// cleanupLoop dọn các entry đã quá hạn định kỳ
func (c *Cache) cleanupLoop() {
	ticker := time.NewTicker(c.cleanup)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			c.mu.Lock()
			for k, item := range c.items {
				if item.expired(now) {
					delete(c.items, k)
				}
			}
			c.mu.Unlock()
		case <-c.stopChan:
			return
		}
	}
}
