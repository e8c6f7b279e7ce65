package registry

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry[string]()

	isNew, err := r.Register("videos", "col-videos")
	assert.NoError(t, err)
	assert.True(t, isNew)

	item, exists := r.Get("videos")
	assert.True(t, exists)
	assert.Equal(t, "col-videos", item)

	_, exists = r.Get("khong-ton-tai")
	assert.False(t, exists)
}

func TestRegistry_RegisterOverwrite(t *testing.T) {
	r := NewRegistry[int]()
	r.Register("a", 1)

	// Đăng ký lại cùng tên: ghi đè, isNew = false
	isNew, err := r.Register("a", 2)
	assert.NoError(t, err)
	assert.False(t, isNew)

	item, _ := r.Get("a")
	assert.Equal(t, 2, item)
}

func TestRegistry_RegisterEmptyName(t *testing.T) {
	r := NewRegistry[int]()
	_, err := r.Register("", 1)
	assert.Error(t, err)
}

func TestRegistry_GetOrCreate(t *testing.T) {
	r := NewRegistry[int]()
	calls := 0

	creator := func() (int, error) {
		calls++
		return 99, nil
	}

	item, err := r.GetOrCreate("x", creator)
	assert.NoError(t, err)
	assert.Equal(t, 99, item)

	// Lần thứ hai trả về item đã có, không gọi lại creator
	item, err = r.GetOrCreate("x", creator)
	assert.NoError(t, err)
	assert.Equal(t, 99, item)
	assert.Equal(t, 1, calls)
}

func TestRegistry_GetOrCreate_CreatorError(t *testing.T) {
	r := NewRegistry[int]()
	_, err := r.GetOrCreate("x", func() (int, error) {
		return 0, errors.New("tạo thất bại")
	})
	assert.Error(t, err)

	// Creator lỗi thì không được lưu item
	_, exists := r.Get("x")
	assert.False(t, exists)
}

func TestRegistry_ConcurrentAccess(t *testing.T) {
	r := NewRegistry[int]()
	var wg sync.WaitGroup

	// Ghi và đọc đồng thời: chạy với -race để phát hiện data race
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			r.Register("shared", n)
		}(i)
		go func() {
			defer wg.Done()
			r.Get("shared")
		}()
	}
	wg.Wait()

	_, exists := r.Get("shared")
	assert.True(t, exists)
}

func TestRegistry_Clear(t *testing.T) {
	r := NewRegistry[int]()
	r.Register("a", 1)

	cleaned := false
	deleted, err := r.Clear("a", func(int) error {
		cleaned = true
		return nil
	})
	assert.NoError(t, err)
	assert.True(t, deleted)
	assert.True(t, cleaned)

	_, exists := r.Get("a")
	assert.False(t, exists)

	// Clear item không tồn tại: không lỗi, deleted = false
	deleted, err = r.Clear("a", nil)
	assert.NoError(t, err)
	assert.False(t, deleted)
}
