package logger

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"sync"

	"github.com/sirupsen/logrus"
)

// AsyncHook ghi log entries bất đồng bộ vào một hoặc nhiều writer.
// Fire không bao giờ block: entry được đưa vào channel có buffer, goroutine
// riêng format và ghi. Channel đầy thì entry bị bỏ để không chặn request.
type AsyncHook struct {
	writers []io.Writer
	entries chan *logrus.Entry
	wg      sync.WaitGroup
	mu      sync.Mutex
	closed  bool
}

// NewAsyncHook tạo async hook với buffer bufferSize entry (<=0 thì dùng 1000).
func NewAsyncHook(writers []io.Writer, bufferSize int) *AsyncHook {
	if bufferSize <= 0 {
		bufferSize = 1000
	}

	hook := &AsyncHook{
		writers: writers,
		entries: make(chan *logrus.Entry, bufferSize),
	}

	hook.wg.Add(1)
	go hook.drain()

	return hook
}

// Levels áp dụng cho mọi level.
func (h *AsyncHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire đưa entry vào channel, không block.
func (h *AsyncHook) Fire(entry *logrus.Entry) error {
	h.mu.Lock()
	closed := h.closed
	h.mu.Unlock()

	if closed {
		// Hook đã đóng: ghi đồng bộ trực tiếp để không mất entry cuối
		h.write(entry)
		return nil
	}

	select {
	case h.entries <- entry:
	default:
		// Channel đầy: bỏ entry. Không được log ở đây, sẽ tạo vòng lặp.
	}

	return nil
}

// drain xử lý entries trong goroutine riêng. Có recover để một entry lỗi
// không giết goroutine ghi log của cả server.
func (h *AsyncHook) drain() {
	defer h.wg.Done()

	for entry := range h.entries {
		func() {
			defer func() {
				if r := recover(); r != nil {
					fmt.Fprintf(os.Stderr, "[LOGGER PANIC] recovered: %v\n", r)
					debug.PrintStack()
				}
			}()
			h.write(entry)
		}()
	}
}

// write format entry bằng formatter của logger rồi ghi vào mọi writer.
func (h *AsyncHook) write(entry *logrus.Entry) {
	var data []byte
	var err error

	if entry.Logger != nil && entry.Logger.Formatter != nil {
		data, err = entry.Logger.Formatter.Format(entry)
	} else {
		var line string
		line, err = entry.String()
		data = []byte(line)
	}
	if err != nil {
		return
	}

	for _, writer := range h.writers {
		// Writer lỗi thì bỏ qua, thử writer tiếp theo
		_, _ = writer.Write(data)
	}
}

// Close đóng hook và đợi mọi entry trong buffer được ghi xong.
func (h *AsyncHook) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true
	h.mu.Unlock()

	close(h.entries)
	h.wg.Wait()
	return nil
}
