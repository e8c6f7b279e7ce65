package worker

import (
	"context"
	"sync"
	"time"

	"github.com/PragyeNawani/bharattube/internal/api/events"
	videomodels "github.com/PragyeNawani/bharattube/internal/api/video/models"
	videosvc "github.com/PragyeNawani/bharattube/internal/api/video/service"
	"github.com/PragyeNawani/bharattube/internal/global"
	"github.com/PragyeNawani/bharattube/internal/logger"
	"github.com/PragyeNawani/bharattube/internal/utility"
)

// trendingCacheKey key của snapshot trending trong cache
const trendingCacheKey = "trending_videos"

// TrendingRefreshWorker worker làm mới snapshot trending định kỳ.
// Kết quả được giữ trong cache để endpoint /videos/trending không phải
// sort toàn bộ collection trên mỗi request. Khi có thay đổi dữ liệu video
// (insert/update/delete), snapshot bị invalidate ngay qua event bus và
// được dựng lại ở lần chạy tiếp theo hoặc lần đọc tiếp theo.
type TrendingRefreshWorker struct {
	videoService *videosvc.VideoService
	cache        *utility.Cache
	interval     time.Duration // Khoảng thời gian giữa các lần làm mới
	limit        int64         // Số video giữ trong snapshot
}

var (
	trendingCacheInstance *utility.Cache
	trendingCacheOnce     sync.Once

	trendingWorkerInstance *TrendingRefreshWorker
	trendingWorkerErr      error
	trendingWorkerOnce     sync.Once
)

// GetTrendingCache trả về cache trending dùng chung (singleton pattern)
func GetTrendingCache() *utility.Cache {
	trendingCacheOnce.Do(func() {
		trendingCacheInstance = utility.NewCache(5*time.Minute, 10*time.Minute)
	})
	return trendingCacheInstance
}

// GetTrendingRefreshWorker trả về instance duy nhất của TrendingRefreshWorker,
// cấu hình theo server config. Handler và main dùng chung một instance để
// snapshot và vòng làm mới chia sẻ cùng cache.
func GetTrendingRefreshWorker() (*TrendingRefreshWorker, error) {
	trendingWorkerOnce.Do(func() {
		interval := 60 * time.Second
		limit := int64(20)
		if cfg := global.MongoDB_ServerConfig; cfg != nil {
			if cfg.Trending_RefreshSeconds > 0 {
				interval = time.Duration(cfg.Trending_RefreshSeconds) * time.Second
			}
			if cfg.Trending_Limit > 0 {
				limit = int64(cfg.Trending_Limit)
			}
		}
		trendingWorkerInstance, trendingWorkerErr = NewTrendingRefreshWorker(interval, limit)
	})
	return trendingWorkerInstance, trendingWorkerErr
}

// NewTrendingRefreshWorker tạo mới TrendingRefreshWorker.
// Tham số:
//   - interval: Khoảng thời gian giữa các lần làm mới (mặc định: 60 giây)
//   - limit: Số video giữ trong snapshot (mặc định: 20)
func NewTrendingRefreshWorker(interval time.Duration, limit int64) (*TrendingRefreshWorker, error) {
	videoService, err := videosvc.NewVideoService()
	if err != nil {
		return nil, err
	}
	if interval < time.Second {
		interval = 60 * time.Second
	}
	if limit <= 0 {
		limit = 20
	}

	w := &TrendingRefreshWorker{
		videoService: videoService,
		cache:        GetTrendingCache(),
		interval:     interval,
		limit:        limit,
	}

	// Invalidate snapshot ngay khi dữ liệu video thay đổi
	events.OnDataChanged(func(ctx context.Context, event events.DataChangeEvent) {
		if event.CollectionName == global.MongoDB_ColNames.Videos {
			w.cache.Delete(trendingCacheKey)
		}
	})

	return w, nil
}

// Snapshot trả về snapshot trending hiện tại từ cache,
// dựng lại từ database nếu cache trống.
func (w *TrendingRefreshWorker) Snapshot(ctx context.Context) ([]videomodels.Video, error) {
	if cached, found := w.cache.Get(trendingCacheKey); found {
		return cached.([]videomodels.Video), nil
	}
	return w.refresh(ctx)
}

// refresh dựng lại snapshot trending từ database và lưu vào cache
func (w *TrendingRefreshWorker) refresh(ctx context.Context) ([]videomodels.Video, error) {
	videos, err := w.videoService.Trending(ctx, w.limit)
	if err != nil {
		return nil, err
	}
	w.cache.Set(trendingCacheKey, videos)
	return videos, nil
}

// Start chạy worker trong vòng lặp: mỗi interval làm mới snapshot trending.
func (w *TrendingRefreshWorker) Start(ctx context.Context) {
	log := logger.GetAppLogger()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.WithFields(map[string]interface{}{
		"interval": w.interval.String(),
		"limit":    w.limit,
	}).Info("🔥 [TRENDING] Starting Trending Refresh Worker...")

	for {
		select {
		case <-ctx.Done():
			log.Info("🔥 [TRENDING] Trending Refresh Worker stopped")
			return
		case <-ticker.C:
			func() {
				defer func() {
					if r := recover(); r != nil {
						log.WithFields(map[string]interface{}{
							"panic": r,
						}).Error("🔥 [TRENDING] Panic khi làm mới trending, sẽ tiếp tục ở lần chạy tiếp theo")
					}
				}()

				if _, err := w.refresh(ctx); err != nil {
					log.WithError(err).Warn("🔥 [TRENDING] Lỗi làm mới trending snapshot, giữ snapshot cũ")
				}
			}()
		}
	}
}
