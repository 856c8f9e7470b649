package application

import (
	"context"
	"time"

	"github.com/wyfcoding/storefront/internal/storefront/domain"
)

// RunBanner 立即展示当前横幅，之后每个 interval 轮换一次，直到 ctx 取消
func RunBanner(ctx context.Context, carousel *domain.Carousel, interval time.Duration, show func(string)) {
	show(carousel.Current())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			show(carousel.Advance())
		}
	}
}
