package monitoring

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/spacesedan/commentlens/internal/clients"
)

const HEALTHCHECK_TIMER = 15

// MonitorAnalyzerHealth polls the remote sentiment service and mirrors its
// state into healthy, which the status endpoint reads.
func MonitorAnalyzerHealth(ctx context.Context, healthy *atomic.Bool) {
	ticker := time.NewTicker(time.Second * HEALTHCHECK_TIMER)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			isHealthy := clients.GetHuggingFaceClient().AnalyzerHealthCheck()
			healthy.Store(isHealthy)
			if !isHealthy {
				slog.Warn("[HealthCheck] Analyzer is unhealthy")
			}
		}
	}
}
