package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/modatienda/boutique_api/internal/service"
)

// SnapshotWorker recomputes the daily KPI snapshot periodically so the
// dashboard stays fresh even when no admin has opened it.
type SnapshotWorker struct {
	kpiService *service.KPIService
	interval   time.Duration
}

// NewSnapshotWorker constructs a SnapshotWorker.
func NewSnapshotWorker(kpiService *service.KPIService, interval time.Duration) *SnapshotWorker {
	return &SnapshotWorker{
		kpiService: kpiService,
		interval:   interval,
	}
}

// Start begins the periodic snapshot loop until context is canceled.
func (w *SnapshotWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Msg("Starting snapshot worker")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run()
		case <-ctx.Done():
			log.Info().Msg("Snapshot worker stopped")
			return
		}
	}
}

func (w *SnapshotWorker) run() {
	start := time.Now()
	if err := w.kpiService.RefreshSnapshot(); err != nil {
		log.Error().Err(err).Msg("Snapshot refresh failed")
		return
	}
	log.Debug().Dur("took", time.Since(start)).Msg("Snapshot refreshed")
}
