package scheduler

import (
	"context"
	"time"

	"github.com/paperdesk/paperdesk/internal/logger"
	"github.com/paperdesk/paperdesk/internal/papers"
)

// Refresher runs the catalog refresh periodically and on manual
// triggers. All refreshes run on the one scheduler goroutine, so a
// trigger that lands while a refresh is in flight waits for it instead
// of racing it.
type Refresher struct {
	service       *papers.Service
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewRefresher creates a refresher. manualTrigger should have capacity
// 1 so bursts of trigger requests collapse into a single pending
// refresh.
func NewRefresher(
	service *papers.Service,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *Refresher {
	return &Refresher{
		service:       service,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start runs one refresh synchronously, then begins the periodic loop.
// A failed initial refresh is not fatal: papers already in the store
// keep serving until the next attempt succeeds.
func (r *Refresher) Start(ctx context.Context) {
	if err := r.refresh(ctx); err != nil {
		r.logger.Warn("initial refresh failed, serving stored papers",
			logger.Error(err))
	}

	ticker := time.NewTicker(r.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := r.refresh(ctx); err != nil {
					r.logger.Error("scheduled refresh failed",
						logger.Error(err))
				}
			case <-r.manualTrigger:
				r.logger.Info("manual refresh triggered")
				if err := r.refresh(ctx); err != nil {
					r.logger.Error("manual refresh failed",
						logger.Error(err))
				}
			case <-r.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the refresher.
func (r *Refresher) Stop() {
	close(r.stopCh)
}

// refresh fetches the whole catalog. Date windows are a view concern;
// the store keeps everything the source knows about.
func (r *Refresher) refresh(ctx context.Context) error {
	return r.service.Refresh(ctx, time.Time{})
}
