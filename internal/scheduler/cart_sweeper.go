package scheduler

import (
	"time"

	"github.com/robfig/cron/v3"

	"github.com/asif-dev/machbazar-storefront/internal/app/repository"
	"github.com/asif-dev/machbazar-storefront/pkg/logger"
)

// CartSweeper purges carts that have gone untouched past the retention
// window, the server-side analog of an abandoned browser cart.
type CartSweeper struct {
	cron      *cron.Cron
	cartRepo  repository.CartRepository
	retention time.Duration
}

func NewCartSweeper(cartRepo repository.CartRepository, retention time.Duration) *CartSweeper {
	return &CartSweeper{
		cron:      cron.New(),
		cartRepo:  cartRepo,
		retention: retention,
	}
}

// Start schedules the hourly sweep. It runs once immediately so a restart
// does not postpone overdue cleanup by an hour.
func (s *CartSweeper) Start() error {
	if _, err := s.cron.AddFunc("@hourly", s.sweep); err != nil {
		return err
	}
	s.cron.Start()

	go s.sweep()

	logger.Info("cart sweeper started", map[string]interface{}{
		"retention": s.retention.String(),
	})
	return nil
}

func (s *CartSweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

func (s *CartSweeper) sweep() {
	cutoff := time.Now().Add(-s.retention)

	removed, err := s.cartRepo.DeleteStale(cutoff)
	if err != nil {
		logger.Error("cart sweep failed", err, nil)
		return
	}

	if removed > 0 {
		logger.Info("stale carts purged", map[string]interface{}{
			"removed": removed,
			"cutoff":  cutoff.Format(time.RFC3339),
		})
	}
}
