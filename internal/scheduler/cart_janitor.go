package scheduler

import (
	"time"

	"github.com/appessoa/PetGo/config"
	"github.com/appessoa/PetGo/internal/app/repository"
	"github.com/appessoa/PetGo/pkg/logger"
	"github.com/robfig/cron/v3"
)

// CartJanitor periodically marks open carts that nobody touched for the
// configured window as abandoned, so they stop counting as the user's
// current cart.
type CartJanitor struct {
	cron     *cron.Cron
	cartRepo repository.CartRepository
	cfg      config.CartConfig
}

func NewCartJanitor(cartRepo repository.CartRepository, cfg config.CartConfig) *CartJanitor {
	return &CartJanitor{
		cron:     cron.New(),
		cartRepo: cartRepo,
		cfg:      cfg,
	}
}

func (j *CartJanitor) Start() error {
	_, err := j.cron.AddFunc(j.cfg.JanitorCron, j.Run)
	if err != nil {
		logger.Error("Failed to register cart janitor cron job", err, map[string]interface{}{
			"spec": j.cfg.JanitorCron,
		})
		return err
	}

	j.cron.Start()
	logger.Info("Cart janitor started", map[string]interface{}{
		"spec":          j.cfg.JanitorCron,
		"abandon_after": j.cfg.AbandonAfter.String(),
	})
	return nil
}

// Run executes one sweep. Exposed so the sweep can be triggered directly.
func (j *CartJanitor) Run() {
	cutoff := time.Now().Add(-j.cfg.AbandonAfter)
	count, err := j.cartRepo.AbandonOpenCartsBefore(cutoff)
	if err != nil {
		logger.Error("Cart janitor sweep failed", err, nil)
		return
	}
	if count > 0 {
		logger.Info("Abandoned stale carts", map[string]interface{}{
			"count":  count,
			"cutoff": cutoff.Format(time.RFC3339),
		})
	}
}

func (j *CartJanitor) Stop() {
	logger.Info("Stopping cart janitor...", nil)
	j.cron.Stop()
	logger.Info("Cart janitor stopped", nil)
}
