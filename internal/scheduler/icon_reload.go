package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/linkedit/internal/domain"
	"github.com/MrSnakeDoc/linkedit/internal/logger"
	"github.com/MrSnakeDoc/linkedit/internal/sources/seed"
)

// IconPackReloader handles periodic reloading of the static icon pack
type IconPackReloader struct {
	loader        *seed.Loader
	pack          *domain.ReloadablePack
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewIconPackReloader creates a new icon pack reloader
func NewIconPackReloader(
	iconsFile string,
	pack *domain.ReloadablePack,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *IconPackReloader {
	return &IconPackReloader{
		loader:        seed.NewLoader(iconsFile),
		pack:          pack,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads the pack once, then keeps it fresh until Stop or ctx is done
func (ir *IconPackReloader) Start(ctx context.Context) error {
	if err := ir.Reload(); err != nil {
		return fmt.Errorf("initial reload failed: %w", err)
	}

	ticker := time.NewTicker(ir.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := ir.Reload(); err != nil {
					ir.logger.Error("failed to reload icon pack",
						logger.Error(err))
				}
			case <-ir.manualTrigger:
				ir.logger.Info("manual reload triggered")
				if err := ir.Reload(); err != nil {
					ir.logger.Error("failed to reload icon pack",
						logger.Error(err))
				}
			case <-ir.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader
func (ir *IconPackReloader) Stop() {
	close(ir.stopCh)
}

// Reload reads the icons file and swaps the pack. On error the previous pack
// stays in place.
func (ir *IconPackReloader) Reload() error {
	config, err := ir.loader.LoadIcons()
	if err != nil {
		return fmt.Errorf("failed to load icons: %w", err)
	}

	pack, label := seed.MapIcons(config)
	ir.pack.Swap(pack, label)

	ir.logger.Info("icon pack loaded",
		logger.String("label", label),
		logger.Int("count", len(pack.Names())))
	return nil
}
