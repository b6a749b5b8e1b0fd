package scheduler

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/linkedit/internal/collection"
	"github.com/MrSnakeDoc/linkedit/internal/logger"
)

// OrphanStore is the part of the link store the collector needs.
type OrphanStore interface {
	ScanLinkIDs(ctx context.Context) ([]string, error)
	GetOrder(ctx context.Context) ([]string, error)
	DeleteLinkKeys(ctx context.Context, ids ...string) error
}

// OrphanCollector drops link keys that neither the order list nor the
// in-memory collection reference. They are left behind when a delete
// fails halfway.
type OrphanCollector struct {
	store    OrphanStore
	links    *collection.Collection
	logger   logger.Logger
	interval time.Duration
	stopCh   chan struct{}
}

// NewOrphanCollector creates a new orphan collector
func NewOrphanCollector(
	store OrphanStore,
	links *collection.Collection,
	log logger.Logger,
	interval time.Duration,
) *OrphanCollector {
	return &OrphanCollector{
		store:    store,
		links:    links,
		logger:   log,
		interval: interval,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic collection process
func (oc *OrphanCollector) Start(ctx context.Context) error {
	if _, err := oc.Collect(ctx); err != nil {
		oc.logger.Warn("initial orphan collection failed",
			logger.Error(err))
	}

	ticker := time.NewTicker(oc.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if _, err := oc.Collect(ctx); err != nil {
					oc.logger.Error("orphan collection failed",
						logger.Error(err))
				}
			case <-oc.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the collector
func (oc *OrphanCollector) Stop() {
	close(oc.stopCh)
}

// Collect deletes orphaned link keys and returns how many were removed
func (oc *OrphanCollector) Collect(ctx context.Context) (int, error) {
	ids, err := oc.store.ScanLinkIDs(ctx)
	if err != nil {
		return 0, err
	}

	order, err := oc.store.GetOrder(ctx)
	if err != nil {
		return 0, err
	}

	referenced := make(map[string]struct{}, len(order))
	for _, id := range order {
		referenced[id] = struct{}{}
	}

	var orphans []string
	for _, id := range ids {
		if _, ok := referenced[id]; ok {
			continue
		}
		// Still live in memory: the order write may simply not have landed yet
		if _, ok := oc.links.Get(id); ok {
			continue
		}
		orphans = append(orphans, id)
	}

	if len(orphans) == 0 {
		oc.logger.Debug("no orphaned links to collect")
		return 0, nil
	}

	if err := oc.store.DeleteLinkKeys(ctx, orphans...); err != nil {
		return 0, err
	}

	oc.logger.Info("garbage collected orphaned links",
		logger.Int("deleted", len(orphans)),
		logger.Strings("ids", orphans))
	return len(orphans), nil
}
