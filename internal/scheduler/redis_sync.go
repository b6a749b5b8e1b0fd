package scheduler

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/linkedit/internal/collection"
	"github.com/MrSnakeDoc/linkedit/internal/domain"
	"github.com/MrSnakeDoc/linkedit/internal/logger"
	"github.com/MrSnakeDoc/linkedit/internal/sources/seed"
)

// LinkStore is the persistence side RedisSyncer reads from and seeds.
type LinkStore interface {
	GetAllLinks(ctx context.Context) ([]*domain.LinkRecord, error)
	SaveLinksMany(ctx context.Context, links []*domain.LinkRecord) error
}

// RedisSyncer loads links from Redis into the collection on startup.
// When Redis holds no links the seed file (if any) is used instead and
// written back to Redis.
type RedisSyncer struct {
	store    LinkStore
	links    *collection.Collection
	seedFile string
	logger   logger.Logger
}

// NewRedisSyncer creates a new Redis syncer. store may be nil (memory only).
func NewRedisSyncer(
	store LinkStore,
	links *collection.Collection,
	seedFile string,
	log logger.Logger,
) *RedisSyncer {
	return &RedisSyncer{
		store:    store,
		links:    links,
		seedFile: seedFile,
		logger:   log,
	}
}

// Sync fills the collection
func (rs *RedisSyncer) Sync(ctx context.Context) error {
	if rs.store != nil {
		rs.logger.Info("syncing links from redis to memory")

		stored, err := rs.store.GetAllLinks(ctx)
		if err != nil {
			return err
		}

		if len(stored) > 0 {
			links := make([]domain.LinkRecord, 0, len(stored))
			for _, l := range stored {
				links = append(links, *l)
			}
			rs.links.Replace(links)
			rs.logger.Info("synced links from redis", logger.Int("count", len(links)))
			return nil
		}

		rs.logger.Info("no links found in redis")
	}

	return rs.seed(ctx)
}

func (rs *RedisSyncer) seed(ctx context.Context) error {
	if rs.seedFile == "" {
		rs.logger.Info("no seed file configured, starting with an empty list")
		rs.links.Replace(nil)
		return nil
	}

	config, err := seed.NewLoader(rs.seedFile).LoadLinks()
	if err != nil {
		return fmt.Errorf("failed to seed links: %w", err)
	}

	rs.links.Replace(seed.MapLinks(config))
	all := rs.links.All()
	rs.logger.Info("seeded links from file",
		logger.String("file", rs.seedFile),
		logger.Int("count", len(all)))

	if rs.store == nil {
		return nil
	}

	// Persist with the IDs the collection assigned (best effort)
	ptrs := make([]*domain.LinkRecord, len(all))
	for i := range all {
		ptrs[i] = &all[i]
	}
	if err := rs.store.SaveLinksMany(ctx, ptrs); err != nil {
		rs.logger.Warn("failed to save seeded links to redis", logger.Error(err))
	}
	return nil
}
