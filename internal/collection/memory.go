package collection

import (
	"context"
	"crypto/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/MrSnakeDoc/linkedit/internal/domain"
	apperrors "github.com/MrSnakeDoc/linkedit/internal/errors"
	"github.com/MrSnakeDoc/linkedit/internal/logger"
)

// Store persists links behind the in-memory collection.
type Store interface {
	SaveLink(ctx context.Context, link *domain.LinkRecord) error
	DeleteLink(ctx context.Context, id string) error
	SaveOrder(ctx context.Context, ids []string) error
}

// Collection is the ordered list of links being edited.
// It is the owner every editor reports to: patches are merged here.
type Collection struct {
	mu sync.RWMutex
	// persistMu is taken before mu is released and held across the store
	// write, so writes reach the store in the order they were applied.
	persistMu  sync.Mutex
	links      []domain.LinkRecord
	entropy    *ulid.MonotonicEntropy
	store      Store
	logger     logger.Logger
	lastReload time.Time
}

// New creates an empty collection. store may be nil, in which case
// nothing is persisted.
func New(store Store, log logger.Logger) *Collection {
	if log == nil {
		log = logger.NewNop()
	}
	return &Collection{
		entropy: ulid.Monotonic(rand.Reader, 0),
		store:   store,
		logger:  log,
	}
}

// Replace swaps the whole list, keeping the given order.
// Records without an ID get one.
func (c *Collection) Replace(links []domain.LinkRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.links = make([]domain.LinkRecord, 0, len(links))
	for _, l := range links {
		if l.ID == "" {
			l.ID = c.newID()
		}
		c.links = append(c.links, l)
	}
	c.lastReload = time.Now()
}

// All returns a copy of every link, in order.
func (c *Collection) All() []domain.LinkRecord {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.LinkRecord, len(c.links))
	copy(out, c.links)
	return out
}

// Get retrieves a link by ID.
func (c *Collection) Get(id string) (domain.LinkRecord, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if i := c.indexOf(id); i >= 0 {
		return c.links[i], true
	}
	return domain.LinkRecord{}, false
}

// Position returns the 1-based position of a link, or 0 if absent.
func (c *Collection) Position(id string) int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.indexOf(id) + 1
}

// Count returns the number of links.
func (c *Collection) Count() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.links)
}

// LastReload returns when the list was last replaced.
func (c *Collection) LastReload() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.lastReload
}

// Add appends a link and returns it with its ID and timestamps set.
func (c *Collection) Add(ctx context.Context, link domain.LinkRecord) domain.LinkRecord {
	c.mu.Lock()
	now := time.Now().UTC()
	if link.ID == "" || c.indexOf(link.ID) >= 0 {
		link.ID = c.newID()
	}
	link.CreatedAt = now
	link.UpdatedAt = now
	c.links = append(c.links, link)
	order := c.order()
	c.persistMu.Lock()
	defer c.persistMu.Unlock()
	c.mu.Unlock()

	c.persist(ctx, &link)
	c.persistOrder(ctx, order)
	return link
}

// Merge applies a sparse patch to a link. Fields the patch does not name
// keep their current value.
func (c *Collection) Merge(ctx context.Context, id string, p domain.Patch) (domain.LinkRecord, error) {
	c.mu.Lock()
	i := c.indexOf(id)
	if i < 0 {
		c.mu.Unlock()
		return domain.LinkRecord{}, apperrors.NewNotFound(id)
	}
	merged := c.links[i].Merge(p)
	merged.UpdatedAt = time.Now().UTC()
	c.links[i] = merged
	c.persistMu.Lock()
	defer c.persistMu.Unlock()
	c.mu.Unlock()

	c.logger.Debug("link patched",
		logger.String("id", id),
		logger.Strings("fields", p.Fields()))
	c.persist(ctx, &merged)
	return merged, nil
}

// Remove deletes a link.
func (c *Collection) Remove(ctx context.Context, id string) error {
	c.mu.Lock()
	i := c.indexOf(id)
	if i < 0 {
		c.mu.Unlock()
		return apperrors.NewNotFound(id)
	}
	c.links = append(c.links[:i], c.links[i+1:]...)
	order := c.order()
	c.persistMu.Lock()
	defer c.persistMu.Unlock()
	c.mu.Unlock()

	if c.store != nil {
		if err := c.store.DeleteLink(ctx, id); err != nil {
			c.logger.Warn("failed to delete link from store", logger.String("id", id), logger.Error(err))
		}
	}
	c.persistOrder(ctx, order)
	return nil
}

// MoveUp swaps a link with its predecessor. It reports whether the link moved;
// the first link stays in place.
func (c *Collection) MoveUp(ctx context.Context, id string) (bool, error) {
	return c.move(ctx, id, -1)
}

// MoveDown swaps a link with its successor. The last link stays in place.
func (c *Collection) MoveDown(ctx context.Context, id string) (bool, error) {
	return c.move(ctx, id, +1)
}

func (c *Collection) move(ctx context.Context, id string, delta int) (bool, error) {
	c.mu.Lock()
	i := c.indexOf(id)
	if i < 0 {
		c.mu.Unlock()
		return false, apperrors.NewNotFound(id)
	}
	j := i + delta
	if j < 0 || j >= len(c.links) {
		c.mu.Unlock()
		return false, nil
	}
	c.links[i], c.links[j] = c.links[j], c.links[i]
	order := c.order()
	c.persistMu.Lock()
	defer c.persistMu.Unlock()
	c.mu.Unlock()

	c.persistOrder(ctx, order)
	return true, nil
}

// indexOf must be called with the lock held.
func (c *Collection) indexOf(id string) int {
	for i := range c.links {
		if c.links[i].ID == id {
			return i
		}
	}
	return -1
}

// order must be called with the lock held.
func (c *Collection) order() []string {
	ids := make([]string, len(c.links))
	for i := range c.links {
		ids[i] = c.links[i].ID
	}
	return ids
}

// newID must be called with the lock held: the monotonic entropy source is
// not safe for concurrent use.
func (c *Collection) newID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), c.entropy).String()
}

func (c *Collection) persist(ctx context.Context, link *domain.LinkRecord) {
	if c.store == nil {
		return
	}
	if err := c.store.SaveLink(ctx, link); err != nil {
		c.logger.Warn("failed to save link to store", logger.String("id", link.ID), logger.Error(err))
	}
}

func (c *Collection) persistOrder(ctx context.Context, ids []string) {
	if c.store == nil {
		return
	}
	if err := c.store.SaveOrder(ctx, ids); err != nil {
		c.logger.Warn("failed to save link order to store", logger.Int("count", len(ids)), logger.Error(err))
	}
}
