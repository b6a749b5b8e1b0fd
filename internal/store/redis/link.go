package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MrSnakeDoc/linkedit/internal/domain"
	apperrors "github.com/MrSnakeDoc/linkedit/internal/errors"
	"github.com/redis/go-redis/v9"
)

// Store handles Redis operations for links and their order
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// Ping checks the connection, used by the readiness probe
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// SaveLink stores a link in Redis. Links never expire.
func (s *Store) SaveLink(ctx context.Context, link *domain.LinkRecord) error {
	data, err := json.Marshal(link)
	if err != nil {
		return fmt.Errorf("failed to marshal link: %w", err)
	}

	if err := s.client.Set(ctx, LinkKey(link.ID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save link: %w", err)
	}

	return nil
}

// GetLink retrieves a link from Redis by ID
func (s *Store) GetLink(ctx context.Context, id string) (*domain.LinkRecord, error) {
	data, err := s.client.Get(ctx, LinkKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperrors.NewNotFound(id)
		}
		return nil, fmt.Errorf("failed to get link: %w", err)
	}

	var link domain.LinkRecord
	if err := json.Unmarshal(data, &link); err != nil {
		return nil, fmt.Errorf("failed to unmarshal link: %w", err)
	}

	return &link, nil
}

// GetAllLinks retrieves every link listed in the order key, in order
func (s *Store) GetAllLinks(ctx context.Context) ([]*domain.LinkRecord, error) {
	ids, err := s.GetOrder(ctx)
	if err != nil {
		return nil, err
	}

	if len(ids) == 0 {
		return []*domain.LinkRecord{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = LinkKey(id)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get links: %w", err)
	}

	links := make([]*domain.LinkRecord, 0, len(values))
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			// Missing key: the order list is ahead of a delete
			continue
		}
		var link domain.LinkRecord
		if err := json.Unmarshal([]byte(raw), &link); err != nil {
			continue
		}
		links = append(links, &link)
	}

	return links, nil
}

// DeleteLink removes a link from Redis and from the order list
func (s *Store) DeleteLink(ctx context.Context, id string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, LinkKey(id))
	pipe.LRem(ctx, LinksOrderKey(), 0, id)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete link: %w", err)
	}

	return nil
}

// SaveLinksMany stores multiple links and their order (bulk operation)
func (s *Store) SaveLinksMany(ctx context.Context, links []*domain.LinkRecord) error {
	pipe := s.client.TxPipeline()

	ids := make([]any, 0, len(links))
	for _, link := range links {
		data, err := json.Marshal(link)
		if err != nil {
			return fmt.Errorf("failed to marshal link %s: %w", link.ID, err)
		}

		pipe.Set(ctx, LinkKey(link.ID), data, 0)
		ids = append(ids, link.ID)
	}

	pipe.Del(ctx, LinksOrderKey())
	if len(ids) > 0 {
		pipe.RPush(ctx, LinksOrderKey(), ids...)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save links: %w", err)
	}

	return nil
}

// SaveOrder replaces the ordered list of link IDs
func (s *Store) SaveOrder(ctx context.Context, ids []string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, LinksOrderKey())
	if len(ids) > 0 {
		values := make([]any, len(ids))
		for i, id := range ids {
			values[i] = id
		}
		pipe.RPush(ctx, LinksOrderKey(), values...)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save link order: %w", err)
	}

	return nil
}

// GetOrder returns link IDs in display order
func (s *Store) GetOrder(ctx context.Context) ([]string, error) {
	ids, err := s.client.LRange(ctx, LinksOrderKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get link order: %w", err)
	}
	return ids, nil
}

// ScanLinkIDs returns the ID of every link key present in Redis, listed in
// the order key or not
func (s *Store) ScanLinkIDs(ctx context.Context) ([]string, error) {
	var ids []string
	iter := s.client.Scan(ctx, 0, LinkKey("*"), 100).Iterator()
	for iter.Next(ctx) {
		id, err := ExtractLinkID(iter.Val())
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan link keys: %w", err)
	}
	return ids, nil
}

// DeleteLinkKeys removes link keys without touching the order list
func (s *Store) DeleteLinkKeys(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = LinkKey(id)
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete link keys: %w", err)
	}
	return nil
}
