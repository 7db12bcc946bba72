package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/nodegraph/pkg/codec"
	"github.com/aretw0/nodegraph/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// farFuture scores graphs that never expire (2100-01-01).
const farFuture = 4102444800

// Store implements ports.GraphStore using Redis.
// Documents are stored as JSON; a sorted set indexes the graph names.
type Store struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Store)

// WithTTL sets the expiration for graphs, e.g. for autosaves.
func WithTTL(ttl time.Duration) Option {
	return func(s *Store) {
		s.ttl = ttl
	}
}

// WithPrefix sets the key prefix for graphs.
func WithPrefix(prefix string) Option {
	return func(s *Store) {
		s.prefix = prefix
	}
}

// New creates a new Redis store with options.
func New(address, password string, db int, opts ...Option) *Store {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis store from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Store {
	store := &Store{
		client: client,
		prefix: "nodegraph:graph:",
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(store)
	}

	return store
}

// Client exposes the underlying client, e.g. to share it with a Locker.
func (s *Store) Client() *backend.Client {
	return s.client
}

func (s *Store) key(name string) string {
	return s.prefix + name
}

func (s *Store) indexKey() string {
	return s.prefix + "index"
}

// SaveGraph persists the document to Redis.
func (s *Store) SaveGraph(ctx context.Context, name string, doc *domain.Document) error {
	if name == "" {
		return fmt.Errorf("graph name cannot be empty")
	}
	data, err := codec.Marshal(doc, codec.FormatJSON)
	if err != nil {
		return fmt.Errorf("failed to marshal graph: %w", err)
	}

	pipe := s.client.Pipeline()

	// 0 means no expiration.
	pipe.Set(ctx, s.key(name), data, s.ttl)

	// Score = Now + TTL, so expired names can be pruned from the index.
	score := float64(time.Now().Add(s.ttl).Unix())
	if s.ttl == 0 {
		score = farFuture
	}
	pipe.ZAdd(ctx, s.indexKey(), backend.Z{
		Score:  score,
		Member: name,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// LoadGraph retrieves the document from Redis.
func (s *Store) LoadGraph(ctx context.Context, name string) (*domain.Document, error) {
	val, err := s.client.Get(ctx, s.key(name)).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, fmt.Errorf("%w: %s", domain.ErrGraphNotFound, name)
		}
		return nil, fmt.Errorf("failed to get from redis: %w", err)
	}

	doc, err := codec.Unmarshal(val, codec.FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("graph %s: %w", name, err)
	}
	return doc, nil
}

// DeleteGraph removes the graph and its index entry.
func (s *Store) DeleteGraph(ctx context.Context, name string) error {
	pipe := s.client.Pipeline()

	pipe.Del(ctx, s.key(name))
	pipe.ZRem(ctx, s.indexKey(), name)

	_, err := pipe.Exec(ctx)
	return err
}

// ListGraphs returns the stored graph names, pruning expired ones from the index.
func (s *Store) ListGraphs(ctx context.Context) ([]string, error) {
	now := float64(time.Now().Unix())

	// Graphs without TTL score far in the future and are never pruned.
	err := s.client.ZRemRangeByScore(ctx, s.indexKey(), "-inf", fmt.Sprintf("%f", now)).Err()
	if err != nil {
		return nil, fmt.Errorf("failed to prune expired graphs: %w", err)
	}

	names, err := s.client.ZRange(ctx, s.indexKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list graphs: %w", err)
	}
	return names, nil
}

// Close closes the redis client.
func (s *Store) Close() error {
	return s.client.Close()
}
