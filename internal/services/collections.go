package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/HerbHall/kartstats/pkg/models"
)

// Document keys for the persisted collections.
const (
	CombinationsKey = "combinations"
	HistoryKey      = "search-history"
)

// CombinationRepository loads and saves the whole combination collection.
type CombinationRepository interface {
	Load(ctx context.Context) ([]models.Combination, error)
	Save(ctx context.Context, items []models.Combination) error
}

// HistoryRepository loads and saves the whole search history list.
type HistoryRepository interface {
	Load(ctx context.Context) ([]models.SearchHistoryItem, error)
	Save(ctx context.Context, items []models.SearchHistoryItem) error
}

// Compile-time interface guards.
var (
	_ CombinationRepository = (*Collection[models.Combination])(nil)
	_ HistoryRepository     = (*Collection[models.SearchHistoryItem])(nil)
)

// Collection stores a list of T as a single JSON document. Save is last
// write wins.
type Collection[T any] struct {
	docs DocumentRepository
	key  string
}

// NewCollection creates a Collection stored under key.
func NewCollection[T any](docs DocumentRepository, key string) *Collection[T] {
	return &Collection[T]{docs: docs, key: key}
}

// NewCombinationRepository stores combinations under CombinationsKey.
func NewCombinationRepository(docs DocumentRepository) *Collection[models.Combination] {
	return NewCollection[models.Combination](docs, CombinationsKey)
}

// NewHistoryRepository stores search history under HistoryKey.
func NewHistoryRepository(docs DocumentRepository) *Collection[models.SearchHistoryItem] {
	return NewCollection[models.SearchHistoryItem](docs, HistoryKey)
}

// Load returns the stored list. A missing document yields an empty list.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	d, err := c.docs.Get(ctx, c.key)
	if errors.Is(err, ErrNotFound) {
		return []T{}, nil
	}
	if err != nil {
		return nil, err
	}

	var items []T
	if err := json.Unmarshal(d.Value, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", c.key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// Save replaces the stored list.
func (c *Collection[T]) Save(ctx context.Context, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.key, err)
	}
	return c.docs.Put(ctx, c.key, data)
}
