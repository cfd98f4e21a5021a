package state

import (
	"context"
	"slices"

	"github.com/HerbHall/kartstats/internal/search"
	"github.com/HerbHall/kartstats/pkg/models"
)

// History returns remembered queries, most recent first.
func (s *Store) History() []models.SearchHistoryItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.cur.History)
}

// RecordSearch remembers a query that produced resultCount results.
func (s *Store) RecordSearch(query string, resultCount int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur.History = search.Record(s.cur.History, query, resultCount, s.now().UnixMilli(), s.historyLimit)
	s.saveHistory(context.Background(), "record")
}

// RemoveHistoryItem forgets a single query and reports whether it was present.
func (s *Store) RemoveHistoryItem(ctx context.Context, query string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, removed := search.Remove(s.cur.History, query)
	if !removed {
		return false
	}
	s.cur.History = next
	s.saveHistory(ctx, "remove")
	return true
}

// ClearHistory forgets every query.
func (s *Store) ClearHistory(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur.History = []models.SearchHistoryItem{}
	s.saveHistory(ctx, "clear")
}

// saveHistory persists the history unless it is session-only.
// Callers hold s.mu.
func (s *Store) saveHistory(ctx context.Context, op string) {
	if s.historyLocal {
		return
	}
	if err := s.history.Save(ctx, s.cur.History); err != nil {
		s.degrade(collectionHistory, op, err)
	}
}
