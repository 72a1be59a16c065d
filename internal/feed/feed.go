// Package feed simulates a social feed: posts arrive from several sources
// and are merged into one list ordered newest first.
package feed

import (
	"cmp"
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/xqrs/stableview/anchor"
)

// Post is a feed entry. ID is unique across sources.
type Post struct {
	ID     string
	At     time.Time
	Author string
	Body   string
	Source string
}

// Key returns the post's identity.
func (p Post) Key() string {
	return p.ID
}

// Newest orders posts newest first, breaking ties by ID.
func Newest(a, b Post) int {
	if c := b.At.Compare(a.At); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// Source produces posts.
type Source interface {
	Name() string
	// Fetch returns up to limit posts newer than the ones returned before.
	Fetch(ctx context.Context, limit int) ([]Post, error)
}

// FetchAll fetches from all sources concurrently. It fails with the first
// error, naming the source.
func FetchAll(ctx context.Context, sources []Source, limit int) ([]Post, error) {
	if len(sources) == 0 {
		return nil, nil
	}
	results := make([][]Post, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(len(sources))
	for i, source := range sources {
		g.Go(func() error {
			posts, err := source.Fetch(gctx, limit)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", source.Name(), err)
			}
			// Each goroutine owns its index.
			results[i] = posts
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []Post
	for _, posts := range results {
		all = append(all, posts...)
	}
	return all, nil
}

// Store holds the merged feed. It is safe for concurrent use.
type Store struct {
	mu    sync.Mutex
	posts []Post
	limit int
}

// NewStore returns a store keeping at most limit posts; the oldest are
// dropped first.
func NewStore(limit int) *Store {
	return &Store{limit: max(limit, 1)}
}

// Merge adds a batch, replacing posts with the same ID, and returns a
// snapshot of the result.
func (s *Store) Merge(batch []Post) []Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	merged := anchor.Merge(s.posts, batch, Post.Key, Newest)
	if len(merged) > s.limit {
		merged = merged[:s.limit]
	}
	s.posts = merged
	return s.snapshot()
}

// Remove deletes the posts with the given IDs and returns a snapshot.
func (s *Store) Remove(ids ...string) []Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := s.posts[:0:0]
	for _, p := range s.posts {
		if !drop[p.ID] {
			kept = append(kept, p)
		}
	}
	s.posts = kept
	return s.snapshot()
}

// Posts returns a snapshot of the feed.
func (s *Store) Posts() []Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *Store) snapshot() []Post {
	out := make([]Post, len(s.posts))
	copy(out, s.posts)
	return out
}

// Format renders a post as header and body lines for a plain text list.
func Format(p Post) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s · %s · %s\n", p.Author, p.Source, p.At.Format(time.TimeOnly))
	b.WriteString(p.Body)
	return b.String()
}
