package feed

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"
)

var (
	authors = []string{"ada", "grace", "linus", "ken", "barbara", "edsger", "margaret", "dennis"}
	words   = strings.Fields(`anchor scroll list row viewport offset content batch merge
		refresh pull settle layout height width identity position insert remove
		terminal cell line frame draw event queue update stable jump`)
)

// Generator is a Source that makes up posts. Output is deterministic for a
// seed and clock.
type Generator struct {
	name  string
	clock func() time.Time

	mu   sync.Mutex
	rng  *rand.Rand
	next int
	last time.Time
}

// NewGenerator returns a generator. A nil clock uses time.Now.
func NewGenerator(name string, seed int64, clock func() time.Time) *Generator {
	if clock == nil {
		clock = time.Now
	}
	return &Generator{
		name:  name,
		clock: clock,
		rng:   rand.New(rand.NewPCG(uint64(seed), uint64(len(name)))),
	}
}

func (g *Generator) Name() string {
	return g.name
}

// Fetch makes up limit posts, each newer than the previous one.
func (g *Generator) Fetch(ctx context.Context, limit int) ([]Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.clock()
	posts := make([]Post, 0, limit)
	for range limit {
		at := now
		if !at.After(g.last) {
			at = g.last.Add(time.Millisecond)
		}
		g.last = at
		g.next++
		posts = append(posts, Post{
			ID:     fmt.Sprintf("%s-%d", g.name, g.next),
			At:     at,
			Author: authors[g.rng.IntN(len(authors))],
			Body:   g.sentence(),
			Source: g.name,
		})
	}
	return posts, nil
}

// sentence returns 4 to 40 random words so posts wrap to different heights.
func (g *Generator) sentence() string {
	n := 4 + g.rng.IntN(37)
	picked := make([]string, n)
	for i := range picked {
		picked[i] = words[g.rng.IntN(len(words))]
	}
	return strings.Join(picked, " ")
}

var _ Source = (*Generator)(nil)
