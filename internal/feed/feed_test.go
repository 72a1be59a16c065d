package feed

import (
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"
)

var epoch = time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)

func fixedClock() time.Time { return epoch }

func ids(posts []Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.ID
	}
	return out
}

func TestGenerator_Fetch(t *testing.T) {
	g := NewGenerator("alpha", 7, fixedClock)

	first, err := g.Fetch(context.Background(), 3)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	second, err := g.Fetch(context.Background(), 2)
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}

	if got, want := ids(first), []string{"alpha-1", "alpha-2", "alpha-3"}; !slices.Equal(got, want) {
		t.Errorf("first batch = %v, want %v", got, want)
	}
	if got, want := ids(second), []string{"alpha-4", "alpha-5"}; !slices.Equal(got, want) {
		t.Errorf("second batch = %v, want %v", got, want)
	}
	all := append(first, second...)
	for i := 1; i < len(all); i++ {
		if !all[i].At.After(all[i-1].At) {
			t.Errorf("post %s is not newer than %s", all[i].ID, all[i-1].ID)
		}
	}
	for _, p := range all {
		if p.Source != "alpha" || p.Author == "" || len(strings.Fields(p.Body)) < 4 {
			t.Errorf("incomplete post %+v", p)
		}
	}
}

func TestGenerator_Deterministic(t *testing.T) {
	a, _ := NewGenerator("alpha", 7, fixedClock).Fetch(context.Background(), 5)
	b, _ := NewGenerator("alpha", 7, fixedClock).Fetch(context.Background(), 5)

	if !slices.Equal(a, b) {
		t.Error("same seed produced different posts")
	}
}

func TestGenerator_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewGenerator("alpha", 1, fixedClock).Fetch(ctx, 1); !errors.Is(err, context.Canceled) {
		t.Errorf("Fetch() error = %v, want context.Canceled", err)
	}
}

type failingSource struct{ err error }

func (f failingSource) Name() string { return "broken" }

func (f failingSource) Fetch(context.Context, int) ([]Post, error) { return nil, f.err }

func TestFetchAll(t *testing.T) {
	sources := []Source{
		NewGenerator("alpha", 1, fixedClock),
		NewGenerator("beta", 2, fixedClock),
	}

	posts, err := FetchAll(context.Background(), sources, 2)
	if err != nil {
		t.Fatalf("FetchAll() error = %v", err)
	}
	if got, want := ids(posts), []string{"alpha-1", "alpha-2", "beta-1", "beta-2"}; !slices.Equal(got, want) {
		t.Errorf("FetchAll() = %v, want %v", got, want)
	}
}

func TestFetchAll_Error(t *testing.T) {
	offline := errors.New("offline")
	sources := []Source{NewGenerator("alpha", 1, fixedClock), failingSource{err: offline}}

	_, err := FetchAll(context.Background(), sources, 2)
	if !errors.Is(err, offline) {
		t.Fatalf("FetchAll() error = %v, want %v", err, offline)
	}
	if !strings.Contains(err.Error(), "broken") {
		t.Errorf("error %q does not name the source", err)
	}
}

func TestStore(t *testing.T) {
	type tc struct {
		batches [][]Post
		limit   int
		want    []string
	}

	post := func(id string, minutes int) Post {
		return Post{ID: id, At: epoch.Add(time.Duration(minutes) * time.Minute)}
	}

	tests := map[string]tc{
		"newest first": {
			batches: [][]Post{{post("a", 1), post("b", 3), post("c", 2)}},
			limit:   10,
			want:    []string{"b", "c", "a"},
		},
		"new batch lands on top": {
			batches: [][]Post{{post("a", 1), post("b", 2)}, {post("c", 3)}},
			limit:   10,
			want:    []string{"c", "b", "a"},
		},
		"same id replaces": {
			batches: [][]Post{{post("a", 1), post("b", 2)}, {post("a", 5)}},
			limit:   10,
			want:    []string{"a", "b"},
		},
		"limit drops oldest": {
			batches: [][]Post{{post("a", 1), post("b", 2), post("c", 3)}},
			limit:   2,
			want:    []string{"c", "b"},
		},
		"ties break by id": {
			batches: [][]Post{{post("b", 1), post("a", 1)}},
			limit:   10,
			want:    []string{"a", "b"},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			s := NewStore(tc.limit)
			for _, batch := range tc.batches {
				s.Merge(batch)
			}
			if got := ids(s.Posts()); !slices.Equal(got, tc.want) {
				t.Errorf("Posts() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestStore_Remove(t *testing.T) {
	s := NewStore(10)
	s.Merge([]Post{{ID: "a", At: epoch}, {ID: "b", At: epoch.Add(time.Minute)}})

	if got := ids(s.Remove("b", "missing")); !slices.Equal(got, []string{"a"}) {
		t.Errorf("Remove() = %v, want [a]", got)
	}
}

func TestFormat(t *testing.T) {
	p := Post{ID: "a-1", At: epoch, Author: "ada", Body: "hello", Source: "alpha"}

	if got, want := Format(p), "ada · alpha · 15:04:05\nhello"; got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}
