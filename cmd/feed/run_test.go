package main

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xqrs/stableview/anchor"
	"github.com/xqrs/stableview/internal/config"
	"github.com/xqrs/stableview/internal/feed"
)

func newTestSession(t *testing.T) *session {
	t.Helper()
	cfg := config.Default()
	cfg.Feed.Initial = 5
	cfg.Feed.Interval = config.Duration{Duration: time.Millisecond}
	return newSession(&settings{
		cfg:       cfg,
		logger:    slog.New(slog.DiscardHandler),
		statePath: filepath.Join(t.TempDir(), "anchor.mp"),
		closeLog:  func() error { return nil },
	})
}

func TestSession_Prime(t *testing.T) {
	s := newTestSession(t)
	if err := s.prime(context.Background()); err != nil {
		t.Fatalf("prime() error = %v", err)
	}

	// Five posts split over three sources rounds up to two each.
	if got := len(s.store.Posts()); got != 6 {
		t.Errorf("primed %d posts, want 6", got)
	}
}

func TestSession_Refresh(t *testing.T) {
	s := newTestSession(t)
	var published []feed.Post
	refresh := s.refresh(func(posts []feed.Post) { published = posts })

	if err := refresh(context.Background()); err != nil {
		t.Fatalf("refresh() error = %v", err)
	}
	if want := s.cfg.Feed.BatchSize * len(s.sources); len(published) != want {
		t.Errorf("published %d posts, want %d", len(published), want)
	}
}

func TestSession_Produce(t *testing.T) {
	s := newTestSession(t)
	ctx, cancel := context.WithCancel(context.Background())
	published := make(chan []feed.Post, 1)

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.produce(ctx, func(posts []feed.Post) {
			select {
			case published <- posts:
			default:
			}
		})
	}()

	select {
	case posts := <-published:
		if len(posts) == 0 {
			t.Error("published an empty snapshot")
		}
	case <-time.After(5 * time.Second):
		t.Fatal("producer published nothing")
	}
	cancel()
	<-done
}

func TestSession_PositionRoundTrip(t *testing.T) {
	s := newTestSession(t)
	if _, ok := s.loadPosition(); ok {
		t.Fatal("loadPosition() found a position in an empty dir")
	}

	want := anchor.AtItem("beta-3", 2)
	if err := s.savePosition(want); err != nil {
		t.Fatalf("savePosition() error = %v", err)
	}
	got, ok := s.loadPosition()
	if !ok || !got.Equal(want) {
		t.Errorf("loadPosition() = %v, %v, want %v", got, ok, want)
	}
}

func TestPrintPlain(t *testing.T) {
	at := time.Date(2026, 1, 1, 9, 30, 0, 0, time.UTC)
	posts := []feed.Post{
		{ID: "a-2", At: at, Author: "ada", Body: "second", Source: "a"},
		{ID: "a-1", At: at, Author: "ken", Body: "first", Source: "a"},
	}

	var buf bytes.Buffer
	if err := printPlain(&buf, posts); err != nil {
		t.Fatal(err)
	}
	want := "ada · a · 09:30:00\nsecond\n\nken · a · 09:30:00\nfirst\n"
	if buf.String() != want {
		t.Errorf("printPlain() = %q, want %q", buf.String(), want)
	}
}

func TestRenderPost(t *testing.T) {
	p := feed.Post{Author: "ada", Source: "a", Body: "one two three four five six"}

	lines := renderPost(p, 10)
	if !strings.HasPrefix(lines[0], "ada · a") {
		t.Errorf("header = %q", lines[0])
	}
	if lines[len(lines)-1] != "" {
		t.Errorf("last line = %q, want a blank separator", lines[len(lines)-1])
	}
	if len(lines) < 4 {
		t.Errorf("body was not wrapped at width 10: %q", lines)
	}
}
