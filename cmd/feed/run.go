package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/xqrs/stableview/anchor"
	"github.com/xqrs/stableview/internal/feed"
	"github.com/xqrs/stableview/internal/statefile"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Show the live feed",
	Long: `Show a feed that receives new posts every interval. Scroll down to
read older posts; the post at the top of the screen stays put while new ones
arrive. Pull past the top to fetch from every source at once.`,
	RunE: runFeed,
}

func init() {
	runCmd.Flags().String("ui", "auto", "user interface (auto|tview|tea|plain)")
	runCmd.Flags().Bool("expect-up", true, "new posts arrive above the current ones")
}

// session is a running feed. UIs receive store snapshots through the publish
// functions they hand to produce and refresh.
type session struct {
	*settings
	store   *feed.Store
	sources []feed.Source
}

func runFeed(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	defer s.closeLog()

	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	mode = resolveUIMode(mode, isTerminal(os.Stdout))
	if cmd.Flags().Changed("expect-up") {
		if s.cfg.List.ExpectUp, err = cmd.Flags().GetBool("expect-up"); err != nil {
			return fmt.Errorf("failed to get expect-up flag: %w", err)
		}
	}

	sess := newSession(s)
	if err := sess.prime(cmd.Context()); err != nil {
		return err
	}
	s.logger.Info("starting feed", "ui", mode, "posts", len(sess.store.Posts()), "expect_up", s.cfg.List.ExpectUp)

	if mode == uiModePlain {
		return printPlain(cmd.OutOrStdout(), sess.store.Posts())
	}

	saved, ok := sess.loadPosition()
	var pos anchor.Position[string]
	switch mode {
	case uiModeTea:
		pos, err = runTea(sess, saved, ok)
	default:
		pos, err = runTview(sess, saved, ok)
	}
	if err != nil {
		return err
	}
	return sess.savePosition(pos)
}

func newSession(s *settings) *session {
	sources := make([]feed.Source, len(s.cfg.Feed.Sources))
	for i, name := range s.cfg.Feed.Sources {
		sources[i] = feed.NewGenerator(name, s.cfg.Feed.Seed+int64(i), nil)
	}
	return &session{
		settings: s,
		store:    feed.NewStore(s.cfg.Feed.Limit),
		sources:  sources,
	}
}

// prime fills the store with the initial posts, split across the sources.
func (s *session) prime(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if s.cfg.Feed.Initial == 0 {
		return nil
	}
	perSource := (s.cfg.Feed.Initial + len(s.sources) - 1) / len(s.sources)
	posts, err := feed.FetchAll(ctx, s.sources, perSource)
	if err != nil {
		return fmt.Errorf("initial fetch: %w", err)
	}
	s.store.Merge(posts)
	return nil
}

// refresh fetches a batch from every source and publishes the merged feed.
func (s *session) refresh(publish func([]feed.Post)) anchor.RefreshFunc {
	return func(ctx context.Context) error {
		start := time.Now()
		posts, err := feed.FetchAll(ctx, s.sources, s.cfg.Feed.BatchSize)
		if err != nil {
			s.logger.Warn("refresh failed", "error", err)
			return err
		}
		publish(s.store.Merge(posts))
		s.logger.Info("refreshed", "new", len(posts), "took", time.Since(start))
		return nil
	}
}

// produce adds a batch from the next source every interval until ctx is done.
func (s *session) produce(ctx context.Context, publish func([]feed.Post)) {
	ticker := time.NewTicker(s.cfg.Feed.Interval.Duration)
	defer ticker.Stop()

	for i := 0; ; i++ {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		source := s.sources[i%len(s.sources)]
		posts, err := source.Fetch(ctx, s.cfg.Feed.BatchSize)
		if err != nil {
			if ctx.Err() == nil {
				s.logger.Warn("fetch failed", "source", source.Name(), "error", err)
			}
			continue
		}
		s.logger.Debug("new posts", "source", source.Name(), "count", len(posts))
		publish(s.store.Merge(posts))
	}
}

// loadPosition reads the saved anchor. A missing or unreadable file starts at
// the top.
func (s *session) loadPosition() (anchor.Position[string], bool) {
	snap, ok, err := statefile.Load(s.statePath)
	if err != nil {
		s.logger.Warn("ignoring saved position", "path", s.statePath, "error", err)
		return anchor.Position[string]{}, false
	}
	if !ok {
		return anchor.Position[string]{}, false
	}
	s.logger.Info("restoring position", "position", snap.Position(), "saved_at", snap.SavedAt)
	return snap.Position(), true
}

func (s *session) savePosition(pos anchor.Position[string]) error {
	snap, err := statefile.FromPosition(pos, time.Now())
	if err != nil {
		return fmt.Errorf("save position: %w", err)
	}
	if err := statefile.Save(s.statePath, snap); err != nil {
		return fmt.Errorf("save position: %w", err)
	}
	s.logger.Info("saved position", "position", pos, "path", s.statePath)
	return nil
}

// printPlain writes the feed as text, for pipes and redirects.
func printPlain(w io.Writer, posts []feed.Post) error {
	for i, p := range posts {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, feed.Format(p)); err != nil {
			return err
		}
	}
	return nil
}
