// Package config loads the feed demo's TOML configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is the whole configuration file.
type Config struct {
	List  ListConfig  `toml:"list"`
	Feed  FeedConfig  `toml:"feed"`
	Log   LogConfig   `toml:"log"`
	State StateConfig `toml:"state"`
}

// ListConfig tunes the anchored list.
type ListConfig struct {
	// ExpectUp says new posts arrive above the current ones. It picks where
	// the list lands when the anchored post disappears.
	ExpectUp      bool     `toml:"expect_up"`
	Gap           int      `toml:"gap"`
	Overscroll    int      `toml:"overscroll"`
	PullThreshold int      `toml:"pull_threshold"`
	SettleDelay   Duration `toml:"settle_delay"`
}

// FeedConfig describes the simulated sources.
type FeedConfig struct {
	Sources   []string `toml:"sources"`
	Interval  Duration `toml:"interval"`
	BatchSize int      `toml:"batch_size"`
	Initial   int      `toml:"initial"`
	Limit     int      `toml:"limit"`
	Seed      int64    `toml:"seed"`
}

type LogConfig struct {
	// Path is the log file. Empty discards logs.
	Path  string `toml:"path"`
	Level string `toml:"level"`
}

type StateConfig struct {
	// Path is the saved anchor file. Empty uses the default location.
	Path string `toml:"path"`
}

// Duration is a time.Duration written as a string such as "250ms".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		List: ListConfig{
			ExpectUp:      true,
			Gap:           1,
			Overscroll:    3,
			PullThreshold: 3,
			SettleDelay:   Duration{250 * time.Millisecond},
		},
		Feed: FeedConfig{
			Sources:   []string{"alpha", "beta", "gamma"},
			Interval:  Duration{5 * time.Second},
			BatchSize: 2,
			Initial:   20,
			Limit:     500,
			Seed:      1,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the file at path on top of the defaults and validates the
// result. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, key := range undecoded {
			keys[i] = key.String()
		}
		return Config{}, fmt.Errorf("%s: %w: unknown keys %s", path, ErrInvalid, strings.Join(keys, ", "))
	}
	if meta.IsDefined("feed", "sources") && len(cfg.Feed.Sources) == 0 {
		return Config{}, fmt.Errorf("%s: %w: feed.sources is set but empty", path, ErrInvalid)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
		}
	}

	check(c.List.Gap >= 0, "list.gap must not be negative, got %d", c.List.Gap)
	check(c.List.Overscroll >= 0, "list.overscroll must not be negative, got %d", c.List.Overscroll)
	check(c.List.PullThreshold >= 1, "list.pull_threshold must be at least 1, got %d", c.List.PullThreshold)
	check(c.List.SettleDelay.Duration >= 0, "list.settle_delay must not be negative, got %s", c.List.SettleDelay)

	check(len(c.Feed.Sources) > 0, "feed.sources must name at least one source")
	seen := make(map[string]bool, len(c.Feed.Sources))
	for _, name := range c.Feed.Sources {
		check(strings.TrimSpace(name) != "", "feed.sources must not contain blank names")
		check(!seen[name], "feed.sources lists %q twice", name)
		seen[name] = true
	}
	check(c.Feed.Interval.Duration > 0, "feed.interval must be positive, got %s", c.Feed.Interval)
	check(c.Feed.BatchSize >= 1, "feed.batch_size must be at least 1, got %d", c.Feed.BatchSize)
	check(c.Feed.Initial >= 0, "feed.initial must not be negative, got %d", c.Feed.Initial)
	check(c.Feed.Limit >= 1, "feed.limit must be at least 1, got %d", c.Feed.Limit)

	if _, err := c.Log.SlogLevel(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// SlogLevel parses the log level.
func (l LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("%w: log.level %q: %w", ErrInvalid, l.Level, err)
	}
	return level, nil
}
