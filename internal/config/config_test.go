package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "feed.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
	if !cfg.List.ExpectUp {
		t.Error("default ExpectUp = false, want true")
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[list]
expect_up = false
settle_delay = "100ms"

[feed]
sources = ["one", "two"]
interval = "2s"

[log]
level = "debug"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.List.ExpectUp {
		t.Error("ExpectUp = true, want false")
	}
	if got := cfg.List.SettleDelay.Duration; got != 100*time.Millisecond {
		t.Errorf("SettleDelay = %v, want 100ms", got)
	}
	if got := cfg.Feed.Interval.Duration; got != 2*time.Second {
		t.Errorf("Interval = %v, want 2s", got)
	}
	if got := len(cfg.Feed.Sources); got != 2 {
		t.Errorf("len(Sources) = %d, want 2", got)
	}
	// Keys absent from the file keep their defaults.
	if got := cfg.List.Overscroll; got != Default().List.Overscroll {
		t.Errorf("Overscroll = %d, want default %d", got, Default().List.Overscroll)
	}
	level, err := cfg.Log.SlogLevel()
	if err != nil || level != slog.LevelDebug {
		t.Errorf("SlogLevel() = %v, %v, want debug", level, err)
	}
}

func TestLoad_Errors(t *testing.T) {
	type tc struct {
		content string
		wantErr error
	}

	tests := map[string]tc{
		"unknown key": {
			content: "[list]\ngapp = 2\n",
			wantErr: ErrInvalid,
		},
		"empty sources": {
			content: "[feed]\nsources = []\n",
			wantErr: ErrInvalid,
		},
		"negative gap": {
			content: "[list]\ngap = -1\n",
			wantErr: ErrInvalid,
		},
		"zero pull threshold": {
			content: "[list]\npull_threshold = 0\n",
			wantErr: ErrInvalid,
		},
		"duplicate source": {
			content: "[feed]\nsources = [\"a\", \"a\"]\n",
			wantErr: ErrInvalid,
		},
		"bad level": {
			content: "[log]\nlevel = \"loud\"\n",
			wantErr: ErrInvalid,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tc.content))
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("Load() error = %v, want %v", err, tc.wantErr)
			}
		})
	}
}

func TestLoad_BadDuration(t *testing.T) {
	if _, err := Load(writeConfig(t, "[feed]\ninterval = \"soon\"\n")); err == nil {
		t.Error("Load() error = nil for an invalid duration")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error = %v, want os.ErrNotExist", err)
	}
}
