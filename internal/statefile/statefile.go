// Package statefile saves a list's scroll anchor between runs.
package statefile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fortio.org/safecast"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/xqrs/stableview/anchor"
)

// Version is the current snapshot format.
const Version = 1

// ErrVersion is returned when a snapshot was written by another format.
var ErrVersion = errors.New("unsupported snapshot version")

// Snapshot is the on-disk form of an anchor.Position.
type Snapshot struct {
	Version int       `msgpack:"v"`
	Kind    uint8     `msgpack:"kind"`
	Key     string    `msgpack:"key,omitempty"`
	Offset  int32     `msgpack:"offset"`
	SavedAt time.Time `msgpack:"saved_at"`
}

// FromPosition converts a position. It fails when the offset does not fit
// the snapshot.
func FromPosition(pos anchor.Position[string], now time.Time) (Snapshot, error) {
	offset, err := safecast.Conv[int32](pos.Offset)
	if err != nil {
		return Snapshot{}, fmt.Errorf("offset %d: %w", pos.Offset, err)
	}
	return Snapshot{
		Version: Version,
		Kind:    uint8(pos.Kind),
		Key:     pos.Key,
		Offset:  offset,
		SavedAt: now,
	}, nil
}

// Position converts the snapshot back.
func (s Snapshot) Position() anchor.Position[string] {
	if anchor.Kind(s.Kind) == anchor.KindItem {
		return anchor.AtItem(s.Key, int(s.Offset))
	}
	return anchor.Absolute[string](int(s.Offset))
}

// DefaultPath returns $XDG_STATE_HOME/stableview/anchor.mp, falling back to
// ~/.local/state.
func DefaultPath() (string, error) {
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(base, "stableview", "anchor.mp"), nil
}

// Save writes the snapshot atomically.
func Save(path string, snap Snapshot) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	f, err := os.CreateTemp(dir, "tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()

	if err := msgpack.NewEncoder(f).Encode(&snap); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(f.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// Load reads the snapshot at path. A missing file returns false and no error.
func Load(path string) (Snapshot, bool, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Snapshot{}, false, nil
		}
		return Snapshot{}, false, err
	}
	defer f.Close()

	var snap Snapshot
	if err := msgpack.NewDecoder(f).Decode(&snap); err != nil {
		return Snapshot{}, false, fmt.Errorf("decode %s: %w", path, err)
	}
	if snap.Version != Version {
		return Snapshot{}, false, fmt.Errorf("%s: %w %d", path, ErrVersion, snap.Version)
	}
	return snap, true, nil
}

// Remove deletes the snapshot. A missing file is not an error.
func Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
