package statefile

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/xqrs/stableview/anchor"
)

func TestSaveLoad(t *testing.T) {
	type tc struct {
		pos anchor.Position[string]
	}

	tests := map[string]tc{
		"item":            {pos: anchor.AtItem("alpha-3", -2)},
		"item at the top": {pos: anchor.AtItem("beta-1", 0)},
		"absolute":        {pos: anchor.Absolute[string](7)},
	}

	now := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "nested", "anchor.mp")
			snap, err := FromPosition(tc.pos, now)
			if err != nil {
				t.Fatalf("FromPosition() error = %v", err)
			}
			if err := Save(path, snap); err != nil {
				t.Fatalf("Save() error = %v", err)
			}

			got, ok, err := Load(path)
			if err != nil || !ok {
				t.Fatalf("Load() = %v, %v", ok, err)
			}
			if !got.Position().Equal(tc.pos) {
				t.Errorf("Position() = %v, want %v", got.Position(), tc.pos)
			}
			if !got.SavedAt.Equal(now) {
				t.Errorf("SavedAt = %v, want %v", got.SavedAt, now)
			}
		})
	}
}

func TestSave_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "anchor.mp")
	for _, key := range []string{"a", "b"} {
		snap, _ := FromPosition(anchor.AtItem(key, 1), time.Now())
		if err := Save(path, snap); err != nil {
			t.Fatalf("Save(%s) error = %v", key, err)
		}
	}

	got, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Key != "b" {
		t.Errorf("Key = %q, want b", got.Key)
	}
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("state dir has %d entries, want only the snapshot", len(entries))
	}
}

func TestLoad_Missing(t *testing.T) {
	_, ok, err := Load(filepath.Join(t.TempDir(), "anchor.mp"))
	if ok || err != nil {
		t.Errorf("Load() = %v, %v, want false, nil", ok, err)
	}
}

func TestLoad_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "anchor.mp")
	if err := os.WriteFile(path, []byte{0xc1}, 0o600); err != nil {
		t.Fatal(err)
	}

	if _, ok, err := Load(path); ok || err == nil {
		t.Errorf("Load() = %v, %v, want an error", ok, err)
	}
}

func TestLoad_OtherVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "anchor.mp")
	data, err := msgpack.Marshal(&Snapshot{Version: Version + 1})
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	if _, _, err := Load(path); !errors.Is(err, ErrVersion) {
		t.Errorf("Load() error = %v, want ErrVersion", err)
	}
}

func TestFromPosition_OffsetOverflow(t *testing.T) {
	if _, err := FromPosition(anchor.Absolute[string](math.MaxInt32+1), time.Now()); err == nil {
		t.Error("FromPosition() error = nil for an offset beyond int32")
	}
}

func TestRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "anchor.mp")
	snap, _ := FromPosition(anchor.Absolute[string](0), time.Now())
	if err := Save(path, snap); err != nil {
		t.Fatal(err)
	}

	if err := Remove(path); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if err := Remove(path); err != nil {
		t.Errorf("second Remove() error = %v", err)
	}
	if _, ok, _ := Load(path); ok {
		t.Error("snapshot still present after Remove")
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/tmp/state")

	got, err := DefaultPath()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join("/tmp/state", "stableview", "anchor.mp"); got != want {
		t.Errorf("DefaultPath() = %q, want %q", got, want)
	}
}
