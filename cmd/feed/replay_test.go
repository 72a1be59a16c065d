package main

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/xqrs/stableview/anchor"
)

func stepNamed(t *testing.T, steps []replayStep, name string) replayStep {
	t.Helper()
	for _, step := range steps {
		if step.Name == name {
			return step
		}
	}
	t.Fatalf("no step %q", name)
	return replayStep{}
}

func TestReplay_KeepsAnchor(t *testing.T) {
	steps := replay(true, slog.New(slog.DiscardHandler))

	scrolled := stepNamed(t, steps, "scroll down 7")
	if want := anchor.AtItem("p4", 0); !scrolled.Position.Equal(want) {
		t.Fatalf("position after scroll = %v, want %v", scrolled.Position, want)
	}
	for _, name := range []string{"prepend 3", "append 2"} {
		step := stepNamed(t, steps, name)
		if step.Top != "p4" || step.TopOffset != 0 {
			t.Errorf("%s: top = %s%+d, want p4+0", name, step.Top, step.TopOffset)
		}
		if step.FellBack {
			t.Errorf("%s: unexpected fallback", name)
		}
	}
	if got := stepNamed(t, steps, "prepend 3").Offset; got != 13 {
		t.Errorf("offset after prepend = %d, want 13", got)
	}
}

func TestReplay_Fallback(t *testing.T) {
	type tc struct {
		expectUp    bool
		removedTop  string
		replacedTop string
	}

	tests := map[string]tc{
		"content arrives above": {expectUp: true, removedTop: "p10", replacedTop: "x2"},
		"content arrives below": {expectUp: false, removedTop: "n3", replacedTop: "x1"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			steps := replay(tc.expectUp, slog.New(slog.DiscardHandler))

			removed := stepNamed(t, steps, "remove anchored row")
			if !removed.FellBack || removed.Top != tc.removedTop {
				t.Errorf("remove: top = %s, fallback = %v, want %s, true", removed.Top, removed.FellBack, tc.removedTop)
			}
			replaced := stepNamed(t, steps, "replace all")
			if !replaced.FellBack || replaced.Top != tc.replacedTop {
				t.Errorf("replace: top = %s, fallback = %v, want %s, true", replaced.Top, replaced.FellBack, tc.replacedTop)
			}
		})
	}
}

func TestReplay_BounceDoesNotMoveAnchor(t *testing.T) {
	steps := replay(false, slog.New(slog.DiscardHandler))

	pulled := stepNamed(t, steps, "pull past top")
	if pulled.Offset != -2 {
		t.Fatalf("offset after pull = %d, want -2", pulled.Offset)
	}
	if want := anchor.AtItem("n3", 0); !pulled.Position.Equal(want) {
		t.Errorf("position while overscrolled = %v, want %v", pulled.Position, want)
	}
	inserted := stepNamed(t, steps, "prepend while bouncing")
	if inserted.Top != "n3" || inserted.FellBack {
		t.Errorf("top after insert = %s (fallback %v), want n3", inserted.Top, inserted.FellBack)
	}
}

func TestPrintReplay(t *testing.T) {
	var buf bytes.Buffer
	steps := replay(true, slog.New(slog.DiscardHandler))
	if err := printReplay(&buf, steps); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != len(steps) {
		t.Fatalf("printed %d lines, want %d", len(lines), len(steps))
	}
	if !strings.Contains(lines[len(lines)-1], "fallback") {
		t.Errorf("last line %q does not report the fallback", lines[len(lines)-1])
	}
}
