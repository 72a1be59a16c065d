package anchor_test

import (
	"testing"

	"github.com/xqrs/stableview/anchor"
	"github.com/xqrs/stableview/anchor/anchortest"
)

func newHost(keys ...string) *anchortest.Host[string] {
	host := anchortest.NewHost[string](4, 2)
	host.ApplyDiff(anchor.NewSequence(keys...))
	return host
}

func TestCapture(t *testing.T) {
	type tc struct {
		keys []string
		drag int
		want anchor.Position[string]
	}

	tests := map[string]tc{
		"empty list":        {keys: nil, want: anchor.Absolute[string](0)},
		"at top":            {keys: []string{"a", "b", "c"}, want: anchor.AtItem("a", 0)},
		"inside second row": {keys: []string{"a", "b", "c"}, drag: 3, want: anchor.AtItem("b", 1)},
		"row boundary":      {keys: []string{"a", "b", "c"}, drag: 2, want: anchor.AtItem("b", 0)},
		"negative clamps":   {keys: []string{"a", "b", "c"}, drag: -2, want: anchor.AtItem("a", 0)},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			host := newHost(tt.keys...)
			host.Drag(tt.drag)

			got := anchor.Capture[string](host)
			if !got.Equal(tt.want) {
				t.Errorf("Capture() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	type tc struct {
		pos      anchor.Position[string]
		keys     []string
		pending  bool
		fallback anchor.Fallback
		want     int
		wantRes  anchor.Resolution
	}

	tests := map[string]tc{
		"absolute is direction agnostic": {
			pos: anchor.Absolute[string](7), keys: []string{"a"}, fallback: anchor.FallbackTop,
			want: 7, wantRes: anchor.Resolved,
		},
		"item present": {
			pos: anchor.AtItem("c", 1), keys: []string{"a", "b", "c"},
			want: 5, wantRes: anchor.Resolved,
		},
		"negative offset clamps": {
			pos: anchor.AtItem("b", -3), keys: []string{"a", "b", "c"},
			want: 2, wantRes: anchor.Resolved,
		},
		"removed falls back to last row": {
			pos: anchor.AtItem("z", 1), keys: []string{"a", "b", "c"}, fallback: anchor.FallbackBottom,
			want: 4, wantRes: anchor.FellBack,
		},
		"removed falls back to top": {
			pos: anchor.AtItem("z", 1), keys: []string{"a", "b", "c"}, fallback: anchor.FallbackTop,
			want: 0, wantRes: anchor.FellBack,
		},
		"removed from empty list": {
			pos: anchor.AtItem("z", 1), keys: nil, fallback: anchor.FallbackBottom,
			want: 0, wantRes: anchor.FellBack,
		},
		"geometry pending": {
			pos: anchor.AtItem("a", 0), keys: []string{"a"}, pending: true,
			want: 0, wantRes: anchor.Pending,
		},
		"fallback geometry pending": {
			pos: anchor.AtItem("z", 0), keys: []string{"a"}, pending: true, fallback: anchor.FallbackBottom,
			want: 0, wantRes: anchor.Pending,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			host := newHost(tt.keys...)
			host.LayoutPending = tt.pending

			got, res := anchor.Resolve(tt.pos, host.Sequence(), host, tt.fallback)
			if got != tt.want || res != tt.wantRes {
				t.Errorf("Resolve() = %d, %v, want %d, %v", got, res, tt.want, tt.wantRes)
			}
		})
	}
}

func TestResolve_RoundTrip(t *testing.T) {
	host := newHost("a", "b", "c", "d", "e")
	host.SetHeight("b", 3).SetHeight("d", 1)

	for offset := 0; offset <= host.MaxOffset(); offset++ {
		host.ScrollTo(offset)
		for _, fallback := range []anchor.Fallback{anchor.FallbackBottom, anchor.FallbackTop} {
			got, _ := anchor.Resolve(anchor.Capture[string](host), host.Sequence(), host, fallback)
			if got != offset {
				t.Errorf("offset %d, %v: round trip = %d", offset, fallback, got)
			}
		}
	}
}

func TestBounceGuard(t *testing.T) {
	host := newHost("a", "b", "c")
	var guard anchor.BounceGuard[string]

	host.Drag(3)
	first := guard.Capture(host)

	host.Drag(-10)
	if guard.ShouldTrustCapture(host) {
		t.Fatal("ShouldTrustCapture() = true while overscrolled")
	}
	if got := guard.Capture(host); !got.Equal(first) {
		t.Errorf("Capture() during bounce = %v, want %v", got, first)
	}

	host.Settle()
	if got := guard.Capture(host); !got.Equal(anchor.AtItem("a", 0)) {
		t.Errorf("Capture() after settle = %v, want item(a+0)", got)
	}
	if !guard.Last().Equal(anchor.AtItem("a", 0)) {
		t.Errorf("Last() = %v, want item(a+0)", guard.Last())
	}
}

func TestFallbackFor(t *testing.T) {
	if anchor.FallbackFor(true) != anchor.FallbackBottom {
		t.Error("FallbackFor(true) should fall back to the bottom")
	}
	if anchor.FallbackFor(false) != anchor.FallbackTop {
		t.Error("FallbackFor(false) should fall back to the top")
	}
}

func TestPosition_Equal(t *testing.T) {
	type tc struct {
		a, b anchor.Position[string]
		want bool
	}

	tests := map[string]tc{
		"same item":            {a: anchor.AtItem("a", 1), b: anchor.AtItem("a", 1), want: true},
		"different offset":     {a: anchor.AtItem("a", 1), b: anchor.AtItem("a", 2), want: false},
		"different key":        {a: anchor.AtItem("a", 1), b: anchor.AtItem("b", 1), want: false},
		"absolute ignores key": {a: anchor.Position[string]{Key: "x", Offset: 3}, b: anchor.Absolute[string](3), want: true},
		"kind differs":         {a: anchor.AtItem("", 0), b: anchor.Absolute[string](0), want: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tt.a.Equal(tt.b); got != tt.want {
				t.Errorf("%v.Equal(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
