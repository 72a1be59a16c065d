package anchor

import (
	"context"
	"errors"
	"testing"
)

type recordingIndicator struct {
	begins int
	ends   []error
}

func (r *recordingIndicator) BeginRefreshing() { r.begins++ }

func (r *recordingIndicator) EndRefreshing(err error) { r.ends = append(r.ends, err) }

func TestRefresher_Lifecycle(t *testing.T) {
	indicator := &recordingIndicator{}
	ran := 0
	r := NewRefresher(func(ctx context.Context) error {
		ran++
		return nil
	}, indicator)

	if !r.Begin() {
		t.Fatal("Begin() = false, want true")
	}
	if r.Begin() {
		t.Error("second Begin() while running = true, want false")
	}
	if !r.Refreshing() {
		t.Error("Refreshing() = false while running")
	}

	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	r.Finish(nil)

	if ran != 1 {
		t.Errorf("action ran %d times, want 1", ran)
	}
	if indicator.begins != 1 || len(indicator.ends) != 1 || indicator.ends[0] != nil {
		t.Errorf("indicator = %+v, want one begin and one nil end", indicator)
	}
	if r.Refreshing() {
		t.Error("Refreshing() = true after Finish")
	}
	if !r.Begin() {
		t.Error("Begin() after Finish = false, want true")
	}
}

func TestRefresher_ReportsError(t *testing.T) {
	indicator := &recordingIndicator{}
	boom := errors.New("boom")
	r := NewRefresher(func(ctx context.Context) error { return boom }, indicator)

	r.Begin()
	r.Finish(r.Run(context.Background()))

	if len(indicator.ends) != 1 || !errors.Is(indicator.ends[0], boom) {
		t.Errorf("ends = %v, want [boom]", indicator.ends)
	}
}

func TestRefresher_NoAction(t *testing.T) {
	r := NewRefresher(nil, nil)

	if r.Begin() {
		t.Error("Begin() without action = true, want false")
	}
	r.Finish(nil)
	if err := r.Run(context.Background()); err != nil {
		t.Errorf("Run() without action = %v, want nil", err)
	}
}

func TestRefresher_FinishWithoutBegin(t *testing.T) {
	indicator := &recordingIndicator{}
	r := NewRefresher(func(context.Context) error { return nil }, indicator)

	r.Finish(nil)

	if len(indicator.ends) != 0 {
		t.Errorf("ends = %v, want none", indicator.ends)
	}
}
