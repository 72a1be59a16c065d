package anchor

import (
	"context"
	"log/slog"
)

// RefreshFunc fetches new content. It runs on its own goroutine and may take
// arbitrarily long. When the new content is ready, the host is expected to
// call Coordinator.SetItems with it; the core keeps no state about an
// in-flight refresh beyond whether one is running.
type RefreshFunc func(ctx context.Context) error

// RefreshIndicator is the host's refresh indicator lifecycle.
type RefreshIndicator interface {
	BeginRefreshing()
	EndRefreshing(err error)
}

// Refresher relays a user-initiated refresh gesture to a RefreshFunc and
// reports completion back to a RefreshIndicator. Begin and Finish must be
// called on the rendering goroutine, Run on any other goroutine:
//
//	if r.Begin() {
//		go func() {
//			err := r.Run(ctx)
//			post(func() { r.Finish(err) })
//		}()
//	}
type Refresher struct {
	action    RefreshFunc
	indicator RefreshIndicator
	running   bool
	logger    *slog.Logger
}

// NewRefresher returns a refresher for the given action. Both arguments may
// be nil.
func NewRefresher(action RefreshFunc, indicator RefreshIndicator) *Refresher {
	return &Refresher{
		action:    action,
		indicator: indicator,
		logger:    discardLogger,
	}
}

// SetAction replaces the refresh action.
func (r *Refresher) SetAction(action RefreshFunc) *Refresher {
	r.action = action
	return r
}

// SetIndicator replaces the refresh indicator.
func (r *Refresher) SetIndicator(indicator RefreshIndicator) *Refresher {
	r.indicator = indicator
	return r
}

// SetLogger sets the logger used for refresh failures.
func (r *Refresher) SetLogger(logger *slog.Logger) *Refresher {
	if logger == nil {
		logger = discardLogger
	}
	r.logger = logger
	return r
}

// Begin marks a refresh as running and starts the indicator. It returns
// false when there is no action or a refresh is already running.
func (r *Refresher) Begin() bool {
	if r.action == nil || r.running {
		return false
	}
	r.running = true
	if r.indicator != nil {
		r.indicator.BeginRefreshing()
	}
	r.logger.Debug("refresh started")
	return true
}

// Run invokes the refresh action.
func (r *Refresher) Run(ctx context.Context) error {
	if r.action == nil {
		return nil
	}
	return r.action(ctx)
}

// Finish marks the refresh as done and stops the indicator.
func (r *Refresher) Finish(err error) {
	if !r.running {
		return
	}
	r.running = false
	if err != nil {
		r.logger.Warn("refresh failed", "err", err)
	} else {
		r.logger.Debug("refresh finished")
	}
	if r.indicator != nil {
		r.indicator.EndRefreshing(err)
	}
}

// Refreshing reports whether a refresh is running.
func (r *Refresher) Refreshing() bool {
	return r.running
}
