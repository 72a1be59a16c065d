package anchor

import "log/slog"

var discardLogger = slog.New(slog.DiscardHandler)

type coordinatorState uint8

const (
	stateIdle coordinatorState = iota
	stateMutating
)

// Option configures a Coordinator.
type Option[K comparable] func(*Coordinator[K])

// WithExpectedDirection sets the fallback policy from the direction new
// content is expected to arrive from. The default is up.
func WithExpectedDirection[K comparable](up bool) Option[K] {
	return func(c *Coordinator[K]) {
		c.fallback = FallbackFor(up)
	}
}

// WithFallback sets the fallback policy directly.
func WithFallback[K comparable](f Fallback) Option[K] {
	return func(c *Coordinator[K]) {
		c.fallback = f
	}
}

// WithLogger sets the logger. Records are emitted at debug level except for
// refresh failures.
func WithLogger[K comparable](logger *slog.Logger) Option[K] {
	return func(c *Coordinator[K]) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithInitialPosition sets the position reported before the first capture.
func WithInitialPosition[K comparable](p Position[K]) Option[K] {
	return func(c *Coordinator[K]) {
		c.position = p
		c.guard.Reset(p)
	}
}

// Coordinator runs content mutations against a Host as one transaction:
// capture the anchor, apply the diff, resolve the anchor in the new content,
// scroll there, capture again and notify observers if the position changed.
//
// A Coordinator is not safe for concurrent use. All methods must be called on
// the host's rendering goroutine.
type Coordinator[K comparable] struct {
	host     Host[K]
	items    Sequence[K]
	fallback Fallback
	logger   *slog.Logger

	state    coordinatorState
	guard    BounceGuard[K]
	position Position[K]

	// pending holds a position whose resolution is waiting for the host's
	// next layout pass.
	pending    Position[K]
	hasPending bool

	observers Observers[Position[K]]
}

// NewCoordinator returns a coordinator driving host. The host is assumed to
// display an empty sequence initially.
func NewCoordinator[K comparable](host Host[K], opts ...Option[K]) *Coordinator[K] {
	c := &Coordinator[K]{
		host:     host,
		items:    NewSequence[K](),
		fallback: FallbackBottom,
		logger:   discardLogger,
		position: Absolute[K](0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Items returns the sequence currently displayed.
func (c *Coordinator[K]) Items() Sequence[K] {
	return c.items
}

// Position returns the current anchor.
func (c *Coordinator[K]) Position() Position[K] {
	return c.position
}

// Pending reports whether a resolution is waiting for the next layout pass.
func (c *Coordinator[K]) Pending() bool {
	return c.hasPending
}

// Fallback returns the policy used when an anchored row disappears.
func (c *Coordinator[K]) Fallback() Fallback {
	return c.fallback
}

// SetFallback sets the policy used when an anchored row disappears.
func (c *Coordinator[K]) SetFallback(f Fallback) {
	c.fallback = f
}

// SetExpectedDirection sets the fallback policy from the direction new
// content is expected to arrive from.
func (c *Coordinator[K]) SetExpectedDirection(up bool) {
	c.fallback = FallbackFor(up)
}

// SetLogger replaces the logger. A nil logger discards records.
func (c *Coordinator[K]) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = discardLogger
	}
	c.logger = logger
}

// Subscribe registers fn to be called with every position change. The
// returned function unsubscribes.
func (c *Coordinator[K]) Subscribe(fn func(Position[K])) (cancel func()) {
	return c.observers.Subscribe(fn)
}

// SetItems replaces the displayed content while keeping the anchored row in
// place. It returns false, without touching the host, when next holds the
// same identities in the same order as the current content.
func (c *Coordinator[K]) SetItems(next Sequence[K]) bool {
	if c.state == stateMutating {
		// Re-entrant call from a host callback; the outer mutation wins.
		c.logger.Debug("anchor: nested SetItems ignored")
		return false
	}
	if next.Equal(c.items) {
		c.logger.Debug("anchor: items unchanged", "count", next.Len())
		return false
	}

	c.state = stateMutating
	defer func() { c.state = stateIdle }()

	start := c.pending
	if !c.hasPending {
		start = c.guard.Capture(c.host)
	}

	c.host.ApplyDiff(next)
	c.items = next
	c.logger.Debug("anchor: applied items", "count", next.Len(), "anchor", start)

	c.restore(start)
	return true
}

// Restore scrolls to p within the current content, for example to bring back
// a position saved in an earlier session.
func (c *Coordinator[K]) Restore(p Position[K]) {
	if c.state == stateMutating {
		return
	}
	c.state = stateMutating
	defer func() { c.state = stateIdle }()
	c.restore(p)
}

// LayoutSettled must be called by the host after each layout pass. It retries
// a pending resolution; without one it does nothing.
func (c *Coordinator[K]) LayoutSettled() {
	if !c.hasPending || c.state == stateMutating {
		return
	}
	c.state = stateMutating
	defer func() { c.state = stateIdle }()
	c.logger.Debug("anchor: retrying after layout", "anchor", c.pending)
	c.restore(c.pending)
}

// ScrollChanged must be called by the host when the viewport scrolled on its
// own, for example because the user dragged it. It captures the new position
// and notifies observers if it changed. Calls made while a mutation is being
// applied or a resolution is pending are ignored, since the layout they would
// read is not settled.
func (c *Coordinator[K]) ScrollChanged() {
	if c.state == stateMutating || c.hasPending {
		return
	}
	c.settle()
}

// restore resolves p, scrolls the host and publishes the settled position.
// It must run inside the mutating state.
func (c *Coordinator[K]) restore(p Position[K]) {
	offset, res := Resolve(p, c.items, c.host, c.fallback)
	if res == Pending {
		c.pending, c.hasPending = p, true
		c.logger.Debug("anchor: geometry pending", "anchor", p)
		return
	}
	c.hasPending = false
	if res == FellBack {
		c.logger.Debug("anchor: anchored row removed", "anchor", p, "fallback", c.fallback, "offset", offset)
	}
	c.host.ScrollTo(offset)
	c.settle()
}

// settle captures the current position and publishes it when it differs
// from the one observers last saw. The comparison is against the published
// position, not the one captured before a mutation, so a scroll the host made
// without calling ScrollChanged is reported by the next settle even when the
// anchor did not move.
func (c *Coordinator[K]) settle() {
	p := c.guard.Capture(c.host)
	if p.Equal(c.position) {
		return
	}
	c.position = p
	c.observers.Publish(p)
}
