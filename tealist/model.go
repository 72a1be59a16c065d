// Package tealist is a Bubble Tea list component that keeps the row at the
// top of the viewport in place when its content is replaced.
//
// Items render to lines through a RenderFunc. A Model is driven by its
// Update method like any other Bubble Tea component and must be used as a
// pointer, since the anchoring coordinator holds on to it.
package tealist

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/xqrs/stableview/anchor"
)

const (
	DefaultOverscroll    = 3
	DefaultPullThreshold = 3
	DefaultSettleDelay   = 250 * time.Millisecond

	wheelStep = 3
)

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// RenderFunc renders item into lines no wider than width cells. Longer lines
// are truncated.
type RenderFunc[T any] func(item T, width int) []string

// SetItemsMsg replaces the content of every Model receiving it. Use
// Model.SetItems directly when several lists share a program.
type SetItemsMsg[T any] struct {
	Items []T
}

// RefreshDoneMsg reports the end of a refresh started by the model with the
// given ID.
type RefreshDoneMsg struct {
	ID  int
	Err error
}

type settleMsg struct {
	id, gen int
}

// Model is a scrollable list of variable-height items.
type Model[T any, K comparable] struct {
	KeyMap KeyMap
	Styles Styles

	// Overscroll is the number of lines line and wheel scrolling may travel
	// past either end.
	Overscroll int
	// PullThreshold is how far past the top the list must be pulled to
	// start a refresh.
	PullThreshold int
	// SettleDelay is how long an overscroll lingers before snapping back.
	SettleDelay time.Duration

	id     int
	key    func(T) K
	render RenderFunc[T]

	values   map[K]T
	incoming map[K]T
	seq      anchor.Sequence[K]

	// lines caches rendered items by identity; tops holds the top of each
	// row plus the total height, nil while stale.
	lines map[K][]string
	tops  []int

	width, height int
	laidOut       bool

	offset    int
	settleGen int
	bouncing  bool

	coordinator *anchor.Coordinator[K]
	refresher   *anchor.Refresher
	refreshing  bool
	refreshErr  error
	ctx         context.Context

	spinner spinner.Model
	logger  *slog.Logger
	changed func(anchor.Position[K])
}

// New returns an empty list. Geometry is unknown until the first SetSize or
// tea.WindowSizeMsg.
func New[T any, K comparable](key func(T) K, render RenderFunc[T]) *Model[T, K] {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := &Model[T, K]{
		KeyMap:        DefaultKeyMap(),
		Styles:        DefaultStyles(),
		Overscroll:    DefaultOverscroll,
		PullThreshold: DefaultPullThreshold,
		SettleDelay:   DefaultSettleDelay,
		id:            nextID(),
		key:           key,
		render:        render,
		values:        make(map[K]T),
		seq:           anchor.NewSequence[K](),
		lines:         make(map[K][]string),
		ctx:           context.Background(),
		spinner:       sp,
		logger:        slog.New(slog.DiscardHandler),
	}
	m.spinner.Style = m.Styles.Spinner
	m.coordinator = anchor.NewCoordinator[K](m)
	m.coordinator.Subscribe(func(p anchor.Position[K]) {
		if m.changed != nil {
			m.changed(p)
		}
	})
	m.refresher = anchor.NewRefresher(nil, indicator[T, K]{m})
	return m
}

// ID returns the model's unique ID.
func (m *Model[T, K]) ID() int {
	return m.id
}

// SetLogger sets the logger for anchoring and refresh records.
func (m *Model[T, K]) SetLogger(logger *slog.Logger) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	m.logger = logger
	m.coordinator.SetLogger(logger)
	m.refresher.SetLogger(logger)
}

// SetContext sets the context handed to the refresh action.
func (m *Model[T, K]) SetContext(ctx context.Context) {
	m.ctx = ctx
}

// SetRefreshFunc sets the action run by pull-to-refresh and the refresh key.
// It runs inside a tea.Cmd; deliver new content with a SetItemsMsg.
func (m *Model[T, K]) SetRefreshFunc(fn anchor.RefreshFunc) {
	m.refresher.SetAction(fn)
}

// SetExpectedDirection sets where new content is expected to arrive.
func (m *Model[T, K]) SetExpectedDirection(up bool) {
	m.coordinator.SetExpectedDirection(up)
}

// SetPositionChangedFunc sets a handler called whenever the anchor changes.
func (m *Model[T, K]) SetPositionChangedFunc(fn func(anchor.Position[K])) {
	m.changed = fn
}

// Position returns the current anchor.
func (m *Model[T, K]) Position() anchor.Position[K] {
	return m.coordinator.Position()
}

// Restore scrolls to a position captured earlier.
func (m *Model[T, K]) Restore(p anchor.Position[K]) {
	m.coordinator.Restore(p)
}

// Refreshing reports whether a refresh is running.
func (m *Model[T, K]) Refreshing() bool {
	return m.refreshing
}

// RefreshError returns the error of the last refresh, if it failed.
func (m *Model[T, K]) RefreshError() error {
	return m.refreshErr
}

// SetItems replaces the content, keeping the anchored row in place. It
// returns false when identities and order did not change; the rows are then
// re-rendered in place.
func (m *Model[T, K]) SetItems(items []T) bool {
	next := make(map[K]T, len(items))
	for _, item := range items {
		k := m.key(item)
		if _, dup := next[k]; !dup {
			next[k] = item
		}
	}
	seq := anchor.SequenceOf(items, m.key)

	m.incoming = next
	changed := m.coordinator.SetItems(seq)
	m.incoming = nil
	if !changed && seq.Equal(m.seq) {
		m.values = next
		clear(m.lines)
		m.invalidate()
	}
	return changed
}

// Items returns the content in display order.
func (m *Model[T, K]) Items() []T {
	items := make([]T, 0, m.seq.Len())
	for _, k := range m.seq.All() {
		items = append(items, m.values[k])
	}
	return items
}

// SetSize sets the size of the component, including its status line.
func (m *Model[T, K]) SetSize(width, height int) {
	width, height = max(width, 0), max(height-1, 0)
	if width == 0 || height == 0 {
		return
	}
	if m.laidOut && width == m.width {
		m.height = height
		if !m.bouncing {
			m.offset = min(max(m.offset, 0), m.maxOffset())
		}
		m.coordinator.LayoutSettled()
		return
	}

	first := !m.laidOut
	position := m.coordinator.Position()
	m.width, m.height = width, height
	m.laidOut = true
	clear(m.lines)
	m.tops = nil
	if first {
		m.offset = min(max(m.offset, 0), m.maxOffset())
		m.coordinator.LayoutSettled()
		m.coordinator.ScrollChanged()
		return
	}
	m.logger.Debug("list width changed", "width", width, "anchor", position)
	m.coordinator.Restore(position)
}

// Width returns the width of the list area.
func (m *Model[T, K]) Width() int {
	return m.width
}

// Height returns the height of the list area, without the status line.
func (m *Model[T, K]) Height() int {
	return m.height
}

func (m *Model[T, K]) invalidate() {
	m.tops = nil
	if m.laidOut {
		m.coordinator.Restore(m.coordinator.Position())
	}
}

// VisibleRows implements anchor.Viewport.
func (m *Model[T, K]) VisibleRows() []anchor.Row[K] {
	if !m.laidOut || m.seq.Len() == 0 {
		return nil
	}
	m.measure()

	n := m.seq.Len()
	first := sort.Search(n, func(i int) bool { return m.tops[i+1] > m.offset })
	var rows []anchor.Row[K]
	for i := first; i < n && m.tops[i] < m.offset+m.height; i++ {
		rows = append(rows, anchor.Row[K]{
			Key:  m.seq.At(i),
			Rect: anchor.Rect{Top: m.tops[i], Height: m.tops[i+1] - m.tops[i]},
		})
	}
	return rows
}

// ScrollOffset implements anchor.Viewport.
func (m *Model[T, K]) ScrollOffset() int {
	return m.offset
}

// Overscrolled implements anchor.Viewport.
func (m *Model[T, K]) Overscrolled() bool {
	return m.laidOut && (m.offset < 0 || m.offset > m.maxOffset())
}

// RowTop implements anchor.Geometry.
func (m *Model[T, K]) RowTop(key K) (int, bool) {
	if !m.laidOut {
		return 0, false
	}
	i, ok := m.seq.Index(key)
	if !ok {
		return 0, false
	}
	m.measure()
	return m.tops[i], true
}

// ApplyDiff implements anchor.Host. Every row is rendered again, so reused
// rows pick up new content and height.
func (m *Model[T, K]) ApplyDiff(next anchor.Sequence[K]) {
	for _, e := range anchor.Diff(m.seq, next) {
		if e.Kind == anchor.EditDelete {
			delete(m.lines, e.Key)
		}
	}
	if m.incoming != nil {
		// Rows that stay may carry new content.
		m.values = m.incoming
		clear(m.lines)
	}
	m.seq = next
	m.tops = nil
}

// ScrollTo implements anchor.Host.
func (m *Model[T, K]) ScrollTo(offset int) {
	m.offset = max(offset, 0)
	if m.laidOut {
		m.offset = min(m.offset, m.maxOffset())
	}
	m.endBounce()
}

// ContentHeight returns the number of lines of all items.
func (m *Model[T, K]) ContentHeight() int {
	if !m.laidOut || m.seq.Len() == 0 {
		return 0
	}
	m.measure()
	return m.tops[len(m.tops)-1]
}

func (m *Model[T, K]) maxOffset() int {
	return max(m.ContentHeight()-m.height, 0)
}

func (m *Model[T, K]) measure() {
	if m.tops != nil {
		return
	}
	m.tops = make([]int, m.seq.Len()+1)
	top := 0
	for i, k := range m.seq.All() {
		m.tops[i] = top
		top += len(m.rowLines(k))
	}
	m.tops[len(m.tops)-1] = top
}

// rowLines returns the rendered lines of k; at least one.
func (m *Model[T, K]) rowLines(k K) []string {
	if lines, ok := m.lines[k]; ok {
		return lines
	}
	lines := m.render(m.values[k], m.width)
	if len(lines) == 0 {
		lines = []string{""}
	}
	m.lines[k] = lines
	return lines
}

// Init starts nothing; the spinner only ticks while refreshing.
func (m *Model[T, K]) Init() tea.Cmd {
	return nil
}

// Update handles keys, the mouse wheel, window sizes and the model's own
// messages.
func (m *Model[T, K]) Update(msg tea.Msg) (*Model[T, K], tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil
	case SetItemsMsg[T]:
		m.SetItems(msg.Items)
		return m, nil
	case RefreshDoneMsg:
		if msg.ID != m.id {
			return m, nil
		}
		m.refresher.Finish(msg.Err)
		return m, nil
	case settleMsg:
		if msg.id != m.id || msg.gen != m.settleGen {
			return m, nil
		}
		m.Settle()
		return m, nil
	case spinner.TickMsg:
		if !m.refreshing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.MouseMsg:
		if msg.Action != tea.MouseActionPress {
			return m, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			return m, m.ScrollBy(-wheelStep)
		case tea.MouseButtonWheelDown:
			return m, m.ScrollBy(wheelStep)
		}
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.KeyMap.Up):
			return m, m.ScrollBy(-1)
		case key.Matches(msg, m.KeyMap.Down):
			return m, m.ScrollBy(1)
		case key.Matches(msg, m.KeyMap.PageUp):
			m.Page(-1)
		case key.Matches(msg, m.KeyMap.PageDown):
			m.Page(1)
		case key.Matches(msg, m.KeyMap.Top):
			m.jumpTo(0)
		case key.Matches(msg, m.KeyMap.Bottom):
			m.jumpTo(m.maxOffset())
		case key.Matches(msg, m.KeyMap.Refresh):
			return m, m.Refresh()
		}
	}
	return m, nil
}

// ScrollBy scrolls by delta lines, allowing an elastic overscroll past
// either end that settles after SettleDelay. Pulling past the top by
// PullThreshold starts a refresh.
func (m *Model[T, K]) ScrollBy(delta int) tea.Cmd {
	if !m.laidOut || delta == 0 {
		return nil
	}
	overscroll := max(m.Overscroll, 0)
	low, high := -overscroll, m.maxOffset()+overscroll
	next := min(max(m.offset+delta, low), high)
	if (delta < 0 && next > m.offset) || (delta > 0 && next < m.offset) {
		next = m.offset
	}
	if next == m.offset {
		return nil
	}
	m.offset = next
	m.coordinator.ScrollChanged()

	if !m.Overscrolled() {
		m.endBounce()
		return nil
	}
	m.bouncing = true
	m.settleGen++
	msg := settleMsg{id: m.id, gen: m.settleGen}
	cmds := []tea.Cmd{tea.Tick(m.SettleDelay, func(time.Time) tea.Msg { return msg })}
	if m.offset <= -min(max(m.PullThreshold, 1), overscroll) {
		cmds = append(cmds, m.Refresh())
	}
	return tea.Batch(cmds...)
}

// Page scrolls by one list height minus a line of context.
func (m *Model[T, K]) Page(direction int) {
	m.jumpTo(m.offset + direction*max(m.height-1, 1))
}

func (m *Model[T, K]) jumpTo(offset int) {
	if !m.laidOut {
		return
	}
	offset = min(max(offset, 0), m.maxOffset())
	if offset == m.offset {
		return
	}
	m.offset = offset
	m.endBounce()
	m.coordinator.ScrollChanged()
}

// Settle snaps an overscrolled list back into range.
func (m *Model[T, K]) Settle() {
	if !m.Overscrolled() {
		m.endBounce()
		return
	}
	m.offset = min(max(m.offset, 0), m.maxOffset())
	m.endBounce()
	m.coordinator.ScrollChanged()
}

func (m *Model[T, K]) endBounce() {
	m.bouncing = false
	m.settleGen++
}

// Refresh starts the refresh action unless one is running or none is set.
func (m *Model[T, K]) Refresh() tea.Cmd {
	r := m.refresher
	if !r.Begin() {
		return nil
	}
	ctx, id := m.ctx, m.id
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return RefreshDoneMsg{ID: id, Err: r.Run(ctx)}
	})
}

// View renders the visible lines followed by a status line.
func (m *Model[T, K]) View() string {
	if !m.laidOut {
		return ""
	}

	out := make([]string, 0, m.height+1)
	for line := m.offset; line < m.offset+m.height; line++ {
		out = append(out, m.line(line))
	}
	if m.offset < 0 {
		out[min((-m.offset-1)/2, m.height-1)] = m.pullIndicator()
	}
	out = append(out, m.status())
	return strings.Join(out, "\n")
}

// line returns content line n, padded to the width.
func (m *Model[T, K]) line(n int) string {
	if n < 0 || n >= m.ContentHeight() {
		return strings.Repeat(" ", m.width)
	}
	i := sort.Search(m.seq.Len(), func(i int) bool { return m.tops[i+1] > n })
	text := m.rowLines(m.seq.At(i))[n-m.tops[i]]
	return runewidth.FillRight(runewidth.Truncate(text, m.width, "…"), m.width)
}

func (m *Model[T, K]) pullIndicator() string {
	text := "↓ pull to refresh"
	switch {
	case m.refreshing:
		text = "⟳ refreshing"
	case -m.offset >= m.PullThreshold:
		text = "⟳ release to refresh"
	}
	pad := max((m.width-runewidth.StringWidth(text))/2, 0)
	return m.Styles.Pull.Render(runewidth.Truncate(strings.Repeat(" ", pad)+text, m.width, ""))
}

func (m *Model[T, K]) status() string {
	switch {
	case m.refreshing:
		return m.spinner.View() + " " + m.Styles.Status.Render("refreshing")
	case m.refreshErr != nil:
		return m.Styles.Error.Render(runewidth.Truncate("refresh failed: "+m.refreshErr.Error(), m.width, "…"))
	}
	return m.Styles.Status.Render(runewidth.Truncate(m.Position().String(), m.width, "…"))
}

// indicator relays the refresh lifecycle to the model.
type indicator[T any, K comparable] struct {
	m *Model[T, K]
}

func (i indicator[T, K]) BeginRefreshing() {
	i.m.refreshing = true
	i.m.refreshErr = nil
}

func (i indicator[T, K]) EndRefreshing(err error) {
	i.m.refreshing = false
	i.m.refreshErr = err
}

var _ anchor.Host[string] = (*Model[string, string])(nil)
