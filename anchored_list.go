package stableview

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/gdamore/tcell/v3"

	"github.com/xqrs/stableview/anchor"
	"github.com/xqrs/stableview/keybind"
)

// ListItem is a row of an AnchoredList. Rows report their own height for a
// given width so the list can lay out variable-height content.
type ListItem interface {
	Primitive
	Height(width int) int
}

// ListBuilder returns the row displaying item. It is called whenever a row is
// measured or drawn, so it should be cheap.
type ListBuilder[T any] func(item T) ListItem

const (
	// DefaultOverscroll is the number of lines a line or wheel scroll may
	// travel past either end of the content.
	DefaultOverscroll = 3
	// DefaultPullThreshold is how far past the top the list must be pulled
	// to trigger a refresh.
	DefaultPullThreshold = 3
	// DefaultSettleDelay is how long an overscroll lingers before the list
	// snaps back into range.
	DefaultSettleDelay = 250 * time.Millisecond

	wheelStep = 3
)

// AnchoredList displays a list of variable-height rows and keeps the row at
// the top of the viewport in place when the content is replaced. Rows are
// identified by a key; content inserted above the anchored row pushes the
// scroll offset down instead of pushing the row off screen.
//
// Geometry is unknown until the list is drawn for the first time. Positions
// restored before that are resolved on the first draw.
type AnchoredList[T any, K comparable] struct {
	*Box

	key     func(T) K
	builder ListBuilder[T]
	keys    ListKeys

	// values holds the content by identity, seq the display order.
	values map[K]T
	seq    anchor.Sequence[K]
	// incoming holds the values of a SetItems call until the coordinator
	// applies them.
	incoming map[K]T

	// heights caches measured row heights by identity. tops holds the top
	// of each row in display order plus one trailing entry with the total
	// height; it is nil while stale.
	heights map[K]int
	tops    []int
	gap     int

	// Size of the row area at the last layout.
	width, height int
	laidOut       bool

	// offset is the distance from the top of the content to the top of the
	// viewport. It lies outside [0, maxOffset] while bouncing.
	offset        int
	overscroll    int
	pullThreshold int
	settleDelay   time.Duration
	settleGen     int
	bouncing      bool

	coordinator *anchor.Coordinator[K]
	refresher   *anchor.Refresher
	refreshing  bool
	refreshErr  error

	scrollBar *ScrollBar
	title     string
	changed   func(anchor.Position[K])
	logger    *slog.Logger
}

// NewAnchoredList returns an empty list. key must return a stable identity
// for every item; builder creates the row for an item.
func NewAnchoredList[T any, K comparable](key func(T) K, builder ListBuilder[T]) *AnchoredList[T, K] {
	l := &AnchoredList[T, K]{
		Box:           NewBox(),
		key:           key,
		builder:       builder,
		keys:          DefaultListKeys(),
		values:        make(map[K]T),
		seq:           anchor.NewSequence[K](),
		heights:       make(map[K]int),
		overscroll:    DefaultOverscroll,
		pullThreshold: DefaultPullThreshold,
		settleDelay:   DefaultSettleDelay,
		scrollBar:     NewScrollBar(),
		logger:        slog.New(slog.DiscardHandler),
	}
	l.coordinator = anchor.NewCoordinator[K](l)
	l.coordinator.Subscribe(func(p anchor.Position[K]) {
		if l.changed != nil {
			l.changed(p)
		}
	})
	l.refresher = anchor.NewRefresher(nil, listIndicator[T, K]{l})
	return l
}

// SetItems replaces the content. The row at the top of the viewport stays
// where it is if it is still present; otherwise the list falls back to the
// bottom or the top depending on the expected direction. It returns false
// when the identities and their order did not change, in which case only
// the content of the rows is updated. Every row is measured again, so rows
// that stay may change height. A call made from a position callback while
// the list is applying other items is ignored and returns false.
func (l *AnchoredList[T, K]) SetItems(items []T) bool {
	next := make(map[K]T, len(items))
	for _, item := range items {
		k := l.key(item)
		if _, dup := next[k]; !dup {
			next[k] = item
		}
	}
	seq := anchor.SequenceOf(items, l.key)

	l.incoming = next
	changed := l.coordinator.SetItems(seq)
	l.incoming = nil
	switch {
	case changed:
	case seq.Equal(l.seq):
		// Same rows with new content; their heights may have changed.
		l.values = next
		l.Reconfigure()
	default:
		l.logger.Debug("list: SetItems ignored during a mutation", "count", seq.Len())
	}
	return changed
}

// Items returns the content in display order.
func (l *AnchoredList[T, K]) Items() []T {
	items := make([]T, 0, l.seq.Len())
	for _, k := range l.seq.All() {
		items = append(items, l.values[k])
	}
	return items
}

// Position returns the current anchor.
func (l *AnchoredList[T, K]) Position() anchor.Position[K] {
	return l.coordinator.Position()
}

// Restore scrolls to a position captured earlier, for example one saved in
// a previous session.
func (l *AnchoredList[T, K]) Restore(p anchor.Position[K]) *AnchoredList[T, K] {
	l.coordinator.Restore(p)
	return l
}

// SetExpectedDirection sets where new content is expected to arrive: above
// the current content (up) or below it. It decides where the list lands
// when the anchored row is removed.
func (l *AnchoredList[T, K]) SetExpectedDirection(up bool) *AnchoredList[T, K] {
	l.coordinator.SetExpectedDirection(up)
	return l
}

// SetPositionChangedFunc sets a handler called whenever the anchor changes,
// whether by scrolling or by a content change that moved it.
func (l *AnchoredList[T, K]) SetPositionChangedFunc(handler func(anchor.Position[K])) *AnchoredList[T, K] {
	l.changed = handler
	return l
}

// SetRefreshFunc sets the action run by pull-to-refresh and the refresh key.
// It runs on its own goroutine and is expected to deliver new content with
// Application.QueueUpdateDraw and SetItems.
func (l *AnchoredList[T, K]) SetRefreshFunc(fn anchor.RefreshFunc) *AnchoredList[T, K] {
	l.refresher.SetAction(fn)
	return l
}

// SetLogger sets the logger for anchoring and refresh records.
func (l *AnchoredList[T, K]) SetLogger(logger *slog.Logger) *AnchoredList[T, K] {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	l.logger = logger
	l.coordinator.SetLogger(logger)
	l.refresher.SetLogger(logger)
	return l
}

// SetTitle sets the title drawn on the top border.
func (l *AnchoredList[T, K]) SetTitle(title string) *AnchoredList[T, K] {
	l.title = title
	return l
}

// SetGap sets the number of blank lines between rows.
func (l *AnchoredList[T, K]) SetGap(gap int) *AnchoredList[T, K] {
	l.gap = max(gap, 0)
	l.invalidate()
	return l
}

// SetOverscroll sets how many lines line and wheel scrolling may travel past
// either end. Zero disables the elastic band and with it pull-to-refresh.
func (l *AnchoredList[T, K]) SetOverscroll(lines int) *AnchoredList[T, K] {
	l.overscroll = max(lines, 0)
	return l
}

// SetPullThreshold sets how far past the top the list must be pulled to
// trigger a refresh. It is capped by the overscroll band.
func (l *AnchoredList[T, K]) SetPullThreshold(lines int) *AnchoredList[T, K] {
	l.pullThreshold = max(lines, 1)
	return l
}

// SetSettleDelay sets how long an overscroll lingers before snapping back.
func (l *AnchoredList[T, K]) SetSettleDelay(delay time.Duration) *AnchoredList[T, K] {
	l.settleDelay = delay
	return l
}

// SetKeys replaces the keybinds.
func (l *AnchoredList[T, K]) SetKeys(keys ListKeys) *AnchoredList[T, K] {
	l.keys = keys
	return l
}

// Keys returns the keybinds, for use in help bars.
func (l *AnchoredList[T, K]) Keys() ListKeys {
	return l.keys
}

// Refreshing reports whether a refresh is running.
func (l *AnchoredList[T, K]) Refreshing() bool {
	return l.refreshing
}

// RefreshError returns the error of the last refresh, if it failed.
func (l *AnchoredList[T, K]) RefreshError() error {
	return l.refreshErr
}

// Reconfigure discards the measured heights of the given rows, or of all
// rows when called without keys, and keeps the anchor in place. Call it
// when the content of a row changed its height without changing its
// identity.
func (l *AnchoredList[T, K]) Reconfigure(keys ...K) *AnchoredList[T, K] {
	if len(keys) == 0 {
		clear(l.heights)
	}
	for _, k := range keys {
		delete(l.heights, k)
	}
	l.invalidate()
	return l
}

// invalidate drops the layout and restores the anchor on the new one.
func (l *AnchoredList[T, K]) invalidate() {
	l.tops = nil
	if l.laidOut {
		l.coordinator.Restore(l.coordinator.Position())
	}
}

// VisibleRows implements anchor.Viewport. Row rectangles include the gap
// below each row.
func (l *AnchoredList[T, K]) VisibleRows() []anchor.Row[K] {
	if !l.laidOut || l.seq.Len() == 0 {
		return nil
	}
	l.measure()

	n := l.seq.Len()
	first := sort.Search(n, func(i int) bool { return l.tops[i+1] > l.offset })
	var rows []anchor.Row[K]
	for i := first; i < n && l.tops[i] < l.offset+l.height; i++ {
		rows = append(rows, anchor.Row[K]{
			Key:  l.seq.At(i),
			Rect: anchor.Rect{Top: l.tops[i], Height: l.tops[i+1] - l.tops[i]},
		})
	}
	return rows
}

// ScrollOffset implements anchor.Viewport.
func (l *AnchoredList[T, K]) ScrollOffset() int {
	return l.offset
}

// Overscrolled implements anchor.Viewport.
func (l *AnchoredList[T, K]) Overscrolled() bool {
	return l.laidOut && (l.offset < 0 || l.offset > l.maxOffset())
}

// RowTop implements anchor.Geometry.
func (l *AnchoredList[T, K]) RowTop(key K) (int, bool) {
	if !l.laidOut {
		return 0, false
	}
	i, ok := l.seq.Index(key)
	if !ok {
		return 0, false
	}
	l.measure()
	return l.tops[i], true
}

// ApplyDiff implements anchor.Host. New content from SetItems drops every
// measured height; otherwise only the heights of deleted rows are dropped.
func (l *AnchoredList[T, K]) ApplyDiff(next anchor.Sequence[K]) {
	for _, e := range anchor.Diff(l.seq, next) {
		if e.Kind == anchor.EditDelete {
			delete(l.heights, e.Key)
		}
	}
	if l.incoming != nil {
		l.values = l.incoming
		clear(l.heights)
	}
	l.seq = next
	l.tops = nil
}

// ScrollTo implements anchor.Host. It ends any overscroll.
func (l *AnchoredList[T, K]) ScrollTo(offset int) {
	l.offset = max(offset, 0)
	if l.laidOut {
		l.offset = min(l.offset, l.maxOffset())
	}
	l.endBounce()
}

// ContentHeight returns the height of all rows, or 0 before the first
// layout.
func (l *AnchoredList[T, K]) ContentHeight() int {
	if !l.laidOut || l.seq.Len() == 0 {
		return 0
	}
	l.measure()
	return l.tops[len(l.tops)-1] - l.gap
}

func (l *AnchoredList[T, K]) maxOffset() int {
	return max(l.ContentHeight()-l.height, 0)
}

// measure fills tops from the cached heights, measuring rows as needed.
func (l *AnchoredList[T, K]) measure() {
	if l.tops != nil {
		return
	}
	l.tops = make([]int, l.seq.Len()+1)
	top := 0
	for i, k := range l.seq.All() {
		l.tops[i] = top
		top += l.rowHeight(k) + l.gap
	}
	l.tops[len(l.tops)-1] = top
}

func (l *AnchoredList[T, K]) rowHeight(k K) int {
	if h, ok := l.heights[k]; ok {
		return h
	}
	h := 1
	if item := l.builder(l.values[k]); item != nil {
		h = max(item.Height(l.width), 1)
	}
	l.heights[k] = h
	return h
}

// layout records the size of the row area. A new width changes every row
// height, so the anchor is restored on the new geometry.
func (l *AnchoredList[T, K]) layout(width, height int) {
	l.height = height
	if l.laidOut && width == l.width {
		if !l.bouncing {
			l.offset = min(max(l.offset, 0), l.maxOffset())
		}
		l.coordinator.LayoutSettled()
		return
	}

	first := !l.laidOut
	position := l.coordinator.Position()
	l.width = width
	l.laidOut = true
	clear(l.heights)
	l.tops = nil
	if first {
		l.offset = min(max(l.offset, 0), l.maxOffset())
		l.coordinator.LayoutSettled()
		// Replace the placeholder anchor taken before any geometry existed.
		l.coordinator.ScrollChanged()
		return
	}
	l.logger.Debug("list width changed", "width", width, "anchor", position)
	l.coordinator.Restore(position)
}

// Draw draws this primitive onto the screen.
func (l *AnchoredList[T, K]) Draw(screen tcell.Screen) {
	l.decorate()
	l.DrawForSubclass(screen, l)

	x, y, width, height := l.GetInnerRect()
	// The right-most column belongs to the scroll bar.
	rowWidth := width - 1
	if rowWidth <= 0 || height <= 0 {
		return
	}
	l.layout(rowWidth, height)

	clipped := newClippedScreen(screen, x, y, rowWidth, height)
	for _, row := range l.VisibleRows() {
		item := l.builder(l.values[row.Key])
		if item == nil {
			continue
		}
		item.SetRect(x, y+row.Rect.Top-l.offset, rowWidth, l.heights[row.Key])
		item.Draw(clipped)
	}
	if l.offset < 0 {
		l.drawPullIndicator(clipped, x, y, rowWidth)
	}

	l.scrollBar.SetRect(x+rowWidth, y, 1, height)
	l.scrollBar.
		SetLengths(ScrollLengths{ContentLen: l.ContentHeight(), ViewportLen: height}).
		SetOffset(min(max(l.offset, 0), l.maxOffset()))
	l.scrollBar.Draw(screen)
}

// decorate updates the frame's title and footer from the refresh state.
func (l *AnchoredList[T, K]) decorate() {
	title := l.title
	if l.refreshing {
		title = fmt.Sprintf("%s %s", title, SemigraphicsClockwiseArrow)
	}
	l.Box.SetTitle(title)

	if l.refreshErr != nil {
		l.Box.SetFooter("refresh failed: " + l.refreshErr.Error())
		l.Box.SetFooterStyle(tcell.StyleDefault.Foreground(Styles.ErrorTextColor))
	} else {
		l.Box.SetFooter("")
	}
}

func (l *AnchoredList[T, K]) drawPullIndicator(screen tcell.Screen, x, y, width int) {
	text := SemigraphicsDownwardsArrow + " pull to refresh"
	switch {
	case l.refreshing:
		text = SemigraphicsClockwiseArrow + " refreshing"
	case -l.offset >= l.pullThreshold:
		text = SemigraphicsClockwiseArrow + " release to refresh"
	}
	style := tcell.StyleDefault.Foreground(Styles.TertiaryTextColor)
	PrintWithStyle(screen, text, x, y+(-l.offset-1)/2, width, AlignmentCenter, style)
}

// ScrollBy scrolls by delta lines as a user gesture would. The list may
// travel up to the overscroll band past either end; it snaps back after the
// settle delay. Pulling past the top by the pull threshold starts a
// refresh.
func (l *AnchoredList[T, K]) ScrollBy(delta int) Command {
	if !l.laidOut || delta == 0 {
		return nil
	}
	low, high := -l.overscroll, l.maxOffset()+l.overscroll
	next := min(max(l.offset+delta, low), high)
	// Never move further out when already past the band, e.g. after the
	// viewport grew.
	if (delta < 0 && next > l.offset) || (delta > 0 && next < l.offset) {
		next = l.offset
	}
	if next == l.offset {
		return nil
	}
	l.offset = next
	l.coordinator.ScrollChanged()

	var cmd Command = RedrawCommand{}
	if !l.Overscrolled() {
		l.endBounce()
		return cmd
	}
	l.bouncing = true
	cmd = AppendCommand(cmd, l.scheduleSettle())
	if l.offset <= -min(l.pullThreshold, l.overscroll) {
		cmd = AppendCommand(cmd, l.Refresh())
	}
	return cmd
}

// Page scrolls by one viewport height minus a line of context. Pages stay
// inside the content.
func (l *AnchoredList[T, K]) Page(direction int) Command {
	return l.jumpTo(l.offset + direction*max(l.height-1, 1))
}

// ScrollToTop scrolls to the first row.
func (l *AnchoredList[T, K]) ScrollToTop() Command {
	return l.jumpTo(0)
}

// ScrollToBottom scrolls to the last row.
func (l *AnchoredList[T, K]) ScrollToBottom() Command {
	return l.jumpTo(l.maxOffset())
}

func (l *AnchoredList[T, K]) jumpTo(offset int) Command {
	if !l.laidOut {
		return nil
	}
	offset = min(max(offset, 0), l.maxOffset())
	if offset == l.offset {
		return nil
	}
	l.offset = offset
	l.endBounce()
	l.coordinator.ScrollChanged()
	return RedrawCommand{}
}

// Settle snaps an overscrolled list back into range.
func (l *AnchoredList[T, K]) Settle() Command {
	if !l.Overscrolled() {
		l.endBounce()
		return nil
	}
	l.offset = min(max(l.offset, 0), l.maxOffset())
	l.endBounce()
	l.coordinator.ScrollChanged()
	return RedrawCommand{}
}

func (l *AnchoredList[T, K]) scheduleSettle() Command {
	l.settleGen++
	gen := l.settleGen
	return DelayCommand{
		Delay: l.settleDelay,
		Command: CallbackCommand(func() Command {
			if gen != l.settleGen {
				return nil
			}
			return l.Settle()
		}),
	}
}

func (l *AnchoredList[T, K]) endBounce() {
	l.bouncing = false
	// Invalidates any scheduled settle.
	l.settleGen++
}

// Refresh starts the refresh action unless one is running or none is set.
func (l *AnchoredList[T, K]) Refresh() Command {
	r := l.refresher
	if !r.Begin() {
		return nil
	}
	return BatchCommand{
		RedrawCommand{},
		AsyncCommand(func(ctx context.Context) Command {
			err := r.Run(ctx)
			return CallbackCommand(func() Command {
				r.Finish(err)
				return RedrawCommand{}
			})
		}),
	}
}

// InputHandler handles the list's keybinds.
func (l *AnchoredList[T, K]) InputHandler(event *tcell.EventKey) Command {
	switch {
	case keybind.Matches(event, l.keys.Up):
		return l.ScrollBy(-1)
	case keybind.Matches(event, l.keys.Down):
		return l.ScrollBy(1)
	case keybind.Matches(event, l.keys.PageUp):
		return l.Page(-1)
	case keybind.Matches(event, l.keys.PageDown):
		return l.Page(1)
	case keybind.Matches(event, l.keys.Top):
		return l.ScrollToTop()
	case keybind.Matches(event, l.keys.Bottom):
		return l.ScrollToBottom()
	case keybind.Matches(event, l.keys.Refresh):
		return l.Refresh()
	}
	return nil
}

// MouseHandler scrolls on the wheel and takes focus on click.
func (l *AnchoredList[T, K]) MouseHandler(action MouseAction, event *tcell.EventMouse) (Primitive, Command) {
	if !l.InRect(event.Position()) {
		return nil, nil
	}
	switch action {
	case MouseLeftDown:
		return nil, SetFocusCommand{Target: l}
	case MouseScrollUp:
		return nil, l.ScrollBy(-wheelStep)
	case MouseScrollDown:
		return nil, l.ScrollBy(wheelStep)
	}
	return nil, nil
}

// listIndicator relays the refresh lifecycle to the list's frame.
type listIndicator[T any, K comparable] struct {
	l *AnchoredList[T, K]
}

func (i listIndicator[T, K]) BeginRefreshing() {
	i.l.refreshing = true
	i.l.refreshErr = nil
}

func (i listIndicator[T, K]) EndRefreshing(err error) {
	i.l.refreshing = false
	i.l.refreshErr = err
}

var (
	_ Primitive               = (*AnchoredList[string, string])(nil)
	_ anchor.Host[string]     = (*AnchoredList[string, string])(nil)
	_ anchor.RefreshIndicator = listIndicator[string, string]{}
)
