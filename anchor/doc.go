/*
Package anchor keeps the visual scroll position of a virtualized list stable
while its content changes.

A list host (a terminal widget, a Bubble Tea model, a test double) reports
which rows are on screen and where they sit in content coordinates. Before a
content update the [Coordinator] captures a [Position]: the identity of the
top-most visible row plus how many lines of it are scrolled past the top edge.
After the host has applied the new [Sequence], the position is resolved
against the new geometry and the host is scrolled there without animation, so
the row the user was reading stays under their eye even when items were
inserted above it.

When the anchored row is gone, a [Fallback] policy picks the top or the
bottom of the new content. Readings taken while the host is in an elastic
overscroll are not trusted; the [BounceGuard] keeps the last trusted position
instead.

Everything in this package runs on the host's rendering goroutine. The only
asynchronous piece is the [Refresher], which relays a caller-supplied refresh
action and reports its completion back to the host.
*/
package anchor
