package anchor

// Observers is a list of listeners invoked synchronously, in subscription
// order, on the goroutine that publishes. It is not safe for concurrent use.
type Observers[V any] struct {
	next      int
	listeners []listener[V]
}

type listener[V any] struct {
	id int
	fn func(V)
}

// Subscribe adds fn and returns a function that removes it again. Calling
// the returned function more than once has no further effect.
func (o *Observers[V]) Subscribe(fn func(V)) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	o.next++
	id := o.next
	o.listeners = append(o.listeners, listener[V]{id: id, fn: fn})
	return func() {
		for i, l := range o.listeners {
			if l.id == id {
				o.listeners = append(o.listeners[:i:i], o.listeners[i+1:]...)
				return
			}
		}
	}
}

// Publish calls every listener with v. Listeners that subscribe or cancel
// during Publish take effect from the next call.
func (o *Observers[V]) Publish(v V) {
	listeners := o.listeners
	for _, l := range listeners {
		l.fn(v)
	}
}

// Len returns the number of listeners.
func (o *Observers[V]) Len() int {
	return len(o.listeners)
}
