package anchor

import (
	"slices"
	"testing"
)

func TestObservers_PublishOrder(t *testing.T) {
	var o Observers[int]
	var calls []string

	o.Subscribe(func(v int) { calls = append(calls, "first") })
	o.Subscribe(func(v int) { calls = append(calls, "second") })
	o.Publish(1)

	if !slices.Equal(calls, []string{"first", "second"}) {
		t.Errorf("calls = %v, want [first second]", calls)
	}
}

func TestObservers_Cancel(t *testing.T) {
	var o Observers[int]
	got := 0

	cancel := o.Subscribe(func(v int) { got += v })
	o.Publish(1)
	cancel()
	cancel()
	o.Publish(10)

	if got != 1 {
		t.Errorf("got = %d, want 1", got)
	}
	if o.Len() != 0 {
		t.Errorf("Len() = %d, want 0", o.Len())
	}
}

func TestObservers_CancelDuringPublish(t *testing.T) {
	var o Observers[int]
	var calls []string

	var cancelSecond func()
	o.Subscribe(func(int) {
		calls = append(calls, "first")
		cancelSecond()
	})
	cancelSecond = o.Subscribe(func(int) { calls = append(calls, "second") })

	o.Publish(1)
	o.Publish(2)

	if !slices.Equal(calls, []string{"first", "second", "first"}) {
		t.Errorf("calls = %v, want [first second first]", calls)
	}
}

func TestObservers_NilListener(t *testing.T) {
	var o Observers[int]
	cancel := o.Subscribe(nil)
	cancel()
	o.Publish(1)

	if o.Len() != 0 {
		t.Errorf("Len() = %d, want 0", o.Len())
	}
}
