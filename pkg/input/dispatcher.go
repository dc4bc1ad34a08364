package input

// entry pairs a handler with the id its subscription releases it by
type entry[T any] struct {
	id int
	fn func(T)
}

// Dispatcher is the default Source. Hosts push their native events
// through the Pointer*/KeyDown methods; handlers run synchronously in
// registration order on the caller's goroutine.
type Dispatcher struct {
	nextID int
	down   []entry[PointerEvent]
	move   []entry[PointerEvent]
	up     []entry[PointerEvent]
	keys   []entry[Key]
}

// NewDispatcher creates an empty dispatcher
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// OnPointerDown registers a handler for pointer presses
func (d *Dispatcher) OnPointerDown(fn func(PointerEvent)) *Subscription {
	return subscribe(d, &d.down, fn)
}

// OnPointerMove registers a handler for pointer movement
func (d *Dispatcher) OnPointerMove(fn func(PointerEvent)) *Subscription {
	return subscribe(d, &d.move, fn)
}

// OnPointerUp registers a handler for pointer releases
func (d *Dispatcher) OnPointerUp(fn func(PointerEvent)) *Subscription {
	return subscribe(d, &d.up, fn)
}

// OnKeyDown registers a handler for key presses
func (d *Dispatcher) OnKeyDown(fn func(Key)) *Subscription {
	return subscribe(d, &d.keys, fn)
}

// PointerDown delivers a pointer press to all handlers
func (d *Dispatcher) PointerDown(ev PointerEvent) { dispatch(d.down, ev) }

// PointerMove delivers pointer movement to all handlers
func (d *Dispatcher) PointerMove(ev PointerEvent) { dispatch(d.move, ev) }

// PointerUp delivers a pointer release to all handlers
func (d *Dispatcher) PointerUp(ev PointerEvent) { dispatch(d.up, ev) }

// KeyDown delivers a key press to all handlers
func (d *Dispatcher) KeyDown(k Key) { dispatch(d.keys, k) }

func subscribe[T any](d *Dispatcher, list *[]entry[T], fn func(T)) *Subscription {
	d.nextID++
	id := d.nextID
	*list = append(*list, entry[T]{id: id, fn: fn})
	return &Subscription{release: func() {
		for i, e := range *list {
			if e.id == id {
				*list = append((*list)[:i], (*list)[i+1:]...)
				return
			}
		}
	}}
}

// dispatch runs the handlers registered at delivery time. The snapshot
// keeps releases from inside a handler (a session closing itself) from
// disturbing the iteration.
func dispatch[T any](entries []entry[T], ev T) {
	snapshot := append([]entry[T](nil), entries...)
	for _, e := range snapshot {
		e.fn(ev)
	}
}
