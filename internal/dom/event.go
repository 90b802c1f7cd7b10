package dom

// Event is a dispatched user interaction.
type Event struct {
	Type   string
	Key    string
	Target *Element

	defaultPrevented bool
	stopPropagation  bool
}

// PreventDefault cancels the event's default action.
func (ev *Event) PreventDefault() { ev.defaultPrevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (ev *Event) DefaultPrevented() bool { return ev.defaultPrevented }

// StopPropagation stops the event from bubbling further.
func (ev *Event) StopPropagation() { ev.stopPropagation = true }

// AddEventListener registers a listener for the given event type on e.
func (e *Element) AddEventListener(typ string, h Handler) {
	e.listeners[typ] = append(e.listeners[typ], h)
}

// Dispatch delivers an event of the given type to e, bubbling through its
// ancestors and then the document-level listeners, and finally performs the
// default action unless a listener prevented it. It reports whether the
// default action ran.
func (e *Element) Dispatch(typ string) bool {
	ev := &Event{Type: typ, Target: e}
	for cur := e; cur != nil; cur = cur.parent {
		for _, h := range cur.listeners[typ] {
			h(ev)
		}
		if ev.stopPropagation {
			break
		}
	}
	if e.doc != nil && !ev.stopPropagation {
		for _, h := range e.doc.listeners[typ] {
			h(ev)
		}
	}
	if ev.defaultPrevented {
		return false
	}
	e.defaultAction(typ)
	return true
}

// Click dispatches a click event on e, listeners included.
func (e *Element) Click() bool { return e.Dispatch("click") }

// NativeClick performs the element's default click behavior without running
// any listeners. This is what restores the no-JS navigation when the lightbox
// degrades after it has already intercepted the real click.
func (e *Element) NativeClick() { e.defaultAction("click") }

// defaultAction runs the browser-default behavior for an event on e: a click
// on (or inside) an anchor follows its href.
func (e *Element) defaultAction(typ string) {
	if typ != "click" {
		return
	}
	anchor := e.Closest("a")
	if anchor == nil {
		return
	}
	href := anchor.Attr("href")
	if href == "" || e.doc == nil || e.doc.window == nil {
		return
	}
	e.doc.window.Navigate(href)
}
