// Package dom is the small document model the lightbox binds to. It carries
// just enough of the browser contract to host the viewer: an element tree
// parsed from generated archive pages, click/keydown event dispatch with
// default actions, focus tracking, and a window with a location. Transition
// logic lives elsewhere; this package is only the binding surface.
package dom

import (
	"sort"
	"strings"
)

// Handler is an event listener.
type Handler func(*Event)

// Element is a node in the document tree.
type Element struct {
	Tag string

	doc       *Document
	parent    *Element
	children  []*Element
	attrs     map[string]string
	text      strings.Builder
	listeners map[string][]Handler
}

// Document owns an element tree and the document-level listeners.
type Document struct {
	root      *Element
	window    *Window
	active    *Element
	listeners map[string][]Handler
}

// NewDocument creates an empty document with an <html><body> skeleton.
func NewDocument() *Document {
	d := &Document{listeners: make(map[string][]Handler)}
	d.root = d.CreateElement("html")
	body := d.CreateElement("body")
	d.root.AppendChild(body)
	return d
}

// CreateElement creates a detached element owned by this document.
func (d *Document) CreateElement(tag string) *Element {
	return &Element{
		Tag:       tag,
		doc:       d,
		attrs:     make(map[string]string),
		listeners: make(map[string][]Handler),
	}
}

// Root returns the document's root element.
func (d *Document) Root() *Element { return d.root }

// Body returns the <body> element, or the root when none exists.
func (d *Document) Body() *Element {
	if b := d.root.find(func(e *Element) bool { return e.Tag == "body" }); b != nil {
		return b
	}
	return d.root
}

// ElementByID returns the element with the given id attribute.
func (d *Document) ElementByID(id string) *Element {
	if id == "" {
		return nil
	}
	return d.root.find(func(e *Element) bool { return e.attrs["id"] == id })
}

// ElementsByClass returns all elements carrying the given class, in document
// order.
func (d *Document) ElementsByClass(class string) []*Element {
	return d.root.findAll(func(e *Element) bool { return e.HasClass(class) })
}

// ElementsByAttr returns all elements that have the given attribute set.
func (d *Document) ElementsByAttr(name string) []*Element {
	return d.root.findAll(func(e *Element) bool {
		_, ok := e.attrs[name]
		return ok
	})
}

// ActiveElement returns the currently focused element, if any.
func (d *Document) ActiveElement() *Element { return d.active }

// Window returns the window this document is presented in.
func (d *Document) Window() *Window { return d.window }

// AddEventListener registers a document-level listener. Document listeners
// run for events dispatched on the document itself (keydown) and for bubbled
// element events.
func (d *Document) AddEventListener(typ string, h Handler) {
	d.listeners[typ] = append(d.listeners[typ], h)
}

// DispatchKeydown delivers a keydown event to the document-level listeners.
func (d *Document) DispatchKeydown(key string) {
	ev := &Event{Type: "keydown", Key: key}
	for _, h := range d.listeners["keydown"] {
		h(ev)
	}
}

// Parent returns the element's parent, or nil at the root.
func (e *Element) Parent() *Element { return e.parent }

// Children returns the element's child elements.
func (e *Element) Children() []*Element { return e.children }

// AppendChild attaches child as the last child of e.
func (e *Element) AppendChild(child *Element) {
	child.parent = e
	e.children = append(e.children, child)
}

// Attr returns the value of the named attribute ("" when absent).
func (e *Element) Attr(name string) string { return e.attrs[name] }

// HasAttr reports whether the named attribute is present.
func (e *Element) HasAttr(name string) bool {
	_, ok := e.attrs[name]
	return ok
}

// SetAttr sets the named attribute.
func (e *Element) SetAttr(name, value string) { e.attrs[name] = value }

// RemoveAttr removes the named attribute.
func (e *Element) RemoveAttr(name string) { delete(e.attrs, name) }

// ID returns the element's id attribute.
func (e *Element) ID() string { return e.attrs["id"] }

// Text returns the element's own text content.
func (e *Element) Text() string { return e.text.String() }

// SetText replaces the element's text content.
func (e *Element) SetText(s string) {
	e.text.Reset()
	e.text.WriteString(s)
}

// HasClass reports whether the element's class attribute contains class.
func (e *Element) HasClass(class string) bool {
	for _, c := range strings.Fields(e.attrs["class"]) {
		if c == class {
			return true
		}
	}
	return false
}

// AddClass adds class to the element's class attribute.
func (e *Element) AddClass(class string) {
	if e.HasClass(class) {
		return
	}
	cur := strings.Fields(e.attrs["class"])
	cur = append(cur, class)
	e.attrs["class"] = strings.Join(cur, " ")
}

// RemoveClass removes class from the element's class attribute.
func (e *Element) RemoveClass(class string) {
	cur := strings.Fields(e.attrs["class"])
	kept := cur[:0]
	for _, c := range cur {
		if c != class {
			kept = append(kept, c)
		}
	}
	e.attrs["class"] = strings.Join(kept, " ")
}

// Focus moves document focus to this element.
func (e *Element) Focus() {
	if e.doc != nil {
		e.doc.active = e
	}
}

// Closest returns the nearest ancestor (or e itself) matching the tag.
func (e *Element) Closest(tag string) *Element {
	for cur := e; cur != nil; cur = cur.parent {
		if cur.Tag == tag {
			return cur
		}
	}
	return nil
}

// FindTag returns the first descendant (or e itself) with the given tag, in
// document order.
func (e *Element) FindTag(tag string) *Element {
	return e.find(func(el *Element) bool { return el.Tag == tag })
}

func (e *Element) find(match func(*Element) bool) *Element {
	if match(e) {
		return e
	}
	for _, c := range e.children {
		if found := c.find(match); found != nil {
			return found
		}
	}
	return nil
}

func (e *Element) findAll(match func(*Element) bool) []*Element {
	var out []*Element
	if match(e) {
		out = append(out, e)
	}
	for _, c := range e.children {
		out = append(out, c.findAll(match)...)
	}
	return out
}

// AttrNames returns the element's attribute names, sorted.
func (e *Element) AttrNames() []string {
	names := make([]string, 0, len(e.attrs))
	for n := range e.attrs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
