package dom

import "net/url"

// Window presents a document at a location. It records full navigations so
// callers (and tests) can distinguish an in-place fragment change from the
// browser leaving the page.
type Window struct {
	doc         *Document
	loc         *url.URL
	navigations []string
}

// NewWindow attaches doc to a window located at rawURL.
func NewWindow(doc *Document, rawURL string) (*Window, error) {
	loc, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}
	w := &Window{doc: doc, loc: loc}
	doc.window = w
	return w, nil
}

// Document returns the presented document.
func (w *Window) Document() *Document { return w.doc }

// Location returns the window's current location.
func (w *Window) Location() *url.URL { return w.loc }

// ReplaceFragment updates only the location's fragment. No navigation occurs
// and the document is untouched.
func (w *Window) ReplaceFragment(frag string) {
	loc := *w.loc
	loc.Fragment = frag
	w.loc = &loc
}

// Navigate performs a full navigation to rawURL, resolved against the current
// location when relative. The previous page is gone after this.
func (w *Window) Navigate(rawURL string) {
	target := rawURL
	if ref, err := url.Parse(rawURL); err == nil {
		resolved := w.loc.ResolveReference(ref)
		target = resolved.String()
		w.loc = resolved
	}
	w.navigations = append(w.navigations, target)
}

// Navigations returns every full navigation performed, oldest first.
func (w *Window) Navigations() []string { return w.navigations }
