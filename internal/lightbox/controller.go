package lightbox

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/tariquesani/dayone-archive/internal/dom"
	"github.com/tariquesani/dayone-archive/internal/photoindex"
)

// Page attribute and class names making up the DOM contract with the
// generated archive pages.
const (
	// AttrPhotoIndex on <body> carries the photo index resource address and
	// enables the enhancement. Absent means the feature is fully disabled.
	AttrPhotoIndex = "data-photo-index"
	// AttrArchiveRoot on <body> carries the base URL all relative resource
	// addresses resolve against.
	AttrArchiveRoot = "data-archive-root"
	// AttrPhotoID identifies a photo container; the container's own id is the
	// fallback.
	AttrPhotoID = "data-photo-id"
	// PhotoClass marks an entry-page photo container.
	PhotoClass = "entry-photo"
	// MarkerClass is added to <body> once enhancement is active.
	MarkerClass = "lightbox-enhanced"
)

// Controller owns the viewer for one page: the index loader, the shell DOM,
// and the navigation state. Construct it once per page and hand it to the
// binder; it holds no hidden globals.
type Controller struct {
	doc    *dom.Document
	win    *dom.Window
	loader *photoindex.Loader
	base   *url.URL

	state       State
	lastFocused *dom.Element

	shellRoot  *dom.Element
	shellImg   *dom.Element
	shellCap   *dom.Element
	shellClose *dom.Element
}

// New builds a controller for the page presented in win, reading the index
// address and archive root from the document's body attributes. A nil client
// falls back to http.DefaultClient.
func New(win *dom.Window, client *http.Client) *Controller {
	doc := win.Document()
	body := doc.Body()

	base := win.Location()
	if root := body.Attr(AttrArchiveRoot); root != "" {
		if ref, err := url.Parse(root); err == nil {
			base = win.Location().ResolveReference(ref)
		}
	}

	// The index address is relative to the archive root, not to the entry
	// page it appears on.
	indexURL := body.Attr(AttrPhotoIndex)
	if indexURL != "" {
		if ref, err := url.Parse(indexURL); err == nil {
			indexURL = base.ResolveReference(ref).String()
		}
	}

	return &Controller{
		doc:    doc,
		win:    win,
		loader: photoindex.NewLoader(indexURL, win.Location(), client),
		base:   base,
		state:  Closed(),
	}
}

// State returns the current navigation state.
func (c *Controller) State() State { return c.state }

// Open resolves photoID against the photo index and shows the overlay at its
// position. When the feed is unconfigured, the index is unavailable, or the
// id is unknown, the trigger's native link behavior is invoked instead and no
// overlay appears.
func (c *Controller) Open(ctx context.Context, photoID string, trigger *dom.Element) OpenOutcome {
	if c.loader.Disabled() {
		return c.fallback(trigger)
	}

	c.loader.Load(ctx)

	pos, ok := c.loader.Position(photoID)
	if photoID == "" || !ok {
		return c.fallback(trigger)
	}

	c.lastFocused = c.doc.ActiveElement()
	c.state = OpenAt(pos)
	c.ensureShell()
	c.render(pos)
	c.shellRoot.RemoveAttr("hidden")
	c.shellClose.Focus()
	return OpenOutcome{Kind: OpenShown, Position: pos}
}

// fallback reproduces the no-JS navigation for the trigger element.
func (c *Controller) fallback(trigger *dom.Element) OpenOutcome {
	if trigger != nil {
		trigger.NativeClick()
	}
	return OpenOutcome{Kind: OpenFallback}
}

// Step moves the open photo by delta (+1 or -1) and re-renders. It reports
// whether the step was accepted.
func (c *Controller) Step(delta int) bool {
	next, ok := Step(c.state, delta, c.loader.Len())
	if !ok {
		return false
	}
	c.state = next
	c.render(next.Position())
	return true
}

// Close dismisses the overlay. When the current photo's owning entry is the
// page already being viewed, only the address fragment changes; when it is a
// different entry (or the comparison cannot be made), the browser navigates
// there for real, anchor included.
func (c *Controller) Close() CloseOutcome {
	entry, ok := c.loader.At(c.state.Position())
	if !ok || entry.EntryHref == "" {
		c.hide()
		return CloseOutcome{Kind: CloseHide}
	}

	target := c.resolveURL(entry.EntryHref)
	if tu, err := url.Parse(target); err == nil && tu.Path == c.win.Location().Path {
		if tu.Fragment != "" {
			c.win.ReplaceFragment(tu.Fragment)
		}
		c.hide()
		return CloseOutcome{Kind: CloseFragment, Fragment: tu.Fragment}
	}

	// Different entry, or a path comparison that failed: navigating is the
	// safe default, it can never strand the user with a stale fragment.
	c.state = Closed()
	c.win.Navigate(target)
	return CloseOutcome{Kind: CloseNavigate, Target: target}
}

// hide conceals the shell, restores focus, and resets the state.
func (c *Controller) hide() {
	if c.shellRoot != nil {
		c.shellRoot.SetAttr("hidden", "")
	}
	if c.lastFocused != nil {
		c.lastFocused.Focus()
		c.lastFocused = nil
	}
	c.state = Closed()
}

// render shows the photo at the given index position in the shell.
func (c *Controller) render(pos int) {
	entry, ok := c.loader.At(pos)
	if !ok {
		return
	}
	c.shellImg.SetAttr("src", c.resolveURL(entry.ImageURL))
	c.shellImg.SetAttr("alt", entry.DateISO)
	c.shellCap.SetText(caption(entry))
}

// resolveURL resolves raw against the archive root, falling back to the raw
// string unmodified when it cannot be parsed as a URL reference.
func (c *Controller) resolveURL(raw string) string {
	ref, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return c.base.ResolveReference(ref).String()
}

// caption joins whichever display fields the entry carries.
func caption(entry photoindex.Entry) string {
	var parts []string
	if entry.DateISO != "" {
		parts = append(parts, entry.DateISO)
	}
	if entry.MonthYear != "" {
		parts = append(parts, entry.MonthYear)
	}
	return strings.Join(parts, " · ")
}
