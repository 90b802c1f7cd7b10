// Package lightbox implements the archive's modal photo viewer: a controller
// that overlays a globally ordered photo collection on top of statically
// generated entry pages, and degrades to the pages' plain hyperlinks whenever
// its photo index is unavailable.
//
// The navigation rules are pure functions over State so they can be exercised
// without a document; everything touching elements, focus, or the window
// lives in the controller, shell, and binder files.
package lightbox

// State is the viewer's position in the global photo order: closed, or open
// at a position in the index.
type State struct {
	position int
}

// Closed returns the closed state.
func Closed() State { return State{position: -1} }

// OpenAt returns the state open at the given index position.
func OpenAt(pos int) State { return State{position: pos} }

// IsOpen reports whether a photo is open.
func (s State) IsOpen() bool { return s.position >= 0 }

// Position returns the current index position, -1 when closed.
func (s State) Position() int { return s.position }

// Step moves the open position by delta (+1 or -1) within an index of n
// photos. A step past either end is rejected: no wraparound, no clamping, the
// state is unchanged. Stepping while closed or over an empty index is also
// rejected.
func Step(s State, delta, n int) (State, bool) {
	if !s.IsOpen() || n == 0 {
		return s, false
	}
	next := s.position + delta
	if next < 0 || next >= n {
		return s, false
	}
	return State{position: next}, true
}

// OpenKind names the outcome of an open attempt.
type OpenKind int

const (
	// OpenShown means the overlay is visible at OpenOutcome.Position.
	OpenShown OpenKind = iota
	// OpenFallback means the viewer degraded to the trigger's native link
	// behavior and no overlay was shown.
	OpenFallback
)

// OpenOutcome is the explicit result of Controller.Open.
type OpenOutcome struct {
	Kind     OpenKind
	Position int
}

// CloseKind names the outcome of closing the overlay.
type CloseKind int

const (
	// CloseHide hides the overlay and restores focus; the page is untouched.
	CloseHide CloseKind = iota
	// CloseFragment hides the overlay and updates only the page's address
	// fragment to the photo's anchor.
	CloseFragment
	// CloseNavigate performs a full navigation to the entry page owning the
	// current photo.
	CloseNavigate
)

// CloseOutcome is the explicit result of Controller.Close.
type CloseOutcome struct {
	Kind     CloseKind
	Fragment string
	Target   string
}
