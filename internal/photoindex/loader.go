package photoindex

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"sync"
)

// Loader fetches the photo index at most once per page instance and memoizes
// the result. Every failure mode settles to "unavailable": Load returns an
// empty sequence and both the entry list and the id lookup stay nil. Callers
// must treat an empty result as "lightbox unavailable", not as an archive
// with zero photos.
type Loader struct {
	indexURL string
	page     *url.URL
	client   *http.Client

	once    sync.Once
	entries []Entry
	lookup  map[string]int
}

// NewLoader creates a Loader for the index resource at indexURL, resolved
// against the page URL when relative. A nil client falls back to
// http.DefaultClient.
func NewLoader(indexURL string, page *url.URL, client *http.Client) *Loader {
	if client == nil {
		client = http.DefaultClient
	}
	return &Loader{indexURL: indexURL, page: page, client: client}
}

// Disabled reports whether the photo feed cannot be used at all: no index URL
// was configured, or the page is not served over http/https (cross-origin
// fetch guarantees do not hold under a file origin). Disabled loaders never
// issue a network request.
func (l *Loader) Disabled() bool {
	if l.indexURL == "" || l.page == nil {
		return true
	}
	return l.page.Scheme != "http" && l.page.Scheme != "https"
}

// Load returns the photo index, fetching it on first call. Concurrent callers
// before the first fetch settles share its outcome; the index is never
// re-fetched or invalidated for the lifetime of the Loader.
func (l *Loader) Load(ctx context.Context) []Entry {
	if l.Disabled() {
		return nil
	}
	l.once.Do(func() { l.fetch(ctx) })
	return l.entries
}

func (l *Loader) fetch(ctx context.Context) {
	target := l.indexURL
	if ref, err := url.Parse(l.indexURL); err == nil {
		target = l.page.ResolveReference(ref).String()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return
	}

	var entries []Entry
	if err := json.Unmarshal(body, &entries); err != nil {
		// Malformed payload (not a sequence). Leave both index and lookup nil.
		return
	}

	lookup := make(map[string]int, len(entries))
	for i, e := range entries {
		lookup[e.ID] = i
	}

	// Entries and lookup are set together; no partial state is observable.
	if entries == nil {
		entries = []Entry{}
	}
	l.entries = entries
	l.lookup = lookup
}

// Available reports whether a fetch succeeded and the index and lookup are
// populated. It is false before the first Load and after a failed one.
func (l *Loader) Available() bool {
	return l.lookup != nil
}

// Position returns the index position for the given photo id.
func (l *Loader) Position(id string) (int, bool) {
	pos, ok := l.lookup[id]
	return pos, ok
}

// At returns the entry at the given position.
func (l *Loader) At(pos int) (Entry, bool) {
	if pos < 0 || pos >= len(l.entries) {
		return Entry{}, false
	}
	return l.entries[pos], true
}

// Len returns the number of indexed photos.
func (l *Loader) Len() int {
	return len(l.entries)
}
