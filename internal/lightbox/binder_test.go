package lightbox

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tariquesani/dayone-archive/internal/dom"
)

func newBinderFixture(t *testing.T, bodyContent string) (*Controller, *dom.Window) {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/entries/photo-index.json" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(scenarioIndex))
	}))
	t.Cleanup(srv.Close)

	page := fmt.Sprintf(
		`<html><body data-archive-root="%s/" data-photo-index="entries/photo-index.json">%s</body></html>`,
		srv.URL, bodyContent)

	doc, err := dom.ParseString(page)
	if err != nil {
		t.Fatal(err)
	}
	win, err := dom.NewWindow(doc, srv.URL+"/e/1.html")
	if err != nil {
		t.Fatal(err)
	}
	return New(win, srv.Client()), win
}

func TestEnhanceInterceptsPhotoClicks(t *testing.T) {
	c, win := newBinderFixture(t,
		`<figure class="entry-photo" id="p1"><a href="photos/a.jpg"><img alt=""></a></figure>`)

	if got := c.Enhance(context.Background()); got != 1 {
		t.Fatalf("Enhance = %d, want 1", got)
	}
	if !c.doc.Body().HasClass(MarkerClass) {
		t.Error("body should carry the enhancement marker class")
	}

	link := c.doc.ElementByID("p1").FindTag("a")
	link.Click()

	if !c.ShellVisible() {
		t.Error("click on an enhanced photo should open the overlay")
	}
	if len(win.Navigations()) != 0 {
		t.Errorf("enhanced click navigated: %v", win.Navigations())
	}
	// The hyperlink itself is untouched, only its click behavior changed.
	if got := link.Attr("href"); got != "photos/a.jpg" {
		t.Errorf("href = %q, want preserved", got)
	}
}

func TestEnhancePrefersExplicitAttribute(t *testing.T) {
	c, _ := newBinderFixture(t,
		`<div data-photo-id="p2" id="wrong"><a href="photos/b.jpg"><img alt=""></a></div>`)

	if got := c.Enhance(context.Background()); got != 1 {
		t.Fatalf("Enhance = %d, want 1", got)
	}
	c.doc.ElementByID("wrong").FindTag("a").Click()
	if got := c.State().Position(); got != 1 {
		t.Errorf("opened position = %d, want 1 (p2)", got)
	}
}

func TestEnhanceLeavesUnidentifiedPhotosAlone(t *testing.T) {
	c, win := newBinderFixture(t,
		`<figure class="entry-photo"><a id="bare" href="photos/a.jpg"><img alt=""></a></figure>`)

	if got := c.Enhance(context.Background()); got != 0 {
		t.Fatalf("Enhance = %d, want 0", got)
	}

	c.doc.ElementByID("bare").Click()
	if c.ShellVisible() {
		t.Error("unidentified photo should keep native behavior")
	}
	if got := len(win.Navigations()); got != 1 {
		t.Errorf("navigations = %d, want the native one", got)
	}
}

func TestEnhanceDisabledWithoutFeed(t *testing.T) {
	page := `<html><body>
<figure class="entry-photo" id="p1"><a href="photos/a.jpg"><img alt=""></a></figure>
</body></html>`
	doc, err := dom.ParseString(page)
	if err != nil {
		t.Fatal(err)
	}
	win, err := dom.NewWindow(doc, "http://localhost/e/1.html")
	if err != nil {
		t.Fatal(err)
	}
	c := New(win, nil)

	if got := c.Enhance(context.Background()); got != 0 {
		t.Fatalf("Enhance = %d, want 0 without a configured feed", got)
	}

	// Clicks behave exactly as with scripting disabled.
	doc.ElementByID("p1").FindTag("a").Click()
	if got := len(win.Navigations()); got != 1 {
		t.Errorf("navigations = %d, want 1", got)
	}
	if c.ShellVisible() {
		t.Error("no overlay without a configured feed")
	}
}

func TestPhotoContainersDeduplicates(t *testing.T) {
	page := `<html><body>
<figure class="entry-photo" data-photo-id="p1"><a href="a.jpg"></a></figure>
<figure class="entry-photo" id="p2"><a href="b.jpg"></a></figure>
</body></html>`
	doc, err := dom.ParseString(page)
	if err != nil {
		t.Fatal(err)
	}
	if got := len(PhotoContainers(doc)); got != 2 {
		t.Errorf("containers = %d, want 2", got)
	}
}
