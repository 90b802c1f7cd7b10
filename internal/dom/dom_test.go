package dom

import (
	"testing"
)

const samplePage = `<html><body class="entry">
<figure class="entry-photo" id="p1" data-photo-id="p1">
  <a href="photos/a.jpg"><img src="photos/a.jpg" alt="first"></a>
  <figcaption>January 2020</figcaption>
</figure>
<p id="text">Some entry text.</p>
</body></html>`

func parseSample(t *testing.T) *Document {
	t.Helper()
	doc, err := ParseString(samplePage)
	if err != nil {
		t.Fatalf("ParseString error: %v", err)
	}
	return doc
}

func TestParseStructure(t *testing.T) {
	doc := parseSample(t)

	fig := doc.ElementByID("p1")
	if fig == nil {
		t.Fatal("figure p1 not found")
	}
	if fig.Tag != "figure" {
		t.Errorf("tag = %q, want figure", fig.Tag)
	}
	if !fig.HasClass("entry-photo") {
		t.Error("figure should have entry-photo class")
	}
	if got := fig.Attr("data-photo-id"); got != "p1" {
		t.Errorf("data-photo-id = %q, want p1", got)
	}

	link := fig.FindTag("a")
	if link == nil || link.Attr("href") != "photos/a.jpg" {
		t.Fatalf("anchor not found or wrong href")
	}
	if img := link.FindTag("img"); img == nil || img.Attr("alt") != "first" {
		t.Error("img not found under anchor")
	}

	if got := doc.ElementByID("text").Text(); got != "Some entry text." {
		t.Errorf("text = %q", got)
	}
}

func TestQueries(t *testing.T) {
	doc := parseSample(t)

	if got := len(doc.ElementsByClass("entry-photo")); got != 1 {
		t.Errorf("by class = %d, want 1", got)
	}
	if got := len(doc.ElementsByAttr("data-photo-id")); got != 1 {
		t.Errorf("by attr = %d, want 1", got)
	}
	if doc.ElementByID("") != nil {
		t.Error("empty id should not match")
	}
	if doc.Body().Tag != "body" {
		t.Errorf("Body tag = %q", doc.Body().Tag)
	}
}

func TestClassMutation(t *testing.T) {
	doc := NewDocument()
	el := doc.CreateElement("div")

	el.AddClass("a")
	el.AddClass("b")
	el.AddClass("a") // no duplicate
	if got := el.Attr("class"); got != "a b" {
		t.Errorf("class = %q, want %q", got, "a b")
	}

	el.RemoveClass("a")
	if el.HasClass("a") || !el.HasClass("b") {
		t.Errorf("class after remove = %q", el.Attr("class"))
	}
}

func TestClickDefaultActionNavigates(t *testing.T) {
	doc := parseSample(t)
	win, err := NewWindow(doc, "http://localhost/e/1.html")
	if err != nil {
		t.Fatal(err)
	}

	link := doc.ElementByID("p1").FindTag("a")
	if !link.Click() {
		t.Error("unprevented click should run the default action")
	}

	navs := win.Navigations()
	if len(navs) != 1 || navs[0] != "http://localhost/e/photos/a.jpg" {
		t.Errorf("navigations = %v", navs)
	}
}

func TestClickInsideAnchorNavigates(t *testing.T) {
	doc := parseSample(t)
	win, err := NewWindow(doc, "http://localhost/e/1.html")
	if err != nil {
		t.Fatal(err)
	}

	// The click lands on the img, the enclosing anchor's default runs.
	doc.ElementByID("p1").FindTag("img").Click()
	if got := len(win.Navigations()); got != 1 {
		t.Errorf("navigations = %d, want 1", got)
	}
}

func TestPreventDefaultStopsNavigation(t *testing.T) {
	doc := parseSample(t)
	win, err := NewWindow(doc, "http://localhost/e/1.html")
	if err != nil {
		t.Fatal(err)
	}

	link := doc.ElementByID("p1").FindTag("a")
	link.AddEventListener("click", func(ev *Event) { ev.PreventDefault() })

	if link.Click() {
		t.Error("prevented click should report no default action")
	}
	if got := len(win.Navigations()); got != 0 {
		t.Errorf("navigations = %d, want 0", got)
	}
}

func TestNativeClickSkipsListeners(t *testing.T) {
	doc := parseSample(t)
	win, err := NewWindow(doc, "http://localhost/e/1.html")
	if err != nil {
		t.Fatal(err)
	}

	called := false
	link := doc.ElementByID("p1").FindTag("a")
	link.AddEventListener("click", func(ev *Event) {
		called = true
		ev.PreventDefault()
	})

	link.NativeClick()
	if called {
		t.Error("NativeClick must not run listeners")
	}
	if got := len(win.Navigations()); got != 1 {
		t.Errorf("navigations = %d, want 1", got)
	}
}

func TestEventBubbling(t *testing.T) {
	doc := parseSample(t)
	fig := doc.ElementByID("p1")
	link := fig.FindTag("a")

	var order []string
	link.AddEventListener("click", func(ev *Event) { order = append(order, "link") })
	fig.AddEventListener("click", func(ev *Event) { order = append(order, "figure") })
	doc.AddEventListener("click", func(ev *Event) { order = append(order, "document") })

	link.Click()

	if len(order) != 3 || order[0] != "link" || order[1] != "figure" || order[2] != "document" {
		t.Errorf("listener order = %v", order)
	}
}

func TestStopPropagation(t *testing.T) {
	doc := parseSample(t)
	fig := doc.ElementByID("p1")
	link := fig.FindTag("a")

	reached := false
	link.AddEventListener("click", func(ev *Event) { ev.StopPropagation() })
	fig.AddEventListener("click", func(ev *Event) { reached = true })

	link.Click()
	if reached {
		t.Error("propagation should have stopped at the link")
	}
}

func TestEventTarget(t *testing.T) {
	doc := parseSample(t)
	fig := doc.ElementByID("p1")
	link := fig.FindTag("a")

	var target *Element
	fig.AddEventListener("click", func(ev *Event) { target = ev.Target })

	link.Click()
	if target != link {
		t.Error("bubbled event should keep the original target")
	}
}

func TestFocusTracking(t *testing.T) {
	doc := parseSample(t)
	link := doc.ElementByID("p1").FindTag("a")

	if doc.ActiveElement() != nil {
		t.Error("no element should be focused initially")
	}
	link.Focus()
	if doc.ActiveElement() != link {
		t.Error("focus should move to the link")
	}
}

func TestKeydownDispatch(t *testing.T) {
	doc := parseSample(t)

	var keys []string
	doc.AddEventListener("keydown", func(ev *Event) { keys = append(keys, ev.Key) })

	doc.DispatchKeydown("Escape")
	doc.DispatchKeydown("ArrowRight")

	if len(keys) != 2 || keys[0] != "Escape" || keys[1] != "ArrowRight" {
		t.Errorf("keys = %v", keys)
	}
}

func TestWindowFragmentAndNavigation(t *testing.T) {
	doc := NewDocument()
	win, err := NewWindow(doc, "http://localhost/e/1.html")
	if err != nil {
		t.Fatal(err)
	}

	win.ReplaceFragment("p1")
	if got := win.Location().Fragment; got != "p1" {
		t.Errorf("fragment = %q, want p1", got)
	}
	if got := win.Location().Path; got != "/e/1.html" {
		t.Errorf("path = %q, want unchanged", got)
	}
	if len(win.Navigations()) != 0 {
		t.Error("fragment change is not a navigation")
	}

	win.Navigate("/e/2.html#p2")
	navs := win.Navigations()
	if len(navs) != 1 || navs[0] != "http://localhost/e/2.html#p2" {
		t.Errorf("navigations = %v", navs)
	}
	if got := win.Location().Path; got != "/e/2.html" {
		t.Errorf("path after navigate = %q", got)
	}
}

func TestCreateAndAppend(t *testing.T) {
	doc := NewDocument()
	div := doc.CreateElement("div")
	div.SetAttr("id", "overlay")
	doc.Body().AppendChild(div)

	if doc.ElementByID("overlay") != div {
		t.Error("appended element should be reachable by id")
	}
	if div.Parent() != doc.Body() {
		t.Error("parent should be body")
	}

	div.SetAttr("hidden", "")
	if !div.HasAttr("hidden") {
		t.Error("hidden attribute should be present")
	}
	div.RemoveAttr("hidden")
	if div.HasAttr("hidden") {
		t.Error("hidden attribute should be removed")
	}
}
