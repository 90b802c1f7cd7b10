package check

import (
	"os"
	"path/filepath"
	"testing"
)

// writeArchive lays out a minimal archive under a temp dir: an index plus
// entry pages keyed by archive-relative path.
func writeArchive(t *testing.T, index string, pages map[string]string) string {
	t.Helper()
	dir := t.TempDir()

	if err := os.MkdirAll(filepath.Join(dir, "entries"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "entries", "photo-index.json"), []byte(index), 0644); err != nil {
		t.Fatal(err)
	}
	for rel, content := range pages {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func photoPage(ids ...string) string {
	page := "<html><body>"
	for _, id := range ids {
		page += `<figure class="entry-photo" id="` + id + `"><a href="photos/x.jpg"><img alt=""></a></figure>`
	}
	return page + "</body></html>"
}

func TestRunCleanArchive(t *testing.T) {
	index := `[
	  {"id":"p1","image_url":"a.jpg","entry_href":"entries/2020/01/first.html#p1"},
	  {"id":"p2","image_url":"b.jpg","entry_href":"entries/2020/02/second.html#p2"}
	]`
	dir := writeArchive(t, index, map[string]string{
		"entries/2020/01/first.html":  photoPage("p1"),
		"entries/2020/02/second.html": photoPage("p2"),
	})

	rep, err := Run(dir, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !rep.Clean() {
		t.Errorf("report not clean: %+v", rep)
	}
	if rep.PagesScanned != 2 || rep.IndexedPhotos != 2 {
		t.Errorf("scanned=%d indexed=%d, want 2 and 2", rep.PagesScanned, rep.IndexedPhotos)
	}
}

func TestRunFindsDisagreements(t *testing.T) {
	index := `[
	  {"id":"p1","image_url":"a.jpg","entry_href":"entries/2020/01/first.html#p1"},
	  {"id":"p2","image_url":"b.jpg","entry_href":"entries/2020/09/gone.html#p2"},
	  {"id":"p3","entry_href":"entries/2020/01/first.html#p3"},
	  {"id":"p5","image_url":"e.jpg"}
	]`
	dir := writeArchive(t, index, map[string]string{
		"entries/2020/01/first.html": photoPage("p1", "p4"),
	})

	rep, err := Run(dir, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rep.Clean() {
		t.Fatal("report should not be clean")
	}

	// p2 points at a page that does not exist.
	if len(rep.StaleIndex) != 1 || rep.StaleIndex[0].PhotoID != "p2" {
		t.Errorf("StaleIndex = %+v, want just p2", rep.StaleIndex)
	}
	// p3 has no image_url, p5 has no entry_href.
	if len(rep.BadRecords) != 2 {
		t.Errorf("BadRecords = %+v, want p3 and p5", rep.BadRecords)
	}
	// p4 is on the page but not in the index.
	if len(rep.Unindexed) != 1 || rep.Unindexed[0].PhotoID != "p4" {
		t.Errorf("Unindexed = %+v, want just p4", rep.Unindexed)
	}
}

func TestRunStaleAnchor(t *testing.T) {
	// The owning page exists but no longer carries the photo's anchor.
	index := `[{"id":"p1","image_url":"a.jpg","entry_href":"entries/2020/01/first.html#p1"}]`
	dir := writeArchive(t, index, map[string]string{
		"entries/2020/01/first.html": photoPage("other"),
	})

	rep, err := Run(dir, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(rep.StaleIndex) != 1 || rep.StaleIndex[0].PhotoID != "p1" {
		t.Errorf("StaleIndex = %+v, want stale anchor for p1", rep.StaleIndex)
	}
}

func TestRunMissingIndex(t *testing.T) {
	if _, err := Run(t.TempDir(), nil); err == nil {
		t.Error("Run without an index should fail")
	}
}

func TestOwningPage(t *testing.T) {
	tests := []struct {
		href, want string
	}{
		{"/entries/2020/01/first.html#p1", "entries/2020/01/first.html"},
		{"entries/2020/01/first.html", "entries/2020/01/first.html"},
		{"/entries/a.html", "entries/a.html"},
	}
	for _, tt := range tests {
		if got := owningPage(tt.href); got != tt.want {
			t.Errorf("owningPage(%q) = %q, want %q", tt.href, got, tt.want)
		}
	}
}
