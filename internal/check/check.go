// Package check cross-references an archive's photo index with its entry
// pages. The lightbox degrades silently when the two disagree; the checker
// makes that disagreement visible before a reader hits it.
package check

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/tariquesani/dayone-archive/internal/dom"
	"github.com/tariquesani/dayone-archive/internal/lightbox"
	"github.com/tariquesani/dayone-archive/internal/photoindex"
	"github.com/tariquesani/dayone-archive/internal/progress"
)

// Problem is one inconsistency between the index and the pages.
type Problem struct {
	PhotoID string
	Page    string
	Detail  string
}

func (p Problem) String() string {
	return fmt.Sprintf("%s (%s): %s", p.PhotoID, p.Page, p.Detail)
}

// Report is the result of checking one archive.
type Report struct {
	PagesScanned  int
	IndexedPhotos int

	// StaleIndex lists indexed photos whose owning page has no matching
	// anchor. Closing the lightbox on these still navigates, but the reader
	// lands without an anchor.
	StaleIndex []Problem
	// Unindexed lists page photos absent from the index. Their clicks fall
	// back to plain links, which works but skips the viewer.
	Unindexed []Problem
	// BadRecords lists index entries missing required fields.
	BadRecords []Problem
}

// Clean reports whether the index and pages fully agree.
func (r *Report) Clean() bool {
	return len(r.StaleIndex) == 0 && len(r.Unindexed) == 0 && len(r.BadRecords) == 0
}

// Run checks the archive rooted at archiveDir.
func Run(archiveDir string, reporter progress.Reporter) (*Report, error) {
	indexPath := filepath.Join(archiveDir, "entries", "photo-index.json")
	data, err := os.ReadFile(indexPath)
	if err != nil {
		return nil, fmt.Errorf("reading photo index: %w", err)
	}

	var entries []photoindex.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing photo index: %w", err)
	}

	pages, err := doublestar.FilepathGlob(filepath.Join(archiveDir, "entries", "**", "*.html"))
	if err != nil {
		return nil, fmt.Errorf("globbing entry pages: %w", err)
	}

	rep := &Report{IndexedPhotos: len(entries)}

	// Scan pages: archive-relative page path -> set of photo ids on it.
	pageIDs := make(map[string]map[string]bool)
	if reporter != nil {
		reporter.Start(len(pages))
	}
	for i, page := range pages {
		rel, err := filepath.Rel(archiveDir, page)
		if err != nil {
			continue
		}
		rel = filepath.ToSlash(rel)
		ids, err := scanPage(page)
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", rel, err)
		}
		pageIDs[rel] = ids
		rep.PagesScanned++
		if reporter != nil {
			reporter.Update(i+1, rel)
		}
	}
	if reporter != nil {
		reporter.Finish()
	}

	indexed := make(map[string]bool, len(entries))
	for _, e := range entries {
		indexed[e.ID] = true

		if e.ID == "" || e.ImageURL == "" {
			rep.BadRecords = append(rep.BadRecords, Problem{
				PhotoID: e.ID, Detail: "missing id or image_url",
			})
			continue
		}
		if e.EntryHref == "" {
			rep.BadRecords = append(rep.BadRecords, Problem{
				PhotoID: e.ID, Detail: "missing entry_href",
			})
			continue
		}

		page := owningPage(e.EntryHref)
		ids, scanned := pageIDs[page]
		switch {
		case !scanned:
			rep.StaleIndex = append(rep.StaleIndex, Problem{
				PhotoID: e.ID, Page: page, Detail: "owning page not found",
			})
		case !ids[e.ID]:
			rep.StaleIndex = append(rep.StaleIndex, Problem{
				PhotoID: e.ID, Page: page, Detail: "no anchor for photo on owning page",
			})
		}
	}

	for page, ids := range pageIDs {
		for id := range ids {
			if !indexed[id] {
				rep.Unindexed = append(rep.Unindexed, Problem{
					PhotoID: id, Page: page, Detail: "photo not in index",
				})
			}
		}
	}

	return rep, nil
}

// scanPage parses one entry page and returns the photo ids it exposes.
func scanPage(path string) (map[string]bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	doc, err := dom.Parse(f)
	if err != nil {
		return nil, err
	}

	ids := make(map[string]bool)
	for _, container := range lightbox.PhotoContainers(doc) {
		id := container.Attr(lightbox.AttrPhotoID)
		if id == "" {
			id = container.ID()
		}
		if id != "" {
			ids[id] = true
		}
	}
	return ids, nil
}

// owningPage extracts the archive-relative page path from an entry_href,
// dropping any anchor fragment.
func owningPage(href string) string {
	if u, err := url.Parse(href); err == nil {
		href = u.Path
	}
	if i := strings.IndexByte(href, '#'); i >= 0 {
		href = href[:i]
	}
	return strings.TrimPrefix(href, "/")
}
