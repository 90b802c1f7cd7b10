package lightbox

import (
	"context"

	"github.com/tariquesani/dayone-archive/internal/dom"
)

// Enhance scans the page for photo containers wrapping a hyperlink and
// rewires their clicks through the controller. The underlying hyperlink is
// never removed: containers without an identifier, and every container when
// no photo feed is configured, keep their native link behavior untouched.
// Returns the number of links enhanced.
func (c *Controller) Enhance(ctx context.Context) int {
	c.doc.Body().AddClass(MarkerClass)

	if c.loader.Disabled() {
		return 0
	}

	bound := 0
	for _, container := range PhotoContainers(c.doc) {
		id := container.Attr(AttrPhotoID)
		if id == "" {
			id = container.ID()
		}
		if id == "" {
			continue
		}
		link := container.FindTag("a")
		if link == nil {
			continue
		}

		photoID := id
		trigger := link
		link.AddEventListener("click", func(ev *dom.Event) {
			ev.PreventDefault()
			c.Open(ctx, photoID, trigger)
		})
		bound++
	}
	return bound
}

// PhotoContainers returns every element marked as a photo container, in
// document order and without duplicates: elements carrying the photo id
// attribute plus the generator's entry-photo figures.
func PhotoContainers(doc *dom.Document) []*dom.Element {
	seen := make(map[*dom.Element]bool)
	var out []*dom.Element
	for _, el := range doc.ElementsByAttr(AttrPhotoID) {
		if !seen[el] {
			seen[el] = true
			out = append(out, el)
		}
	}
	for _, el := range doc.ElementsByClass(PhotoClass) {
		if !seen[el] {
			seen[el] = true
			out = append(out, el)
		}
	}
	return out
}
