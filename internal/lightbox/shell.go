package lightbox

import "github.com/tariquesani/dayone-archive/internal/dom"

// ensureShell constructs the overlay subtree and wires its controls. It runs
// at most once per page; later opens reuse the same nodes. The document-level
// key listener is attached here and stays attached for the page's lifetime,
// acting only while the overlay is open.
func (c *Controller) ensureShell() {
	if c.shellRoot != nil {
		return
	}

	root := c.doc.CreateElement("div")
	root.AddClass("photo-lightbox")
	root.SetAttr("hidden", "")

	dialog := c.doc.CreateElement("div")
	dialog.AddClass("photo-lightbox-dialog")
	dialog.SetAttr("role", "dialog")
	dialog.SetAttr("aria-modal", "true")
	dialog.SetAttr("aria-label", "Photo viewer")

	closeBtn := c.doc.CreateElement("button")
	closeBtn.AddClass("photo-lightbox-close")
	closeBtn.SetAttr("aria-label", "Close photo viewer")
	closeBtn.SetText("×")

	prevBtn := c.doc.CreateElement("button")
	prevBtn.AddClass("photo-lightbox-prev")
	prevBtn.SetAttr("aria-label", "Previous photo")
	prevBtn.SetText("‹")

	nextBtn := c.doc.CreateElement("button")
	nextBtn.AddClass("photo-lightbox-next")
	nextBtn.SetAttr("aria-label", "Next photo")
	nextBtn.SetText("›")

	img := c.doc.CreateElement("img")
	img.AddClass("photo-lightbox-image")

	cap := c.doc.CreateElement("figcaption")
	cap.AddClass("photo-lightbox-caption")

	dialog.AppendChild(closeBtn)
	dialog.AppendChild(prevBtn)
	dialog.AppendChild(img)
	dialog.AppendChild(nextBtn)
	dialog.AppendChild(cap)
	root.AppendChild(dialog)
	c.doc.Body().AppendChild(root)

	closeBtn.AddEventListener("click", func(ev *dom.Event) { c.Close() })
	prevBtn.AddEventListener("click", func(ev *dom.Event) { c.Step(-1) })
	nextBtn.AddEventListener("click", func(ev *dom.Event) { c.Step(+1) })

	// A click on the backdrop (not the inner dialog) dismisses.
	root.AddEventListener("click", func(ev *dom.Event) {
		if ev.Target == root {
			c.Close()
		}
	})

	c.doc.AddEventListener("keydown", func(ev *dom.Event) {
		if !c.state.IsOpen() {
			return
		}
		switch ev.Key {
		case "Escape":
			c.Close()
		case "ArrowLeft":
			c.Step(-1)
		case "ArrowRight":
			c.Step(+1)
		}
	})

	c.shellRoot = root
	c.shellImg = img
	c.shellCap = cap
	c.shellClose = closeBtn
}

// ShellVisible reports whether the overlay exists and is currently shown.
func (c *Controller) ShellVisible() bool {
	return c.shellRoot != nil && !c.shellRoot.HasAttr("hidden")
}
