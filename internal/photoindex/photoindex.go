// Package photoindex loads the archive's global photo index, the
// chronologically ordered list of every photo in the journal. The index is
// produced by the generation pipeline as entries/photo-index.json and is the
// single source of truth for lightbox navigation order.
package photoindex

// Entry is one photo in the global index. Entries are ordered oldest-first;
// the order is significant and identical on every page of the archive.
type Entry struct {
	ID        string `json:"id"`
	ImageURL  string `json:"image_url"`
	EntryHref string `json:"entry_href,omitempty"`
	DateISO   string `json:"date_iso,omitempty"`
	DayLabel  string `json:"day_label,omitempty"`
	MonthYear string `json:"month_year,omitempty"`
}
