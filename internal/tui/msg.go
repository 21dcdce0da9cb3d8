package tui

import (
	"dogceo/browser/internal/domain"
	"dogceo/browser/internal/enrich"
)

// Async results. Each carries the generation or sequence it was issued
// for so late arrivals can be dropped.

// MsgTaxonomyLoaded is sent when a catalog load finishes.
type MsgTaxonomyLoaded struct {
	Gen    uint64
	Breeds []domain.Breed
	Err    error
}

// MsgImagesLoaded is sent for every finished image fetch.
type MsgImagesLoaded struct {
	Gen    uint64
	Result enrich.Result
}

// MsgEnrichmentDone is sent when the enrichment channel closes.
type MsgEnrichmentDone struct {
	Gen uint64
}

// MsgDetailResolved carries a composed detail view.
type MsgDetailResolved struct {
	Seq  uint64
	Key  string
	View *domain.DetailView
}

// User events. Key bindings translate into these.

// MsgSearchChanged replaces the catalog query.
type MsgSearchChanged struct {
	Query string
}

// MsgEntrySelected opens the detail surface for a catalog key.
type MsgEntrySelected struct {
	Key string
}

// MsgDetailClosed dismisses the detail surface.
type MsgDetailClosed struct{}

// MsgImageActivated opens the viewer. Primary opens the full image set at
// 0; otherwise Index is a position in the gallery strip.
type MsgImageActivated struct {
	Index   int
	Primary bool
}

// MsgViewerNav moves the viewer by Delta (+1 next, -1 previous).
type MsgViewerNav struct {
	Delta int
}

// MsgViewerClose closes the viewer.
type MsgViewerClose struct{}

// MsgReload starts a fresh catalog load.
type MsgReload struct{}
