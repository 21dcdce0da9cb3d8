package domain

import "sort"

// Metadata is the open-ended attribute map returned by the breed info
// endpoint. Values are passed through untouched.
type Metadata map[string]any

// Attribute is a single metadata entry, used for stable rendering.
type Attribute struct {
	Name  string
	Value any
}

// Attributes returns the entries sorted by name.
func (m Metadata) Attributes() []Attribute {
	attrs := make([]Attribute, 0, len(m))
	for name, value := range m {
		attrs = append(attrs, Attribute{Name: name, Value: value})
	}
	sort.Slice(attrs, func(i, j int) bool {
		return attrs[i].Name < attrs[j].Name
	})
	return attrs
}

// DetailView is the composition shown when a catalog entry is selected.
// It is built per selection and never cached.
type DetailView struct {
	Breed    Breed    `json:"breed"`
	Images   []string `json:"images"`
	Primary  string   `json:"primary"`
	Gallery  []string `json:"gallery"`
	Metadata Metadata `json:"metadata,omitempty"`

	// Placeholder is set when the breed had no images and Primary is the
	// fallback locator.
	Placeholder bool `json:"placeholder"`
}

// NewDetailView composes a view from the breed, its known images and the
// fetched metadata (nil when unavailable).
func NewDetailView(breed Breed, images []string, metadata Metadata, placeholder string) *DetailView {
	view := &DetailView{
		Breed:    breed,
		Metadata: metadata,
		Gallery:  []string{},
	}

	if len(images) == 0 {
		view.Images = []string{placeholder}
		view.Primary = placeholder
		view.Placeholder = true
		return view
	}

	view.Images = append([]string(nil), images...)
	view.Primary = view.Images[0]
	view.Gallery = append(view.Gallery, view.Images[1:]...)
	return view
}

func (v *DetailView) MetadataAvailable() bool {
	return len(v.Metadata) > 0
}
