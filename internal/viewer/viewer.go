// Package viewer implements the modal image browser: Closed, or Open over
// an image list at an index, with next/prev/close transitions.
package viewer

import "fmt"

// Modal tracks how many modal surfaces are presented. Background
// navigation is suppressed while it is active.
type Modal struct {
	depth int
}

func (m *Modal) Enter() {
	m.depth++
}

func (m *Modal) Leave() {
	if m.depth > 0 {
		m.depth--
	}
}

func (m *Modal) Active() bool {
	return m.depth > 0
}

type state struct {
	images []string
	index  int
}

// Viewer is Closed when state is nil. While open, 0 <= index < len(images).
type Viewer struct {
	state *state
	modal *Modal
}

func New(modal *Modal) *Viewer {
	if modal == nil {
		modal = &Modal{}
	}
	return &Viewer{modal: modal}
}

// Open shows images starting at start. Empty images or an out-of-range
// start leave the viewer unchanged and return false.
func (v *Viewer) Open(images []string, start int) bool {
	if len(images) == 0 || start < 0 || start >= len(images) {
		return false
	}
	if v.state == nil {
		v.modal.Enter()
	}
	v.state = &state{
		images: append([]string(nil), images...),
		index:  start,
	}
	return true
}

// Next advances one image; a no-op on the last image.
func (v *Viewer) Next() bool {
	if v.state == nil || v.state.index+1 >= len(v.state.images) {
		return false
	}
	v.state.index++
	return true
}

// Prev goes back one image; a no-op on the first image.
func (v *Viewer) Prev() bool {
	if v.state == nil || v.state.index-1 < 0 {
		return false
	}
	v.state.index--
	return true
}

func (v *Viewer) Close() bool {
	if v.state == nil {
		return false
	}
	v.state = nil
	v.modal.Leave()
	return true
}

func (v *Viewer) IsOpen() bool {
	return v.state != nil
}

// Frame is what the shell needs to draw the viewer.
type Frame struct {
	Open        bool
	Image       string
	Index       int
	Total       int
	Position    string
	PrevEnabled bool
	NextEnabled bool
}

func (v *Viewer) Frame() Frame {
	if v.state == nil {
		return Frame{}
	}
	s := v.state
	return Frame{
		Open:        true,
		Image:       s.images[s.index],
		Index:       s.index,
		Total:       len(s.images),
		Position:    fmt.Sprintf("%d / %d", s.index+1, len(s.images)),
		PrevEnabled: s.index > 0,
		NextEnabled: s.index < len(s.images)-1,
	}
}
