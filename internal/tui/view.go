package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"dogceo/browser/internal/catalog"
	"dogceo/browser/internal/detail"
	"dogceo/browser/internal/domain"
	"dogceo/browser/internal/service"
	"dogceo/browser/internal/viewer"
)

const defaultListHeight = 15

// View renders the whole screen from the current state.
func (m AppModel) View() string {
	if m.Viewer.IsOpen() {
		return m.renderViewer(m.Viewer.Frame())
	}
	if m.Screen == ScreenDetail {
		return m.renderDetail()
	}
	return m.renderCatalog()
}

func (m AppModel) renderCatalog() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("🐕 Dog Breeds"))
	b.WriteString("\n\n")

	switch m.svc.Phase() {
	case service.PhaseInit:
		b.WriteString(m.Spin.View() + " Loading dog breeds...")
		return b.String()
	case service.PhaseFailed:
		b.WriteString(errorStyle.Render("⚠ " + catalog.ErrorMessage))
		if err := m.svc.LoadErr(); err != nil {
			b.WriteString("\n" + dimStyle.Render(err.Error()))
		}
		b.WriteString(m.footer([]key.Binding{m.Keys.Reload, m.Keys.Quit}))
		return b.String()
	}

	b.WriteString(m.Search.View())
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.statusLine()))
	b.WriteString("\n\n")

	cards := m.svc.Cards()
	if len(cards) == 0 {
		b.WriteString(dimStyle.Render("🔍 " + catalog.EmptyMessage))
	} else {
		b.WriteString(renderCards(cards, m.Cursor, m.listHeight()))
	}

	b.WriteString(m.footer(m.Keys.catalogHelp()))
	return b.String()
}

func (m AppModel) statusLine() string {
	c := m.svc.Catalog()
	line := fmt.Sprintf("%d of %d breeds", len(c.Filtered()), c.Len())
	if m.Enriching {
		line += fmt.Sprintf(" · %s loading images %d/%d", m.Spin.View(), m.Enriched, m.EnrichTotal)
	}
	return line
}

func (m AppModel) listHeight() int {
	// title, search, status, footer
	if h := m.Height - 9; h > 0 {
		return h
	}
	return defaultListHeight
}

// renderCards draws a window of cards that keeps the cursor visible.
func renderCards(cards []catalog.Card, cursor, height int) string {
	start := 0
	if cursor >= height {
		start = cursor - height + 1
	}
	end := min(start+height, len(cards))

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		card := cards[i]
		image := card.Image
		if card.Placeholder {
			image = "no image yet"
		}

		name := nameStyle.Render(card.Name)
		marker := "  "
		if i == cursor {
			name = selectedStyle.Render(card.Name)
			marker = selectedStyle.Render("▸ ")
		}
		lines = append(lines, fmt.Sprintf("%s%s  %s  %s",
			marker, name, labelStyle.Render(card.Descriptor), dimStyle.Render(image)))
	}
	return strings.Join(lines, "\n")
}

func (m AppModel) renderDetail() string {
	var b strings.Builder

	breed, _ := m.svc.Catalog().Find(m.DetailKey)
	b.WriteString(titleStyle.Render("🐕 " + breed.DisplayName()))
	b.WriteString("\n")

	if m.Detail == nil {
		b.WriteString("\n" + m.Spin.View() + " Loading details...")
		b.WriteString(m.footer([]key.Binding{m.Keys.Back, m.Keys.Quit}))
		return b.String()
	}

	b.WriteString(RenderDetail(m.Detail, m.GalleryCursor))
	b.WriteString(m.footer(m.Keys.detailHelp()))
	return b.String()
}

// RenderDetail draws the detail sections. cursor marks the selected gallery
// thumbnail; pass -1 for none.
func RenderDetail(view *domain.DetailView, cursor int) string {
	var b strings.Builder
	breed := view.Breed

	b.WriteString("\n" + labelStyle.Render("Image: ") + view.Primary)
	if view.Placeholder {
		b.WriteString(dimStyle.Render(" (placeholder)"))
	}
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("General information") + "\n")
	b.WriteString(labelStyle.Render("Breed: ") + breed.DisplayName() + "\n")
	if breed.IsSubBreed() {
		b.WriteString(labelStyle.Render("Type: ") + "Sub-breed\n")
		b.WriteString(labelStyle.Render("Sub-breed: ") + domain.Capitalize(breed.Sub) + "\n")
	} else {
		b.WriteString(labelStyle.Render("Type: ") + "Primary breed\n")
	}

	b.WriteString(sectionStyle.Render("Gallery") + "\n")
	imageCount := len(view.Images)
	if view.Placeholder {
		imageCount = 0
	}
	b.WriteString(dimStyle.Render(fmt.Sprintf("%d images of this breed", imageCount)) + "\n")
	if len(view.Gallery) == 0 {
		b.WriteString(dimStyle.Render("No more images") + "\n")
	}
	for i, img := range view.Gallery {
		line := fmt.Sprintf("[%d] %s", i+1, img)
		if i == cursor {
			line = selectedStyle.Render("▸ " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line + "\n")
	}

	b.WriteString(sectionStyle.Render("Characteristics") + "\n")
	if !view.MetadataAvailable() {
		b.WriteString(dimStyle.Render(detail.UnavailableMessage) + "\n")
	}
	for _, attr := range view.Metadata.Attributes() {
		b.WriteString(labelStyle.Render(attr.Name+": ") + fmt.Sprint(attr.Value) + "\n")
	}

	return b.String()
}

func (m AppModel) renderViewer(frame viewer.Frame) string {
	prev := "◀ prev"
	if frame.PrevEnabled {
		prev = selectedStyle.Render(prev)
	} else {
		prev = dimStyle.Render(prev)
	}
	next := "next ▶"
	if frame.NextEnabled {
		next = selectedStyle.Render(next)
	} else {
		next = dimStyle.Render(next)
	}

	body := lipgloss.JoinVertical(lipgloss.Center,
		nameStyle.Render(frame.Image),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center, prev, "   ", frame.Position, "   ", next),
	)

	return viewerStyle.Render(body) + m.footer(m.Keys.viewerHelp())
}

func (m AppModel) footer(bindings []key.Binding) string {
	return "\n" + footerStyle.Render(m.Help.ShortHelpView(bindings))
}
