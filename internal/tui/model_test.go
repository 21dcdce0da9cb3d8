package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dogceo/browser/internal/catalog"
	"dogceo/browser/internal/client/clienttest"
	"dogceo/browser/internal/detail"
	"dogceo/browser/internal/domain"
	"dogceo/browser/internal/enrich"
	"dogceo/browser/internal/service"
)

func newTestModel(t *testing.T, fake *clienttest.Fake) AppModel {
	t.Helper()
	images := domain.NewImageSet()
	svc := service.NewService(
		fake,
		images,
		enrich.NewWorker(fake, images, 3, 1),
		detail.NewResolver(fake, images, "detail.png"),
		"card.png",
	)
	return NewAppModel(context.Background(), svc)
}

func update(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	am, ok := next.(AppModel)
	require.True(t, ok)
	return am, cmd
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// collect runs cmd and any batched commands, returning the messages of the
// given kind. Spinner ticks are skipped.
func collect[T tea.Msg](cmd tea.Cmd) []T {
	if cmd == nil {
		return nil
	}
	var out []T
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			out = append(out, collect[T](c)...)
		}
	case T:
		out = append(out, msg)
	}
	return out
}

// loaded runs the first catalog load and drains image enrichment.
func loaded(t *testing.T, fake *clienttest.Fake) AppModel {
	t.Helper()
	m := newTestModel(t, fake)

	gen := m.svc.BeginLoad()
	m, cmd := update(t, m, loadTaxonomy(m.ctx, m.svc, gen)())

	for cmd != nil {
		msg := cmd()
		m, cmd = update(t, m, msg)
		if _, done := msg.(MsgEnrichmentDone); done {
			break
		}
	}
	require.False(t, m.Enriching)
	return m
}

func TestAppModel_Scenario(t *testing.T) {
	m := loaded(t, clienttest.Scenario())
	assert.Equal(t, service.PhaseReady, m.svc.Phase())
	assert.Equal(t, 3, m.Enriched)
	assert.Contains(t, m.View(), "3 of 3 breeds")

	m, _ = update(t, m, keyRunes("terrier"))
	assert.Equal(t, "terrier", m.svc.Catalog().Query())
	out := m.View()
	assert.Contains(t, out, "2 of 3 breeds")
	assert.Contains(t, out, "Boston Terrier")
	assert.Contains(t, out, "Yorkshire Terrier")
	assert.NotContains(t, out, "Labrador")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.Cursor)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, m.Cursor)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ScreenDetail, m.Screen)
	assert.Equal(t, "terrier-boston", m.DetailKey)
	assert.True(t, m.svc.Modal().Active())
	assert.Contains(t, m.View(), "Loading details")

	resolved := collect[MsgDetailResolved](cmd)
	require.Len(t, resolved, 1)
	m, _ = update(t, m, resolved[0])
	require.NotNil(t, m.Detail)

	out = m.View()
	assert.Contains(t, out, "General information")
	assert.Contains(t, out, "Sub-breed")
	assert.Contains(t, out, "3 images of this breed")
	assert.Contains(t, out, "[1] imgB")
	assert.Contains(t, out, "[2] imgC")
	assert.Contains(t, out, detail.UnavailableMessage)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 1, m.GalleryCursor)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 1, m.GalleryCursor, "cursor stops at the last thumbnail")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.Viewer.IsOpen())
	frame := m.Viewer.Frame()
	assert.Equal(t, "imgC", frame.Image)
	assert.Equal(t, "2 / 2", frame.Position)
	assert.Contains(t, m.View(), "2 / 2")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, "imgC", m.Viewer.Frame().Image)
	m, _ = update(t, m, keyRunes("h"))
	assert.Equal(t, "imgB", m.Viewer.Frame().Image)
	assert.Equal(t, "1 / 2", m.Viewer.Frame().Position)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.Viewer.IsOpen())
	assert.Equal(t, ScreenDetail, m.Screen)
	assert.True(t, m.svc.Modal().Active())

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ScreenCatalog, m.Screen)
	assert.False(t, m.svc.Modal().Active())
	assert.Equal(t, "terrier", m.Search.Value())
}

func TestAppModel_PrimaryImageAndDigitKeys(t *testing.T) {
	m := loaded(t, clienttest.Scenario())

	m, cmd := update(t, m, MsgEntrySelected{Key: "labrador"})
	m, _ = update(t, m, collect[MsgDetailResolved](cmd)[0])

	m, _ = update(t, m, keyRunes("v"))
	require.True(t, m.Viewer.IsOpen())
	assert.Equal(t, "lab1.jpg", m.Viewer.Frame().Image)
	assert.Equal(t, "1 / 3", m.Viewer.Frame().Position)

	m, _ = update(t, m, MsgViewerClose{})
	m, _ = update(t, m, keyRunes("2"))
	require.True(t, m.Viewer.IsOpen())
	assert.Equal(t, "lab3.jpg", m.Viewer.Frame().Image)

	m, _ = update(t, m, MsgViewerClose{})
	m, _ = update(t, m, keyRunes("9"))
	assert.False(t, m.Viewer.IsOpen(), "out of range thumbnail is a no-op")
}

func TestAppModel_PlaceholderDetail(t *testing.T) {
	m := loaded(t, clienttest.Scenario())

	m, cmd := update(t, m, MsgEntrySelected{Key: "terrier-yorkshire"})
	m, _ = update(t, m, collect[MsgDetailResolved](cmd)[0])

	require.NotNil(t, m.Detail)
	assert.True(t, m.Detail.Placeholder)
	out := m.View()
	assert.Contains(t, out, "0 images of this breed")
	assert.Contains(t, out, "No more images")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.Viewer.IsOpen(), "empty gallery does not open the viewer")
}

func TestAppModel_StaleDetailIsDropped(t *testing.T) {
	m := loaded(t, clienttest.Scenario())

	m, first := update(t, m, MsgEntrySelected{Key: "terrier-boston"})
	stale := collect[MsgDetailResolved](first)[0]

	m, _ = update(t, m, MsgDetailClosed{})
	m, second := update(t, m, MsgEntrySelected{Key: "terrier-yorkshire"})

	m, _ = update(t, m, stale)
	assert.Nil(t, m.Detail, "boston result must not land on the yorkshire detail")

	m, _ = update(t, m, collect[MsgDetailResolved](second)[0])
	require.NotNil(t, m.Detail)
	assert.Equal(t, "terrier-yorkshire", m.Detail.Breed.Key())
}

func TestAppModel_DetailResultAfterCloseIsDropped(t *testing.T) {
	m := loaded(t, clienttest.Scenario())

	m, cmd := update(t, m, MsgEntrySelected{Key: "labrador"})
	m, _ = update(t, m, MsgDetailClosed{})
	m, _ = update(t, m, collect[MsgDetailResolved](cmd)[0])

	assert.Equal(t, ScreenCatalog, m.Screen)
	assert.Nil(t, m.Detail)
	assert.False(t, m.svc.Modal().Active())
}

func TestAppModel_StaleImagesAreDropped(t *testing.T) {
	m := loaded(t, clienttest.Scenario())
	before := m.Enriched

	m, cmd := update(t, m, MsgImagesLoaded{Gen: m.svc.Generation() - 1})
	assert.Nil(t, cmd)
	assert.Equal(t, before, m.Enriched)
}

func TestAppModel_StaleTaxonomyIsDropped(t *testing.T) {
	m := newTestModel(t, clienttest.Scenario())
	old := m.svc.BeginLoad()
	m.svc.BeginLoad()

	m, cmd := update(t, m, MsgTaxonomyLoaded{Gen: old, Err: domain.ErrNetwork})
	assert.Nil(t, cmd)
	assert.Equal(t, service.PhaseInit, m.svc.Phase())
	assert.Contains(t, m.View(), "Loading dog breeds")
}

func TestAppModel_EmptyFilter(t *testing.T) {
	m := loaded(t, clienttest.Scenario())

	m, _ = update(t, m, keyRunes("poodle"))
	assert.Contains(t, m.View(), catalog.EmptyMessage)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ScreenCatalog, m.Screen)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, "", m.Search.Value())
	assert.Len(t, m.svc.Catalog().Filtered(), 3)
}

func TestAppModel_LoadFailureAndReload(t *testing.T) {
	fake := &clienttest.Fake{ListErr: domain.ErrNetwork}
	m := loaded(t, fake)

	assert.Equal(t, service.PhaseFailed, m.svc.Phase())
	assert.Contains(t, m.View(), catalog.ErrorMessage)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 0, m.Cursor)

	fake.ListErr = nil
	fake.Groups = clienttest.Scenario().Groups

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	assert.Equal(t, service.PhaseInit, m.svc.Phase())

	loadedMsgs := collect[MsgTaxonomyLoaded](cmd)
	require.Len(t, loadedMsgs, 1)
	m, cmd = update(t, m, loadedMsgs[0])
	assert.Equal(t, service.PhaseReady, m.svc.Phase())
	assert.Equal(t, 3, m.svc.Catalog().Len())

	for cmd != nil {
		msg := cmd()
		m, cmd = update(t, m, msg)
		if _, done := msg.(MsgEnrichmentDone); done {
			break
		}
	}
}

func TestAppModel_ReloadCancelsPreviousEnrichment(t *testing.T) {
	fake := clienttest.Scenario()
	fake.Block = make(chan struct{})
	m := newTestModel(t, fake)

	gen := m.svc.BeginLoad()
	m, _ = update(t, m, loadTaxonomy(m.ctx, m.svc, gen)())
	require.True(t, m.Enriching)
	previous := m.enrichCh

	m, _ = update(t, m, MsgReload{})

	// Every fetch of the old load unblocks with a cancellation, so the
	// channel closes without the fake ever releasing Block.
	for r := range previous {
		assert.Equal(t, gen, r.Generation)
		assert.ErrorIs(t, r.Err, context.Canceled)
	}
	assert.Less(t, len(fake.ImageCalls()), 3, "the last breed is never scheduled after cancel")
	assert.Equal(t, 0, m.svc.Images().Len())
}

func TestAppModel_ModalSuppressesCatalogNavigation(t *testing.T) {
	m := loaded(t, clienttest.Scenario())

	m.svc.Modal().Enter()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 0, m.Cursor)

	m.svc.Modal().Leave()
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, m.Cursor)
}

func TestAppModel_QuitKey(t *testing.T) {
	m := newTestModel(t, clienttest.Scenario())
	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestRenderDetail_Metadata(t *testing.T) {
	view := domain.NewDetailView(
		domain.Breed{Main: "labrador"},
		[]string{"lab1.jpg"},
		domain.Metadata{"origin": "Canada", "height": "55-62 cm"},
		"detail.png",
	)

	out := RenderDetail(view, -1)
	assert.Contains(t, out, "Primary breed")
	assert.Contains(t, out, "1 images of this breed")
	assert.Contains(t, out, "Canada")
	assert.Contains(t, out, "55-62 cm")
	assert.NotContains(t, out, detail.UnavailableMessage)
	assert.Less(t, strings.Index(out, "height"), strings.Index(out, "origin"))
}
