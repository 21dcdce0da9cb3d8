package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"dogceo/browser/internal/domain"
	"dogceo/browser/internal/enrich"
	"dogceo/browser/internal/service"
	"dogceo/browser/internal/viewer"
)

// Screen is the surface currently in front.
type Screen int

const (
	ScreenCatalog Screen = iota
	ScreenDetail
)

// AppModel is the root BubbleTea model. Catalog state lives in the
// session; the model keeps navigation state and in-flight bookkeeping.
type AppModel struct {
	ctx    context.Context
	svc    *service.Service
	Keys   KeyMap
	Search textinput.Model
	Spin   spinner.Model
	Help   help.Model
	Width  int
	Height int

	Screen Screen
	Cursor int

	enrichCh     <-chan enrich.Result
	cancelEnrich context.CancelFunc
	Enriched     int
	EnrichTotal  int
	Enriching    bool

	// Detail state. DetailSeq increases on every open and close, so a
	// resolution for an earlier selection never lands on a later one.
	DetailSeq     uint64
	DetailKey     string
	Detail        *domain.DetailView
	GalleryCursor int

	Viewer *viewer.Viewer
}

// NewAppModel creates the root model for a session.
func NewAppModel(ctx context.Context, svc *service.Service) AppModel {
	search := textinput.New()
	search.Placeholder = "Search breeds..."
	search.Prompt = "🔍 "
	search.Focus()

	return AppModel{
		ctx:    ctx,
		svc:    svc,
		Keys:   DefaultKeyMap(),
		Search: search,
		Spin:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		Help:   help.New(),
		Viewer: viewer.New(svc.Modal()),
	}
}

// Init starts the first catalog load.
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(
		m.Spin.Tick,
		textinput.Blink,
		loadTaxonomy(m.ctx, m.svc, m.svc.BeginLoad()),
	)
}

func loadTaxonomy(ctx context.Context, svc *service.Service, gen uint64) tea.Cmd {
	return func() tea.Msg {
		breeds, err := svc.FetchTaxonomy(ctx)
		return MsgTaxonomyLoaded{Gen: gen, Breeds: breeds, Err: err}
	}
}

func waitForImages(gen uint64, ch <-chan enrich.Result) tea.Cmd {
	return func() tea.Msg {
		r, ok := <-ch
		if !ok {
			return MsgEnrichmentDone{Gen: gen}
		}
		return MsgImagesLoaded{Gen: gen, Result: r}
	}
}

func resolveDetail(ctx context.Context, svc *service.Service, seq uint64, breed domain.Breed) tea.Cmd {
	return func() tea.Msg {
		return MsgDetailResolved{Seq: seq, Key: breed.Key(), View: svc.Resolve(ctx, breed)}
	}
}

// Update handles all messages.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spin, cmd = m.Spin.Update(msg)
		return m, cmd

	case MsgTaxonomyLoaded:
		return m.handleTaxonomy(msg)

	case MsgImagesLoaded:
		if msg.Gen != m.svc.Generation() {
			return m, nil
		}
		m.Enriched++
		return m, waitForImages(msg.Gen, m.enrichCh)

	case MsgEnrichmentDone:
		if msg.Gen == m.svc.Generation() {
			m.Enriching = false
			m.stopEnrichment()
		}
		return m, nil

	case MsgReload:
		return m.reload()

	case MsgSearchChanged:
		m.svc.Search(msg.Query)
		m.Cursor = 0
		return m, nil

	case MsgEntrySelected:
		return m.openDetail(msg.Key)

	case MsgDetailResolved:
		if msg.Seq != m.DetailSeq || m.Screen != ScreenDetail {
			return m, nil
		}
		m.Detail = msg.View
		m.GalleryCursor = 0
		return m, nil

	case MsgDetailClosed:
		return m.closeDetail(), nil

	case MsgImageActivated:
		m.activateImage(msg)
		return m, nil

	case MsgViewerNav:
		switch {
		case msg.Delta > 0:
			m.Viewer.Next()
		case msg.Delta < 0:
			m.Viewer.Prev()
		}
		return m, nil

	case MsgViewerClose:
		m.Viewer.Close()
		return m, nil
	}

	return m, nil
}

func (m AppModel) handleTaxonomy(msg MsgTaxonomyLoaded) (tea.Model, tea.Cmd) {
	if !m.svc.Complete(msg.Gen, msg.Breeds, msg.Err) || msg.Err != nil {
		return m, nil
	}

	m.svc.Search(m.Search.Value())
	m.Cursor = 0

	m.stopEnrichment()
	enrichCtx, cancel := context.WithCancel(m.ctx)
	m.cancelEnrich = cancel

	all := m.svc.Catalog().All()
	m.enrichCh = m.svc.Enrich(enrichCtx, msg.Gen, all)
	m.Enriched = 0
	m.EnrichTotal = len(all)
	m.Enriching = true
	return m, waitForImages(msg.Gen, m.enrichCh)
}

// stopEnrichment cancels the image fetches of the previous load so they
// stop competing with the new one for the rate limiter.
func (m *AppModel) stopEnrichment() {
	if m.cancelEnrich != nil {
		m.cancelEnrich()
		m.cancelEnrich = nil
	}
}

func (m AppModel) reload() (tea.Model, tea.Cmd) {
	m = m.closeDetail()
	m.stopEnrichment()
	m.Enriching = false
	m.Enriched = 0
	m.EnrichTotal = 0
	gen := m.svc.BeginLoad()
	return m, tea.Batch(m.Spin.Tick, loadTaxonomy(m.ctx, m.svc, gen))
}

func (m AppModel) openDetail(key string) (tea.Model, tea.Cmd) {
	breed, ok := m.svc.Catalog().Find(key)
	if !ok {
		return m, nil
	}

	if m.Screen != ScreenDetail {
		m.svc.Modal().Enter()
	}
	m.Viewer.Close()
	m.DetailSeq++
	m.Screen = ScreenDetail
	m.DetailKey = key
	m.Detail = nil
	m.GalleryCursor = 0
	return m, tea.Batch(m.Spin.Tick, resolveDetail(m.ctx, m.svc, m.DetailSeq, breed))
}

func (m AppModel) closeDetail() AppModel {
	m.Viewer.Close()
	if m.Screen == ScreenDetail {
		m.svc.Modal().Leave()
	}
	m.DetailSeq++
	m.Screen = ScreenCatalog
	m.DetailKey = ""
	m.Detail = nil
	return m
}

func (m AppModel) activateImage(msg MsgImageActivated) {
	if m.Detail == nil {
		return
	}
	if msg.Primary {
		m.Viewer.Open(m.Detail.Images, 0)
		return
	}
	m.Viewer.Open(m.Detail.Gallery, msg.Index)
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.Keys.Quit) {
		m.stopEnrichment()
		return m, tea.Quit
	}

	if m.Viewer.IsOpen() {
		switch {
		case key.Matches(msg, m.Keys.Prev):
			return m.Update(MsgViewerNav{Delta: -1})
		case key.Matches(msg, m.Keys.Next):
			return m.Update(MsgViewerNav{Delta: 1})
		case key.Matches(msg, m.Keys.Back):
			return m.Update(MsgViewerClose{})
		}
		return m, nil
	}

	if m.Screen == ScreenDetail {
		return m.handleDetailKey(msg)
	}
	return m.handleCatalogKey(msg)
}

func (m AppModel) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Back):
		return m.Update(MsgDetailClosed{})
	case key.Matches(msg, m.Keys.Open):
		return m.Update(MsgImageActivated{Primary: true})
	case key.Matches(msg, m.Keys.Prev):
		if m.GalleryCursor > 0 {
			m.GalleryCursor--
		}
	case key.Matches(msg, m.Keys.Next):
		if m.Detail != nil && m.GalleryCursor < len(m.Detail.Gallery)-1 {
			m.GalleryCursor++
		}
	case key.Matches(msg, m.Keys.Select):
		return m.Update(MsgImageActivated{Index: m.GalleryCursor})
	case msg.Type == tea.KeyRunes && len(msg.Runes) == 1 && msg.Runes[0] >= '1' && msg.Runes[0] <= '9':
		return m.Update(MsgImageActivated{Index: int(msg.Runes[0] - '1')})
	}
	return m, nil
}

func (m AppModel) handleCatalogKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.Keys.Reload):
		return m.Update(MsgReload{})
	case m.svc.Phase() != service.PhaseReady:
		return m, nil
	case key.Matches(msg, m.Keys.Up):
		if !m.svc.Modal().Active() && m.Cursor > 0 {
			m.Cursor--
		}
		return m, nil
	case key.Matches(msg, m.Keys.Down):
		if !m.svc.Modal().Active() && m.Cursor < len(m.svc.Catalog().Filtered())-1 {
			m.Cursor++
		}
		return m, nil
	case key.Matches(msg, m.Keys.Select):
		filtered := m.svc.Catalog().Filtered()
		if m.Cursor < len(filtered) {
			return m.Update(MsgEntrySelected{Key: filtered[m.Cursor].Key()})
		}
		return m, nil
	case key.Matches(msg, m.Keys.Back):
		if m.Search.Value() != "" {
			m.Search.SetValue("")
			return m.Update(MsgSearchChanged{Query: ""})
		}
		return m, nil
	}

	before := m.Search.Value()
	var cmd tea.Cmd
	m.Search, cmd = m.Search.Update(msg)
	if m.Search.Value() != before {
		next, _ := m.Update(MsgSearchChanged{Query: m.Search.Value()})
		return next, cmd
	}
	return m, cmd
}
