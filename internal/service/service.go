package service

import (
	"context"
	"fmt"
	"sync/atomic"

	"dogceo/browser/internal/catalog"
	"dogceo/browser/internal/client"
	"dogceo/browser/internal/detail"
	"dogceo/browser/internal/domain"
	"dogceo/browser/internal/enrich"
	"dogceo/browser/internal/viewer"

	log "github.com/sirupsen/logrus"
)

// Phase is the session lifecycle: Init -> Ready (or Failed) -> Closed.
type Phase int

const (
	PhaseInit Phase = iota
	PhaseReady
	PhaseFailed
	PhaseClosed
)

func (p Phase) String() string {
	switch p {
	case PhaseInit:
		return "init"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	case PhaseClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Service is the browsing session handed to the UI shell. Catalog state is
// only touched from the shell's goroutine; the network calls it exposes are
// safe to run from commands.
type Service struct {
	client      client.DogClient
	worker      *enrich.Worker
	resolver    *detail.Resolver
	images      *domain.ImageSet
	placeholder string

	catalog    *catalog.Catalog
	phase      Phase
	loadErr    error
	generation atomic.Uint64
	modal      viewer.Modal
}

func NewService(
	client client.DogClient,
	images *domain.ImageSet,
	worker *enrich.Worker,
	resolver *detail.Resolver,
	placeholder string,
) *Service {
	return &Service{
		client:      client,
		worker:      worker,
		resolver:    resolver,
		images:      images,
		placeholder: placeholder,
		catalog:     catalog.New(nil),
		phase:       PhaseInit,
	}
}

// BeginLoad starts a new catalog generation. Results tagged with an older
// generation are stale from now on.
func (s *Service) BeginLoad() uint64 {
	s.phase = PhaseInit
	s.loadErr = nil
	return s.generation.Add(1)
}

func (s *Service) Generation() uint64 {
	return s.generation.Load()
}

// FetchTaxonomy runs the taxonomy loader. It does not touch session state.
func (s *Service) FetchTaxonomy(ctx context.Context) ([]domain.Breed, error) {
	return catalog.LoadTaxonomy(ctx, s.client)
}

// Complete installs the outcome of a load for generation gen. It returns
// false and changes nothing when gen is stale.
func (s *Service) Complete(gen uint64, breeds []domain.Breed, err error) bool {
	if gen != s.Generation() {
		log.Debugf("Dropping stale taxonomy result for generation %d", gen)
		return false
	}
	if err != nil {
		log.Errorf("❌ Failed to load breeds: %v", err)
		s.phase = PhaseFailed
		s.loadErr = err
		return true
	}

	s.catalog = catalog.New(breeds)
	s.phase = PhaseReady
	return true
}

// LoadCatalog is the synchronous form of BeginLoad, FetchTaxonomy and
// Complete used by the non-interactive commands.
func (s *Service) LoadCatalog(ctx context.Context) error {
	gen := s.BeginLoad()
	breeds, err := s.FetchTaxonomy(ctx)
	s.Complete(gen, breeds, err)
	return err
}

// Enrich starts background image enrichment for the given breeds.
func (s *Service) Enrich(ctx context.Context, gen uint64, breeds []domain.Breed) <-chan enrich.Result {
	return s.worker.Run(ctx, gen, breeds)
}

// EnrichAll enriches the whole catalog and waits for it to finish.
func (s *Service) EnrichAll(ctx context.Context) {
	for range s.Enrich(ctx, s.Generation(), s.catalog.All()) {
	}
}

func (s *Service) Phase() Phase {
	return s.phase
}

func (s *Service) LoadErr() error {
	return s.loadErr
}

func (s *Service) Catalog() *catalog.Catalog {
	return s.catalog
}

func (s *Service) Images() *domain.ImageSet {
	return s.images
}

func (s *Service) Modal() *viewer.Modal {
	return &s.modal
}

// Search applies a query to the catalog.
func (s *Service) Search(query string) []domain.Breed {
	return s.catalog.SetQuery(query)
}

// Cards renders the currently filtered breeds.
func (s *Service) Cards() []catalog.Card {
	return catalog.Cards(s.catalog.Filtered(), s.images, s.placeholder)
}

// Resolve builds the detail view for breed. It never fails.
func (s *Service) Resolve(ctx context.Context, breed domain.Breed) *domain.DetailView {
	return s.resolver.Open(ctx, breed)
}

// OpenDetail looks key up in the catalog and resolves it.
func (s *Service) OpenDetail(ctx context.Context, key string) (*domain.DetailView, error) {
	breed, ok := s.catalog.Find(key)
	if !ok {
		return nil, fmt.Errorf("unknown breed %q", key)
	}
	return s.Resolve(ctx, breed), nil
}

func (s *Service) Close() error {
	s.phase = PhaseClosed
	return s.client.Close()
}
