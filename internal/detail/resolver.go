package detail

import (
	"context"

	"dogceo/browser/internal/client"
	"dogceo/browser/internal/domain"

	log "github.com/sirupsen/logrus"
)

const UnavailableMessage = "Information unavailable"

// Resolver composes DetailViews on demand.
type Resolver struct {
	client      client.DogClient
	images      *domain.ImageSet
	placeholder string
}

func NewResolver(client client.DogClient, images *domain.ImageSet, placeholder string) *Resolver {
	return &Resolver{
		client:      client,
		images:      images,
		placeholder: placeholder,
	}
}

// Open fetches fresh metadata for breed and combines it with the images
// known so far. A failed metadata fetch degrades to empty metadata; Open
// itself never fails.
func (r *Resolver) Open(ctx context.Context, breed domain.Breed) *domain.DetailView {
	metadata, err := r.client.BreedInfo(ctx, breed)
	if err != nil {
		log.Warnf("⚠️ Breed info unavailable for %s: %v", breed.DisplayName(), err)
		metadata = nil
	}

	return domain.NewDetailView(breed, r.images.Get(breed.Key()), metadata, r.placeholder)
}
