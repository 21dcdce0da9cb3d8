package catalog

import (
	"context"
	"fmt"

	"dogceo/browser/internal/client"
	"dogceo/browser/internal/domain"

	log "github.com/sirupsen/logrus"
)

// LoadTaxonomy fetches the breed list and flattens it. It either returns
// the whole taxonomy or an error; never a partial list.
func LoadTaxonomy(ctx context.Context, c client.DogClient) ([]domain.Breed, error) {
	groups, err := c.ListBreeds(ctx)
	if err != nil {
		return nil, err
	}
	if len(groups) == 0 {
		return nil, fmt.Errorf("breed list: %w", domain.ErrEmptyResult)
	}

	breeds := domain.Flatten(groups)
	log.Infof("📚 Loaded %d breed groups, %d catalog entries", len(groups), len(breeds))
	return breeds, nil
}
