package enrich

import (
	"context"
	"sync/atomic"

	"dogceo/browser/internal/client"
	"dogceo/browser/internal/domain"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const progressEvery = 25

// Result reports the outcome of one breed's image fetch. Generation is the
// catalog load the request was issued for.
type Result struct {
	Generation uint64
	Breed      domain.Breed
	Images     []string
	Err        error
}

// Worker fetches a small image sample per breed and records it in the
// shared ImageSet.
type Worker struct {
	client     client.DogClient
	images     *domain.ImageSet
	sampleSize int
	maxWorkers int
}

func NewWorker(client client.DogClient, images *domain.ImageSet, sampleSize, maxWorkers int) *Worker {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	return &Worker{
		client:     client,
		images:     images,
		sampleSize: sampleSize,
		maxWorkers: maxWorkers,
	}
}

// Run enriches breeds in the background. The returned channel receives one
// Result per breed in completion order and is closed when all are done or
// ctx is cancelled. It is buffered for every breed, so a consumer that stops
// reading never blocks the workers. With maxWorkers == 1 breeds are fetched
// strictly in catalog order.
func (w *Worker) Run(ctx context.Context, generation uint64, breeds []domain.Breed) <-chan Result {
	results := make(chan Result, len(breeds))

	go func() {
		defer close(results)

		var done atomic.Int32
		g := new(errgroup.Group)
		g.SetLimit(w.maxWorkers)

		for _, breed := range breeds {
			if ctx.Err() != nil {
				break
			}

			g.Go(func() error {
				results <- w.enrichOne(ctx, generation, breed)

				if n := done.Add(1); n%progressEvery == 0 {
					log.Infof("🖼️ Enriched %d of %d breeds", n, len(breeds))
				}
				return nil
			})
		}

		_ = g.Wait()
		log.Infof("✅ Image enrichment finished for %d breeds (%d with images)", len(breeds), w.images.Len())
	}()

	return results
}

func (w *Worker) enrichOne(ctx context.Context, generation uint64, breed domain.Breed) Result {
	result := Result{Generation: generation, Breed: breed}

	images, err := w.client.RandomImages(ctx, breed, w.sampleSize)
	if err != nil {
		log.Warnf("⚠️ No images for %s: %v", breed.DisplayName(), err)
		result.Err = err
		return result
	}

	w.images.Record(breed.Key(), images)
	result.Images = images
	return result
}
