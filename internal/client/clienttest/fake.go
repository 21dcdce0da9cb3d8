// Package clienttest provides an in-memory DogClient for tests.
package clienttest

import (
	"context"
	"fmt"
	"sync"

	"dogceo/browser/internal/domain"
)

// Fake serves canned taxonomy, images and metadata keyed by breed key.
type Fake struct {
	Groups    []domain.Group
	ListErr   error
	Images    map[string][]string
	ImageErrs map[string]error
	Info      map[string]domain.Metadata
	InfoErr   error

	// Block, when set, holds every RandomImages call until it is closed
	// or the call's context is done.
	Block chan struct{}

	mu         sync.Mutex
	imageCalls []string
	infoCalls  []string
	closed     bool
}

func (f *Fake) ListBreeds(ctx context.Context) ([]domain.Group, error) {
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	return f.Groups, nil
}

func (f *Fake) RandomImages(ctx context.Context, breed domain.Breed, count int) ([]string, error) {
	key := breed.Key()

	f.mu.Lock()
	f.imageCalls = append(f.imageCalls, key)
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrNetwork, err)
	}
	if f.Block != nil {
		select {
		case <-f.Block:
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %w", domain.ErrNetwork, ctx.Err())
		}
	}
	if err, ok := f.ImageErrs[key]; ok {
		return nil, err
	}
	images := f.Images[key]
	if len(images) == 0 {
		return nil, fmt.Errorf("%w: no images for %s", domain.ErrEmptyResult, key)
	}
	if count < len(images) {
		images = images[:count]
	}
	return append([]string(nil), images...), nil
}

func (f *Fake) BreedInfo(ctx context.Context, breed domain.Breed) (domain.Metadata, error) {
	f.mu.Lock()
	f.infoCalls = append(f.infoCalls, breed.Key())
	f.mu.Unlock()

	if f.InfoErr != nil {
		return nil, f.InfoErr
	}
	info, ok := f.Info[breed.Key()]
	if !ok {
		return nil, fmt.Errorf("%w: no info for %s", domain.ErrEmptyResult, breed.Key())
	}
	return info, nil
}

func (f *Fake) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

// ImageCalls returns the breed keys passed to RandomImages, in call order.
func (f *Fake) ImageCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.imageCalls...)
}

func (f *Fake) InfoCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.infoCalls...)
}

func (f *Fake) Closed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// Scenario returns the labrador/terrier fixture: labrador has no
// sub-breeds, terrier has boston and yorkshire.
func Scenario() *Fake {
	return &Fake{
		Groups: []domain.Group{
			{Name: "labrador", SubBreeds: []string{}},
			{Name: "terrier", SubBreeds: []string{"boston", "yorkshire"}},
		},
		Images: map[string][]string{
			"labrador":       {"lab1.jpg", "lab2.jpg", "lab3.jpg"},
			"terrier-boston": {"imgA", "imgB", "imgC"},
		},
		InfoErr: fmt.Errorf("%w: HTTP 404", domain.ErrNetwork),
	}
}
