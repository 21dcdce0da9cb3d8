package catalog

import (
	"strings"

	"dogceo/browser/internal/domain"
)

const (
	EmptyMessage = "No dog breeds match that name"
	ErrorMessage = "Could not load dog breeds"
)

// Catalog holds the full taxonomy in source order plus the subset that
// matches the current query. It is owned by a single goroutine.
type Catalog struct {
	all      []domain.Breed
	filtered []domain.Breed
	query    string
	byKey    map[string]int
}

func New(breeds []domain.Breed) *Catalog {
	c := &Catalog{
		all:   append([]domain.Breed(nil), breeds...),
		byKey: make(map[string]int, len(breeds)),
	}
	for i, b := range c.all {
		c.byKey[b.Key()] = i
	}
	c.filtered = Filter(c.all, "")
	return c
}

// SetQuery recomputes the filtered view from scratch and returns it.
func (c *Catalog) SetQuery(text string) []domain.Breed {
	c.query = text
	c.filtered = Filter(c.all, text)
	return c.Filtered()
}

func (c *Catalog) Query() string {
	return c.query
}

func (c *Catalog) All() []domain.Breed {
	return append([]domain.Breed(nil), c.all...)
}

func (c *Catalog) Filtered() []domain.Breed {
	return append([]domain.Breed(nil), c.filtered...)
}

func (c *Catalog) Len() int {
	return len(c.all)
}

// Find looks a breed up by key in the full catalog.
func (c *Catalog) Find(key string) (domain.Breed, bool) {
	i, ok := c.byKey[key]
	if !ok {
		return domain.Breed{}, false
	}
	return c.all[i], true
}

// Filter keeps the breeds whose display name contains text, ignoring case.
// An empty text matches everything. Relative order is preserved.
func Filter(breeds []domain.Breed, text string) []domain.Breed {
	needle := strings.ToLower(text)
	out := make([]domain.Breed, 0, len(breeds))
	for _, b := range breeds {
		if needle == "" || strings.Contains(strings.ToLower(b.DisplayName()), needle) {
			out = append(out, b)
		}
	}
	return out
}

// Card is the display-ready summary of one catalog entry.
type Card struct {
	Key         string
	Name        string
	Image       string
	Descriptor  string
	Placeholder bool
}

// Cards builds one card per breed using whatever images are known right
// now. Breeds without images get the placeholder.
func Cards(breeds []domain.Breed, images *domain.ImageSet, placeholder string) []Card {
	cards := make([]Card, 0, len(breeds))
	for _, b := range breeds {
		card := Card{
			Key:        b.Key(),
			Name:       b.DisplayName(),
			Descriptor: b.Descriptor(),
		}
		if img, ok := images.First(b.Key()); ok {
			card.Image = img
		} else {
			card.Image = placeholder
			card.Placeholder = true
		}
		cards = append(cards, card)
	}
	return cards
}
