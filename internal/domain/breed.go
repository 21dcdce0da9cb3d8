package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Breed is one addressable catalog entry: a primary breed, or a
// breed/sub-breed pair.
type Breed struct {
	Main string `json:"main"`
	Sub  string `json:"sub,omitempty"`
}

// Group is a taxonomy group as returned by the breed list endpoint.
type Group struct {
	Name      string   `json:"name"`
	SubBreeds []string `json:"sub_breeds"`
}

func (b Breed) IsSubBreed() bool {
	return b.Sub != ""
}

// Key identifies the entry: "labrador" or "terrier-boston".
func (b Breed) Key() string {
	if b.Sub == "" {
		return b.Main
	}
	return b.Main + "-" + b.Sub
}

// DisplayName reads "Labrador" or "Boston Terrier".
func (b Breed) DisplayName() string {
	if b.Sub == "" {
		return Capitalize(b.Main)
	}
	return Capitalize(b.Sub) + " " + Capitalize(b.Main)
}

// Descriptor is the short card subtitle.
func (b Breed) Descriptor() string {
	if b.Sub == "" {
		return "Primary breed"
	}
	return "Sub-breed: " + Capitalize(b.Sub)
}

func (b Breed) String() string {
	return b.Key()
}

// Capitalize splits on '-' and upper-cases the first rune of every word.
func Capitalize(name string) string {
	words := strings.Split(name, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// Flatten turns taxonomy groups into catalog entries, keeping group and
// sub-breed order. A group without sub-breeds yields exactly one entry.
func Flatten(groups []Group) []Breed {
	breeds := make([]Breed, 0, len(groups))
	for _, g := range groups {
		if len(g.SubBreeds) == 0 {
			breeds = append(breeds, Breed{Main: g.Name})
			continue
		}
		for _, sub := range g.SubBreeds {
			breeds = append(breeds, Breed{Main: g.Name, Sub: sub})
		}
	}
	return breeds
}

// ParseKey is the inverse of Breed.Key. Only the first '-' separates the
// sub-breed, so "terrier-boston" is {terrier, boston}.
func ParseKey(key string) Breed {
	main, sub, _ := strings.Cut(key, "-")
	return Breed{Main: main, Sub: sub}
}
