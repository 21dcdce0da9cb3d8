package catalog

import (
	"strings"
	"testing"

	"dogceo/browser/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioBreeds() []domain.Breed {
	return domain.Flatten([]domain.Group{
		{Name: "labrador", SubBreeds: []string{}},
		{Name: "terrier", SubBreeds: []string{"boston", "yorkshire"}},
	})
}

func names(breeds []domain.Breed) []string {
	out := make([]string, 0, len(breeds))
	for _, b := range breeds {
		out = append(out, b.DisplayName())
	}
	return out
}

func TestCatalog_EmptyQueryReturnsEverythingInOrder(t *testing.T) {
	c := New(scenarioBreeds())

	assert.Equal(t, []string{"Labrador", "Boston Terrier", "Yorkshire Terrier"}, names(c.SetQuery("")))
	assert.Equal(t, c.All(), c.Filtered())
}

func TestCatalog_SetQuery(t *testing.T) {
	c := New(scenarioBreeds())

	tests := []struct {
		query string
		want  []string
	}{
		{query: "terrier", want: []string{"Boston Terrier", "Yorkshire Terrier"}},
		{query: "TERRIER", want: []string{"Boston Terrier", "Yorkshire Terrier"}},
		{query: "on t", want: []string{"Boston Terrier"}},
		{query: "lab", want: []string{"Labrador"}},
		{query: "poodle", want: []string{}},
		{query: "", want: []string{"Labrador", "Boston Terrier", "Yorkshire Terrier"}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got := c.SetQuery(tt.query)
			assert.Equal(t, tt.want, names(got))
			assert.Equal(t, tt.query, c.Query())
		})
	}
}

func TestFilter_IsSubsetInSourceOrder(t *testing.T) {
	breeds := domain.Flatten([]domain.Group{
		{Name: "hound", SubBreeds: []string{"afghan", "basset", "blood", "english"}},
		{Name: "akita"},
		{Name: "setter", SubBreeds: []string{"english", "gordon", "irish"}},
	})

	for _, q := range []string{"e", "english", "ound", "x", "A"} {
		got := Filter(breeds, q)

		idx := 0
		for _, b := range got {
			assert.True(t, strings.Contains(strings.ToLower(b.DisplayName()), strings.ToLower(q)))
			for idx < len(breeds) && breeds[idx] != b {
				idx++
			}
			require.Less(t, idx, len(breeds), "filtered entries must appear in source order")
			idx++
		}
	}
}

func TestFilter_NonASCIINames(t *testing.T) {
	breeds := domain.Flatten([]domain.Group{
		{Name: "épagneul", SubBreeds: []string{"breton"}},
		{Name: "akita"},
	})

	got := Filter(breeds, "épa")
	assert.Equal(t, []string{"Breton Épagneul"}, names(got))

	got = Filter(breeds, "ÉPAGNEUL")
	assert.Equal(t, []string{"Breton Épagneul"}, names(got))
}

func TestCatalog_Find(t *testing.T) {
	c := New(scenarioBreeds())
	c.SetQuery("lab")

	b, ok := c.Find("terrier-boston")
	require.True(t, ok, "Find searches the full catalog, not the filtered view")
	assert.Equal(t, "Boston Terrier", b.DisplayName())

	_, ok = c.Find("poodle")
	assert.False(t, ok)
}

func TestCards(t *testing.T) {
	images := domain.NewImageSet()
	images.Record("terrier-boston", []string{"imgA", "imgB"})

	cards := Cards(scenarioBreeds(), images, "placeholder.png")
	require.Len(t, cards, 3)

	assert.Equal(t, Card{
		Key:         "labrador",
		Name:        "Labrador",
		Image:       "placeholder.png",
		Descriptor:  "Primary breed",
		Placeholder: true,
	}, cards[0])
	assert.Equal(t, Card{
		Key:        "terrier-boston",
		Name:       "Boston Terrier",
		Image:      "imgA",
		Descriptor: "Sub-breed: Boston",
	}, cards[1])
	assert.True(t, cards[2].Placeholder)
}
