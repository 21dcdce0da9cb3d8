package render

import (
	"fmt"
	"html/template"
	"io"

	"dogceo/browser/internal/catalog"
)

var pageTemplate = template.Must(template.New("catalog").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<h1>{{.Title}}</h1>
{{- if .Query}}
<p class="query">Filter: {{.Query}}</p>
{{- end}}
<div id="dogsContainer">
{{- range .Cards}}
  <div class="dog-card" data-breed-id="{{.Key}}">
    <img src="{{.Image}}" alt="{{.Name}}" class="dog-card-image{{if .Placeholder}} placeholder{{end}}">
    <div class="dog-card-info">
      <h3>{{.Name}}</h3>
      <p>{{.Descriptor}}</p>
    </div>
  </div>
{{- else}}
  <div class="no-results"><p>{{.Empty}}</p></div>
{{- end}}
</div>
</body>
</html>
`))

type page struct {
	Title string
	Query string
	Cards []catalog.Card
	Empty string
}

// WriteCatalog writes a static HTML page with one card per entry, or the
// empty-state block when there are none.
func WriteCatalog(w io.Writer, title, query string, cards []catalog.Card) error {
	err := pageTemplate.Execute(w, page{
		Title: title,
		Query: query,
		Cards: cards,
		Empty: catalog.EmptyMessage,
	})
	if err != nil {
		return fmt.Errorf("failed to render catalog page: %w", err)
	}
	return nil
}
