// Package web renders the HTML pages.
package web

import (
	"GalleryBackend/internal/model"
	"GalleryBackend/internal/search"
	"GalleryBackend/internal/storage"
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	PageIndex         = "index.html"
	PageSearchResults = "search_results.html"
	PageFillerWords   = "filler_words.html"
)

type IndexData struct {
	Images []model.Image
}

// SearchData feeds the results page. Contains selects the plain substring
// listing in Images instead of the per-keyword Result.
type SearchData struct {
	Query    string
	Result   search.Result
	Contains bool
	Images   []model.Image
}

type FillerWordsData struct {
	Words []model.FillerWord
}

var funcs = template.FuncMap{
	"thumb": storage.ThumbName,
	"tags":  search.Tags,
}

// Renderer holds one parsed template set per page.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, page := range []string{PageIndex, PageSearchResults, PageFillerWords} {
		t, err := template.New(page).Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		r.pages[page] = t
	}
	return r, nil
}

// Render executes page into w. The page is rendered into a buffer first so
// a template error never leaves a half written response.
func (r *Renderer) Render(w io.Writer, page string, data any) error {
	t, ok := r.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}
