// Package search implements keyword search over image descriptions.
//
// A query is normalized, split into words and stripped of filler words. Each
// remaining word is looked up in the tag list of every image, where the tag
// list is derived from the description at query time.
package search

import (
	"GalleryBackend/internal/model"
	"regexp"
	"strings"
)

// Source identifies where a raw query came from. URL and form queries are
// normalized slightly differently.
type Source int

const (
	FromURL Source = iota
	FromForm
)

var footnoteMarker = regexp.MustCompile(`\[\d+\]`)

var punctuation = strings.NewReplacer("'s", "", ".", "", ",", "")

// NormalizeQuery strips possessive 's, periods and commas from raw. URL
// queries additionally lose bracketed footnote markers such as "[1]".
func NormalizeQuery(raw string, src Source) string {
	if src == FromURL {
		raw = footnoteMarker.ReplaceAllString(raw, "")
	}
	return punctuation.Replace(raw)
}

// Tokenize splits a normalized query on whitespace.
func Tokenize(normalized string) []string {
	return strings.Fields(normalized)
}

// RemoveFillers drops tokens that equal a filler word, ignoring case, and
// returns the remaining tokens lower-cased with repeats removed. The first
// occurrence of a repeated word keeps its position.
func RemoveFillers(tokens []string, fillers []model.FillerWord) []string {
	skip := make(map[string]struct{}, len(fillers))
	for _, f := range fillers {
		skip[strings.ToLower(f.Word)] = struct{}{}
	}

	words := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		w := strings.ToLower(tok)
		if _, ok := skip[w]; ok {
			continue
		}
		skip[w] = struct{}{}
		words = append(words, w)
	}
	return words
}

var tagCleaner = strings.NewReplacer(" ", "", "-", ",", `"`, "", "'", "")

// Tags derives the tag list of a description: spaces and quotes are removed,
// dashes act as commas, and every comma-separated piece is lower-cased.
// Empty pieces are dropped.
func Tags(description string) []string {
	parts := strings.Split(tagCleaner.Replace(description), ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		tags = append(tags, strings.ToLower(p))
	}
	return tags
}

// HasTag reports whether word, ignoring case, is one of img's tags.
func HasTag(img model.Image, word string) bool {
	word = strings.ToLower(word)
	for _, tag := range Tags(img.Description) {
		if tag == word {
			return true
		}
	}
	return false
}

// Result maps every searched word to the images tagged with it.
type Result struct {
	// Keywords lists the searched words in query order.
	Keywords []string `json:"keywords"`
	// Matches holds an entry for every keyword, possibly an empty list.
	Matches map[string][]model.Image `json:"results"`
}

// Images returns the images matched by word.
func (r Result) Images(word string) []model.Image {
	return r.Matches[word]
}

// Empty reports whether the result has no keywords.
func (r Result) Empty() bool {
	return len(r.Keywords) == 0
}

// Match scans images once per word. A word without matches still gets an
// empty, non-nil list. Repeated words collapse into one entry.
func Match(words []string, images []model.Image) Result {
	res := Result{
		Keywords: make([]string, 0, len(words)),
		Matches:  make(map[string][]model.Image, len(words)),
	}
	for _, w := range words {
		if _, seen := res.Matches[w]; seen {
			continue
		}
		matched := []model.Image{}
		for _, img := range images {
			if HasTag(img, w) {
				matched = append(matched, img)
			}
		}
		res.Keywords = append(res.Keywords, w)
		res.Matches[w] = matched
	}
	return res
}

// Search runs the full pipeline on a raw query.
func Search(raw string, src Source, fillers []model.FillerWord, images []model.Image) Result {
	words := RemoveFillers(Tokenize(NormalizeQuery(raw, src)), fillers)
	return Match(words, images)
}
