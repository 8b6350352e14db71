package storage

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// AllowedExtensions lists the accepted upload extensions, without the dot.
var AllowedExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"gif":  true,
}

const thumbSuffix = "_thumb"

// AllowedFile reports whether name has an accepted image extension.
// The comparison ignores case.
func AllowedFile(name string) bool {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return false
	}
	return AllowedExtensions[strings.ToLower(name[i+1:])]
}

var (
	stripMarks  = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)
)

// SanitizeFilename turns a client supplied name into a safe flat file name:
// accents are folded to ASCII, path separators and whitespace become
// underscores, other characters are dropped and leading or trailing dots and
// underscores are trimmed. The result may be empty.
func SanitizeFilename(name string) string {
	name, _, _ = transform.String(stripMarks, name)
	name = strings.NewReplacer("/", " ", `\`, " ").Replace(name)
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeChars.ReplaceAllString(name, "")
	return strings.Trim(name, "._")
}

// ThumbName returns the name under which the thumbnail of name is stored.
func ThumbName(name string) string {
	ext := filepath.Ext(name)
	return strings.TrimSuffix(name, ext) + thumbSuffix + ext
}

// IsThumb reports whether name looks like a generated thumbnail.
func IsThumb(name string) bool {
	return strings.HasSuffix(strings.TrimSuffix(name, filepath.Ext(name)), thumbSuffix)
}

// validName reports whether name is a single path element.
func validName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}
