package utils

import (
	"github.com/alecthomas/chroma/v2/lexers"
)

// KnownLanguage reports whether a code-block language tag is recognized
// by the highlighter downstream renderers use. Unknown tags are still
// emitted verbatim; this only backs a warning.
func KnownLanguage(name string) bool {
	if name == "" {
		return false
	}
	return lexers.Get(name) != nil
}
