package similarity

import (
	"strings"

	"github.com/hbollon/go-edlib"
)

// Backend computes Levenshtein distance. Implementations must agree with the
// built-in algorithm: unit cost insertion, deletion and substitution over runes.
type Backend interface {
	Name() string
	Levenshtein(a, b string) int
}

// Builtin is the pure Go implementation and the fallback for every scorer
type Builtin struct{}

// Name returns the backend name
func (Builtin) Name() string { return "builtin" }

// Levenshtein returns the edit distance between a and b
func (Builtin) Levenshtein(a, b string) int { return levenshtein(a, b) }

// Edlib delegates edit distance to github.com/hbollon/go-edlib
type Edlib struct{}

// Name returns the backend name
func (Edlib) Name() string { return "go-edlib" }

// Levenshtein returns the edit distance between a and b
func (Edlib) Levenshtein(a, b string) int {
	return edlib.LevenshteinDistance(a, b)
}

// BackendByName resolves a backend from configuration. Unknown or empty names
// resolve to the built-in backend.
func BackendByName(name string) Backend {
	switch strings.ToLower(name) {
	case "edlib", "go-edlib":
		return Edlib{}
	default:
		return Builtin{}
	}
}
