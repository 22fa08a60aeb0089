// Package variant turns record text into the comparable forms the matching
// pipeline works on: a cleaned text, its word set and its tightened rewrites.
package variant

import (
	"sort"
	"strings"
	"unicode"

	"github.com/surgebase/porter2"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/standardbeagle/fuzzymatch/internal/cache"
	"github.com/standardbeagle/fuzzymatch/pkg/rules"
	"github.com/standardbeagle/fuzzymatch/pkg/similarity"
)

const (
	defaultCacheSize = 4096
	cacheShards      = 16

	// Words shorter than this are never stemmed
	minStemLength = 3
)

// Variant is the derived form of one text. It is a pure function of the text
// and the rule set, so it can be shared freely once built.
type Variant struct {
	// Original is the text as read from the record
	Original string

	// Text is the folded, stop-word-stripped, whitespace-collapsed form
	Text string

	Words    map[string]struct{}
	Rewrites []similarity.Rewrite
}

// SharesWord reports whether two variants have at least one word in common
func (v *Variant) SharesWord(other *Variant) bool {
	small, large := v.Words, other.Words
	if len(small) > len(large) {
		small, large = large, small
	}
	for w := range small {
		if _, ok := large[w]; ok {
			return true
		}
	}
	return false
}

// WordList returns the words in sorted order
func (v *Variant) WordList() []string {
	out := make([]string, 0, len(v.Words))
	for w := range v.Words {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Tightened returns the rewrites produced by normalizers, excluding the original
func (v *Variant) Tightened() []string {
	var out []string
	for _, r := range v.Rewrites {
		if r.Tightened {
			out = append(out, r.Text)
		}
	}
	return out
}

// Options controls how text is folded before rules run
type Options struct {
	CaseSensitive bool
	FoldAccents   bool
	StemWords     bool

	// CacheSize bounds the number of cached needle variants. Zero uses a default.
	CacheSize int
}

// Wrapper builds variants against a fixed rule set
type Wrapper struct {
	rules *rules.Set
	opts  Options
	cache *cache.Sharded[*Variant]
}

// NewWrapper creates a wrapper over a compiled rule set
func NewWrapper(set *rules.Set, opts Options) *Wrapper {
	if set == nil {
		set = &rules.Set{}
	}
	size := opts.CacheSize
	if size <= 0 {
		size = defaultCacheSize
	}
	return &Wrapper{
		rules: set,
		opts:  opts,
		cache: cache.NewSharded[*Variant](cacheShards, size),
	}
}

// Wrap builds the variant of text without consulting the cache
func (w *Wrapper) Wrap(text string) *Variant {
	cleaned := w.Clean(text)

	return &Variant{
		Original: text,
		Text:     cleaned,
		Words:    w.words(cleaned),
		Rewrites: w.rewrites(cleaned),
	}
}

// WrapCached builds the variant of a needle, reusing a cached one when the
// same text was wrapped before
func (w *Wrapper) WrapCached(text string) *Variant {
	return w.cache.GetOrCreate(text, func() *Variant {
		return w.Wrap(text)
	})
}

// CacheSize returns the number of cached needle variants
func (w *Wrapper) CacheSize() int {
	return w.cache.Size()
}

// CacheStats returns the needle cache counters
func (w *Wrapper) CacheStats() cache.Stats {
	return w.cache.Stats()
}

// Clean folds case and accents, strips stop words and collapses whitespace
func (w *Wrapper) Clean(text string) string {
	if !w.opts.CaseSensitive {
		text = strings.ToLower(text)
	}
	if w.opts.FoldAccents {
		text = foldAccents(text)
	}
	for _, sw := range w.rules.StopWords {
		text = sw.Strip(text)
	}
	return strings.Join(strings.Fields(text), " ")
}

// Tokenize splits text into runs of letters and digits
func Tokenize(text string) []string {
	return strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func (w *Wrapper) words(text string) map[string]struct{} {
	tokens := Tokenize(text)
	out := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		if w.opts.StemWords && len(tok) >= minStemLength {
			tok = porter2.Stem(tok)
		}
		out[tok] = struct{}{}
	}
	return out
}

// rewrites returns the original text followed by one rewrite per matching
// normalizer, in normalizer order. Empty and duplicate rewrites are dropped.
func (w *Wrapper) rewrites(text string) []similarity.Rewrite {
	out := []similarity.Rewrite{{Text: text}}
	seen := map[string]struct{}{text: {}}

	for _, n := range w.rules.Normalizers {
		tight, ok := n.Tighten(text)
		if !ok || tight == "" {
			continue
		}
		if _, dup := seen[tight]; dup {
			continue
		}
		seen[tight] = struct{}{}
		out = append(out, similarity.Rewrite{Text: tight, Tightened: true})
	}
	return out
}

// foldAccents removes combining marks after canonical decomposition. The
// transformer chain holds state, so one is built per call.
func foldAccents(text string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, text)
	if err != nil {
		return text
	}
	return folded
}
