// Package fuzzymatch links a free-text needle to the haystack record it most
// plausibly refers to.
//
// Matching is driven by rules a domain expert writes rather than by a bare
// similarity threshold. Rules are pattern specs, either bare regular
// expressions or the delimited /body/flags form.
//
// # Pipeline
//
// Every lookup runs the same stages:
//
//  1. Variant - the needle is case folded, stripped of stop words and
//     rewritten by every matching normalizer (tightener).
//  2. Grouping - when the needle falls in a group, only records in the same
//     group compete.
//  3. Words - with MustMatchAtLeastOneWord, only records sharing a word with
//     the needle compete.
//  4. Identity - records an identity rule proves different are dropped.
//  5. Ranking - survivors are scored by bigram coefficient then edit
//     similarity over the best pairing of needle and record rewrites.
//
// # Core Components
//
// Engine: built once over a haystack with New, then queried with Find,
// FindAll, FindBest and their WithScore forms, or with Lookup for full
// control over mode and tracing.
//
// Trace: returned inside a Result when a lookup runs WithTrace. Explain
// renders it for a single Find.
//
// Checker: verifies lookups against known positive and negative pairings
// while rules are being tuned.
//
// # Usage Example
//
//	engine, err := fuzzymatch.New([]string{
//		"DEHAVILLAND DEHAVILLAND DHC8-400 DASH-8",
//		"BOEING BOEING 737-100/200",
//	}, fuzzymatch.Config[string]{
//		Normalizers: []string{`/(dh)c?-?(\d{0,2})-?(\d{0,4})/i`},
//	})
//	if err != nil {
//		return err
//	}
//
//	record, ok := engine.Find("DE HAVILLAND CANADA DHC8400 Dash 8")
//
// # Thread Safety
//
// An Engine is read-only after New. Lookups may run concurrently; FindMany
// does so with a bounded worker pool.
package fuzzymatch
