package config

import (
	"fmt"
	"strings"

	kdl "github.com/sblinch/kdl-go"
	"github.com/sblinch/kdl-go/document"

	fmerrors "github.com/standardbeagle/fuzzymatch/pkg/errors"
)

// parseKDL reads a rules document such as:
//
//	normalizers "/(dh)c?-?(\\d{0,2})-?(\\d{0,4})/i"
//	groupings {
//	    "/boeing/i"
//	    "/(douglas|mcdonnell)/i"
//	}
//	options {
//	    threshold 0.2
//	    must_match_grouping true
//	}
//	checks {
//	    positive "BOEING 737-800" "BOEING 737"
//	    negative "ABCDEFG DH88" "ABCDEFG DH89"
//	}
func parseKDL(content string) (*Rules, error) {
	r := Default()

	doc, err := kdl.Parse(strings.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse KDL rules: %w", err)
	}

	for _, n := range doc.Nodes {
		switch nodeName(n) {
		case "normalizers":
			r.Normalizers = append(r.Normalizers, collectStringArgs(n)...)
		case "tighteners":
			r.Tighteners = append(r.Tighteners, collectStringArgs(n)...)
		case "stop_words":
			r.StopWords = append(r.StopWords, collectStringArgs(n)...)
		case "groupings":
			r.Groupings = append(r.Groupings, collectStringArgs(n)...)
		case "blockings":
			r.Blockings = append(r.Blockings, collectStringArgs(n)...)
		case "identities":
			r.Identities = append(r.Identities, collectStringArgs(n)...)
		case "options":
			if err := parseOptions(&r.Options, n.Children); err != nil {
				return nil, err
			}
		case "checks":
			if err := parseChecks(&r.Checks, n.Children); err != nil {
				return nil, err
			}
		}
	}

	return r, nil
}

func parseOptions(opts *Options, nodes []*document.Node) error {
	toggles := map[string]*bool{
		"case_sensitive":               &opts.CaseSensitive,
		"must_match_grouping":          &opts.MustMatchGrouping,
		"must_match_blocking":          &opts.MustMatchGrouping,
		"must_match_at_least_one_word": &opts.MustMatchAtLeastOneWord,
		"first_grouping_decides":       &opts.FirstGroupingDecides,
		"first_blocking_decides":       &opts.FirstGroupingDecides,
		"expand_groupings":             &opts.ExpandGroupings,
		"stem_words":                   &opts.StemWords,
		"fold_accents":                 &opts.FoldAccents,
	}

	for _, cn := range nodes {
		name := nodeName(cn)
		if target, ok := toggles[name]; ok {
			if err := assignBool(cn, target); err != nil {
				return err
			}
			continue
		}

		switch name {
		case "threshold":
			v, ok := firstFloatArg(cn)
			if !ok {
				return fmerrors.NewConfigError("options.threshold", argString(cn), fmt.Errorf("expected a number"))
			}
			opts.Threshold = v
		case "cache_size":
			v, ok := firstIntArg(cn)
			if !ok {
				return fmerrors.NewConfigError("options.cache_size", argString(cn), fmt.Errorf("expected an integer"))
			}
			opts.CacheSize = v
		case "backend":
			if err := assignString(cn, &opts.Backend); err != nil {
				return err
			}
		}
	}
	return nil
}

func parseChecks(checks *Checks, nodes []*document.Node) error {
	for _, cn := range nodes {
		name := nodeName(cn)
		if name != "positive" && name != "negative" {
			continue
		}

		args := collectStringArgs(cn)
		switch len(args) {
		case 1:
			args = append(args, "")
		case 2:
		default:
			return fmerrors.NewConfigError("checks."+name, argString(cn),
				fmt.Errorf("expected a needle and an optional record"))
		}

		if name == "positive" {
			checks.Positives[args[0]] = args[1]
		} else {
			checks.Negatives[args[0]] = args[1]
		}
	}
	return nil
}

func nodeName(n *document.Node) string {
	if n == nil || n.Name == nil {
		return ""
	}
	return n.Name.NodeNameString()
}

func firstIntArg(n *document.Node) (int, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func firstStringArg(n *document.Node) (string, bool) {
	if len(n.Arguments) == 0 {
		return "", false
	}
	if s, ok := n.Arguments[0].Value.(string); ok {
		return s, true
	}
	return "", false
}

func firstBoolArg(n *document.Node) (bool, bool) {
	if len(n.Arguments) == 0 {
		return false, false
	}
	if b, ok := n.Arguments[0].Value.(bool); ok {
		return b, true
	}
	return false, false
}

func firstFloatArg(n *document.Node) (float64, bool) {
	if len(n.Arguments) == 0 {
		return 0, false
	}
	switch v := n.Arguments[0].Value.(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}

// collectStringArgs reads inline arguments (groupings "a" "b") or, when there
// are none, a block of children (groupings { "a"; "b" })
func collectStringArgs(n *document.Node) []string {
	if n == nil {
		return nil
	}
	out := make([]string, 0, len(n.Arguments))
	for _, a := range n.Arguments {
		if s, ok := a.Value.(string); ok {
			out = append(out, s)
		}
	}

	// In block format each string is a child node named by the string itself
	if len(out) == 0 && len(n.Children) > 0 {
		out = make([]string, 0, len(n.Children))
		for _, child := range n.Children {
			if s, ok := firstStringArg(child); ok {
				out = append(out, s)
			} else if child.Name != nil {
				if s, ok := child.Name.Value.(string); ok {
					out = append(out, s)
				}
			}
		}
	}

	return out
}

func assignString(n *document.Node, target *string) error {
	s, ok := firstStringArg(n)
	if !ok {
		return fmerrors.NewConfigError("options."+nodeName(n), argString(n), fmt.Errorf("expected a string"))
	}
	*target = s
	return nil
}

func assignBool(n *document.Node, target *bool) error {
	b, ok := firstBoolArg(n)
	if !ok {
		return fmerrors.NewConfigError("options."+nodeName(n), argString(n), fmt.Errorf("expected true or false"))
	}
	*target = b
	return nil
}

func argString(n *document.Node) string {
	if len(n.Arguments) == 0 {
		return ""
	}
	return fmt.Sprint(n.Arguments[0].Value)
}
