package rules

import (
	"fmt"
	"regexp"
	"strings"
)

// ParsePattern compiles a pattern spec. A spec is either a bare regular
// expression or the delimited form /body/flags. Supported flags are i (ignore
// case) and m (dot matches newline). Patterns ignore case unless caseSensitive
// is set and the spec has no i flag.
func ParsePattern(spec string, caseSensitive bool) (*regexp.Regexp, error) {
	body, flags, err := splitSpec(spec)
	if err != nil {
		return nil, err
	}

	var prefix strings.Builder
	if !caseSensitive || strings.ContainsRune(flags, 'i') {
		prefix.WriteByte('i')
	}
	if strings.ContainsRune(flags, 'm') {
		prefix.WriteByte('s')
	}

	if prefix.Len() > 0 {
		body = "(?" + prefix.String() + ")" + body
	}

	return regexp.Compile(body)
}

// splitSpec separates a /body/flags spec into its parts
func splitSpec(spec string) (body, flags string, err error) {
	if !strings.HasPrefix(spec, "/") {
		return spec, "", nil
	}

	end := strings.LastIndex(spec, "/")
	if end == 0 {
		return "", "", fmt.Errorf("missing closing delimiter")
	}

	body = spec[1:end]
	flags = spec[end+1:]
	for _, f := range flags {
		switch f {
		case 'i', 'm':
		default:
			return "", "", fmt.Errorf("unsupported flag %q", f)
		}
	}
	return body, flags, nil
}

// SplitAlternatives expands a spec whose top level is an alternation into one
// spec per alternative, each keeping the original flags. A spec without a top
// level alternation is returned unchanged. This lets one grouping spec such as
// /boeing|douglas/i describe several groups. Inline flags that cover the whole
// body, as in (?i:a|b) or (?i)a|b, are carried into every alternative.
func SplitAlternatives(spec string) ([]string, error) {
	body, flags, err := splitSpec(spec)
	if err != nil {
		return nil, err
	}
	if _, err := regexp.Compile(body); err != nil {
		return nil, err
	}

	// A group wrapping the whole body groups the same way as no group
	prefix := ""
	if inner, groupFlags, ok := unwrapGroup(body); ok {
		body = inner
		prefix = groupFlags
	}
	if lead, rest := leadingFlags(body); lead != "" {
		body = rest
		prefix += lead
	}

	alternatives := topLevelAlternatives(body)
	if len(alternatives) < 2 {
		return []string{spec}, nil
	}

	delimited := strings.HasPrefix(spec, "/")
	out := make([]string, 0, len(alternatives))
	for _, alt := range alternatives {
		if alt == "" {
			continue
		}
		alt = prefix + alt
		if _, err := regexp.Compile(alt); err != nil {
			return []string{spec}, nil
		}
		if delimited {
			alt = "/" + alt + "/" + flags
		}
		out = append(out, alt)
	}
	return out, nil
}

// topLevelAlternatives splits a regular expression on | outside of groups,
// character classes and escapes
func topLevelAlternatives(body string) []string {
	var (
		out     []string
		depth   int
		inClass bool
		start   int
	)

	for i := 0; i < len(body); i++ {
		switch c := body[i]; {
		case c == '\\':
			i++
		case inClass:
			if c == ']' {
				inClass = false
			}
		case c == '[':
			inClass = true
		case c == '(':
			depth++
		case c == ')':
			depth--
		case c == '|' && depth == 0:
			out = append(out, body[start:i])
			start = i + 1
		}
	}

	return append(out, body[start:])
}

// unwrapGroup strips one group enclosing the whole body. Plain, non-capturing
// and named groups unwrap to their content. A flag group such as (?i:...)
// unwraps too and its flags are returned as a (?i) prefix.
func unwrapGroup(body string) (inner, flags string, ok bool) {
	if len(body) < 2 || body[0] != '(' || body[len(body)-1] != ')' {
		return body, "", false
	}

	depth := 0
	inClass := false
	for i := 0; i < len(body); i++ {
		switch c := body[i]; {
		case c == '\\':
			i++
		case inClass:
			if c == ']' {
				inClass = false
			}
		case c == '[':
			inClass = true
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth == 0 && i != len(body)-1 {
				return body, "", false
			}
		}
	}

	inner = body[1 : len(body)-1]
	switch {
	case !strings.HasPrefix(inner, "?"):
		return inner, "", true
	case strings.HasPrefix(inner, "?:"):
		return inner[2:], "", true
	case strings.HasPrefix(inner, "?P<"), strings.HasPrefix(inner, "?<"):
		end := strings.IndexByte(inner, '>')
		if end < 0 {
			return body, "", false
		}
		return inner[end+1:], "", true
	}

	colon := strings.IndexByte(inner, ':')
	if colon < 2 || !isFlagSet(inner[1:colon]) {
		return body, "", false
	}
	return inner[colon+1:], "(?" + inner[1:colon] + ")", true
}

// leadingFlags splits a (?flags) prefix off body. Such a prefix applies to
// every top level alternative that follows it.
func leadingFlags(body string) (flags, rest string) {
	if !strings.HasPrefix(body, "(?") {
		return "", body
	}
	end := strings.IndexByte(body, ')')
	if end < 3 || !isFlagSet(body[2:end]) {
		return "", body
	}
	return body[:end+1], body[end+1:]
}

func isFlagSet(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !strings.ContainsRune("imsU-", r) {
			return false
		}
	}
	return true
}
