// Package textedit implements the text primitives the recipe is built from:
// locating an anchor in file content and splicing or substituting around it.
//
// Every function is pure. Callers read the file, transform the string and
// write it back; the bool results report whether anything matched so the
// caller can decide how loudly to treat a missing anchor.
package textedit

import (
	"fmt"
	"regexp"
	"strings"
)

// Anchor locates text inside file content. Use Literal or Regexp to build one.
type Anchor struct {
	literal string
	re      *regexp.Regexp
}

// Literal matches s byte-for-byte.
func Literal(s string) Anchor {
	return Anchor{literal: s}
}

// Regexp matches the Go regular expression expr. Multi-line anchors use the
// inline flags: (?s) lets '.' cross newlines, (?m) makes ^ and $ line-anchored.
// It panics if expr does not compile, like regexp.MustCompile.
func Regexp(expr string) Anchor {
	return Anchor{re: regexp.MustCompile(expr)}
}

// IsRegexp reports whether the anchor is a regular expression.
func (a Anchor) IsRegexp() bool {
	return a.re != nil
}

// IsZero reports whether the anchor was never initialized.
func (a Anchor) IsZero() bool {
	return a.re == nil && a.literal == ""
}

// String renders the anchor for progress output and errors.
func (a Anchor) String() string {
	if a.re != nil {
		return "/" + a.re.String() + "/"
	}
	return fmt.Sprintf("%q", a.literal)
}

// find returns the [start, end) byte offsets of up to n matches (n < 0 for all).
func (a Anchor) find(content string, n int) [][2]int {
	if a.re != nil {
		locs := a.re.FindAllStringIndex(content, n)
		out := make([][2]int, 0, len(locs))
		for _, loc := range locs {
			out = append(out, [2]int{loc[0], loc[1]})
		}
		return out
	}
	if a.literal == "" {
		return nil
	}
	var out [][2]int
	offset := 0
	for n < 0 || len(out) < n {
		i := strings.Index(content[offset:], a.literal)
		if i < 0 {
			break
		}
		start := offset + i
		end := start + len(a.literal)
		out = append(out, [2]int{start, end})
		offset = end
	}
	return out
}
