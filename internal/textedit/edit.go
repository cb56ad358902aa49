package textedit

import "strings"

// Position selects which side of an anchor an injection lands on.
type Position int

const (
	Before Position = iota
	After
)

func (p Position) String() string {
	if p == Before {
		return "before"
	}
	return "after"
}

// Inject splices insert immediately before or after the first match of
// anchor, or after every match when all is set. When nothing matches the
// content is returned unchanged with ok=false.
func Inject(content string, anchor Anchor, insert string, pos Position, all bool) (string, bool) {
	limit := 1
	if all {
		limit = -1
	}
	matches := anchor.find(content, limit)
	if len(matches) == 0 {
		return content, false
	}

	var b strings.Builder
	b.Grow(len(content) + len(matches)*len(insert))
	last := 0
	for _, m := range matches {
		at := m[1]
		if pos == Before {
			at = m[0]
		}
		b.WriteString(content[last:at])
		b.WriteString(insert)
		last = at
	}
	b.WriteString(content[last:])
	return b.String(), true
}

// InjectBefore is Inject at the first match, before the anchor.
func InjectBefore(content string, anchor Anchor, insert string) (string, bool) {
	return Inject(content, anchor, insert, Before, false)
}

// InjectAfter is Inject at the first match, after the anchor.
func InjectAfter(content string, anchor Anchor, insert string) (string, bool) {
	return Inject(content, anchor, insert, After, false)
}

// Substitute replaces matches of pattern with replacement, taken literally
// ("$1" stays "$1"). Every match is replaced unless first is set. The count
// of replacements is returned; zero leaves content unchanged.
func Substitute(content string, pattern Anchor, replacement string, first bool) (string, int) {
	limit := -1
	if first {
		limit = 1
	}
	matches := pattern.find(content, limit)
	if len(matches) == 0 {
		return content, 0
	}

	var b strings.Builder
	last := 0
	for _, m := range matches {
		b.WriteString(content[last:m[0]])
		b.WriteString(replacement)
		last = m[1]
	}
	b.WriteString(content[last:])
	return b.String(), len(matches)
}

// Prepend returns insert followed by content.
func Prepend(content, insert string) string {
	return insert + content
}

// Append returns content followed by insert.
func Append(content, insert string) string {
	return content + insert
}
