package textedit

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// variablePattern matches ${NAME}. Bare $NAME is left alone so shell and
// Ruby text passes through untouched.
var variablePattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Expand replaces ${NAME} references in input with values from vars.
// Every unresolved name is reported in a single error.
func Expand(input string, vars map[string]string) (string, error) {
	var unresolved []string
	out := variablePattern.ReplaceAllStringFunc(input, func(match string) string {
		name := match[2 : len(match)-1]
		if value, ok := vars[name]; ok {
			return value
		}
		unresolved = append(unresolved, name)
		return match
	})
	if len(unresolved) > 0 {
		sort.Strings(unresolved)
		return "", fmt.Errorf("unresolved variables: %s", strings.Join(unresolved, ", "))
	}
	return out, nil
}

// References lists the distinct variable names input refers to, sorted.
func References(input string) []string {
	seen := map[string]bool{}
	var names []string
	for _, m := range variablePattern.FindAllStringSubmatch(input, -1) {
		if !seen[m[1]] {
			seen[m[1]] = true
			names = append(names, m[1])
		}
	}
	sort.Strings(names)
	return names
}
