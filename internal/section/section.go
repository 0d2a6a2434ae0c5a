// Package section parses dotted hierarchical section identifiers from
// heading strings and computes their ancestor chains.
package section

import (
	"regexp"
	"strconv"
	"strings"
)

var idPattern = regexp.MustCompile(`^(\d+(?:\.\d+)*)`)

// ParseID extracts the leading dotted-numeric prefix of a heading string,
// e.g. "3.2 Method" -> "3.2". The second return value is false when the
// heading carries no numeric prefix.
func ParseID(title string) (string, bool) {
	m := idPattern.FindStringSubmatch(strings.TrimSpace(title))
	if m == nil {
		return "", false
	}
	return m[1], true
}

// ParentChain returns the ordered ancestor ids of a dotted section id:
// "3.2.1" -> ["3", "3.2"], "3" -> [].
func ParentChain(id string) []string {
	parts := strings.Split(id, ".")
	parents := make([]string, 0, len(parts)-1)
	for i := 1; i < len(parts); i++ {
		parents = append(parents, strings.Join(parts[:i], "."))
	}
	return parents
}

// Compare orders two dotted section ids by numeric segment value, so that
// "3.2" sorts before "3.10". Non-numeric segments fall back to string
// comparison. Returns -1, 0 or 1.
func Compare(a, b string) int {
	as := strings.Split(a, ".")
	bs := strings.Split(b, ".")
	for i := 0; i < len(as) && i < len(bs); i++ {
		an, aerr := strconv.Atoi(as[i])
		bn, berr := strconv.Atoi(bs[i])
		if aerr == nil && berr == nil {
			if an != bn {
				if an < bn {
					return -1
				}
				return 1
			}
			continue
		}
		if c := strings.Compare(as[i], bs[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(as) < len(bs):
		return -1
	case len(as) > len(bs):
		return 1
	}
	return 0
}
