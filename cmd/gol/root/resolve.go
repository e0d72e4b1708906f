package root

import (
	"fmt"
	"strings"
)

// resolveID expands a unique id prefix. An exact match always wins.
func resolveID(kind, input string, ids []string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("%s id is required", kind)
	}
	var matches []string
	for _, id := range ids {
		if id == input {
			return id, nil
		}
		if strings.HasPrefix(id, input) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return "", notFound(kind, input)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("%s id %q is ambiguous (%d matches)", kind, input, len(matches))
	}
}

func shortID(id string) string {
	if len(id) > 8 && !strings.Contains(id, "_") {
		return id[:8]
	}
	return id
}
