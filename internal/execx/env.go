package execx

import (
	"os"
	"strings"
)

// EnvWith returns base with key set to value, replacing any existing
// definitions of key. A nil base means the current environment.
func EnvWith(base []string, key, value string) []string {
	if base == nil {
		base = os.Environ()
	}

	out := make([]string, 0, len(base)+1)
	for _, e := range base {
		k, _, ok := strings.Cut(e, "=")
		if ok && sameKey(k, key) {
			continue
		}
		out = append(out, e)
	}
	return append(out, key+"="+value)
}

func sameKey(a, b string) bool {
	if os.PathSeparator == '\\' {
		return strings.EqualFold(a, b)
	}
	return a == b
}
