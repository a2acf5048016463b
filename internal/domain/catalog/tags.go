package catalog

import (
	"sort"
	"strings"
)

// NormalizeTags limpia, deduplica y ordena tags.
// Vacíos se descartan; el orden de salida es estable (alfabético).
func NormalizeTags(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, raw := range in {
		t := strings.ToLower(strings.TrimSpace(raw))
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
