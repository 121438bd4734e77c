package service

import "sort"

// sortedKeys returns map keys in lexical order so prompt and fallback text
// never depends on map iteration order.
func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
