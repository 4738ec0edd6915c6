package utils

import "strings"

// SplitList splits a separated list, trims every item and drops empty ones.
func SplitList(s, sep string) []string {
	var result []string

	for _, item := range strings.Split(s, sep) {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}

	return result
}
