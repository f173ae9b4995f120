package types

import (
	"strings"

	"golang.org/x/exp/slices"
)

// CategorySeparator separates category names in the categoriesString form field.
const CategorySeparator = ","

// SplitCategories parses a list of category names.
//
// Names are trimmed, empty names are dropped and only the first occurrence of
// a name is kept. The order of the remaining names is preserved.
func SplitCategories(s string) []string {
	names := make([]string, 0)

	for _, token := range strings.Split(s, CategorySeparator) {
		name := strings.TrimSpace(token)
		if name == "" || slices.Contains(names, name) {
			continue
		}

		names = append(names, name)
	}

	return names
}
