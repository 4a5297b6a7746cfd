// Package insights holds the transaction analysis core: the free-text
// expense classifier, the two-week aggregator and the recommendation engine.
package insights

import (
	"strings"
)

// Categories is the fixed expense taxonomy, version 1. The literal strings
// are part of the external contract: they are surfaced to clients and to the
// prediction service, so additions get appended and existing entries never
// change spelling.
var Categories = []string{
	"Groceries",
	"Eating Out",
	"Transportation",
	"Utilities",
	"Rent",
	"Entertainment",
	"Healthcare",
	"Personal",
	"Clothing",
	"Electronics",
	"Education",
	"Travel",
	"Gifts & Donations",
	"Insurance",
	"Investments",
	"Miscellaneous",
}

// CategoryUnknown is the sentinel the model uses when the input does not
// carry enough information for a confident classification.
const CategoryUnknown = "Unknown"

// categoryIndex maps normalized names back to their canonical spelling.
var categoryIndex = buildCategoryIndex()

func buildCategoryIndex() map[string]string {
	idx := make(map[string]string, len(Categories)+1)
	for _, c := range Categories {
		idx[normalizeCategory(c)] = c
	}
	idx[normalizeCategory(CategoryUnknown)] = CategoryUnknown
	return idx
}

// CanonicalCategory resolves a model-reported category to its canonical
// spelling, matching case-insensitively and ignoring surrounding whitespace.
// The second return is false when the name is not in the taxonomy.
func CanonicalCategory(name string) (string, bool) {
	canonical, ok := categoryIndex[normalizeCategory(name)]
	return canonical, ok
}

func normalizeCategory(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}
