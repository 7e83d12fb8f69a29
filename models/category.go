package models

import "sort"

// Known product categories. The set is open: any non-empty string is a
// valid category, these are just the ones the boutique launched with.
const (
	CategoryFlowers     = "flowers"
	CategoryClothes     = "clothes"
	CategoryArt         = "art"
	CategoryAccessories = "accessories"
)

var knownCategoryOrder = map[string]int{
	CategoryFlowers:     0,
	CategoryClothes:     1,
	CategoryArt:         2,
	CategoryAccessories: 3,
}

// Categories returns the distinct categories present in products.
// Known categories come first in launch order, unknown ones follow
// alphabetically.
func Categories(products []Product) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range products {
		if p.Category == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		out = append(out, p.Category)
	}

	sort.SliceStable(out, func(i, j int) bool {
		oi, iKnown := knownCategoryOrder[out[i]]
		oj, jKnown := knownCategoryOrder[out[j]]
		switch {
		case iKnown && jKnown:
			return oi < oj
		case iKnown != jKnown:
			return iKnown
		default:
			return out[i] < out[j]
		}
	})
	return out
}
