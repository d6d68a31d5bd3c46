package ingest

import (
	"strings"

	"github.com/vendhub/vendhub-backend/pkg/enums"
)

// categoryKeywords maps name fragments to vending categories. Order
// matters: the first matching group wins.
var categoryKeywords = []struct {
	keywords []string
	category enums.ProductCategory
}{
	{keywords: []string{"celsius", "red bull", "monster"}, category: enums.ProductCategoryEnergyDrinks},
	{keywords: []string{"muscle milk", "protein"}, category: enums.ProductCategoryProteinDrinks},
	{keywords: []string{"coke", "pepsi", "sprite", "cola"}, category: enums.ProductCategorySoftDrinks},
	{keywords: []string{"snickers", "candy", "chocolate"}, category: enums.ProductCategoryCandy},
	{keywords: []string{"doritos", "lays", "chips", "crackers"}, category: enums.ProductCategorySnacks},
}

// variantSuffixes are flavor/variant qualifiers stripped from the end of a
// product name before fuzzy matching.
var variantSuffixes = []string{"Vanilla", "Berry", "Arctic", "Classic", "Original"}

// CategorizeProduct assigns the category for a product name by
// case-insensitive keyword containment.
func CategorizeProduct(name string) enums.ProductCategory {
	lowered := strings.ToLower(name)
	for _, group := range categoryKeywords {
		for _, keyword := range group.keywords {
			if strings.Contains(lowered, keyword) {
				return group.category
			}
		}
	}
	return enums.ProductCategoryOther
}

// StripVariantSuffix removes one trailing variant qualifier from a product
// name, case-insensitively, so "Celsius Arctic Berry" can match an
// existing "Celsius Arctic" listing.
func StripVariantSuffix(name string) string {
	trimmed := strings.TrimSpace(name)
	lowered := strings.ToLower(trimmed)
	for _, suffix := range variantSuffixes {
		if strings.HasSuffix(lowered, strings.ToLower(suffix)) {
			return strings.TrimSpace(trimmed[:len(trimmed)-len(suffix)])
		}
	}
	return trimmed
}
