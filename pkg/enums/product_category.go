package enums

import "fmt"

// ProductCategory is the canonical vending category assigned when a product
// is first seen in an import. Values are stored as displayed.
type ProductCategory string

const (
	ProductCategoryEnergyDrinks  ProductCategory = "Energy Drinks"
	ProductCategoryProteinDrinks ProductCategory = "Protein Drinks"
	ProductCategorySoftDrinks    ProductCategory = "Soft Drinks"
	ProductCategoryCandy         ProductCategory = "Candy"
	ProductCategorySnacks        ProductCategory = "Snacks"
	ProductCategoryOther         ProductCategory = "Other"
)

var validProductCategories = []ProductCategory{
	ProductCategoryEnergyDrinks,
	ProductCategoryProteinDrinks,
	ProductCategorySoftDrinks,
	ProductCategoryCandy,
	ProductCategorySnacks,
	ProductCategoryOther,
}

// String implements fmt.Stringer.
func (c ProductCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ProductCategory.
func (c ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseProductCategory converts raw input into a ProductCategory.
func ParseProductCategory(value string) (ProductCategory, error) {
	for _, candidate := range validProductCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}
