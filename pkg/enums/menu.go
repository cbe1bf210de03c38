package enums

import "fmt"

// MenuCategory represents the canonical cookie categories supported by the catalog.
type MenuCategory string

const (
	MenuCategoryClassic MenuCategory = "classic"
	MenuCategoryPremium MenuCategory = "premium"
	MenuCategoryFilled  MenuCategory = "filled"
	MenuCategorySpecial MenuCategory = "special"
	MenuCategoryBrownie MenuCategory = "brownie"
	MenuCategorySet     MenuCategory = "set"
)

var validMenuCategories = []MenuCategory{
	MenuCategoryClassic,
	MenuCategoryPremium,
	MenuCategoryFilled,
	MenuCategorySpecial,
	MenuCategoryBrownie,
	MenuCategorySet,
}

// String implements fmt.Stringer.
func (c MenuCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known MenuCategory.
func (c MenuCategory) IsValid() bool {
	for _, candidate := range validMenuCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseMenuCategory converts raw input into a MenuCategory.
func ParseMenuCategory(value string) (MenuCategory, error) {
	for _, candidate := range validMenuCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid menu category %q", value)
}

// MenuStatus controls storefront visibility of a menu item.
type MenuStatus string

const (
	MenuStatusAvailable  MenuStatus = "available"
	MenuStatusOutOfStock MenuStatus = "out_of_stock"
	MenuStatusHidden     MenuStatus = "hidden"
)

var validMenuStatuses = []MenuStatus{
	MenuStatusAvailable,
	MenuStatusOutOfStock,
	MenuStatusHidden,
}

// String implements fmt.Stringer.
func (s MenuStatus) String() string {
	return string(s)
}

// IsValid reports whether the value matches a known MenuStatus.
func (s MenuStatus) IsValid() bool {
	for _, candidate := range validMenuStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseMenuStatus converts raw input into a MenuStatus.
func ParseMenuStatus(value string) (MenuStatus, error) {
	for _, candidate := range validMenuStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid menu status %q", value)
}
