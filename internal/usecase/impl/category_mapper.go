package impl

import "strings"

// Canonical preference categories surfaced to users.
const (
	CategoryFood      = "Food"
	CategoryDrinks    = "Drinks"
	CategoryNightlife = "Nightlife"
	CategoryEvents    = "Events"
	CategoryShopping  = "Shopping"
	CategoryWellness  = "Wellness"
)

// categorySynonyms maps lowercased raw deal tags to their canonical
// preference category. Many-to-one; the canonical names map to themselves so
// normalization is idempotent.
var categorySynonyms = map[string]string{
	"food":        CategoryFood,
	"restaurant":  CategoryFood,
	"brunch":      CategoryFood,
	"lunch":       CategoryFood,
	"dinner":      CategoryFood,
	"bakery":      CategoryFood,
	"street food": CategoryFood,

	"drinks":     CategoryDrinks,
	"drink":      CategoryDrinks,
	"bar":        CategoryDrinks,
	"cocktail":   CategoryDrinks,
	"happy hour": CategoryDrinks,
	"brewery":    CategoryDrinks,
	"wine":       CategoryDrinks,
	"coffee":     CategoryDrinks,
	"cafe":       CategoryDrinks,

	"nightlife":  CategoryNightlife,
	"club":       CategoryNightlife,
	"nightclub":  CategoryNightlife,
	"dj":         CategoryNightlife,
	"late night": CategoryNightlife,

	"events":     CategoryEvents,
	"event":      CategoryEvents,
	"festival":   CategoryEvents,
	"concert":    CategoryEvents,
	"live music": CategoryEvents,
	"show":       CategoryEvents,
	"exhibition": CategoryEvents,

	"shopping": CategoryShopping,
	"shop":     CategoryShopping,
	"retail":   CategoryShopping,
	"market":   CategoryShopping,
	"outlet":   CategoryShopping,

	"wellness": CategoryWellness,
	"spa":      CategoryWellness,
	"gym":      CategoryWellness,
	"fitness":  CategoryWellness,
	"yoga":     CategoryWellness,
	"massage":  CategoryWellness,
}

// NormalizeCategory maps a raw deal tag to its canonical preference
// category. Tags without a table entry pass through unchanged and act as
// their own category. Idempotent: normalizing a canonical name is a no-op.
func NormalizeCategory(raw string) string {
	tag := strings.ToLower(strings.TrimSpace(raw))
	if canonical, ok := categorySynonyms[tag]; ok {
		return canonical
	}

	return raw
}
