package impl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
	}{
		{raw: "cocktail", expected: CategoryDrinks},
		{raw: "Cocktail", expected: CategoryDrinks},
		{raw: "  happy hour  ", expected: CategoryDrinks},
		{raw: "festival", expected: CategoryEvents},
		{raw: "brunch", expected: CategoryFood},
		{raw: "spa", expected: CategoryWellness},
		{raw: "market", expected: CategoryShopping},
		{raw: "nightclub", expected: CategoryNightlife},
		// Unknown tags pass through unchanged and act as their own category.
		{raw: "karaoke", expected: "karaoke"},
		{raw: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeCategory(tt.raw))
		})
	}
}

func TestNormalizeCategory_Idempotent(t *testing.T) {
	inputs := make([]string, 0, len(categorySynonyms)+3)
	for raw := range categorySynonyms {
		inputs = append(inputs, raw)
	}
	inputs = append(inputs, CategoryFood, "karaoke", "")

	for _, raw := range inputs {
		once := NormalizeCategory(raw)
		assert.Equal(t, once, NormalizeCategory(once), "normalize(normalize(%q))", raw)
	}
}
