// Package recipe defines the recipe domain model shared by every repository
// backend: the Recipe document, its nutrition and ingredient entries, and the
// Repository interface implemented by storage packages.
package recipe

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidID is returned when a recipe id cannot be parsed into a positive
// integer key.
var ErrInvalidID = errors.New("invalid recipe id")

type (
	// Recipe is a single dish with its nutrition facts and ingredient lines.
	// ID is assigned when the catalog is seeded and never changes.
	Recipe struct {
		ID           int                 `yaml:"id" json:"id"`
		Title        string              `yaml:"title" json:"title"`
		Nutrition    map[string]Nutrient `yaml:"nutrition,omitempty" json:"nutrition,omitempty"`
		Ingredients  []Ingredient        `yaml:"ingredients,omitempty" json:"ingredients,omitempty"`
		Servings     int                 `yaml:"servings" json:"servings"`
		PrepMinutes  int                 `yaml:"prepMinutes" json:"prepMinutes"`
		CookMinutes  int                 `yaml:"cookMinutes" json:"cookMinutes"`
		ReadyMinutes int                 `yaml:"readyMinutes" json:"readyMinutes"`
		ImageURL     string              `yaml:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	}

	// Nutrient is one entry of a recipe nutrition table, keyed by nutrient
	// name in Recipe.Nutrition (e.g. "calories", "fat").
	Nutrient struct {
		Name           string  `yaml:"name" json:"name"`
		Amount         float64 `yaml:"amount" json:"amount"`
		Unit           string  `yaml:"unit" json:"unit"`
		DisplayValue   string  `yaml:"displayValue" json:"displayValue"`
		DailyValue     float64 `yaml:"dailyValue" json:"dailyValue"`
		IsCompleteData bool    `yaml:"isCompleteData" json:"isCompleteData"`
	}

	// Ingredient is one ordered line of a recipe ingredient list.
	Ingredient struct {
		IngredientID int     `yaml:"ingredientID" json:"ingredientID"`
		DisplayValue string  `yaml:"displayValue" json:"displayValue"`
		Grams        float64 `yaml:"grams" json:"grams"`
		DisplayType  string  `yaml:"displayType" json:"displayType"`
	}
)

// ParseID parses a recipe id from its textual form. Only positive base-10
// integers are accepted; anything else yields an error wrapping ErrInvalidID.
func ParseID(s string) (int, error) {
	trimmed := strings.TrimSpace(s)
	id, err := strconv.Atoi(trimmed)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return id, nil
}

// ParseIDs parses every element of ss with ParseID, stopping at the first
// malformed value.
func ParseIDs(ss []string) ([]int, error) {
	ids := make([]int, 0, len(ss))
	for _, s := range ss {
		id, err := ParseID(s)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// IDs returns the ids of the given recipes in order.
func IDs(recipes []Recipe) []int {
	ids := make([]int, len(recipes))
	for i, r := range recipes {
		ids[i] = r.ID
	}
	return ids
}
