package services

import "github.com/gagan0803/cook-proj/internal/models"

// The recipe filters are independent and commutative: each narrows its
// input and passes it through untouched when the criterion is unset.

// FilterByDietary keeps recipes whose dietary info matches every
// requested true tag exactly. A single mismatch excludes the recipe.
func FilterByDietary(recipes []models.Recipe, filters map[string]bool) []models.Recipe {
	if len(filters) == 0 {
		return recipes
	}

	filtered := []models.Recipe{}
	for _, recipe := range recipes {
		matchesAll := true
		for tag, wanted := range filters {
			if wanted && recipe.DietaryInfo[tag] != wanted {
				matchesAll = false
				break
			}
		}
		if matchesAll {
			filtered = append(filtered, recipe)
		}
	}
	return filtered
}

// FilterByTime keeps recipes whose prep plus cook time fits the budget.
func FilterByTime(recipes []models.Recipe, maxTime int) []models.Recipe {
	if maxTime <= 0 {
		return recipes
	}

	filtered := []models.Recipe{}
	for _, recipe := range recipes {
		if recipe.TotalTime() <= maxTime {
			filtered = append(filtered, recipe)
		}
	}
	return filtered
}

// FilterByDifficulty keeps recipes with an exactly equal difficulty label.
func FilterByDifficulty(recipes []models.Recipe, difficulty models.Difficulty) []models.Recipe {
	if difficulty == "" {
		return recipes
	}

	filtered := []models.Recipe{}
	for _, recipe := range recipes {
		if recipe.Difficulty == difficulty {
			filtered = append(filtered, recipe)
		}
	}
	return filtered
}
