package services

import (
	"context"
	"sort"
	"strings"

	"github.com/gagan0803/cook-proj/internal/catalog"
	"github.com/gagan0803/cook-proj/internal/models"
)

const (
	// Queries shorter than this return nothing rather than an error.
	minSuggestionQueryLength = 2
	maxSuggestions           = 10
)

// RecipeMatch is a recipe scored against a list of candidate ingredients.
type RecipeMatch struct {
	models.Recipe
	MatchPercentage float64 `json:"match_percentage"`
}

// Matcher answers ingredient-name and ingredient-overlap questions
// against the recipe catalog.
type Matcher struct {
	catalog *catalog.Store
}

func NewMatcher(catalogStore *catalog.Store) *Matcher {
	return &Matcher{catalog: catalogStore}
}

// SuggestIngredients returns up to 10 distinct ingredient names from the
// catalog whose lower-cased name starts with the query, sorted
// alphabetically.
func (matcher *Matcher) SuggestIngredients(ctx context.Context, query string) ([]string, error) {
	if len(query) < minSuggestionQueryLength {
		return []string{}, nil
	}

	recipes, err := matcher.catalog.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var names []string
	for _, recipe := range recipes {
		for _, ingredient := range recipe.Ingredients {
			if !matchesPrefix(ingredient.Name, query) {
				continue
			}
			if _, ok := seen[ingredient.Name]; ok {
				continue
			}
			seen[ingredient.Name] = struct{}{}
			names = append(names, ingredient.Name)
		}
	}

	sort.Strings(names)
	if len(names) > maxSuggestions {
		names = names[:maxSuggestions]
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// SearchByIngredients selects recipes with at least one ingredient
// matching a desired name, vetoes recipes touching an excluded name,
// and scores survivors by ingredient overlap. Results come back in
// descending match order; ties keep catalog order.
func (matcher *Matcher) SearchByIngredients(ctx context.Context, ingredients []string, exclude []string) ([]RecipeMatch, error) {
	if len(ingredients) == 0 {
		return []RecipeMatch{}, nil
	}

	recipes, err := matcher.catalog.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	matches := []RecipeMatch{}
	for _, recipe := range recipes {
		if len(recipe.Ingredients) == 0 {
			continue
		}
		if recipeTouchesAny(recipe, exclude) {
			continue
		}

		matchingCount := 0
		for _, recipeIngredient := range recipe.Ingredients {
			if nameMatchesAny(recipeIngredient.Name, ingredients) {
				matchingCount++
			}
		}
		if matchingCount == 0 {
			continue
		}

		matches = append(matches, RecipeMatch{
			Recipe:          recipe,
			MatchPercentage: float64(matchingCount) / float64(len(recipe.Ingredients)) * 100,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].MatchPercentage > matches[j].MatchPercentage
	})
	return matches, nil
}

// HasIngredient reports whether an inventory snapshot covers a recipe
// ingredient. The match is a bidirectional case-insensitive prefix
// check, deliberately permissive: "tomato" covers "tomato sauce" and
// "cherry tomatoes" covers "cherry tomato".
func HasIngredient(ingredientName string, inventory []models.InventoryItem) bool {
	loweredName := strings.ToLower(ingredientName)
	for _, item := range inventory {
		loweredItem := strings.ToLower(item.IngredientName)
		if strings.HasPrefix(loweredItem, loweredName) || strings.HasPrefix(loweredName, loweredItem) {
			return true
		}
	}
	return false
}

// MissingIngredients lists the recipe ingredients the inventory does not
// cover, in recipe order.
func MissingIngredients(recipe models.Recipe, inventory []models.InventoryItem) []models.Ingredient {
	missing := []models.Ingredient{}
	for _, ingredient := range recipe.Ingredients {
		if !HasIngredient(ingredient.Name, inventory) {
			missing = append(missing, ingredient)
		}
	}
	return missing
}

func matchesPrefix(name, query string) bool {
	return strings.HasPrefix(strings.ToLower(name), strings.ToLower(query))
}

func nameMatchesAny(name string, queries []string) bool {
	for _, query := range queries {
		if query != "" && matchesPrefix(name, query) {
			return true
		}
	}
	return false
}

func recipeTouchesAny(recipe models.Recipe, queries []string) bool {
	for _, ingredient := range recipe.Ingredients {
		if nameMatchesAny(ingredient.Name, queries) {
			return true
		}
	}
	return false
}
