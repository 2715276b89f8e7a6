package catalog

import (
	"context"
	"fmt"

	"github.com/gagan0803/cook-proj/internal/models"
)

// SeedIfEmpty loads the starter recipe set into an empty catalog so a
// fresh install has something to browse and plan with.
func (store *Store) SeedIfEmpty(ctx context.Context) (int, error) {
	count, err := store.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	for _, recipe := range StarterRecipes() {
		if _, err := store.Put(ctx, recipe); err != nil {
			return 0, fmt.Errorf("seeding recipe %q: %w", recipe.Name, err)
		}
	}
	return len(StarterRecipes()), nil
}

func StarterRecipes() []models.Recipe {
	return []models.Recipe{
		{
			ID:          "seed-spaghetti-carbonara",
			Name:        "Spaghetti Carbonara",
			Description: "Roman pasta with eggs, pancetta and pecorino.",
			Ingredients: []models.Ingredient{
				{Name: "spaghetti", Amount: 400, Unit: "g"},
				{Name: "pancetta", Amount: 150, Unit: "g"},
				{Name: "egg", Amount: 4, Unit: "whole"},
				{Name: "pecorino cheese", Amount: 100, Unit: "g"},
				{Name: "black pepper", Amount: 1, Unit: "tsp"},
			},
			Instructions: []string{
				"Boil the spaghetti in salted water.",
				"Crisp the pancetta, whisk eggs with cheese, combine off the heat.",
			},
			PrepTime:   10,
			CookTime:   15,
			Difficulty: models.DifficultyMedium,
			Servings:   4,
			DietaryInfo: map[string]bool{
				models.DietaryVegetarian: false,
				models.DietaryVegan:      false,
				models.DietaryGlutenFree: false,
				models.DietaryDairyFree:  false,
			},
		},
		{
			ID:          "seed-vegetable-stir-fry",
			Name:        "Vegetable Stir Fry",
			Description: "Quick weeknight stir fry over rice.",
			Ingredients: []models.Ingredient{
				{Name: "rice", Amount: 2, Unit: "cup"},
				{Name: "broccoli", Amount: 1, Unit: "whole"},
				{Name: "carrot", Amount: 2, Unit: "whole"},
				{Name: "soy sauce", Amount: 3, Unit: "tbsp"},
				{Name: "garlic", Amount: 2, Unit: "clove"},
			},
			Instructions: []string{
				"Cook the rice.",
				"Stir-fry the vegetables with garlic, finish with soy sauce.",
			},
			PrepTime:   15,
			CookTime:   10,
			Difficulty: models.DifficultyEasy,
			Servings:   2,
			DietaryInfo: map[string]bool{
				models.DietaryVegetarian: true,
				models.DietaryVegan:      true,
				models.DietaryGlutenFree: false,
				models.DietaryDairyFree:  true,
			},
		},
		{
			ID:          "seed-pancakes",
			Name:        "Buttermilk Pancakes",
			Description: "Fluffy breakfast pancakes.",
			Ingredients: []models.Ingredient{
				{Name: "flour", Amount: 2, Unit: "cup"},
				{Name: "buttermilk", Amount: 2, Unit: "cup"},
				{Name: "egg", Amount: 2, Unit: "whole"},
				{Name: "butter", Amount: 3, Unit: "tbsp"},
				{Name: "sugar", Amount: 2, Unit: "tbsp"},
			},
			Instructions: []string{
				"Whisk dry and wet separately, fold together, fry in butter.",
			},
			PrepTime:   10,
			CookTime:   15,
			Difficulty: models.DifficultyEasy,
			Servings:   4,
			DietaryInfo: map[string]bool{
				models.DietaryVegetarian: true,
				models.DietaryVegan:      false,
				models.DietaryGlutenFree: false,
				models.DietaryDairyFree:  false,
			},
		},
		{
			ID:          "seed-lentil-curry",
			Name:        "Red Lentil Curry",
			Description: "Coconut red lentil curry.",
			Ingredients: []models.Ingredient{
				{Name: "red lentils", Amount: 1.5, Unit: "cup"},
				{Name: "coconut milk", Amount: 400, Unit: "ml"},
				{Name: "onion", Amount: 1, Unit: "whole"},
				{Name: "garlic", Amount: 3, Unit: "clove"},
				{Name: "curry powder", Amount: 2, Unit: "tbsp"},
			},
			Instructions: []string{
				"Soften the onion and garlic, bloom the spices.",
				"Simmer lentils in coconut milk until tender.",
			},
			PrepTime:   10,
			CookTime:   30,
			Difficulty: models.DifficultyEasy,
			Servings:   4,
			DietaryInfo: map[string]bool{
				models.DietaryVegetarian: true,
				models.DietaryVegan:      true,
				models.DietaryGlutenFree: true,
				models.DietaryDairyFree:  true,
			},
		},
		{
			ID:          "seed-beef-stew",
			Name:        "Slow Beef Stew",
			Description: "Sunday stew with root vegetables.",
			Ingredients: []models.Ingredient{
				{Name: "beef chuck", Amount: 1, Unit: "kg"},
				{Name: "potato", Amount: 4, Unit: "whole"},
				{Name: "carrot", Amount: 3, Unit: "whole"},
				{Name: "onion", Amount: 2, Unit: "whole"},
				{Name: "beef stock", Amount: 1, Unit: "l"},
			},
			Instructions: []string{
				"Brown the beef, sweat the onions.",
				"Simmer everything low and slow until the beef falls apart.",
			},
			PrepTime:   20,
			CookTime:   150,
			Difficulty: models.DifficultyHard,
			Servings:   6,
			DietaryInfo: map[string]bool{
				models.DietaryVegetarian: false,
				models.DietaryVegan:      false,
				models.DietaryGlutenFree: true,
				models.DietaryDairyFree:  true,
			},
		},
		{
			ID:          "seed-greek-salad",
			Name:        "Greek Salad",
			Description: "Tomato, cucumber and feta salad.",
			Ingredients: []models.Ingredient{
				{Name: "tomato", Amount: 4, Unit: "whole"},
				{Name: "cucumber", Amount: 1, Unit: "whole"},
				{Name: "feta cheese", Amount: 200, Unit: "g"},
				{Name: "olive oil", Amount: 3, Unit: "tbsp"},
				{Name: "red onion", Amount: 0.5, Unit: "whole"},
			},
			PrepTime:   15,
			CookTime:   0,
			Difficulty: models.DifficultyEasy,
			Servings:   2,
			DietaryInfo: map[string]bool{
				models.DietaryVegetarian: true,
				models.DietaryVegan:      false,
				models.DietaryGlutenFree: true,
				models.DietaryDairyFree:  false,
			},
		},
	}
}
