package services_test

import (
	"testing"

	"github.com/gagan0803/cook-proj/internal/models"
	"github.com/gagan0803/cook-proj/internal/services"
)

func TestFilterByDietary(t *testing.T) {
	recipes := []models.Recipe{
		{Name: "Lentil Curry", DietaryInfo: map[string]bool{
			models.DietaryVegetarian: true, models.DietaryVegan: true, models.DietaryGlutenFree: true,
		}},
		{Name: "Carbonara", DietaryInfo: map[string]bool{}},
		{Name: "Greek Salad", DietaryInfo: map[string]bool{
			models.DietaryVegetarian: true, models.DietaryGlutenFree: true,
		}},
	}

	vegetarian := services.FilterByDietary(recipes, map[string]bool{models.DietaryVegetarian: true})
	if len(vegetarian) != 2 {
		t.Fatalf("expected 2 vegetarian recipes, got %d", len(vegetarian))
	}

	vegan := services.FilterByDietary(recipes, map[string]bool{models.DietaryVegan: true})
	if len(vegan) != 1 || vegan[0].Name != "Lentil Curry" {
		t.Fatalf("expected only Lentil Curry, got %+v", vegan)
	}

	both := services.FilterByDietary(recipes, map[string]bool{
		models.DietaryVegetarian: true, models.DietaryGlutenFree: true,
	})
	if len(both) != 2 {
		t.Errorf("expected 2 recipes satisfying both tags, got %d", len(both))
	}

	all := services.FilterByDietary(recipes, nil)
	if len(all) != 3 {
		t.Errorf("expected empty filters to pass everything, got %d", len(all))
	}
}

func TestFilterByTime(t *testing.T) {
	recipes := []models.Recipe{
		{Name: "Quick", PrepTime: 5, CookTime: 10},
		{Name: "Slow", PrepTime: 30, CookTime: 120},
	}

	quick := services.FilterByTime(recipes, 30)
	if len(quick) != 1 || quick[0].Name != "Quick" {
		t.Fatalf("expected only Quick, got %+v", quick)
	}

	boundary := services.FilterByTime(recipes, 15)
	if len(boundary) != 1 {
		t.Errorf("expected total time equal to budget to pass, got %d recipes", len(boundary))
	}

	all := services.FilterByTime(recipes, 0)
	if len(all) != 2 {
		t.Errorf("expected zero budget to pass everything, got %d", len(all))
	}
}

func TestFilterByDifficulty(t *testing.T) {
	recipes := []models.Recipe{
		{Name: "Toast", Difficulty: models.DifficultyEasy},
		{Name: "Souffle", Difficulty: models.DifficultyHard},
	}

	easy := services.FilterByDifficulty(recipes, models.DifficultyEasy)
	if len(easy) != 1 || easy[0].Name != "Toast" {
		t.Fatalf("expected only Toast, got %+v", easy)
	}

	all := services.FilterByDifficulty(recipes, "")
	if len(all) != 2 {
		t.Errorf("expected empty difficulty to pass everything, got %d", len(all))
	}
}
