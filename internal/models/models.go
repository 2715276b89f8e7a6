package models

import "time"

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeDinner    MealType = "dinner"
	MealTypeSnack     MealType = "snack"
	MealTypeDessert   MealType = "dessert"
)

func (mealType MealType) Valid() bool {
	switch mealType {
	case MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeSnack, MealTypeDessert:
		return true
	}
	return false
}

// Dietary tags shared by recipe documents and user preference profiles.
const (
	DietaryVegetarian = "vegetarian"
	DietaryVegan      = "vegan"
	DietaryGlutenFree = "gluten_free"
	DietaryDairyFree  = "dairy_free"
)

type Ingredient struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

type Recipe struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Ingredients  []Ingredient    `json:"ingredients"`
	Instructions []string        `json:"instructions,omitempty"`
	PrepTime     int             `json:"prep_time"`
	CookTime     int             `json:"cook_time"`
	Difficulty   Difficulty      `json:"difficulty"`
	Servings     int             `json:"servings"`
	ImageURL     string          `json:"image_url,omitempty"`
	DietaryInfo  map[string]bool `json:"dietary_info"`
}

func (recipe Recipe) TotalTime() int {
	return recipe.PrepTime + recipe.CookTime
}

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	OIDCSubject  *string   `json:"-"`
	FeedToken    string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type Preferences struct {
	Vegetarian bool `json:"vegetarian"`
	Vegan      bool `json:"vegan"`
	GlutenFree bool `json:"gluten_free"`
	DairyFree  bool `json:"dairy_free"`
}

// Filters returns the preference profile as a dietary filter set,
// carrying only the tags the user switched on.
func (preferences Preferences) Filters() map[string]bool {
	filters := make(map[string]bool)
	if preferences.Vegetarian {
		filters[DietaryVegetarian] = true
	}
	if preferences.Vegan {
		filters[DietaryVegan] = true
	}
	if preferences.GlutenFree {
		filters[DietaryGlutenFree] = true
	}
	if preferences.DairyFree {
		filters[DietaryDairyFree] = true
	}
	return filters
}

type InventoryItem struct {
	ID             string     `json:"id"`
	UserID         string     `json:"user_id"`
	IngredientName string     `json:"ingredient_name"`
	Category       string     `json:"category"`
	Quantity       float64    `json:"quantity"`
	Unit           string     `json:"unit"`
	ExpiryDate     *time.Time `json:"expiry_date,omitempty"`
	AddedAt        time.Time  `json:"added_at"`
}

type MealPlan struct {
	ID            string         `json:"id"`
	UserID        string         `json:"user_id"`
	WeekStartDate string         `json:"week_start_date"`
	Items         []MealPlanItem `json:"items"`
}

type MealPlanItem struct {
	ID         string   `json:"id"`
	MealPlanID string   `json:"meal_plan_id"`
	RecipeID   string   `json:"recipe_id"`
	DayOfWeek  int      `json:"day_of_week"`
	MealType   MealType `json:"meal_type"`
	Recipe     *Recipe  `json:"recipe,omitempty"`
}

type CompletedRecipe struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	RecipeID     string    `json:"recipe_id"`
	ServingsMade float64   `json:"servings_made"`
	CompletedAt  time.Time `json:"completed_at"`
	Recipe       *Recipe   `json:"recipe,omitempty"`
}

// GroceryItem is a derived shopping-list line. It is computed on demand
// and never persisted.
type GroceryItem struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}
