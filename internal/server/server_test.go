package server_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gagan0803/cook-proj/internal/catalog"
	"github.com/gagan0803/cook-proj/internal/config"
	"github.com/gagan0803/cook-proj/internal/models"
	"github.com/gagan0803/cook-proj/internal/repository"
	"github.com/gagan0803/cook-proj/internal/server"
	"github.com/gagan0803/cook-proj/internal/services"
	"github.com/gagan0803/cook-proj/internal/testutil"
)

type fixture struct {
	server  *httptest.Server
	catalog *catalog.Store
	cookies []*http.Cookie
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := testutil.NewTestDatabase(t)
	store := testutil.NewTestCatalog(t)

	cfg := config.Config{
		SessionSecret:     "test-secret-test-secret-test-1234",
		ExpiryWarningDays: 3,
		Port:              "0",
	}

	userRepo := repository.NewUserRepository(db)
	authService, err := services.NewAuthService(context.Background(), cfg, userRepo)
	if err != nil {
		t.Fatalf("creating auth service: %v", err)
	}

	srv := server.New(db, store, cfg, authService)
	testServer := httptest.NewServer(srv.Router())
	t.Cleanup(testServer.Close)

	return &fixture{server: testServer, catalog: store}
}

func (f *fixture) request(t *testing.T, method, path string, body interface{}) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encoding request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	request, err := http.NewRequest(method, f.server.URL+path, reader)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	request.Header.Set("Content-Type", "application/json")
	for _, cookie := range f.cookies {
		request.AddCookie(cookie)
	}

	response, err := http.DefaultClient.Do(request)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	if len(response.Cookies()) > 0 {
		f.cookies = response.Cookies()
	}
	return response
}

func decodeBody(t *testing.T, response *http.Response, into interface{}) {
	t.Helper()
	defer response.Body.Close()
	if err := json.NewDecoder(response.Body).Decode(into); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
}

func (f *fixture) registerUser(t *testing.T) models.User {
	t.Helper()
	response := f.request(t, http.MethodPost, "/api/auth/register", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "a-long-password",
	})
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("registering: expected 201, got %d", response.StatusCode)
	}
	var user models.User
	decodeBody(t, response, &user)
	return user
}

func (f *fixture) putRecipe(t *testing.T, recipe models.Recipe) models.Recipe {
	t.Helper()
	created, err := f.catalog.Put(context.Background(), recipe)
	if err != nil {
		t.Fatalf("putting recipe: %v", err)
	}
	return created
}

func TestHealthEndpoint(t *testing.T) {
	f := newFixture(t)

	response := f.request(t, http.MethodGet, "/health", nil)
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", response.StatusCode)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	f := newFixture(t)

	response := f.request(t, http.MethodGet, "/metrics", nil)
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", response.StatusCode)
	}
}

func TestAuthFlow(t *testing.T) {
	f := newFixture(t)

	// Protected routes reject anonymous requests.
	response := f.request(t, http.MethodGet, "/api/inventory", nil)
	response.Body.Close()
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a session, got %d", response.StatusCode)
	}

	user := f.registerUser(t)
	if user.Username != "alice" {
		t.Errorf("expected username 'alice', got %q", user.Username)
	}

	response = f.request(t, http.MethodGet, "/api/auth/me", nil)
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 for /api/auth/me, got %d", response.StatusCode)
	}
	var me models.User
	decodeBody(t, response, &me)
	if me.ID != user.ID {
		t.Errorf("expected user %q, got %q", user.ID, me.ID)
	}

	response = f.request(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "alice@example.com",
		"password": "wrong",
	})
	response.Body.Close()
	if response.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for a bad login, got %d", response.StatusCode)
	}
}

func TestPreferencesRoundTrip(t *testing.T) {
	f := newFixture(t)
	f.registerUser(t)

	response := f.request(t, http.MethodPut, "/api/auth/preferences", models.Preferences{Vegan: true})
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", response.StatusCode)
	}
	response.Body.Close()

	response = f.request(t, http.MethodGet, "/api/auth/preferences", nil)
	var preferences models.Preferences
	decodeBody(t, response, &preferences)
	if !preferences.Vegan || preferences.Vegetarian {
		t.Errorf("unexpected preferences: %+v", preferences)
	}
}

func TestRecipeListHonoursPreferences(t *testing.T) {
	f := newFixture(t)
	f.registerUser(t)

	f.putRecipe(t, models.Recipe{
		Name:        "Lentil Curry",
		Servings:    4,
		Ingredients: []models.Ingredient{{Name: "lentils", Amount: 2, Unit: "cup"}},
		DietaryInfo: map[string]bool{models.DietaryVegan: true},
	})
	f.putRecipe(t, models.Recipe{
		Name:        "Carbonara",
		Servings:    2,
		Ingredients: []models.Ingredient{{Name: "bacon", Amount: 100, Unit: "g"}},
	})

	response := f.request(t, http.MethodPut, "/api/auth/preferences", models.Preferences{Vegan: true})
	response.Body.Close()

	response = f.request(t, http.MethodGet, "/api/recipes", nil)
	var recipes []models.Recipe
	decodeBody(t, response, &recipes)
	if len(recipes) != 1 || recipes[0].Name != "Lentil Curry" {
		t.Errorf("expected only the vegan recipe, got %+v", recipes)
	}
}

func TestRecipeDetailReportsMissingIngredients(t *testing.T) {
	f := newFixture(t)
	f.registerUser(t)

	recipe := f.putRecipe(t, models.Recipe{
		Name:     "Pancakes",
		Servings: 4,
		Ingredients: []models.Ingredient{
			{Name: "flour", Amount: 2, Unit: "cup"},
			{Name: "milk", Amount: 1, Unit: "cup"},
		},
	})

	response := f.request(t, http.MethodPost, "/api/inventory", map[string]interface{}{
		"ingredient_name": "flour",
		"quantity":        5,
		"unit":            "cup",
	})
	response.Body.Close()
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("creating inventory item: expected 201, got %d", response.StatusCode)
	}

	response = f.request(t, http.MethodGet, "/api/recipes/"+recipe.ID, nil)
	var detail struct {
		models.Recipe
		MissingIngredients []models.Ingredient `json:"missing_ingredients"`
		HasAllIngredients  bool                `json:"has_all_ingredients"`
	}
	decodeBody(t, response, &detail)
	if detail.HasAllIngredients {
		t.Error("expected missing milk to be reported")
	}
	if len(detail.MissingIngredients) != 1 || detail.MissingIngredients[0].Name != "milk" {
		t.Errorf("unexpected missing list: %+v", detail.MissingIngredients)
	}
}

func TestInventoryUpdateToZeroDeletes(t *testing.T) {
	f := newFixture(t)
	f.registerUser(t)

	response := f.request(t, http.MethodPost, "/api/inventory", map[string]interface{}{
		"ingredient_name": "tomatoes",
		"quantity":        3,
		"unit":            "pieces",
	})
	var item models.InventoryItem
	decodeBody(t, response, &item)
	if item.Category == "" {
		t.Error("expected a category to be assigned automatically")
	}

	response = f.request(t, http.MethodPut, "/api/inventory/"+item.ID, map[string]interface{}{
		"quantity": 0,
	})
	response.Body.Close()
	if response.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204 for zero quantity, got %d", response.StatusCode)
	}

	response = f.request(t, http.MethodGet, "/api/inventory", nil)
	var items []models.InventoryItem
	decodeBody(t, response, &items)
	if len(items) != 0 {
		t.Errorf("expected empty inventory, got %+v", items)
	}
}

func TestIngredientSuggestionsAndInfo(t *testing.T) {
	f := newFixture(t)
	f.registerUser(t)

	f.putRecipe(t, models.Recipe{
		Name:     "Salad",
		Servings: 2,
		Ingredients: []models.Ingredient{
			{Name: "cherry tomatoes", Amount: 200, Unit: "g"},
		},
	})

	response := f.request(t, http.MethodGet, "/api/inventory/suggestions?q=che", nil)
	var suggestions []string
	decodeBody(t, response, &suggestions)
	if len(suggestions) != 1 || suggestions[0] != "cherry tomatoes" {
		t.Errorf("unexpected suggestions: %v", suggestions)
	}

	response = f.request(t, http.MethodGet, "/api/inventory/ingredient-info?name=cherry", nil)
	var info struct {
		Unit     string `json:"unit"`
		Category string `json:"category"`
	}
	decodeBody(t, response, &info)
	if info.Unit != "g" {
		t.Errorf("expected unit 'g', got %q", info.Unit)
	}
	if info.Category != "produce" {
		t.Errorf("expected category 'produce', got %q", info.Category)
	}
}

func TestMealPlanAndGroceryList(t *testing.T) {
	f := newFixture(t)
	f.registerUser(t)

	recipe := f.putRecipe(t, models.Recipe{
		Name:     "Stir Fry",
		Servings: 2,
		Ingredients: []models.Ingredient{
			{Name: "broccoli", Amount: 1, Unit: "pieces"},
			{Name: "soy sauce", Amount: 2, Unit: "tbsp"},
		},
	})

	response := f.request(t, http.MethodGet, "/api/meal-plan", nil)
	var plan models.MealPlan
	decodeBody(t, response, &plan)
	if plan.ID == "" {
		t.Fatal("expected a plan to be created for the current week")
	}
	if len(plan.Items) != 0 {
		t.Fatalf("expected an empty plan, got %d items", len(plan.Items))
	}

	response = f.request(t, http.MethodPost, "/api/meal-plan/items", map[string]interface{}{
		"recipe_id":   recipe.ID,
		"day_of_week": 2,
		"meal_type":   "dinner",
	})
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("adding item: expected 201, got %d", response.StatusCode)
	}
	var item models.MealPlanItem
	decodeBody(t, response, &item)
	if item.Recipe == nil || item.Recipe.Name != "Stir Fry" {
		t.Error("expected recipe attached to the new item")
	}

	response = f.request(t, http.MethodPost, "/api/meal-plan/items", map[string]interface{}{
		"recipe_id":   recipe.ID,
		"day_of_week": 9,
		"meal_type":   "dinner",
	})
	response.Body.Close()
	if response.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for day 9, got %d", response.StatusCode)
	}

	response = f.request(t, http.MethodGet, fmt.Sprintf("/api/meal-plan/%s/grocery-list", plan.ID), nil)
	var groceries []models.GroceryItem
	decodeBody(t, response, &groceries)
	if len(groceries) != 2 {
		t.Fatalf("expected 2 grocery lines, got %+v", groceries)
	}
	if groceries[0].Name != "broccoli" || groceries[1].Name != "soy sauce" {
		t.Errorf("unexpected grocery list: %+v", groceries)
	}

	response = f.request(t, http.MethodDelete, "/api/meal-plan/items/"+item.ID, nil)
	response.Body.Close()
	if response.StatusCode != http.StatusNoContent {
		t.Errorf("expected 204 removing item, got %d", response.StatusCode)
	}
}

func TestCompleteRecipeDecrementsInventory(t *testing.T) {
	f := newFixture(t)
	f.registerUser(t)

	recipe := f.putRecipe(t, models.Recipe{
		Name:     "Omelette",
		Servings: 2,
		Ingredients: []models.Ingredient{
			{Name: "eggs", Amount: 4, Unit: "pieces"},
		},
	})

	response := f.request(t, http.MethodPost, "/api/inventory", map[string]interface{}{
		"ingredient_name": "eggs",
		"quantity":        10,
		"unit":            "pieces",
	})
	response.Body.Close()

	response = f.request(t, http.MethodPost, "/api/recipes/"+recipe.ID+"/complete", map[string]interface{}{
		"servings": 2,
	})
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("completing: expected 201, got %d", response.StatusCode)
	}
	response.Body.Close()

	response = f.request(t, http.MethodGet, "/api/inventory", nil)
	var items []models.InventoryItem
	decodeBody(t, response, &items)
	if len(items) != 1 || items[0].Quantity != 6 {
		t.Errorf("expected 6 eggs left, got %+v", items)
	}

	response = f.request(t, http.MethodGet, "/api/recipes/completed", nil)
	var history []models.CompletedRecipe
	decodeBody(t, response, &history)
	if len(history) != 1 || history[0].RecipeID != recipe.ID {
		t.Errorf("unexpected history: %+v", history)
	}
}

func TestSearchByIngredients(t *testing.T) {
	f := newFixture(t)
	f.registerUser(t)

	f.putRecipe(t, models.Recipe{
		Name:     "Tomato Soup",
		Servings: 4,
		Ingredients: []models.Ingredient{
			{Name: "tomatoes", Amount: 6, Unit: "pieces"},
			{Name: "onion", Amount: 1, Unit: "pieces"},
		},
	})

	response := f.request(t, http.MethodPost, "/api/recipes/search-by-ingredients", map[string]interface{}{
		"ingredients": []string{"tomato"},
	})
	var matches []struct {
		models.Recipe
		MatchPercentage float64 `json:"match_percentage"`
	}
	decodeBody(t, response, &matches)
	if len(matches) != 1 || matches[0].MatchPercentage != 50 {
		t.Errorf("unexpected matches: %+v", matches)
	}

	response = f.request(t, http.MethodPost, "/api/recipes/search-by-ingredients", map[string]interface{}{
		"ingredients": []string{"tomato"},
		"exclude":     []string{"onion"},
	})
	decodeBody(t, response, &matches)
	if len(matches) != 0 {
		t.Errorf("expected exclusion to veto the recipe, got %+v", matches)
	}
}

func TestICalFeedRequiresToken(t *testing.T) {
	f := newFixture(t)

	response := f.request(t, http.MethodGet, "/ical", nil)
	response.Body.Close()
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a token, got %d", response.StatusCode)
	}

	response = f.request(t, http.MethodGet, "/ical?token=not-a-real-token", nil)
	response.Body.Close()
	if response.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for an unknown token, got %d", response.StatusCode)
	}
}

func TestICalFeedWithToken(t *testing.T) {
	db := testutil.NewTestDatabase(t)
	store := testutil.NewTestCatalog(t)
	ctx := context.Background()

	cfg := config.Config{SessionSecret: "test-secret-test-secret-test-1234", ExpiryWarningDays: 3}
	userRepo := repository.NewUserRepository(db)
	authService, err := services.NewAuthService(ctx, cfg, userRepo)
	if err != nil {
		t.Fatalf("creating auth service: %v", err)
	}

	user, err := userRepo.Create(ctx, models.User{
		Username:  "calcook",
		Email:     "cal@example.com",
		FeedToken: "cal-feed-token",
	})
	if err != nil {
		t.Fatalf("creating user: %v", err)
	}

	recipe, err := store.Put(ctx, models.Recipe{
		Name:        "Stew",
		Servings:    6,
		Ingredients: []models.Ingredient{{Name: "beef", Amount: 1, Unit: "kg"}},
	})
	if err != nil {
		t.Fatalf("putting recipe: %v", err)
	}

	mealPlanRepo := repository.NewMealPlanRepository(db)
	plan, err := mealPlanRepo.GetOrCreateWeek(ctx, user.ID, "2026-08-31")
	if err != nil {
		t.Fatalf("creating plan: %v", err)
	}
	if _, err := mealPlanRepo.AddItem(ctx, plan.ID, recipe.ID, 2, models.MealTypeDinner); err != nil {
		t.Fatalf("adding item: %v", err)
	}

	srv := server.New(db, store, cfg, authService)
	testServer := httptest.NewServer(srv.Router())
	defer testServer.Close()

	response, err := http.Get(testServer.URL + "/ical?token=cal-feed-token")
	if err != nil {
		t.Fatalf("fetching feed: %v", err)
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", response.StatusCode)
	}
	if contentType := response.Header.Get("Content-Type"); !strings.HasPrefix(contentType, "text/calendar") {
		t.Errorf("expected text/calendar, got %q", contentType)
	}

	var body bytes.Buffer
	if _, err := body.ReadFrom(response.Body); err != nil {
		t.Fatalf("reading feed: %v", err)
	}
	feed := body.String()
	if !strings.Contains(feed, "BEGIN:VCALENDAR") {
		t.Error("expected a VCALENDAR document")
	}
	if !strings.Contains(feed, "[Dinner] Stew") {
		t.Errorf("expected the meal event in the feed, got:\n%s", feed)
	}
	// Monday plus two days.
	if !strings.Contains(feed, "20260902") {
		t.Error("expected the event on the plan's Wednesday")
	}
}
