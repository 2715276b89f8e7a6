package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/gagan0803/cook-proj/internal/catalog"
	"github.com/gagan0803/cook-proj/internal/models"
	"github.com/gagan0803/cook-proj/internal/repository"
	"github.com/gagan0803/cook-proj/internal/services"
	"github.com/gagan0803/cook-proj/internal/testutil"
)

var completionUserCounter int

func newCompletionFixture(t *testing.T) (*services.CompletionService, *catalog.Store, repository.InventoryRepository, string) {
	t.Helper()

	db := testutil.NewTestDatabase(t)
	store := testutil.NewTestCatalog(t)

	userRepo := repository.NewUserRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	completionRepo := repository.NewCompletionRepository(db)

	completionUserCounter++
	user, err := userRepo.Create(context.Background(), models.User{
		Username:  fmt.Sprintf("chef%d", completionUserCounter),
		Email:     fmt.Sprintf("chef%d@example.com", completionUserCounter),
		FeedToken: fmt.Sprintf("chef-feed-%d", completionUserCounter),
	})
	if err != nil {
		t.Fatalf("creating user: %v", err)
	}

	service := services.NewCompletionService(store, inventoryRepo, completionRepo)
	return service, store, inventoryRepo, user.ID
}

func addInventory(t *testing.T, repo repository.InventoryRepository, userID, name string, quantity float64, unit string) models.InventoryItem {
	t.Helper()
	item, err := repo.Create(context.Background(), models.InventoryItem{
		UserID:         userID,
		IngredientName: name,
		Quantity:       quantity,
		Unit:           unit,
	})
	if err != nil {
		t.Fatalf("creating inventory item: %v", err)
	}
	return item
}

func TestCompleteRecipe_DecrementsInventory(t *testing.T) {
	service, store, inventoryRepo, userID := newCompletionFixture(t)
	ctx := context.Background()

	recipe, err := store.Put(ctx, models.Recipe{
		Name:     "Pancakes",
		Servings: 4,
		Ingredients: []models.Ingredient{
			{Name: "flour", Amount: 2, Unit: "cup"},
			{Name: "milk", Amount: 1, Unit: "cup"},
		},
	})
	if err != nil {
		t.Fatalf("putting recipe: %v", err)
	}

	flour := addInventory(t, inventoryRepo, userID, "flour", 5, "cup")
	milk := addInventory(t, inventoryRepo, userID, "milk", 3, "cup")

	completion, err := service.CompleteRecipe(ctx, userID, recipe.ID, 4)
	if err != nil {
		t.Fatalf("completing recipe: %v", err)
	}
	if completion.ServingsMade != 4 {
		t.Errorf("expected 4 servings recorded, got %v", completion.ServingsMade)
	}
	if completion.Recipe == nil || completion.Recipe.Name != "Pancakes" {
		t.Error("expected recipe attached to completion")
	}

	remaining, err := inventoryRepo.FindByID(ctx, flour.ID)
	if err != nil {
		t.Fatalf("finding flour: %v", err)
	}
	if remaining.Quantity != 3 {
		t.Errorf("expected 3 cups of flour left, got %v", remaining.Quantity)
	}

	remaining, err = inventoryRepo.FindByID(ctx, milk.ID)
	if err != nil {
		t.Fatalf("finding milk: %v", err)
	}
	if remaining.Quantity != 2 {
		t.Errorf("expected 2 cups of milk left, got %v", remaining.Quantity)
	}
}

func TestCompleteRecipe_ScalesByServings(t *testing.T) {
	service, store, inventoryRepo, userID := newCompletionFixture(t)
	ctx := context.Background()

	recipe, err := store.Put(ctx, models.Recipe{
		Name:     "Curry",
		Servings: 4,
		Ingredients: []models.Ingredient{
			{Name: "lentils", Amount: 2, Unit: "cup"},
		},
	})
	if err != nil {
		t.Fatalf("putting recipe: %v", err)
	}

	lentils := addInventory(t, inventoryRepo, userID, "lentils", 5, "cup")

	// Half the base servings consumes half the amounts.
	if _, err := service.CompleteRecipe(ctx, userID, recipe.ID, 2); err != nil {
		t.Fatalf("completing recipe: %v", err)
	}

	remaining, err := inventoryRepo.FindByID(ctx, lentils.ID)
	if err != nil {
		t.Fatalf("finding lentils: %v", err)
	}
	if remaining.Quantity != 4 {
		t.Errorf("expected 4 cups left, got %v", remaining.Quantity)
	}
}

func TestCompleteRecipe_OverconsumptionDeletesRow(t *testing.T) {
	service, store, inventoryRepo, userID := newCompletionFixture(t)
	ctx := context.Background()

	recipe, err := store.Put(ctx, models.Recipe{
		Name:     "Bread",
		Servings: 1,
		Ingredients: []models.Ingredient{
			{Name: "flour", Amount: 4, Unit: "cup"},
		},
	})
	if err != nil {
		t.Fatalf("putting recipe: %v", err)
	}

	flour := addInventory(t, inventoryRepo, userID, "flour", 1, "cup")

	if _, err := service.CompleteRecipe(ctx, userID, recipe.ID, 1); err != nil {
		t.Fatalf("completing recipe: %v", err)
	}

	if _, err := inventoryRepo.FindByID(ctx, flour.ID); err == nil {
		t.Error("expected drained inventory row to be deleted")
	}
}

func TestCompleteRecipe_IgnoresUnmatchedIngredients(t *testing.T) {
	service, store, inventoryRepo, userID := newCompletionFixture(t)
	ctx := context.Background()

	recipe, err := store.Put(ctx, models.Recipe{
		Name:     "Omelette",
		Servings: 1,
		Ingredients: []models.Ingredient{
			{Name: "eggs", Amount: 3, Unit: "pieces"},
		},
	})
	if err != nil {
		t.Fatalf("putting recipe: %v", err)
	}

	butter := addInventory(t, inventoryRepo, userID, "butter", 250, "g")

	if _, err := service.CompleteRecipe(ctx, userID, recipe.ID, 1); err != nil {
		t.Fatalf("completing recipe: %v", err)
	}

	remaining, err := inventoryRepo.FindByID(ctx, butter.ID)
	if err != nil {
		t.Fatalf("finding butter: %v", err)
	}
	if remaining.Quantity != 250 {
		t.Errorf("expected butter untouched, got %v", remaining.Quantity)
	}
}

func TestCompleteRecipe_UnknownRecipe(t *testing.T) {
	service, _, _, userID := newCompletionFixture(t)

	_, err := service.CompleteRecipe(context.Background(), userID, "missing", 1)
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected catalog.ErrNotFound, got %v", err)
	}
}

func TestHistory_ResolvesRecipes(t *testing.T) {
	service, store, _, userID := newCompletionFixture(t)
	ctx := context.Background()

	recipe, err := store.Put(ctx, models.Recipe{
		Name:     "Stew",
		Servings: 6,
		Ingredients: []models.Ingredient{
			{Name: "beef", Amount: 1, Unit: "kg"},
		},
	})
	if err != nil {
		t.Fatalf("putting recipe: %v", err)
	}

	if _, err := service.CompleteRecipe(ctx, userID, recipe.ID, 6); err != nil {
		t.Fatalf("completing recipe: %v", err)
	}

	history, err := service.History(ctx, userID)
	if err != nil {
		t.Fatalf("loading history: %v", err)
	}
	if len(history) != 1 {
		t.Fatalf("expected 1 completion, got %d", len(history))
	}
	if history[0].Recipe == nil || history[0].Recipe.Name != "Stew" {
		t.Error("expected recipe resolved in history")
	}
}
