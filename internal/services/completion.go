package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gagan0803/cook-proj/internal/catalog"
	"github.com/gagan0803/cook-proj/internal/models"
	"github.com/gagan0803/cook-proj/internal/repository"
)

// CompletionService records cooked recipes and reconciles the cook's
// inventory with what the recipe consumed.
type CompletionService struct {
	catalog        *catalog.Store
	inventoryRepo  repository.InventoryRepository
	completionRepo repository.CompletionRepository
}

func NewCompletionService(
	catalogStore *catalog.Store,
	inventoryRepo repository.InventoryRepository,
	completionRepo repository.CompletionRepository,
) *CompletionService {
	return &CompletionService{
		catalog:        catalogStore,
		inventoryRepo:  inventoryRepo,
		completionRepo: completionRepo,
	}
}

// CompleteRecipe records the completion event and decrements matched
// inventory by each ingredient amount scaled by servings made over the
// recipe's base servings. Quantities never go negative: consuming more
// than is on hand deletes the inventory row.
func (service *CompletionService) CompleteRecipe(ctx context.Context, userID string, recipeID string, servings float64) (models.CompletedRecipe, error) {
	recipe, err := service.catalog.FindByID(ctx, recipeID)
	if err != nil {
		return models.CompletedRecipe{}, err
	}
	if servings <= 0 {
		servings = 1
	}

	scale := 1.0
	if recipe.Servings > 0 {
		scale = servings / float64(recipe.Servings)
	}

	items, err := service.inventoryRepo.FindByUser(ctx, userID)
	if err != nil {
		return models.CompletedRecipe{}, fmt.Errorf("loading inventory for reconciliation: %w", err)
	}

	for _, ingredient := range recipe.Ingredients {
		consumed := ingredient.Amount * scale
		if consumed <= 0 {
			continue
		}

		index := findMatchingItem(ingredient.Name, items)
		if index < 0 {
			continue
		}

		remaining := round2(items[index].Quantity - consumed)
		if remaining <= 0 {
			if err := service.inventoryRepo.Delete(ctx, items[index].ID); err != nil {
				slog.Error("deleting consumed inventory item", "item", items[index].IngredientName, "error", err)
				continue
			}
			items[index].Quantity = 0
		} else {
			if err := service.inventoryRepo.UpdateQuantity(ctx, items[index].ID, remaining); err != nil {
				slog.Error("updating consumed inventory item", "item", items[index].IngredientName, "error", err)
				continue
			}
			items[index].Quantity = remaining
		}
	}

	completion := models.CompletedRecipe{
		UserID:       userID,
		RecipeID:     recipeID,
		ServingsMade: servings,
	}
	created, err := service.completionRepo.Create(ctx, completion)
	if err != nil {
		return models.CompletedRecipe{}, err
	}
	created.Recipe = &recipe
	return created, nil
}

// History returns the user's completions, newest first, with recipe
// details resolved where the recipe still exists in the catalog.
func (service *CompletionService) History(ctx context.Context, userID string) ([]models.CompletedRecipe, error) {
	completions, err := service.completionRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i := range completions {
		recipe, err := service.catalog.FindByID(ctx, completions[i].RecipeID)
		if err != nil {
			continue
		}
		completions[i].Recipe = &recipe
	}
	return completions, nil
}

// findMatchingItem picks the first inventory row, in name order, whose
// name matches the ingredient under the bidirectional prefix rule. Rows
// already drained to zero by an earlier ingredient are skipped.
func findMatchingItem(ingredientName string, items []models.InventoryItem) int {
	loweredName := strings.ToLower(ingredientName)
	for i, item := range items {
		if item.Quantity <= 0 {
			continue
		}
		loweredItem := strings.ToLower(item.IngredientName)
		if strings.HasPrefix(loweredItem, loweredName) || strings.HasPrefix(loweredName, loweredItem) {
			return i
		}
	}
	return -1
}
