package services

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/gagan0803/cook-proj/internal/models"
)

// BuildGroceryList aggregates ingredient demand across the given
// recipes and nets it against the inventory snapshot.
//
// Demand is keyed by lower-cased ingredient name. Same-unit demand for
// one name adds up; a different unit forks a separate "<name> (<unit>)"
// line instead of guessing a conversion. Inventory is subtracted only
// when both name key and unit match exactly; a line driven to zero or
// below is dropped. Amounts are rounded to 2 decimals and the result is
// sorted by name.
func BuildGroceryList(recipes []models.Recipe, inventory []models.InventoryItem) []models.GroceryItem {
	demand := make(map[string]*models.GroceryItem)

	for _, recipe := range recipes {
		for _, ingredient := range recipe.Ingredients {
			name := strings.ToLower(ingredient.Name)
			entry, exists := demand[name]
			switch {
			case !exists:
				demand[name] = &models.GroceryItem{Name: name, Amount: ingredient.Amount, Unit: ingredient.Unit}
			case entry.Unit == ingredient.Unit:
				entry.Amount += ingredient.Amount
			default:
				variantKey := fmt.Sprintf("%s (%s)", name, ingredient.Unit)
				if variant, ok := demand[variantKey]; ok {
					variant.Amount += ingredient.Amount
				} else {
					demand[variantKey] = &models.GroceryItem{Name: name, Amount: ingredient.Amount, Unit: ingredient.Unit}
				}
			}
		}
	}

	for _, item := range inventory {
		name := strings.ToLower(item.IngredientName)
		entry, exists := demand[name]
		if !exists {
			continue
		}
		// Inventory in a different unit cannot be netted out safely.
		if entry.Unit != item.Unit {
			continue
		}
		entry.Amount -= item.Quantity
		if entry.Amount <= 0 {
			delete(demand, name)
		}
	}

	groceryList := make([]models.GroceryItem, 0, len(demand))
	for _, entry := range demand {
		entry.Amount = round2(entry.Amount)
		groceryList = append(groceryList, *entry)
	}

	sort.Slice(groceryList, func(i, j int) bool {
		if groceryList[i].Name != groceryList[j].Name {
			return groceryList[i].Name < groceryList[j].Name
		}
		// Unit-variant lines share a name; order them by unit for stable output.
		return groceryList[i].Unit < groceryList[j].Unit
	})
	return groceryList
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}
