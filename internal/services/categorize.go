package services

import (
	"context"
	"strings"

	"github.com/gagan0803/cook-proj/internal/catalog"
	"github.com/gagan0803/cook-proj/internal/repository"
)

const CategoryOther = "other"

// Classifier suggests a grocery category for an ingredient name. The
// default implementation is a keyword table; anything smarter can be
// swapped in at construction time.
type Classifier interface {
	Categorize(ctx context.Context, ingredientName string) string
}

type categoryKeywords struct {
	category string
	keywords []string
}

type KeywordClassifier struct {
	table []categoryKeywords
}

// NewKeywordClassifier builds the stock keyword classifier. The table is
// a hand-maintained heuristic with no authoritative source; unknown
// ingredients land in "other".
func NewKeywordClassifier() *KeywordClassifier {
	return &KeywordClassifier{table: []categoryKeywords{
		{"produce", []string{"vegetable", "fruit", "tomato", "carrot", "lettuce", "apple", "banana", "orange", "onion", "garlic"}},
		{"meat", []string{"beef", "chicken", "pork", "lamb", "turkey", "meat", "fish", "seafood", "steak", "bacon"}},
		{"dairy", []string{"milk", "cheese", "yogurt", "cream", "butter", "egg"}},
		{"bakery", []string{"bread", "bun", "cake", "pastry", "dough", "roll"}},
		{"pantry", []string{"rice", "pasta", "bean", "lentil", "flour", "sugar", "oil", "vinegar", "sauce"}},
		{"frozen", []string{"frozen", "ice"}},
		{"spices", []string{"spice", "herb", "salt", "pepper", "cinnamon", "oregano", "basil", "thyme"}},
		{"beverages", []string{"water", "juice", "soda", "wine", "beer", "coffee", "tea"}},
	}}
}

func (classifier *KeywordClassifier) Categorize(ctx context.Context, ingredientName string) string {
	loweredName := strings.ToLower(ingredientName)
	for _, entry := range classifier.table {
		for _, keyword := range entry.keywords {
			if strings.Contains(loweredName, keyword) {
				return entry.category
			}
		}
	}
	return CategoryOther
}

// historyClassifier prefers how an ingredient was categorised before,
// falling back to another classifier for names never shelved.
type historyClassifier struct {
	inventoryRepo repository.InventoryRepository
	fallback      Classifier
}

func NewHistoryClassifier(inventoryRepo repository.InventoryRepository, fallback Classifier) Classifier {
	return &historyClassifier{inventoryRepo: inventoryRepo, fallback: fallback}
}

func (classifier *historyClassifier) Categorize(ctx context.Context, ingredientName string) string {
	category, err := classifier.inventoryRepo.FindCategoryByNamePrefix(ctx, ingredientName)
	if err == nil && category != "" {
		return category
	}
	return classifier.fallback.Categorize(ctx, ingredientName)
}

// IngredientInfo is the autocomplete metadata for an ingredient name.
type IngredientInfo struct {
	Unit     string `json:"unit"`
	Category string `json:"category"`
}

// IngredientInfoService resolves the suggested unit (from the catalog's
// usage of the ingredient) and category (from the classifier).
type IngredientInfoService struct {
	catalog    *catalog.Store
	classifier Classifier
}

func NewIngredientInfoService(catalogStore *catalog.Store, classifier Classifier) *IngredientInfoService {
	return &IngredientInfoService{catalog: catalogStore, classifier: classifier}
}

func (service *IngredientInfoService) Lookup(ctx context.Context, ingredientName string) (IngredientInfo, error) {
	info := IngredientInfo{Category: service.classifier.Categorize(ctx, ingredientName)}

	recipes, err := service.catalog.FindAll(ctx)
	if err != nil {
		return IngredientInfo{}, err
	}
	for _, recipe := range recipes {
		for _, ingredient := range recipe.Ingredients {
			if matchesPrefix(ingredient.Name, ingredientName) {
				info.Unit = ingredient.Unit
				return info, nil
			}
		}
	}
	return info, nil
}
