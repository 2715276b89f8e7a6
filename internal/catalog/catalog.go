package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/dgraph-io/badger/v3"
	"github.com/gagan0803/cook-proj/internal/models"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("recipe not found")

const recipeKeyPrefix = "recipe:"

// Store is the recipe document store. Recipes are kept as JSON documents
// in BadgerDB and validated at the storage boundary, so malformed
// documents never reach the matching and filtering logic.
type Store struct {
	db *badger.DB
}

func Open(dataDir string) (*Store, error) {
	options := badger.DefaultOptions(dataDir)
	options.Logger = nil

	db, err := badger.Open(options)
	if err != nil {
		return nil, fmt.Errorf("opening catalog: %w", err)
	}
	return &Store{db: db}, nil
}

// OpenInMemory opens a catalog backed by memory only. Used by tests.
func OpenInMemory() (*Store, error) {
	options := badger.DefaultOptions("").WithInMemory(true)
	options.Logger = nil

	db, err := badger.Open(options)
	if err != nil {
		return nil, fmt.Errorf("opening in-memory catalog: %w", err)
	}
	return &Store{db: db}, nil
}

func (store *Store) Close() error {
	return store.db.Close()
}

func (store *Store) Put(ctx context.Context, recipe models.Recipe) (models.Recipe, error) {
	if recipe.ID == "" {
		recipe.ID = uuid.New().String()
	}
	if err := validateRecipe(recipe); err != nil {
		return models.Recipe{}, err
	}
	if recipe.Ingredients == nil {
		recipe.Ingredients = []models.Ingredient{}
	}
	if recipe.DietaryInfo == nil {
		recipe.DietaryInfo = map[string]bool{}
	}

	document, err := json.Marshal(recipe)
	if err != nil {
		return models.Recipe{}, fmt.Errorf("marshalling recipe: %w", err)
	}

	err = store.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(recipeKeyPrefix+recipe.ID), document)
	})
	if err != nil {
		return models.Recipe{}, fmt.Errorf("storing recipe: %w", err)
	}
	return recipe, nil
}

func (store *Store) FindByID(ctx context.Context, id string) (models.Recipe, error) {
	var recipe models.Recipe
	err := store.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(recipeKeyPrefix + id))
		if err != nil {
			return err
		}
		return item.Value(func(value []byte) error {
			return json.Unmarshal(value, &recipe)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return models.Recipe{}, ErrNotFound
	}
	if err != nil {
		return models.Recipe{}, fmt.Errorf("finding recipe by id: %w", err)
	}
	if err := validateRecipe(recipe); err != nil {
		return models.Recipe{}, fmt.Errorf("invalid recipe document %s: %w", id, err)
	}
	return recipe, nil
}

func (store *Store) FindAll(ctx context.Context) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := store.db.View(func(txn *badger.Txn) error {
		iterator := txn.NewIterator(badger.DefaultIteratorOptions)
		defer iterator.Close()

		prefix := []byte(recipeKeyPrefix)
		for iterator.Seek(prefix); iterator.ValidForPrefix(prefix); iterator.Next() {
			item := iterator.Item()
			err := item.Value(func(value []byte) error {
				var recipe models.Recipe
				if err := json.Unmarshal(value, &recipe); err != nil {
					slog.Warn("skipping malformed recipe document", "key", string(item.Key()), "error", err)
					return nil
				}
				if err := validateRecipe(recipe); err != nil {
					slog.Warn("skipping invalid recipe document", "key", string(item.Key()), "error", err)
					return nil
				}
				recipes = append(recipes, recipe)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing recipes: %w", err)
	}

	sort.Slice(recipes, func(i, j int) bool {
		return recipes[i].Name < recipes[j].Name
	})
	return recipes, nil
}

// SearchByName ranks name-prefix hits above name-substring hits above
// description or ingredient hits. Equal ranks keep alphabetical order.
func (store *Store) SearchByName(ctx context.Context, term string) ([]models.Recipe, error) {
	if term == "" {
		return nil, nil
	}

	recipes, err := store.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	loweredTerm := strings.ToLower(term)
	type rankedRecipe struct {
		recipe models.Recipe
		rank   int
	}

	var ranked []rankedRecipe
	for _, recipe := range recipes {
		rank := relevance(recipe, loweredTerm)
		if rank > 0 {
			ranked = append(ranked, rankedRecipe{recipe: recipe, rank: rank})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].rank > ranked[j].rank
	})

	results := make([]models.Recipe, len(ranked))
	for i, entry := range ranked {
		results[i] = entry.recipe
	}
	return results, nil
}

func relevance(recipe models.Recipe, loweredTerm string) int {
	loweredName := strings.ToLower(recipe.Name)
	if strings.HasPrefix(loweredName, loweredTerm) {
		return 3
	}
	if strings.Contains(loweredName, loweredTerm) {
		return 2
	}
	if strings.Contains(strings.ToLower(recipe.Description), loweredTerm) {
		return 1
	}
	for _, ingredient := range recipe.Ingredients {
		if strings.Contains(strings.ToLower(ingredient.Name), loweredTerm) {
			return 1
		}
	}
	return 0
}

func (store *Store) Delete(ctx context.Context, id string) error {
	err := store.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(recipeKeyPrefix + id))
	})
	if err != nil {
		return fmt.Errorf("deleting recipe: %w", err)
	}
	return nil
}

func (store *Store) Count(ctx context.Context) (int, error) {
	count := 0
	err := store.db.View(func(txn *badger.Txn) error {
		options := badger.DefaultIteratorOptions
		options.PrefetchValues = false
		iterator := txn.NewIterator(options)
		defer iterator.Close()

		prefix := []byte(recipeKeyPrefix)
		for iterator.Seek(prefix); iterator.ValidForPrefix(prefix); iterator.Next() {
			count++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("counting recipes: %w", err)
	}
	return count, nil
}

func validateRecipe(recipe models.Recipe) error {
	if recipe.ID == "" {
		return errors.New("recipe id is required")
	}
	if strings.TrimSpace(recipe.Name) == "" {
		return errors.New("recipe name is required")
	}
	for _, ingredient := range recipe.Ingredients {
		if strings.TrimSpace(ingredient.Name) == "" {
			return fmt.Errorf("recipe %q has an ingredient without a name", recipe.Name)
		}
		if ingredient.Amount < 0 {
			return fmt.Errorf("recipe %q ingredient %q has a negative amount", recipe.Name, ingredient.Name)
		}
	}
	return nil
}
