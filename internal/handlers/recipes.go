package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gagan0803/cook-proj/internal/catalog"
	"github.com/gagan0803/cook-proj/internal/middleware"
	"github.com/gagan0803/cook-proj/internal/models"
	"github.com/gagan0803/cook-proj/internal/repository"
	"github.com/gagan0803/cook-proj/internal/services"
	"github.com/go-chi/chi/v5"
)

type RecipeHandler struct {
	catalog           *catalog.Store
	matcher           *services.Matcher
	completionService *services.CompletionService
	userRepo          repository.UserRepository
	inventoryRepo     repository.InventoryRepository
}

func NewRecipeHandler(
	catalogStore *catalog.Store,
	matcher *services.Matcher,
	completionService *services.CompletionService,
	userRepo repository.UserRepository,
	inventoryRepo repository.InventoryRepository,
) *RecipeHandler {
	return &RecipeHandler{
		catalog:           catalogStore,
		matcher:           matcher,
		completionService: completionService,
		userRepo:          userRepo,
		inventoryRepo:     inventoryRepo,
	}
}

// List returns the catalog filtered by the user's dietary preferences
// plus any max_time and difficulty query parameters.
func (handler *RecipeHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	recipes, err := handler.catalog.FindAll(ctx)
	if err != nil {
		slog.Error("failed to load recipes", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load recipes")
		return
	}

	preferences, err := handler.userRepo.GetPreferences(ctx, user.ID)
	if err != nil {
		slog.Warn("failed to load preferences, skipping dietary filter", "user", user.ID, "error", err)
	} else {
		recipes = services.FilterByDietary(recipes, preferences.Filters())
	}

	if maxTime := r.URL.Query().Get("max_time"); maxTime != "" {
		minutes, err := strconv.Atoi(maxTime)
		if err != nil {
			writeError(w, http.StatusBadRequest, "max_time must be a number of minutes")
			return
		}
		recipes = services.FilterByTime(recipes, minutes)
	}
	if difficulty := r.URL.Query().Get("difficulty"); difficulty != "" {
		recipes = services.FilterByDifficulty(recipes, models.Difficulty(difficulty))
	}

	writeJSON(w, http.StatusOK, recipes)
}

type recipeDetail struct {
	models.Recipe
	MissingIngredients []models.Ingredient `json:"missing_ingredients"`
	HasAllIngredients  bool                `json:"has_all_ingredients"`
}

func (handler *RecipeHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	recipe, err := handler.catalog.FindByID(ctx, chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "recipe not found")
			return
		}
		slog.Error("failed to load recipe", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load recipe")
		return
	}

	inventory, err := handler.inventoryRepo.FindByUser(ctx, user.ID)
	if err != nil {
		slog.Warn("failed to load inventory for recipe detail", "user", user.ID, "error", err)
		inventory = nil
	}

	missing := services.MissingIngredients(recipe, inventory)
	writeJSON(w, http.StatusOK, recipeDetail{
		Recipe:             recipe,
		MissingIngredients: missing,
		HasAllIngredients:  len(missing) == 0,
	})
}

// Search filters by name term and explicit dietary flags. Unlike List
// it ignores stored preferences so a search can cross dietary lines.
func (handler *RecipeHandler) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	var recipes []models.Recipe
	var err error
	if term := query.Get("q"); term != "" {
		recipes, err = handler.catalog.SearchByName(ctx, term)
	} else {
		recipes, err = handler.catalog.FindAll(ctx)
	}
	if err != nil {
		slog.Error("recipe search failed", "error", err)
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}

	filters := make(map[string]bool)
	for _, tag := range []string{models.DietaryVegetarian, models.DietaryVegan, models.DietaryGlutenFree, models.DietaryDairyFree} {
		if query.Get(tag) == "true" {
			filters[tag] = true
		}
	}
	recipes = services.FilterByDietary(recipes, filters)

	if maxTime := query.Get("max_time"); maxTime != "" {
		minutes, err := strconv.Atoi(maxTime)
		if err != nil {
			writeError(w, http.StatusBadRequest, "max_time must be a number of minutes")
			return
		}
		recipes = services.FilterByTime(recipes, minutes)
	}
	if difficulty := query.Get("difficulty"); difficulty != "" {
		recipes = services.FilterByDifficulty(recipes, models.Difficulty(difficulty))
	}

	writeJSON(w, http.StatusOK, recipes)
}

func (handler *RecipeHandler) SearchByIngredients(w http.ResponseWriter, r *http.Request) {
	var request struct {
		Ingredients []string `json:"ingredients"`
		Exclude     []string `json:"exclude"`
	}
	if err := decodeJSON(r, &request); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	matches, err := handler.matcher.SearchByIngredients(r.Context(), request.Ingredients, request.Exclude)
	if err != nil {
		slog.Error("ingredient search failed", "error", err)
		writeError(w, http.StatusInternalServerError, "search failed")
		return
	}
	writeJSON(w, http.StatusOK, matches)
}

func (handler *RecipeHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	suggestions, err := handler.matcher.SuggestIngredients(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		slog.Error("suggestion lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "suggestion lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, suggestions)
}

func (handler *RecipeHandler) Complete(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	var request struct {
		Servings float64 `json:"servings"`
	}
	if err := decodeJSON(r, &request); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	completion, err := handler.completionService.CompleteRecipe(r.Context(), user.ID, chi.URLParam(r, "id"), request.Servings)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "recipe not found")
			return
		}
		slog.Error("failed to complete recipe", "user", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to complete recipe")
		return
	}
	writeJSON(w, http.StatusCreated, completion)
}

func (handler *RecipeHandler) Completed(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	history, err := handler.completionService.History(r.Context(), user.ID)
	if err != nil {
		slog.Error("failed to load completion history", "user", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load history")
		return
	}
	writeJSON(w, http.StatusOK, history)
}
