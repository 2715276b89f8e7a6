package handlers

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gagan0803/cook-proj/internal/catalog"
	"github.com/gagan0803/cook-proj/internal/middleware"
	"github.com/gagan0803/cook-proj/internal/models"
	"github.com/gagan0803/cook-proj/internal/repository"
	"github.com/gagan0803/cook-proj/internal/services"
	"github.com/go-chi/chi/v5"
)

type MealPlanHandler struct {
	mealPlanRepo  repository.MealPlanRepository
	inventoryRepo repository.InventoryRepository
	catalog       *catalog.Store
}

func NewMealPlanHandler(
	mealPlanRepo repository.MealPlanRepository,
	inventoryRepo repository.InventoryRepository,
	catalogStore *catalog.Store,
) *MealPlanHandler {
	return &MealPlanHandler{
		mealPlanRepo:  mealPlanRepo,
		inventoryRepo: inventoryRepo,
		catalog:       catalogStore,
	}
}

// currentWeekStart returns the Monday of the week containing now,
// formatted as a date string.
func currentWeekStart(now time.Time) string {
	offset := (int(now.Weekday()) + 6) % 7
	return now.AddDate(0, 0, -offset).Format("2006-01-02")
}

func (handler *MealPlanHandler) CurrentWeek(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	plan, err := handler.mealPlanRepo.GetOrCreateWeek(ctx, user.ID, currentWeekStart(time.Now()))
	if err != nil {
		slog.Error("failed to load meal plan", "user", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load meal plan")
		return
	}

	handler.attachRecipes(ctx, plan.Items)
	writeJSON(w, http.StatusOK, plan)
}

func (handler *MealPlanHandler) attachRecipes(ctx context.Context, items []models.MealPlanItem) {
	for i := range items {
		recipe, err := handler.catalog.FindByID(ctx, items[i].RecipeID)
		if err != nil {
			slog.Warn("meal plan references unknown recipe", "recipe", items[i].RecipeID, "error", err)
			continue
		}
		items[i].Recipe = &recipe
	}
}

func (handler *MealPlanHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	var request struct {
		RecipeID  string          `json:"recipe_id"`
		DayOfWeek int             `json:"day_of_week"`
		MealType  models.MealType `json:"meal_type"`
	}
	if err := decodeJSON(r, &request); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if request.DayOfWeek < 0 || request.DayOfWeek > 6 {
		writeError(w, http.StatusBadRequest, "day_of_week must be between 0 and 6")
		return
	}
	if !request.MealType.Valid() {
		writeError(w, http.StatusBadRequest, "invalid meal_type")
		return
	}

	recipe, err := handler.catalog.FindByID(ctx, request.RecipeID)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusBadRequest, "recipe not found")
			return
		}
		slog.Error("failed to load recipe", "recipe", request.RecipeID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to add meal")
		return
	}

	plan, err := handler.mealPlanRepo.GetOrCreateWeek(ctx, user.ID, currentWeekStart(time.Now()))
	if err != nil {
		slog.Error("failed to load meal plan", "user", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to add meal")
		return
	}

	item, err := handler.mealPlanRepo.AddItem(ctx, plan.ID, recipe.ID, request.DayOfWeek, request.MealType)
	if err != nil {
		slog.Error("failed to add meal plan item", "plan", plan.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to add meal")
		return
	}
	item.Recipe = &recipe
	writeJSON(w, http.StatusCreated, item)
}

func (handler *MealPlanHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	err := handler.mealPlanRepo.RemoveItem(r.Context(), chi.URLParam(r, "id"), user.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "meal plan item not found")
			return
		}
		slog.Error("failed to remove meal plan item", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to remove meal")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GroceryList aggregates the plan's recipe ingredients and nets out
// what the user already has in their inventory.
func (handler *MealPlanHandler) GroceryList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	plan, err := handler.mealPlanRepo.FindByID(ctx, chi.URLParam(r, "id"))
	if err != nil || plan.UserID != user.ID {
		writeError(w, http.StatusNotFound, "meal plan not found")
		return
	}

	recipes := make([]models.Recipe, 0, len(plan.Items))
	for _, item := range plan.Items {
		recipe, err := handler.catalog.FindByID(ctx, item.RecipeID)
		if err != nil {
			slog.Warn("grocery list skipping unknown recipe", "recipe", item.RecipeID, "error", err)
			continue
		}
		recipes = append(recipes, recipe)
	}

	inventory, err := handler.inventoryRepo.FindByUser(ctx, user.ID)
	if err != nil {
		slog.Warn("failed to load inventory for grocery list", "user", user.ID, "error", err)
		inventory = nil
	}

	writeJSON(w, http.StatusOK, services.BuildGroceryList(recipes, inventory))
}
