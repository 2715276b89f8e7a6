package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gagan0803/cook-proj/internal/middleware"
	"github.com/gagan0803/cook-proj/internal/models"
	"github.com/gagan0803/cook-proj/internal/repository"
	"github.com/gagan0803/cook-proj/internal/services"
	"github.com/go-chi/chi/v5"
)

type InventoryHandler struct {
	inventoryRepo     repository.InventoryRepository
	matcher           *services.Matcher
	infoService       *services.IngredientInfoService
	classifier        services.Classifier
	expiryWarningDays int
}

func NewInventoryHandler(
	inventoryRepo repository.InventoryRepository,
	matcher *services.Matcher,
	infoService *services.IngredientInfoService,
	classifier services.Classifier,
	expiryWarningDays int,
) *InventoryHandler {
	return &InventoryHandler{
		inventoryRepo:     inventoryRepo,
		matcher:           matcher,
		infoService:       infoService,
		classifier:        classifier,
		expiryWarningDays: expiryWarningDays,
	}
}

func (handler *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	items, err := handler.inventoryRepo.FindByUser(r.Context(), user.ID)
	if err != nil {
		slog.Error("failed to load inventory", "user", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load inventory")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

type inventoryRequest struct {
	IngredientName string  `json:"ingredient_name"`
	Category       string  `json:"category"`
	Quantity       float64 `json:"quantity"`
	Unit           string  `json:"unit"`
	ExpiryDate     string  `json:"expiry_date"`
}

func (request inventoryRequest) expiry() (*time.Time, error) {
	if request.ExpiryDate == "" {
		return nil, nil
	}
	parsed, err := time.Parse("2006-01-02", request.ExpiryDate)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}

func (handler *InventoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	var request inventoryRequest
	if err := decodeJSON(r, &request); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	name := strings.TrimSpace(request.IngredientName)
	if name == "" {
		writeError(w, http.StatusBadRequest, "ingredient_name is required")
		return
	}
	if request.Quantity <= 0 {
		writeError(w, http.StatusBadRequest, "quantity must be positive")
		return
	}

	expiry, err := request.expiry()
	if err != nil {
		writeError(w, http.StatusBadRequest, "expiry_date must be YYYY-MM-DD")
		return
	}

	category := request.Category
	if category == "" {
		category = handler.classifier.Categorize(ctx, name)
	}

	item, err := handler.inventoryRepo.Create(ctx, models.InventoryItem{
		UserID:         user.ID,
		IngredientName: name,
		Category:       category,
		Quantity:       request.Quantity,
		Unit:           request.Unit,
		ExpiryDate:     expiry,
	})
	if err != nil {
		slog.Error("failed to create inventory item", "user", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create item")
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (handler *InventoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	item, err := handler.inventoryRepo.FindByID(ctx, chi.URLParam(r, "id"))
	if err != nil || item.UserID != user.ID {
		writeError(w, http.StatusNotFound, "item not found")
		return
	}

	var request inventoryRequest
	if err := decodeJSON(r, &request); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// A zero or negative quantity means the ingredient is used up.
	if request.Quantity <= 0 {
		if err := handler.inventoryRepo.Delete(ctx, item.ID); err != nil {
			slog.Error("failed to delete inventory item", "item", item.ID, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to delete item")
			return
		}
		w.WriteHeader(http.StatusNoContent)
		return
	}

	expiry, err := request.expiry()
	if err != nil {
		writeError(w, http.StatusBadRequest, "expiry_date must be YYYY-MM-DD")
		return
	}

	if name := strings.TrimSpace(request.IngredientName); name != "" {
		item.IngredientName = name
	}
	if request.Category != "" {
		item.Category = request.Category
	}
	if request.Unit != "" {
		item.Unit = request.Unit
	}
	if expiry != nil {
		item.ExpiryDate = expiry
	}
	item.Quantity = request.Quantity

	if err := handler.inventoryRepo.Update(ctx, item); err != nil {
		slog.Error("failed to update inventory item", "item", item.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update item")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (handler *InventoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := middleware.GetUser(ctx)

	item, err := handler.inventoryRepo.FindByID(ctx, chi.URLParam(r, "id"))
	if err != nil || item.UserID != user.ID {
		writeError(w, http.StatusNotFound, "item not found")
		return
	}

	if err := handler.inventoryRepo.Delete(ctx, item.ID); err != nil {
		slog.Error("failed to delete inventory item", "item", item.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete item")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (handler *InventoryHandler) Expiring(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	days := handler.expiryWarningDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			writeError(w, http.StatusBadRequest, "days must be a non-negative number")
			return
		}
		days = parsed
	}

	items, err := handler.inventoryRepo.FindExpiring(r.Context(), user.ID, days)
	if err != nil {
		slog.Error("failed to load expiring items", "user", user.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load expiring items")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (handler *InventoryHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	suggestions, err := handler.matcher.SuggestIngredients(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		slog.Error("suggestion lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "suggestion lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, suggestions)
}

func (handler *InventoryHandler) IngredientInfo(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	info, err := handler.infoService.Lookup(r.Context(), name)
	if err != nil {
		slog.Error("ingredient info lookup failed", "name", name, "error", err)
		writeError(w, http.StatusInternalServerError, "lookup failed")
		return
	}
	writeJSON(w, http.StatusOK, info)
}
