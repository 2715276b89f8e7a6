package server

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/gagan0803/cook-proj/internal/catalog"
	"github.com/gagan0803/cook-proj/internal/config"
	"github.com/gagan0803/cook-proj/internal/handlers"
	"github.com/gagan0803/cook-proj/internal/middleware"
	"github.com/gagan0803/cook-proj/internal/repository"
	"github.com/gagan0803/cook-proj/internal/services"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	router *chi.Mux
	config config.Config
}

func New(database *sql.DB, catalogStore *catalog.Store, cfg config.Config, authService *services.AuthService) *Server {
	userRepo := repository.NewUserRepository(database)
	inventoryRepo := repository.NewInventoryRepository(database)
	mealPlanRepo := repository.NewMealPlanRepository(database)
	completionRepo := repository.NewCompletionRepository(database)

	matcher := services.NewMatcher(catalogStore)
	completionService := services.NewCompletionService(catalogStore, inventoryRepo, completionRepo)
	classifier := services.NewHistoryClassifier(inventoryRepo, services.NewKeywordClassifier())
	infoService := services.NewIngredientInfoService(catalogStore, classifier)

	authHandler := handlers.NewAuthHandler(authService, userRepo)
	recipeHandler := handlers.NewRecipeHandler(catalogStore, matcher, completionService, userRepo, inventoryRepo)
	inventoryHandler := handlers.NewInventoryHandler(inventoryRepo, matcher, infoService, classifier, cfg.ExpiryWarningDays)
	mealPlanHandler := handlers.NewMealPlanHandler(mealPlanRepo, inventoryRepo, catalogStore)
	icalHandler := handlers.NewICalHandler(userRepo, mealPlanRepo, catalogStore)

	router := chi.NewRouter()

	router.Use(chimiddleware.Logger)
	router.Use(chimiddleware.Recoverer)
	router.Use(chimiddleware.Compress(5))
	router.Use(middleware.Metrics)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	router.Handle("/metrics", promhttp.Handler())

	router.Get("/ical", icalHandler.Feed)

	router.Post("/api/auth/register", authHandler.Register)
	router.Post("/api/auth/login", authHandler.Login)
	router.Post("/api/auth/logout", authHandler.Logout)
	router.Get("/api/auth/sso/login", authHandler.OIDCLogin)
	router.Get("/api/auth/sso/callback", authHandler.OIDCCallback)

	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(authService))

		r.Get("/api/auth/me", authHandler.Me)
		r.Get("/api/auth/preferences", authHandler.GetPreferences)
		r.Put("/api/auth/preferences", authHandler.UpdatePreferences)

		r.Get("/api/recipes", recipeHandler.List)
		r.Get("/api/recipes/search", recipeHandler.Search)
		r.Post("/api/recipes/search-by-ingredients", recipeHandler.SearchByIngredients)
		r.Get("/api/recipes/suggestions", recipeHandler.Suggestions)
		r.Get("/api/recipes/completed", recipeHandler.Completed)
		r.Get("/api/recipes/{id}", recipeHandler.Get)
		r.Post("/api/recipes/{id}/complete", recipeHandler.Complete)

		r.Get("/api/inventory", inventoryHandler.List)
		r.Post("/api/inventory", inventoryHandler.Create)
		r.Get("/api/inventory/expiring", inventoryHandler.Expiring)
		r.Get("/api/inventory/suggestions", inventoryHandler.Suggestions)
		r.Get("/api/inventory/ingredient-info", inventoryHandler.IngredientInfo)
		r.Put("/api/inventory/{id}", inventoryHandler.Update)
		r.Delete("/api/inventory/{id}", inventoryHandler.Delete)

		r.Get("/api/meal-plan", mealPlanHandler.CurrentWeek)
		r.Post("/api/meal-plan/items", mealPlanHandler.AddItem)
		r.Delete("/api/meal-plan/items/{id}", mealPlanHandler.RemoveItem)
		r.Get("/api/meal-plan/{id}/grocery-list", mealPlanHandler.GroceryList)
	})

	return &Server{
		router: router,
		config: cfg,
	}
}

func (server *Server) Router() http.Handler {
	return server.router
}

func (server *Server) Start() error {
	address := ":" + server.config.Port
	slog.Info("starting server", "address", address)
	return http.ListenAndServe(address, server.router)
}
