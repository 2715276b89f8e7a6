package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/gagan0803/cook-proj/internal/catalog"
	"github.com/gagan0803/cook-proj/internal/repository"
)

type ICalHandler struct {
	userRepo     repository.UserRepository
	mealPlanRepo repository.MealPlanRepository
	catalog      *catalog.Store
}

func NewICalHandler(
	userRepo repository.UserRepository,
	mealPlanRepo repository.MealPlanRepository,
	catalogStore *catalog.Store,
) *ICalHandler {
	return &ICalHandler{
		userRepo:     userRepo,
		mealPlanRepo: mealPlanRepo,
		catalog:      catalogStore,
	}
}

// Feed serves the user's planned meals as all-day calendar events.
// Calendar apps cannot send session cookies, so the feed authenticates
// with the per-user token instead.
func (handler *ICalHandler) Feed(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	ctx := r.Context()
	user, err := handler.userRepo.FindByFeedToken(ctx, token)
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	plans, err := handler.mealPlanRepo.FindByUser(ctx, user.ID)
	if err != nil {
		slog.Error("finding meal plans for ical", "user", user.ID, "error", err)
		http.Error(w, "Error", http.StatusInternalServerError)
		return
	}

	calendar := ical.NewCalendar()
	calendar.SetMethod(ical.MethodPublish)
	calendar.SetProductId("-//cook-proj//meal plan//EN")
	calendar.SetXWRCalName(fmt.Sprintf("%s's Meals", user.Username))

	for _, plan := range plans {
		weekStart, err := time.Parse("2006-01-02", plan.WeekStartDate)
		if err != nil {
			slog.Warn("meal plan has malformed week start", "plan", plan.ID, "error", err)
			continue
		}

		for _, item := range plan.Items {
			recipe, err := handler.catalog.FindByID(ctx, item.RecipeID)
			if err != nil {
				slog.Warn("ical feed skipping unknown recipe", "recipe", item.RecipeID, "error", err)
				continue
			}

			day := weekStart.AddDate(0, 0, item.DayOfWeek)
			label := capitalizeFirst(string(item.MealType))

			event := calendar.AddEvent(fmt.Sprintf("meal-%s@cook-proj", item.ID))
			event.SetSummary(fmt.Sprintf("[%s] %s", label, recipe.Name))
			if recipe.Description != "" {
				event.SetDescription(recipe.Description)
			}
			event.SetAllDayStartAt(day)
			event.SetAllDayEndAt(day.AddDate(0, 0, 1))
			event.SetDtStampTime(time.Now().UTC())
		}
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename=meal-plan.ics")
	w.Write([]byte(calendar.Serialize()))
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
