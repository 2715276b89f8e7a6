package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/gagan0803/cook-proj/internal/models"
	"github.com/google/uuid"
)

type MealPlanRepository interface {
	// GetOrCreateWeek returns the user's plan for the given week start
	// date, creating an empty plan when none exists yet.
	GetOrCreateWeek(ctx context.Context, userID string, weekStartDate string) (models.MealPlan, error)
	FindByID(ctx context.Context, id string) (models.MealPlan, error)
	FindByUser(ctx context.Context, userID string) ([]models.MealPlan, error)
	AddItem(ctx context.Context, planID string, recipeID string, dayOfWeek int, mealType models.MealType) (models.MealPlanItem, error)
	// RemoveItem deletes the item only when it sits on one of the
	// user's own plans; sql.ErrNoRows otherwise.
	RemoveItem(ctx context.Context, itemID string, userID string) error
}

type SQLiteMealPlanRepository struct {
	database *sql.DB
}

func NewMealPlanRepository(database *sql.DB) *SQLiteMealPlanRepository {
	return &SQLiteMealPlanRepository{database: database}
}

func (repository *SQLiteMealPlanRepository) GetOrCreateWeek(ctx context.Context, userID string, weekStartDate string) (models.MealPlan, error) {
	var plan models.MealPlan
	err := repository.database.QueryRowContext(ctx,
		"SELECT id, user_id, week_start_date FROM meal_plans WHERE user_id = ? AND week_start_date = ?",
		userID, weekStartDate,
	).Scan(&plan.ID, &plan.UserID, &plan.WeekStartDate)

	if err == sql.ErrNoRows {
		plan = models.MealPlan{
			ID:            uuid.New().String(),
			UserID:        userID,
			WeekStartDate: weekStartDate,
			Items:         []models.MealPlanItem{},
		}
		_, err := repository.database.ExecContext(ctx,
			"INSERT INTO meal_plans (id, user_id, week_start_date) VALUES (?, ?, ?)",
			plan.ID, plan.UserID, plan.WeekStartDate,
		)
		if err != nil {
			return models.MealPlan{}, fmt.Errorf("creating meal plan: %w", err)
		}
		return plan, nil
	}
	if err != nil {
		return models.MealPlan{}, fmt.Errorf("finding meal plan for week: %w", err)
	}

	items, err := repository.findItems(ctx, plan.ID)
	if err != nil {
		return models.MealPlan{}, err
	}
	plan.Items = items
	return plan, nil
}

func (repository *SQLiteMealPlanRepository) FindByID(ctx context.Context, id string) (models.MealPlan, error) {
	var plan models.MealPlan
	err := repository.database.QueryRowContext(ctx,
		"SELECT id, user_id, week_start_date FROM meal_plans WHERE id = ?", id,
	).Scan(&plan.ID, &plan.UserID, &plan.WeekStartDate)
	if err != nil {
		return models.MealPlan{}, fmt.Errorf("finding meal plan: %w", err)
	}

	items, err := repository.findItems(ctx, plan.ID)
	if err != nil {
		return models.MealPlan{}, err
	}
	plan.Items = items
	return plan, nil
}

func (repository *SQLiteMealPlanRepository) FindByUser(ctx context.Context, userID string) ([]models.MealPlan, error) {
	rows, err := repository.database.QueryContext(ctx,
		"SELECT id, user_id, week_start_date FROM meal_plans WHERE user_id = ? ORDER BY week_start_date",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("finding meal plans: %w", err)
	}
	defer rows.Close()

	plans := []models.MealPlan{}
	for rows.Next() {
		var plan models.MealPlan
		if err := rows.Scan(&plan.ID, &plan.UserID, &plan.WeekStartDate); err != nil {
			return nil, fmt.Errorf("scanning meal plan: %w", err)
		}
		plans = append(plans, plan)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range plans {
		items, err := repository.findItems(ctx, plans[i].ID)
		if err != nil {
			return nil, err
		}
		plans[i].Items = items
	}
	return plans, nil
}

func (repository *SQLiteMealPlanRepository) findItems(ctx context.Context, planID string) ([]models.MealPlanItem, error) {
	rows, err := repository.database.QueryContext(ctx,
		`SELECT id, meal_plan_id, recipe_id, day_of_week, meal_type FROM meal_plan_items
		WHERE meal_plan_id = ?
		ORDER BY day_of_week,
			CASE meal_type WHEN 'breakfast' THEN 1 WHEN 'lunch' THEN 2 WHEN 'dinner' THEN 3 WHEN 'snack' THEN 4 WHEN 'dessert' THEN 5 END`,
		planID,
	)
	if err != nil {
		return nil, fmt.Errorf("finding meal plan items: %w", err)
	}
	defer rows.Close()

	items := []models.MealPlanItem{}
	for rows.Next() {
		var item models.MealPlanItem
		if err := rows.Scan(&item.ID, &item.MealPlanID, &item.RecipeID, &item.DayOfWeek, &item.MealType); err != nil {
			return nil, fmt.Errorf("scanning meal plan item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (repository *SQLiteMealPlanRepository) AddItem(ctx context.Context, planID string, recipeID string, dayOfWeek int, mealType models.MealType) (models.MealPlanItem, error) {
	item := models.MealPlanItem{
		ID:         uuid.New().String(),
		MealPlanID: planID,
		RecipeID:   recipeID,
		DayOfWeek:  dayOfWeek,
		MealType:   mealType,
	}
	_, err := repository.database.ExecContext(ctx,
		"INSERT INTO meal_plan_items (id, meal_plan_id, recipe_id, day_of_week, meal_type) VALUES (?, ?, ?, ?, ?)",
		item.ID, item.MealPlanID, item.RecipeID, item.DayOfWeek, item.MealType,
	)
	if err != nil {
		return models.MealPlanItem{}, fmt.Errorf("adding meal plan item: %w", err)
	}
	return item, nil
}

func (repository *SQLiteMealPlanRepository) RemoveItem(ctx context.Context, itemID string, userID string) error {
	result, err := repository.database.ExecContext(ctx,
		`DELETE FROM meal_plan_items WHERE id = ?
		AND meal_plan_id IN (SELECT id FROM meal_plans WHERE user_id = ?)`,
		itemID, userID)
	if err != nil {
		return fmt.Errorf("removing meal plan item: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("removing meal plan item: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
