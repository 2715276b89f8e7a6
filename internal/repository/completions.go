package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/gagan0803/cook-proj/internal/models"
	"github.com/google/uuid"
)

type CompletionRepository interface {
	Create(ctx context.Context, completion models.CompletedRecipe) (models.CompletedRecipe, error)
	FindByUser(ctx context.Context, userID string) ([]models.CompletedRecipe, error)
}

type SQLiteCompletionRepository struct {
	database *sql.DB
}

func NewCompletionRepository(database *sql.DB) *SQLiteCompletionRepository {
	return &SQLiteCompletionRepository{database: database}
}

func (repository *SQLiteCompletionRepository) Create(ctx context.Context, completion models.CompletedRecipe) (models.CompletedRecipe, error) {
	if completion.ID == "" {
		completion.ID = uuid.New().String()
	}
	if completion.CompletedAt.IsZero() {
		completion.CompletedAt = time.Now()
	}

	_, err := repository.database.ExecContext(ctx,
		"INSERT INTO completed_recipes (id, user_id, recipe_id, servings_made, completed_at) VALUES (?, ?, ?, ?, ?)",
		completion.ID, completion.UserID, completion.RecipeID, completion.ServingsMade, completion.CompletedAt,
	)
	if err != nil {
		return models.CompletedRecipe{}, fmt.Errorf("recording completion: %w", err)
	}
	return completion, nil
}

func (repository *SQLiteCompletionRepository) FindByUser(ctx context.Context, userID string) ([]models.CompletedRecipe, error) {
	rows, err := repository.database.QueryContext(ctx,
		"SELECT id, user_id, recipe_id, servings_made, completed_at FROM completed_recipes WHERE user_id = ? ORDER BY completed_at DESC",
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("finding completions: %w", err)
	}
	defer rows.Close()

	var completions []models.CompletedRecipe
	for rows.Next() {
		var completion models.CompletedRecipe
		if err := rows.Scan(&completion.ID, &completion.UserID, &completion.RecipeID,
			&completion.ServingsMade, &completion.CompletedAt); err != nil {
			return nil, fmt.Errorf("scanning completion: %w", err)
		}
		completions = append(completions, completion)
	}
	return completions, rows.Err()
}
