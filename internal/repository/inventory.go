package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/gagan0803/cook-proj/internal/models"
	"github.com/google/uuid"
)

type InventoryRepository interface {
	FindByUser(ctx context.Context, userID string) ([]models.InventoryItem, error)
	FindByID(ctx context.Context, id string) (models.InventoryItem, error)
	Create(ctx context.Context, item models.InventoryItem) (models.InventoryItem, error)
	Update(ctx context.Context, item models.InventoryItem) error
	UpdateQuantity(ctx context.Context, id string, quantity float64) error
	Delete(ctx context.Context, id string) error
	FindExpiring(ctx context.Context, userID string, withinDays int) ([]models.InventoryItem, error)
	FindCategoryByNamePrefix(ctx context.Context, namePrefix string) (string, error)
}

type SQLiteInventoryRepository struct {
	database *sql.DB
}

func NewInventoryRepository(database *sql.DB) *SQLiteInventoryRepository {
	return &SQLiteInventoryRepository{database: database}
}

const inventoryColumns = "id, user_id, ingredient_name, category, quantity, unit, expiry_date, added_at"

func scanInventoryRows(rows *sql.Rows) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	for rows.Next() {
		var item models.InventoryItem
		if err := rows.Scan(&item.ID, &item.UserID, &item.IngredientName, &item.Category,
			&item.Quantity, &item.Unit, &item.ExpiryDate, &item.AddedAt); err != nil {
			return nil, fmt.Errorf("scanning inventory item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (repository *SQLiteInventoryRepository) FindByUser(ctx context.Context, userID string) ([]models.InventoryItem, error) {
	rows, err := repository.database.QueryContext(ctx,
		"SELECT "+inventoryColumns+" FROM inventory WHERE user_id = ? ORDER BY ingredient_name", userID)
	if err != nil {
		return nil, fmt.Errorf("finding inventory: %w", err)
	}
	defer rows.Close()
	return scanInventoryRows(rows)
}

func (repository *SQLiteInventoryRepository) FindByID(ctx context.Context, id string) (models.InventoryItem, error) {
	var item models.InventoryItem
	err := repository.database.QueryRowContext(ctx,
		"SELECT "+inventoryColumns+" FROM inventory WHERE id = ?", id,
	).Scan(&item.ID, &item.UserID, &item.IngredientName, &item.Category,
		&item.Quantity, &item.Unit, &item.ExpiryDate, &item.AddedAt)
	if err != nil {
		return models.InventoryItem{}, fmt.Errorf("finding inventory item: %w", err)
	}
	return item, nil
}

func (repository *SQLiteInventoryRepository) Create(ctx context.Context, item models.InventoryItem) (models.InventoryItem, error) {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	item.AddedAt = time.Now()

	_, err := repository.database.ExecContext(ctx,
		"INSERT INTO inventory (id, user_id, ingredient_name, category, quantity, unit, expiry_date, added_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		item.ID, item.UserID, item.IngredientName, item.Category, item.Quantity, item.Unit, item.ExpiryDate, item.AddedAt,
	)
	if err != nil {
		return models.InventoryItem{}, fmt.Errorf("creating inventory item: %w", err)
	}
	return item, nil
}

func (repository *SQLiteInventoryRepository) Update(ctx context.Context, item models.InventoryItem) error {
	_, err := repository.database.ExecContext(ctx,
		"UPDATE inventory SET ingredient_name = ?, category = ?, quantity = ?, unit = ?, expiry_date = ? WHERE id = ?",
		item.IngredientName, item.Category, item.Quantity, item.Unit, item.ExpiryDate, item.ID,
	)
	if err != nil {
		return fmt.Errorf("updating inventory item: %w", err)
	}
	return nil
}

func (repository *SQLiteInventoryRepository) UpdateQuantity(ctx context.Context, id string, quantity float64) error {
	_, err := repository.database.ExecContext(ctx,
		"UPDATE inventory SET quantity = ? WHERE id = ?", quantity, id)
	if err != nil {
		return fmt.Errorf("updating inventory quantity: %w", err)
	}
	return nil
}

func (repository *SQLiteInventoryRepository) Delete(ctx context.Context, id string) error {
	_, err := repository.database.ExecContext(ctx, "DELETE FROM inventory WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting inventory item: %w", err)
	}
	return nil
}

func (repository *SQLiteInventoryRepository) FindExpiring(ctx context.Context, userID string, withinDays int) ([]models.InventoryItem, error) {
	cutoff := time.Now().AddDate(0, 0, withinDays)
	rows, err := repository.database.QueryContext(ctx,
		"SELECT "+inventoryColumns+" FROM inventory WHERE user_id = ? AND expiry_date IS NOT NULL AND expiry_date <= ? ORDER BY expiry_date",
		userID, cutoff,
	)
	if err != nil {
		return nil, fmt.Errorf("finding expiring inventory: %w", err)
	}
	defer rows.Close()
	return scanInventoryRows(rows)
}

// FindCategoryByNamePrefix looks at how any ingredient with this name
// prefix was categorised before. The lookup deliberately spans users:
// a carrot shelved under produce once is a produce item for everyone.
func (repository *SQLiteInventoryRepository) FindCategoryByNamePrefix(ctx context.Context, namePrefix string) (string, error) {
	var category string
	err := repository.database.QueryRowContext(ctx,
		`SELECT category FROM inventory WHERE LOWER(ingredient_name) LIKE ? ESCAPE '\' LIMIT 1`,
		escapeLike(strings.ToLower(namePrefix))+"%",
	).Scan(&category)
	if err != nil {
		return "", fmt.Errorf("finding category by name prefix: %w", err)
	}
	return category, nil
}

func escapeLike(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	value = strings.ReplaceAll(value, "%", `\%`)
	return strings.ReplaceAll(value, "_", `\_`)
}
