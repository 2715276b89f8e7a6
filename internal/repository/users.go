package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/gagan0803/cook-proj/internal/models"
	"github.com/google/uuid"
)

type UserRepository interface {
	FindByID(ctx context.Context, id string) (models.User, error)
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
	FindByOIDCSubject(ctx context.Context, subject string) (models.User, error)
	FindByFeedToken(ctx context.Context, token string) (models.User, error)
	Create(ctx context.Context, user models.User) (models.User, error)
	GetPreferences(ctx context.Context, userID string) (models.Preferences, error)
	UpdatePreferences(ctx context.Context, userID string, preferences models.Preferences) error
}

type SQLiteUserRepository struct {
	database *sql.DB
}

func NewUserRepository(database *sql.DB) *SQLiteUserRepository {
	return &SQLiteUserRepository{database: database}
}

const userColumns = "id, username, email, password_hash, oidc_subject, feed_token, created_at, updated_at"

func (repository *SQLiteUserRepository) scanUser(row *sql.Row, operation string) (models.User, error) {
	var user models.User
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.OIDCSubject, &user.FeedToken, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", operation, err)
	}
	return user, nil
}

func (repository *SQLiteUserRepository) FindByID(ctx context.Context, id string) (models.User, error) {
	row := repository.database.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id = ?", id)
	return repository.scanUser(row, "finding user by id")
}

func (repository *SQLiteUserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	row := repository.database.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email = ?", email)
	return repository.scanUser(row, "finding user by email")
}

func (repository *SQLiteUserRepository) FindByUsername(ctx context.Context, username string) (models.User, error) {
	row := repository.database.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE username = ?", username)
	return repository.scanUser(row, "finding user by username")
}

func (repository *SQLiteUserRepository) FindByOIDCSubject(ctx context.Context, subject string) (models.User, error) {
	row := repository.database.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE oidc_subject = ?", subject)
	return repository.scanUser(row, "finding user by oidc subject")
}

func (repository *SQLiteUserRepository) FindByFeedToken(ctx context.Context, token string) (models.User, error) {
	row := repository.database.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE feed_token = ? AND feed_token != ''", token)
	return repository.scanUser(row, "finding user by feed token")
}

func (repository *SQLiteUserRepository) Create(ctx context.Context, user models.User) (models.User, error) {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	transaction, err := repository.database.BeginTx(ctx, nil)
	if err != nil {
		return models.User{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer transaction.Rollback()

	_, err = transaction.ExecContext(ctx,
		"INSERT INTO users (id, username, email, password_hash, oidc_subject, feed_token, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		user.ID, user.Username, user.Email, user.PasswordHash, user.OIDCSubject, user.FeedToken, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return models.User{}, fmt.Errorf("creating user: %w", err)
	}

	// New accounts start with every dietary preference off.
	_, err = transaction.ExecContext(ctx,
		"INSERT INTO user_preferences (user_id) VALUES (?)", user.ID)
	if err != nil {
		return models.User{}, fmt.Errorf("creating default preferences: %w", err)
	}

	if err := transaction.Commit(); err != nil {
		return models.User{}, fmt.Errorf("committing user creation: %w", err)
	}
	return user, nil
}

func (repository *SQLiteUserRepository) GetPreferences(ctx context.Context, userID string) (models.Preferences, error) {
	var preferences models.Preferences
	err := repository.database.QueryRowContext(ctx,
		"SELECT vegetarian, vegan, gluten_free, dairy_free FROM user_preferences WHERE user_id = ?", userID,
	).Scan(&preferences.Vegetarian, &preferences.Vegan, &preferences.GlutenFree, &preferences.DairyFree)
	if err == sql.ErrNoRows {
		// Rows created before the preferences table existed get a default row on first read.
		_, insertErr := repository.database.ExecContext(ctx,
			"INSERT INTO user_preferences (user_id) VALUES (?)", userID)
		if insertErr != nil {
			return models.Preferences{}, fmt.Errorf("creating preferences on read: %w", insertErr)
		}
		return models.Preferences{}, nil
	}
	if err != nil {
		return models.Preferences{}, fmt.Errorf("finding preferences: %w", err)
	}
	return preferences, nil
}

func (repository *SQLiteUserRepository) UpdatePreferences(ctx context.Context, userID string, preferences models.Preferences) error {
	_, err := repository.database.ExecContext(ctx,
		"UPDATE user_preferences SET vegetarian = ?, vegan = ?, gluten_free = ?, dairy_free = ? WHERE user_id = ?",
		preferences.Vegetarian, preferences.Vegan, preferences.GlutenFree, preferences.DairyFree, userID,
	)
	if err != nil {
		return fmt.Errorf("updating preferences: %w", err)
	}
	return nil
}
