package services

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gagan0803/cook-proj/internal/config"
	"github.com/gagan0803/cook-proj/internal/models"
	"github.com/gagan0803/cook-proj/internal/repository"
	"github.com/gorilla/securecookie"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already registered")
)

type AuthService struct {
	oauthConfig  *oauth2.Config
	oidcVerifier *oidc.IDTokenVerifier
	secureCookie *securecookie.SecureCookie
	userRepo     repository.UserRepository
}

type SessionData struct {
	UserID string `json:"user_id"`
}

func NewAuthService(ctx context.Context, cfg config.Config, userRepo repository.UserRepository) (*AuthService, error) {
	service := &AuthService{
		secureCookie: securecookie.New([]byte(cfg.SessionSecret), nil),
		userRepo:     userRepo,
	}

	if cfg.OIDCIssuer == "" {
		return service, nil
	}

	provider, err := oidc.NewProvider(ctx, cfg.OIDCIssuer)
	if err != nil {
		return nil, fmt.Errorf("creating OIDC provider: %w", err)
	}

	service.oauthConfig = &oauth2.Config{
		ClientID:     cfg.OIDCClientID,
		ClientSecret: cfg.OIDCClientSecret,
		RedirectURL:  cfg.OIDCRedirectURL,
		Endpoint:     provider.Endpoint(),
		Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
	}
	service.oidcVerifier = provider.Verifier(&oidc.Config{ClientID: cfg.OIDCClientID})

	return service, nil
}

func (service *AuthService) Register(ctx context.Context, username, email, password string) (models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))

	if len(username) < 3 || len(username) > 64 {
		return models.User{}, errors.New("username must be between 3 and 64 characters")
	}
	if email == "" || !strings.Contains(email, "@") {
		return models.User{}, errors.New("a valid email is required")
	}
	if len(password) < 8 {
		return models.User{}, errors.New("password must be at least 8 characters")
	}

	if _, err := service.userRepo.FindByUsername(ctx, username); err == nil {
		return models.User{}, ErrUsernameTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return models.User{}, fmt.Errorf("checking username: %w", err)
	}
	if _, err := service.userRepo.FindByEmail(ctx, email); err == nil {
		return models.User{}, ErrEmailTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return models.User{}, fmt.Errorf("checking email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hashing password: %w", err)
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		FeedToken:    generateFeedToken(),
	}
	created, err := service.userRepo.Create(ctx, user)
	if err != nil {
		return models.User{}, err
	}

	slog.Info("registered new user", "id", created.ID, "username", created.Username)
	return created, nil
}

func (service *AuthService) Authenticate(ctx context.Context, email, password string) (models.User, error) {
	user, err := service.userRepo.FindByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		// Same error for unknown email and wrong password.
		return models.User{}, ErrInvalidCredentials
	}
	if user.PasswordHash == "" {
		return models.User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (service *AuthService) OIDCConfigured() bool {
	return service.oauthConfig != nil
}

func (service *AuthService) LoginURL(state string) string {
	if service.oauthConfig == nil {
		return ""
	}
	return service.oauthConfig.AuthCodeURL(state)
}

func (service *AuthService) GenerateState() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("generating state: %w", err)
	}
	return base64.URLEncoding.EncodeToString(bytes), nil
}

func (service *AuthService) HandleCallback(ctx context.Context, code string) (models.User, error) {
	if service.oauthConfig == nil {
		return models.User{}, errors.New("OIDC not configured")
	}

	token, err := service.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return models.User{}, fmt.Errorf("exchanging code: %w", err)
	}

	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return models.User{}, errors.New("no id_token in response")
	}

	idToken, err := service.oidcVerifier.Verify(ctx, rawIDToken)
	if err != nil {
		return models.User{}, fmt.Errorf("verifying id token: %w", err)
	}

	var claims struct {
		Subject           string `json:"sub"`
		Email             string `json:"email"`
		PreferredUsername string `json:"preferred_username"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return models.User{}, fmt.Errorf("parsing claims: %w", err)
	}

	return service.provisionOIDCUser(ctx, claims.Subject, claims.Email, claims.PreferredUsername)
}

func (service *AuthService) provisionOIDCUser(ctx context.Context, subject, email, preferredUsername string) (models.User, error) {
	existing, err := service.userRepo.FindByOIDCSubject(ctx, subject)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return models.User{}, fmt.Errorf("looking up user: %w", err)
	}

	username := preferredUsername
	if username == "" {
		username = strings.SplitN(email, "@", 2)[0]
	}
	// Usernames are unique; suffix with random hex when the SSO name collides.
	if _, err := service.userRepo.FindByUsername(ctx, username); err == nil {
		username = username + "-" + generateFeedToken()[:6]
	}

	created, err := service.userRepo.Create(ctx, models.User{
		Username:    username,
		Email:       strings.ToLower(email),
		OIDCSubject: &subject,
		FeedToken:   generateFeedToken(),
	})
	if err != nil {
		return models.User{}, err
	}

	slog.Info("provisioned SSO user", "id", created.ID, "username", created.Username)
	return created, nil
}

func (service *AuthService) SetSession(w http.ResponseWriter, userID string) error {
	data := SessionData{UserID: userID}
	encoded, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshaling session: %w", err)
	}

	value, err := service.secureCookie.Encode("session", string(encoded))
	if err != nil {
		return fmt.Errorf("encoding session cookie: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "session",
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   86400 * 30,
	})
	return nil
}

func (service *AuthService) GetSession(r *http.Request) (SessionData, error) {
	cookie, err := r.Cookie("session")
	if err != nil {
		return SessionData{}, fmt.Errorf("no session cookie: %w", err)
	}

	var decoded string
	if err := service.secureCookie.Decode("session", cookie.Value, &decoded); err != nil {
		return SessionData{}, fmt.Errorf("decoding session cookie: %w", err)
	}

	var session SessionData
	if err := json.Unmarshal([]byte(decoded), &session); err != nil {
		return SessionData{}, fmt.Errorf("unmarshaling session: %w", err)
	}
	return session, nil
}

func (service *AuthService) ClearSession(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     "session",
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

func (service *AuthService) GetCurrentUser(r *http.Request) (models.User, error) {
	session, err := service.GetSession(r)
	if err != nil {
		return models.User{}, err
	}

	user, err := service.userRepo.FindByID(r.Context(), session.UserID)
	if err != nil {
		return models.User{}, fmt.Errorf("finding user: %w", err)
	}
	return user, nil
}

func generateFeedToken() string {
	bytes := make([]byte, 32)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}
