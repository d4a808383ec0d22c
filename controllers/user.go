package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"go-commerce-api/middleware"
	"go-commerce-api/models"
	"go-commerce-api/repository"
	"go-commerce-api/utils"
)

// Internal login failure codes. Both are answered with the same generic
// message so the API does not leak which emails are registered.
const (
	codeUserNotFound    = "USER_NOT_FOUND"
	codeInvalidPassword = "INVALID_PASSWORD"
)

const genericLoginError = "Invalid email or password"

// UserController handles registration, login and profile requests
type UserController struct {
	Users    repository.UserStore
	Issuer   *utils.TokenIssuer
	Google   *utils.GoogleVerifier
	TokenTTL time.Duration
	Log      *zap.Logger
}

// NewUserController creates a new UserController
func NewUserController(users repository.UserStore, issuer *utils.TokenIssuer, google *utils.GoogleVerifier, tokenTTL time.Duration, log *zap.Logger) *UserController {
	return &UserController{Users: users, Issuer: issuer, Google: google, TokenTTL: tokenTTL, Log: log}
}

// Register handles user registration
func (uc *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	exists, err := uc.Users.EmailExists(ctx, req.Email)
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	if exists {
		http.Error(w, "Email already registered", http.StatusBadRequest)
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		http.Error(w, "Error hashing password", http.StatusInternalServerError)
		return
	}

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: string(hashedPassword),
		Address:  req.Address,
		Role:     "user",
	}
	if _, err := uc.Users.Insert(ctx, &user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			http.Error(w, "Email already registered", http.StatusBadRequest)
			return
		}
		http.Error(w, "Error creating user", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"message": "User registered successfully"})
}

// Login handles password authentication. Failures are logged with their
// internal code; the client always sees the same generic message.
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, err := uc.Users.FindByEmail(ctx, req.Email)
	if errors.Is(err, repository.ErrNotFound) {
		uc.Log.Info("login rejected", zap.String("code", codeUserNotFound), zap.String("email", req.Email))
		http.Error(w, genericLoginError, http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	// Federated-only accounts have no password hash to compare against.
	if user.Password == "" || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		uc.Log.Info("login rejected", zap.String("code", codeInvalidPassword), zap.String("email", req.Email))
		http.Error(w, genericLoginError, http.StatusBadRequest)
		return
	}

	uc.issueToken(w, user)
}

// GoogleLogin exchanges a verified Google ID token for a session token.
// First-time callers are registered without a password.
func (uc *UserController) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req googleLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid input", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	identity, err := uc.Google.Verify(ctx, req.IDToken)
	if err != nil {
		uc.Log.Info("google login rejected", zap.Error(err))
		http.Error(w, "Invalid Google token", http.StatusUnauthorized)
		return
	}

	user, err := uc.Users.FindByEmail(ctx, identity.Email)
	if errors.Is(err, repository.ErrNotFound) {
		user = &models.User{
			Name:     identity.Name,
			Email:    identity.Email,
			GoogleID: identity.Subject,
			Role:     "user",
		}
		id, err := uc.Users.Insert(ctx, user)
		if err != nil {
			http.Error(w, "Error creating user", http.StatusInternalServerError)
			return
		}
		user.ID = id
	} else if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	uc.issueToken(w, user)
}

// GetProfile retrieves the authenticated user's profile
func (uc *UserController) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFrom(r)
	if !ok {
		http.Error(w, "Could not parse user from context", http.StatusUnauthorized)
		return
	}
	userID, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		http.Error(w, "Invalid token subject", http.StatusUnauthorized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, err := uc.Users.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}

	user.Password = ""
	writeJSON(w, http.StatusOK, user)
}

func (uc *UserController) issueToken(w http.ResponseWriter, user *models.User) {
	token, err := uc.Issuer.Generate(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		http.Error(w, "Error generating token", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(uc.TokenTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}
