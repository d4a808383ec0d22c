package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"go-commerce-api/middleware"
	"go-commerce-api/models"
	"go-commerce-api/repository"
	"go-commerce-api/utils"
)

type memUserStore struct {
	users map[primitive.ObjectID]*models.User
}

func newMemUserStore(users ...*models.User) *memUserStore {
	s := &memUserStore{users: map[primitive.ObjectID]*models.User{}}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *memUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (s *memUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *memUserStore) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := s.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (s *memUserStore) Insert(_ context.Context, u *models.User) (primitive.ObjectID, error) {
	u.ID = primitive.NewObjectID()
	s.users[u.ID] = u
	return u.ID, nil
}

func (s *memUserStore) Count(context.Context) (int64, error) { return int64(len(s.users)), nil }

func newUserController(t *testing.T, store repository.UserStore) *UserController {
	t.Helper()
	issuer := utils.NewTokenIssuer("test-secret", time.Hour)
	return NewUserController(store, issuer, nil, time.Hour, zap.NewNop())
}

func postJSON(t *testing.T, handler http.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func hash(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestLoginUnknownEmailGetsGenericMessage(t *testing.T) {
	uc := newUserController(t, newMemUserStore())

	rec := postJSON(t, uc.Login, map[string]string{"email": "nobody@example.com", "password": "whatever123"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, genericLoginError, strings.TrimSpace(rec.Body.String()))
}

func TestLoginWrongPasswordGetsGenericMessage(t *testing.T) {
	user := &models.User{
		ID:       primitive.NewObjectID(),
		Email:    "ada@example.com",
		Password: hash(t, "correct-horse"),
		Role:     "user",
	}
	uc := newUserController(t, newMemUserStore(user))

	rec := postJSON(t, uc.Login, map[string]string{"email": "ada@example.com", "password": "wrong-horse"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	// Same body as the unknown-email case: no user enumeration.
	assert.Equal(t, genericLoginError, strings.TrimSpace(rec.Body.String()))
}

func TestLoginFederatedOnlyAccountGetsGenericMessage(t *testing.T) {
	user := &models.User{
		ID:       primitive.NewObjectID(),
		Email:    "ada@example.com",
		GoogleID: "google-sub",
		Role:     "user",
	}
	uc := newUserController(t, newMemUserStore(user))

	rec := postJSON(t, uc.Login, map[string]string{"email": "ada@example.com", "password": "anything1"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, genericLoginError, strings.TrimSpace(rec.Body.String()))
}

func TestLoginSuccessReturnsTokenAndCookie(t *testing.T) {
	user := &models.User{
		ID:       primitive.NewObjectID(),
		Email:    "ada@example.com",
		Password: hash(t, "correct-horse"),
		Role:     "user",
	}
	uc := newUserController(t, newMemUserStore(user))

	rec := postJSON(t, uc.Login, map[string]string{"email": "ada@example.com", "password": "correct-horse"})

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body["token"])

	var tokenCookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == middleware.TokenCookie {
			tokenCookie = c
		}
	}
	require.NotNil(t, tokenCookie)
	assert.True(t, tokenCookie.HttpOnly)
	assert.Equal(t, body["token"], tokenCookie.Value)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	user := &models.User{ID: primitive.NewObjectID(), Email: "ada@example.com", Password: "x"}
	uc := newUserController(t, newMemUserStore(user))

	rec := postJSON(t, uc.Register, map[string]interface{}{
		"name":     "Ada",
		"email":    "ada@example.com",
		"password": "longenough",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "already registered")
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	uc := newUserController(t, newMemUserStore())

	rec := postJSON(t, uc.Register, map[string]interface{}{
		"name":     "Ada",
		"email":    "ada@example.com",
		"password": "short",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegisterStoresHashedPassword(t *testing.T) {
	store := newMemUserStore()
	uc := newUserController(t, store)

	rec := postJSON(t, uc.Register, map[string]interface{}{
		"name":     "Ada",
		"email":    "ada@example.com",
		"password": "correct-horse",
	})

	require.Equal(t, http.StatusCreated, rec.Code)

	stored, err := store.FindByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "correct-horse", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("correct-horse")))
	assert.Equal(t, "user", stored.Role)
}
