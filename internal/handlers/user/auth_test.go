package user

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"velora_back_end/internal/config"
	"velora_back_end/internal/models"
	"velora_back_end/internal/store"
	"velora_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*models.User)}
}

func (f *fakeUserStore) GetByID(_ context.Context, id string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeUserStore) Insert(_ context.Context, u *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func newAuthEnv() (*AuthHandler, *fakeUserStore, *gin.Engine) {
	gin.SetMode(gin.TestMode)
	users := newFakeUserStore()
	h := NewAuthHandler(users, &config.Config{JWTSecret: "secret-de-test"})

	r := gin.New()
	r.POST("/auth/register", h.Register)
	r.POST("/auth/login", h.Login)
	r.GET("/auth/me", func(c *gin.Context) {
		c.Set("user_id", c.GetHeader("X-Test-User"))
		h.Me(c)
	})
	return h, users, r
}

func postJSON(r *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	_ = json.NewEncoder(&buf).Encode(body)
	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegister(t *testing.T) {
	t.Run("création de compte", func(t *testing.T) {
		_, users, r := newAuthEnv()

		w := postJSON(r, "/auth/register", map[string]string{
			"name": "Alice", "email": "Alice@Example.com", "password": "s3cret",
		})

		require.Equal(t, http.StatusCreated, w.Code)
		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp["token"])
		// email normalisé en minuscules
		assert.Equal(t, "alice@example.com", resp["email"])
		assert.Equal(t, "customer", resp["role"])

		saved, err := users.GetByEmail(context.Background(), "alice@example.com")
		require.NoError(t, err)
		assert.NotEqual(t, "s3cret", saved.Password)
		assert.Equal(t, "local", saved.Provider)
	})

	t.Run("email déjà utilisé", func(t *testing.T) {
		_, users, r := newAuthEnv()
		_ = users.Insert(context.Background(), &models.User{ID: "u1", Email: "alice@example.com"})

		w := postJSON(r, "/auth/register", map[string]string{
			"email": "alice@example.com", "password": "s3cret",
		})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("champs requis", func(t *testing.T) {
		_, _, r := newAuthEnv()
		w := postJSON(r, "/auth/register", map[string]string{"email": "", "password": ""})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLogin(t *testing.T) {
	seed := func(users *fakeUserStore) {
		hash, _ := utils.HashPassword("s3cret")
		_ = users.Insert(context.Background(), &models.User{
			ID: "u1", Email: "alice@example.com", Password: hash, Name: "Alice", Role: "customer",
		})
	}

	t.Run("identifiants valides", func(t *testing.T) {
		_, users, r := newAuthEnv()
		seed(users)

		w := postJSON(r, "/auth/login", map[string]string{
			"email": "alice@example.com", "password": "s3cret",
		})

		require.Equal(t, http.StatusOK, w.Code)
		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp["token"])
		assert.Equal(t, "u1", resp["userId"])
	})

	t.Run("mauvais mot de passe", func(t *testing.T) {
		_, users, r := newAuthEnv()
		seed(users)

		w := postJSON(r, "/auth/login", map[string]string{
			"email": "alice@example.com", "password": "faux",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("compte inconnu", func(t *testing.T) {
		_, _, r := newAuthEnv()
		w := postJSON(r, "/auth/login", map[string]string{
			"email": "bob@example.com", "password": "s3cret",
		})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestMe(t *testing.T) {
	_, users, r := newAuthEnv()
	_ = users.Insert(context.Background(), &models.User{ID: "u1", Email: "alice@example.com", Name: "Alice"})

	t.Run("profil trouvé", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req.Header.Set("X-Test-User", "u1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "alice@example.com")
		// le hash ne sort jamais du serveur
		assert.NotContains(t, w.Body.String(), "password")
	})

	t.Run("utilisateur inconnu", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
		req.Header.Set("X-Test-User", "fantome")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
