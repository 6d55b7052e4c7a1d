package recipe

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"recipe-manager/internal/pkg/common"
)

func TestMain(m *testing.M) {
	common.Logger = zap.NewNop()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// fakeStore 記錄最後一次呼叫的參數
type fakeStore struct {
	recipes    []common.Recipe
	recipe     *common.Recipe
	err        error
	lastID     string
	lastInsert common.RecipeInsert
	lastFav    bool
}

func (f *fakeStore) ListRecipes(ctx context.Context) ([]common.Recipe, error) {
	return f.recipes, f.err
}

func (f *fakeStore) GetRecipe(ctx context.Context, id string) (*common.Recipe, error) {
	f.lastID = id
	return f.recipe, f.err
}

func (f *fakeStore) CreateRecipe(ctx context.Context, recipe common.RecipeInsert) (string, error) {
	f.lastInsert = recipe
	return "new-id", f.err
}

func (f *fakeStore) UpdateRecipe(ctx context.Context, id string, recipe common.RecipeInsert) error {
	f.lastID = id
	f.lastInsert = recipe
	return f.err
}

func (f *fakeStore) DeleteRecipe(ctx context.Context, id string) error {
	f.lastID = id
	return f.err
}

func (f *fakeStore) SetFavorite(ctx context.Context, id string, isFavorite bool) error {
	f.lastID = id
	f.lastFav = isFavorite
	return f.err
}

func setupRouter(store Store) *gin.Engine {
	h := NewHandler(store)
	r := gin.New()
	r.GET("/recipes", h.List)
	r.POST("/recipes", h.Create)
	r.GET("/recipes/:id", h.Get)
	r.PUT("/recipes/:id", h.Update)
	r.DELETE("/recipes/:id", h.Delete)
	r.PATCH("/recipes/:id/favorite", h.Favorite)
	return r
}

func do(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestList(t *testing.T) {
	store := &fakeStore{recipes: []common.Recipe{
		{ID: "r1", RecipeInsert: common.RecipeInsert{Title: "Soup"}},
		{ID: "r2", RecipeInsert: common.RecipeInsert{Title: "Bread"}},
	}}
	r := setupRouter(store)

	w := do(r, http.MethodGet, "/recipes", "")

	assert.Equal(t, http.StatusOK, w.Code)
	var out []common.Recipe
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out, 2)
	assert.Equal(t, "Soup", out[0].Title)
}

func TestGetNotFound(t *testing.T) {
	store := &fakeStore{}
	r := setupRouter(store)

	w := do(r, http.MethodGet, "/recipes/missing", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "missing", store.lastID)
}

func TestGet(t *testing.T) {
	store := &fakeStore{recipe: &common.Recipe{
		ID:           "r1",
		RecipeInsert: common.RecipeInsert{Title: "Soup"},
	}}
	r := setupRouter(store)

	w := do(r, http.MethodGet, "/recipes/r1", "")

	assert.Equal(t, http.StatusOK, w.Code)
	var out common.Recipe
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, "Soup", out.Title)
}

func TestCreate(t *testing.T) {
	store := &fakeStore{}
	r := setupRouter(store)

	w := do(r, http.MethodPost, "/recipes", `{"title": "Stew", "servings": 4}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "new-id")
	assert.Equal(t, "Stew", store.lastInsert.Title)
	require.NotNil(t, store.lastInsert.Servings)
	assert.Equal(t, 4, *store.lastInsert.Servings)

	// nil 切片補齊為空切片
	assert.NotNil(t, store.lastInsert.Ingredients)
	assert.NotNil(t, store.lastInsert.Steps)
	assert.NotNil(t, store.lastInsert.Tags)
}

func TestCreateRequiresTitle(t *testing.T) {
	r := setupRouter(&fakeStore{})

	w := do(r, http.MethodPost, "/recipes", `{"title": ""}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdate(t *testing.T) {
	store := &fakeStore{}
	r := setupRouter(store)

	w := do(r, http.MethodPut, "/recipes/r9", `{"title": "New Title"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "r9", store.lastID)
	assert.Equal(t, "New Title", store.lastInsert.Title)
}

func TestDelete(t *testing.T) {
	store := &fakeStore{}
	r := setupRouter(store)

	w := do(r, http.MethodDelete, "/recipes/r3", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "r3", store.lastID)
}

func TestFavorite(t *testing.T) {
	store := &fakeStore{}
	r := setupRouter(store)

	w := do(r, http.MethodPatch, "/recipes/r1/favorite", `{"is_favorite": true}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "r1", store.lastID)
	assert.True(t, store.lastFav)
}

func TestStoreFailureReturnsBadGateway(t *testing.T) {
	store := &fakeStore{err: errors.New("connection refused")}
	r := setupRouter(store)

	w := do(r, http.MethodGet, "/recipes", "")

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "STORAGE_ERROR")
}
