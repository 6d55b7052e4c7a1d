// Package recipe 提供食譜的 CRUD 與收藏操作。
// 持久化交給託管後端，這裡只做請求驗證與回應組裝。
package recipe

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recipe-manager/internal/pkg/common"
)

// Store 食譜持久化的最小介面
type Store interface {
	ListRecipes(ctx context.Context) ([]common.Recipe, error)
	GetRecipe(ctx context.Context, id string) (*common.Recipe, error)
	CreateRecipe(ctx context.Context, recipe common.RecipeInsert) (string, error)
	UpdateRecipe(ctx context.Context, id string, recipe common.RecipeInsert) error
	DeleteRecipe(ctx context.Context, id string) error
	SetFavorite(ctx context.Context, id string, isFavorite bool) error
}

// Handler 食譜處理器
type Handler struct {
	store Store
}

// NewHandler 創建食譜處理器
func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// List 取得全部食譜
func (h *Handler) List(c *gin.Context) {
	recipes, err := h.store.ListRecipes(c.Request.Context())
	if err != nil {
		storeError(c, "list recipes", err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// Get 取得單一食譜
func (h *Handler) Get(c *gin.Context) {
	recipe, err := h.store.GetRecipe(c.Request.Context(), c.Param("id"))
	if err != nil {
		storeError(c, "get recipe", err)
		return
	}
	if recipe == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Recipe not found",
			"code":  common.ErrCodeNotFound,
		})
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// Create 新增食譜
func (h *Handler) Create(c *gin.Context) {
	var req common.RecipeInsert
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
			"code":  common.ErrCodeInvalidRequest,
		})
		return
	}
	normalizeInsert(&req)

	if req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Title is required",
			"code":  common.ErrCodeInvalidRequest,
		})
		return
	}

	id, err := h.store.CreateRecipe(c.Request.Context(), req)
	if err != nil {
		storeError(c, "create recipe", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// Update 更新食譜
func (h *Handler) Update(c *gin.Context) {
	var req common.RecipeInsert
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
			"code":  common.ErrCodeInvalidRequest,
		})
		return
	}
	normalizeInsert(&req)

	if err := h.store.UpdateRecipe(c.Request.Context(), c.Param("id"), req); err != nil {
		storeError(c, "update recipe", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Delete 刪除食譜
func (h *Handler) Delete(c *gin.Context) {
	if err := h.store.DeleteRecipe(c.Request.Context(), c.Param("id")); err != nil {
		storeError(c, "delete recipe", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// FavoriteRequest 收藏請求
type FavoriteRequest struct {
	IsFavorite bool `json:"is_favorite"`
}

// Favorite 切換收藏狀態
func (h *Handler) Favorite(c *gin.Context) {
	var req FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
			"code":  common.ErrCodeInvalidRequest,
		})
		return
	}

	if err := h.store.SetFavorite(c.Request.Context(), c.Param("id"), req.IsFavorite); err != nil {
		storeError(c, "set favorite", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// normalizeInsert 補齊 nil 切片，後端欄位永遠是完整形狀
func normalizeInsert(req *common.RecipeInsert) {
	if req.Ingredients == nil {
		req.Ingredients = []common.Ingredient{}
	}
	if req.Steps == nil {
		req.Steps = []common.Step{}
	}
	if req.Tags == nil {
		req.Tags = []string{}
	}
}

// storeError 後端失敗統一回 502
func storeError(c *gin.Context, op string, err error) {
	common.LogError("後端儲存操作失敗",
		zap.String("op", op),
		zap.Error(err),
	)
	c.JSON(http.StatusBadGateway, gin.H{
		"error": "Storage backend error",
		"code":  common.ErrCodeStorageError,
	})
}
