// Package tip 提供烹飪小技巧的 CRUD。
package tip

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"recipe-manager/internal/pkg/common"
)

// Store 小技巧持久化的最小介面
type Store interface {
	ListTips(ctx context.Context) ([]common.CookingTip, error)
	GetTip(ctx context.Context, id string) (*common.CookingTip, error)
	CreateTip(ctx context.Context, tip common.CookingTipInsert) (string, error)
	UpdateTip(ctx context.Context, id string, tip common.CookingTipInsert) error
	DeleteTip(ctx context.Context, id string) error
}

// Handler 小技巧處理器
type Handler struct {
	store Store
}

// NewHandler 創建小技巧處理器
func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// List 取得全部小技巧
func (h *Handler) List(c *gin.Context) {
	tips, err := h.store.ListTips(c.Request.Context())
	if err != nil {
		storeError(c, "list tips", err)
		return
	}
	c.JSON(http.StatusOK, tips)
}

// Get 取得單一小技巧
func (h *Handler) Get(c *gin.Context) {
	tip, err := h.store.GetTip(c.Request.Context(), c.Param("id"))
	if err != nil {
		storeError(c, "get tip", err)
		return
	}
	if tip == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Tip not found",
			"code":  common.ErrCodeNotFound,
		})
		return
	}
	c.JSON(http.StatusOK, tip)
}

// Create 新增小技巧
func (h *Handler) Create(c *gin.Context) {
	var req common.CookingTipInsert
	if err := c.ShouldBindJSON(&req); err != nil || req.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
			"code":  common.ErrCodeInvalidRequest,
		})
		return
	}

	id, err := h.store.CreateTip(c.Request.Context(), req)
	if err != nil {
		storeError(c, "create tip", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// Update 更新小技巧
func (h *Handler) Update(c *gin.Context) {
	var req common.CookingTipInsert
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
			"code":  common.ErrCodeInvalidRequest,
		})
		return
	}

	if err := h.store.UpdateTip(c.Request.Context(), c.Param("id"), req); err != nil {
		storeError(c, "update tip", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Delete 刪除小技巧
func (h *Handler) Delete(c *gin.Context) {
	if err := h.store.DeleteTip(c.Request.Context(), c.Param("id")); err != nil {
		storeError(c, "delete tip", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

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
