package supabase

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"recipe-manager/internal/pkg/common"
)

// ListRecipes 取得全部食譜，依建立時間新到舊
func (c *Client) ListRecipes(ctx context.Context) ([]common.Recipe, error) {
	var recipes []common.Recipe
	resp, err := c.rest.R().
		SetContext(ctx).
		SetQueryParam("select", "*").
		SetQueryParam("order", "created_at.desc").
		SetResult(&recipes).
		Get("/recipes")
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	if resp.IsError() {
		return nil, apiError("list recipes", resp.StatusCode(), resp.String())
	}
	if recipes == nil {
		recipes = []common.Recipe{}
	}
	return recipes, nil
}

// GetRecipe 以 id 取得單一食譜，找不到回傳 nil
func (c *Client) GetRecipe(ctx context.Context, id string) (*common.Recipe, error) {
	var recipes []common.Recipe
	resp, err := c.rest.R().
		SetContext(ctx).
		SetQueryParam("select", "*").
		SetQueryParam("id", "eq."+id).
		SetResult(&recipes).
		Get("/recipes")
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	if resp.IsError() {
		return nil, apiError("get recipe", resp.StatusCode(), resp.String())
	}
	if len(recipes) == 0 {
		return nil, nil
	}
	return &recipes[0], nil
}

// CreateRecipe 新增食譜並回傳後端指派的 id
func (c *Client) CreateRecipe(ctx context.Context, recipe common.RecipeInsert) (string, error) {
	var created []common.Recipe
	resp, err := c.rest.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=representation").
		SetBody(recipe).
		SetResult(&created).
		Post("/recipes")
	if err != nil {
		return "", fmt.Errorf("failed to create recipe: %w", err)
	}
	if resp.IsError() {
		return "", apiError("create recipe", resp.StatusCode(), resp.String())
	}
	if len(created) == 0 {
		return "", fmt.Errorf("create recipe: backend returned no row")
	}

	common.LogInfo("食譜已建立",
		zap.String("id", created[0].ID),
		zap.String("title", recipe.Title),
	)
	return created[0].ID, nil
}

// UpdateRecipe 更新食譜
func (c *Client) UpdateRecipe(ctx context.Context, id string, recipe common.RecipeInsert) error {
	resp, err := c.rest.R().
		SetContext(ctx).
		SetQueryParam("id", "eq."+id).
		SetBody(recipe).
		Patch("/recipes")
	if err != nil {
		return fmt.Errorf("failed to update recipe: %w", err)
	}
	if resp.IsError() {
		return apiError("update recipe", resp.StatusCode(), resp.String())
	}
	return nil
}

// DeleteRecipe 刪除食譜
func (c *Client) DeleteRecipe(ctx context.Context, id string) error {
	resp, err := c.rest.R().
		SetContext(ctx).
		SetQueryParam("id", "eq."+id).
		Delete("/recipes")
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	if resp.IsError() {
		return apiError("delete recipe", resp.StatusCode(), resp.String())
	}
	return nil
}

// SetFavorite 更新收藏狀態
func (c *Client) SetFavorite(ctx context.Context, id string, isFavorite bool) error {
	resp, err := c.rest.R().
		SetContext(ctx).
		SetQueryParam("id", "eq."+id).
		SetBody(map[string]bool{"is_favorite": isFavorite}).
		Patch("/recipes")
	if err != nil {
		return fmt.Errorf("failed to set favorite: %w", err)
	}
	if resp.IsError() {
		return apiError("set favorite", resp.StatusCode(), resp.String())
	}
	return nil
}
