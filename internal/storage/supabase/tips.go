package supabase

import (
	"context"
	"fmt"

	"recipe-manager/internal/pkg/common"
)

// ListTips 取得全部烹飪小技巧，依分類再依標題排序
func (c *Client) ListTips(ctx context.Context) ([]common.CookingTip, error) {
	var tips []common.CookingTip
	resp, err := c.rest.R().
		SetContext(ctx).
		SetQueryParam("select", "*").
		SetQueryParam("order", "category.asc,title.asc").
		SetResult(&tips).
		Get("/cooking_tips")
	if err != nil {
		return nil, fmt.Errorf("failed to list tips: %w", err)
	}
	if resp.IsError() {
		return nil, apiError("list tips", resp.StatusCode(), resp.String())
	}
	if tips == nil {
		tips = []common.CookingTip{}
	}
	return tips, nil
}

// GetTip 以 id 取得單一小技巧，找不到回傳 nil
func (c *Client) GetTip(ctx context.Context, id string) (*common.CookingTip, error) {
	var tips []common.CookingTip
	resp, err := c.rest.R().
		SetContext(ctx).
		SetQueryParam("select", "*").
		SetQueryParam("id", "eq."+id).
		SetResult(&tips).
		Get("/cooking_tips")
	if err != nil {
		return nil, fmt.Errorf("failed to get tip: %w", err)
	}
	if resp.IsError() {
		return nil, apiError("get tip", resp.StatusCode(), resp.String())
	}
	if len(tips) == 0 {
		return nil, nil
	}
	return &tips[0], nil
}

// CreateTip 新增小技巧並回傳後端指派的 id
func (c *Client) CreateTip(ctx context.Context, tip common.CookingTipInsert) (string, error) {
	var created []common.CookingTip
	resp, err := c.rest.R().
		SetContext(ctx).
		SetHeader("Prefer", "return=representation").
		SetBody(tip).
		SetResult(&created).
		Post("/cooking_tips")
	if err != nil {
		return "", fmt.Errorf("failed to create tip: %w", err)
	}
	if resp.IsError() {
		return "", apiError("create tip", resp.StatusCode(), resp.String())
	}
	if len(created) == 0 {
		return "", fmt.Errorf("create tip: backend returned no row")
	}
	return created[0].ID, nil
}

// UpdateTip 更新小技巧
func (c *Client) UpdateTip(ctx context.Context, id string, tip common.CookingTipInsert) error {
	resp, err := c.rest.R().
		SetContext(ctx).
		SetQueryParam("id", "eq."+id).
		SetBody(tip).
		Patch("/cooking_tips")
	if err != nil {
		return fmt.Errorf("failed to update tip: %w", err)
	}
	if resp.IsError() {
		return apiError("update tip", resp.StatusCode(), resp.String())
	}
	return nil
}

// DeleteTip 刪除小技巧
func (c *Client) DeleteTip(ctx context.Context, id string) error {
	resp, err := c.rest.R().
		SetContext(ctx).
		SetQueryParam("id", "eq."+id).
		Delete("/cooking_tips")
	if err != nil {
		return fmt.Errorf("failed to delete tip: %w", err)
	}
	if resp.IsError() {
		return apiError("delete tip", resp.StatusCode(), resp.String())
	}
	return nil
}
