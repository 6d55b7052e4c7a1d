// Package structured 從網頁的 schema.org 結構化資料匯入食譜。
// 先掃 JSON-LD 的 Recipe 物件，掃不到時退回 meta 標籤。
package structured

import (
	"bytes"
	"context"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"recipe-manager/internal/infrastructure/config"
	"recipe-manager/internal/pkg/common"
)

// Extractor 結構化資料食譜匯入器
type Extractor struct {
	fetcher *Fetcher
}

// NewExtractor 創建結構化資料匯入器
func NewExtractor(cfg *config.Config) *Extractor {
	return &Extractor{
		fetcher: NewFetcher(cfg),
	}
}

// FromURL 抓取頁面並正規化為候選食譜
// 抓取失敗是唯一的致命錯誤；頁面拿到後一律產出候選
func (e *Extractor) FromURL(ctx context.Context, url string) (*common.RecipeCandidate, error) {
	body, err := e.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	// html.Parse 對殘破的 HTML 也會建出樹，不會失敗在真實網頁上
	doc, err := html.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}

	if candidate := e.extractJSONLD(doc); candidate != nil {
		candidate.SourceURL = common.StringPtr(url)
		common.LogInfo("結構化資料匯入成功",
			zap.String("url", url),
			zap.Int("ingredients", len(candidate.Ingredients)),
			zap.Int("steps", len(candidate.Steps)),
		)
		return candidate, nil
	}

	common.LogInfo("頁面沒有 Recipe 結構化資料，退回 meta 標籤",
		zap.String("url", url),
	)
	return extractFromMetaTags(doc, url), nil
}

// extractJSONLD 依文件順序掃描 JSON-LD 區塊，第一個 Recipe 物件勝出
// 單一區塊 JSON 壞掉只跳過，不影響整次匯入
func (e *Extractor) extractJSONLD(doc *html.Node) *common.RecipeCandidate {
	for _, block := range collectJSONLDBlocks(doc) {
		var payload interface{}
		if err := common.ParseJSON(block, &payload); err != nil {
			common.LogDebug("跳過無法解析的 JSON-LD 區塊", zap.Error(err))
			continue
		}
		if recipe := findRecipeNode(payload); recipe != nil {
			return NormalizeSchemaRecipe(recipe)
		}
	}
	return nil
}
