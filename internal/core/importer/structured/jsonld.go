package structured

import (
	"strings"

	"golang.org/x/net/html"
)

// collectJSONLDBlocks 依文件順序收集所有 <script type="application/ld+json"> 的內容
func collectJSONLDBlocks(doc *html.Node) []string {
	var blocks []string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "script" {
			for _, attr := range n.Attr {
				if strings.EqualFold(attr.Key, "type") && strings.EqualFold(strings.TrimSpace(attr.Val), "application/ld+json") {
					if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
						blocks = append(blocks, n.FirstChild.Data)
					}
					break
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return blocks
}

// findRecipeNode 在解碼後的 JSON-LD 值中深度優先搜尋第一個 Recipe 物件
// @type 可以是字串或包含 "Recipe" 的陣列；@graph 底下的巢狀也會被搜到
func findRecipeNode(value interface{}) map[string]interface{} {
	switch v := value.(type) {
	case []interface{}:
		for _, item := range v {
			if found := findRecipeNode(item); found != nil {
				return found
			}
		}
	case map[string]interface{}:
		if isRecipeType(v["@type"]) {
			return v
		}
		if graph, ok := v["@graph"].([]interface{}); ok {
			for _, item := range graph {
				if found := findRecipeNode(item); found != nil {
					return found
				}
			}
		}
	}
	return nil
}

// isRecipeType 判斷 @type 宣告是否為 Recipe
func isRecipeType(declared interface{}) bool {
	switch t := declared.(type) {
	case string:
		return t == "Recipe"
	case []interface{}:
		for _, item := range t {
			if s, ok := item.(string); ok && s == "Recipe" {
				return true
			}
		}
	}
	return false
}
