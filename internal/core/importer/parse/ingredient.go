// Package parse 提供匯入共用的文字正規化工具：
// 食材行拆解、ISO-8601 時長、份量字串。
package parse

import (
	"regexp"
	"strings"

	"recipe-manager/internal/pkg/common"
)

// 食材行格式：數量（數字、分數、unicode 分數）+ 單位 + 名稱
// 單位表固定，大小寫不敏感，允許結尾加 s
var ingredientPattern = regexp.MustCompile(
	`(?i)^([\d./\s½¼¾⅓⅔⅛]+)?\s*(cups?|tbsp|tsp|tablespoons?|teaspoons?|oz|ounces?|lbs?|pounds?|g|kg|ml|l|liters?|cloves?|pieces?|slices?|cans?|bunch|pinch|dash)?\s*(.+)?$`)

// Ingredient 將一行食材文字拆成數量、單位、名稱
// 拆不出來時整行當作名稱，數量與單位為空字串
func Ingredient(text string) common.Ingredient {
	text = strings.TrimSpace(text)

	match := ingredientPattern.FindStringSubmatch(text)
	if match == nil {
		return common.Ingredient{Amount: "", Unit: "", Name: text}
	}

	name := strings.TrimSpace(match[3])
	if name == "" {
		// 名稱組沒匹配到時退回整行原文
		name = text
	}

	return common.Ingredient{
		Amount: strings.TrimSpace(match[1]),
		Unit:   strings.TrimSpace(match[2]),
		Name:   name,
	}
}
