package structured

import (
	"encoding/json"
	"fmt"
	"strings"

	"recipe-manager/internal/core/importer/parse"
	"recipe-manager/internal/pkg/common"
)

// NormalizeSchemaRecipe 將 schema.org Recipe 物件正規化為候選食譜
// 純函數：單一欄位缺失或格式錯誤都以預設值吸收，不會失敗
func NormalizeSchemaRecipe(schema map[string]interface{}) *common.RecipeCandidate {
	candidate := common.NewRecipeCandidate()

	if truthy(schema["name"]) {
		candidate.Title = stringify(schema["name"])
	}
	if truthy(schema["description"]) {
		candidate.Description = common.StringPtr(stringify(schema["description"]))
	}

	candidate.Ingredients = normalizeIngredients(schema["recipeIngredient"])
	candidate.Steps = normalizeInstructions(schema["recipeInstructions"])
	candidate.PrepTime = normalizeDuration(schema["prepTime"])
	candidate.CookTime = normalizeDuration(schema["cookTime"])
	candidate.Servings = normalizeServings(schema["recipeYield"])
	candidate.ImageURL = normalizeImage(schema["image"])

	return candidate
}

// normalizeIngredients 期望字串陣列，非陣列輸入一律回空列表
func normalizeIngredients(raw interface{}) []common.Ingredient {
	items, ok := raw.([]interface{})
	if !ok {
		return []common.Ingredient{}
	}

	ingredients := make([]common.Ingredient, 0, len(items))
	for _, item := range items {
		text := strings.TrimSpace(stringify(item))
		ingredients = append(ingredients, parse.Ingredient(text))
	}
	return ingredients
}

// normalizeInstructions 接受字串、HowToStep、HowToSection 混合的陣列，
// 或以換行分隔的單一字串；編號一律在攤平後從 1 重新指定
func normalizeInstructions(raw interface{}) []common.Step {
	instructions := flattenInstructions(raw)

	steps := make([]common.Step, 0, len(instructions))
	for i, instruction := range instructions {
		steps = append(steps, common.Step{Order: i + 1, Instruction: instruction})
	}
	return steps
}

// flattenInstructions 攤平巢狀段落，回傳依出現順序排列的指示文字
func flattenInstructions(raw interface{}) []string {
	out := []string{}

	switch v := raw.(type) {
	case []interface{}:
		for _, item := range v {
			switch elem := item.(type) {
			case string:
				out = append(out, strings.TrimSpace(elem))
			case map[string]interface{}:
				declared, _ := elem["@type"].(string)
				switch declared {
				case "HowToStep":
					text := elem["text"]
					if !truthy(text) {
						text = elem["name"]
					}
					if !truthy(text) {
						text = ""
					}
					out = append(out, strings.TrimSpace(stringify(text)))
				case "HowToSection":
					// 段落攤平進同一個連續編號
					out = append(out, flattenInstructions(elem["itemListElement"])...)
				}
			}
		}
	case string:
		for _, line := range strings.Split(v, "\n") {
			if strings.TrimSpace(line) == "" {
				continue
			}
			out = append(out, strings.TrimSpace(line))
		}
	}

	return out
}

func normalizeDuration(raw interface{}) *int {
	if !truthy(raw) {
		return nil
	}
	return parse.Duration(stringify(raw))
}

// normalizeServings 陣列輸入只看第一個元素
func normalizeServings(raw interface{}) *int {
	if !truthy(raw) {
		return nil
	}
	if arr, ok := raw.([]interface{}); ok {
		if len(arr) == 0 {
			return nil
		}
		return parse.Servings(stringify(arr[0]))
	}
	return parse.Servings(stringify(raw))
}

func normalizeImage(raw interface{}) *string {
	switch v := raw.(type) {
	case string:
		if v == "" {
			return nil
		}
		return &v
	case []interface{}:
		if len(v) > 0 {
			if s, ok := v[0].(string); ok {
				return &s
			}
		}
		return nil
	case map[string]interface{}:
		if truthy(v["url"]) {
			return common.StringPtr(stringify(v["url"]))
		}
		return nil
	}
	return nil
}

// stringify 以 JS String() 的語義將 JSON 值轉成字串
func stringify(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprint(t)
	}
}

// truthy 以 JS 真值語義判斷 JSON 值
func truthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case string:
		return t != ""
	case json.Number:
		f, err := t.Float64()
		return err == nil && f != 0
	case bool:
		return t
	default:
		// 物件與陣列一律為真
		return true
	}
}
