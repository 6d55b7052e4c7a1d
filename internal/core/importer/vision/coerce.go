package vision

import (
	"encoding/json"
	"fmt"

	"recipe-manager/internal/pkg/common"
)

// coerceCandidate 把模型回傳的未型別 JSON 防禦性地收斂成候選食譜
// 上游是自由格式的模型輸出，不是經過 schema 驗證的 API：
// 每個欄位都給明確預設值，型別錯誤在這一層吸收，絕不外洩
func coerceCandidate(parsed map[string]interface{}) *common.RecipeCandidate {
	candidate := common.NewRecipeCandidate()

	if truthy(parsed["title"]) {
		candidate.Title = stringify(parsed["title"])
	}
	if truthy(parsed["description"]) {
		candidate.Description = common.StringPtr(stringify(parsed["description"]))
	}

	if items, ok := parsed["ingredients"].([]interface{}); ok {
		candidate.Ingredients = make([]common.Ingredient, 0, len(items))
		for _, item := range items {
			obj, _ := item.(map[string]interface{})
			candidate.Ingredients = append(candidate.Ingredients, common.Ingredient{
				Amount: coerceString(obj["amount"]),
				Unit:   coerceString(obj["unit"]),
				Name:   coerceString(obj["name"]),
			})
		}
	}

	if items, ok := parsed["steps"].([]interface{}); ok {
		candidate.Steps = make([]common.Step, 0, len(items))
		for idx, item := range items {
			obj, _ := item.(map[string]interface{})
			order := coerceInt(obj["order"])
			if order == nil || *order == 0 {
				// 模型漏掉或給 0 時，以陣列位置補上 1-based 編號
				order = common.IntPtr(idx + 1)
			}
			candidate.Steps = append(candidate.Steps, common.Step{
				Order:       *order,
				Instruction: coerceString(obj["instruction"]),
			})
		}
	}

	candidate.PrepTime = coerceInt(parsed["prep_time"])
	candidate.CookTime = coerceInt(parsed["cook_time"])
	candidate.Servings = coerceInt(parsed["servings"])

	return candidate
}

// coerceString 非空值轉字串，其餘回空字串
func coerceString(v interface{}) string {
	if !truthy(v) {
		return ""
	}
	return stringify(v)
}

// coerceInt 只放行數值型別，其餘一律 nil
func coerceInt(v interface{}) *int {
	num, ok := v.(json.Number)
	if !ok {
		return nil
	}
	f, err := num.Float64()
	if err != nil {
		return nil
	}
	n := int(f)
	return &n
}

// stringify 以 JS String() 的語義轉字串
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

// truthy 以 JS 真值語義判斷
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
		return true
	}
}
