package vision

import "fmt"

// buildPrompt 組出抽取指示：回傳固定形狀的 JSON，除此之外不要有任何文字
// 多張圖片時明確告訴模型它們是同一份食譜的不同部分
func buildPrompt(imageCount int) string {
	subject := "this image"
	if imageCount > 1 {
		subject = "these images (they are all parts of the same recipe)"
	}

	return fmt.Sprintf(`Extract the recipe from %s and return it as JSON with this exact structure:
{
  "title": "Recipe Name",
  "description": "Brief description or null",
  "ingredients": [{"amount": "2", "unit": "cups", "name": "flour"}],
  "steps": [{"order": 1, "instruction": "Step description"}],
  "prep_time": 15,
  "cook_time": 30,
  "servings": 4
}

Rules:
- Combine information from all images into a single complete recipe
- For ingredients, split into amount (number), unit (cups, tbsp, etc.), and name
- If you can't determine a value, use null for times/servings or empty string for amounts/units
- Steps should be numbered starting from 1
- Return ONLY valid JSON, no markdown or extra text`, subject)
}
