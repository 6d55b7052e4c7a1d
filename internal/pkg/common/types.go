package common

import "time"

// Ingredient 食材（顯示順序即食譜順序）
type Ingredient struct {
	Amount string `json:"amount"`
	Unit   string `json:"unit"`
	Name   string `json:"name"`
}

// Step 食譜步驟，Order 從 1 開始且連續遞增
type Step struct {
	Order       int    `json:"order"`
	Instruction string `json:"instruction"`
}

// DefaultRecipeTitle 標題缺失時的預設值
const DefaultRecipeTitle = "Untitled Recipe"

// RecipeCandidate 匯入產生的候選食譜
// 所有欄位都有確定的預設值（空列表、nil），下游不需檢查缺 key
type RecipeCandidate struct {
	Title       string       `json:"title"`
	Description *string      `json:"description"`
	Ingredients []Ingredient `json:"ingredients"`
	Steps       []Step       `json:"steps"`
	PrepTime    *int         `json:"prep_time"`
	CookTime    *int         `json:"cook_time"`
	Servings    *int         `json:"servings"`
	ImageURL    *string      `json:"image_url"`
	SourceURL   *string      `json:"source_url"`
}

// NewRecipeCandidate 建立帶預設值的候選食譜
func NewRecipeCandidate() *RecipeCandidate {
	return &RecipeCandidate{
		Title:       DefaultRecipeTitle,
		Ingredients: []Ingredient{},
		Steps:       []Step{},
	}
}

// RecipeInsert 寫入後端前的完整食譜資料
type RecipeInsert struct {
	Title       string       `json:"title"`
	Description *string      `json:"description"`
	Ingredients []Ingredient `json:"ingredients"`
	Steps       []Step       `json:"steps"`
	PrepTime    *int         `json:"prep_time"`
	CookTime    *int         `json:"cook_time"`
	Servings    *int         `json:"servings"`
	SourceURL   *string      `json:"source_url"`
	ImageURL    *string      `json:"image_url"`
	Tags        []string     `json:"tags"`
	Notes       *string      `json:"notes"`
	IsFavorite  bool         `json:"is_favorite"`
}

// Recipe 後端儲存的食譜
type Recipe struct {
	ID string `json:"id"`
	RecipeInsert
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CookingTipInsert 寫入後端前的烹飪小技巧
type CookingTipInsert struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Content  string `json:"content"`
}

// CookingTip 後端儲存的烹飪小技巧
type CookingTip struct {
	ID string `json:"id"`
	CookingTipInsert
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StringPtr 回傳字串指標，空字串回傳 nil
func StringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// IntPtr 回傳整數指標
func IntPtr(n int) *int {
	return &n
}
