package dto

import "time"

// IngredientAmountRequest 菜谱中的一项食材及用量
type IngredientAmountRequest struct {
	ID     int64 `json:"id" binding:"required"`
	Amount int   `json:"amount" binding:"required,min=1,max=32667"`
}

// RecipeCreateRequest 发布菜谱请求，image 为 data URL 形式的 base64 图片
type RecipeCreateRequest struct {
	Ingredients []IngredientAmountRequest `json:"ingredients" binding:"omitempty,dive"`
	Tags        []int64                   `json:"tags" binding:"omitempty"`
	Image       string                    `json:"image" binding:"required"`
	Name        string                    `json:"name" binding:"required,min=1,max=200"`
	Text        string                    `json:"text" binding:"required"`
	CookingTime int                       `json:"cooking_time" binding:"required,min=1,max=300"`
}

// RecipeUpdateRequest 更新菜谱请求，image 可不传（保留原图）
type RecipeUpdateRequest struct {
	Ingredients []IngredientAmountRequest `json:"ingredients" binding:"omitempty,dive"`
	Tags        []int64                   `json:"tags" binding:"omitempty"`
	Image       string                    `json:"image" binding:"omitempty"`
	Name        string                    `json:"name" binding:"required,min=1,max=200"`
	Text        string                    `json:"text" binding:"required"`
	CookingTime int                       `json:"cooking_time" binding:"required,min=1,max=300"`
}

// RecipeListQuery 菜谱列表查询参数
type RecipeListQuery struct {
	Page             int      `form:"page"`
	Limit            int      `form:"limit"`
	Author           *int64   `form:"author"`
	Tags             []string `form:"tags"`
	IsFavorited      bool     `form:"is_favorited"`
	IsInShoppingCart bool     `form:"is_in_shopping_cart"`
}

// IngredientAmountInfo 菜谱详情中的一项食材及用量
type IngredientAmountInfo struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// RecipeInfo 菜谱完整视图，is_favorited/is_in_shopping_cart 相对查看者计算
type RecipeInfo struct {
	ID               int64                  `json:"id"`
	Author           *UserInfo              `json:"author,omitempty"`
	Tags             []TagInfo              `json:"tags"`
	Ingredients      []IngredientAmountInfo `json:"ingredients"`
	IsFavorited      bool                   `json:"is_favorited"`
	IsInShoppingCart bool                   `json:"is_in_shopping_cart"`
	Name             string                 `json:"name"`
	Image            string                 `json:"image"`
	Text             string                 `json:"text"`
	CookingTime      int                    `json:"cooking_time"`
	CreatedAt        time.Time              `json:"created_at"`
	UpdatedAt        time.Time              `json:"updated_at"`
}

// RecipeMinimal 菜谱紧凑视图（收藏、购物车、关注列表中使用）
type RecipeMinimal struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// RecipeListData 菜谱列表数据
type RecipeListData struct {
	Recipes    []RecipeInfo `json:"recipes"`
	Total      int64        `json:"total"`
	Page       int          `json:"page"`
	PageSize   int          `json:"page_size"`
	TotalPages int64        `json:"total_pages"`
}
