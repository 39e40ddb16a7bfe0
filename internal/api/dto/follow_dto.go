package dto

// UserWithRecipes 作者资料及其最近菜谱、菜谱总数
type UserWithRecipes struct {
	ID           int64           `json:"id"`
	Email        string          `json:"email"`
	Username     string          `json:"username"`
	FirstName    string          `json:"first_name"`
	LastName     string          `json:"last_name"`
	Avatar       *string         `json:"avatar"`
	IsSubscribed bool            `json:"is_subscribed"`
	Recipes      []RecipeMinimal `json:"recipes"`
	RecipesCount int64           `json:"recipes_count"`
}

// SubscriptionListData 已关注作者列表数据
type SubscriptionListData struct {
	Authors    []UserWithRecipes `json:"authors"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int64             `json:"total_pages"`
}
