package dto

import "time"

// SearchRecipeRequest 搜索请求参数
type SearchRecipeRequest struct {
	Q              string   `form:"q"`
	AuthorID       *int64   `form:"author_id"`
	Tags           []string `form:"tags"`
	Sort           string   `form:"sort"` // relevance, time
	MinCookingTime *int     `form:"min_cooking_time"`
	MaxCookingTime *int     `form:"max_cooking_time"`
	Page           int      `form:"page"`
	PageSize       int      `form:"page_size"`
}

// SearchRecipeInfo 搜索结果中的菜谱信息
type SearchRecipeInfo struct {
	ID          int64               `json:"id"`
	AuthorID    int64               `json:"author_id"`
	AuthorName  string              `json:"author_name"`
	Name        string              `json:"name"`
	Image       string              `json:"image"`
	CookingTime int                 `json:"cooking_time"`
	Tags        []string            `json:"tags"`
	CreatedAt   time.Time           `json:"created_at"`
	Highlight   map[string][]string `json:"highlight,omitempty"`
}

// SearchRecipeData 搜索结果
type SearchRecipeData struct {
	Recipes    []SearchRecipeInfo `json:"recipes"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalPages int64              `json:"total_pages"`
}
