package dto

// ShortLinkData 菜谱短链接，字段名与前端约定保持连字符形式
type ShortLinkData struct {
	ShortLink string `json:"short-link"`
}
