package dto

// AvatarRequest 设置头像请求，data URL 形式的 base64 图片
type AvatarRequest struct {
	Avatar string `json:"avatar" binding:"required"`
}

// AvatarData 设置头像成功后返回的头像地址
type AvatarData struct {
	Avatar string `json:"avatar"`
}

// UserListData 用户列表数据
type UserListData struct {
	Users      []UserInfo `json:"users"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int64      `json:"total_pages"`
}
