package model

import "time"

// Follow 关注关系模型，用户关注菜谱作者，(用户, 作者) 组合唯一
type Follow struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;comment:关注记录ID" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:uq_user_author_follow;index:idx_follows_user_id;comment:关注者用户ID" json:"user_id"`
	AuthorID  int64     `gorm:"not null;uniqueIndex:uq_user_author_follow;index:idx_follows_author_id;comment:被关注作者ID" json:"author_id"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_follows_created_at;comment:关注时间" json:"created_at"`

	// 关联关系
	User   User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Author User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
}

func (Follow) TableName() string {
	return "follows"
}
