package model

import "time"

// Tag 菜谱标签模型，名称、颜色、别名均全局唯一
type Tag struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;comment:标签标识" json:"id"`
	Name      string    `gorm:"size:64;not null;uniqueIndex;comment:标签名称" json:"name"`
	Color     string    `gorm:"size:16;not null;uniqueIndex;comment:标签颜色（HEX）" json:"color"`
	Slug      string    `gorm:"size:64;not null;uniqueIndex;comment:标签别名" json:"slug"`
	CreatedAt time.Time `gorm:"autoCreateTime;comment:创建时间" json:"created_at"`
}

func (Tag) TableName() string {
	return "tags"
}
