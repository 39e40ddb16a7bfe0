package model

import "time"

// Recipe 菜谱模型，列表默认按发布时间倒序
type Recipe struct {
	ID          int64     `gorm:"primaryKey;autoIncrement;comment:菜谱标识" json:"id"`
	AuthorID    int64     `gorm:"not null;index:idx_recipes_author_id;comment:作者ID" json:"author_id"`
	Name        string    `gorm:"size:200;not null;comment:菜谱名称" json:"name"`
	Text        string    `gorm:"type:text;not null;comment:做法描述" json:"text"`
	Image       string    `gorm:"size:500;not null;comment:成品图URL" json:"image"`
	CookingTime int       `gorm:"not null;comment:烹饪时长（分钟，1-300）" json:"cooking_time"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index:idx_recipes_created_at;comment:发布时间" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime;comment:更新时间" json:"updated_at"`

	// 关联关系
	Author      User               `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	Tags        []Tag              `gorm:"many2many:recipe_tags" json:"tags,omitempty"`
	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID" json:"ingredients,omitempty"`
}

func (Recipe) TableName() string {
	return "recipes"
}
