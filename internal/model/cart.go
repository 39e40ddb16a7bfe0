package model

import "time"

// Cart 购物车模型，(用户, 菜谱) 组合唯一
type Cart struct {
	ID        int64     `gorm:"primaryKey;autoIncrement;comment:购物车记录ID" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:uq_user_recipe_cart;index:idx_carts_user_id;comment:用户ID" json:"user_id"`
	RecipeID  int64     `gorm:"not null;uniqueIndex:uq_user_recipe_cart;index:idx_carts_recipe_id;comment:菜谱ID" json:"recipe_id"`
	CreatedAt time.Time `gorm:"autoCreateTime;comment:加入时间" json:"created_at"`

	// 关联关系
	User   User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Recipe Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"recipe,omitempty"`
}

func (Cart) TableName() string {
	return "carts"
}
