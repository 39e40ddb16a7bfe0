package model

// RecipeIngredient 菜谱与食材的关联模型，携带用量，(菜谱, 食材) 组合唯一
type RecipeIngredient struct {
	ID           int64 `gorm:"primaryKey;autoIncrement;comment:关联记录ID" json:"id"`
	RecipeID     int64 `gorm:"not null;uniqueIndex:uq_recipe_ingredient;index:idx_recipe_ingredients_recipe_id;comment:菜谱ID" json:"recipe_id"`
	IngredientID int64 `gorm:"not null;uniqueIndex:uq_recipe_ingredient;comment:食材ID" json:"ingredient_id"`
	Amount       int   `gorm:"not null;comment:用量（1-32667）" json:"amount"`

	// 关联关系
	Recipe     Recipe     `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE" json:"recipe,omitempty"`
	Ingredient Ingredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE" json:"ingredient,omitempty"`
}

func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}
