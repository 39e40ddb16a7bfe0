package model

import "time"

// Ingredient 食材模型，(名称, 计量单位) 组合全局唯一
type Ingredient struct {
	ID              int64     `gorm:"primaryKey;autoIncrement;comment:食材标识" json:"id"`
	Name            string    `gorm:"size:150;not null;uniqueIndex:uq_ingredient_name_unit;index:idx_ingredients_name;comment:食材名称" json:"name"`
	MeasurementUnit string    `gorm:"size:164;not null;uniqueIndex:uq_ingredient_name_unit;comment:计量单位" json:"measurement_unit"`
	CreatedAt       time.Time `gorm:"autoCreateTime;comment:创建时间" json:"created_at"`
}

func (Ingredient) TableName() string {
	return "ingredients"
}
