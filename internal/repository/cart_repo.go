package repository

import (
	"foodgram-go/internal/model"

	"gorm.io/gorm"
)

// ShoppingItem 购物清单聚合结果行
// 按 (食材名称, 计量单位) 分组求和后的一行
type ShoppingItem struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	TotalAmount     int64  `json:"total_amount"`
}

type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

// Create 插入购物车记录
// 唯一约束冲突由调用方通过 gorm.ErrDuplicatedKey 识别
func (r *CartRepository) Create(userID, recipeID int64) error {
	cart := &model.Cart{UserID: userID, RecipeID: recipeID}
	return r.db.Create(cart).Error
}

// Delete 删除购物车记录，返回是否确实删除了一行
func (r *CartRepository) Delete(userID, recipeID int64) (bool, error) {
	result := r.db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&model.Cart{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Exists 检查购物车记录是否存在
func (r *CartRepository) Exists(userID, recipeID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Cart{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).Count(&count).Error
	return count > 0, err
}

// BatchCheck 批量查询购物车状态
func (r *CartRepository) BatchCheck(userID int64, recipeIDs []int64) (map[int64]bool, error) {
	if len(recipeIDs) == 0 {
		return map[int64]bool{}, nil
	}

	var markedIDs []int64
	err := r.db.Model(&model.Cart{}).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &markedIDs).Error
	if err != nil {
		return nil, err
	}

	markedSet := make(map[int64]bool, len(markedIDs))
	for _, id := range markedIDs {
		markedSet[id] = true
	}

	result := make(map[int64]bool, len(recipeIDs))
	for _, id := range recipeIDs {
		result[id] = markedSet[id]
	}
	return result, nil
}

// RecipeIDs 获取用户购物车内的全部菜谱 ID
func (r *CartRepository) RecipeIDs(userID int64) ([]int64, error) {
	var ids []int64
	err := r.db.Model(&model.Cart{}).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Pluck("recipe_id", &ids).Error
	return ids, err
}

// CountByUser 统计用户购物车内的菜谱数
func (r *CartRepository) CountByUser(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Cart{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// AggregateShoppingList 聚合用户购物车的全部食材用量
// 按 (名称, 计量单位) 分组求和，跨菜谱的同名食材会合并；
// 输出按名称、计量单位升序，保证结果确定
func (r *CartRepository) AggregateShoppingList(userID int64) ([]ShoppingItem, error) {
	var items []ShoppingItem
	err := r.db.Table("recipe_ingredients").
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(recipe_ingredients.amount) AS total_amount").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN carts ON carts.recipe_id = recipe_ingredients.recipe_id").
		Where("carts.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name ASC, ingredients.measurement_unit ASC").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
