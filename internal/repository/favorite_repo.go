package repository

import (
	"foodgram-go/internal/model"

	"gorm.io/gorm"
)

type FavoriteRepository struct {
	db *gorm.DB
}

func NewFavoriteRepository(db *gorm.DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Create 插入收藏记录
// 唯一约束冲突由调用方通过 gorm.ErrDuplicatedKey 识别
func (r *FavoriteRepository) Create(userID, recipeID int64) error {
	fav := &model.Favorite{UserID: userID, RecipeID: recipeID}
	return r.db.Create(fav).Error
}

// Delete 删除收藏记录，返回是否确实删除了一行
func (r *FavoriteRepository) Delete(userID, recipeID int64) (bool, error) {
	result := r.db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).Delete(&model.Favorite{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Exists 检查收藏记录是否存在
func (r *FavoriteRepository) Exists(userID, recipeID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).Count(&count).Error
	return count > 0, err
}

// BatchCheck 批量查询收藏状态
func (r *FavoriteRepository) BatchCheck(userID int64, recipeIDs []int64) (map[int64]bool, error) {
	if len(recipeIDs) == 0 {
		return map[int64]bool{}, nil
	}

	var markedIDs []int64
	err := r.db.Model(&model.Favorite{}).
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

// RecipeIDs 获取用户收藏的全部菜谱 ID
func (r *FavoriteRepository) RecipeIDs(userID int64) ([]int64, error) {
	var ids []int64
	err := r.db.Model(&model.Favorite{}).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Pluck("recipe_id", &ids).Error
	return ids, err
}
