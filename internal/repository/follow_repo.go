package repository

import (
	"foodgram-go/internal/model"

	"gorm.io/gorm"
)

type FollowRepository struct {
	db *gorm.DB
}

func NewFollowRepository(db *gorm.DB) *FollowRepository {
	return &FollowRepository{db: db}
}

// Create 插入关注记录
// 唯一约束冲突由调用方通过 gorm.ErrDuplicatedKey 识别
func (r *FollowRepository) Create(userID, authorID int64) error {
	follow := &model.Follow{UserID: userID, AuthorID: authorID}
	return r.db.Create(follow).Error
}

// Delete 删除关注记录，返回是否确实删除了一行
func (r *FollowRepository) Delete(userID, authorID int64) (bool, error) {
	result := r.db.Where("user_id = ? AND author_id = ?", userID, authorID).Delete(&model.Follow{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Exists 检查关注记录是否存在
func (r *FollowRepository) Exists(userID, authorID int64) (bool, error) {
	var count int64
	err := r.db.Model(&model.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).Count(&count).Error
	return count > 0, err
}

// AuthorIDs 获取用户关注的作者 ID 列表（按关注时间倒序，分页）
func (r *FollowRepository) AuthorIDs(userID int64, skip, limit int) ([]int64, error) {
	var ids []int64
	err := r.db.Model(&model.Follow{}).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Offset(skip).Limit(limit).
		Pluck("author_id", &ids).Error
	return ids, err
}

// CountAuthors 统计用户关注的作者数
func (r *FollowRepository) CountAuthors(userID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Follow{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// BatchCheckFollowing 批量查询关注状态
func (r *FollowRepository) BatchCheckFollowing(userID int64, authorIDs []int64) (map[int64]bool, error) {
	if len(authorIDs) == 0 {
		return map[int64]bool{}, nil
	}

	var followedIDs []int64
	err := r.db.Model(&model.Follow{}).
		Where("user_id = ? AND author_id IN ?", userID, authorIDs).
		Pluck("author_id", &followedIDs).Error
	if err != nil {
		return nil, err
	}

	followedSet := make(map[int64]bool, len(followedIDs))
	for _, id := range followedIDs {
		followedSet[id] = true
	}

	result := make(map[int64]bool, len(authorIDs))
	for _, id := range authorIDs {
		result[id] = followedSet[id]
	}
	return result, nil
}
