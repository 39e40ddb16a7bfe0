package repository

import (
	"foodgram-go/internal/model"

	"gorm.io/gorm"
)

type TagRepository struct {
	db *gorm.DB
}

func NewTagRepository(db *gorm.DB) *TagRepository {
	return &TagRepository{db: db}
}

// List 获取全部标签（数据量小，不分页）
func (r *TagRepository) List() ([]model.Tag, error) {
	var tags []model.Tag
	err := r.db.Order("id ASC").Find(&tags).Error
	return tags, err
}

// GetByID 根据 ID 查询标签
func (r *TagRepository) GetByID(id int64) (*model.Tag, error) {
	var tag model.Tag
	err := r.db.Where("id = ?", id).First(&tag).Error
	if err != nil {
		return nil, err
	}
	return &tag, nil
}

// GetByIDs 批量查询标签（菜谱写入校验用）
func (r *TagRepository) GetByIDs(ids []int64) ([]model.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var tags []model.Tag
	err := r.db.Where("id IN ?", ids).Find(&tags).Error
	return tags, err
}

// GetBySlugs 根据别名批量查询标签（列表筛选用）
func (r *TagRepository) GetBySlugs(slugs []string) ([]model.Tag, error) {
	if len(slugs) == 0 {
		return nil, nil
	}
	var tags []model.Tag
	err := r.db.Where("slug IN ?", slugs).Find(&tags).Error
	return tags, err
}

// Create 创建标签
func (r *TagRepository) Create(tag *model.Tag) error {
	return r.db.Create(tag).Error
}
