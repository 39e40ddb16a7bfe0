package repository

import (
	"foodgram-go/internal/model"

	"gorm.io/gorm"
)

type IngredientRepository struct {
	db *gorm.DB
}

func NewIngredientRepository(db *gorm.DB) *IngredientRepository {
	return &IngredientRepository{db: db}
}

// List 按名称前缀查询食材，prefix 为空时返回全部
// 前端输入联想用，按名称升序
func (r *IngredientRepository) List(prefix string) ([]model.Ingredient, error) {
	query := r.db.Model(&model.Ingredient{})
	if prefix != "" {
		query = query.Where("name LIKE ?", prefix+"%")
	}

	var ingredients []model.Ingredient
	err := query.Order("name ASC").Find(&ingredients).Error
	return ingredients, err
}

// GetByID 根据 ID 查询食材
func (r *IngredientRepository) GetByID(id int64) (*model.Ingredient, error) {
	var ingredient model.Ingredient
	err := r.db.Where("id = ?", id).First(&ingredient).Error
	if err != nil {
		return nil, err
	}
	return &ingredient, nil
}

// GetByIDs 批量查询食材（菜谱写入校验用）
func (r *IngredientRepository) GetByIDs(ids []int64) ([]model.Ingredient, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var ingredients []model.Ingredient
	err := r.db.Where("id IN ?", ids).Find(&ingredients).Error
	return ingredients, err
}

// Create 创建食材
// (名称, 计量单位) 重复由调用方通过 gorm.ErrDuplicatedKey 识别
func (r *IngredientRepository) Create(ingredient *model.Ingredient) error {
	return r.db.Create(ingredient).Error
}
