package repository

import (
	"foodgram-go/internal/model"

	"gorm.io/gorm"
)

type RecipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// GetByID 根据 ID 获取菜谱
func (r *RecipeRepository) GetByID(id int64) (*model.Recipe, error) {
	var recipe model.Recipe
	err := r.db.Where("id = ?", id).First(&recipe).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// GetByIDWithRelations 根据 ID 获取菜谱（含作者、标签、食材关联）
func (r *RecipeRepository) GetByIDWithRelations(id int64) (*model.Recipe, error) {
	var recipe model.Recipe
	err := r.db.
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Where("id = ?", id).First(&recipe).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// GetByIDAndAuthor 根据菜谱 ID + 作者 ID 查询（权限校验用）
func (r *RecipeRepository) GetByIDAndAuthor(recipeID, authorID int64) (*model.Recipe, error) {
	var recipe model.Recipe
	err := r.db.Where("id = ? AND author_id = ?", recipeID, authorID).First(&recipe).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// CreateWithAssociations 在一个事务里创建菜谱及其食材、标签关联
// 任一步失败整体回滚，不留下部分写入
func (r *RecipeRepository) CreateWithAssociations(recipe *model.Recipe, items []model.RecipeIngredient, tags []model.Tag) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Author", "Tags", "Ingredients").Create(recipe).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].RecipeID = recipe.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}

		return tx.Model(recipe).Association("Tags").Replace(tags)
	})
}

// UpdateWithAssociations 在一个事务里更新菜谱字段并全量替换食材、标签关联
// 关联采用先清空后重建语义，而不是增量对比
func (r *RecipeRepository) UpdateWithAssociations(recipe *model.Recipe, updates map[string]interface{}, items []model.RecipeIngredient, tags []model.Tag) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			result := tx.Model(&model.Recipe{}).Where("id = ?", recipe.ID).Updates(updates)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return gorm.ErrRecordNotFound
			}
		}

		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&model.RecipeIngredient{}).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].ID = 0
			items[i].RecipeID = recipe.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}

		return tx.Model(recipe).Association("Tags").Replace(tags)
	})
}

// DeleteWithAssociations 在一个事务里删除菜谱及其全部关联行
func (r *RecipeRepository) DeleteWithAssociations(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&model.RecipeIngredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&model.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&model.Cart{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Recipe{ID: id}).Association("Tags").Clear(); err != nil {
			return err
		}

		result := tx.Delete(&model.Recipe{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// ListWithFilters 菜谱列表查询（分页、筛选，按发布时间倒序）
// tagSlugs 之间是 OR 关系；restrictIDs 非空时只返回这些 ID 内的菜谱
func (r *RecipeRepository) ListWithFilters(skip, limit int, authorID *int64, tagSlugs []string, restrictIDs []int64) ([]model.Recipe, int64, error) {
	query := r.db.Model(&model.Recipe{})

	if authorID != nil {
		query = query.Where("recipes.author_id = ?", *authorID)
	}
	if len(tagSlugs) > 0 {
		sub := r.db.Table("recipe_tags").
			Select("recipe_tags.recipe_id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", tagSlugs)
		query = query.Where("recipes.id IN (?)", sub)
	}
	if len(restrictIDs) > 0 {
		query = query.Where("recipes.id IN ?", restrictIDs)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var recipes []model.Recipe
	err := query.
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Order("recipes.created_at DESC, recipes.id DESC").
		Offset(skip).Limit(limit).
		Find(&recipes).Error
	if err != nil {
		return nil, 0, err
	}

	return recipes, total, nil
}

// ListByAuthor 获取作者最近发布的菜谱（关注列表用）
func (r *RecipeRepository) ListByAuthor(authorID int64, limit int) ([]model.Recipe, error) {
	var recipes []model.Recipe
	err := r.db.Where("author_id = ?", authorID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&recipes).Error
	return recipes, err
}

// CountByAuthor 统计作者发布的菜谱总数
func (r *RecipeRepository) CountByAuthor(authorID int64) (int64, error) {
	var count int64
	err := r.db.Model(&model.Recipe{}).Where("author_id = ?", authorID).Count(&count).Error
	return count, err
}

// GetByIDsWithRelations 批量获取菜谱（含关联，搜索结果回填用）
func (r *RecipeRepository) GetByIDsWithRelations(ids []int64) ([]model.Recipe, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var recipes []model.Recipe
	err := r.db.
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Where("id IN ?", ids).
		Find(&recipes).Error
	return recipes, err
}

// SearchByName 按名称模糊搜索（搜索服务的数据库兜底路径）
func (r *RecipeRepository) SearchByName(keyword string, skip, limit int) ([]model.Recipe, int64, error) {
	query := r.db.Model(&model.Recipe{}).
		Where("name ILIKE ?", "%"+keyword+"%")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var recipes []model.Recipe
	err := query.
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Order("created_at DESC, id DESC").
		Offset(skip).Limit(limit).
		Find(&recipes).Error
	if err != nil {
		return nil, 0, err
	}

	return recipes, total, nil
}
