package service

import (
	"errors"

	"foodgram-go/internal/api/dto"
	"foodgram-go/internal/model"
	"foodgram-go/internal/repository"

	"gorm.io/gorm"
)

var ErrIngredientNotFound = errors.New("食材不存在")

// IngredientService 食材只读服务，食材由导入工具维护
type IngredientService struct {
	ingredientRepo *repository.IngredientRepository
}

func NewIngredientService(ingredientRepo *repository.IngredientRepository) *IngredientService {
	return &IngredientService{ingredientRepo: ingredientRepo}
}

// List 获取食材列表，支持按名称前缀过滤
func (s *IngredientService) List(namePrefix string) ([]dto.IngredientInfo, error) {
	ingredients, err := s.ingredientRepo.List(namePrefix)
	if err != nil {
		return nil, err
	}

	items := make([]dto.IngredientInfo, 0, len(ingredients))
	for i := range ingredients {
		items = append(items, *toIngredientInfo(&ingredients[i]))
	}
	return items, nil
}

// Get 获取单个食材
func (s *IngredientService) Get(id int64) (*dto.IngredientInfo, error) {
	ingredient, err := s.ingredientRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIngredientNotFound
		}
		return nil, err
	}
	return toIngredientInfo(ingredient), nil
}

// toIngredientInfo 将 model.Ingredient 转换为 dto.IngredientInfo
func toIngredientInfo(ingredient *model.Ingredient) *dto.IngredientInfo {
	return &dto.IngredientInfo{
		ID:              ingredient.ID,
		Name:            ingredient.Name,
		MeasurementUnit: ingredient.MeasurementUnit,
	}
}
