package service

import (
	"errors"

	"foodgram-go/internal/api/dto"
	"foodgram-go/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrAlreadyFavorited = errors.New("您已经收藏过该菜谱了")
	ErrNotFavorited     = errors.New("您尚未收藏该菜谱")
	ErrAlreadyInCart    = errors.New("该菜谱已在购物车中")
	ErrNotInCart        = errors.New("该菜谱不在购物车中")
)

// MarkStore 收藏与购物车仓储的公共能力，FavoriteRepository 和 CartRepository 均满足
type MarkStore interface {
	Create(userID, recipeID int64) error
	Delete(userID, recipeID int64) (bool, error)
	Exists(userID, recipeID int64) (bool, error)
	BatchCheck(userID int64, recipeIDs []int64) (map[int64]bool, error)
	RecipeIDs(userID int64) ([]int64, error)
}

// MarkService 用户对菜谱的标记（收藏、购物车）的通用开关服务，
// 两种标记共用同一套语义，只是仓储和错误提示不同
type MarkService struct {
	store      MarkStore
	recipeRepo *repository.RecipeRepository
	errExists  error
	errMissing error
}

func NewFavoriteService(favoriteRepo *repository.FavoriteRepository, recipeRepo *repository.RecipeRepository) *MarkService {
	return &MarkService{
		store:      favoriteRepo,
		recipeRepo: recipeRepo,
		errExists:  ErrAlreadyFavorited,
		errMissing: ErrNotFavorited,
	}
}

func NewCartService(cartRepo *repository.CartRepository, recipeRepo *repository.RecipeRepository) *MarkService {
	return &MarkService{
		store:      cartRepo,
		recipeRepo: recipeRepo,
		errExists:  ErrAlreadyInCart,
		errMissing: ErrNotInCart,
	}
}

// Add 给菜谱打标记，返回菜谱紧凑视图。
// 直接插入，由唯一约束拦截重复标记，不做先查后插。
func (s *MarkService) Add(userID, recipeID int64) (*dto.RecipeMinimal, error) {
	recipe, err := s.recipeRepo.GetByID(recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	if err := s.store.Create(userID, recipeID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.errExists
		}
		return nil, err
	}

	return toRecipeMinimal(recipe), nil
}

// Remove 取消标记，从未标记过时返回业务错误
func (s *MarkService) Remove(userID, recipeID int64) error {
	if _, err := s.recipeRepo.GetByID(recipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecipeNotFound
		}
		return err
	}

	removed, err := s.store.Delete(userID, recipeID)
	if err != nil {
		return err
	}
	if !removed {
		return s.errMissing
	}
	return nil
}
