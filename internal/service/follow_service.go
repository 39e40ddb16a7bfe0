package service

import (
	"errors"

	"foodgram-go/internal/api/dto"
	"foodgram-go/internal/model"
	"foodgram-go/internal/repository"

	"gorm.io/gorm"
)

var (
	ErrCannotFollowSelf = errors.New("不能关注自己")
	ErrAlreadyFollowed  = errors.New("您已经关注过该作者了")
	ErrNotFollowed      = errors.New("您尚未关注该作者")
)

// FollowService 作者关注服务
type FollowService struct {
	followRepo *repository.FollowRepository
	userRepo   *repository.UserRepository
	recipeRepo *repository.RecipeRepository
}

func NewFollowService(
	followRepo *repository.FollowRepository,
	userRepo *repository.UserRepository,
	recipeRepo *repository.RecipeRepository,
) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
		recipeRepo: recipeRepo,
	}
}

// Follow 关注作者，返回作者资料及其最近菜谱、菜谱总数。
// 直接插入，由唯一约束拦截重复关注，不做先查后插。
func (s *FollowService) Follow(userID, authorID int64, recipesLimit int) (*dto.UserWithRecipes, error) {
	if userID == authorID {
		return nil, ErrCannotFollowSelf
	}

	author, err := s.userRepo.GetByID(authorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := s.followRepo.Create(userID, authorID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyFollowed
		}
		return nil, err
	}

	return s.buildAuthorWithRecipes(author, recipesLimit)
}

// Unfollow 取消关注，从未关注过时返回业务错误
func (s *FollowService) Unfollow(userID, authorID int64) error {
	if _, err := s.userRepo.GetByID(authorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	removed, err := s.followRepo.Delete(userID, authorID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotFollowed
	}
	return nil
}

// Subscriptions 获取已关注作者列表（按关注时间倒序），每个作者附带最近菜谱
func (s *FollowService) Subscriptions(userID int64, page, pageSize, recipesLimit int) (*dto.SubscriptionListData, error) {
	skip := (page - 1) * pageSize
	authorIDs, err := s.followRepo.AuthorIDs(userID, skip, pageSize)
	if err != nil {
		return nil, err
	}

	total, err := s.followRepo.CountAuthors(userID)
	if err != nil {
		return nil, err
	}

	authors, err := s.userRepo.GetByIDs(authorIDs)
	if err != nil {
		return nil, err
	}

	// 按关注时间恢复顺序
	authorMap := make(map[int64]*model.User, len(authors))
	for i := range authors {
		authorMap[authors[i].ID] = &authors[i]
	}

	items := make([]dto.UserWithRecipes, 0, len(authorIDs))
	for _, id := range authorIDs {
		author, ok := authorMap[id]
		if !ok {
			continue
		}
		item, err := s.buildAuthorWithRecipes(author, recipesLimit)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)

	return &dto.SubscriptionListData{
		Authors:    items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// buildAuthorWithRecipes 组装作者资料及其最近菜谱，is_subscribed 恒为 true
func (s *FollowService) buildAuthorWithRecipes(author *model.User, recipesLimit int) (*dto.UserWithRecipes, error) {
	recipes, err := s.recipeRepo.ListByAuthor(author.ID, recipesLimit)
	if err != nil {
		return nil, err
	}

	count, err := s.recipeRepo.CountByAuthor(author.ID)
	if err != nil {
		return nil, err
	}

	minimal := make([]dto.RecipeMinimal, 0, len(recipes))
	for i := range recipes {
		minimal = append(minimal, *toRecipeMinimal(&recipes[i]))
	}

	info := toUserInfo(author, true)
	return &dto.UserWithRecipes{
		ID:           info.ID,
		Email:        info.Email,
		Username:     info.Username,
		FirstName:    info.FirstName,
		LastName:     info.LastName,
		Avatar:       info.Avatar,
		IsSubscribed: info.IsSubscribed,
		Recipes:      minimal,
		RecipesCount: count,
	}, nil
}
