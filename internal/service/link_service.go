package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"foodgram-go/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrLinkNotFound = errors.New("短链接不存在")

// LinkCodes 短链接码的双向映射存储，生产实现位于 infra/redis
type LinkCodes interface {
	SaveCode(ctx context.Context, code string, recipeID int64) error
	RecipeIDByCode(ctx context.Context, code string) (int64, bool, error)
	CodeByRecipeID(ctx context.Context, recipeID int64) (string, bool, error)
}

// ShortLinkService 菜谱短链接服务，同一菜谱的短链接保持稳定
type ShortLinkService struct {
	codes      LinkCodes
	recipeRepo *repository.RecipeRepository
	baseURL    string
}

func NewShortLinkService(codes LinkCodes, recipeRepo *repository.RecipeRepository, baseURL string) *ShortLinkService {
	return &ShortLinkService{
		codes:      codes,
		recipeRepo: recipeRepo,
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// GetOrCreate 返回菜谱的短链接，尚未生成时分配一个新码
func (s *ShortLinkService) GetOrCreate(recipeID int64) (string, error) {
	if _, err := s.recipeRepo.GetByID(recipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrRecipeNotFound
		}
		return "", err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	code, ok, err := s.codes.CodeByRecipeID(ctx, recipeID)
	if err != nil {
		return "", err
	}
	if !ok {
		code = newLinkCode()
		if err := s.codes.SaveCode(ctx, code, recipeID); err != nil {
			return "", err
		}
	}

	return fmt.Sprintf("%s/s/%s", s.baseURL, code), nil
}

// Resolve 根据短码查询菜谱ID
func (s *ShortLinkService) Resolve(code string) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	recipeID, ok, err := s.codes.RecipeIDByCode(ctx, code)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrLinkNotFound
	}
	return recipeID, nil
}

// newLinkCode 取 UUID 去掉连字符后的前 8 位作为短码
func newLinkCode() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
