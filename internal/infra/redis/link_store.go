package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const (
	// 短链接码 -> 菜谱ID
	linkCodeKeyPrefix = "shortlink:code:"
	// 菜谱ID -> 短链接码，保证同一菜谱的短链接稳定
	linkRecipeKeyPrefix = "shortlink:recipe:"
)

// LinkStore 基于Redis的短链接双向映射存储
type LinkStore struct {
	client *redis.Client
}

func NewLinkStore(client *redis.Client) *LinkStore {
	return &LinkStore{client: client}
}

// SaveCode 保存短链接码与菜谱ID的双向映射
func (s *LinkStore) SaveCode(ctx context.Context, code string, recipeID int64) error {
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, linkCodeKeyPrefix+code, recipeID, 0)
	pipe.Set(ctx, linkRecipeKeyPrefix+strconv.FormatInt(recipeID, 10), code, 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save short link: %w", err)
	}
	return nil
}

// RecipeIDByCode 根据短链接码查询菜谱ID，未找到时第二个返回值为false
func (s *LinkStore) RecipeIDByCode(ctx context.Context, code string) (int64, bool, error) {
	val, err := s.client.Get(ctx, linkCodeKeyPrefix+code).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to get short link: %w", err)
	}
	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("invalid short link value: %w", err)
	}
	return id, true, nil
}

// CodeByRecipeID 根据菜谱ID查询已有短链接码，未找到时第二个返回值为false
func (s *LinkStore) CodeByRecipeID(ctx context.Context, recipeID int64) (string, bool, error) {
	val, err := s.client.Get(ctx, linkRecipeKeyPrefix+strconv.FormatInt(recipeID, 10)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to get short link code: %w", err)
	}
	return val, true, nil
}
