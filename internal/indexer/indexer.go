package indexer

import (
	"context"
	"errors"
	"time"

	infraES "foodgram-go/internal/infra/elasticsearch"
	infraKafka "foodgram-go/internal/infra/kafka"
	"foodgram-go/internal/model"
	"foodgram-go/internal/repository"
	"foodgram-go/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Indexer 消费菜谱事件，维护 Elasticsearch 搜索索引
type Indexer struct {
	recipeRepo *repository.RecipeRepository
}

func New(recipeRepo *repository.RecipeRepository) *Indexer {
	return &Indexer{recipeRepo: recipeRepo}
}

// HandleEvent 处理一条菜谱事件：created/updated 重建文档，deleted 移除文档。
// 事件到达时菜谱可能已经被删除，这种情况也按移除处理
func (ix *Indexer) HandleEvent(event *infraKafka.RecipeEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	switch event.Type {
	case infraKafka.RecipeEventCreated, infraKafka.RecipeEventUpdated:
		return ix.syncRecipe(ctx, event.RecipeID)
	case infraKafka.RecipeEventDeleted:
		return infraES.DeleteRecipe(ctx, event.RecipeID)
	default:
		logger.Warn("Unknown recipe event type, skipping",
			zap.String("type", event.Type),
			zap.Int64("recipe_id", event.RecipeID),
		)
		return nil
	}
}

func (ix *Indexer) syncRecipe(ctx context.Context, recipeID int64) error {
	recipe, err := ix.recipeRepo.GetByIDWithRelations(recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return infraES.DeleteRecipe(ctx, recipeID)
		}
		return err
	}

	authorName, tagSlugs, ingredientNames := docFields(recipe)
	return infraES.SyncRecipe(ctx, recipe, authorName, tagSlugs, ingredientNames)
}

// ReindexAll 全量重建索引，worker 启动时调用一次，保证索引和数据库最终一致
func (ix *Indexer) ReindexAll() (success, failed int, err error) {
	const batchSize = 500

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	for skip := 0; ; skip += batchSize {
		recipes, _, err := ix.recipeRepo.ListWithFilters(skip, batchSize, nil, nil, nil)
		if err != nil {
			return success, failed, err
		}
		if len(recipes) == 0 {
			return success, failed, nil
		}

		docs := make([]infraES.ESRecipeDoc, 0, len(recipes))
		for i := range recipes {
			authorName, tagSlugs, ingredientNames := docFields(&recipes[i])
			docs = append(docs, infraES.BuildRecipeDoc(&recipes[i], authorName, tagSlugs, ingredientNames))
		}

		ok, bad, err := infraES.BulkSyncRecipes(ctx, docs)
		success += ok
		failed += bad
		if err != nil {
			return success, failed, err
		}

		if len(recipes) < batchSize {
			return success, failed, nil
		}
	}
}

// docFields 从菜谱的关联关系中提取索引文档需要的字段
func docFields(r *model.Recipe) (authorName string, tagSlugs []string, ingredientNames []string) {
	if r.Author.ID != 0 {
		authorName = r.Author.Username
	}
	tagSlugs = make([]string, 0, len(r.Tags))
	for i := range r.Tags {
		tagSlugs = append(tagSlugs, r.Tags[i].Slug)
	}
	ingredientNames = make([]string, 0, len(r.Ingredients))
	for i := range r.Ingredients {
		if r.Ingredients[i].Ingredient.ID != 0 {
			ingredientNames = append(ingredientNames, r.Ingredients[i].Ingredient.Name)
		}
	}
	return authorName, tagSlugs, ingredientNames
}
