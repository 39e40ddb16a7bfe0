package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"foodgram-go/internal/api/dto"
	infraKafka "foodgram-go/internal/infra/kafka"
	infraMinio "foodgram-go/internal/infra/minio"
	"foodgram-go/internal/model"
	"foodgram-go/internal/repository"
	"foodgram-go/pkg/logger"
	"foodgram-go/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrRecipeNotFound      = errors.New("菜谱不存在")
	ErrNotRecipeOwner      = errors.New("只有作者本人可以修改或删除菜谱")
	ErrInvalidImage        = errors.New("图片数据格式不正确")
	ErrMissingIngredients  = errors.New("菜谱至少需要一种食材")
	ErrMissingTags         = errors.New("菜谱至少需要一个标签")
	ErrUnknownIngredient   = errors.New("存在未知的食材")
	ErrDuplicateIngredient = errors.New("食材不能重复")
	ErrUnknownTag          = errors.New("存在未知的标签")
	ErrDuplicateTag        = errors.New("标签不能重复")
)

// ImageStore 图片存储，生产实现位于 infra/minio
type ImageStore interface {
	UploadImage(ctx context.Context, bucket, objectName string, data []byte, contentType string) (string, error)
}

// EventPublisher 菜谱事件发布，生产实现位于 infra/kafka
type EventPublisher interface {
	PublishRecipeEvent(ctx context.Context, eventType string, recipeID, authorID int64) error
}

type RecipeService struct {
	recipeRepo     *repository.RecipeRepository
	tagRepo        *repository.TagRepository
	ingredientRepo *repository.IngredientRepository
	favoriteRepo   *repository.FavoriteRepository
	cartRepo       *repository.CartRepository
	followRepo     *repository.FollowRepository
	images         ImageStore
	events         EventPublisher
}

func NewRecipeService(
	recipeRepo *repository.RecipeRepository,
	tagRepo *repository.TagRepository,
	ingredientRepo *repository.IngredientRepository,
	favoriteRepo *repository.FavoriteRepository,
	cartRepo *repository.CartRepository,
	followRepo *repository.FollowRepository,
	images ImageStore,
	events EventPublisher,
) *RecipeService {
	return &RecipeService{
		recipeRepo:     recipeRepo,
		tagRepo:        tagRepo,
		ingredientRepo: ingredientRepo,
		favoriteRepo:   favoriteRepo,
		cartRepo:       cartRepo,
		followRepo:     followRepo,
		images:         images,
		events:         events,
	}
}

// Create 发布菜谱：校验组成、上传图片、事务写入、发布事件
func (s *RecipeService) Create(authorID int64, req *dto.RecipeCreateRequest) (*dto.RecipeInfo, error) {
	items, tags, err := s.validateComposition(req.Ingredients, req.Tags)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	imageURL, err := s.uploadRecipeImage(ctx, authorID, req.Image)
	if err != nil {
		return nil, err
	}

	recipe := &model.Recipe{
		AuthorID:    authorID,
		Name:        req.Name,
		Text:        req.Text,
		Image:       imageURL,
		CookingTime: req.CookingTime,
	}

	if err := s.recipeRepo.CreateWithAssociations(recipe, items, tags); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, infraKafka.RecipeEventCreated, recipe.ID, authorID)

	return s.GetDetail(recipe.ID, &authorID)
}

// Update 更新菜谱（仅作者本人），食材和标签整体替换
func (s *RecipeService) Update(recipeID, currentUserID int64, req *dto.RecipeUpdateRequest) (*dto.RecipeInfo, error) {
	recipe, err := s.recipeRepo.GetByID(recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	if recipe.AuthorID != currentUserID {
		return nil, ErrNotRecipeOwner
	}

	items, tags, err := s.validateComposition(req.Ingredients, req.Tags)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"name":         req.Name,
		"text":         req.Text,
		"cooking_time": req.CookingTime,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// 更新时图片可以不传，不传则保留原图
	if req.Image != "" {
		imageURL, err := s.uploadRecipeImage(ctx, recipe.AuthorID, req.Image)
		if err != nil {
			return nil, err
		}
		updates["image"] = imageURL
	}

	if err := s.recipeRepo.UpdateWithAssociations(recipe, updates, items, tags); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, infraKafka.RecipeEventUpdated, recipeID, recipe.AuthorID)

	return s.GetDetail(recipeID, &currentUserID)
}

// Delete 删除菜谱（仅作者本人），连同收藏、购物车等关联一起删除
func (s *RecipeService) Delete(recipeID, currentUserID int64) error {
	recipe, err := s.recipeRepo.GetByID(recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecipeNotFound
		}
		return err
	}
	if recipe.AuthorID != currentUserID {
		return ErrNotRecipeOwner
	}

	if err := s.recipeRepo.DeleteWithAssociations(recipeID); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.publishEvent(ctx, infraKafka.RecipeEventDeleted, recipeID, recipe.AuthorID)

	return nil
}

// GetDetail 获取菜谱详情，viewerID 为空时所有标记位为 false
func (s *RecipeService) GetDetail(recipeID int64, viewerID *int64) (*dto.RecipeInfo, error) {
	recipe, err := s.recipeRepo.GetByIDWithRelations(recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	infos, err := s.buildRecipeInfos([]model.Recipe{*recipe}, viewerID)
	if err != nil {
		return nil, err
	}
	return &infos[0], nil
}

// List 获取菜谱列表，支持按作者、标签、收藏、购物车过滤
func (s *RecipeService) List(query *dto.RecipeListQuery, viewerID *int64) (*dto.RecipeListData, error) {
	page, limit := query.Page, query.Limit

	restrict, hasRestrict, err := s.resolveMarkFilters(query, viewerID)
	if err != nil {
		return nil, err
	}
	if hasRestrict && len(restrict) == 0 {
		return buildRecipeListData(nil, 0, page, limit), nil
	}

	skip := (page - 1) * limit
	recipes, total, err := s.recipeRepo.ListWithFilters(skip, limit, query.Author, query.Tags, restrict)
	if err != nil {
		return nil, err
	}

	infos, err := s.buildRecipeInfos(recipes, viewerID)
	if err != nil {
		return nil, err
	}

	data := buildRecipeListData(infos, total, page, limit)
	return data, nil
}

// resolveMarkFilters 将收藏/购物车过滤条件换算成菜谱ID白名单。
// 两个条件同时出现时取交集；匿名访问时条件被忽略。
func (s *RecipeService) resolveMarkFilters(query *dto.RecipeListQuery, viewerID *int64) ([]int64, bool, error) {
	if viewerID == nil {
		return nil, false, nil
	}

	var restrict []int64
	hasRestrict := false

	if query.IsFavorited {
		ids, err := s.favoriteRepo.RecipeIDs(*viewerID)
		if err != nil {
			return nil, false, err
		}
		restrict, hasRestrict = ids, true
	}
	if query.IsInShoppingCart {
		ids, err := s.cartRepo.RecipeIDs(*viewerID)
		if err != nil {
			return nil, false, err
		}
		if hasRestrict {
			restrict = intersectIDs(restrict, ids)
		} else {
			restrict, hasRestrict = ids, true
		}
	}

	return restrict, hasRestrict, nil
}

// buildRecipeInfos 批量组装菜谱视图，标记位一次性批量查询
func (s *RecipeService) buildRecipeInfos(recipes []model.Recipe, viewerID *int64) ([]dto.RecipeInfo, error) {
	if len(recipes) == 0 {
		return []dto.RecipeInfo{}, nil
	}

	recipeIDs := make([]int64, 0, len(recipes))
	authorIDs := make([]int64, 0, len(recipes))
	for i := range recipes {
		recipeIDs = append(recipeIDs, recipes[i].ID)
		authorIDs = append(authorIDs, recipes[i].AuthorID)
	}

	favorited := map[int64]bool{}
	inCart := map[int64]bool{}
	following := map[int64]bool{}
	if viewerID != nil {
		var err error
		if favorited, err = s.favoriteRepo.BatchCheck(*viewerID, recipeIDs); err != nil {
			return nil, err
		}
		if inCart, err = s.cartRepo.BatchCheck(*viewerID, recipeIDs); err != nil {
			return nil, err
		}
		if following, err = s.followRepo.BatchCheckFollowing(*viewerID, authorIDs); err != nil {
			return nil, err
		}
	}

	infos := make([]dto.RecipeInfo, 0, len(recipes))
	for i := range recipes {
		r := &recipes[i]
		infos = append(infos, *toRecipeInfo(r, favorited[r.ID], inCart[r.ID], following[r.AuthorID]))
	}
	return infos, nil
}

// validateComposition 校验菜谱的食材和标签组成，返回待写入的关联行
func (s *RecipeService) validateComposition(ingredients []dto.IngredientAmountRequest, tagIDs []int64) ([]model.RecipeIngredient, []model.Tag, error) {
	if len(ingredients) == 0 {
		return nil, nil, ErrMissingIngredients
	}
	if len(tagIDs) == 0 {
		return nil, nil, ErrMissingTags
	}

	ingredientIDs := make([]int64, 0, len(ingredients))
	seenIngredients := make(map[int64]bool, len(ingredients))
	for _, item := range ingredients {
		if seenIngredients[item.ID] {
			return nil, nil, ErrDuplicateIngredient
		}
		seenIngredients[item.ID] = true
		ingredientIDs = append(ingredientIDs, item.ID)
	}

	seenTags := make(map[int64]bool, len(tagIDs))
	for _, id := range tagIDs {
		if seenTags[id] {
			return nil, nil, ErrDuplicateTag
		}
		seenTags[id] = true
	}

	found, err := s.ingredientRepo.GetByIDs(ingredientIDs)
	if err != nil {
		return nil, nil, err
	}
	if len(found) != len(ingredientIDs) {
		return nil, nil, ErrUnknownIngredient
	}

	tags, err := s.tagRepo.GetByIDs(tagIDs)
	if err != nil {
		return nil, nil, err
	}
	if len(tags) != len(tagIDs) {
		return nil, nil, ErrUnknownTag
	}

	items := make([]model.RecipeIngredient, 0, len(ingredients))
	for _, item := range ingredients {
		items = append(items, model.RecipeIngredient{
			IngredientID: item.ID,
			Amount:       item.Amount,
		})
	}

	return items, tags, nil
}

// uploadRecipeImage 解析 base64 图片并上传到对象存储，返回公开 URL
func (s *RecipeService) uploadRecipeImage(ctx context.Context, authorID int64, payload string) (string, error) {
	data, ext, contentType, err := utils.DecodeBase64Image(payload)
	if err != nil {
		return "", ErrInvalidImage
	}

	objectName := fmt.Sprintf("%d/%s.%s", authorID, uuid.NewString(), ext)
	imageURL, err := s.images.UploadImage(ctx, infraMinio.BucketRecipeImages, objectName, data, contentType)
	if err != nil {
		return "", fmt.Errorf("上传图片失败: %w", err)
	}
	return imageURL, nil
}

// publishEvent 发布菜谱事件，失败只记日志不影响主流程
func (s *RecipeService) publishEvent(ctx context.Context, eventType string, recipeID, authorID int64) {
	if err := s.events.PublishRecipeEvent(ctx, eventType, recipeID, authorID); err != nil {
		logger.Warn("Publish recipe event failed",
			zap.String("event_type", eventType),
			zap.Int64("recipe_id", recipeID),
			zap.Error(err))
	}
}

// toRecipeMinimal 将 model.Recipe 转换为紧凑视图
func toRecipeMinimal(r *model.Recipe) *dto.RecipeMinimal {
	return &dto.RecipeMinimal{
		ID:          r.ID,
		Name:        r.Name,
		Image:       r.Image,
		CookingTime: r.CookingTime,
	}
}

// toRecipeInfo 将 model.Recipe 转换为完整视图
func toRecipeInfo(r *model.Recipe, isFavorited, isInCart, authorFollowed bool) *dto.RecipeInfo {
	info := &dto.RecipeInfo{
		ID:               r.ID,
		Name:             r.Name,
		Text:             r.Text,
		Image:            r.Image,
		CookingTime:      r.CookingTime,
		IsFavorited:      isFavorited,
		IsInShoppingCart: isInCart,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}

	if r.Author.ID != 0 {
		info.Author = toUserInfo(&r.Author, authorFollowed)
	}

	tags := make([]dto.TagInfo, 0, len(r.Tags))
	for i := range r.Tags {
		tags = append(tags, *toTagInfo(&r.Tags[i]))
	}
	info.Tags = tags

	items := make([]dto.IngredientAmountInfo, 0, len(r.Ingredients))
	for i := range r.Ingredients {
		ri := &r.Ingredients[i]
		items = append(items, dto.IngredientAmountInfo{
			ID:              ri.IngredientID,
			Name:            ri.Ingredient.Name,
			MeasurementUnit: ri.Ingredient.MeasurementUnit,
			Amount:          ri.Amount,
		})
	}
	info.Ingredients = items

	return info
}

func buildRecipeListData(infos []dto.RecipeInfo, total int64, page, pageSize int) *dto.RecipeListData {
	if infos == nil {
		infos = []dto.RecipeInfo{}
	}

	totalPages := (total + int64(pageSize) - 1) / int64(pageSize)

	return &dto.RecipeListData{
		Recipes:    infos,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

func intersectIDs(a, b []int64) []int64 {
	inA := make(map[int64]bool, len(a))
	for _, id := range a {
		inA[id] = true
	}
	out := make([]int64, 0, len(b))
	for _, id := range b {
		if inA[id] {
			out = append(out, id)
		}
	}
	return out
}
