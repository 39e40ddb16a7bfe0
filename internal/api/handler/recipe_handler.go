package handler

import (
	"errors"
	"strconv"

	"foodgram-go/internal/api/dto"
	"foodgram-go/internal/api/middleware"
	"foodgram-go/internal/api/response"
	"foodgram-go/internal/service"
	"foodgram-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type RecipeHandler struct {
	recipeService *service.RecipeService
	linkService   *service.ShortLinkService
}

func NewRecipeHandler(recipeService *service.RecipeService, linkService *service.ShortLinkService) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
		linkService:   linkService,
	}
}

// Create 发布菜谱
// @Summary 发布菜谱
// @Description 发布新菜谱，食材和标签至少各一个，图片为 base64 编码
// @Tags 菜谱
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.RecipeCreateRequest true "菜谱信息"
// @Success 201 {object} response.Response{data=dto.RecipeInfo} "发布成功"
// @Failure 400 {object} response.ErrorResponse "菜谱组成不合法"
// @Router /recipes [post]
func (h *RecipeHandler) Create(c *gin.Context) {
	var req dto.RecipeCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	info, err := h.recipeService.Create(userID, &req)
	if err != nil {
		handleRecipeError(c, err)
		return
	}

	response.Created(c, "发布菜谱成功", info)
}

// List 获取菜谱列表
// @Summary 获取菜谱列表
// @Description 按发布时间倒序分页获取菜谱，支持按作者、标签、收藏、购物车过滤
// @Tags 菜谱
// @Produce json
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(6)
// @Param author query int false "作者ID"
// @Param tags query []string false "标签别名，可重复出现" collectionFormat(multi)
// @Param is_favorited query bool false "只看已收藏"
// @Param is_in_shopping_cart query bool false "只看购物车内"
// @Success 200 {object} response.Response{data=dto.RecipeListData} "获取成功"
// @Router /recipes [get]
func (h *RecipeHandler) List(c *gin.Context) {
	var query dto.RecipeListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}
	if query.Page < 1 {
		query.Page = 1
	}
	if query.Limit < 1 || query.Limit > 100 {
		query.Limit = 6
	}

	data, err := h.recipeService.List(&query, currentViewerID(c))
	if err != nil {
		logger.Error("List recipes failed", zap.Error(err))
		response.InternalError(c, "获取菜谱列表失败")
		return
	}

	response.OK(c, "获取菜谱列表成功", data)
}

// Get 获取菜谱详情
// @Summary 获取菜谱详情
// @Description 获取菜谱完整信息，登录状态下附带收藏和购物车标记
// @Tags 菜谱
// @Produce json
// @Param recipe_id path int true "菜谱ID"
// @Success 200 {object} response.Response{data=dto.RecipeInfo} "获取成功"
// @Failure 404 {object} response.ErrorResponse "菜谱不存在"
// @Router /recipes/{recipe_id} [get]
func (h *RecipeHandler) Get(c *gin.Context) {
	recipeID, err := strconv.ParseInt(c.Param("recipe_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的菜谱ID")
		return
	}

	info, err := h.recipeService.GetDetail(recipeID, currentViewerID(c))
	if err != nil {
		handleRecipeError(c, err)
		return
	}

	response.OK(c, "获取菜谱成功", info)
}

// Update 更新菜谱
// @Summary 更新菜谱
// @Description 更新菜谱（仅作者本人），食材和标签整体替换
// @Tags 菜谱
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param recipe_id path int true "菜谱ID"
// @Param request body dto.RecipeUpdateRequest true "菜谱信息"
// @Success 200 {object} response.Response{data=dto.RecipeInfo} "更新成功"
// @Failure 400 {object} response.ErrorResponse "菜谱组成不合法"
// @Failure 403 {object} response.ErrorResponse "不是菜谱作者"
// @Failure 404 {object} response.ErrorResponse "菜谱不存在"
// @Router /recipes/{recipe_id} [patch]
func (h *RecipeHandler) Update(c *gin.Context) {
	recipeID, err := strconv.ParseInt(c.Param("recipe_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的菜谱ID")
		return
	}

	var req dto.RecipeUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	info, err := h.recipeService.Update(recipeID, userID, &req)
	if err != nil {
		handleRecipeError(c, err)
		return
	}

	response.OK(c, "更新菜谱成功", info)
}

// Delete 删除菜谱
// @Summary 删除菜谱
// @Description 删除菜谱（仅作者本人），连同收藏、购物车记录一起删除
// @Tags 菜谱
// @Produce json
// @Security BearerAuth
// @Param recipe_id path int true "菜谱ID"
// @Success 204 "删除成功"
// @Failure 403 {object} response.ErrorResponse "不是菜谱作者"
// @Failure 404 {object} response.ErrorResponse "菜谱不存在"
// @Router /recipes/{recipe_id} [delete]
func (h *RecipeHandler) Delete(c *gin.Context) {
	recipeID, err := strconv.ParseInt(c.Param("recipe_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的菜谱ID")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	if err := h.recipeService.Delete(recipeID, userID); err != nil {
		handleRecipeError(c, err)
		return
	}

	response.NoContent(c)
}

// GetLink 获取菜谱短链接
// @Summary 获取菜谱短链接
// @Description 获取菜谱的短链接，同一菜谱多次请求返回同一链接
// @Tags 菜谱
// @Produce json
// @Param recipe_id path int true "菜谱ID"
// @Success 200 {object} response.Response{data=dto.ShortLinkData} "获取成功"
// @Failure 404 {object} response.ErrorResponse "菜谱不存在"
// @Router /recipes/{recipe_id}/get-link [get]
func (h *RecipeHandler) GetLink(c *gin.Context) {
	recipeID, err := strconv.ParseInt(c.Param("recipe_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的菜谱ID")
		return
	}

	shortLink, err := h.linkService.GetOrCreate(recipeID)
	if err != nil {
		handleRecipeError(c, err)
		return
	}

	response.OK(c, "获取短链接成功", dto.ShortLinkData{ShortLink: shortLink})
}

func handleRecipeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRecipeNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrNotRecipeOwner):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrMissingIngredients),
		errors.Is(err, service.ErrMissingTags),
		errors.Is(err, service.ErrUnknownIngredient),
		errors.Is(err, service.ErrDuplicateIngredient),
		errors.Is(err, service.ErrUnknownTag),
		errors.Is(err, service.ErrDuplicateTag),
		errors.Is(err, service.ErrInvalidImage):
		response.BadRequest(c, err.Error())
	default:
		logger.Error("Recipe operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
