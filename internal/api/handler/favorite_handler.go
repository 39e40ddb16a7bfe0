package handler

import (
	"errors"
	"strconv"

	"foodgram-go/internal/api/middleware"
	"foodgram-go/internal/api/response"
	"foodgram-go/internal/service"
	"foodgram-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type FavoriteHandler struct {
	favoriteService *service.MarkService
}

func NewFavoriteHandler(favoriteService *service.MarkService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

// Add 收藏菜谱
// @Summary 收藏菜谱
// @Description 将指定菜谱加入收藏
// @Tags 收藏
// @Produce json
// @Security BearerAuth
// @Param recipe_id path int true "菜谱ID"
// @Success 201 {object} response.Response{data=dto.RecipeMinimal} "收藏成功"
// @Failure 400 {object} response.ErrorResponse "已收藏"
// @Failure 404 {object} response.ErrorResponse "菜谱不存在"
// @Router /recipes/{recipe_id}/favorite [post]
func (h *FavoriteHandler) Add(c *gin.Context) {
	recipeID, err := strconv.ParseInt(c.Param("recipe_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的菜谱ID")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	minimal, err := h.favoriteService.Add(userID, recipeID)
	if err != nil {
		handleFavoriteError(c, err)
		return
	}

	response.Created(c, "收藏成功", minimal)
}

// Remove 取消收藏
// @Summary 取消收藏
// @Description 将指定菜谱移出收藏
// @Tags 收藏
// @Produce json
// @Security BearerAuth
// @Param recipe_id path int true "菜谱ID"
// @Success 204 "取消收藏成功"
// @Failure 400 {object} response.ErrorResponse "未收藏"
// @Failure 404 {object} response.ErrorResponse "菜谱不存在"
// @Router /recipes/{recipe_id}/favorite [delete]
func (h *FavoriteHandler) Remove(c *gin.Context) {
	recipeID, err := strconv.ParseInt(c.Param("recipe_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的菜谱ID")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	if err := h.favoriteService.Remove(userID, recipeID); err != nil {
		handleFavoriteError(c, err)
		return
	}

	response.NoContent(c)
}

func handleFavoriteError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAlreadyFavorited):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrNotFavorited):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrRecipeNotFound):
		response.NotFound(c, err.Error())
	default:
		logger.Error("Favorite operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
