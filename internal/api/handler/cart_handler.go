package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"foodgram-go/internal/api/middleware"
	"foodgram-go/internal/api/response"
	"foodgram-go/internal/service"
	"foodgram-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CartHandler struct {
	cartService         *service.MarkService
	shoppingListService *service.ShoppingListService
}

func NewCartHandler(cartService *service.MarkService, shoppingListService *service.ShoppingListService) *CartHandler {
	return &CartHandler{
		cartService:         cartService,
		shoppingListService: shoppingListService,
	}
}

// Add 加入购物车
// @Summary 加入购物车
// @Description 将指定菜谱加入购物车
// @Tags 购物车
// @Produce json
// @Security BearerAuth
// @Param recipe_id path int true "菜谱ID"
// @Success 201 {object} response.Response{data=dto.RecipeMinimal} "加入成功"
// @Failure 400 {object} response.ErrorResponse "已在购物车中"
// @Failure 404 {object} response.ErrorResponse "菜谱不存在"
// @Router /recipes/{recipe_id}/shopping_cart [post]
func (h *CartHandler) Add(c *gin.Context) {
	recipeID, err := strconv.ParseInt(c.Param("recipe_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的菜谱ID")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	minimal, err := h.cartService.Add(userID, recipeID)
	if err != nil {
		handleCartError(c, err)
		return
	}

	response.Created(c, "已加入购物车", minimal)
}

// Remove 移出购物车
// @Summary 移出购物车
// @Description 将指定菜谱移出购物车
// @Tags 购物车
// @Produce json
// @Security BearerAuth
// @Param recipe_id path int true "菜谱ID"
// @Success 204 "移出成功"
// @Failure 400 {object} response.ErrorResponse "不在购物车中"
// @Failure 404 {object} response.ErrorResponse "菜谱不存在"
// @Router /recipes/{recipe_id}/shopping_cart [delete]
func (h *CartHandler) Remove(c *gin.Context) {
	recipeID, err := strconv.ParseInt(c.Param("recipe_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的菜谱ID")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	if err := h.cartService.Remove(userID, recipeID); err != nil {
		handleCartError(c, err)
		return
	}

	response.NoContent(c)
}

// DownloadShoppingList 下载购物清单
// @Summary 下载购物清单
// @Description 聚合购物车内全部菜谱的食材用量，以纯文本附件形式下载
// @Tags 购物车
// @Produce plain
// @Security BearerAuth
// @Success 200 {string} string "购物清单文本"
// @Failure 400 {object} response.ErrorResponse "购物车是空的"
// @Router /recipes/download_shopping_cart [get]
func (h *CartHandler) DownloadShoppingList(c *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(c)

	filename, content, err := h.shoppingListService.BuildDocument(userID)
	if err != nil {
		handleCartError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(content))
}

func handleCartError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAlreadyInCart):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrNotInCart):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrEmptyCart):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrRecipeNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	default:
		logger.Error("Cart operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}
