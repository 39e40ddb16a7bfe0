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

type FollowHandler struct {
	followService *service.FollowService
}

func NewFollowHandler(followService *service.FollowService) *FollowHandler {
	return &FollowHandler{followService: followService}
}

// Follow 关注作者
// @Summary 关注作者
// @Description 关注指定作者，返回作者资料及其最近菜谱
// @Tags 关注
// @Produce json
// @Security BearerAuth
// @Param user_id path int true "作者ID"
// @Param recipes_limit query int false "返回的菜谱数量上限" default(6)
// @Success 201 {object} response.Response{data=dto.UserWithRecipes} "关注成功"
// @Failure 400 {object} response.ErrorResponse "已关注或不能关注自己"
// @Failure 404 {object} response.ErrorResponse "用户不存在"
// @Router /users/{user_id}/subscribe [post]
func (h *FollowHandler) Follow(c *gin.Context) {
	authorID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的用户ID")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	data, err := h.followService.Follow(userID, authorID, parseRecipesLimit(c))
	if err != nil {
		handleFollowError(c, err)
		return
	}

	response.Created(c, "关注成功", data)
}

// Unfollow 取消关注
// @Summary 取消关注
// @Description 取消对指定作者的关注
// @Tags 关注
// @Produce json
// @Security BearerAuth
// @Param user_id path int true "作者ID"
// @Success 204 "取消关注成功"
// @Failure 400 {object} response.ErrorResponse "未关注该作者"
// @Failure 404 {object} response.ErrorResponse "用户不存在"
// @Router /users/{user_id}/subscribe [delete]
func (h *FollowHandler) Unfollow(c *gin.Context) {
	authorID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的用户ID")
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	if err := h.followService.Unfollow(userID, authorID); err != nil {
		handleFollowError(c, err)
		return
	}

	response.NoContent(c)
}

// Subscriptions 获取已关注作者列表
// @Summary 获取已关注作者列表
// @Description 按关注时间倒序分页获取已关注的作者，每个作者附带最近菜谱
// @Tags 关注
// @Produce json
// @Security BearerAuth
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(6)
// @Param recipes_limit query int false "每个作者返回的菜谱数量上限" default(6)
// @Success 200 {object} response.Response{data=dto.SubscriptionListData} "获取成功"
// @Router /users/subscriptions [get]
func (h *FollowHandler) Subscriptions(c *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(c)
	page, pageSize := parsePagination(c)

	data, err := h.followService.Subscriptions(userID, page, pageSize, parseRecipesLimit(c))
	if err != nil {
		logger.Error("Get subscriptions failed", zap.Error(err))
		response.InternalError(c, "获取关注列表失败")
		return
	}

	response.OK(c, "获取关注列表成功", data)
}

func handleFollowError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCannotFollowSelf):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrAlreadyFollowed):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrNotFollowed):
		response.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	default:
		logger.Error("Follow operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}

func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("limit", "6"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 6
	}
	return page, pageSize
}

func parseRecipesLimit(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("recipes_limit", "6"))
	if err != nil || limit < 0 || limit > 100 {
		return 6
	}
	return limit
}
