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

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// GetMe 获取当前用户信息
// @Summary 获取当前用户信息
// @Description 获取当前登录用户自己的资料
// @Tags 用户
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=dto.UserInfo} "获取成功"
// @Router /users/me [get]
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(c)

	userInfo, err := h.userService.GetMe(userID)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, "获取用户信息成功", userInfo)
}

// GetUser 获取用户资料
// @Summary 获取用户资料
// @Description 获取指定用户的公开资料，登录状态下附带关注标记
// @Tags 用户
// @Produce json
// @Param user_id path int true "用户ID"
// @Success 200 {object} response.Response{data=dto.UserInfo} "获取成功"
// @Failure 404 {object} response.ErrorResponse "用户不存在"
// @Router /users/{user_id} [get]
func (h *UserHandler) GetUser(c *gin.Context) {
	targetID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的用户ID")
		return
	}

	userInfo, err := h.userService.GetProfile(targetID, currentViewerID(c))
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, "获取用户信息成功", userInfo)
}

// ListUsers 获取用户列表
// @Summary 获取用户列表
// @Description 按注册先后分页获取用户，登录状态下附带关注标记
// @Tags 用户
// @Produce json
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(6)
// @Success 200 {object} response.Response{data=dto.UserListData} "获取成功"
// @Router /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	page, pageSize := parsePagination(c)

	data, err := h.userService.List(page, pageSize, currentViewerID(c))
	if err != nil {
		logger.Error("List users failed", zap.Error(err))
		response.InternalError(c, "获取用户列表失败")
		return
	}

	response.OK(c, "获取用户列表成功", data)
}

// SetAvatar 设置头像
// @Summary 设置头像
// @Description 上传 base64 编码的图片作为当前用户头像
// @Tags 用户
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AvatarRequest true "头像数据（data URL）"
// @Success 200 {object} response.Response{data=dto.AvatarData} "设置成功"
// @Failure 400 {object} response.ErrorResponse "图片数据格式不正确"
// @Router /users/me/avatar [put]
func (h *UserHandler) SetAvatar(c *gin.Context) {
	var req dto.AvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	userID, _ := middleware.GetCurrentUserID(c)

	avatarURL, err := h.userService.SetAvatar(userID, req.Avatar)
	if err != nil {
		handleUserError(c, err)
		return
	}

	response.OK(c, "设置头像成功", dto.AvatarData{Avatar: avatarURL})
}

// DeleteAvatar 移除头像
// @Summary 移除头像
// @Description 移除当前用户的头像
// @Tags 用户
// @Produce json
// @Security BearerAuth
// @Success 204 "移除成功"
// @Router /users/me/avatar [delete]
func (h *UserHandler) DeleteAvatar(c *gin.Context) {
	userID, _ := middleware.GetCurrentUserID(c)

	if err := h.userService.DeleteAvatar(userID); err != nil {
		handleUserError(c, err)
		return
	}

	response.NoContent(c)
}

func handleUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrInvalidImage):
		response.BadRequest(c, err.Error())
	default:
		logger.Error("User operation failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
	}
}

// currentViewerID 获取可选认证下的查看者ID，匿名访问时返回 nil
func currentViewerID(c *gin.Context) *int64 {
	if userID, ok := middleware.GetCurrentUserID(c); ok {
		return &userID
	}
	return nil
}
