package handler

import (
	"errors"
	"strconv"

	"foodgram-go/internal/api/response"
	"foodgram-go/internal/service"
	"foodgram-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type TagHandler struct {
	tagService *service.TagService
}

func NewTagHandler(tagService *service.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

// List 获取标签列表
// @Summary 获取标签列表
// @Description 获取全部菜谱标签
// @Tags 标签
// @Produce json
// @Success 200 {object} response.Response{data=[]dto.TagInfo} "获取成功"
// @Router /tags [get]
func (h *TagHandler) List(c *gin.Context) {
	items, err := h.tagService.List()
	if err != nil {
		logger.Error("List tags failed", zap.Error(err))
		response.InternalError(c, "获取标签列表失败")
		return
	}

	response.OK(c, "获取标签列表成功", items)
}

// Get 获取标签详情
// @Summary 获取标签详情
// @Description 获取单个标签
// @Tags 标签
// @Produce json
// @Param tag_id path int true "标签ID"
// @Success 200 {object} response.Response{data=dto.TagInfo} "获取成功"
// @Failure 404 {object} response.ErrorResponse "标签不存在"
// @Router /tags/{tag_id} [get]
func (h *TagHandler) Get(c *gin.Context) {
	tagID, err := strconv.ParseInt(c.Param("tag_id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "无效的标签ID")
		return
	}

	tag, err := h.tagService.Get(tagID)
	if err != nil {
		if errors.Is(err, service.ErrTagNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		logger.Error("Get tag failed", zap.Error(err))
		response.InternalError(c, "获取标签失败")
		return
	}

	response.OK(c, "获取标签成功", tag)
}
