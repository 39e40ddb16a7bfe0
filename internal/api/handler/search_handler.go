package handler

import (
	"foodgram-go/internal/api/dto"
	"foodgram-go/internal/api/response"
	"foodgram-go/internal/service"
	"foodgram-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SearchHandler struct {
	searchService *service.SearchService
}

func NewSearchHandler(searchService *service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

// SearchRecipes 搜索菜谱
// @Summary 搜索菜谱
// @Description 全文搜索菜谱（名称、食材、做法），支持按作者、标签、烹饪时长过滤
// @Tags 搜索
// @Produce json
// @Param q query string false "关键词"
// @Param author_id query int false "作者ID"
// @Param tags query []string false "标签别名" collectionFormat(multi)
// @Param sort query string false "排序方式：relevance（默认）、time"
// @Param min_cooking_time query int false "最短烹饪时长（分钟）"
// @Param max_cooking_time query int false "最长烹饪时长（分钟）"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(20)
// @Success 200 {object} response.Response{data=dto.SearchRecipeData} "搜索成功"
// @Router /search/recipes [get]
func (h *SearchHandler) SearchRecipes(c *gin.Context) {
	var req dto.SearchRecipeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "请求参数无效: "+err.Error())
		return
	}

	data, err := h.searchService.SearchRecipes(&req)
	if err != nil {
		logger.Error("Search recipes failed", zap.Error(err))
		response.InternalError(c, "搜索失败，请稍后重试")
		return
	}

	response.OK(c, "搜索成功", data)
}
