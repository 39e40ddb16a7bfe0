package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"foodgram-go/internal/api/response"
	"foodgram-go/internal/service"
	"foodgram-go/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type LinkHandler struct {
	linkService *service.ShortLinkService
	frontendURL string
}

func NewLinkHandler(linkService *service.ShortLinkService, frontendURL string) *LinkHandler {
	return &LinkHandler{
		linkService: linkService,
		frontendURL: strings.TrimRight(frontendURL, "/"),
	}
}

// Resolve 短链接跳转
// @Summary 短链接跳转
// @Description 根据短码跳转到对应菜谱的前端页面
// @Tags 菜谱
// @Param code path string true "短码"
// @Success 302 "跳转到菜谱页面"
// @Failure 404 {object} response.ErrorResponse "短链接不存在"
// @Router /s/{code} [get]
func (h *LinkHandler) Resolve(c *gin.Context) {
	recipeID, err := h.linkService.Resolve(c.Param("code"))
	if err != nil {
		if errors.Is(err, service.ErrLinkNotFound) {
			response.NotFound(c, err.Error())
			return
		}
		logger.Error("Resolve short link failed", zap.Error(err))
		response.InternalError(c, "操作失败，请稍后重试")
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("%s/recipes/%d", h.frontendURL, recipeID))
}
