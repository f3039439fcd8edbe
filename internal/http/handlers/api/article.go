package api

import (
	"strings"

	handlershared "github.com/millerserhii/shipment-tracking-api/internal/http/handlers/shared"
	"github.com/millerserhii/shipment-tracking-api/internal/http/response"
	"github.com/millerserhii/shipment-tracking-api/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListArticles returns the article catalogue. The endpoint is open
// for reading.
func (h *Handler) ListArticles(c *gin.Context) {
	if !h.ArticlePolicy.AllowRequest(getPrincipal(c), c.Request.Method, 0) {
		response.Forbidden(c)
		return
	}

	page, pageSize := handlershared.NormalizePagination(parsePagination(c))
	filter := repository.ArticleListFilter{
		Name:     strings.TrimSpace(c.Query("name")),
		SKU:      strings.TrimSpace(c.Query("sku")),
		Page:     page,
		PageSize: pageSize,
	}

	items, total, err := h.ArticleService.List(filter)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.SuccessWithPage(c, items, handlershared.BuildPagination(page, pageSize, total))
}

// GetArticle returns one article by id.
func (h *Handler) GetArticle(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		response.BadRequest(c, "invalid id")
		return
	}

	article, err := h.ArticleService.GetByID(id, false)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if !h.ArticlePolicy.AllowObject(getPrincipal(c), c.Request.Method, article) {
		response.Forbidden(c)
		return
	}
	response.Success(c, article)
}
