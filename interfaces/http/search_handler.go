package http

import (
	"errors"
	"net/http"

	"tiktok-planner/domain/dto"
	"tiktok-planner/infrastructure/logger"
	"tiktok-planner/usecase"

	"github.com/gin-gonic/gin"
)

type ISearchHandler interface {
	Search(ctx *gin.Context)
}

type SearchHandler struct {
	searchUsecase usecase.ISearchUsecase
}

func NewSearchHandler(searchUsecase usecase.ISearchUsecase) ISearchHandler {
	return &SearchHandler{searchUsecase: searchUsecase}
}

// Search handles GET /api/tiktok/search
func (h *SearchHandler) Search(ctx *gin.Context) {
	var req dto.SearchRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		logger.GetLogger().WithField("error", err).Warn("Failed to bind search query")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: usecase.MsgKeywordsRequired})
		return
	}

	page, err := h.searchUsecase.Search(ctx.Request.Context(), req)
	if err != nil {
		var searchErr *usecase.SearchError
		if errors.As(err, &searchErr) {
			ctx.JSON(searchErr.Status, dto.ErrorResponse{Error: searchErr.Message})
			return
		}
		logger.GetLogger().WithField("error", err).Error("Unclassified search failure")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: usecase.MsgUnexpectedUpstream})
		return
	}

	ctx.JSON(http.StatusOK, page)
}
