package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ludotek/festival-booking-api/internal/api/handler/v1/response"
	"github.com/ludotek/festival-booking-api/internal/domain"
)

type StockService interface {
	FestivalStockSummary(ctx context.Context, festivalID uint) (domain.StockSummary, error)
}

type StockHandler struct {
	svc StockService
}

func NewStockHandler(svc StockService) *StockHandler {
	return &StockHandler{
		svc: svc,
	}
}

// HandleGetStockSummary godoc
// @Summary      Festival stock dashboard
// @Description  Reserved and available table counts by size, chairs, and per-zone occupancy.
// @Tags         stock
// @Produce      json
// @Param        festivalID  path    int  true  "festival ID"
// @Success      200      {object}   domain.StockSummary
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /festivals/{festivalID}/stock [get]
// @Security     BearerAuth
func (h *StockHandler) HandleGetStockSummary(ctx *gin.Context) {
	festivalID, err := parseIDParam(ctx, "festivalID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	summary, err := h.svc.FestivalStockSummary(ctx.Request.Context(), festivalID)
	if err != nil {
		if errors.Is(err, domain.ErrFestivalNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("festival", "ID", festivalID))

			return
		}

		err = fmt.Errorf("v1.HandleGetStockSummary -> h.svc.FestivalStockSummary -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, summary)
}
