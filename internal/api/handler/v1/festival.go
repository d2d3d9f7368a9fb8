package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ludotek/festival-booking-api/internal/api/handler/v1/request"
	"github.com/ludotek/festival-booking-api/internal/api/handler/v1/response"
	"github.com/ludotek/festival-booking-api/internal/domain"
)

type FestivalService interface {
	CreateFestival(ctx context.Context, festival domain.Festival) (domain.Festival, error)
	GetFestival(ctx context.Context, id uint) (domain.Festival, error)
	GetFestivals(ctx context.Context) ([]domain.Festival, error)
	CreateZone(ctx context.Context, zone domain.PricingZone) (domain.PricingZone, error)
	GetZones(ctx context.Context, festivalID uint) ([]domain.PricingZone, error)
}

type FestivalHandler struct {
	svc  FestivalService
	uSvc UserService
}

func NewFestivalHandler(svc FestivalService, uSvc UserService) *FestivalHandler {
	return &FestivalHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleCreateFestival godoc
// @Summary      Create a festival
// @Description  Only organizers can create festivals.
// @Tags         festivals
// @Accept       json
// @Produce      json
// @Param        request  body       request.CreateFestivalRequest true "festival details"
// @Success      201      {object}   response.Festival
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /festivals [post]
// @Security     BearerAuth
func (h *FestivalHandler) HandleCreateFestival(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	if user.Role != "organizer" {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v is not an organizer", user.ID)))

		return
	}

	var req request.CreateFestivalRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	festival, err := h.svc.CreateFestival(ctx.Request.Context(), domain.Festival{
		Name:                req.Name,
		Location:            req.Location,
		StartDate:           req.StartDate,
		EndDate:             req.EndDate,
		StandardTablesTotal: req.StandardTablesTotal,
		LargeTablesTotal:    req.LargeTablesTotal,
		TownHallTablesTotal: req.TownHallTablesTotal,
		ChairsTotal:         req.ChairsTotal,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateFestival -> h.svc.CreateFestival -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, response.NewFestival(festival))
}

// HandleGetFestivals godoc
// @Summary      List festivals
// @Tags         festivals
// @Produce      json
// @Success      200      {array}    response.Festival
// @Failure      500      {object}   response.Err
// @Router       /festivals [get]
// @Security     BearerAuth
func (h *FestivalHandler) HandleGetFestivals(ctx *gin.Context) {
	festivals, err := h.svc.GetFestivals(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleGetFestivals -> h.svc.GetFestivals -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.NewFestivals(festivals))
}

// HandleGetFestival godoc
// @Summary      Get a festival by ID
// @Tags         festivals
// @Produce      json
// @Param        festivalID  path       int  true  "festival ID"
// @Success      200      {object}   response.Festival
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /festivals/{festivalID} [get]
// @Security     BearerAuth
func (h *FestivalHandler) HandleGetFestival(ctx *gin.Context) {
	festivalID, err := parseIDParam(ctx, "festivalID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	festival, err := h.svc.GetFestival(ctx.Request.Context(), festivalID)
	if err != nil {
		if errors.Is(err, domain.ErrFestivalNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("festival", "ID", festivalID))

			return
		}

		err = fmt.Errorf("v1.HandleGetFestival -> h.svc.GetFestival -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.NewFestival(festival))
}

// HandleCreateZone godoc
// @Summary      Create a pricing zone for a festival
// @Description  Only organizers can create zones. The zone starts with its full capacity available.
// @Tags         festivals
// @Accept       json
// @Produce      json
// @Param        festivalID  path    int  true  "festival ID"
// @Param        request  body       request.CreateZoneRequest true "zone details"
// @Success      201      {object}   response.PricingZone
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /festivals/{festivalID}/zones [post]
// @Security     BearerAuth
func (h *FestivalHandler) HandleCreateZone(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)

		return
	}

	if user.Role != "organizer" {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v is not an organizer", user.ID)))

		return
	}

	festivalID, err := parseIDParam(ctx, "festivalID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.CreateZoneRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	zone, err := h.svc.CreateZone(ctx.Request.Context(), domain.PricingZone{
		FestivalID:          festivalID,
		Name:                req.Name,
		TotalTables:         req.TotalTables,
		PricePerTable:       req.PricePerTable,
		PricePerSquareMeter: req.PricePerSquareMeter,
	})
	if err != nil {
		if errors.Is(err, domain.ErrFestivalNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("festival", "ID", festivalID))

			return
		}

		err = fmt.Errorf("v1.HandleCreateZone -> h.svc.CreateZone -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusCreated, response.NewPricingZone(zone))
}

// HandleGetZones godoc
// @Summary      List the pricing zones of a festival
// @Tags         festivals
// @Produce      json
// @Param        festivalID  path    int  true  "festival ID"
// @Success      200      {array}    response.PricingZone
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /festivals/{festivalID}/zones [get]
// @Security     BearerAuth
func (h *FestivalHandler) HandleGetZones(ctx *gin.Context) {
	festivalID, err := parseIDParam(ctx, "festivalID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	zones, err := h.svc.GetZones(ctx.Request.Context(), festivalID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetZones -> h.svc.GetZones -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.NewPricingZones(zones))
}
