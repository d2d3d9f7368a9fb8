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
	"github.com/ludotek/festival-booking-api/internal/service"
)

type ReservationService interface {
	QuoteReservation(ctx context.Context, festivalID uint, requests []domain.ZoneAllocationRequest) (domain.Quote, domain.AvailabilityReport, error)
	CreateReservation(ctx context.Context, festivalID uint, req domain.ReservationRequest) (domain.Reservation, error)
	UpdateReservation(ctx context.Context, id uint, req domain.ReservationUpdate) (domain.Reservation, error)
	DeleteReservation(ctx context.Context, id uint) error
	GetReservation(ctx context.Context, id uint) (domain.Reservation, error)
	GetFestivalReservations(ctx context.Context, festivalID uint) ([]domain.Reservation, error)
	AllocateGame(ctx context.Context, allocation domain.GameTableAllocation) (domain.GameTableAllocation, error)
	GetGameAllocations(ctx context.Context, reservationID uint) ([]domain.GameTableAllocation, error)
}

type ReservationHandler struct {
	svc ReservationService
}

func NewReservationHandler(svc ReservationService) *ReservationHandler {
	return &ReservationHandler{
		svc: svc,
	}
}

// HandleQuote godoc
// @Summary      Price an allocation set without reserving
// @Description  Returns the computed price and an advisory availability report.
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Param        festivalID  path    int  true  "festival ID"
// @Param        request  body       request.QuoteRequest true "allocations to price"
// @Success      200      {object}   response.Quote
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /festivals/{festivalID}/quote [post]
// @Security     BearerAuth
func (h *ReservationHandler) HandleQuote(ctx *gin.Context) {
	festivalID, err := parseIDParam(ctx, "festivalID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.QuoteRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	quote, report, err := h.svc.QuoteReservation(ctx.Request.Context(), festivalID, req.ToDomain())
	if err != nil {
		renderReservationErr(ctx, "v1.HandleQuote", err)

		return
	}

	ctx.JSON(http.StatusOK, response.NewQuote(quote, report))
}

// HandleCreateReservation godoc
// @Summary      Create a reservation
// @Description  Prices the allocations, checks stock and commits the reservation atomically.
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Param        festivalID  path    int  true  "festival ID"
// @Param        request  body       request.CreateReservationRequest true "reservation details"
// @Success      201      {object}   response.Reservation
// @Failure      400      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      422      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /festivals/{festivalID}/reservations [post]
// @Security     BearerAuth
func (h *ReservationHandler) HandleCreateReservation(ctx *gin.Context) {
	festivalID, err := parseIDParam(ctx, "festivalID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.CreateReservationRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	reservation, err := h.svc.CreateReservation(ctx.Request.Context(), festivalID, req.ToDomain())
	if err != nil {
		renderReservationErr(ctx, "v1.HandleCreateReservation", err)

		return
	}

	ctx.JSON(http.StatusCreated, response.NewReservation(reservation))
}

// HandleUpdateReservation godoc
// @Summary      Update a reservation
// @Description  Replaces the allocation set; stock from the previous allocations is released before the new ones are reserved.
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Param        reservationID  path    int  true  "reservation ID"
// @Param        request  body       request.UpdateReservationRequest true "updated reservation"
// @Success      200      {object}   response.Reservation
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      422      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /reservations/{reservationID} [put]
// @Security     BearerAuth
func (h *ReservationHandler) HandleUpdateReservation(ctx *gin.Context) {
	reservationID, err := parseIDParam(ctx, "reservationID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.UpdateReservationRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	reservation, err := h.svc.UpdateReservation(ctx.Request.Context(), reservationID, req.ToDomain())
	if err != nil {
		renderReservationErr(ctx, "v1.HandleUpdateReservation", err)

		return
	}

	ctx.JSON(http.StatusOK, response.NewReservation(reservation))
}

// HandleDeleteReservation godoc
// @Summary      Delete a reservation
// @Description  Releases all reserved tables back to their zones.
// @Tags         reservations
// @Produce      json
// @Param        reservationID  path    int  true  "reservation ID"
// @Success      204
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /reservations/{reservationID} [delete]
// @Security     BearerAuth
func (h *ReservationHandler) HandleDeleteReservation(ctx *gin.Context) {
	reservationID, err := parseIDParam(ctx, "reservationID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = h.svc.DeleteReservation(ctx.Request.Context(), reservationID); err != nil {
		renderReservationErr(ctx, "v1.HandleDeleteReservation", err)

		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleGetReservation godoc
// @Summary      Get a reservation by ID
// @Tags         reservations
// @Produce      json
// @Param        reservationID  path    int  true  "reservation ID"
// @Success      200      {object}   response.Reservation
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /reservations/{reservationID} [get]
// @Security     BearerAuth
func (h *ReservationHandler) HandleGetReservation(ctx *gin.Context) {
	reservationID, err := parseIDParam(ctx, "reservationID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	reservation, err := h.svc.GetReservation(ctx.Request.Context(), reservationID)
	if err != nil {
		renderReservationErr(ctx, "v1.HandleGetReservation", err)

		return
	}

	ctx.JSON(http.StatusOK, response.NewReservation(reservation))
}

// HandleGetFestivalReservations godoc
// @Summary      List the reservations of a festival
// @Tags         reservations
// @Produce      json
// @Param        festivalID  path    int  true  "festival ID"
// @Success      200      {array}    response.Reservation
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /festivals/{festivalID}/reservations [get]
// @Security     BearerAuth
func (h *ReservationHandler) HandleGetFestivalReservations(ctx *gin.Context) {
	festivalID, err := parseIDParam(ctx, "festivalID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	reservations, err := h.svc.GetFestivalReservations(ctx.Request.Context(), festivalID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetFestivalReservations -> h.svc.GetFestivalReservations -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.NewReservations(reservations))
}

// HandleAllocateGame godoc
// @Summary      Assign a game to tables within a reservation
// @Tags         reservations
// @Accept       json
// @Produce      json
// @Param        reservationID  path    int  true  "reservation ID"
// @Param        request  body       request.CreateGameAllocationRequest true "game allocation"
// @Success      201      {object}   response.GameTableAllocation
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /reservations/{reservationID}/games [post]
// @Security     BearerAuth
func (h *ReservationHandler) HandleAllocateGame(ctx *gin.Context) {
	reservationID, err := parseIDParam(ctx, "reservationID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	var req request.CreateGameAllocationRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	allocation, err := h.svc.AllocateGame(ctx.Request.Context(), domain.GameTableAllocation{
		ReservationID:  reservationID,
		GameName:       req.GameName,
		ZonePlanID:     req.ZonePlanID,
		TableSize:      domain.TableSize(req.TableSize),
		TablesOccupied: req.TablesOccupied,
	})
	if err != nil {
		renderReservationErr(ctx, "v1.HandleAllocateGame", err)

		return
	}

	ctx.JSON(http.StatusCreated, response.NewGameTableAllocation(allocation))
}

// HandleGetGameAllocations godoc
// @Summary      List the game-to-table assignments of a reservation
// @Tags         reservations
// @Produce      json
// @Param        reservationID  path    int  true  "reservation ID"
// @Success      200      {array}    response.GameTableAllocation
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Router       /reservations/{reservationID}/games [get]
// @Security     BearerAuth
func (h *ReservationHandler) HandleGetGameAllocations(ctx *gin.Context) {
	reservationID, err := parseIDParam(ctx, "reservationID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))

		return
	}

	allocations, err := h.svc.GetGameAllocations(ctx.Request.Context(), reservationID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetGameAllocations -> h.svc.GetGameAllocations -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))

		return
	}

	ctx.JSON(http.StatusOK, response.NewGameTableAllocations(allocations))
}

// renderReservationErr maps lifecycle errors to status codes. Stock
// shortages are 422 so clients can distinguish them from bad input.
func renderReservationErr(ctx *gin.Context, caller string, err error) {
	switch {
	case errors.Is(err, domain.ErrNoAllocations),
		errors.Is(err, domain.ErrUnknownZone),
		errors.Is(err, domain.ErrNoTablesRequested),
		errors.Is(err, domain.ErrInvalidSurface),
		errors.Is(err, domain.ErrInvalidPaymentMode),
		errors.Is(err, domain.ErrInvalidDiscount):
		response.RenderErr(ctx, response.ErrBadRequest(err))
	case errors.Is(err, service.ErrInsufficientStock):
		response.RenderErr(ctx, response.ErrUnprocessable(err))
	case errors.Is(err, service.ErrDuplicateReservation):
		response.RenderErr(ctx, response.ErrConflict(err))
	case errors.Is(err, service.ErrReservationNotFound):
		response.RenderErr(ctx, response.ErrNotFound("reservation", "ID", ctx.Param("reservationID")))
	case errors.Is(err, service.ErrFestivalNotFound):
		response.RenderErr(ctx, response.ErrNotFound("festival", "ID", ctx.Param("festivalID")))
	default:
		response.RenderErr(ctx, response.ErrInternalServerError(fmt.Errorf("%v -> %w", caller, err)))
	}
}
