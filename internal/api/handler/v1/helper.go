package v1

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ludotek/festival-booking-api/internal/api/handler/v1/response"
	"github.com/ludotek/festival-booking-api/internal/api/middleware"
	"github.com/ludotek/festival-booking-api/internal/domain"
)

func getUserFromContext(ctx *gin.Context, uSvc UserService) (domain.User, *response.Err) {
	raw, exists := ctx.Get(middleware.ContextKeyUserID)
	if !exists {
		return domain.User{}, response.ErrPermissionDenied(errors.New("no user in context"))
	}

	userID, ok := raw.(uint)
	if !ok {
		return domain.User{}, response.ErrPermissionDenied(fmt.Errorf("unexpected user id type %T", raw))
	}

	user, err := uSvc.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		return domain.User{}, response.ErrInternalServerError(fmt.Errorf("getUserFromContext -> uSvc.GetUser -> %w", err))
	}

	return user, nil
}

func parseIDParam(ctx *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %v", name)
	}

	return uint(id), nil
}
