package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/DanSBol/shareit/internal/domain/booking"
	"github.com/DanSBol/shareit/internal/domain/item"
	"github.com/DanSBol/shareit/internal/domain/request"
	"github.com/DanSBol/shareit/internal/domain/user"
	"github.com/DanSBol/shareit/internal/handler/httperr"
	"github.com/DanSBol/shareit/internal/handler/middleware"
	"github.com/DanSBol/shareit/internal/pkg/errs"
	"github.com/DanSBol/shareit/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

// respondError maps usecase sentinels onto the public status codes.
// Relational authorization failures surface as 404 on purpose: the API
// does not reveal whether the row exists to users who cannot see it.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrUserNotFound),
		errors.Is(err, errs.ErrItemNotFound),
		errors.Is(err, errs.ErrBookingNotFound),
		errors.Is(err, errs.ErrRequestNotFound),
		errors.Is(err, errs.ErrOwnerBooking),
		errors.Is(err, errs.ErrNotOwner),
		errors.Is(err, errs.ErrNotOwnerOrBooker):
		httperr.AbortWithError(c, http.StatusNotFound, err, err.Error())
	case errors.Is(err, booking.ErrWrongDates),
		errors.Is(err, booking.ErrAlreadyApproved),
		errors.Is(err, booking.ErrUnknownState),
		errors.Is(err, user.ErrInvalidEmail),
		errors.Is(err, user.ErrEmptyName),
		errors.Is(err, item.ErrEmptyName),
		errors.Is(err, item.ErrEmptyDescription),
		errors.Is(err, request.ErrEmptyDescription),
		errors.Is(err, errs.ErrItemUnavailable),
		errors.Is(err, errs.ErrInvalidPagination),
		errors.Is(err, errs.ErrNoFinishedBooking),
		errors.Is(err, commands.ErrEmptyComment):
		httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error())
	case errors.Is(err, errs.ErrEmailTaken):
		httperr.AbortWithError(c, http.StatusConflict, err, err.Error())
	default:
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error")
	}
}

func sharerID(c *gin.Context) (int64, bool) {
	id, ok := middleware.GetSharerID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError,
			errs.New("identity missing from context"), "Internal server error")
		return 0, false
	}
	return id, true
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest,
			errs.Wrap(err, "malformed path parameter"),
			"Invalid "+name+" format")
		return 0, false
	}
	return id, true
}

// paging reads from/size with the defaults the list endpoints document.
// Range checks live in the usecase layer; only parse failures stop here.
func paging(c *gin.Context) (from, size int, ok bool) {
	from, ok = intQuery(c, "from", 0)
	if !ok {
		return 0, 0, false
	}
	size, ok = intQuery(c, "size", 10)
	if !ok {
		return 0, 0, false
	}
	return from, size, true
}

func intQuery(c *gin.Context, name string, def int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest,
			errs.Wrap(err, "malformed query parameter"),
			"Invalid "+name+" format")
		return 0, false
	}
	return v, true
}
