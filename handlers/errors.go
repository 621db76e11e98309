package handlers

import (
	"errors"
	"net/http"

	bookingRepo "ceremo/database/repository/booking"
	inquiryRepo "ceremo/database/repository/inquiry"
	paymentRepo "ceremo/database/repository/payment"
	providerRepo "ceremo/database/repository/provider"
	userRepo "ceremo/database/repository/user"
	"ceremo/services/booking"
	"ceremo/utils"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps typed domain failures onto HTTP responses. The
// state machine's errors are never swallowed; anything unrecognized is a 500.
func respondServiceError(c *gin.Context, err error) {
	var (
		invalidTransition *booking.InvalidTransitionError
		outOfOrder        *booking.OutOfOrderError
		unbookable        *booking.UnbookableError
		alreadyConverted  *booking.AlreadyConvertedError
		notAuthorized     *booking.NotAuthorizedError
	)

	switch {
	case errors.As(err, &notAuthorized):
		utils.JSONError(c, http.StatusForbidden, "Not authorized", err.Error())
	case errors.As(err, &invalidTransition):
		utils.JSONError(c, http.StatusConflict, "Invalid transition", err.Error())
	case errors.As(err, &outOfOrder):
		utils.JSONError(c, http.StatusConflict, "Completion step out of order", err.Error())
	case errors.As(err, &unbookable):
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"message":      "Requested dates are not bookable",
			"blockedDates": unbookable.Dates,
		})
	case errors.As(err, &alreadyConverted):
		// Soft no-op: surface the existing booking so the UI can link to it.
		c.JSON(http.StatusOK, gin.H{
			"alreadyConverted": true,
			"bookingId":        alreadyConverted.BookingID,
		})
	case errors.Is(err, bookingRepo.ErrNotFound),
		errors.Is(err, inquiryRepo.ErrNotFound),
		errors.Is(err, paymentRepo.ErrNotFound),
		errors.Is(err, providerRepo.ErrNotFound),
		errors.Is(err, userRepo.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "Not found", err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Internal error", err.Error())
	}
}
