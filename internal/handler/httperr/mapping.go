package httperr

import (
	"log/slog"
	"net/http"

	"slot-swapper/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

type classification struct {
	target  error
	status  int
	message string
}

// Order matters: an error carrying several marks takes the first match.
var classifications = []classification{
	{errs.ErrInvalidTimeRange, http.StatusBadRequest, "End time must be after start time"},
	{errs.ErrInvalidInput, http.StatusBadRequest, "Invalid request"},
	{errs.ErrSlotNotFound, http.StatusNotFound, "Slot not found"},
	{errs.ErrProposalNotFound, http.StatusNotFound, "Swap request not found"},
	{errs.ErrUnauthorized, http.StatusForbidden, "Not allowed to respond to this swap request"},
	{errs.ErrSlotVanished, http.StatusConflict, "A slot in this swap request no longer exists; an administrator must reject it"},
	{errs.ErrSlotLocked, http.StatusConflict, "Slot is locked by a pending swap request"},
	{errs.ErrUserExists, http.StatusConflict, "User is already provisioned"},
	{errs.ErrConflict, http.StatusConflict, "Concurrent modification, please retry"},
	{errs.ErrSelfSwapRejected, http.StatusUnprocessableEntity, "Cannot swap with your own slot"},
	{errs.ErrNotEligible, http.StatusUnprocessableEntity, "Slot is not available for swapping"},
	{errs.ErrAlreadyResolved, http.StatusUnprocessableEntity, "Swap request has already been resolved"},
	{errs.ErrUnavailable, http.StatusServiceUnavailable, "Service temporarily unavailable, please retry"},
}

// Classify maps a use case error to its HTTP status and public message.
func Classify(err error) (int, string) {
	for _, cl := range classifications {
		if errs.Is(err, cl.target) {
			return cl.status, cl.message
		}
	}
	return http.StatusInternalServerError, "Internal server error"
}

// AbortWithDomainError aborts with the status Classify picks. The public
// message never carries the wrapped cause.
func AbortWithDomainError(c *gin.Context, err error) {
	status, msg := Classify(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed",
			"route", c.FullPath(),
			"status", status,
			"request_id", c.GetString(RequestIDKey),
			"error", err,
			"stack", errs.ExtractStackLines(err, 12))
	}
	AbortWithError(c, status, err, msg, nil)
}
