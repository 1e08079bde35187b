package api

import (
	"net/http"

	reqdto "slot-swapper/internal/handler/dto/request"
	resdto "slot-swapper/internal/handler/dto/response"
	"slot-swapper/internal/handler/httperr"
	"slot-swapper/internal/handler/middleware"
	"slot-swapper/internal/usecase/commands"
	"slot-swapper/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SwapHandler struct {
	cmds commands.SwapCommands
	q    queries.SwapQueries
}

func NewSwapHandler(cmds commands.SwapCommands, q queries.SwapQueries) *SwapHandler {
	return &SwapHandler{cmds: cmds, q: q}
}

// @Summary Propose swap
// @Description Offer one of the caller's OFFERED slots for another user's OFFERED slot. Both slots are LOCKED until the counterpart responds.
// @Tags swaps
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ProposeSwapRequest true "Propose swap request"
// @Success 201 {object} resdto.ProposalResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 429 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /swap-request [post]
func (h *SwapHandler) Propose(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingIdentity, "Unauthorized", nil)
		return
	}
	var req reqdto.ProposeSwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.cmds.Propose(c.Request.Context(), req.ToInput(userID))
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromProposalResult(result))
}

// @Summary Respond to swap
// @Description Accept or reject a pending swap request addressed to the caller
// @Tags swaps
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param requestId path string true "Swap request ID"
// @Param request body reqdto.RespondSwapRequest true "Respond swap request"
// @Success 200 {object} resdto.ProposalResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Failure 503 {object} httperr.Response
// @Router /swap-response/{requestId} [post]
func (h *SwapHandler) Respond(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingIdentity, "Unauthorized", nil)
		return
	}
	proposalID, err := uuid.Parse(c.Param("requestId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request id", nil)
		return
	}
	var req reqdto.RespondSwapRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request", nil)
		return
	}
	result, err := h.cmds.Respond(c.Request.Context(), req.ToInput(userID, proposalID))
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromProposalResult(result))
}

// @Summary List my swap requests
// @Description Incoming and outgoing swap requests of the caller, newest first
// @Tags swaps
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.ProposalListsResponse
// @Failure 401 {object} httperr.Response
// @Router /swap-requests [get]
func (h *SwapHandler) ListMine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingIdentity, "Unauthorized", nil)
		return
	}
	lists, err := h.q.ListMine(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromProposalLists(lists))
}

// @Summary Force reject swap
// @Description Administrative reject of a pending swap request, including one whose slots no longer exist
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param requestId path string true "Swap request ID"
// @Success 200 {object} resdto.ProposalResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /admin/swap-requests/{requestId}/reject [post]
func (h *SwapHandler) ForceReject(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errMissingIdentity, "Unauthorized", nil)
		return
	}
	proposalID, err := uuid.Parse(c.Param("requestId"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request id", nil)
		return
	}
	result, err := h.cmds.ForceReject(c.Request.Context(), commands.ForceRejectInput{
		ActorID:    userID,
		ProposalID: proposalID,
	})
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromProposalResult(result))
}
