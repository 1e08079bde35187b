package api

import (
	"net/http"

	reqdto "slot-swapper/internal/handler/dto/request"
	resdto "slot-swapper/internal/handler/dto/response"
	"slot-swapper/internal/handler/httperr"
	"slot-swapper/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	cmds commands.UserCommands
}

func NewUserHandler(cmds commands.UserCommands) *UserHandler {
	return &UserHandler{cmds: cmds}
}

// @Summary Provision user
// @Description Mirror an identity-service account so it can own slots and appear in swap listings
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ProvisionUserRequest true "Provision user request"
// @Success 201 {object} resdto.UserResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/users [post]
func (h *UserHandler) Provision(c *gin.Context) {
	var req reqdto.ProvisionUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.cmds.Provision(c.Request.Context(), req.ToInput())
	if err != nil {
		httperr.AbortWithDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.FromUserResult(result))
}
