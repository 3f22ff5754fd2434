package handler

import (
	"net/http"

	"fatoora/internal/dto"
	"fatoora/internal/service"

	"github.com/gin-gonic/gin"
)

type TraderHandler struct{ svc service.TraderService }

func NewTraderHandler(svc service.TraderService) *TraderHandler {
	return &TraderHandler{svc: svc}
}

// Get godoc
// @Summary      Get the trader profile
// @Description  Returns the business identity printed in invoice headers.
// @Tags         trader
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.TraderResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/trader [get]
func (h *TraderHandler) Get(c *gin.Context) {
	resp, err := h.svc.Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Put godoc
// @Summary      Set the trader profile
// @Description  Creates the profile on first call, replaces it afterwards. Admin only.
// @Tags         trader
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.TraderRequest true "Business identity and fiscal registration"
// @Success      200  {object} dto.TraderResponse
// @Failure      400  {object} apierror.APIError
// @Router       /v1/trader [put]
func (h *TraderHandler) Put(c *gin.Context) {
	var req dto.TraderRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Put(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
