package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/passmint/internal/adapter/oracle"
	domainErrors "github.com/polkiloo/passmint/internal/domain/errors"
	"github.com/polkiloo/passmint/internal/domain/model"
	"github.com/polkiloo/passmint/internal/server/http/dto"
)

// AdminHandler serves the privileged administrative surface. Routes are
// guarded by the admin middleware; handlers assume the caller is the
// privileged principal.
type AdminHandler struct {
	facade PassmintFacade
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(facade PassmintFacade) *AdminHandler {
	return &AdminHandler{facade: facade}
}

// Grant handles POST /api/admin/passes/grant.
func (h *AdminHandler) Grant(c *gin.Context) {
	var req dto.GrantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	if req.Recipient == "" {
		c.Status(http.StatusBadRequest)
		return
	}
	tier, ok := model.ParseTier(req.Tier)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	rec, err := h.facade.Grant(c.Request.Context(), req.Recipient, tier)
	if err != nil {
		if errors.Is(err, domainErrors.ErrUnknownTier) {
			c.Status(http.StatusBadRequest)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusCreated, passResponse(rec))
}

// SwapOracle handles PUT /api/admin/oracles/:asset.
func (h *AdminHandler) SwapOracle(c *gin.Context) {
	asset, ok := oracle.ParseAsset(c.Param("asset"))
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.OracleSwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.ReplaceOracle(string(asset), req.Address); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	c.Status(http.StatusOK)
}

// SetFeeCollector handles PUT /api/admin/fee-collector.
func (h *AdminHandler) SetFeeCollector(c *gin.Context) {
	var req dto.FeeCollectorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	if req.Account == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	h.facade.SetFeeCollector(req.Account)
	c.Status(http.StatusOK)
}
