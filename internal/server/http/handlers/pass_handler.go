package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/passmint/internal/adapter/ledger"
	"github.com/polkiloo/passmint/internal/catalog"
	domainErrors "github.com/polkiloo/passmint/internal/domain/errors"
	"github.com/polkiloo/passmint/internal/domain/model"
	"github.com/polkiloo/passmint/internal/server/http/dto"
)

// PassHandler manages purchase and registry endpoints.
type PassHandler struct {
	facade PassFacade
}

// NewPassHandler constructs PassHandler.
func NewPassHandler(facade PassFacade) *PassHandler {
	return &PassHandler{facade: facade}
}

// Purchase handles POST /api/passes/purchase.
func (h *PassHandler) Purchase(c *gin.Context) {
	var req dto.PurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	if req.Buyer == "" || req.Recipient == "" {
		c.Status(http.StatusBadRequest)
		return
	}
	tier, ok := model.ParseTier(req.Tier)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}
	attached, err := dto.ParseUnits(req.Payment, catalog.USDDecimals)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	rec, err := h.facade.Purchase(c.Request.Context(), req.Buyer, req.Recipient, tier, attached)
	if err != nil {
		var declined ledger.TransferDeclinedError
		switch {
		case errors.Is(err, domainErrors.ErrTierNotPurchasable):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrPaymentMismatch):
			c.Status(http.StatusPaymentRequired)
		case errors.As(err, &declined):
			c.Status(http.StatusPaymentRequired)
		case errors.Is(err, domainErrors.ErrUnknownTier):
			c.Status(http.StatusBadRequest)
		default:
			c.Status(http.StatusBadGateway)
		}
		return
	}

	c.JSON(http.StatusCreated, passResponse(rec))
}

// Lookup handles GET /api/passes/:id. Unknown identifiers answer 404
// with the zero expires_at sentinel external consumers rely on.
func (h *PassHandler) Lookup(c *gin.Context) {
	id, ok := parsePassID(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	rec, err := h.facade.Pass(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrPassNotFound) {
			c.JSON(http.StatusNotFound, dto.PassResponse{ID: id, ExpiresAt: 0})
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, passResponse(rec))
}

// Descriptor handles GET /api/passes/:id/descriptor.
func (h *PassHandler) Descriptor(c *gin.Context) {
	id, ok := parsePassID(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	descriptor, err := h.facade.Descriptor(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrPassNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, dto.DescriptorResponse{Descriptor: descriptor})
}

// Status handles GET /api/status.
func (h *PassHandler) Status(c *gin.Context) {
	count, err := h.facade.IssuedCount(c.Request.Context())
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	c.JSON(http.StatusOK, dto.StatusResponse{
		IssuedPasses: count,
		FeeCollector: h.facade.FeeCollector(),
	})
}

func parsePassID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func passResponse(rec *model.PassRecord) dto.PassResponse {
	return dto.PassResponse{
		ID:        rec.ID,
		Owner:     rec.Owner,
		Tier:      string(rec.Tier),
		ExpiresAt: rec.ExpiresAt,
		IssuedAt:  rec.IssuedAt,
	}
}
