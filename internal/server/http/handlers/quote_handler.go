package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/passmint/internal/catalog"
	domainErrors "github.com/polkiloo/passmint/internal/domain/errors"
	"github.com/polkiloo/passmint/internal/domain/model"
	"github.com/polkiloo/passmint/internal/server/http/dto"
)

// QuoteHandler serves live price quotes.
type QuoteHandler struct {
	facade PricingFacade

	mtopDecimals uint8
}

// NewQuoteHandler constructs QuoteHandler.
func NewQuoteHandler(facade PricingFacade, mtopDecimals uint8) *QuoteHandler {
	return &QuoteHandler{facade: facade, mtopDecimals: mtopDecimals}
}

// Quote handles GET /api/tiers/:tier/quote.
func (h *QuoteHandler) Quote(c *gin.Context) {
	tier, ok := model.ParseTier(c.Param("tier"))
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	quote, err := h.facade.Quote(c.Request.Context(), tier)
	if err != nil {
		if errors.Is(err, domainErrors.ErrUnknownTier) {
			c.Status(http.StatusBadRequest)
			return
		}
		// oracle failures and arithmetic faults on oracle data
		c.Status(http.StatusBadGateway)
		return
	}

	c.JSON(http.StatusOK, dto.QuoteResponse{
		Tier:          string(tier),
		MtopAmount:    dto.FormatUnits(quote.MtopAmount, h.mtopDecimals),
		PaymentAmount: dto.FormatUnits(quote.PaymentAmount, catalog.USDDecimals),
		ReferenceUSD:  dto.FormatUnits(quote.ReferenceUSD, catalog.USDDecimals),
	})
}
