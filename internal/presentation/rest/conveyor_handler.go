package rest

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bibbank/conveyor/internal/application/dto"
	"github.com/bibbank/conveyor/internal/domain/model"
	"github.com/bibbank/conveyor/internal/domain/port"
	"github.com/bibbank/conveyor/internal/domain/service"
	"github.com/bibbank/conveyor/internal/domain/valueobject"
)

// Use-case contracts consumed by the handlers.
type (
	OffersCalculator interface {
		Execute(ctx context.Context, req dto.OffersRequest) (dto.OffersResponse, error)
	}
	CreditCalculator interface {
		Execute(ctx context.Context, req dto.CreditRequest) (dto.CreditResponse, error)
	}
	CreditGetter interface {
		Execute(ctx context.Context, req dto.GetCreditRequest) (dto.CreditResponse, error)
	}
	ApplicationGetter interface {
		Execute(ctx context.Context, req dto.GetApplicationRequest) (dto.ApplicationResponse, error)
	}
)

// ConveyorHandler exposes the conveyor over HTTP+JSON.
type ConveyorHandler struct {
	offers      OffersCalculator
	credit      CreditCalculator
	getCredit   CreditGetter
	application ApplicationGetter
	logger      *slog.Logger
}

// NewConveyorHandler creates a new handler with all use-case dependencies.
func NewConveyorHandler(
	offers OffersCalculator,
	credit CreditCalculator,
	getCredit CreditGetter,
	application ApplicationGetter,
	logger *slog.Logger,
) *ConveyorHandler {
	return &ConveyorHandler{
		offers:      offers,
		credit:      credit,
		getCredit:   getCredit,
		application: application,
		logger:      logger,
	}
}

// RegisterRoutes attaches the conveyor endpoints to the group.
func (h *ConveyorHandler) RegisterRoutes(g *gin.RouterGroup) {
	g.POST("/offers", h.calculateOffers)
	g.POST("/calculation", h.calculateCredit)
	g.GET("/credits/:id", h.getCreditByID)
	g.GET("/applications/:id", h.getApplicationByID)
}

func (h *ConveyorHandler) calculateOffers(c *gin.Context) {
	var req dto.OffersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	resp, err := h.offers.Execute(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ConveyorHandler) calculateCredit(c *gin.Context) {
	var req dto.CreditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	resp, err := h.credit.Execute(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ConveyorHandler) getCreditByID(c *gin.Context) {
	resp, err := h.getCredit.Execute(c.Request.Context(), dto.GetCreditRequest{CreditID: c.Param("id")})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ConveyorHandler) getApplicationByID(c *gin.Context) {
	resp, err := h.application.Execute(c.Request.Context(), dto.GetApplicationRequest{ApplicationID: c.Param("id")})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// writeError maps use-case errors onto HTTP statuses. Refusals are a
// business outcome and carry only their reason.
func (h *ConveyorHandler) writeError(c *gin.Context, err error) {
	var refusal *service.RefusalError
	switch {
	case errors.As(err, &refusal):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": refusal.Reason})
	case errors.Is(err, dto.ErrValidation),
		errors.Is(err, service.ErrUnclassifiedAttribute),
		errors.Is(err, model.ErrNonPositiveAmount),
		errors.Is(err, model.ErrNonPositiveTerm):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, port.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, valueobject.ErrInvalidStatusTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.logger.ErrorContext(c.Request.Context(), "request failed",
			"route", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
