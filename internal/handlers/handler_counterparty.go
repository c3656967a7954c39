package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/biz_books_app/internal/core/domain"
	portssvc "github.com/SscSPs/biz_books_app/internal/core/ports/services"
	"github.com/SscSPs/biz_books_app/internal/dto"
	"github.com/SscSPs/biz_books_app/internal/middleware"
)

// counterpartyHandler serves both /vendors and /customers; only the kind
// differs.
type counterpartyHandler struct {
	kind          domain.CounterpartyKind
	cpService     portssvc.CounterpartySvcFacade
	ledgerService portssvc.LedgerSvcFacade
}

func newCounterpartyHandler(kind domain.CounterpartyKind, svc *portssvc.ServiceContainer) *counterpartyHandler {
	return &counterpartyHandler{kind: kind, cpService: svc.Counterparty, ledgerService: svc.Ledger}
}

// registerCounterpartyRoutes registers the routes for one counterparty kind
// under the given path (e.g. "/vendors"). Vendors additionally expose their
// available credits.
func registerCounterpartyRoutes(rg *gin.RouterGroup, path string, kind domain.CounterpartyKind, svc *portssvc.ServiceContainer) {
	h := newCounterpartyHandler(kind, svc)

	cps := rg.Group(path)
	{
		cps.POST("", h.createCounterparty)
		cps.GET("", h.listCounterparties)
		cps.GET("/:id", h.getCounterparty)
		cps.PUT("/:id", h.updateCounterparty)
		cps.DELETE("/:id", h.deleteCounterparty)
		if kind == domain.KindVendor {
			cps.GET("/:id/credits", h.listAvailableCredits)
		}
	}
}

// createCounterparty godoc
// @Summary Create a vendor or customer
// @Tags counterparties
// @Accept json
// @Produce json
// @Param counterparty body dto.CreateCounterpartyRequest true "Counterparty details"
// @Success 201 {object} dto.CounterpartyResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Security BearerAuth
// @Router /vendors [post]
func (h *counterpartyHandler) createCounterparty(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateCounterpartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createCounterparty", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	cp, err := h.cpService.CreateCounterparty(c.Request.Context(), h.kind, req, creatorUserID)
	if err != nil {
		writeLedgerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToCounterpartyResponse(cp))
}

// listCounterparties godoc
// @Summary List counterparties of this kind
// @Tags counterparties
// @Produce json
// @Success 200 {array} dto.CounterpartyResponse
// @Security BearerAuth
// @Router /vendors [get]
func (h *counterpartyHandler) listCounterparties(c *gin.Context) {
	cps, err := h.cpService.ListCounterparties(c.Request.Context(), h.kind)
	if err != nil {
		writeLedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCounterpartyResponses(cps))
}

// getCounterparty godoc
// @Summary Get a counterparty by ID
// @Tags counterparties
// @Produce json
// @Param id path string true "Counterparty ID"
// @Success 200 {object} dto.CounterpartyResponse
// @Failure 404 {object} ErrorResponse "Counterparty not found"
// @Security BearerAuth
// @Router /vendors/{id} [get]
func (h *counterpartyHandler) getCounterparty(c *gin.Context) {
	cp, err := h.cpService.GetCounterpartyByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeLedgerError(c, err)
		return
	}
	if cp.Kind != h.kind {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Counterparty not found"})
		return
	}
	c.JSON(http.StatusOK, dto.ToCounterpartyResponse(cp))
}

// updateCounterparty godoc
// @Summary Update a counterparty
// @Tags counterparties
// @Accept json
// @Produce json
// @Param id path string true "Counterparty ID"
// @Param counterparty body dto.UpdateCounterpartyRequest true "Fields to update"
// @Success 200 {object} dto.CounterpartyResponse
// @Failure 404 {object} ErrorResponse "Counterparty not found"
// @Security BearerAuth
// @Router /vendors/{id} [put]
func (h *counterpartyHandler) updateCounterparty(c *gin.Context) {
	var req dto.UpdateCounterpartyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	cp, err := h.cpService.UpdateCounterparty(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		writeLedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToCounterpartyResponse(cp))
}

// deleteCounterparty godoc
// @Summary Delete a counterparty
// @Tags counterparties
// @Param id path string true "Counterparty ID"
// @Success 204 "Deleted"
// @Failure 404 {object} ErrorResponse "Counterparty not found"
// @Security BearerAuth
// @Router /vendors/{id} [delete]
func (h *counterpartyHandler) deleteCounterparty(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.cpService.DeleteCounterparty(c.Request.Context(), c.Param("id"), userID); err != nil {
		writeLedgerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// listAvailableCredits godoc
// @Summary List a vendor's unconsumed credits
// @Description Returns the credit documents still available to apply, oldest first
// @Tags counterparties
// @Produce json
// @Param id path string true "Vendor ID"
// @Success 200 {array} dto.DocumentResponse
// @Security BearerAuth
// @Router /vendors/{id}/credits [get]
func (h *counterpartyHandler) listAvailableCredits(c *gin.Context) {
	credits, err := h.ledgerService.AvailableCredits(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeLedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToDocumentResponses(credits, time.Now().UTC()))
}
