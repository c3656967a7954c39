package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SscSPs/biz_books_app/internal/apperrors"
	"github.com/SscSPs/biz_books_app/internal/core/domain"
	portssvc "github.com/SscSPs/biz_books_app/internal/core/ports/services"
	"github.com/SscSPs/biz_books_app/internal/core/services"
	"github.com/SscSPs/biz_books_app/internal/dto"
	"github.com/SscSPs/biz_books_app/internal/middleware"
)

// documentHandler handles HTTP requests for one document kind. The same
// handler serves /bills and /invoices; only the kind differs.
type documentHandler struct {
	kind            domain.DocumentKind
	documentService portssvc.DocumentSvcFacade
	ledgerService   portssvc.LedgerSvcFacade
	exportService   portssvc.ExportSvcFacade
}

func newDocumentHandler(kind domain.DocumentKind, svc *portssvc.ServiceContainer) *documentHandler {
	return &documentHandler{
		kind:            kind,
		documentService: svc.Document,
		ledgerService:   svc.Ledger,
		exportService:   svc.Export,
	}
}

// registerDocumentRoutes registers the routes for one document kind under
// the given path (e.g. "/bills").
func registerDocumentRoutes(rg *gin.RouterGroup, path string, kind domain.DocumentKind, svc *portssvc.ServiceContainer) {
	h := newDocumentHandler(kind, svc)

	docs := rg.Group(path)
	{
		docs.POST("", h.createDocument)
		docs.GET("", h.listDocuments)
		docs.GET("/export", h.exportDocuments)
		docs.GET("/:id", h.getDocument)
		docs.PUT("/:id", h.updateDocument)
		docs.DELETE("/:id", h.deleteDocument)
		docs.POST("/:id/payments", h.recordPayment)
		docs.GET("/:id/payments", h.listPayments)
		docs.POST("/:id/credits", h.applyCredits)
	}
}

// writeLedgerError translates ledger and document errors into HTTP
// responses. Overpayment rejections include the remaining balance so the
// client can correct the form.
func writeLedgerError(c *gin.Context, err error) {
	var exceeds *services.AmountExceedsBalanceError
	switch {
	case errors.As(err, &exceeds):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":            exceeds.Error(),
			"remainingBalance": exceeds.Remaining,
		})
	case errors.Is(err, services.ErrDocumentAlreadyPaid):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrCreditUnavailable):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrConflict):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
	default:
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		logger.Error("Unhandled service error", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}

// createDocument godoc
// @Summary Create a bill or invoice
// @Description Creates a document; set isCredit for a vendor credit
// @Tags documents
// @Accept json
// @Produce json
// @Param document body dto.CreateDocumentRequest true "Document details"
// @Success 201 {object} dto.DocumentResponse
// @Failure 400 {object} ErrorResponse "Invalid input format or validation error"
// @Security BearerAuth
// @Router /bills [post]
func (h *documentHandler) createDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createDocument", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	doc, err := h.documentService.CreateDocument(c.Request.Context(), h.kind, req, creatorUserID)
	if err != nil {
		writeLedgerError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToDocumentResponse(doc, time.Now().UTC()))
}

// listDocuments godoc
// @Summary List documents of this kind
// @Description Returns one page of documents, newest first; filter by effective status with ?status=
// @Tags documents
// @Produce json
// @Param limit query int false "Page size"
// @Param nextToken query string false "Pagination token"
// @Param status query string false "Effective status filter, e.g. Overdue"
// @Success 200 {object} dto.ListDocumentsResponse
// @Security BearerAuth
// @Router /bills [get]
func (h *documentHandler) listDocuments(c *gin.Context) {
	var params dto.ListDocumentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.documentService.ListDocuments(c.Request.Context(), h.kind, params)
	if err != nil {
		writeLedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getDocument godoc
// @Summary Get a document by ID
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} dto.DocumentResponse
// @Failure 404 {object} ErrorResponse "Document not found"
// @Security BearerAuth
// @Router /bills/{id} [get]
func (h *documentHandler) getDocument(c *gin.Context) {
	doc, err := h.documentService.GetDocumentByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeLedgerError(c, err)
		return
	}
	if doc.Kind != h.kind {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Document not found"})
		return
	}
	c.JSON(http.StatusOK, dto.ToDocumentResponse(doc, time.Now().UTC()))
}

// updateDocument godoc
// @Summary Update a document's header fields
// @Tags documents
// @Accept json
// @Produce json
// @Param id path string true "Document ID"
// @Param document body dto.UpdateDocumentRequest true "Fields to update"
// @Success 200 {object} dto.DocumentResponse
// @Failure 404 {object} ErrorResponse "Document not found"
// @Security BearerAuth
// @Router /bills/{id} [put]
func (h *documentHandler) updateDocument(c *gin.Context) {
	var req dto.UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	doc, err := h.documentService.UpdateDocument(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		writeLedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToDocumentResponse(doc, time.Now().UTC()))
}

// deleteDocument godoc
// @Summary Delete a document
// @Tags documents
// @Param id path string true "Document ID"
// @Success 204 "Deleted"
// @Failure 404 {object} ErrorResponse "Document not found"
// @Failure 409 {object} ErrorResponse "Applied credit cannot be deleted"
// @Security BearerAuth
// @Router /bills/{id} [delete]
func (h *documentHandler) deleteDocument(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.documentService.DeleteDocument(c.Request.Context(), c.Param("id"), userID); err != nil {
		writeLedgerError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// recordPayment godoc
// @Summary Record a payment against a document
// @Description Appends one payment; type may be a payment method or "credit-<creditId>" to draw a vendor credit
// @Tags payments
// @Accept json
// @Produce json
// @Param id path string true "Document ID"
// @Param payment body dto.RecordPaymentRequest true "Payment details"
// @Success 200 {object} dto.PaymentResultResponse
// @Failure 400 {object} ErrorResponse "Validation error or amount exceeds balance"
// @Failure 409 {object} ErrorResponse "Document already paid or credit unavailable"
// @Security BearerAuth
// @Router /bills/{id}/payments [post]
func (h *documentHandler) recordPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for recordPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	doc, message, err := h.ledgerService.RecordPayment(c.Request.Context(), c.Param("id"), req, userID)
	if err != nil {
		writeLedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PaymentResultResponse{
		Document: dto.ToDocumentResponse(doc, time.Now().UTC()),
		Message:  message,
	})
}

// listPayments godoc
// @Summary List the payments recorded on a document
// @Tags payments
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {array} dto.PaymentResponse
// @Failure 404 {object} ErrorResponse "Document not found"
// @Security BearerAuth
// @Router /bills/{id}/payments [get]
func (h *documentHandler) listPayments(c *gin.Context) {
	doc, err := h.documentService.GetDocumentByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeLedgerError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToPaymentResponses(doc.Payments))
}

// applyCredits godoc
// @Summary Apply vendor credits to a document
// @Description Applies the selected credits as one atomic batch
// @Tags payments
// @Accept json
// @Produce json
// @Param id path string true "Document ID"
// @Param credits body dto.ApplyCreditsRequest true "Credit selections"
// @Success 200 {object} dto.PaymentResultResponse
// @Failure 400 {object} ErrorResponse "Validation error or total exceeds balance"
// @Failure 409 {object} ErrorResponse "Document already paid or credit unavailable"
// @Security BearerAuth
// @Router /bills/{id}/credits [post]
func (h *documentHandler) applyCredits(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ApplyCreditsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for applyCredits", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	doc, err := h.ledgerService.ApplyCredits(c.Request.Context(), c.Param("id"), req.Credits, userID)
	if err != nil {
		writeLedgerError(c, err)
		return
	}

	applied := len(req.Credits)
	message := fmt.Sprintf("Applied %d credit(s). %s", applied, paidSummary(doc))
	c.JSON(http.StatusOK, dto.PaymentResultResponse{
		Document: dto.ToDocumentResponse(doc, time.Now().UTC()),
		Message:  message,
	})
}

func paidSummary(doc *domain.Document) string {
	if doc.Status.Code == domain.StatusPaid {
		return "Document is now fully paid."
	}
	return fmt.Sprintf("New status: %s", doc.Status.String())
}

// exportDocuments godoc
// @Summary Export documents of this kind as CSV
// @Tags documents
// @Produce text/csv
// @Success 200 {string} string "CSV payload"
// @Security BearerAuth
// @Router /bills/export [get]
func (h *documentHandler) exportDocuments(c *gin.Context) {
	data, err := h.exportService.ExportDocumentsCSV(c.Request.Context(), h.kind)
	if err != nil {
		writeLedgerError(c, err)
		return
	}
	filename := fmt.Sprintf("%s-export-%s.csv", strings.ToLower(string(h.kind)), time.Now().UTC().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "text/csv", data)
}
