package handlers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/KaribuVetLabs/clinic-scheduler/internal/audit"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/httperr"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/httpresp"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/middleware"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/models"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/payments"
	"github.com/KaribuVetLabs/clinic-scheduler/internal/store"
)

type InvoiceHandler struct {
	invoices *store.InvoiceStore
	checkout *payments.Checkout
	audit    *audit.Dispatcher
}

func NewInvoiceHandler(
	invoices *store.InvoiceStore,
	checkout *payments.Checkout,
	auditDispatcher *audit.Dispatcher,
) *InvoiceHandler {
	return &InvoiceHandler{
		invoices: invoices,
		checkout: checkout,
		audit:    auditDispatcher,
	}
}

type InvoiceRequest struct {
	AppointmentID uint    `json:"appointment_id" binding:"required"`
	InvoiceNumber string  `json:"invoice_number"`
	TotalAmount   float64 `json:"total_amount"`
	TaxAmount     float64 `json:"tax_amount"`
	Notes         string  `json:"notes"`
}

// Create issues an invoice. Totals are supplied by the billing side and
// passed through untouched. A missing invoice number gets a generated one.
func (h *InvoiceHandler) Create(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	var req InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	number := strings.TrimSpace(req.InvoiceNumber)
	if number == "" {
		number = generateInvoiceNumber()
	}

	invoice := models.Invoice{
		AppointmentID: req.AppointmentID,
		InvoiceNumber: number,
		TotalAmount:   req.TotalAmount,
		TaxAmount:     req.TaxAmount,
		IssuedAt:      time.Now(),
		Notes:         req.Notes,
	}

	if err := h.invoices.Create(c.Request.Context(), &invoice); err != nil {
		httperr.FromError(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "invoice_issued",
		Entity:   "invoice",
		EntityID: &invoice.ID,
	})

	httpresp.Created(c, invoice)
}

func (h *InvoiceHandler) Get(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	invoice, err := h.invoices.Get(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, invoice)
}

func (h *InvoiceHandler) List(c *gin.Context) {
	unpaidOnly := c.Query("unpaid") == "true"

	invoices, err := h.invoices.List(c.Request.Context(), unpaidOnly)
	if err != nil {
		httperr.Internal(c, "failed_to_list_invoices", "Could not list invoices.")
		return
	}

	httpresp.List(c, invoices)
}

func (h *InvoiceHandler) Update(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	var req InvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	invoice, err := h.invoices.Get(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	invoice.AppointmentID = req.AppointmentID
	if strings.TrimSpace(req.InvoiceNumber) != "" {
		invoice.InvoiceNumber = strings.TrimSpace(req.InvoiceNumber)
	}
	invoice.TotalAmount = req.TotalAmount
	invoice.TaxAmount = req.TaxAmount
	invoice.Notes = req.Notes

	if err := h.invoices.Update(c.Request.Context(), invoice); err != nil {
		httperr.FromError(c, err)
		return
	}

	httpresp.OK(c, invoice)
}

func (h *InvoiceHandler) MarkPaid(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)

	id, err := paramID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	invoice, err := h.invoices.MarkPaid(c.Request.Context(), id, time.Now())
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "invoice_paid",
		Entity:   "invoice",
		EntityID: &invoice.ID,
	})

	httpresp.OK(c, invoice)
}

func (h *InvoiceHandler) Delete(c *gin.Context) {
	id, err := paramID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	if err := h.invoices.Delete(c.Request.Context(), id); err != nil {
		httperr.FromError(c, err)
		return
	}

	c.Status(204)
}

// CreateCheckout returns a Mercado Pago payment link for an unpaid invoice.
func (h *InvoiceHandler) CreateCheckout(c *gin.Context) {
	if h.checkout == nil {
		httperr.BadRequest(c, "payments_disabled", "Payment checkout is not configured.")
		return
	}

	id, err := paramID(c)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid id.")
		return
	}

	invoice, err := h.invoices.Get(c.Request.Context(), id)
	if err != nil {
		httperr.FromError(c, err)
		return
	}

	if invoice.Paid {
		httperr.BadRequest(c, "already_paid", "Invoice is already paid.")
		return
	}

	link, err := h.checkout.CreateForInvoice(c.Request.Context(), invoice)
	if err != nil {
		httperr.Internal(c, "failed_to_create_checkout", "Could not create payment link.")
		return
	}

	httpresp.OK(c, link)
}

func generateInvoiceNumber() string {
	short := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))[:8]
	return fmt.Sprintf("INV-%s-%s", time.Now().Format("20060102"), short)
}
