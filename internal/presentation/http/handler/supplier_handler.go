package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/salesdesk-api/internal/application/service"
	"github.com/sangkips/salesdesk-api/internal/presentation/http/dto/request"
	"github.com/sangkips/salesdesk-api/internal/presentation/http/dto/response"
)

// SupplierHandler handles suppliers, their invoices and the payments made to them
type SupplierHandler struct {
	supplierService *service.SupplierService
}

// NewSupplierHandler creates a new supplier handler
func NewSupplierHandler(supplierService *service.SupplierService) *SupplierHandler {
	return &SupplierHandler{supplierService: supplierService}
}

// List handles listing suppliers
func (h *SupplierHandler) List(c *gin.Context) {
	result, err := h.supplierService.ListSuppliers(c.Request.Context(), pageParams(c), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Suppliers retrieved successfully", result)
}

// Create handles creating a supplier
func (h *SupplierHandler) Create(c *gin.Context) {
	var req request.SupplierRequest
	if !bindJSON(c, &req) {
		return
	}

	supplier, err := h.supplierService.CreateSupplier(c.Request.Context(), &service.CreateSupplierInput{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		TaxID:   req.TaxID,
		Type:    req.Type,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Supplier created successfully", supplier)
}

// Get handles getting a single supplier
func (h *SupplierHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	supplier, err := h.supplierService.GetSupplier(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Supplier retrieved successfully", supplier)
}

// Update handles updating a supplier
func (h *SupplierHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req request.UpdateSupplierRequest
	if !bindJSON(c, &req) {
		return
	}

	supplier, err := h.supplierService.UpdateSupplier(c.Request.Context(), &service.UpdateSupplierInput{
		ID:      id,
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Address: req.Address,
		TaxID:   req.TaxID,
		Type:    req.Type,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Supplier updated successfully", supplier)
}

// Delete handles deleting a supplier without invoices or payments
func (h *SupplierHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.supplierService.DeleteSupplier(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Supplier deleted successfully", nil)
}

// Balance handles the invoiced, paid and outstanding totals of a supplier
func (h *SupplierHandler) Balance(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	balance, err := h.supplierService.GetBalance(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Supplier balance retrieved successfully", balance)
}

// ListInvoices handles listing the invoices of a supplier
func (h *SupplierHandler) ListInvoices(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	invoices, err := h.supplierService.ListInvoices(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoices retrieved successfully", invoices)
}

// CreateInvoice handles registering a supplier invoice
func (h *SupplierHandler) CreateInvoice(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req request.InvoiceRequest
	if !bindJSON(c, &req) {
		return
	}

	invoice, err := h.supplierService.CreateInvoice(c.Request.Context(), &service.CreateInvoiceInput{
		SupplierID: id,
		Number:     req.Number,
		IssuedAt:   req.IssuedAt,
		DueAt:      req.DueAt,
		AmountNet:  req.AmountNet,
		VATPct:     req.VATPct,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Invoice created successfully", invoice)
}

// UpdateInvoice handles a partial invoice update
func (h *SupplierHandler) UpdateInvoice(c *gin.Context) {
	id, ok := pathID(c, "invoiceId")
	if !ok {
		return
	}

	var req request.UpdateInvoiceRequest
	if !bindJSON(c, &req) {
		return
	}

	invoice, err := h.supplierService.UpdateInvoice(c.Request.Context(), &service.UpdateInvoiceInput{
		ID:        id,
		Number:    req.Number,
		IssuedAt:  req.IssuedAt,
		DueAt:     req.DueAt,
		AmountNet: req.AmountNet,
		VATPct:    req.VATPct,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Invoice updated successfully", invoice)
}

// ListPayments handles listing the payments made to a supplier
func (h *SupplierHandler) ListPayments(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	payments, err := h.supplierService.ListPayments(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payments retrieved successfully", payments)
}

// RecordPayment handles a payment to a supplier with its invoice applications
func (h *SupplierHandler) RecordPayment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req request.SupplierPaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	input := &service.RecordSupplierPaymentInput{
		SupplierID: id,
		Amount:     req.Amount,
		Method:     req.Method,
		Reference:  req.Reference,
		PaidAt:     req.PaidAt,
	}
	for _, app := range req.Applications {
		input.Applications = append(input.Applications, service.ApplicationInput{
			InvoiceID: app.InvoiceID,
			Amount:    app.Amount,
		})
	}

	payment, err := h.supplierService.RecordPayment(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment recorded successfully", payment)
}
