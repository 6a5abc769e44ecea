package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/salesdesk-api/internal/application/service"
	"github.com/sangkips/salesdesk-api/internal/domain/repository"
	"github.com/sangkips/salesdesk-api/internal/presentation/http/dto/request"
	"github.com/sangkips/salesdesk-api/internal/presentation/http/dto/response"
)

// FinancingPlanHandler handles financing plan HTTP requests
type FinancingPlanHandler struct {
	planService *service.FinancingPlanService
}

// NewFinancingPlanHandler creates a new financing plan handler
func NewFinancingPlanHandler(planService *service.FinancingPlanService) *FinancingPlanHandler {
	return &FinancingPlanHandler{planService: planService}
}

// List handles listing plans. active=true restricts to plans usable on new orders.
func (h *FinancingPlanHandler) List(c *gin.Context) {
	activeOnly, _ := strconv.ParseBool(c.Query("active"))

	result, err := h.planService.ListPlans(c.Request.Context(), pageParams(c), activeOnly)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Financing plans retrieved successfully", result)
}

// Create handles creating a plan
func (h *FinancingPlanHandler) Create(c *gin.Context) {
	var req request.FinancingPlanRequest
	if !bindJSON(c, &req) {
		return
	}

	plan, err := h.planService.CreatePlan(c.Request.Context(), &service.FinancingPlanInput{
		Name:        req.Name,
		Months:      req.Months,
		InterestPct: req.InterestPct,
		IsActive:    req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Financing plan created successfully", plan)
}

// Get handles getting a single plan
func (h *FinancingPlanHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	plan, err := h.planService.GetPlan(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Financing plan retrieved successfully", plan)
}

// Update handles a partial plan update
func (h *FinancingPlanHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req request.UpdateFinancingPlanRequest
	if !bindJSON(c, &req) {
		return
	}

	plan, err := h.planService.UpdatePlan(c.Request.Context(), &service.UpdatePlanInput{
		ID:          id,
		Name:        req.Name,
		Months:      req.Months,
		InterestPct: req.InterestPct,
		IsActive:    req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Financing plan updated successfully", plan)
}

// Delete handles deleting a plan no order uses
func (h *FinancingPlanHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.planService.DeletePlan(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Financing plan deleted successfully", nil)
}

// CommissionHandler handles commission HTTP requests
type CommissionHandler struct {
	commissionService *service.CommissionService
}

// NewCommissionHandler creates a new commission handler
func NewCommissionHandler(commissionService *service.CommissionService) *CommissionHandler {
	return &CommissionHandler{commissionService: commissionService}
}

// Preview handles the commission preview shown while an order is entered.
// A body that is not valid JSON is treated as an empty order.
func (h *CommissionHandler) Preview(c *gin.Context) {
	var req request.CommissionPreviewRequest
	_ = c.ShouldBindJSON(&req)

	preview := h.commissionService.Preview(&service.CommissionPreviewInput{
		Items:       req.Items,
		TotalAmount: req.TotalAmount,
		Pct:         req.Pct,
	})

	response.OK(c, "Commission computed successfully", preview)
}

// List handles listing commission payments by seller and order
func (h *CommissionHandler) List(c *gin.Context) {
	result, err := h.commissionService.ListCommissions(c.Request.Context(), &repository.CommissionFilterParams{
		Pagination: pageParams(c),
		SellerID:   queryID(c, "seller_id"),
		OrderID:    queryID(c, "order_id"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Commissions retrieved successfully", result)
}

// CreateForOrder handles paying the commission of a stored order
func (h *CommissionHandler) CreateForOrder(c *gin.Context) {
	var req request.CommissionForOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	commission, err := h.commissionService.CreateForOrder(c.Request.Context(), &service.CreateForOrderInput{
		SellerID: req.SellerID,
		OrderID:  req.OrderID,
		Pct:      req.Pct,
		PaidAt:   req.PaidAt,
		Note:     req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Commission recorded successfully", commission)
}

// Create handles a manual commission payment
func (h *CommissionHandler) Create(c *gin.Context) {
	var req request.CreateCommissionRequest
	if !bindJSON(c, &req) {
		return
	}

	commission, err := h.commissionService.CreateCommission(c.Request.Context(), &service.CreateCommissionInput{
		SellerID: req.SellerID,
		OrderID:  req.OrderID,
		Amount:   req.Amount,
		Pct:      req.Pct,
		PaidAt:   req.PaidAt,
		Note:     req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Commission recorded successfully", commission)
}

// Get handles getting a single commission payment
func (h *CommissionHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	commission, err := h.commissionService.GetCommission(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Commission retrieved successfully", commission)
}

// Delete handles deleting a commission payment
func (h *CommissionHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.commissionService.DeleteCommission(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Commission deleted successfully", nil)
}

// IncomeHandler handles income record HTTP requests
type IncomeHandler struct {
	incomeService *service.IncomeService
}

// NewIncomeHandler creates a new income handler
func NewIncomeHandler(incomeService *service.IncomeService) *IncomeHandler {
	return &IncomeHandler{incomeService: incomeService}
}

// List handles listing income records, optionally for one order
func (h *IncomeHandler) List(c *gin.Context) {
	result, err := h.incomeService.ListIncomes(c.Request.Context(), pageParams(c), queryID(c, "order_id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Income records retrieved successfully", result)
}

// Create handles creating an income record
func (h *IncomeHandler) Create(c *gin.Context) {
	var req request.IncomeRequest
	if !bindJSON(c, &req) {
		return
	}

	record, err := h.incomeService.CreateIncome(c.Request.Context(), &service.CreateIncomeInput{
		OrderID:     req.OrderID,
		Description: req.Description,
		AmountNet:   req.AmountNet,
		VATPct:      req.VATPct,
		ReceivedAt:  req.ReceivedAt,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Income record created successfully", record)
}

// Get handles getting a single income record
func (h *IncomeHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	record, err := h.incomeService.GetIncome(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Income record retrieved successfully", record)
}

// Update handles a partial income update
func (h *IncomeHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req request.UpdateIncomeRequest
	if !bindJSON(c, &req) {
		return
	}

	record, err := h.incomeService.UpdateIncome(c.Request.Context(), &service.UpdateIncomeInput{
		ID:          id,
		Description: req.Description,
		AmountNet:   req.AmountNet,
		VATPct:      req.VATPct,
		ReceivedAt:  req.ReceivedAt,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Income record updated successfully", record)
}

// Delete handles deleting an income record
func (h *IncomeHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.incomeService.DeleteIncome(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Income record deleted successfully", nil)
}
