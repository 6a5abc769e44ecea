package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/salesdesk-api/internal/application/service"
	"github.com/sangkips/salesdesk-api/internal/domain/enum"
	"github.com/sangkips/salesdesk-api/internal/domain/repository"
	"github.com/sangkips/salesdesk-api/internal/presentation/http/dto/request"
	"github.com/sangkips/salesdesk-api/internal/presentation/http/dto/response"
)

// OrderHandler handles order-related HTTP requests
type OrderHandler struct {
	orderService   *service.OrderService
	paymentService *service.PaymentService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *service.OrderService, paymentService *service.PaymentService) *OrderHandler {
	return &OrderHandler{orderService: orderService, paymentService: paymentService}
}

// List handles listing orders
// @Summary List orders
// @Tags orders
// @Produce json
// @Param status query string false "Pending, Partial, Complete or Cancel"
// @Param client_id query string false "Client ID"
// @Param seller_id query string false "Seller ID"
// @Param start_date query string false "YYYY-MM-DD"
// @Param end_date query string false "YYYY-MM-DD"
// @Success 200 {object} response.APIResponse
// @Router /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	params := &repository.OrderFilterParams{
		Pagination: pageParams(c),
		Search:     c.Query("search"),
		ClientID:   queryID(c, "client_id"),
		SellerID:   queryID(c, "seller_id"),
		SortBy:     c.Query("sort_by"),
		SortOrder:  c.Query("sort_order"),
	}

	if statusStr := c.Query("status"); statusStr != "" {
		if status, err := enum.ParseOrderStatus(statusStr); err == nil {
			params.Status = &status
		} else if n, err := strconv.Atoi(statusStr); err == nil {
			status := enum.OrderStatus(n)
			params.Status = &status
		}
	}

	if startDateStr := c.Query("start_date"); startDateStr != "" {
		if startDate, err := time.Parse("2006-01-02", startDateStr); err == nil {
			params.StartDate = &startDate
		}
	}

	if endDateStr := c.Query("end_date"); endDateStr != "" {
		if endDate, err := time.Parse("2006-01-02", endDateStr); err == nil {
			end := endDate.Add(24*time.Hour - time.Nanosecond)
			params.EndDate = &end
		}
	}

	result, err := h.orderService.ListOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Orders retrieved successfully", result)
}

// Create handles creating an order
// @Summary Create order
// @Tags orders
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Replays the first response for a retried request"
// @Success 201 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	var req request.CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	input := &service.CreateOrderInput{
		ClientID:        req.ClientID,
		SellerID:        req.SellerID,
		FinancingPlanID: req.FinancingPlanID,
		OrderDate:       req.OrderDate,
		TotalAmount:     req.TotalAmount,
		Notes:           req.Notes,
	}
	if userID := GetUserID(c); userID != nil {
		input.UserID = *userID
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, service.OrderItemInput{
			ProductID:   item.ProductID,
			Description: item.Description,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Discount:    item.Discount,
			Subtotal:    item.Subtotal,
		})
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Order created successfully", order)
}

// Get handles getting a single order with its items, installments and payments
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order retrieved successfully", order)
}

// Cancel handles cancelling an unpaid order
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.orderService.CancelOrder(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order cancelled successfully", nil)
}

// Delete handles deleting an order
// @Summary Delete order
// @Description Without force an order with items, payments or installments is
// @Description refused with reason order_has_dependents. force=true removes them too.
// @Tags orders
// @Produce json
// @Param force query bool false "Also delete items, payments and installments"
// @Success 200 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Router /orders/{id} [delete]
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	force, err := strconv.ParseBool(c.DefaultQuery("force", "false"))
	if err != nil {
		response.BadRequest(c, "force must be true or false")
		return
	}

	outcome, err := h.orderService.DeleteOrder(c.Request.Context(), id, force)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Order deleted successfully", gin.H{"outcome": outcome})
}

// RecordPayment handles registering a payment against an order
// @Summary Record payment
// @Tags orders
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Replays the first response for a retried request"
// @Success 201 {object} response.APIResponse
// @Router /orders/{id}/payments [post]
func (h *OrderHandler) RecordPayment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req request.RecordPaymentRequest
	if !bindJSON(c, &req) {
		return
	}

	payment, err := h.paymentService.RecordPayment(c.Request.Context(), &service.RecordPaymentInput{
		OrderID:       id,
		InstallmentID: req.InstallmentID,
		Amount:        req.Amount,
		Method:        req.Method,
		Reference:     req.Reference,
		PaidAt:        req.PaidAt,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Payment recorded successfully", payment)
}

// ListPayments handles listing the payments of an order
func (h *OrderHandler) ListPayments(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	payments, err := h.paymentService.ListPayments(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payments retrieved successfully", payments)
}
