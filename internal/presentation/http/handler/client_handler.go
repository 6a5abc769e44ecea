package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/salesdesk-api/internal/application/service"
	"github.com/sangkips/salesdesk-api/internal/presentation/http/dto/request"
	"github.com/sangkips/salesdesk-api/internal/presentation/http/dto/response"
)

// ClientHandler handles client-related HTTP requests
type ClientHandler struct {
	clientService *service.ClientService
}

// NewClientHandler creates a new client handler
func NewClientHandler(clientService *service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// List handles listing clients
func (h *ClientHandler) List(c *gin.Context) {
	result, err := h.clientService.ListClients(c.Request.Context(), pageParams(c), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Clients retrieved successfully", result)
}

// Create handles creating a client
func (h *ClientHandler) Create(c *gin.Context) {
	var req request.ClientRequest
	if !bindJSON(c, &req) {
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), &service.CreateClientInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
		TaxID:   req.TaxID,
		Notes:   req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Client created successfully", client)
}

// Get handles getting a single client
func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	client, err := h.clientService.GetClient(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Client retrieved successfully", client)
}

// Update handles updating a client
func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req request.UpdateClientRequest
	if !bindJSON(c, &req) {
		return
	}

	client, err := h.clientService.UpdateClient(c.Request.Context(), &service.UpdateClientInput{
		ID:      id,
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
		TaxID:   req.TaxID,
		Notes:   req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Client updated successfully", client)
}

// Delete handles deleting a client
func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.clientService.DeleteClient(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Client deleted successfully", nil)
}

// SellerHandler handles seller-related HTTP requests
type SellerHandler struct {
	sellerService *service.SellerService
}

// NewSellerHandler creates a new seller handler
func NewSellerHandler(sellerService *service.SellerService) *SellerHandler {
	return &SellerHandler{sellerService: sellerService}
}

// List handles listing sellers
func (h *SellerHandler) List(c *gin.Context) {
	result, err := h.sellerService.ListSellers(c.Request.Context(), pageParams(c), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Sellers retrieved successfully", result)
}

// Create handles creating a seller
func (h *SellerHandler) Create(c *gin.Context) {
	var req request.SellerRequest
	if !bindJSON(c, &req) {
		return
	}

	seller, err := h.sellerService.CreateSeller(c.Request.Context(), &service.CreateSellerInput{
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		CommissionPct: req.CommissionPct,
		IsActive:      req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Seller created successfully", seller)
}

// Get handles getting a single seller
func (h *SellerHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	seller, err := h.sellerService.GetSeller(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Seller retrieved successfully", seller)
}

// Update handles updating a seller
func (h *SellerHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req request.UpdateSellerRequest
	if !bindJSON(c, &req) {
		return
	}

	seller, err := h.sellerService.UpdateSeller(c.Request.Context(), &service.UpdateSellerInput{
		ID:            id,
		Name:          req.Name,
		Email:         req.Email,
		Phone:         req.Phone,
		CommissionPct: req.CommissionPct,
		IsActive:      req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Seller updated successfully", seller)
}

// Delete handles deleting a seller
func (h *SellerHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.sellerService.DeleteSeller(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Seller deleted successfully", nil)
}
