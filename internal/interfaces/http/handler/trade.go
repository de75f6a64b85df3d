package handler

import (
	"github.com/gin-gonic/gin"
	tradeapp "github.com/shopmall/backend/internal/application/trade"
)

// OrderHandler serves /api/orders
type OrderHandler struct {
	CRUDHandler[tradeapp.OrderResponse, tradeapp.CreateOrderRequest, tradeapp.UpdateOrderRequest]
	svc *tradeapp.OrderService
}

// NewOrderHandler creates an OrderHandler
func NewOrderHandler(svc *tradeapp.OrderService) *OrderHandler {
	return &OrderHandler{
		CRUDHandler: newCRUD[tradeapp.OrderResponse, tradeapp.CreateOrderRequest, tradeapp.UpdateOrderRequest](svc),
		svc:         svc,
	}
}

// GetAll godoc
// @Summary      List every order
// @Tags         orders
// @Produce      json
// @Success      200 {array}  tradeapp.OrderResponse
// @Failure      400 {object} dto.ErrorResponse
// @Router       /api/orders/all [get]
func (h *OrderHandler) GetAll(c *gin.Context) {
	h.CRUDHandler.GetAll(c)
}

// GetByID godoc
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Param        id path int true "Order id"
// @Success      200 {object} tradeapp.OrderResponse
// @Failure      400 {object} dto.ErrorResponse
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *gin.Context) {
	h.CRUDHandler.GetByID(c)
}

// Create godoc
// @Summary      Create an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request body tradeapp.CreateOrderRequest true "Order to create"
// @Success      201 {object} tradeapp.OrderResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	h.CRUDHandler.Create(c)
}

// Update godoc
// @Summary      Update an order
// @Description  Only the fields present in the body change
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id      path int                         true "Order id"
// @Param        request body tradeapp.UpdateOrderRequest true "Fields to change"
// @Success      200 {object} tradeapp.OrderResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/orders/{id} [put]
func (h *OrderHandler) Update(c *gin.Context) {
	h.CRUDHandler.Update(c)
}

// Delete godoc
// @Summary      Delete an order
// @Tags         orders
// @Param        id path int true "Order id"
// @Success      204
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/orders/{id} [delete]
func (h *OrderHandler) Delete(c *gin.Context) {
	h.CRUDHandler.Delete(c)
}

// GetByUser godoc
// @Summary      List orders placed by a user
// @Tags         orders
// @Produce      json
// @Param        userId query int true "User id"
// @Success      200 {array}  tradeapp.OrderResponse
// @Failure      400 {object} dto.ErrorResponse
// @Router       /api/orders/byUser [get]
func (h *OrderHandler) GetByUser(c *gin.Context) {
	listBy(&h.BaseHandler, "userId", h.svc.GetByUser)(c)
}

// GetByShop godoc
// @Summary      List orders received by a shop
// @Tags         orders
// @Produce      json
// @Param        shopId query int true "Shop id"
// @Success      200 {array}  tradeapp.OrderResponse
// @Failure      400 {object} dto.ErrorResponse
// @Router       /api/orders/byShop [get]
func (h *OrderHandler) GetByShop(c *gin.Context) {
	listBy(&h.BaseHandler, "shopId", h.svc.GetByShop)(c)
}
