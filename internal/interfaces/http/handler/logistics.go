package handler

import (
	"github.com/gin-gonic/gin"
	logisticsapp "github.com/shopmall/backend/internal/application/logistics"
)

// ShipmentMethodHandler serves /api/shipment-methods
type ShipmentMethodHandler struct {
	CRUDHandler[logisticsapp.ShipmentMethodResponse, logisticsapp.CreateShipmentMethodRequest, logisticsapp.UpdateShipmentMethodRequest]
}

// NewShipmentMethodHandler creates a ShipmentMethodHandler
func NewShipmentMethodHandler(svc *logisticsapp.ShipmentMethodService) *ShipmentMethodHandler {
	return &ShipmentMethodHandler{CRUDHandler: newCRUD[logisticsapp.ShipmentMethodResponse, logisticsapp.CreateShipmentMethodRequest, logisticsapp.UpdateShipmentMethodRequest](svc)}
}

// GetAll godoc
// @Summary      List every shipment method
// @Tags         shipment-methods
// @Produce      json
// @Success      200 {array}  logisticsapp.ShipmentMethodResponse
// @Failure      400 {object} dto.ErrorResponse
// @Router       /api/shipment-methods/all [get]
func (h *ShipmentMethodHandler) GetAll(c *gin.Context) {
	h.CRUDHandler.GetAll(c)
}

// GetByID godoc
// @Summary      Get a shipment method
// @Tags         shipment-methods
// @Produce      json
// @Param        id path int true "Shipment method id"
// @Success      200 {object} logisticsapp.ShipmentMethodResponse
// @Failure      400 {object} dto.ErrorResponse
// @Router       /api/shipment-methods/{id} [get]
func (h *ShipmentMethodHandler) GetByID(c *gin.Context) {
	h.CRUDHandler.GetByID(c)
}

// Create godoc
// @Summary      Create a shipment method
// @Tags         shipment-methods
// @Accept       json
// @Produce      json
// @Param        request body logisticsapp.CreateShipmentMethodRequest true "Shipment method to create"
// @Success      201 {object} logisticsapp.ShipmentMethodResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/shipment-methods [post]
func (h *ShipmentMethodHandler) Create(c *gin.Context) {
	h.CRUDHandler.Create(c)
}

// Update godoc
// @Summary      Update a shipment method
// @Description  Only the fields present in the body change
// @Tags         shipment-methods
// @Accept       json
// @Produce      json
// @Param        id      path int                                      true "Shipment method id"
// @Param        request body logisticsapp.UpdateShipmentMethodRequest true "Fields to change"
// @Success      200 {object} logisticsapp.ShipmentMethodResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/shipment-methods/{id} [put]
func (h *ShipmentMethodHandler) Update(c *gin.Context) {
	h.CRUDHandler.Update(c)
}

// Delete godoc
// @Summary      Delete a shipment method
// @Tags         shipment-methods
// @Param        id path int true "Shipment method id"
// @Success      204
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/shipment-methods/{id} [delete]
func (h *ShipmentMethodHandler) Delete(c *gin.Context) {
	h.CRUDHandler.Delete(c)
}

// ShipmentStatusHandler serves /api/shipment-statuses
type ShipmentStatusHandler struct {
	CRUDHandler[logisticsapp.ShipmentStatusResponse, logisticsapp.CreateShipmentStatusRequest, logisticsapp.UpdateShipmentStatusRequest]
}

// NewShipmentStatusHandler creates a ShipmentStatusHandler
func NewShipmentStatusHandler(svc *logisticsapp.ShipmentStatusService) *ShipmentStatusHandler {
	return &ShipmentStatusHandler{CRUDHandler: newCRUD[logisticsapp.ShipmentStatusResponse, logisticsapp.CreateShipmentStatusRequest, logisticsapp.UpdateShipmentStatusRequest](svc)}
}

// GetAll godoc
// @Summary      List every shipment status
// @Tags         shipment-statuses
// @Produce      json
// @Success      200 {array}  logisticsapp.ShipmentStatusResponse
// @Failure      400 {object} dto.ErrorResponse
// @Router       /api/shipment-statuses/all [get]
func (h *ShipmentStatusHandler) GetAll(c *gin.Context) {
	h.CRUDHandler.GetAll(c)
}

// GetByID godoc
// @Summary      Get a shipment status
// @Tags         shipment-statuses
// @Produce      json
// @Param        id path int true "Shipment status id"
// @Success      200 {object} logisticsapp.ShipmentStatusResponse
// @Failure      400 {object} dto.ErrorResponse
// @Router       /api/shipment-statuses/{id} [get]
func (h *ShipmentStatusHandler) GetByID(c *gin.Context) {
	h.CRUDHandler.GetByID(c)
}

// Create godoc
// @Summary      Create a shipment status
// @Tags         shipment-statuses
// @Accept       json
// @Produce      json
// @Param        request body logisticsapp.CreateShipmentStatusRequest true "Shipment status to create"
// @Success      201 {object} logisticsapp.ShipmentStatusResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/shipment-statuses [post]
func (h *ShipmentStatusHandler) Create(c *gin.Context) {
	h.CRUDHandler.Create(c)
}

// Update godoc
// @Summary      Update a shipment status
// @Description  Only the fields present in the body change
// @Tags         shipment-statuses
// @Accept       json
// @Produce      json
// @Param        id      path int                                      true "Shipment status id"
// @Param        request body logisticsapp.UpdateShipmentStatusRequest true "Fields to change"
// @Success      200 {object} logisticsapp.ShipmentStatusResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/shipment-statuses/{id} [put]
func (h *ShipmentStatusHandler) Update(c *gin.Context) {
	h.CRUDHandler.Update(c)
}

// Delete godoc
// @Summary      Delete a shipment status
// @Tags         shipment-statuses
// @Param        id path int true "Shipment status id"
// @Success      204
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/shipment-statuses/{id} [delete]
func (h *ShipmentStatusHandler) Delete(c *gin.Context) {
	h.CRUDHandler.Delete(c)
}

// ShipmentHandler serves /api/shipments
type ShipmentHandler struct {
	CRUDHandler[logisticsapp.ShipmentResponse, logisticsapp.CreateShipmentRequest, logisticsapp.UpdateShipmentRequest]
	svc *logisticsapp.ShipmentService
}

// NewShipmentHandler creates a ShipmentHandler
func NewShipmentHandler(svc *logisticsapp.ShipmentService) *ShipmentHandler {
	return &ShipmentHandler{
		CRUDHandler: newCRUD[logisticsapp.ShipmentResponse, logisticsapp.CreateShipmentRequest, logisticsapp.UpdateShipmentRequest](svc),
		svc:         svc,
	}
}

// GetAll godoc
// @Summary      List every shipment
// @Tags         shipments
// @Produce      json
// @Success      200 {array}  logisticsapp.ShipmentResponse
// @Failure      400 {object} dto.ErrorResponse
// @Router       /api/shipments/all [get]
func (h *ShipmentHandler) GetAll(c *gin.Context) {
	h.CRUDHandler.GetAll(c)
}

// GetByID godoc
// @Summary      Get a shipment
// @Tags         shipments
// @Produce      json
// @Param        id path int true "Shipment id"
// @Success      200 {object} logisticsapp.ShipmentResponse
// @Failure      400 {object} dto.ErrorResponse
// @Router       /api/shipments/{id} [get]
func (h *ShipmentHandler) GetByID(c *gin.Context) {
	h.CRUDHandler.GetByID(c)
}

// Create godoc
// @Summary      Create a shipment
// @Tags         shipments
// @Accept       json
// @Produce      json
// @Param        request body logisticsapp.CreateShipmentRequest true "Shipment to create"
// @Success      201 {object} logisticsapp.ShipmentResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/shipments [post]
func (h *ShipmentHandler) Create(c *gin.Context) {
	h.CRUDHandler.Create(c)
}

// Update godoc
// @Summary      Update a shipment
// @Description  Only the fields present in the body change
// @Tags         shipments
// @Accept       json
// @Produce      json
// @Param        id      path int                                true "Shipment id"
// @Param        request body logisticsapp.UpdateShipmentRequest true "Fields to change"
// @Success      200 {object} logisticsapp.ShipmentResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/shipments/{id} [put]
func (h *ShipmentHandler) Update(c *gin.Context) {
	h.CRUDHandler.Update(c)
}

// Delete godoc
// @Summary      Delete a shipment
// @Tags         shipments
// @Param        id path int true "Shipment id"
// @Success      204
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/shipments/{id} [delete]
func (h *ShipmentHandler) Delete(c *gin.Context) {
	h.CRUDHandler.Delete(c)
}

// GetByOrder godoc
// @Summary      List shipments of an order
// @Tags         shipments
// @Produce      json
// @Param        orderId query int true "Order id"
// @Success      200 {array}  logisticsapp.ShipmentResponse
// @Failure      400 {object} dto.ErrorResponse
// @Router       /api/shipments/byOrder [get]
func (h *ShipmentHandler) GetByOrder(c *gin.Context) {
	listBy(&h.BaseHandler, "orderId", h.svc.GetByOrder)(c)
}
