package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	paymentapp "github.com/shopmall/backend/internal/application/payment"
	"github.com/shopmall/backend/internal/infrastructure/logger"
	"github.com/shopmall/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// PaymentMethodHandler serves /api/payment-methods
type PaymentMethodHandler struct {
	CRUDHandler[paymentapp.LookupResponse, paymentapp.CreateLookupRequest, paymentapp.UpdateLookupRequest]
}

// NewPaymentMethodHandler creates a PaymentMethodHandler
func NewPaymentMethodHandler(svc *paymentapp.PaymentMethodService) *PaymentMethodHandler {
	return &PaymentMethodHandler{CRUDHandler: newCRUD[paymentapp.LookupResponse, paymentapp.CreateLookupRequest, paymentapp.UpdateLookupRequest](svc)}
}

// GetAll godoc
// @Summary      List every payment method
// @Tags         payment-methods
// @Produce      json
// @Success      200 {array}  paymentapp.LookupResponse
// @Failure      400 {object} dto.ErrorResponse
// @Router       /api/payment-methods/all [get]
func (h *PaymentMethodHandler) GetAll(c *gin.Context) {
	h.CRUDHandler.GetAll(c)
}

// GetByID godoc
// @Summary      Get a payment method
// @Tags         payment-methods
// @Produce      json
// @Param        id path int true "Payment method id"
// @Success      200 {object} paymentapp.LookupResponse
// @Failure      400 {object} dto.ErrorResponse
// @Router       /api/payment-methods/{id} [get]
func (h *PaymentMethodHandler) GetByID(c *gin.Context) {
	h.CRUDHandler.GetByID(c)
}

// Create godoc
// @Summary      Create a payment method
// @Tags         payment-methods
// @Accept       json
// @Produce      json
// @Param        request body paymentapp.CreateLookupRequest true "Payment method to create"
// @Success      201 {object} paymentapp.LookupResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/payment-methods [post]
func (h *PaymentMethodHandler) Create(c *gin.Context) {
	h.CRUDHandler.Create(c)
}

// Update godoc
// @Summary      Update a payment method
// @Description  Only the fields present in the body change
// @Tags         payment-methods
// @Accept       json
// @Produce      json
// @Param        id      path int                            true "Payment method id"
// @Param        request body paymentapp.UpdateLookupRequest true "Fields to change"
// @Success      200 {object} paymentapp.LookupResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/payment-methods/{id} [put]
func (h *PaymentMethodHandler) Update(c *gin.Context) {
	h.CRUDHandler.Update(c)
}

// Delete godoc
// @Summary      Delete a payment method
// @Tags         payment-methods
// @Param        id path int true "Payment method id"
// @Success      204
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/payment-methods/{id} [delete]
func (h *PaymentMethodHandler) Delete(c *gin.Context) {
	h.CRUDHandler.Delete(c)
}

// PaymentStatusHandler serves /api/payment-statuses
type PaymentStatusHandler struct {
	CRUDHandler[paymentapp.LookupResponse, paymentapp.CreateLookupRequest, paymentapp.UpdateLookupRequest]
}

// NewPaymentStatusHandler creates a PaymentStatusHandler
func NewPaymentStatusHandler(svc *paymentapp.PaymentStatusService) *PaymentStatusHandler {
	return &PaymentStatusHandler{CRUDHandler: newCRUD[paymentapp.LookupResponse, paymentapp.CreateLookupRequest, paymentapp.UpdateLookupRequest](svc)}
}

// GetAll godoc
// @Summary      List every payment status
// @Tags         payment-statuses
// @Produce      json
// @Success      200 {array}  paymentapp.LookupResponse
// @Failure      400 {object} dto.ErrorResponse
// @Router       /api/payment-statuses/all [get]
func (h *PaymentStatusHandler) GetAll(c *gin.Context) {
	h.CRUDHandler.GetAll(c)
}

// GetByID godoc
// @Summary      Get a payment status
// @Tags         payment-statuses
// @Produce      json
// @Param        id path int true "Payment status id"
// @Success      200 {object} paymentapp.LookupResponse
// @Failure      400 {object} dto.ErrorResponse
// @Router       /api/payment-statuses/{id} [get]
func (h *PaymentStatusHandler) GetByID(c *gin.Context) {
	h.CRUDHandler.GetByID(c)
}

// Create godoc
// @Summary      Create a payment status
// @Tags         payment-statuses
// @Accept       json
// @Produce      json
// @Param        request body paymentapp.CreateLookupRequest true "Payment status to create"
// @Success      201 {object} paymentapp.LookupResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/payment-statuses [post]
func (h *PaymentStatusHandler) Create(c *gin.Context) {
	h.CRUDHandler.Create(c)
}

// Update godoc
// @Summary      Update a payment status
// @Description  Only the fields present in the body change
// @Tags         payment-statuses
// @Accept       json
// @Produce      json
// @Param        id      path int                            true "Payment status id"
// @Param        request body paymentapp.UpdateLookupRequest true "Fields to change"
// @Success      200 {object} paymentapp.LookupResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/payment-statuses/{id} [put]
func (h *PaymentStatusHandler) Update(c *gin.Context) {
	h.CRUDHandler.Update(c)
}

// Delete godoc
// @Summary      Delete a payment status
// @Tags         payment-statuses
// @Param        id path int true "Payment status id"
// @Success      204
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/payment-statuses/{id} [delete]
func (h *PaymentStatusHandler) Delete(c *gin.Context) {
	h.CRUDHandler.Delete(c)
}

// PaymentHandler serves /api/payments
type PaymentHandler struct {
	CRUDHandler[paymentapp.PaymentResponse, paymentapp.CreatePaymentRequest, paymentapp.UpdatePaymentRequest]
	svc *paymentapp.PaymentService
}

// NewPaymentHandler creates a PaymentHandler
func NewPaymentHandler(svc *paymentapp.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		CRUDHandler: newCRUD[paymentapp.PaymentResponse, paymentapp.CreatePaymentRequest, paymentapp.UpdatePaymentRequest](svc),
		svc:         svc,
	}
}

// GetAll godoc
// @Summary      List every payment
// @Tags         payments
// @Produce      json
// @Success      200 {array}  paymentapp.PaymentResponse
// @Failure      400 {object} dto.ErrorResponse
// @Router       /api/payments/all [get]
func (h *PaymentHandler) GetAll(c *gin.Context) {
	h.CRUDHandler.GetAll(c)
}

// GetByID godoc
// @Summary      Get a payment
// @Tags         payments
// @Produce      json
// @Param        id path int true "Payment id"
// @Success      200 {object} paymentapp.PaymentResponse
// @Failure      400 {object} dto.ErrorResponse
// @Router       /api/payments/{id} [get]
func (h *PaymentHandler) GetByID(c *gin.Context) {
	h.CRUDHandler.GetByID(c)
}

// Create godoc
// @Summary      Create a payment
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request body paymentapp.CreatePaymentRequest true "Payment to create"
// @Success      201 {object} paymentapp.PaymentResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/payments [post]
func (h *PaymentHandler) Create(c *gin.Context) {
	h.CRUDHandler.Create(c)
}

// Update godoc
// @Summary      Update a payment
// @Description  Only the fields present in the body change
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        id      path int                             true "Payment id"
// @Param        request body paymentapp.UpdatePaymentRequest true "Fields to change"
// @Success      200 {object} paymentapp.PaymentResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/payments/{id} [put]
func (h *PaymentHandler) Update(c *gin.Context) {
	h.CRUDHandler.Update(c)
}

// Delete godoc
// @Summary      Delete a payment
// @Tags         payments
// @Param        id path int true "Payment id"
// @Success      204
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/payments/{id} [delete]
func (h *PaymentHandler) Delete(c *gin.Context) {
	h.CRUDHandler.Delete(c)
}

// GetByOrder godoc
// @Summary      List payments of an order
// @Tags         payments
// @Produce      json
// @Param        orderId query int true "Order id"
// @Success      200 {array}  paymentapp.PaymentResponse
// @Failure      400 {object} dto.ErrorResponse
// @Router       /api/payments/byOrder [get]
func (h *PaymentHandler) GetByOrder(c *gin.Context) {
	listBy(&h.BaseHandler, "orderId", h.svc.GetByOrder)(c)
}

// Checkout godoc
// @Summary      Build the gateway checkout form for a payment
// @Description  Returns the form fields the client posts to the payment gateway
// @Tags         payments
// @Produce      json
// @Param        id path int true "Payment id"
// @Success      200 {object} paymentapp.CheckoutResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      503 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/payments/{id}/checkout [post]
func (h *PaymentHandler) Checkout(c *gin.Context) {
	id, ok := h.PathID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Checkout(c.Request.Context(), id)
	if errors.Is(err, paymentapp.ErrGatewayNotConfigured) {
		h.Error(c, http.StatusServiceUnavailable, dto.ErrCodeUnavailable, err.Error())
		return
	}
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// NotifyHandler receives the gateway's server-to-server payment result
type NotifyHandler struct {
	notify *paymentapp.NotifyService
}

// NewNotifyHandler creates a NotifyHandler. A nil service answers every
// notification with an error acknowledgement.
func NewNotifyHandler(notify *paymentapp.NotifyService) *NotifyHandler {
	return &NotifyHandler{notify: notify}
}

// Notify godoc
// @Summary      Payment gateway notification
// @Description  Always answers 200 with "1|OK" or "0|Error: <message>"
// @Tags         payments
// @Accept       x-www-form-urlencoded
// @Produce      plain
// @Success      200 {string} string "1|OK"
// @Router       /payment/notify [post]
func (h *NotifyHandler) Notify(c *gin.Context) {
	err := h.handle(c)
	if err != nil {
		logger.GetGinLogger(c).Warn("Payment notification rejected", zap.Error(err))
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(paymentapp.NotifyAck(err)))
}

var (
	errNotifyBodyTooLarge = errors.New("request body too large")
	errNotifyInternal     = errors.New("internal error")
)

// Guard runs in front of Notify on the notify route. Oversized bodies and
// panics are answered 200 with an error acknowledgement like any other failure.
func (h *NotifyHandler) Guard(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.GetGinLogger(c).Error("Panic while handling payment notification",
					zap.Any("error", rec),
					zap.Stack("stacktrace"))
				c.Abort()
				c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(paymentapp.NotifyAck(errNotifyInternal)))
			}
		}()

		if maxBytes > 0 {
			if c.Request.ContentLength > maxBytes {
				c.Abort()
				c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(paymentapp.NotifyAck(errNotifyBodyTooLarge)))
				return
			}
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}

func (h *NotifyHandler) handle(c *gin.Context) error {
	if h.notify == nil {
		return paymentapp.ErrGatewayNotConfigured
	}
	if err := c.Request.ParseForm(); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return errNotifyBodyTooLarge
		}
		return err
	}
	return h.notify.HandleNotification(c.Request.Context(), c.Request.PostForm)
}
