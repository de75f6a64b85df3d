package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopmall/backend/internal/application/media"
	storeapp "github.com/shopmall/backend/internal/application/store"
)

// ShopHandler serves /api/shops
type ShopHandler struct {
	CRUDHandler[storeapp.ShopResponse, storeapp.CreateShopRequest, storeapp.UpdateShopRequest]
	svc *storeapp.ShopService
}

// NewShopHandler creates a ShopHandler
func NewShopHandler(svc *storeapp.ShopService) *ShopHandler {
	return &ShopHandler{
		CRUDHandler: newCRUD[storeapp.ShopResponse, storeapp.CreateShopRequest, storeapp.UpdateShopRequest](svc),
		svc:         svc,
	}
}

// GetAll godoc
// @Summary      List every shop
// @Tags         shops
// @Produce      json
// @Success      200 {array}  storeapp.ShopResponse
// @Failure      400 {object} dto.ErrorResponse
// @Router       /api/shops/all [get]
func (h *ShopHandler) GetAll(c *gin.Context) {
	h.CRUDHandler.GetAll(c)
}

// GetByID godoc
// @Summary      Get a shop
// @Tags         shops
// @Produce      json
// @Param        id path int true "Shop id"
// @Success      200 {object} storeapp.ShopResponse
// @Failure      400 {object} dto.ErrorResponse
// @Router       /api/shops/{id} [get]
func (h *ShopHandler) GetByID(c *gin.Context) {
	h.CRUDHandler.GetByID(c)
}

// Create godoc
// @Summary      Create a shop
// @Tags         shops
// @Accept       json
// @Produce      json
// @Param        request body storeapp.CreateShopRequest true "Shop to create"
// @Success      201 {object} storeapp.ShopResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/shops [post]
func (h *ShopHandler) Create(c *gin.Context) {
	h.CRUDHandler.Create(c)
}

// Update godoc
// @Summary      Update a shop
// @Description  Only the fields present in the body change
// @Tags         shops
// @Accept       json
// @Produce      json
// @Param        id      path int                        true "Shop id"
// @Param        request body storeapp.UpdateShopRequest true "Fields to change"
// @Success      200 {object} storeapp.ShopResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/shops/{id} [put]
func (h *ShopHandler) Update(c *gin.Context) {
	h.CRUDHandler.Update(c)
}

// Delete godoc
// @Summary      Delete a shop
// @Tags         shops
// @Param        id path int true "Shop id"
// @Success      204
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/shops/{id} [delete]
func (h *ShopHandler) Delete(c *gin.Context) {
	h.CRUDHandler.Delete(c)
}

// GetByOwner godoc
// @Summary      List shops owned by a user
// @Tags         shops
// @Produce      json
// @Param        ownerId query int true "Owner user id"
// @Success      200 {array}  storeapp.ShopResponse
// @Failure      400 {object} dto.ErrorResponse
// @Router       /api/shops/byOwner [get]
func (h *ShopHandler) GetByOwner(c *gin.Context) {
	listBy(&h.BaseHandler, "ownerId", h.svc.GetByOwner)(c)
}

// LogoUploadURL godoc
// @Summary      Presign an upload URL for the shop logo
// @Tags         shops
// @Accept       json
// @Produce      json
// @Param        id      path int                    true "Shop id"
// @Param        request body media.UploadURLRequest true "Image content type"
// @Success      200 {object} media.UploadURLResponse
// @Failure      400 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/shops/{id}/logo-upload-url [post]
func (h *ShopHandler) LogoUploadURL(c *gin.Context) {
	id, ok := h.PathID(c)
	if !ok {
		return
	}
	var req media.UploadURLRequest
	if !h.BindJSON(c, &req) {
		return
	}
	resp, err := h.svc.LogoUploadURL(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// CouponHandler serves /api/coupons
type CouponHandler struct {
	CRUDHandler[storeapp.CouponResponse, storeapp.CreateCouponRequest, storeapp.UpdateCouponRequest]
	svc *storeapp.CouponService
}

// NewCouponHandler creates a CouponHandler
func NewCouponHandler(svc *storeapp.CouponService) *CouponHandler {
	return &CouponHandler{
		CRUDHandler: newCRUD[storeapp.CouponResponse, storeapp.CreateCouponRequest, storeapp.UpdateCouponRequest](svc),
		svc:         svc,
	}
}

// GetAll godoc
// @Summary      List every coupon
// @Tags         coupons
// @Produce      json
// @Success      200 {array}  storeapp.CouponResponse
// @Failure      400 {object} dto.ErrorResponse
// @Router       /api/coupons/all [get]
func (h *CouponHandler) GetAll(c *gin.Context) {
	h.CRUDHandler.GetAll(c)
}

// GetByID godoc
// @Summary      Get a coupon
// @Tags         coupons
// @Produce      json
// @Param        id path int true "Coupon id"
// @Success      200 {object} storeapp.CouponResponse
// @Failure      400 {object} dto.ErrorResponse
// @Router       /api/coupons/{id} [get]
func (h *CouponHandler) GetByID(c *gin.Context) {
	h.CRUDHandler.GetByID(c)
}

// Create godoc
// @Summary      Create a coupon
// @Tags         coupons
// @Accept       json
// @Produce      json
// @Param        request body storeapp.CreateCouponRequest true "Coupon to create"
// @Success      201 {object} storeapp.CouponResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/coupons [post]
func (h *CouponHandler) Create(c *gin.Context) {
	h.CRUDHandler.Create(c)
}

// Update godoc
// @Summary      Update a coupon
// @Description  Only the fields present in the body change
// @Tags         coupons
// @Accept       json
// @Produce      json
// @Param        id      path int                          true "Coupon id"
// @Param        request body storeapp.UpdateCouponRequest true "Fields to change"
// @Success      200 {object} storeapp.CouponResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/coupons/{id} [put]
func (h *CouponHandler) Update(c *gin.Context) {
	h.CRUDHandler.Update(c)
}

// Delete godoc
// @Summary      Delete a coupon
// @Tags         coupons
// @Param        id path int true "Coupon id"
// @Success      204
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/coupons/{id} [delete]
func (h *CouponHandler) Delete(c *gin.Context) {
	h.CRUDHandler.Delete(c)
}

// GetByShop godoc
// @Summary      List coupons issued by a shop
// @Tags         coupons
// @Produce      json
// @Param        shopId query int true "Shop id"
// @Success      200 {array}  storeapp.CouponResponse
// @Failure      400 {object} dto.ErrorResponse
// @Router       /api/coupons/byShop [get]
func (h *CouponHandler) GetByShop(c *gin.Context) {
	listBy(&h.BaseHandler, "shopId", h.svc.GetByShop)(c)
}
