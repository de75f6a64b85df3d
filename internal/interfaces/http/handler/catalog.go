package handler

import (
	"github.com/gin-gonic/gin"
	catalogapp "github.com/shopmall/backend/internal/application/catalog"
	"github.com/shopmall/backend/internal/application/media"
)

// ParentCategoryHandler serves /api/category1
type ParentCategoryHandler struct {
	CRUDHandler[catalogapp.ParentCategoryResponse, catalogapp.CreateParentCategoryRequest, catalogapp.UpdateParentCategoryRequest]
}

// NewParentCategoryHandler creates a ParentCategoryHandler
func NewParentCategoryHandler(svc *catalogapp.ParentCategoryService) *ParentCategoryHandler {
	return &ParentCategoryHandler{CRUDHandler: newCRUD[catalogapp.ParentCategoryResponse, catalogapp.CreateParentCategoryRequest, catalogapp.UpdateParentCategoryRequest](svc)}
}

// GetAll godoc
// @Summary      List every first-level category
// @Tags         category1
// @Produce      json
// @Success      200 {array}  catalogapp.ParentCategoryResponse
// @Failure      400 {object} dto.ErrorResponse
// @Router       /api/category1/all [get]
func (h *ParentCategoryHandler) GetAll(c *gin.Context) {
	h.CRUDHandler.GetAll(c)
}

// GetByID godoc
// @Summary      Get a first-level category
// @Tags         category1
// @Produce      json
// @Param        id path int true "First-level category id"
// @Success      200 {object} catalogapp.ParentCategoryResponse
// @Failure      400 {object} dto.ErrorResponse
// @Router       /api/category1/{id} [get]
func (h *ParentCategoryHandler) GetByID(c *gin.Context) {
	h.CRUDHandler.GetByID(c)
}

// Create godoc
// @Summary      Create a first-level category
// @Tags         category1
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateParentCategoryRequest true "First-level category to create"
// @Success      201 {object} catalogapp.ParentCategoryResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/category1 [post]
func (h *ParentCategoryHandler) Create(c *gin.Context) {
	h.CRUDHandler.Create(c)
}

// Update godoc
// @Summary      Update a first-level category
// @Description  Only the fields present in the body change
// @Tags         category1
// @Accept       json
// @Produce      json
// @Param        id      path int                                    true "First-level category id"
// @Param        request body catalogapp.UpdateParentCategoryRequest true "Fields to change"
// @Success      200 {object} catalogapp.ParentCategoryResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/category1/{id} [put]
func (h *ParentCategoryHandler) Update(c *gin.Context) {
	h.CRUDHandler.Update(c)
}

// Delete godoc
// @Summary      Delete a first-level category
// @Tags         category1
// @Param        id path int true "First-level category id"
// @Success      204
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/category1/{id} [delete]
func (h *ParentCategoryHandler) Delete(c *gin.Context) {
	h.CRUDHandler.Delete(c)
}

// ChildCategoryHandler serves /api/category2
type ChildCategoryHandler struct {
	CRUDHandler[catalogapp.ChildCategoryResponse, catalogapp.CreateChildCategoryRequest, catalogapp.UpdateChildCategoryRequest]
	svc *catalogapp.ChildCategoryService
}

// NewChildCategoryHandler creates a ChildCategoryHandler
func NewChildCategoryHandler(svc *catalogapp.ChildCategoryService) *ChildCategoryHandler {
	return &ChildCategoryHandler{
		CRUDHandler: newCRUD[catalogapp.ChildCategoryResponse, catalogapp.CreateChildCategoryRequest, catalogapp.UpdateChildCategoryRequest](svc),
		svc:         svc,
	}
}

// GetAll godoc
// @Summary      List every second-level category
// @Tags         category2
// @Produce      json
// @Success      200 {array}  catalogapp.ChildCategoryResponse
// @Failure      400 {object} dto.ErrorResponse
// @Router       /api/category2/all [get]
func (h *ChildCategoryHandler) GetAll(c *gin.Context) {
	h.CRUDHandler.GetAll(c)
}

// GetByID godoc
// @Summary      Get a second-level category
// @Tags         category2
// @Produce      json
// @Param        id path int true "Second-level category id"
// @Success      200 {object} catalogapp.ChildCategoryResponse
// @Failure      400 {object} dto.ErrorResponse
// @Router       /api/category2/{id} [get]
func (h *ChildCategoryHandler) GetByID(c *gin.Context) {
	h.CRUDHandler.GetByID(c)
}

// Create godoc
// @Summary      Create a second-level category
// @Tags         category2
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateChildCategoryRequest true "Second-level category to create"
// @Success      201 {object} catalogapp.ChildCategoryResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/category2 [post]
func (h *ChildCategoryHandler) Create(c *gin.Context) {
	h.CRUDHandler.Create(c)
}

// Update godoc
// @Summary      Update a second-level category
// @Description  Only the fields present in the body change
// @Tags         category2
// @Accept       json
// @Produce      json
// @Param        id      path int                                   true "Second-level category id"
// @Param        request body catalogapp.UpdateChildCategoryRequest true "Fields to change"
// @Success      200 {object} catalogapp.ChildCategoryResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/category2/{id} [put]
func (h *ChildCategoryHandler) Update(c *gin.Context) {
	h.CRUDHandler.Update(c)
}

// Delete godoc
// @Summary      Delete a second-level category
// @Tags         category2
// @Param        id path int true "Second-level category id"
// @Success      204
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/category2/{id} [delete]
func (h *ChildCategoryHandler) Delete(c *gin.Context) {
	h.CRUDHandler.Delete(c)
}

// GetByParent godoc
// @Summary      List child categories of a parent category
// @Tags         category2
// @Produce      json
// @Param        parentId query int true "Parent category id"
// @Success      200 {array}  catalogapp.ChildCategoryResponse
// @Failure      400 {object} dto.ErrorResponse
// @Router       /api/category2/byParent [get]
func (h *ChildCategoryHandler) GetByParent(c *gin.Context) {
	listBy(&h.BaseHandler, "parentId", h.svc.GetByParent)(c)
}

// ProductHandler serves /api/products
type ProductHandler struct {
	CRUDHandler[catalogapp.ProductResponse, catalogapp.CreateProductRequest, catalogapp.UpdateProductRequest]
	svc *catalogapp.ProductService
}

// NewProductHandler creates a ProductHandler
func NewProductHandler(svc *catalogapp.ProductService) *ProductHandler {
	return &ProductHandler{
		CRUDHandler: newCRUD[catalogapp.ProductResponse, catalogapp.CreateProductRequest, catalogapp.UpdateProductRequest](svc),
		svc:         svc,
	}
}

// GetAll godoc
// @Summary      List every product
// @Tags         products
// @Produce      json
// @Success      200 {array}  catalogapp.ProductResponse
// @Failure      400 {object} dto.ErrorResponse
// @Router       /api/products/all [get]
func (h *ProductHandler) GetAll(c *gin.Context) {
	h.CRUDHandler.GetAll(c)
}

// GetByID godoc
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Param        id path int true "Product id"
// @Success      200 {object} catalogapp.ProductResponse
// @Failure      400 {object} dto.ErrorResponse
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *gin.Context) {
	h.CRUDHandler.GetByID(c)
}

// Create godoc
// @Summary      Create a product
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        request body catalogapp.CreateProductRequest true "Product to create"
// @Success      201 {object} catalogapp.ProductResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	h.CRUDHandler.Create(c)
}

// Update godoc
// @Summary      Update a product
// @Description  Only the fields present in the body change
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id      path int                             true "Product id"
// @Param        request body catalogapp.UpdateProductRequest true "Fields to change"
// @Success      200 {object} catalogapp.ProductResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	h.CRUDHandler.Update(c)
}

// Delete godoc
// @Summary      Delete a product
// @Tags         products
// @Param        id path int true "Product id"
// @Success      204
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	h.CRUDHandler.Delete(c)
}

// GetByShop godoc
// @Summary      List products of a shop
// @Tags         products
// @Produce      json
// @Param        shopId query int true "Shop id"
// @Success      200 {array}  catalogapp.ProductResponse
// @Failure      400 {object} dto.ErrorResponse
// @Router       /api/products/byShop [get]
func (h *ProductHandler) GetByShop(c *gin.Context) {
	listBy(&h.BaseHandler, "shopId", h.svc.GetByShop)(c)
}

// GetByCategory2 godoc
// @Summary      List products in a child category
// @Tags         products
// @Produce      json
// @Param        category2Id query int true "Child category id"
// @Success      200 {array}  catalogapp.ProductResponse
// @Failure      400 {object} dto.ErrorResponse
// @Router       /api/products/byCategory2 [get]
func (h *ProductHandler) GetByCategory2(c *gin.Context) {
	listBy(&h.BaseHandler, "category2Id", h.svc.GetByCategory2)(c)
}

// ImageUploadURL godoc
// @Summary      Presign an upload URL for the product image
// @Description  The returned key is stored on the product with a later update.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id      path int                    true "Product id"
// @Param        request body media.UploadURLRequest true "Image content type"
// @Success      200 {object} media.UploadURLResponse
// @Failure      400 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/products/{id}/image-upload-url [post]
func (h *ProductHandler) ImageUploadURL(c *gin.Context) {
	id, ok := h.PathID(c)
	if !ok {
		return
	}
	var req media.UploadURLRequest
	if !h.BindJSON(c, &req) {
		return
	}
	resp, err := h.svc.ImageUploadURL(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}
