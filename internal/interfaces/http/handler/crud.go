package handler

import (
	"context"

	"github.com/gin-gonic/gin"
)

// crudService is the read/create/update/delete surface every entity service exposes
type crudService[R, C, U any] interface {
	GetAll(ctx context.Context) ([]R, error)
	GetByID(ctx context.Context, id int64) (*R, error)
	Create(ctx context.Context, req C) (*R, error)
	Update(ctx context.Context, id int64, req U) (*R, error)
	Delete(ctx context.Context, id int64) error
}

// CRUDHandler serves the uniform routes of one entity family
type CRUDHandler[R, C, U any] struct {
	BaseHandler
	svc crudService[R, C, U]
}

func newCRUD[R, C, U any](svc crudService[R, C, U]) CRUDHandler[R, C, U] {
	return CRUDHandler[R, C, U]{svc: svc}
}

// GetAll serves GET /all
func (h *CRUDHandler[R, C, U]) GetAll(c *gin.Context) {
	items, err := h.svc.GetAll(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, items)
}

// GetByID serves GET /:id
func (h *CRUDHandler[R, C, U]) GetByID(c *gin.Context) {
	id, ok := h.PathID(c)
	if !ok {
		return
	}
	item, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, item)
}

// Create serves POST
func (h *CRUDHandler[R, C, U]) Create(c *gin.Context) {
	var req C
	if !h.BindJSON(c, &req) {
		return
	}
	item, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Created(c, item)
}

// Update serves PUT /:id
func (h *CRUDHandler[R, C, U]) Update(c *gin.Context) {
	id, ok := h.PathID(c)
	if !ok {
		return
	}
	var req U
	if !h.BindJSON(c, &req) {
		return
	}
	item, err := h.svc.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, item)
}

// Delete serves DELETE /:id
func (h *CRUDHandler[R, C, U]) Delete(c *gin.Context) {
	id, ok := h.PathID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// Routes is the part of a family handler the router mounts uniformly
type Routes interface {
	GetAll(c *gin.Context)
	GetByID(c *gin.Context)
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

// listBy serves a parent listing such as GET /byShop?shopId=
func listBy[R any](h *BaseHandler, param string, fetch func(ctx context.Context, id int64) ([]R, error)) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := h.QueryID(c, param)
		if !ok {
			return
		}
		items, err := fetch(c.Request.Context(), id)
		if err != nil {
			h.HandleDomainError(c, err)
			return
		}
		h.Success(c, items)
	}
}
