package catalog

import (
	"time"

	"github.com/shopmall/backend/internal/domain/catalog"
	"github.com/shopmall/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CreateParentCategoryRequest represents a request to create a first-level category
type CreateParentCategoryRequest struct {
	Name string `json:"name" binding:"required,max=50"`
}

// UpdateParentCategoryRequest represents a request to update a first-level category
type UpdateParentCategoryRequest struct {
	Name shared.Optional[string] `json:"name" binding:"omitempty,min=1,max=50" swaggertype:"string"`
}

// ParentCategoryResponse represents a first-level category in API responses
type ParentCategoryResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateChildCategoryRequest represents a request to create a second-level category
type CreateChildCategoryRequest struct {
	Name         string  `json:"name" binding:"required,max=50"`
	Category1IDs []int64 `json:"category1Ids" binding:"required,min=1"`
}

// UpdateChildCategoryRequest represents a request to update a second-level category.
// The parent links cannot be changed.
type UpdateChildCategoryRequest struct {
	Name shared.Optional[string] `json:"name" binding:"omitempty,min=1,max=50" swaggertype:"string"`
}

// ChildCategoryResponse represents a second-level category in API responses
type ChildCategoryResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Category1IDs []int64   `json:"category1Ids"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	ShopID       int64           `json:"shopId" binding:"required"`
	Name         string          `json:"name" binding:"required,max=100"`
	Description  string          `json:"description" binding:"max=5000"`
	Price        decimal.Decimal `json:"price" binding:"required" swaggertype:"string"`
	Stock        int             `json:"stock" binding:"min=0"`
	ImageKey     string          `json:"imageKey" binding:"max=255"`
	Category2IDs []int64         `json:"category2Ids"`
}

// UpdateProductRequest represents a request to update a product.
// The shop and category links cannot be changed.
type UpdateProductRequest struct {
	Name        shared.Optional[string]          `json:"name" binding:"omitempty,min=1,max=100" swaggertype:"string"`
	Description shared.Optional[string]          `json:"description" binding:"omitempty,max=5000" swaggertype:"string"`
	Price       shared.Optional[decimal.Decimal] `json:"price" swaggertype:"string"`
	Stock       shared.Optional[int]             `json:"stock" binding:"omitempty,min=0" swaggertype:"integer"`
	ImageKey    shared.Optional[string]          `json:"imageKey" binding:"omitempty,max=255" swaggertype:"string"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID           int64           `json:"id"`
	ShopID       int64           `json:"shopId"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price" swaggertype:"string"`
	Stock        int             `json:"stock"`
	ImageKey     string          `json:"imageKey,omitempty"`
	ImageURL     string          `json:"imageUrl,omitempty"`
	Category2IDs []int64         `json:"category2Ids"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// ToParentCategoryResponse converts a domain ParentCategory to ParentCategoryResponse
func ToParentCategoryResponse(c *catalog.ParentCategory) ParentCategoryResponse {
	return ParentCategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// ToParentCategoryResponses converts a slice of categories
func ToParentCategoryResponses(categories []catalog.ParentCategory) []ParentCategoryResponse {
	responses := make([]ParentCategoryResponse, len(categories))
	for i := range categories {
		responses[i] = ToParentCategoryResponse(&categories[i])
	}
	return responses
}

// ToChildCategoryResponse converts a domain ChildCategory to ChildCategoryResponse
func ToChildCategoryResponse(c *catalog.ChildCategory) ChildCategoryResponse {
	return ChildCategoryResponse{
		ID:           c.ID,
		Name:         c.Name,
		Category1IDs: idsOrEmpty(c.ParentIDs),
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// ToChildCategoryResponses converts a slice of categories
func ToChildCategoryResponses(categories []catalog.ChildCategory) []ChildCategoryResponse {
	responses := make([]ChildCategoryResponse, len(categories))
	for i := range categories {
		responses[i] = ToChildCategoryResponse(&categories[i])
	}
	return responses
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:           p.ID,
		ShopID:       p.ShopID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		Stock:        p.Stock,
		ImageKey:     p.ImageKey,
		Category2IDs: idsOrEmpty(p.ChildCategoryIDs),
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// applyProductUpdate applies the present fields of req to p
func applyProductUpdate(p *catalog.Product, req UpdateProductRequest) error {
	if name, ok := req.Name.Get(); ok {
		if err := p.SetName(name); err != nil {
			return err
		}
	}
	req.Description.ApplyOrClear(&p.Description)
	if price, ok := req.Price.Get(); ok {
		if err := p.SetPrice(price); err != nil {
			return err
		}
	}
	if stock, ok := req.Stock.Get(); ok {
		if err := p.SetStock(stock); err != nil {
			return err
		}
	}
	req.ImageKey.ApplyOrClear(&p.ImageKey)
	return nil
}

func idsOrEmpty(ids []int64) []int64 {
	if ids == nil {
		return []int64{}
	}
	return ids
}
