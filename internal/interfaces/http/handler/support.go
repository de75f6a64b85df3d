package handler

import (
	"github.com/gin-gonic/gin"
	supportapp "github.com/shopmall/backend/internal/application/support"
)

// ChatHandler serves /api/chats
type ChatHandler struct {
	CRUDHandler[supportapp.ChatMessageResponse, supportapp.CreateChatMessageRequest, supportapp.UpdateChatMessageRequest]
	svc *supportapp.ChatMessageService
}

// NewChatHandler creates a ChatHandler
func NewChatHandler(svc *supportapp.ChatMessageService) *ChatHandler {
	return &ChatHandler{
		CRUDHandler: newCRUD[supportapp.ChatMessageResponse, supportapp.CreateChatMessageRequest, supportapp.UpdateChatMessageRequest](svc),
		svc:         svc,
	}
}

// GetAll godoc
// @Summary      List every chat message
// @Tags         chats
// @Produce      json
// @Success      200 {array}  supportapp.ChatMessageResponse
// @Failure      400 {object} dto.ErrorResponse
// @Router       /api/chats/all [get]
func (h *ChatHandler) GetAll(c *gin.Context) {
	h.CRUDHandler.GetAll(c)
}

// GetByID godoc
// @Summary      Get a chat message
// @Tags         chats
// @Produce      json
// @Param        id path int true "Chat message id"
// @Success      200 {object} supportapp.ChatMessageResponse
// @Failure      400 {object} dto.ErrorResponse
// @Router       /api/chats/{id} [get]
func (h *ChatHandler) GetByID(c *gin.Context) {
	h.CRUDHandler.GetByID(c)
}

// Create godoc
// @Summary      Create a chat message
// @Tags         chats
// @Accept       json
// @Produce      json
// @Param        request body supportapp.CreateChatMessageRequest true "Chat message to create"
// @Success      201 {object} supportapp.ChatMessageResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/chats [post]
func (h *ChatHandler) Create(c *gin.Context) {
	h.CRUDHandler.Create(c)
}

// Update godoc
// @Summary      Update a chat message
// @Description  Only the fields present in the body change
// @Tags         chats
// @Accept       json
// @Produce      json
// @Param        id      path int                                 true "Chat message id"
// @Param        request body supportapp.UpdateChatMessageRequest true "Fields to change"
// @Success      200 {object} supportapp.ChatMessageResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/chats/{id} [put]
func (h *ChatHandler) Update(c *gin.Context) {
	h.CRUDHandler.Update(c)
}

// Delete godoc
// @Summary      Delete a chat message
// @Tags         chats
// @Param        id path int true "Chat message id"
// @Success      204
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/chats/{id} [delete]
func (h *ChatHandler) Delete(c *gin.Context) {
	h.CRUDHandler.Delete(c)
}

// GetByShop godoc
// @Summary      List chat messages of a shop
// @Tags         chats
// @Produce      json
// @Param        shopId query int true "Shop id"
// @Success      200 {array}  supportapp.ChatMessageResponse
// @Failure      400 {object} dto.ErrorResponse
// @Router       /api/chats/byShop [get]
func (h *ChatHandler) GetByShop(c *gin.Context) {
	listBy(&h.BaseHandler, "shopId", h.svc.GetByShop)(c)
}

// GetByUser godoc
// @Summary      List chat messages of a user
// @Tags         chats
// @Produce      json
// @Param        userId query int true "User id"
// @Success      200 {array}  supportapp.ChatMessageResponse
// @Failure      400 {object} dto.ErrorResponse
// @Router       /api/chats/byUser [get]
func (h *ChatHandler) GetByUser(c *gin.Context) {
	listBy(&h.BaseHandler, "userId", h.svc.GetByUser)(c)
}

// GetByShopAndUser godoc
// @Summary      List the conversation between a shop and a user
// @Tags         chats
// @Produce      json
// @Param        shopId query int true "Shop id"
// @Param        userId query int true "User id"
// @Success      200 {array}  supportapp.ChatMessageResponse
// @Failure      400 {object} dto.ErrorResponse
// @Router       /api/chats/byShopAndUser [get]
func (h *ChatHandler) GetByShopAndUser(c *gin.Context) {
	shopID, ok := h.QueryID(c, "shopId")
	if !ok {
		return
	}
	userID, ok := h.QueryID(c, "userId")
	if !ok {
		return
	}
	items, err := h.svc.GetByShopAndUser(c.Request.Context(), shopID, userID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, items)
}
