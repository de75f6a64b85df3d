package handler

import (
	"github.com/gin-gonic/gin"
	memberapp "github.com/shopmall/backend/internal/application/member"
	"github.com/shopmall/backend/internal/interfaces/http/middleware"
)

// UserHandler serves /api/users
type UserHandler struct {
	CRUDHandler[memberapp.UserResponse, memberapp.CreateUserRequest, memberapp.UpdateUserRequest]
}

// NewUserHandler creates a UserHandler
func NewUserHandler(svc *memberapp.UserService) *UserHandler {
	return &UserHandler{CRUDHandler: newCRUD[memberapp.UserResponse, memberapp.CreateUserRequest, memberapp.UpdateUserRequest](svc)}
}

// GetAll godoc
// @Summary      List every user
// @Tags         users
// @Produce      json
// @Success      200 {array}  memberapp.UserResponse
// @Failure      400 {object} dto.ErrorResponse
// @Router       /api/users/all [get]
func (h *UserHandler) GetAll(c *gin.Context) {
	h.CRUDHandler.GetAll(c)
}

// GetByID godoc
// @Summary      Get an user
// @Tags         users
// @Produce      json
// @Param        id path int true "User id"
// @Success      200 {object} memberapp.UserResponse
// @Failure      400 {object} dto.ErrorResponse
// @Router       /api/users/{id} [get]
func (h *UserHandler) GetByID(c *gin.Context) {
	h.CRUDHandler.GetByID(c)
}

// Create godoc
// @Summary      Create an user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body memberapp.CreateUserRequest true "User to create"
// @Success      201 {object} memberapp.UserResponse
// @Failure      400 {object} dto.ErrorResponse
// @Router       /api/users [post]
func (h *UserHandler) Create(c *gin.Context) {
	h.CRUDHandler.Create(c)
}

// Update godoc
// @Summary      Update an user
// @Description  Only the fields present in the body change
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id      path int                         true "User id"
// @Param        request body memberapp.UpdateUserRequest true "Fields to change"
// @Success      200 {object} memberapp.UserResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	h.CRUDHandler.Update(c)
}

// Delete godoc
// @Summary      Delete an user
// @Tags         users
// @Param        id path int true "User id"
// @Success      204
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	h.CRUDHandler.Delete(c)
}

// UserAddressHandler serves /api/user-addresses
type UserAddressHandler struct {
	CRUDHandler[memberapp.UserAddressResponse, memberapp.CreateUserAddressRequest, memberapp.UpdateUserAddressRequest]
	svc *memberapp.UserAddressService
}

// NewUserAddressHandler creates a UserAddressHandler
func NewUserAddressHandler(svc *memberapp.UserAddressService) *UserAddressHandler {
	return &UserAddressHandler{
		CRUDHandler: newCRUD[memberapp.UserAddressResponse, memberapp.CreateUserAddressRequest, memberapp.UpdateUserAddressRequest](svc),
		svc:         svc,
	}
}

// GetAll godoc
// @Summary      List every user address
// @Tags         user-addresses
// @Produce      json
// @Success      200 {array}  memberapp.UserAddressResponse
// @Failure      400 {object} dto.ErrorResponse
// @Router       /api/user-addresses/all [get]
func (h *UserAddressHandler) GetAll(c *gin.Context) {
	h.CRUDHandler.GetAll(c)
}

// GetByID godoc
// @Summary      Get an user address
// @Tags         user-addresses
// @Produce      json
// @Param        id path int true "User address id"
// @Success      200 {object} memberapp.UserAddressResponse
// @Failure      400 {object} dto.ErrorResponse
// @Router       /api/user-addresses/{id} [get]
func (h *UserAddressHandler) GetByID(c *gin.Context) {
	h.CRUDHandler.GetByID(c)
}

// Create godoc
// @Summary      Create an user address
// @Tags         user-addresses
// @Accept       json
// @Produce      json
// @Param        request body memberapp.CreateUserAddressRequest true "User address to create"
// @Success      201 {object} memberapp.UserAddressResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/user-addresses [post]
func (h *UserAddressHandler) Create(c *gin.Context) {
	h.CRUDHandler.Create(c)
}

// Update godoc
// @Summary      Update an user address
// @Description  Only the fields present in the body change
// @Tags         user-addresses
// @Accept       json
// @Produce      json
// @Param        id      path int                                true "User address id"
// @Param        request body memberapp.UpdateUserAddressRequest true "Fields to change"
// @Success      200 {object} memberapp.UserAddressResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/user-addresses/{id} [put]
func (h *UserAddressHandler) Update(c *gin.Context) {
	h.CRUDHandler.Update(c)
}

// Delete godoc
// @Summary      Delete an user address
// @Tags         user-addresses
// @Param        id path int true "User address id"
// @Success      204
// @Failure      400 {object} dto.ErrorResponse
// @Failure      401 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/user-addresses/{id} [delete]
func (h *UserAddressHandler) Delete(c *gin.Context) {
	h.CRUDHandler.Delete(c)
}

// GetByUser godoc
// @Summary      List addresses of a user
// @Tags         user-addresses
// @Produce      json
// @Param        userId query int true "User id"
// @Success      200 {array}  memberapp.UserAddressResponse
// @Failure      400 {object} dto.ErrorResponse
// @Router       /api/user-addresses/byUser [get]
func (h *UserAddressHandler) GetByUser(c *gin.Context) {
	listBy(&h.BaseHandler, "userId", h.svc.GetByUser)(c)
}

// AuthHandler serves login and logout
type AuthHandler struct {
	BaseHandler
	auth *memberapp.AuthService
}

// NewAuthHandler creates an AuthHandler
func NewAuthHandler(auth *memberapp.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login godoc
// @Summary      Log in
// @Description  Verifies username and password and issues an access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body memberapp.LoginRequest true "Credentials"
// @Success      200 {object} memberapp.LoginResponse
// @Failure      400 {object} dto.ErrorResponse
// @Failure      403 {object} dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req memberapp.LoginRequest
	if !h.BindJSON(c, &req) {
		return
	}
	resp, err := h.auth.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.Success(c, resp)
}

// Logout godoc
// @Summary      Log out
// @Description  Revokes the presented token for the rest of its lifetime
// @Tags         auth
// @Success      204
// @Failure      401 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.auth.Logout(c.Request.Context(), middleware.GetClaims(c)); err != nil {
		h.HandleDomainError(c, err)
		return
	}
	h.NoContent(c)
}

// RecaptchaHandler serves /api/recaptcha
type RecaptchaHandler struct {
	BaseHandler
	recaptcha *memberapp.RecaptchaService
}

// NewRecaptchaHandler creates a RecaptchaHandler
func NewRecaptchaHandler(recaptcha *memberapp.RecaptchaService) *RecaptchaHandler {
	return &RecaptchaHandler{recaptcha: recaptcha}
}

// Verify godoc
// @Summary      Verify a reCAPTCHA token
// @Tags         recaptcha
// @Accept       json
// @Produce      json
// @Param        request body memberapp.RecaptchaVerifyRequest true "Client token"
// @Success      200 {object} memberapp.RecaptchaVerifyResponse
// @Failure      400 {object} dto.ErrorResponse
// @Router       /api/recaptcha/verify [post]
func (h *RecaptchaHandler) Verify(c *gin.Context) {
	var req memberapp.RecaptchaVerifyRequest
	if !h.BindJSON(c, &req) {
		return
	}
	h.Success(c, h.recaptcha.Verify(c.Request.Context(), req))
}
