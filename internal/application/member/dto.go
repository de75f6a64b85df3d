package member

import (
	"time"

	"github.com/shopmall/backend/internal/domain/member"
	"github.com/shopmall/backend/internal/domain/shared"
)

// CreateUserRequest represents a sign-up request
type CreateUserRequest struct {
	Username       string `json:"username" binding:"required,min=3,max=50"`
	Password       string `json:"password" binding:"required,min=8,max=72"`
	DisplayName    string `json:"displayName" binding:"max=100"`
	Email          string `json:"email" binding:"omitempty,email,max=255"`
	Phone          string `json:"phone" binding:"max=30"`
	RecaptchaToken string `json:"recaptchaToken"`
}

// UpdateUserRequest represents a request to update a user.
// Username and role cannot be changed through this request.
type UpdateUserRequest struct {
	Password    shared.Optional[string] `json:"password" binding:"omitempty,min=8,max=72" swaggertype:"string"`
	DisplayName shared.Optional[string] `json:"displayName" binding:"omitempty,max=100" swaggertype:"string"`
	Email       shared.Optional[string] `json:"email" binding:"omitempty,email,max=255" swaggertype:"string"`
	Phone       shared.Optional[string] `json:"phone" binding:"omitempty,max=30" swaggertype:"string"`
}

// UserResponse represents a user in API responses. The password hash is never exposed.
type UserResponse struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	DisplayName string    `json:"displayName"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateUserAddressRequest represents a request to add an address book entry
type CreateUserAddressRequest struct {
	UserID        int64  `json:"userId" binding:"required"`
	RecipientName string `json:"recipientName" binding:"required,max=100"`
	Phone         string `json:"phone" binding:"required,max=30"`
	City          string `json:"city" binding:"required,max=50"`
	District      string `json:"district" binding:"max=50"`
	Street        string `json:"street" binding:"required,max=255"`
	PostalCode    string `json:"postalCode" binding:"max=10"`
	IsDefault     bool   `json:"isDefault"`
}

// UpdateUserAddressRequest represents a request to update an address. The user cannot be changed.
type UpdateUserAddressRequest struct {
	RecipientName shared.Optional[string] `json:"recipientName" binding:"omitempty,max=100" swaggertype:"string"`
	Phone         shared.Optional[string] `json:"phone" binding:"omitempty,max=30" swaggertype:"string"`
	City          shared.Optional[string] `json:"city" binding:"omitempty,max=50" swaggertype:"string"`
	District      shared.Optional[string] `json:"district" binding:"omitempty,max=50" swaggertype:"string"`
	Street        shared.Optional[string] `json:"street" binding:"omitempty,max=255" swaggertype:"string"`
	PostalCode    shared.Optional[string] `json:"postalCode" binding:"omitempty,max=10" swaggertype:"string"`
	IsDefault     shared.Optional[bool]   `json:"isDefault" swaggertype:"boolean"`
}

// UserAddressResponse represents an address in API responses
type UserAddressResponse struct {
	ID            int64     `json:"id"`
	UserID        int64     `json:"userId"`
	RecipientName string    `json:"recipientName"`
	Phone         string    `json:"phone"`
	City          string    `json:"city"`
	District      string    `json:"district"`
	Street        string    `json:"street"`
	PostalCode    string    `json:"postalCode"`
	FullAddress   string    `json:"fullAddress"`
	IsDefault     bool      `json:"isDefault"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued access token
type LoginResponse struct {
	AccessToken string       `json:"accessToken"`
	TokenType   string       `json:"tokenType"`
	ExpiresAt   time.Time    `json:"expiresAt"`
	User        UserResponse `json:"user"`
}

// RecaptchaVerifyRequest represents a standalone captcha check
type RecaptchaVerifyRequest struct {
	Token string `json:"token" binding:"required"`
}

// RecaptchaVerifyResponse reports the outcome of a captcha check
type RecaptchaVerifyResponse struct {
	Success bool `json:"success"`
}

// ToUserResponse converts a domain User to UserResponse
func ToUserResponse(u *member.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		Email:       u.Email,
		Phone:       u.Phone,
		Role:        u.Role,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// ToUserResponses converts a slice of users
func ToUserResponses(users []member.User) []UserResponse {
	responses := make([]UserResponse, len(users))
	for i := range users {
		responses[i] = ToUserResponse(&users[i])
	}
	return responses
}

// ToUserAddressResponse converts a domain UserAddress to UserAddressResponse
func ToUserAddressResponse(a *member.UserAddress) UserAddressResponse {
	return UserAddressResponse{
		ID:            a.ID,
		UserID:        a.UserID,
		RecipientName: a.RecipientName,
		Phone:         a.Phone,
		City:          a.City,
		District:      a.District,
		Street:        a.Street,
		PostalCode:    a.PostalCode,
		FullAddress:   a.FullAddress(),
		IsDefault:     a.IsDefault,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

// ToUserAddressResponses converts a slice of addresses
func ToUserAddressResponses(addresses []member.UserAddress) []UserAddressResponse {
	responses := make([]UserAddressResponse, len(addresses))
	for i := range addresses {
		responses[i] = ToUserAddressResponse(&addresses[i])
	}
	return responses
}

func applyAddressUpdate(a *member.UserAddress, req UpdateUserAddressRequest) error {
	req.RecipientName.ApplyTo(&a.RecipientName)
	req.Phone.ApplyTo(&a.Phone)
	req.City.ApplyTo(&a.City)
	req.District.ApplyOrClear(&a.District)
	req.Street.ApplyTo(&a.Street)
	req.PostalCode.ApplyOrClear(&a.PostalCode)
	req.IsDefault.ApplyTo(&a.IsDefault)
	return a.Validate()
}
