package handler

import "github.com/tourhub/marketplace/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request / Response types ---

type registerRequest struct {
	Email       string `json:"email"       validate:"required,max=254"`
	Password    string `json:"password"    validate:"required,max=72"`
	FullName    string `json:"fullName"    validate:"required,max=200"`
	UserType    string `json:"userType"    validate:"required" example:"Traveler"`
	PhoneNumber string `json:"phoneNumber" validate:"omitempty,max=40"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

// profileRequest only carries the editable fields; anything else in the body
// is dropped during binding.
type profileRequest struct {
	FullName    *string `json:"fullName"    validate:"omitempty,max=200"`
	PhoneNumber *string `json:"phoneNumber" validate:"omitempty,max=40"`
}

type userResponse struct {
	User *domain.User `json:"user"`
}

// sessionResponse renders User as null for anonymous callers.
type sessionResponse struct {
	User *domain.User `json:"user"`
}

type messageResponse struct {
	Message string `json:"message"`
}
