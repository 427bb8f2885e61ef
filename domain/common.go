package domain

import (
	"errors"
)

// AnonymousViewer is passed as viewer id when a request carries no token.
const AnonymousViewer uint64 = 0

const (
	DefaultPageLimit = 6
	MaxPageLimit     = 100
)

var (
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"
	MessageInvalidID            = "invalid id"

	ErrParseID       = errors.New("failed to parse id")
	ErrTokenNotFound = errors.New("failed to token not found")
	ErrTokenExpired  = errors.New("token expired")
	ErrTokenInvalid  = errors.New("token invalid")
)

type (
	PaginationRequest struct {
		Page  int `query:"page" validate:"omitempty,min=1"`
		Limit int `query:"limit" validate:"omitempty,min=1,max=100"`
	}

	PaginationResponse struct {
		Page  int   `json:"page"`
		Limit int   `json:"limit"`
		Total int64 `json:"total"`
	}
)

// Normalize fills in defaults and clamps the limit.
func (p PaginationRequest) Normalize() PaginationRequest {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return p
}

func (p PaginationRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}
