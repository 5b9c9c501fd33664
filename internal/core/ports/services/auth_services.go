package services

import (
	"context"

	"github.com/mpopesco/investfolio/internal/dto"
)

// AuthSvcFacade validates the configured credential and issues bearer tokens.
type AuthSvcFacade interface {
	// Login checks the credential pair against the configured username and
	// bcrypt hash; apperrors.ErrValidation on mismatch.
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}
