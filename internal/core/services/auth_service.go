package services

import (
	"context"
	"fmt"
	"time"

	"github.com/mpopesco/investfolio/internal/apperrors"
	portssvc "github.com/mpopesco/investfolio/internal/core/ports/services"
	"github.com/mpopesco/investfolio/internal/dto"
	"github.com/mpopesco/investfolio/internal/platform/config"
	"github.com/mpopesco/investfolio/internal/utils"
)

// authService validates the single configured credential pair and issues
// bearer tokens. There is no user store; this is a self-hosted single-user
// application.
type authService struct {
	cfg *config.Config
}

// NewAuthService creates a new auth service.
func NewAuthService(cfg *config.Config) portssvc.AuthSvcFacade {
	return &authService{cfg: cfg}
}

// Login checks the credential against the configured username and bcrypt hash.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	if req.Username != s.cfg.AuthUsername || !utils.CheckPasswordHash(req.Password, s.cfg.AuthPasswordHash) {
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrValidation)
	}

	expiresAt := time.Now().Add(s.cfg.JWTExpiryDuration)
	token, err := utils.GenerateJWT(req.Username, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &dto.LoginResponse{Token: token, ExpiresAt: expiresAt}, nil
}
