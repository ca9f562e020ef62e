package service

import (
	"context"
	"errors"

	"github.com/bazarhat/shopcore/internal/core/domain"
	"github.com/bazarhat/shopcore/internal/core/port"
	"github.com/bazarhat/shopcore/internal/core/utils"
	"go.uber.org/zap"
)

// Service is the order & payment transaction engine. Catalog CRUD, file
// uploads and the payment-gateway redirect flow live outside it.
type Service struct {
	repo         port.Repository
	tokenService port.TokenService
	pricing      PricingConfig
	posPricing   PricingConfig
	logger       *zap.Logger
}

func NewService(repo port.Repository, tokenService port.TokenService,
	pricing PricingConfig, logger *zap.Logger) (*Service, error) {
	return &Service{
		repo:         repo,
		tokenService: tokenService,
		pricing:      pricing,
		posPricing:   pricing.POS(),
		logger:       logger,
	}, nil
}

func (s *Service) RegisterUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	exUser, err := s.repo.GetUserByEmail(ctx, user.Email)
	if err != nil && !errors.Is(err, domain.ErrDataNotFound) {
		s.logger.Error("Get user", zap.Error(err))
		return nil, domain.ErrInternal
	}
	if exUser != nil {
		return nil, domain.ErrConflictingData
	}

	if user.Role == "" {
		user.Role = domain.RoleCustomer
	}

	newUser, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		s.logger.Error("Create user", zap.Error(err))
		return nil, domain.ErrInternal
	}

	return newUser, nil
}

func (s *Service) LoginUser(ctx context.Context, email string, password string) (string, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrDataNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", domain.ErrInternal
	}

	err = utils.ComparePassword(password, user.Password)
	if err != nil {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokenService.CreateToken(user)
	if err != nil {
		s.logger.Error("Create token", zap.Error(err))
		return "", domain.ErrTokenCreation
	}

	return token, nil
}
