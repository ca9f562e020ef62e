package http

import (
	"github.com/bazarhat/shopcore/internal/core/domain"
	"github.com/bazarhat/shopcore/internal/core/port"
	"github.com/bazarhat/shopcore/internal/core/utils"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type UserHandler struct {
	Handler
	service port.Service
}

func NewUserHandler(service port.Service, logger *zap.Logger) (*UserHandler, error) {
	return &UserHandler{
		Handler: *NewHandler(logger),
		service: service,
	}, nil
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (uh *UserHandler) RegisterUser(ctx *gin.Context) {
	req := registerRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		uh.handleValidationError(ctx, err)
		return
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		uh.handleError(ctx, domain.ErrInternal)
		return
	}

	user := &domain.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hashed,
		Role:     domain.RoleCustomer,
	}

	if _, err := uh.service.RegisterUser(ctx, user); err != nil {
		uh.handleError(ctx, err)
		return
	}

	token, err := uh.service.LoginUser(ctx, req.Email, req.Password)
	if err != nil {
		uh.handleError(ctx, err)
		return
	}

	uh.handleSuccess(ctx, tokenResponse{Token: token})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func (uh *UserHandler) LoginUser(ctx *gin.Context) {
	req := loginRequest{}
	if err := ctx.ShouldBindBodyWithJSON(&req); err != nil {
		uh.handleValidationError(ctx, err)
		return
	}

	token, err := uh.service.LoginUser(ctx, req.Email, req.Password)
	if err != nil {
		uh.handleError(ctx, err)
		return
	}

	uh.handleSuccess(ctx, tokenResponse{Token: token})
}
