package port

import "github.com/bazarhat/shopcore/internal/core/domain"

type TokenPayload struct {
	UserID uint64
	Role   domain.Role
}

func (p *TokenPayload) Actor() domain.Actor {
	return domain.Actor{UserID: p.UserID, Role: p.Role}
}

//go:generate mockgen -source=auth.go -destination=mock/auth.go -package=mock
type TokenService interface {
	CreateToken(user *domain.User) (string, error)
	VerifyToken(token string) (*TokenPayload, error)
}
