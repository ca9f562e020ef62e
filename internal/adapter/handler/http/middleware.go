package http

import (
	"strings"

	"github.com/bazarhat/shopcore/internal/core/domain"
	"github.com/bazarhat/shopcore/internal/core/port"
	"github.com/gin-gonic/gin"
)

const authHeaderKey = "Authorization"
const authType = "Bearer"
const userPayloadKey = "user_payload"

func (h *Handler) authCheck(tokenService port.TokenService) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.Request.Header.Get(authHeaderKey)
		if len(header) == 0 {
			h.handleAbort(ctx, domain.ErrEmptyAuthorizationHeader)
			return
		}

		words := strings.Split(header, " ")
		if len(words) != 2 {
			h.handleAbort(ctx, domain.ErrInvalidAuthorizationHeader)
			return
		}
		if words[0] != authType {
			h.handleAbort(ctx, domain.ErrInvalidAuthorizationType)
			return
		}
		token := words[1]
		payload, err := tokenService.VerifyToken(token)
		if err != nil {
			h.handleAbort(ctx, domain.ErrInvalidToken)
			return
		}

		ctx.Set(userPayloadKey, payload)

		ctx.Next()
	}
}

// adminCheck gates elevated routes. The role comes from the verified token;
// the core never re-derives it.
func (h *Handler) adminCheck() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if !getAuthPayload(ctx).Actor().Elevated() {
			h.handleAbort(ctx, domain.ErrForbidden)
			return
		}
		ctx.Next()
	}
}

func getAuthPayload(ctx *gin.Context) *port.TokenPayload {
	return ctx.MustGet(userPayloadKey).(*port.TokenPayload)
}
