// Package middleware provides gin middleware for authentication and logging.
package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/avelhart/duobank/internal/domain"
	"github.com/avelhart/duobank/pkg/tokenpkg"
	"github.com/avelhart/duobank/pkg/web"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// AuthHeaderKey is the header carrying the access token.
	AuthHeaderKey = "authorization"
	// AuthTypeBearer is the only supported authorization scheme.
	AuthTypeBearer = "bearer"
	// AuthUserKey is the gin context key holding the resolved caller identity.
	AuthUserKey = "auth_user"
)

var (
	// ErrAuthHeaderNotFound is returned when the request carries no authorization header.
	ErrAuthHeaderNotFound = errors.New("authorization header is not provided")
	// ErrBadAuthHeaderFormat is returned when the authorization header has no token part.
	ErrBadAuthHeaderFormat = errors.New("invalid authorization header format")
	// ErrUnsupportedAuthType is returned for schemes other than bearer.
	ErrUnsupportedAuthType = errors.New("unsupported authorization type")
)

// AddAuthorization creates an access token for the user and sets it on the request.
func AddAuthorization(
	r *http.Request,
	tokenMaker tokenpkg.Maker,
	authType string,
	userID uuid.UUID,
	duration time.Duration,
) error {
	accessToken, _, err := tokenMaker.CreateToken(userID, duration)
	if err != nil {
		return fmt.Errorf("tokenMaker.CreateToken(%v, %v) returned error: %w", userID, duration, err)
	}

	r.Header.Set(AuthHeaderKey, fmt.Sprintf("%s %s", authType, accessToken))

	return nil
}

// UserResolver loads the caller identity with its linked account ids.
//
//go:generate mockgen -source auth.go -destination auth_mock.go -package middleware
type UserResolver interface {
	GetAuthUser(ctx context.Context, id uuid.UUID) (domain.AuthUser, error)
}

// AuthMiddleware verifies the bearer token and resolves the authenticated
// user, including its current and savings account ids, into the context.
func AuthMiddleware(tokenMaker tokenpkg.Maker, users UserResolver) gin.HandlerFunc {
	return func(gctx *gin.Context) {
		authHeader := gctx.GetHeader(AuthHeaderKey)
		if len(authHeader) == 0 {
			gctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(ErrAuthHeaderNotFound))

			return
		}

		fields := strings.Fields(authHeader)
		if len(fields) < 2 {
			gctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(ErrBadAuthHeaderFormat))

			return
		}

		authType := strings.ToLower(fields[0])
		if authType != AuthTypeBearer {
			gctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(ErrUnsupportedAuthType))

			return
		}

		accessToken := fields[1]

		payload, err := tokenMaker.VerifyToken(accessToken)
		if err != nil {
			gctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(err))
			return
		}

		authUser, err := users.GetAuthUser(gctx.Request.Context(), payload.UserID)
		if err != nil {
			gctx.AbortWithStatusJSON(http.StatusUnauthorized, web.Error(err))
			return
		}

		gctx.Set(AuthUserKey, authUser)
		gctx.Next()
	}
}
