package middleware

import (
	"context"
	"net/http"
	"strconv"

	"hotelier/infras/jwt"
	"hotelier/infras/otel"
	"hotelier/shared/constant"
	"hotelier/shared/failure"
	"hotelier/transport/http/response"

	"github.com/rs/zerolog/log"
)

const (
	msgUnauthorized = "Unauthorized"
	msgAdminOnly    = "Forbidden: Admin access required"
)

// Principal is the identity resolved from a valid access token. It is built
// once per request and never mutated; a role change requires a new token.
type Principal struct {
	UserID int64
	Email  string
	Role   string
}

type Auth interface {
	Authenticate(http.Handler) http.Handler
	RequireAdmin(http.Handler) http.Handler
}

type authImpl struct {
	jwtService jwt.JWT
	otel       otel.Otel
}

func NewAuthMiddleware(jwtService jwt.JWT, ot otel.Otel) Auth {
	return &authImpl{
		jwtService: jwtService,
		otel:       ot,
	}
}

// Authenticate validates the bearer token and stores the principal in the
// request context. Every rejection uses the same generic body so the client
// cannot distinguish a missing header from an expired token.
func (m *authImpl) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "middleware.Authenticate")
		defer scope.End()

		tokenString, err := jwt.ExtractTokenFromHeader(request.Header.Get(constant.RequestHeaderAuthorization))
		if err != nil {
			scope.TraceError(err)
			response.WithError(writer, failure.Unauthorized(msgUnauthorized))

			return
		}

		claims, err := m.jwtService.ValidateToken(tokenString, jwt.AccessToken)
		if err != nil {
			scope.TraceError(err)
			response.WithError(writer, failure.Unauthorized(msgUnauthorized))

			return
		}

		userID, err := strconv.ParseInt(claims.UserID, 10, 64)
		if err != nil || claims.Email == constant.Empty {
			log.Error().Str("userID", claims.UserID).Msg("token carries malformed claims")
			scope.TraceError(err)
			response.WithError(writer, failure.Unauthorized(msgUnauthorized))

			return
		}

		principal := Principal{
			UserID: userID,
			Email:  claims.Email,
			Role:   claims.Role,
		}

		ctx = context.WithValue(ctx, constant.ContextKeyPrincipal, principal)

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// RequireAdmin gates mutations. Run it after Authenticate.
func (m *authImpl) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "middleware.RequireAdmin")
		defer scope.End()

		principal, ok := PrincipalFromContext(ctx)
		if !ok {
			response.WithError(writer, failure.Unauthorized(msgUnauthorized))

			return
		}

		if principal.Role != constant.RoleAdmin {
			err := failure.Forbidden(msgAdminOnly)
			scope.TraceError(err)
			response.WithError(writer, err)

			return
		}

		next.ServeHTTP(writer, request)
	})
}

// PrincipalFromContext returns the principal stored by Authenticate.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	principal, ok := ctx.Value(constant.ContextKeyPrincipal).(Principal)

	return principal, ok
}
