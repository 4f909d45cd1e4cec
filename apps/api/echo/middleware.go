package echoapi

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core"
	"github.com/Prajwal-weladi/mentalhealthsupportsystem-96/core/session"
)

// jwtMiddleware checks the bearer token and puts its identity in the request context.
func jwtMiddleware(conf *core.Config) echo.MiddlewareFunc {
	keyFunc := func(*jwt.Token) (interface{}, error) { return []byte(conf.SecretKey), nil }
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithAudience(tokenAudience),
	)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			auth := ctx.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(auth, bearerPrefix) || len(auth) == len(bearerPrefix) {
				return errMissingJWT
			}

			claims := new(Claims)
			token, err := parser.ParseWithClaims(auth[len(bearerPrefix):], claims, keyFunc)
			if err != nil {
				return &echo.HTTPError{Code: http.StatusUnauthorized, Message: errInvalidJWT.Message, Internal: err}
			}
			if !token.Valid {
				return errInvalidJWT
			}

			ctx.Set(contextClaimsKey, claims)
			req := ctx.Request()
			ctx.SetRequest(req.WithContext(session.WithIdentity(req.Context(), claims.Identity())))
			return next(ctx)
		}
	}
}
