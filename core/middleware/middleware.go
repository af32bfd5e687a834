package middleware

import (
	"net/http"

	"time2gather/core/constants"
	"time2gather/core/controller"
	"time2gather/core/errors"
	"time2gather/core/logger"
	"time2gather/core/utils"

	"github.com/labstack/echo/v4"
)

type Middleware struct {
	jwtSecret string
}

func NewMiddleware(jwtSecret string) *Middleware {
	return &Middleware{jwtSecret: jwtSecret}
}

// AuthMiddleware requires a valid bearer token and stores its claims under constants.ContextTokenData.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, err := utils.GetTokenFromHeader(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return unauthorized(c, err)
			}

			claims, err := utils.ValidateAndParseToken(token, m.jwtSecret)
			if err != nil {
				logger.Warn("Middleware:AuthMiddleware:ValidateAndParseToken", "path", c.Path(), "error", err)
				return unauthorized(c, err)
			}

			c.Set(constants.ContextTokenData, claims)
			c.Set(constants.ContextRawToken, token)
			return next(c)
		}
	}
}

// OptionalAuthMiddleware attaches claims when a valid token is present and lets anonymous viewers through.
func (m *Middleware) OptionalAuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return next(c)
			}

			token, err := utils.GetTokenFromHeader(header)
			if err != nil {
				return next(c)
			}
			claims, err := utils.ValidateAndParseToken(token, m.jwtSecret)
			if err != nil {
				logger.Debug("Middleware:OptionalAuthMiddleware:IgnoredToken", "error", err)
				return next(c)
			}

			c.Set(constants.ContextTokenData, claims)
			c.Set(constants.ContextRawToken, token)
			return next(c)
		}
	}
}

func unauthorized(c echo.Context, err error) error {
	code := errors.ErrUnauthorized
	msg := "unauthorized"
	if appErr, ok := errors.As(err); ok {
		code = appErr.Code
		msg = appErr.Message
	}
	return c.JSON(http.StatusUnauthorized, controller.NewErrorBody(http.StatusUnauthorized, code, msg))
}

// ClaimsFromContext returns the viewer claims set by the auth middlewares.
func ClaimsFromContext(c echo.Context) (*utils.TokenClaims, bool) {
	claims, ok := c.Get(constants.ContextTokenData).(*utils.TokenClaims)
	return claims, ok && claims != nil
}

func RawTokenFromContext(c echo.Context) string {
	token, _ := c.Get(constants.ContextRawToken).(string)
	return token
}
