package api

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/camtrap/internal/pkg/constants"
	"github.com/ougirez/camtrap/internal/pkg/logger"
	"github.com/ougirez/camtrap/internal/pkg/utils"
	"github.com/spf13/viper"
)

// AdminMiddleware пропускает запросы с токеном, подписанным секретом сервиса.
// Токен берётся из cookie secret_token или заголовка Authorization: Bearer.
func (svc *APIService) AdminMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		raw := strings.TrimPrefix(ctx.Request().Header.Get(echo.HeaderAuthorization), "Bearer ")
		if cookie, err := ctx.Cookie(constants.CookieKeySecretToken); err == nil {
			raw = cookie.Value
		}
		if raw == "" {
			return constants.ErrUnauthorized
		}

		token, err := utils.ParseAuthToken(raw)
		if err != nil {
			return err
		}

		if token.Secret != viper.GetString(constants.ViperSecretKey) {
			return constants.ErrUnauthorized
		}

		return next(ctx)
	}
}

// RequestLogger кладёт в контекст запроса логгер с request id.
func RequestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		req := ctx.Request()
		id := ctx.Response().Header().Get(echo.HeaderXRequestID)
		ctx.SetRequest(req.WithContext(logger.WithFields(req.Context(), constants.CtxKeyRequestID, id)))
		return next(ctx)
	}
}
