package middleware

import (
	"time2gather/core/constants"

	"github.com/labstack/echo/v4"
	"golang.org/x/text/language"
)

var localeMatcher = language.NewMatcher([]language.Tag{
	language.Korean,
	language.English,
})

// MatchLocale maps an Accept-Language header (or a ?lang= value) onto ko or en.
func MatchLocale(accept string) string {
	if accept == "" {
		return constants.DefaultLocale
	}
	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(tags) == 0 {
		return constants.DefaultLocale
	}
	_, index, confidence := localeMatcher.Match(tags...)
	if confidence == language.No {
		return constants.DefaultLocale
	}
	if index == 1 {
		return constants.LocaleEN
	}
	return constants.LocaleKO
}

func (m *Middleware) LocaleMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			source := c.QueryParam("lang")
			if source == "" {
				source = c.Request().Header.Get("Accept-Language")
			}
			c.Set(constants.ContextLocale, MatchLocale(source))
			return next(c)
		}
	}
}

func LocaleFromContext(c echo.Context) string {
	if locale, ok := c.Get(constants.ContextLocale).(string); ok && locale != "" {
		return locale
	}
	return constants.DefaultLocale
}
