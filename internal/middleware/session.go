package middleware

import (
	"github.com/labstack/echo/v4"

	"carlog/internal/auth"
	apperrors "carlog/internal/errors"
)

const principalContextKey = "principal"

// SessionPrincipal resolves the session cookie into a Principal and stores
// it in the request context. Requests without a valid session pass through
// with no principal set; enforcement happens in the services. A session
// store failure is surfaced as 500, so an outage does not masquerade as a
// logout.
func SessionPrincipal(store auth.SessionStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(auth.CookieName)
			if err != nil || cookie.Value == "" {
				return next(c)
			}

			principal, err := store.Get(c.Request().Context(), cookie.Value)
			if err != nil {
				httpErr := apperrors.MapErrorToHTTP(err)
				return c.JSON(httpErr.StatusCode, httpErr.ToErrorResponse())
			}
			if principal != nil {
				c.Set(principalContextKey, principal)
			}
			return next(c)
		}
	}
}

// PrincipalFrom returns the principal resolved for this request, or nil.
func PrincipalFrom(c echo.Context) *auth.Principal {
	principal, _ := c.Get(principalContextKey).(*auth.Principal)
	return principal
}
