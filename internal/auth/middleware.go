package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

const sessionKey = "session"

func sessionFromCookie(c echo.Context, secret []byte) (*Session, error) {
	cookie, err := c.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "must sign in")
	}
	sess, err := ParseSession(cookie.Value, secret)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "must sign in")
	}
	return sess, nil
}

// RequireUser rejects unauthenticated requests with 401.
func RequireUser(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, err := sessionFromCookie(c, secret)
			if err != nil {
				return err
			}
			c.Set(sessionKey, sess)
			return next(c)
		}
	}
}

// RequireAdmin rejects unauthenticated requests with 401 and
// authenticated non-admins with 403.
func RequireAdmin(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, err := sessionFromCookie(c, secret)
			if err != nil {
				return err
			}
			if !sess.IsAdmin {
				return echo.NewHTTPError(http.StatusForbidden, "admin privileges required")
			}
			c.Set(sessionKey, sess)
			return next(c)
		}
	}
}

// OptionalUser attaches a session when the cookie is present and valid,
// and lets the request through either way.
func OptionalUser(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if sess, err := sessionFromCookie(c, secret); err == nil {
				c.Set(sessionKey, sess)
			}
			return next(c)
		}
	}
}

// CurrentSession returns the session set by the middleware, or nil.
func CurrentSession(c echo.Context) *Session {
	if sess, ok := c.Get(sessionKey).(*Session); ok {
		return sess
	}
	return nil
}
