package httpserver

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/lerose/boutique/internal/auth"
	"github.com/lerose/boutique/internal/logging"
	"github.com/lerose/boutique/internal/models"
	"github.com/lerose/boutique/internal/service"
	"github.com/lerose/boutique/internal/transport"
)

type AuthHTTP struct {
	Svc       *service.AuthService
	JWTSecret []byte
}

func (h *AuthHTTP) Register(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.register")

	var req transport.RegisterRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("register_rejected", "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.Register(ctx, service.RegisterRequest{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Address:  req.Address,
	})
	if err != nil {
		return serviceError(c, l, "register", err)
	}

	if err := h.setSessionCookie(c, user); err != nil {
		l.Error("register_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	l.Info("register_success", "userID", user.ID)
	return ok(c, echo.Map{
		"message": "registration successful",
		"user":    transport.NewUserPayload(user),
	})
}

func (h *AuthHTTP) Login(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "auth.login")

	var req transport.LoginRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("login_rejected", "reason", "invalid body", "error", err)
		return echo.NewHTTPError(http.StatusBadRequest, "invalid body")
	}

	user, err := h.Svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		return serviceError(c, l, "login", err)
	}

	if err := h.setSessionCookie(c, user); err != nil {
		l.Error("login_error", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal error")
	}

	l.Info("login_success", "userID", user.ID)
	return ok(c, echo.Map{
		"message": "signed in",
		"user":    transport.NewUserPayload(user),
	})
}

func (h *AuthHTTP) Logout(c echo.Context) error {
	expired := time.Now().Add(-1 * time.Hour)
	c.SetCookie(auth.CreateCookie(auth.CookieName, "", "/", expired))
	return ok(c, echo.Map{"message": "signed out"})
}

func (h *AuthHTTP) setSessionCookie(c echo.Context, user *models.User) error {
	token, exp, err := auth.SignSession(user, h.JWTSecret)
	if err != nil {
		return err
	}
	c.SetCookie(auth.CreateCookie(auth.CookieName, token, "/", exp))
	return nil
}
