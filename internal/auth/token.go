package auth

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lerose/boutique/internal/models"
)

const (
	CookieName = "accessToken"
	sessionTTL = 7 * 24 * time.Hour
)

// Session is the verified identity pulled out of a request's cookie.
// Handlers receive it through the echo context, never through globals.
type Session struct {
	UserID  uint
	IsAdmin bool
}

func SignSession(user *models.User, secret []byte) (string, time.Time, error) {
	exp := time.Now().Add(sessionTTL)
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"admin": user.IsAdmin,
		"exp":   exp.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

func ParseSession(tokenString string, secret []byte) (*Session, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("invalid token claims")
	}
	subRaw, ok := claims["sub"].(float64)
	if !ok {
		return nil, fmt.Errorf("invalid subject claim")
	}
	admin, _ := claims["admin"].(bool)

	return &Session{UserID: uint(subRaw), IsAdmin: admin}, nil
}

func CreateCookie(name string, value string, path string, exp_time time.Time) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		Expires:  exp_time,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	}
}
