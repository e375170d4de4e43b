package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/amrokhaled/future-diplomates-api/internal/models"
	"github.com/danielgtaylor/huma/v2"
	"github.com/golang-jwt/jwt/v5"
)

// AuthInput is embedded by huma request types that carry the session cookie.
type AuthInput struct {
	Cookie string `header:"Cookie" doc:"Session cookie"`
}

// Authorize validates the JWT cookie and returns the user ID.
func (s *Service) Authorize(ctx context.Context, cookieHeader string) (uint, error) {
	tokenString := readCookie(cookieHeader, CookieName)
	if tokenString == "" {
		return 0, huma.Error401Unauthorized("Unauthorized: no token found")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, huma.Error401Unauthorized("Unauthorized: invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, huma.Error401Unauthorized("Unauthorized")
	}
	userIDFloat, ok := claims["user_id"].(float64)
	if !ok {
		return 0, huma.Error401Unauthorized("Unauthorized: invalid token claims")
	}

	return uint(userIDFloat), nil
}

// IsAdmin is the single adjudication capability check, backed by the
// configured allow-list.
func (s *Service) IsAdmin(email string) bool {
	for _, admin := range s.cfg.AdminEmails {
		if strings.EqualFold(admin, email) {
			return true
		}
	}
	return false
}

// RequireAdmin authorizes the cookie and gates on the allow-list.
func (s *Service) RequireAdmin(ctx context.Context, cookieHeader string) (*models.User, error) {
	user, err := s.CurrentUser(ctx, cookieHeader)
	if err != nil {
		return nil, huma.Error401Unauthorized("Unauthorized")
	}
	if !s.IsAdmin(user.Email) {
		return nil, huma.Error403Forbidden("Access denied: admin only")
	}
	return user, nil
}

func readCookie(header, name string) string {
	req := http.Request{Header: http.Header{"Cookie": {header}}}
	cookie, err := req.Cookie(name)
	if err != nil {
		return ""
	}
	return cookie.Value
}
