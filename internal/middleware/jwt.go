package middleware // middleware provides shared request processing for handlers

import (
	"net/http" // HTTP status codes for responses
	"strings"  // string utilities for prefix checking and trimming

	"github.com/golang-jwt/jwt/v5" // JWT library for parsing and validating tokens
	"github.com/labstack/echo/v4"  // Echo framework used for defining middleware and handlers
)

// Context keys populated by JWTAuth for downstream middleware.
const (
	ctxExternalID = "external_id"
	ctxClaimName  = "identity_name"
	ctxClaimEmail = "identity_email"
)

// JWTAuth returns an Echo middleware that validates a Bearer token issued
// by the external identity provider and injects the token's subject (the
// stable external identity id) into the request context.  The provided
// secret must match the one the provider signs tokens with.  This
// middleware performs no user lookup; ResolveUser runs afterwards and
// turns the external id into a local user record.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// A valid header starts with "Bearer " followed by the JWT.
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			// Parse the token, accepting only the HMAC family of signing
			// methods so an attacker cannot downgrade to "none" or swap in
			// an asymmetric key.
			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "invalid token"})
			}

			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "invalid claims"})
			}

			// The subject claim is the external identity id used as the
			// join key to the local users table.
			sub, _ := claims["sub"].(string)
			if sub == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"success": false, "message": "token has no subject"})
			}
			c.Set(ctxExternalID, sub)
			// Optional profile claims; captured on first sight of a user.
			if v, ok := claims["name"].(string); ok {
				c.Set(ctxClaimName, v)
			}
			if v, ok := claims["email"].(string); ok {
				c.Set(ctxClaimEmail, v)
			}
			return next(c)
		}
	}
}
