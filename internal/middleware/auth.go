package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "net/http" // HTTP status codes for responses
    "strings"  // string utilities for prefix checking and trimming

    "github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

    "github.com/iliyamo/edu-content-platform/internal/entitlement"
)

// TokenAuth returns an Echo middleware that validates an opaque Bearer
// token against the token store and injects the resolved user into the
// request context. Tokens are rejected when missing, unknown, revoked
// or past their 30-day absolute lifetime; all of those collapse into a
// single 401 so callers cannot probe which case they hit. This
// middleware should wrap protected routes so handlers can access the
// authenticated user via `c.Get("user")`, `c.Get("user_id")` and
// `c.Get("role")`.
func TokenAuth(gw *entitlement.Gateway) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            raw := BearerToken(c)
            if raw == "" {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
            }

            user, err := gw.ResolveToken(c.Request().Context(), raw)
            if err != nil {
                if err == entitlement.ErrUnauthenticated {
                    return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
                }
                return c.JSON(http.StatusInternalServerError, echo.Map{"error": "auth lookup failed"})
            }

            // Store the resolved user for handlers and downstream
            // middleware. The raw token is kept as well so logout can
            // revoke exactly the presented session.
            c.Set("user", user)
            c.Set("user_id", user.ID)
            c.Set("role", user.Role)
            c.Set("token", raw)
            return next(c)
        }
    }
}

// BearerToken extracts the raw token from the Authorization header. An
// absent or malformed header yields the empty string; the caller
// decides whether that is fatal.
func BearerToken(c echo.Context) string {
    auth := c.Request().Header.Get("Authorization")
    if !strings.HasPrefix(auth, "Bearer ") {
        return ""
    }
    return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
}
