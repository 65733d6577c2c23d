package handler

import (
    "context"  // provides context with cancellation for DB calls
    "net/http" // HTTP status codes and primitives
    "strings"  // string manipulation utilities
    "time"     // timeouts for DB calls

    "github.com/labstack/echo/v4" // Echo framework for HTTP routing

    "github.com/iliyamo/edu-content-platform/internal/config"      // app configuration
    "github.com/iliyamo/edu-content-platform/internal/entitlement" // library seeding on registration
    "github.com/iliyamo/edu-content-platform/internal/middleware"  // bearer extraction for logout
    "github.com/iliyamo/edu-content-platform/internal/model"       // domain records
    "github.com/iliyamo/edu-content-platform/internal/repository"  // DB repositories
    "github.com/iliyamo/edu-content-platform/internal/utils"       // helper functions (hashing, token issuing)
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg    config.Config
	Users  *repository.UserRepo
	Tokens *repository.TokenRepo
	Engine *entitlement.Engine
}

func NewAuthHandler(cfg config.Config, u *repository.UserRepo, t *repository.TokenRepo, e *entitlement.Engine) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Tokens: t, Engine: e}
}

// ----- DTOs -----

type registerReq struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}
type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
type updateProfileReq struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	Password *string `json:"password"`
}
type authResp struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
	User    userView  `json:"user"`
}

// Register: create a student account, seed its library with the free
// catalog, and return a session token immediately.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name/email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	// Registration always yields a student; the only admin path is the
	// bootstrap invariant at process start.
	uid, err := h.Users.Create(ctx, req.Name, req.Email, req.Password, req.Phone, model.RoleStudent, h.Cfg.BcryptCost)
	if err != nil {
		if err == repository.ErrEmailExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	// Seed the new library so the first "my content" view is populated
	// without a catalog scan.
	if err := h.Engine.UserCreated(ctx, uid); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "seed library failed"})
	}

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}

	tok, err := h.issueToken(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}

	return c.JSON(http.StatusCreated, authResp{Token: tok.Raw, Expires: tok.Exp, User: publicUser(u)})
}

// Login: verify credentials and return a fresh token. Unknown email and
// wrong password answer identically so accounts cannot be enumerated.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == repository.ErrUserNotFound {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	tok, err := h.issueToken(ctx, u.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}

	return c.JSON(http.StatusOK, authResp{Token: tok.Raw, Expires: tok.Exp, User: publicUser(u)})
}

// Logout: revoke the presented token. Logout of an already-dead token
// still answers 204; there is nothing useful to reveal.
func (h *AuthHandler) Logout(c echo.Context) error {
	raw := middleware.BearerToken(c)
	if raw == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing bearer token"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Tokens.RevokeByHash(ctx, utils.HashTokenRaw(raw)); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "logout failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// Me: return the authenticated user's public record (protected).
func (h *AuthHandler) Me(c echo.Context) error {
	u, err := currentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	return c.JSON(http.StatusOK, publicUser(u))
}

// UpdateProfile: apply name/phone/password changes to the current user
// (protected). Absent fields stay untouched.
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	u, err := currentUser(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req updateProfileReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	var passwordHash *string
	if req.Password != nil {
		if *req.Password == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "password must not be empty"})
		}
		hash, err := utils.HashPassword(*req.Password, h.Cfg.BcryptCost)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "hash password failed"})
		}
		passwordHash = &hash
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.UpdateProfile(ctx, u.ID, req.Name, req.Phone, passwordHash); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	updated, err := h.Users.GetByID(ctx, u.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}
	return c.JSON(http.StatusOK, publicUser(updated))
}

// issueToken creates, persists and returns a fresh bearer token. Only
// the SHA-256 hash touches the database.
func (h *AuthHandler) issueToken(ctx context.Context, userID uint64) (utils.BearerToken, error) {
	tok, err := utils.NewBearerToken(model.TokenLifetime)
	if err != nil {
		return utils.BearerToken{}, err
	}
	if err := h.Tokens.Issue(ctx, userID, utils.HashTokenRaw(tok.Raw), tok.Exp); err != nil {
		return utils.BearerToken{}, err
	}
	return tok, nil
}
