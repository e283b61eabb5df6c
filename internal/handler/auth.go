package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/uowclimb/society-seats/internal/config"
	"github.com/uowclimb/society-seats/internal/middleware"
	"github.com/uowclimb/society-seats/internal/repository"
	"github.com/uowclimb/society-seats/internal/utils"
)

// AuthHandler bundles dependencies for the admin login endpoint.
type AuthHandler struct {
	Cfg   config.Config
	Users UserStore
}

func NewAuthHandler(cfg config.Config, users UserStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users}
}

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login verifies admin credentials and sets the session cookie.  The
// login form renders Message inline, so both rejection paths return
// the same text and never reveal whether the username exists.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return visual(c, http.StatusBadRequest, false, "Invalid request body")
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return visual(c, http.StatusForbidden, false, "Invalid username or password")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return visual(c, http.StatusForbidden, false, "Invalid username or password")
		}
		return visual(c, http.StatusInternalServerError, false, "Failed to query user")
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return visual(c, http.StatusForbidden, false, "Invalid username or password")
	}

	tok, err := utils.NewSessionToken(h.Cfg.JWTSecret, u.Username, h.Cfg.SessionTTLHour)
	if err != nil {
		return visual(c, http.StatusInternalServerError, false, "Failed to issue session")
	}

	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    tok.Token,
		Path:     "/",
		Expires:  tok.Exp,
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})
	return visual(c, http.StatusAccepted, true, "Authentication successful")
}
