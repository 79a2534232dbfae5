package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/auth"
	"github.com/iliyamo/hotel-reservation/internal/config"
	"github.com/iliyamo/hotel-reservation/internal/utils"
)

// AuthHandler bundles dependencies for auth endpoints.
type AuthHandler struct {
	Cfg      config.Config
	Accounts *auth.Registry
}

func NewAuthHandler(cfg config.Config, accounts *auth.Registry) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Accounts: accounts}
}

// ----- DTOs -----

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type tokenPart struct {
	Token   string    `json:"token"`
	Expires time.Time `json:"expires"`
}
type accountPart struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	GuestRef string `json:"guest_ref"`
}
type loginResp struct {
	Account accountPart `json:"account"`
	Access  tokenPart   `json:"access"`
}

// Login verifies credentials against the account registry and issues an
// access token carrying the role and guest reference claims.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.ToLower(strings.TrimSpace(req.Username))
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username/password required"})
	}

	acc, ok := h.Accounts.Verify(req.Username, req.Password)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, acc.Username, acc.Role, acc.GuestRef, h.Cfg.AccessTTLMin)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue access failed"})
	}

	return c.JSON(http.StatusOK, loginResp{
		Account: accountPart{Username: acc.Username, Role: acc.Role, GuestRef: acc.GuestRef},
		Access:  tokenPart{Token: access.Token, Expires: access.Exp},
	})
}

// Me echoes the authenticated identity back. Useful for clients to confirm
// their role and guest reference after login.
func (h *AuthHandler) Me(c echo.Context) error {
	username, _ := c.Get("username").(string)
	role, _ := c.Get("role").(string)
	return c.JSON(http.StatusOK, accountPart{
		Username: username,
		Role:     role,
		GuestRef: guestRefFrom(c),
	})
}
