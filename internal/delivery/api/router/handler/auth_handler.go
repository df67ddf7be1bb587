// Package handler contains the HTTP handlers of the API delivery.
package handler

import (
	"net/http"
	"time"

	"nutrilens/config"
	"nutrilens/internal/delivery/api/middleware"
	"nutrilens/internal/delivery/api/response"
	"nutrilens/internal/domain/entity"
	domainerrors "nutrilens/internal/domain/errors"
	"nutrilens/internal/domain/service"
	"nutrilens/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// RefreshTokenCookie carries the refresh token for browser clients.
const RefreshTokenCookie = "refreshToken"

type registerRequest struct {
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	FullName string `json:"fullName" form:"fullName"`
	Password string `json:"password" form:"password"`
	Role     string `json:"role" form:"role"`
}

type loginRequest struct {
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" form:"refreshToken"`
}

// SessionView is returned by login and token refresh.
type SessionView struct {
	User         *PrincipalView `json:"user"`
	AccessToken  string         `json:"accessToken"`
	RefreshToken string         `json:"refreshToken"`
}

// AuthHandler serves registration and the token session endpoints.
// Cookie lifetimes follow the token lifetimes.
type AuthHandler struct {
	uc     usecase.AuthUsecase
	tokens service.TokenService
	cfg    *config.Config
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, tokens service.TokenService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		uc:     uc,
		tokens: tokens,
		cfg:    cfg,
	}
}

// Register handles principal registration.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrValidation.WithMessage("Invalid registration input")
	}

	principal, err := h.uc.Register(c.Request().Context(), &usecase.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		FullName: req.FullName,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, NewPrincipalView(principal), "User registered successfully")
}

// Login checks credentials and sets both token cookies.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrValidation.WithMessage("Invalid login input")
	}

	output, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	h.setSessionCookies(c, output)

	return response.Success(c, http.StatusOK, newSessionView(output), "User logged in successfully")
}

// Logout invalidates the stored refresh token and clears both cookies.
func (h *AuthHandler) Logout(c echo.Context, principal *entity.Principal) error {
	if err := h.uc.Logout(c.Request().Context(), principal.ID); err != nil {
		return errors.WithStack(err)
	}

	c.SetCookie(h.cookie(middleware.AccessTokenCookie, "", -1))
	c.SetCookie(h.cookie(RefreshTokenCookie, "", -1))

	return response.Success(c, http.StatusOK, map[string]any{}, "User logged out")
}

// RefreshToken rotates the pair. The token is read from the refreshToken cookie, then from the body.
func (h *AuthHandler) RefreshToken(c echo.Context) error {
	token := ""
	if cookie, err := c.Cookie(RefreshTokenCookie); err == nil {
		token = cookie.Value
	}
	if token == "" {
		var req refreshRequest
		if err := c.Bind(&req); err != nil {
			return domainerrors.ErrValidation.WithMessage("Invalid refresh token input")
		}
		token = req.RefreshToken
	}

	output, err := h.uc.RefreshTokens(c.Request().Context(), token)
	if err != nil {
		return errors.WithStack(err)
	}

	h.setSessionCookies(c, output)

	return response.Success(c, http.StatusOK, newSessionView(output), "Access token refreshed")
}

func (h *AuthHandler) setSessionCookies(c echo.Context, output *usecase.AuthOutput) {
	c.SetCookie(h.cookie(middleware.AccessTokenCookie, output.Tokens.AccessToken, h.tokens.AccessTokenDuration()))
	c.SetCookie(h.cookie(RefreshTokenCookie, output.Tokens.RefreshToken, h.tokens.RefreshTokenDuration()))
}

// cookie builds an HttpOnly token cookie. A negative maxAge deletes it.
func (h *AuthHandler) cookie(name, value string, maxAge time.Duration) *http.Cookie {
	cookie := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   false,
		SameSite: http.SameSiteLaxMode,
	}
	if h.cfg.Cookie != nil {
		cookie.Domain = h.cfg.Cookie.Domain
	}
	if h.cfg.IsProduction() {
		cookie.Secure = true
		cookie.SameSite = http.SameSiteNoneMode
	}

	if maxAge < 0 {
		cookie.MaxAge = -1
		cookie.Expires = time.Unix(0, 0)
	} else {
		cookie.MaxAge = int(maxAge.Seconds())
	}

	return cookie
}

func newSessionView(output *usecase.AuthOutput) *SessionView {
	return &SessionView{
		User:         NewPrincipalView(output.Principal),
		AccessToken:  output.Tokens.AccessToken,
		RefreshToken: output.Tokens.RefreshToken,
	}
}
