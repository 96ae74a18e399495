package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/talenthub/talenthub-api/internal/api/metrics"
	"github.com/talenthub/talenthub-api/internal/core/domain"
	"github.com/talenthub/talenthub-api/internal/core/ports"
)

// SessionCookie describes the cookie carrying the session token.
type SessionCookie struct {
	Name   string
	Secure bool
}

func (sc SessionCookie) set(c echo.Context, token string, expires time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     sc.Name,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		MaxAge:   int(time.Until(expires).Seconds()),
		HttpOnly: true,
		Secure:   sc.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

func (sc SessionCookie) clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     sc.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   sc.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

type AuthHandler struct {
	authService ports.AuthService
	cookie      SessionCookie
}

func NewAuthHandler(authService ports.AuthService, cookie SessionCookie) *AuthHandler {
	return &AuthHandler{authService: authService, cookie: cookie}
}

type signupRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Signup creates a new account and starts a session.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      signupRequest  true  "Account details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  messageResponse
// @Failure      500   {object}  messageResponse
// @Router       /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload").SetInternal(err)
	}

	sess, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "failure").Inc()
		return err
	}
	metrics.AuthAttemptsTotal.WithLabelValues("register", "success").Inc()

	h.cookie.set(c, sess.Token, sess.ExpiresAt)
	return c.JSON(http.StatusCreated, sess.User)
}

// Login authenticates with email and password and starts a session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  messageResponse
// @Failure      429   {string}  string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload").SetInternal(err)
	}

	sess, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) || errors.Is(err, domain.ErrMissingFields) {
			metrics.AuthAttemptsTotal.WithLabelValues("login", "failure").Inc()
		}
		return err
	}
	metrics.AuthAttemptsTotal.WithLabelValues("login", "success").Inc()

	h.cookie.set(c, sess.Token, sess.ExpiresAt)
	return c.JSON(http.StatusOK, sess.User)
}

// Logout clears the session cookie and revokes the token when present.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {object}  messageResponse
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(h.cookie.Name); err == nil {
		h.authService.Logout(c.Request().Context(), cookie.Value)
	}
	h.cookie.clear(c)
	return c.JSON(http.StatusOK, messageResponse{Message: "Logged out successfully"})
}

// Check returns the user bound to the current session.
//
// @Summary      Current session user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  domain.User
// @Failure      401  {object}  messageResponse
// @Router       /auth/check [get]
func (h *AuthHandler) Check(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}
