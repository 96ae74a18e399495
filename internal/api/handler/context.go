package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talenthub/talenthub-api/internal/api/middleware"
	"github.com/talenthub/talenthub-api/internal/core/domain"
)

// currentUser returns the session user injected by the Auth middleware. A
// missing user means the route was wired without Auth, so the request is
// treated as unauthenticated.
func currentUser(c echo.Context) (*domain.User, error) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "Unauthorized - No Token Provided")
	}
	return user, nil
}

// messageResponse is the plain acknowledgement body.
type messageResponse struct {
	Message string `json:"message"`
}

// bindAndValidate binds the request into req and runs the struct validator.
// Both failures are client errors.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload").SetInternal(err)
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}
