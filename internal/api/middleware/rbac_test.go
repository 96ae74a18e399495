package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talenthub/talenthub-api/internal/core/domain"
)

func TestRBAC(t *testing.T) {
	tests := []struct {
		name     string
		user     *domain.User
		wantCode int
		wantBody string
		wantNext bool
	}{
		{
			name:     "employer passes",
			user:     &domain.User{ID: "u1", Role: domain.RoleEmployer},
			wantCode: http.StatusOK,
			wantNext: true,
		},
		{
			name:     "freelancer is refused",
			user:     &domain.User{ID: "u2", Role: domain.RoleFreelancer},
			wantCode: http.StatusForbidden,
			wantBody: "Access denied - Employers only",
		},
		{
			name:     "anonymous is unauthorized",
			wantCode: http.StatusUnauthorized,
			wantBody: "Unauthorized - No Token Provided",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodPost, "/api/jobs", nil), rec)
			if tt.user != nil {
				c.Set(UserKey, tt.user)
			}

			reached := false
			h := RBAC(domain.RoleEmployer)(func(c echo.Context) error {
				reached = true
				return c.NoContent(http.StatusOK)
			})
			if err := h(c); err != nil {
				e.HTTPErrorHandler(err, c)
			}

			assert.Equal(t, tt.wantNext, reached)
			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestRBAC_MessageListsEveryRole(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	c.Set(UserKey, &domain.User{ID: "u3", Role: "guest"})

	err := RBAC(domain.RoleEmployer, domain.RoleFreelancer)(func(echo.Context) error { return nil })(c)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusForbidden, he.Code)
	assert.Equal(t, "Access denied - Employers or Freelancers only", he.Message)
}
