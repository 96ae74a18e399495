package handler

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talenthub/talenthub-api/internal/core/domain"
	"github.com/talenthub/talenthub-api/internal/core/ports"
)

type stubMediaStore struct {
	open func(ctx context.Context, id string) (*ports.Media, error)
}

func (s stubMediaStore) Upload(context.Context, string) (string, error) {
	return "", errNotImplemented
}

func (s stubMediaStore) Open(ctx context.Context, id string) (*ports.Media, error) {
	return s.open(ctx, id)
}

func TestMediaHandler_Get(t *testing.T) {
	h := NewMediaHandler(stubMediaStore{open: func(_ context.Context, id string) (*ports.Media, error) {
		assert.Equal(t, "m1", id)
		return &ports.Media{
			ContentType: "image/png",
			Size:        5,
			Body:        io.NopCloser(strings.NewReader("hello")),
		}, nil
	}})
	c, rec := newContext(t, http.MethodGet, "/api/media/m1", nil, nil, "id", "m1")

	require.NoError(t, h.Get(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hello", rec.Body.String())
	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, "nosniff", rec.Header().Get(echo.HeaderXContentTypeOptions))
	assert.Equal(t, "default-src 'none'", rec.Header().Get(echo.HeaderContentSecurityPolicy))
}

func TestMediaHandler_GetMissing(t *testing.T) {
	h := NewMediaHandler(stubMediaStore{open: func(context.Context, string) (*ports.Media, error) {
		return nil, domain.ErrMediaNotFound
	}})
	c, _ := newContext(t, http.MethodGet, "/api/media/nope", nil, nil, "id", "nope")

	assert.ErrorIs(t, h.Get(c), domain.ErrMediaNotFound)
}
