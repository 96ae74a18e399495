package ports

import (
	"context"
	"io"
)

// ImageUploader stores an image payload and returns its reference URL.
type ImageUploader interface {
	Upload(ctx context.Context, payload string) (string, error)
}

// Media is an open stored file.
type Media struct {
	ContentType string
	Size        int64
	Body        io.ReadCloser
}

// MediaStore stores and serves uploaded images.
type MediaStore interface {
	ImageUploader
	Open(ctx context.Context, id string) (*Media, error)
}
