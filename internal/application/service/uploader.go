package service

import (
	"context"
	"io"
)

type Uploader interface {
	Upload(ctx context.Context, file io.Reader, folder string, publicID string) (string, error)
	Fetch(ctx context.Context, url string) (io.ReadCloser, error)
	Delete(ctx context.Context, publicID string) error
}
