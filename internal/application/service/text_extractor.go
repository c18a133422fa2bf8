package service

import (
	"context"
	"io"
)

// TextExtractor pulls plain text out of an uploaded document.
type TextExtractor interface {
	ExtractText(ctx context.Context, r io.Reader, mime string) (string, error)
}
