package service

import (
	"context"
	"io"
)

// Uploader stores member photos on an external media service.
type Uploader interface {
	Upload(ctx context.Context, file io.Reader, folder string, publicID string) (string, error)
	Delete(ctx context.Context, publicID string) error
}
