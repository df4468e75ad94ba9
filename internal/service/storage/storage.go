package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound - документа нет в архиве.
var ErrNotFound = errors.New("document not found")

// DocumentArchive хранит собранные документы для повторной выдачи.
type DocumentArchive interface {
	Upload(ctx context.Context, documentID string, data io.Reader, size int64) error
	Download(ctx context.Context, documentID string) (io.ReadCloser, int64, error)
	Ping(ctx context.Context) error
}
