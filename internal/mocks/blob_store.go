package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

type BlobStore struct {
	mock.Mock
}

func (m *BlobStore) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	args := m.Called(ctx, key, r, size, contentType)
	return args.String(0), args.Error(1)
}

func (m *BlobStore) Open(ctx context.Context, blobURL string) (io.ReadCloser, error) {
	args := m.Called(ctx, blobURL)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(io.ReadCloser), args.Error(1)
}

func (m *BlobStore) Delete(ctx context.Context, blobURL string) error {
	args := m.Called(ctx, blobURL)
	return args.Error(0)
}

func (m *BlobStore) Owns(blobURL string) bool {
	args := m.Called(blobURL)
	return args.Bool(0)
}
