package mocks

import (
	"io"

	"github.com/stretchr/testify/mock"

	"portfolio/internal/domain"
)

type Extractor struct {
	mock.Mock
}

func (m *Extractor) Extract(r io.Reader) (*domain.CameraSettings, error) {
	args := m.Called(r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CameraSettings), args.Error(1)
}
