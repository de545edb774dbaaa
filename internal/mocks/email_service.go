package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"portfolio/internal/service/email"
)

type EmailService struct {
	mock.Mock
}

func (m *EmailService) SendIngestReport(ctx context.Context, report email.IngestReport) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}
