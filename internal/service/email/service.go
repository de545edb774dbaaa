package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"

	"github.com/resend/resend-go/v3"

	"portfolio/internal/config"
	"portfolio/internal/domain"
)

type Service interface {
	// SendIngestReport mails the admin a summary of a batch upload.
	SendIngestReport(ctx context.Context, report IngestReport) error
}

type IngestReport struct {
	Created  []domain.Photo
	Failures []domain.BatchFailure
}

var ingestReportTemplate = template.Must(template.New("ingest_report").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: sans-serif">
  <h2>Gallery upload report</h2>
  <p>{{len .Created}} photo(s) created, {{len .Failures}} failed.</p>
  {{if .Failures}}
  <h3>Failed</h3>
  <ul>
    {{range .Failures}}<li><strong>{{.Filename}}</strong>: {{.Message}}</li>{{end}}
  </ul>
  {{end}}
  {{if .Created}}
  <h3>Created</h3>
  <ul>
    {{range .Created}}<li><a href="{{.BlobURL}}">{{.Filename}}</a></li>{{end}}
  </ul>
  {{end}}
</body>
</html>`))

type service struct {
	client *resend.Client
	config *config.Config
	logger *slog.Logger
}

func NewService(cfg *config.Config) Service {
	var client *resend.Client
	if cfg.ResendAPIKey != "" {
		client = resend.NewClient(cfg.ResendAPIKey)
	}
	return &service{
		client: client,
		config: cfg,
		logger: slog.Default().With(slog.String("component", "email_service")),
	}
}

func (s *service) SendIngestReport(ctx context.Context, report IngestReport) error {
	if s.client == nil || s.config.AdminEmail == "" {
		s.logger.Debug("email disabled, skipping ingest report")
		return nil
	}

	var body bytes.Buffer
	if err := ingestReportTemplate.Execute(&body, report); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Portfolio <%s>", s.config.FromEmail),
		To:      []string{s.config.AdminEmail},
		Html:    body.String(),
		Subject: fmt.Sprintf("Gallery upload: %d created, %d failed", len(report.Created), len(report.Failures)),
	}

	_, err := s.client.Emails.Send(params)
	return err
}
