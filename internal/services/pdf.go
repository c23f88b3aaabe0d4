package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/starwalkn/gotenberg-go-client/v8"
	"github.com/starwalkn/gotenberg-go-client/v8/document"
)

// PDFService converts generated .docx reports to PDF through a Gotenberg
// instance. Conversion is retried a bounded number of times since LibreOffice
// workers occasionally reject a request while busy.
type PDFService struct {
	client  *gotenberg.Client
	timeout time.Duration
	log     zerolog.Logger
}

func NewPDFService(gotenbergURL, timeoutStr string, log zerolog.Logger) (*PDFService, error) {
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		timeout = 30 * time.Second
		log.Warn().Str("value", timeoutStr).Msg("unparseable Gotenberg timeout, using 30s")
	}

	client, err := gotenberg.NewClient(gotenbergURL, &http.Client{Timeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gotenberg client: %w", err)
	}

	return &PDFService{
		client:  client,
		timeout: timeout,
		log:     log.With().Str("component", "pdf_service").Logger(),
	}, nil
}

// ConvertReport converts docx bytes to PDF bytes, retrying up to three times.
func (s *PDFService) ConvertReport(ctx context.Context, docx []byte, filename string) ([]byte, error) {
	const maxRetries = 3
	var lastErr error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		convertCtx, cancel := context.WithTimeout(ctx, s.timeout)

		doc, err := document.FromReader(filename, bytes.NewReader(docx))
		if err != nil {
			cancel()
			return nil, fmt.Errorf("failed to create document from reader: %w", err)
		}

		req := gotenberg.NewLibreOfficeRequest(doc)
		resp, err := s.client.Send(convertCtx, req)
		if err == nil {
			pdf, readErr := io.ReadAll(resp.Body)
			resp.Body.Close()
			cancel()
			if readErr != nil {
				return nil, fmt.Errorf("failed to read converted PDF: %w", readErr)
			}
			return pdf, nil
		}
		cancel()

		lastErr = err
		s.log.Warn().Int("attempt", attempt).Err(err).Msg("PDF conversion attempt failed")
		if attempt < maxRetries {
			time.Sleep(time.Duration(attempt) * time.Second)
		}
	}

	return nil, fmt.Errorf("failed to convert document after %d attempts: %w", maxRetries, lastErr)
}
