package services

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"path"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"VP-RPT/internal/apperr"
	"VP-RPT/internal/docstore"
	"VP-RPT/internal/models"
	"VP-RPT/internal/render"
	"VP-RPT/internal/resolve"
	"VP-RPT/internal/storage"
	"VP-RPT/internal/templates"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// ReportService drives the full generation flow: resolve the form payload,
// render the template, persist the report blob, and snapshot the run into
// history.
type ReportService struct {
	store        storage.ObjectStore
	templates    *templates.Repository
	renderer     *render.Renderer
	history      *docstore.HistoryStore
	imageOptions *docstore.ImageOptionStore
	schema       resolve.Schema
	log          zerolog.Logger
}

func NewReportService(
	store storage.ObjectStore,
	repo *templates.Repository,
	renderer *render.Renderer,
	history *docstore.HistoryStore,
	imageOptions *docstore.ImageOptionStore,
	schema resolve.Schema,
	log zerolog.Logger,
) *ReportService {
	return &ReportService{
		store:        store,
		templates:    repo,
		renderer:     renderer,
		history:      history,
		imageOptions: imageOptions,
		schema:       schema,
		log:          log.With().Str("component", "report_service").Logger(),
	}
}

// GenerateResult is returned to the UI: the stored report's location plus the
// rendered bytes as a base64 data URI for immediate download.
type GenerateResult struct {
	ReportPath    string `json:"reportPath"`
	ReportURL     string `json:"reportUrl"`
	DataURI       string `json:"dataUri"`
	ReplacedCount int    `json:"replacedCount"`
}

func (s *ReportService) Generate(ctx context.Context, draft models.Draft, templateName string) (*GenerateResult, error) {
	imageOpts, err := s.imageOptions.List(ctx)
	if err != nil {
		return nil, err
	}

	resolved := resolve.Resolve(s.schema, draft.FormData, imageOpts)

	templateBytes, err := s.templates.Fetch(ctx, templateName)
	if err != nil {
		return nil, fmt.Errorf("failed to load template %s: %w", templateName, err)
	}

	input := render.Input{
		Values:    resolved.Values,
		Rows:      resolved.Rows,
		RepeatKey: resolved.RepeatKey,
		Images:    make(map[string]render.Image, len(resolved.Images)),
		Populated: resolved.Populated,
	}
	for _, opt := range imageOpts {
		input.ImageKeys = append(input.ImageKeys, docstore.NormalizePlaceholder(opt.Placeholder))
	}
	for key, ref := range resolved.Images {
		data, err := s.templates.FetchImage(ctx, ref.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to load image %s for placeholder %s: %w", ref.Name, key, err)
		}
		input.Images[key] = render.Image{
			Bytes:  data,
			Ext:    path.Ext(ref.Name),
			Width:  ref.Width,
			Height: ref.Height,
		}
	}

	result, err := s.renderer.Render(templateBytes, input)
	if err != nil {
		var renderErr *render.RenderError
		if errors.As(err, &renderErr) {
			s.log.Error().Str("detail", renderErr.Detail()).Msg("all render attempts exhausted")
			return nil, apperr.Wrap(apperr.KindRender, renderErr.Error(), err)
		}
		return nil, err
	}

	reportPath := templates.ReportPrefix + uuid.New().String() + ".docx"
	if err := s.store.Write(ctx, reportPath, result.Bytes, docxContentType); err != nil {
		return nil, fmt.Errorf("failed to store report: %w", err)
	}

	if _, err := s.history.Append(ctx, models.HistoryRecord{
		DraftID:         draft.DraftID,
		PropertyAddress: draft.PropertyAddress,
		Data:            draft.FormData,
		IfReplaceText:   result.TextReplaced,
		IfReplaceImage:  result.ImagesReplaced,
		ReportPath:      reportPath,
	}); err != nil {
		return nil, err
	}

	s.log.Info().Str("report", reportPath).Int("replaced", result.ReplacedCount).
		Str("template", templateName).Msg("report generated")

	return &GenerateResult{
		ReportPath:    reportPath,
		ReportURL:     s.store.URL(reportPath),
		DataURI:       "data:" + docxContentType + ";base64," + base64.StdEncoding.EncodeToString(result.Bytes),
		ReplacedCount: result.ReplacedCount,
	}, nil
}

// FetchReport reads a stored report's bytes by its generated file name.
func (s *ReportService) FetchReport(ctx context.Context, name string) ([]byte, error) {
	if name == "" || path.Base(name) != name {
		return nil, apperr.InvalidInput(fmt.Sprintf("report name %q contains path segments", name))
	}
	return s.store.Read(ctx, templates.ReportPrefix+name)
}
