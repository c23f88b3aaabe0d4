// Package templates manages the named .docx template blobs and the image
// blobs referenced by placeholder tags.
package templates

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"path"
	"strings"

	"github.com/rs/zerolog"

	"VP-RPT/internal/apperr"
	"VP-RPT/internal/models"
	"VP-RPT/internal/storage"
)

const (
	TemplatePrefix = "templates/"
	ImagePrefix    = "images/"
	ReportPrefix   = "reports/"

	docxExtension   = ".docx"
	docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
)

type Repository struct {
	store storage.ObjectStore
	log   zerolog.Logger
}

func NewRepository(store storage.ObjectStore, log zerolog.Logger) *Repository {
	return &Repository{
		store: store,
		log:   log.With().Str("component", "template_repo").Logger(),
	}
}

// List returns the uploaded templates, filtered to the .docx extension.
func (r *Repository) List(ctx context.Context) ([]models.TemplateInfo, error) {
	names, err := r.store.List(ctx, TemplatePrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	templates := make([]models.TemplateInfo, 0, len(names))
	for _, objectPath := range names {
		name := strings.TrimPrefix(objectPath, TemplatePrefix)
		if !strings.HasSuffix(strings.ToLower(name), docxExtension) {
			continue
		}
		templates = append(templates, models.TemplateInfo{
			Name: name,
			URL:  r.store.URL(objectPath),
		})
	}
	return templates, nil
}

// Upload stores a template under its file name; an existing template of the
// same name is silently overwritten.
func (r *Repository) Upload(ctx context.Context, name string, data []byte) (*models.TemplateInfo, error) {
	if err := validateFileName(name); err != nil {
		return nil, err
	}
	if !strings.HasSuffix(strings.ToLower(name), docxExtension) {
		return nil, apperr.InvalidInput(fmt.Sprintf("template %q must have a %s extension", name, docxExtension))
	}

	objectPath := TemplatePrefix + name
	if err := r.store.Write(ctx, objectPath, data, docxContentType); err != nil {
		return nil, fmt.Errorf("failed to upload template %s: %w", name, err)
	}

	r.log.Info().Str("template", name).Int("size", len(data)).Msg("template uploaded")
	return &models.TemplateInfo{Name: name, URL: r.store.URL(objectPath)}, nil
}

// Fetch reads a template's bytes by name.
func (r *Repository) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := validateFileName(name); err != nil {
		return nil, err
	}
	return r.store.Read(ctx, TemplatePrefix+name)
}

// Delete removes a template; deleting a name that does not exist is not an
// error.
func (r *Repository) Delete(ctx context.Context, name string) error {
	if err := validateFileName(name); err != nil {
		return err
	}
	if err := r.store.Delete(ctx, TemplatePrefix+name); err != nil {
		return fmt.Errorf("failed to delete template %s: %w", name, err)
	}
	return nil
}

// UploadImage stores image bytes under a server-generated name (random hex
// plus the original extension) so concurrent uploads cannot collide.
func (r *Repository) UploadImage(ctx context.Context, originalName string, data []byte, contentType string) (*models.ImageInfo, error) {
	ext := strings.ToLower(path.Ext(originalName))
	if ext == "" {
		return nil, apperr.InvalidInput("image file name has no extension")
	}

	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("failed to generate image name: %w", err)
	}
	name := hex.EncodeToString(buf) + ext

	objectPath := ImagePrefix + name
	if err := r.store.Write(ctx, objectPath, data, contentType); err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	r.log.Info().Str("image", name).Int("size", len(data)).Msg("image uploaded")
	return &models.ImageInfo{Name: name, URL: r.store.URL(objectPath)}, nil
}

// FetchImage reads an image's bytes by its generated name.
func (r *Repository) FetchImage(ctx context.Context, name string) ([]byte, error) {
	if err := validateFileName(name); err != nil {
		return nil, err
	}
	return r.store.Read(ctx, ImagePrefix+name)
}

func (r *Repository) DeleteImage(ctx context.Context, name string) error {
	if err := validateFileName(name); err != nil {
		return err
	}
	if err := r.store.Delete(ctx, ImagePrefix+name); err != nil {
		return fmt.Errorf("failed to delete image %s: %w", name, err)
	}
	return nil
}

// validateFileName rejects path traversal before any storage call.
func validateFileName(name string) error {
	if name == "" {
		return apperr.InvalidInput("file name is required")
	}
	if strings.Contains(name, "/") || strings.Contains(name, "\\") || strings.Contains(name, "..") {
		return apperr.InvalidInput(fmt.Sprintf("file name %q contains path segments", name))
	}
	return nil
}
