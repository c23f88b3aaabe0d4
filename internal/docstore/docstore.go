// Package docstore persists the application's record collections as whole
// JSON documents in object storage. There is no caching and no partial
// update: every read refetches the document, every write replaces it.
package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"VP-RPT/internal/apperr"
	"VP-RPT/internal/storage"
)

const (
	DraftsPath            = "drafts.json"
	HistoryPath           = "history.json"
	CommentaryOptionsPath = "commentary-options.json"
	MultiOptionsPath      = "multi-options.json"
	CommentaryCardsPath   = "commentary-cards.json"
	ImageOptionsPath      = "image-options.json"
	AIConfigPath          = "ai-config.json"
)

const jsonContentType = "application/json"

// loadCollection reads the document at path, initializing it to an empty
// collection (and persisting that initialization) when it does not exist yet.
func loadCollection[T any](ctx context.Context, store storage.ObjectStore, path string) ([]T, error) {
	data, err := store.Read(ctx, path)
	if err != nil {
		if apperr.IsNotFound(err) {
			empty := []T{}
			if err := saveCollection(ctx, store, path, empty); err != nil {
				return nil, fmt.Errorf("failed to initialize %s: %w", path, err)
			}
			return empty, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, apperr.Wrap(apperr.KindValidation, fmt.Sprintf("malformed document %s", path), err)
	}
	return records, nil
}

func saveCollection[T any](ctx context.Context, store storage.ObjectStore, path string, records []T) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", path, err)
	}
	if err := store.Write(ctx, path, data, jsonContentType); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// NormalizePlaceholder strips surrounding delimiter characters and whitespace
// from a placeholder tag so "{{Replace_Address}}" and "Replace_Address" key
// the same mapping entry.
func NormalizePlaceholder(tag string) string {
	return strings.Trim(tag, "{}%$[] \t")
}
