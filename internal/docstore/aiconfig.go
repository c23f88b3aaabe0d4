package docstore

import (
	"context"
	"encoding/json"
	"fmt"

	"VP-RPT/internal/apperr"
	"VP-RPT/internal/models"
	"VP-RPT/internal/storage"
)

// AIConfigStore holds the single Gemini generation-parameter document.
// There is no in-process cache: callers re-read before every model call, so
// a config write takes effect on the next request without any invalidation
// machinery.
type AIConfigStore struct {
	store storage.ObjectStore
}

func NewAIConfigStore(store storage.ObjectStore) *AIConfigStore {
	return &AIConfigStore{store: store}
}

// Get returns the stored config, initializing and persisting the defaults
// when the document is absent.
func (s *AIConfigStore) Get(ctx context.Context) (models.AIConfig, error) {
	data, err := s.store.Read(ctx, AIConfigPath)
	if err != nil {
		if apperr.IsNotFound(err) {
			cfg := models.DefaultAIConfig()
			if err := s.Put(ctx, cfg); err != nil {
				return models.AIConfig{}, fmt.Errorf("failed to initialize ai config: %w", err)
			}
			return cfg, nil
		}
		return models.AIConfig{}, fmt.Errorf("failed to read ai config: %w", err)
	}

	var cfg models.AIConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return models.AIConfig{}, apperr.Wrap(apperr.KindValidation, "malformed ai config document", err)
	}
	return cfg, nil
}

func (s *AIConfigStore) Put(ctx context.Context, cfg models.AIConfig) error {
	if cfg.Model == "" {
		return apperr.Validation("ai config requires a model name")
	}

	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal ai config: %w", err)
	}
	if err := s.store.Write(ctx, AIConfigPath, data, jsonContentType); err != nil {
		return fmt.Errorf("failed to write ai config: %w", err)
	}
	return nil
}
