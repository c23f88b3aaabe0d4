package docstore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"VP-RPT/internal/apperr"
	"VP-RPT/internal/models"
	"VP-RPT/internal/storage"
)

// PlaceResolver resolves a property address to a stable place identifier.
// The geocode package provides the production implementation.
type PlaceResolver interface {
	ResolvePlaceID(ctx context.Context, address string) (string, error)
}

// DraftStore manages the drafts collection. At most one draft exists per
// placeId: saving with a matching placeId updates that record in place.
type DraftStore struct {
	store  storage.ObjectStore
	places PlaceResolver
	log    zerolog.Logger
}

func NewDraftStore(store storage.ObjectStore, places PlaceResolver, log zerolog.Logger) *DraftStore {
	return &DraftStore{
		store:  store,
		places: places,
		log:    log.With().Str("component", "draft_store").Logger(),
	}
}

// List returns draft summaries sorted by updatedAt descending.
func (s *DraftStore) List(ctx context.Context) ([]models.DraftSummary, error) {
	drafts, err := loadCollection[models.Draft](ctx, s.store, DraftsPath)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.DraftSummary, 0, len(drafts))
	for _, d := range drafts {
		summaries = append(summaries, d.Summary())
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].UpdatedAt.After(summaries[j].UpdatedAt)
	})
	return summaries, nil
}

func (s *DraftStore) Get(ctx context.Context, draftID string) (*models.Draft, error) {
	drafts, err := loadCollection[models.Draft](ctx, s.store, DraftsPath)
	if err != nil {
		return nil, err
	}
	for i := range drafts {
		if drafts[i].DraftID == draftID {
			return &drafts[i], nil
		}
	}
	return nil, apperr.NotFound(fmt.Sprintf("draft %s not found", draftID))
}

// Save upserts a draft keyed by its resolved placeId. A new record gets a
// generated draftId and createdAt; an existing one keeps both and advances
// updatedAt only.
func (s *DraftStore) Save(ctx context.Context, draft models.Draft) (*models.Draft, error) {
	if draft.PlaceID == "" {
		placeID, err := s.places.ResolvePlaceID(ctx, draft.PropertyAddress)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve place id for %q: %w", draft.PropertyAddress, err)
		}
		draft.PlaceID = placeID
	}

	drafts, err := loadCollection[models.Draft](ctx, s.store, DraftsPath)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	draft.UpdatedAt = now

	updated := false
	for i := range drafts {
		if drafts[i].PlaceID == draft.PlaceID {
			draft.DraftID = drafts[i].DraftID
			draft.CreatedAt = drafts[i].CreatedAt
			drafts[i] = draft
			updated = true
			break
		}
	}
	if !updated {
		draft.DraftID = uuid.New().String()
		draft.CreatedAt = now
		drafts = append(drafts, draft)
	}

	if err := saveCollection(ctx, s.store, DraftsPath, drafts); err != nil {
		return nil, err
	}

	s.log.Info().Str("draft_id", draft.DraftID).Str("place_id", draft.PlaceID).
		Bool("updated", updated).Msg("draft saved")
	return &draft, nil
}

// Delete removes the draft with the given id. Returns false without error
// when no such draft exists.
func (s *DraftStore) Delete(ctx context.Context, draftID string) (bool, error) {
	drafts, err := loadCollection[models.Draft](ctx, s.store, DraftsPath)
	if err != nil {
		return false, err
	}

	kept := drafts[:0]
	removed := false
	for _, d := range drafts {
		if d.DraftID == draftID {
			removed = true
			continue
		}
		kept = append(kept, d)
	}
	if !removed {
		return false, nil
	}

	if err := saveCollection(ctx, s.store, DraftsPath, kept); err != nil {
		return false, err
	}
	return true, nil
}
