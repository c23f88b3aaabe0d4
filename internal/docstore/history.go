package docstore

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"VP-RPT/internal/models"
	"VP-RPT/internal/storage"
)

// HistoryStore manages report snapshots. Records are immutable once appended;
// the only mutation is deletion by id. Multiple snapshots of the same address
// may coexist.
type HistoryStore struct {
	store storage.ObjectStore
	log   zerolog.Logger
}

func NewHistoryStore(store storage.ObjectStore, log zerolog.Logger) *HistoryStore {
	return &HistoryStore{
		store: store,
		log:   log.With().Str("component", "history_store").Logger(),
	}
}

// List returns all history records sorted by updatedAt descending.
func (s *HistoryStore) List(ctx context.Context) ([]models.HistoryRecord, error) {
	records, err := loadCollection[models.HistoryRecord](ctx, s.store, HistoryPath)
	if err != nil {
		return nil, err
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].UpdatedAt.After(records[j].UpdatedAt)
	})
	return records, nil
}

// Append adds a new snapshot. A missing draftId gets a generated one so
// deletion by id always works.
func (s *HistoryStore) Append(ctx context.Context, record models.HistoryRecord) (*models.HistoryRecord, error) {
	records, err := loadCollection[models.HistoryRecord](ctx, s.store, HistoryPath)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if record.DraftID == "" {
		record.DraftID = uuid.New().String()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	record.UpdatedAt = now

	records = append(records, record)
	if err := saveCollection(ctx, s.store, HistoryPath, records); err != nil {
		return nil, err
	}

	s.log.Info().Str("draft_id", record.DraftID).Str("address", record.PropertyAddress).
		Msg("history record appended")
	return &record, nil
}

// Delete removes the record with the given id. Returns false without error
// when no such record exists.
func (s *HistoryStore) Delete(ctx context.Context, draftID string) (bool, error) {
	records, err := loadCollection[models.HistoryRecord](ctx, s.store, HistoryPath)
	if err != nil {
		return false, err
	}

	kept := records[:0]
	removed := false
	for _, r := range records {
		if r.DraftID == draftID {
			removed = true
			continue
		}
		kept = append(kept, r)
	}
	if !removed {
		return false, nil
	}

	if err := saveCollection(ctx, s.store, HistoryPath, kept); err != nil {
		return false, err
	}
	return true, nil
}
