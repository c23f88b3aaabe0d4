package docstore

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"VP-RPT/internal/apperr"
	"VP-RPT/internal/models"
	"VP-RPT/internal/storage"
)

// OptionCardStore manages one of the card collections (commentary options,
// multi-select options, commentary cards) — they share a shape and differ
// only in their backing document path.
type OptionCardStore struct {
	store storage.ObjectStore
	path  string
}

func NewOptionCardStore(store storage.ObjectStore, path string) *OptionCardStore {
	return &OptionCardStore{store: store, path: path}
}

func (s *OptionCardStore) List(ctx context.Context) ([]models.OptionCard, error) {
	return loadCollection[models.OptionCard](ctx, s.store, s.path)
}

// Add assigns generated ids to the card and its options, normalizes the
// placeholder tag, and appends the card. Tag uniqueness is not enforced here.
func (s *OptionCardStore) Add(ctx context.Context, card models.OptionCard) (*models.OptionCard, error) {
	cards, err := loadCollection[models.OptionCard](ctx, s.store, s.path)
	if err != nil {
		return nil, err
	}

	card.ID = uuid.New().String()
	card.Placeholder = NormalizePlaceholder(card.Placeholder)
	for i := range card.Options {
		if card.Options[i].ID == "" {
			card.Options[i].ID = uuid.New().String()
		}
	}

	cards = append(cards, card)
	if err := saveCollection(ctx, s.store, s.path, cards); err != nil {
		return nil, err
	}
	return &card, nil
}

func (s *OptionCardStore) Update(ctx context.Context, card models.OptionCard) (*models.OptionCard, error) {
	cards, err := loadCollection[models.OptionCard](ctx, s.store, s.path)
	if err != nil {
		return nil, err
	}

	card.Placeholder = NormalizePlaceholder(card.Placeholder)
	for i := range cards {
		if cards[i].ID == card.ID {
			cards[i] = card
			if err := saveCollection(ctx, s.store, s.path, cards); err != nil {
				return nil, err
			}
			return &card, nil
		}
	}
	return nil, apperr.NotFound(fmt.Sprintf("card %s not found in %s", card.ID, s.path))
}

func (s *OptionCardStore) Delete(ctx context.Context, id string) (bool, error) {
	cards, err := loadCollection[models.OptionCard](ctx, s.store, s.path)
	if err != nil {
		return false, err
	}

	kept := cards[:0]
	removed := false
	for _, c := range cards {
		if c.ID == id {
			removed = true
			continue
		}
		kept = append(kept, c)
	}
	if !removed {
		return false, nil
	}
	if err := saveCollection(ctx, s.store, s.path, kept); err != nil {
		return false, err
	}
	return true, nil
}

// ImageOptionStore manages the image placeholder definitions.
type ImageOptionStore struct {
	store storage.ObjectStore
}

func NewImageOptionStore(store storage.ObjectStore) *ImageOptionStore {
	return &ImageOptionStore{store: store}
}

func (s *ImageOptionStore) List(ctx context.Context) ([]models.ImageOption, error) {
	return loadCollection[models.ImageOption](ctx, s.store, ImageOptionsPath)
}

func (s *ImageOptionStore) Add(ctx context.Context, opt models.ImageOption) (*models.ImageOption, error) {
	opts, err := loadCollection[models.ImageOption](ctx, s.store, ImageOptionsPath)
	if err != nil {
		return nil, err
	}

	opt.ID = uuid.New().String()
	opt.Placeholder = NormalizePlaceholder(opt.Placeholder)
	opts = append(opts, opt)
	if err := saveCollection(ctx, s.store, ImageOptionsPath, opts); err != nil {
		return nil, err
	}
	return &opt, nil
}

func (s *ImageOptionStore) Update(ctx context.Context, opt models.ImageOption) (*models.ImageOption, error) {
	opts, err := loadCollection[models.ImageOption](ctx, s.store, ImageOptionsPath)
	if err != nil {
		return nil, err
	}

	opt.Placeholder = NormalizePlaceholder(opt.Placeholder)
	for i := range opts {
		if opts[i].ID == opt.ID {
			opts[i] = opt
			if err := saveCollection(ctx, s.store, ImageOptionsPath, opts); err != nil {
				return nil, err
			}
			return &opt, nil
		}
	}
	return nil, apperr.NotFound(fmt.Sprintf("image option %s not found", opt.ID))
}

func (s *ImageOptionStore) Delete(ctx context.Context, id string) (bool, error) {
	opts, err := loadCollection[models.ImageOption](ctx, s.store, ImageOptionsPath)
	if err != nil {
		return false, err
	}

	kept := opts[:0]
	removed := false
	for _, o := range opts {
		if o.ID == id {
			removed = true
			continue
		}
		kept = append(kept, o)
	}
	if !removed {
		return false, nil
	}
	if err := saveCollection(ctx, s.store, ImageOptionsPath, kept); err != nil {
		return false, err
	}
	return true, nil
}
