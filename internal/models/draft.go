package models

import "time"

// Draft is one in-progress valuation. The collection lives as a single JSON
// document in object storage; FormData mirrors the UI form and is kept opaque.
type Draft struct {
	DraftID         string         `json:"draftId"`
	PropertyAddress string         `json:"propertyAddress"`
	PlaceID         string         `json:"placeId"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	FormData        map[string]any `json:"formData"`
}

// DraftSummary is the list-view projection of a Draft.
type DraftSummary struct {
	DraftID         string    `json:"draftId"`
	PropertyAddress string    `json:"propertyAddress"`
	PlaceID         string    `json:"placeId"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func (d Draft) Summary() DraftSummary {
	return DraftSummary{
		DraftID:         d.DraftID,
		PropertyAddress: d.PropertyAddress,
		PlaceID:         d.PlaceID,
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}
