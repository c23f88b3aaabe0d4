package models

import "time"

// HistoryRecord is an immutable snapshot taken when a report is generated.
// Unlike drafts, history is never deduplicated by address; several snapshots
// of the same property may coexist.
type HistoryRecord struct {
	DraftID         string         `json:"draftId"`
	PropertyAddress string         `json:"propertyAddress"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
	Data            map[string]any `json:"data"`
	IfReplaceText   bool           `json:"ifReplaceText"`
	IfReplaceImage  bool           `json:"ifReplaceImage"`
	ReportPath      string         `json:"reportPath,omitempty"`
}
