package models

// TemplateInfo describes one uploaded .docx template blob. Name doubles as
// the storage key; collisions overwrite.
type TemplateInfo struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ImageInfo is returned after an image upload. Name is server-generated to
// avoid collisions; the placeholder binding happens in image-options.
type ImageInfo struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}
