package models

// CardOption is one selectable entry inside a commentary or multi-select card.
type CardOption struct {
	ID     string `json:"id"`
	Label  string `json:"label"`
	Option string `json:"option"`
}

// OptionCard groups the options offered for one report section. Placeholder
// is the tag the card's selected value is written to at render time; it is
// stored as entered and normalized (delimiters stripped) before use.
type OptionCard struct {
	ID          string       `json:"id"`
	CardName    string       `json:"cardName"`
	Placeholder string       `json:"placeholder"`
	Options     []CardOption `json:"options"`
}

// ImageOption declares an image placeholder: the tag it binds to and the
// pixel dimensions the image is embedded at. Dimensions are caller-supplied,
// never derived from the image bytes.
type ImageOption struct {
	ID          string `json:"id"`
	CardName    string `json:"cardName"`
	Placeholder string `json:"placeholder"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
}

// AIConfig holds the generation parameters for the Gemini model.
type AIConfig struct {
	Model           string  `json:"model"`
	Temperature     float32 `json:"temperature"`
	TopP            float32 `json:"topP"`
	TopK            float32 `json:"topK"`
	MaxOutputTokens int32   `json:"maxOutputTokens"`
}

// DefaultAIConfig is persisted on first read when no config document exists.
func DefaultAIConfig() AIConfig {
	return AIConfig{
		Model:           "gemini-2.0-flash",
		Temperature:     0.7,
		TopP:            0.95,
		TopK:            40,
		MaxOutputTokens: 2048,
	}
}
