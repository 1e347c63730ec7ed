package models

// AttributionRequest asks whether the unknown text was written by the author of
// the known texts. Genre is either a name ("novel") or a numeric category id.
type AttributionRequest struct {
	KnownAuthorTexts  []string `mapstructure:"knownAuthorTexts" validate:"required,min=1"`
	UnknownAuthorText string   `mapstructure:"unknownAuthorText"`
	Language          string   `mapstructure:"language"`
	Genre             any      `mapstructure:"genre"`
	FeatureSet        int      `mapstructure:"featureSet"`
}

// AttributionResponse is returned on a successful attribution.
type AttributionResponse struct {
	SameAuthorConfidence float64        `json:"sameAuthorConfidence"`
	Statistics           map[string]any `json:"statistics"`
}
