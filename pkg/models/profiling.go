package models

// ProfilingContractVersion identifies the profiling request/response shapes below.
// Version 2 is the distribution form; the flat {gender, age} form is not served.
const ProfilingContractVersion = "2"

// ProfilingRequest asks for a demographic profile of the author of Text.
type ProfilingRequest struct {
	Text     string `mapstructure:"text"`
	Language string `mapstructure:"language"`
}

// ProfilingResponse holds the probability of each age bracket and gender label.
type ProfilingResponse struct {
	AgeGroups map[string]float64 `json:"ageGroups"`
	Genders   map[string]float64 `json:"genders"`
}
