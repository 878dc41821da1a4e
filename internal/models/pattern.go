package models

// PatternPlatform is the platform a persuasion pattern applies to
type PatternPlatform string

const (
	PatternLinkedIn  PatternPlatform = "linkedin"
	PatternInstagram PatternPlatform = "instagram"
	PatternBoth      PatternPlatform = "both"
)

// Matches returns true if the pattern can be used on the given platform
func (p PatternPlatform) Matches(platform Platform) bool {
	return p == PatternBoth || string(p) == string(platform)
}

// PersuasionPattern is a static catalog entry describing a persuasion device
type PersuasionPattern struct {
	ID                  string          `yaml:"id" json:"id"`
	Name                string          `yaml:"name" json:"name"`
	Description         string          `yaml:"description" json:"description"`
	Platform            PatternPlatform `yaml:"platform" json:"platform"`
	PsychologyPrinciple string          `yaml:"psychology_principle" json:"psychologyPrinciple"`
	Template            string          `yaml:"template" json:"template"`
	Effectiveness       int             `yaml:"effectiveness" json:"effectiveness"` // 0-100
}

// PsychologyTrigger is a named trigger with implementation examples
type PsychologyTrigger struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Examples    []string `yaml:"examples" json:"examples"`
}

// LabMetric is a synthetic analytics tile. The values are illustrative only.
type LabMetric struct {
	Metric      string `yaml:"metric" json:"metric"`
	Value       string `yaml:"value" json:"value"`
	Change      string `yaml:"change" json:"change"`
	Description string `yaml:"description" json:"description"`
}

// FunnelStage is one synthetic step of the conversion funnel display
type FunnelStage struct {
	Stage       string `yaml:"stage" json:"stage"`
	Rate        string `yaml:"rate" json:"rate"`
	Description string `yaml:"description" json:"description"`
}
