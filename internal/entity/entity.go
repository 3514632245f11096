package entity

import "time"

// Candidate is one locator proposal for an element, produced by a
// discovery strategy and scored in [0,1].
type Candidate struct {
	Locator    string            `json:"xpath"`
	MatchCount int               `json:"match_count"`
	Tag        string            `json:"tag"`
	Text       string            `json:"text"`
	Attributes map[string]string `json:"attributes"`
	CSS        string            `json:"css"`
	Confidence float64           `json:"confidence"`
	Strategy   string            `json:"strategy"`
	Rank       int               `json:"rank"`
}

// ElementInfo is the synthesizer output for a single concrete element:
// the escalated locator plus descriptive metadata.
type ElementInfo struct {
	Locator    string
	MatchCount int
	Tag        string
	Text       string
	Attributes map[string]string
	CSS        string
}

func (i ElementInfo) Empty() bool {
	return i.Locator == ""
}

// Candidate builds a scored candidate from synthesized element info.
func (i ElementInfo) Candidate(confidence float64, strategy string) Candidate {
	return Candidate{
		Locator:    i.Locator,
		MatchCount: i.MatchCount,
		Tag:        i.Tag,
		Text:       i.Text,
		Attributes: i.Attributes,
		CSS:        i.CSS,
		Confidence: confidence,
		Strategy:   strategy,
	}
}

const (
	StrategyText        = "native_text"
	StrategyRole        = "native_role"
	StrategyLabel       = "native_label"
	StrategyPlaceholder = "native_placeholder"
	StrategyFuzzyText   = "fuzzy_text_match"

	StrategyAttributePrefix = "attribute_match_"
)

// SessionInfo describes one cached page session.
type SessionInfo struct {
	URL       string
	LoadedAt  time.Time
	FromCache bool
}
