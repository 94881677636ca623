package models

type SummaryMode string

const (
	SummaryBasic  SummaryMode = "basic"
	SummaryStory  SummaryMode = "story"
	SummaryVisual SummaryMode = "visual"
)

// ── Request Types ─────────────────────────────────────

// AudioRequest creates an audio file either from Text or from the summary
// in Summaries selected by Mode.
type AudioRequest struct {
	Text      string                 `json:"text,omitempty"`
	Filename  string                 `json:"filename,omitempty"`
	Summaries map[SummaryMode]string `json:"summaries,omitempty"`
	Mode      SummaryMode            `json:"mode,omitempty"`
}

type SpeakRequest struct {
	Text           string `json:"text"`
	PauseSentences *bool  `json:"pause_sentences,omitempty"`
}

// ── Response Types ────────────────────────────────────

type AudioResponse struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
	Bytes    int    `json:"bytes"`
}
