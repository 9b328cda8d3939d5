package api

import "strings"

// Model is a single model record from the models list endpoint.
// The server owns the schema; records stay raw maps so capability fields
// the CLI doesn't know about survive a round trip into sample spec files.
type Model map[string]any

// Provider returns the model's provider, or "N/A" if missing
func (m Model) Provider() string {
	return m.stringField("provider")
}

// ModelFamily returns the model's family, or "N/A" if missing
func (m Model) ModelFamily() string {
	return m.stringField("model_family")
}

// ModelName returns the model's name, or "N/A" if missing
func (m Model) ModelName() string {
	return m.stringField("model_name")
}

func (m Model) stringField(key string) string {
	if v, ok := m[key].(string); ok && v != "" {
		return v
	}
	return "N/A"
}

// MatchesFilter reports whether term appears as a case-insensitive
// substring of the provider, family or name. It matches the raw field
// values: a record missing a field never matches through the "N/A"
// placeholder the display accessors return for it.
func (m Model) MatchesFilter(term string) bool {
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(m.rawField("provider")), term) ||
		strings.Contains(strings.ToLower(m.rawField("model_family")), term) ||
		strings.Contains(strings.ToLower(m.rawField("model_name")), term)
}

func (m Model) rawField(key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

// SearchCriteria holds the optional filters for the agents search endpoint.
// Nil fields serialize as JSON null, which the server reads as "filter not
// applied" - none of these carry omitempty on purpose.
type SearchCriteria struct {
	Provider        *string `json:"provider"`
	MinContext      *int    `json:"min_context"`
	MaxContext      *int    `json:"max_context"`
	MinOutputTokens *int    `json:"min_output_tokens"`
	MaxOutputTokens *int    `json:"max_output_tokens"`
	Tools           *bool   `json:"tools"`
	Multilingual    *bool   `json:"multilingual"`
	Audio           *bool   `json:"audio"`
	Vision          *bool   `json:"vision"`
	Reasoning       *bool   `json:"reasoning"`
	FineTuning      *bool   `json:"fine_tuning"`
	Streaming       *bool   `json:"realtime_streaming"`
}

// Metadata is the tracing envelope attached to agent requests
type Metadata struct {
	AgentID   string `json:"agent_id"`
	TaskID    string `json:"task_id"`
	MessageID string `json:"message_id,omitempty"`
	ThreadID  string `json:"thread_id,omitempty"`
}

// searchRequest is the wire body for the search endpoint: the fixed
// metadata envelope plus the criteria fields at the top level
type searchRequest struct {
	Metadata Metadata `json:"metadata"`
	SearchCriteria
}
