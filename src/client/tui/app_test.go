package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agentcomparer/comparer-cli/src/client/api"
)

func browserFixture() []api.Model {
	return []api.Model{
		{"provider": "OpenAI", "model_family": "GPT-4", "model_name": "gpt-4o"},
		{"provider": "Anthropic", "model_family": "Claude", "model_name": "claude-3-opus"},
	}
}

// Tests for initialModel

func TestInitialModel(t *testing.T) {
	client := api.NewClient("https://api.example.com", "key", 30)

	m := initialModel(client)
	if m.client == nil {
		t.Error("model.client should not be nil")
	}
	if !m.loading {
		t.Error("model should start in the loading state")
	}
	if m.input.Placeholder == "" {
		t.Error("filter input should have a placeholder")
	}
}

// Tests for Update

func TestUpdateModelsLoaded(t *testing.T) {
	m := initialModel(api.NewClient("https://api.example.com", "key", 30))

	updated, _ := m.Update(modelsLoadedMsg{models: browserFixture()})
	got := updated.(model)

	if got.loading {
		t.Error("loading should clear once models arrive")
	}
	if len(got.models) != 2 {
		t.Errorf("model count = %d, want 2", len(got.models))
	}
}

func TestUpdateQuitKeys(t *testing.T) {
	m := initialModel(api.NewClient("https://api.example.com", "key", 30))

	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC}); cmd == nil {
		t.Error("ctrl+c should produce a quit command")
	}
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc}); cmd == nil {
		t.Error("esc should produce a quit command")
	}
}

// Tests for filtered

func TestFilteredNoTerm(t *testing.T) {
	m := initialModel(api.NewClient("https://api.example.com", "key", 30))
	m.models = browserFixture()

	if got := m.filtered(); len(got) != 2 {
		t.Errorf("filtered() with empty input = %d models, want all", len(got))
	}
}

func TestFilteredCaseInsensitive(t *testing.T) {
	m := initialModel(api.NewClient("https://api.example.com", "key", 30))
	m.models = browserFixture()
	m.input.SetValue("CLAUDE")

	got := m.filtered()
	if len(got) != 1 {
		t.Fatalf("filtered() = %d models, want 1", len(got))
	}
	if got[0].Provider() != "Anthropic" {
		t.Errorf("filtered()[0].Provider() = %q", got[0].Provider())
	}
}

// Records missing a field render as "N/A", but the filter works on the
// raw values - typing "n/a" must not match them, just like list-models
// --search.
func TestFilteredMissingFieldsNotMatchedByPlaceholder(t *testing.T) {
	m := initialModel(api.NewClient("https://api.example.com", "key", 30))
	m.models = []api.Model{
		{"provider": "OpenAI"},
		{"provider": "Mistral", "model_family": "n/a-series", "model_name": "na-1"},
	}
	m.input.SetValue("n/a")

	got := m.filtered()
	if len(got) != 1 {
		t.Fatalf("filtered() = %d models, want only the record whose real fields contain the term", len(got))
	}
	if got[0].Provider() != "Mistral" {
		t.Errorf("filtered()[0].Provider() = %q, want Mistral", got[0].Provider())
	}
}

// Tests for renderModels

func TestRenderModelsError(t *testing.T) {
	m := initialModel(api.NewClient("https://api.example.com", "key", 30))
	m.err = errors.New("connection refused")

	out := m.renderModels()
	if !strings.Contains(out, "connection refused") {
		t.Errorf("renderModels() = %q, should show the error", out)
	}
}

func TestRenderModelsEmpty(t *testing.T) {
	m := initialModel(api.NewClient("https://api.example.com", "key", 30))

	out := m.renderModels()
	if !strings.Contains(out, "No models found") {
		t.Errorf("renderModels() = %q, should show the empty message", out)
	}
}

func TestRenderModelsCount(t *testing.T) {
	m := initialModel(api.NewClient("https://api.example.com", "key", 30))
	m.models = browserFixture()

	out := m.renderModels()
	if !strings.Contains(out, "Total models: 2") {
		t.Errorf("renderModels() should show the total, got %q", out)
	}
	if !strings.Contains(out, "OpenAI") || !strings.Contains(out, "Anthropic") {
		t.Errorf("renderModels() should list both providers, got %q", out)
	}
}

// View renders in every state

func TestView(t *testing.T) {
	m := initialModel(api.NewClient("https://api.example.com", "key", 30))

	if out := m.View(); !strings.Contains(out, "Loading models...") {
		t.Errorf("View() while loading = %q", out)
	}

	m.loading = false
	m.models = browserFixture()
	if out := m.View(); out == "" {
		t.Error("View() should render after load")
	}
}
