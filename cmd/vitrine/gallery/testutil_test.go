package gallery

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"vitrine/internal/catalog"
	"vitrine/internal/config"
	"vitrine/internal/wizard"
)

// testFeed is a small spreadsheet export covering the usual shapes:
// quoted fields, pipe-delimited inclusions, and plain rows.
const testFeed = `id,tag,title,date,description,includes
alpha,pilot,Household Panel,2024-05,"How households shop, week by week",Report | Dataset
beta,retail,Retail Pulse,2024-06,Footfall and basket sizes,Report
`

// staticSource serves a fixed feed body.
type staticSource struct {
	text string
	err  error
}

func (s staticSource) Fetch(ctx context.Context) (string, error) {
	return s.text, s.err
}

// newTestModel builds a sized gallery with the test feed loaded, the
// state the program is in right after startup.
func newTestModel(t *testing.T, opts ...func(*config.Config)) Model {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Contact.Email = "studies@example.com"
	cfg.Booking.URL = "https://cal.example.com/team/brief?hide_gdpr_banner=1"
	for _, opt := range opts {
		opt(cfg)
	}

	loader := catalog.NewLoader(staticSource{text: testFeed}, zap.NewNop())
	m := New(cfg, loader, zap.NewNop())

	m = press(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m = press(t, m, catalogMsg{catalog: loader.Load(context.Background())})
	return m
}

// press runs one message through Update and returns the new model.
func press(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	nm, _ := m.Update(msg)
	out, ok := nm.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want gallery.Model", nm)
	}
	return out
}

// keyMsg builds the key message whose String() form matches s.
func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "ctrl+w":
		return tea.KeyMsg{Type: tea.KeyCtrlW}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// typeText feeds runes to whatever input currently has focus.
func typeText(t *testing.T, m Model, text string) Model {
	t.Helper()
	return press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

// openWizardOnFirstStudy opens the modal on the list's selected card.
func openWizardOnFirstStudy(t *testing.T, m Model) Model {
	t.Helper()
	m = press(t, m, keyMsg("enter"))
	if got := m.session.Panel(); got != wizard.PanelOnboarding {
		t.Fatalf("expected onboarding after opening, got %s", got)
	}
	return m
}

// submitProfile fills the required fields and submits the onboarding
// form, landing on Pricing.
func submitProfile(t *testing.T, m Model) Model {
	t.Helper()

	m = typeText(t, m, "Ada Lovelace")
	m = press(t, m, keyMsg("enter"))
	m = typeText(t, m, "ada@example.com")

	for i := 0; i < fieldCount+1; i++ {
		if m.session.Panel() != wizard.PanelOnboarding {
			break
		}
		m = press(t, m, keyMsg("enter"))
	}
	if got := m.session.Panel(); got != wizard.PanelPricing {
		t.Fatalf("expected pricing after submit, got %s", got)
	}
	return m
}
