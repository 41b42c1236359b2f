// Package gallery tests cover the update loop: opening the wizard from
// the list, walking its panels, and the three close triggers that all
// must land on the same full reset.
package gallery

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"vitrine/internal/catalog"
	"vitrine/internal/config"
	"vitrine/internal/wizard"
)

// =============================================================================
// WINDOW SIZE TESTS
// =============================================================================

func TestUpdate_WindowSize(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)

	m = press(t, m, tea.WindowSizeMsg{Width: 120, Height: 50})
	if m.width != 120 || m.height != 50 {
		t.Errorf("expected 120x50, got %dx%d", m.width, m.height)
	}
}

func TestUpdate_WindowSize_Extremes(t *testing.T) {
	t.Parallel()
	sizes := []tea.WindowSizeMsg{
		{Width: 0, Height: 0},
		{Width: -1, Height: -1},
		{Width: 5000, Height: 5000},
	}

	for _, size := range sizes {
		t.Run(fmt.Sprintf("%dx%d", size.Width, size.Height), func(t *testing.T) {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("panic on window size %dx%d: %v", size.Width, size.Height, r)
				}
			}()
			m := newTestModel(t)
			m = press(t, m, size)
			_ = m.View()
		})
	}
}

// =============================================================================
// CATALOG MESSAGE TESTS
// =============================================================================

func TestUpdate_CatalogMsgReplacesItems(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)

	if got := len(m.list.Items()); got != 2 {
		t.Fatalf("expected 2 items after load, got %d", got)
	}

	smaller := catalog.Build([]catalog.Study{{ID: "gamma", Title: "Pricing Power"}})
	m = press(t, m, catalogMsg{catalog: smaller})

	if got := len(m.list.Items()); got != 1 {
		t.Errorf("expected full replacement down to 1 item, got %d", got)
	}
	if m.loading {
		t.Error("loading should clear once the catalog arrives")
	}
}

func TestUpdate_ReloadMsgStartsLoad(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)

	nm, cmd := m.Update(reloadMsg{})
	m = nm.(Model)

	if !m.loading {
		t.Error("reload should flip the model into loading")
	}
	if cmd == nil {
		t.Error("reload should schedule a load command")
	}
}

func TestUpdate_FeedFailureDegradesToEmptyGallery(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	loader := catalog.NewLoader(staticSource{err: errors.New("boom")}, zap.NewNop())
	m := New(cfg, loader, zap.NewNop())
	m = press(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	m = press(t, m, catalogMsg{catalog: loader.Load(context.Background())})

	if m.catalog.Len() != 0 {
		t.Fatalf("expected empty catalog after fetch failure, got %d", m.catalog.Len())
	}

	// The gallery stays usable: it renders and enter does nothing.
	view := m.View()
	if view == "" {
		t.Error("view should render with an empty catalog")
	}
	m = press(t, m, keyMsg("enter"))
	if m.session.IsOpen() {
		t.Error("wizard must not open without a selected study")
	}
}

// =============================================================================
// WIZARD FLOW TESTS
// =============================================================================

func TestUpdate_EnterOpensWizardOnSelectedStudy(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)

	m = openWizardOnFirstStudy(t, m)

	study, ok := m.session.Study()
	if !ok {
		t.Fatal("open session should carry its study")
	}
	if study.ID != "alpha" {
		t.Errorf("expected the selected study alpha, got %s", study.ID)
	}
	if m.session.Reference() == "" {
		t.Error("open session should mint a lead reference")
	}
}

func TestUpdate_SubmitRequiresNameAndEmail(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	m = openWizardOnFirstStudy(t, m)

	// Enter through every empty field and attempt to submit.
	for i := 0; i < fieldCount+1; i++ {
		m = press(t, m, keyMsg("enter"))
	}

	if got := m.session.Panel(); got != wizard.PanelOnboarding {
		t.Fatalf("empty form must not advance, got %s", got)
	}
	if !strings.Contains(m.View(), "required") {
		t.Error("the form should say which fields are required")
	}
}

func TestUpdate_BriefChoiceLandsOnBooking(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	m = openWizardOnFirstStudy(t, m)
	m = submitProfile(t, m)

	m = press(t, m, keyMsg("left"))
	m = press(t, m, keyMsg("enter"))

	if got := m.session.Panel(); got != wizard.PanelBooking {
		t.Fatalf("expected booking, got %s", got)
	}
	if !strings.Contains(m.View(), "cal.example.com") {
		t.Error("booking view should show the prefilled calendar link")
	}
}

func TestUpdate_FullStudyChoiceLandsOnRequest(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	m = openWizardOnFirstStudy(t, m)
	m = submitProfile(t, m)

	m = press(t, m, keyMsg("right"))
	m = press(t, m, keyMsg("enter"))

	if got := m.session.Panel(); got != wizard.PanelFullStudy {
		t.Fatalf("expected full study, got %s", got)
	}
	view := m.View()
	if !strings.Contains(view, "mailto:studies@example.com") {
		t.Error("full study view should show the mail link")
	}
	if !strings.Contains(view, "Household Panel") {
		t.Error("full study view should carry the study title")
	}
}

func TestUpdate_BackReturnsToPricingKeepingProfile(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	m = openWizardOnFirstStudy(t, m)
	m = submitProfile(t, m)
	m = press(t, m, keyMsg("enter")) // booking

	m = press(t, m, keyMsg("b"))

	if got := m.session.Panel(); got != wizard.PanelPricing {
		t.Fatalf("expected pricing after back, got %s", got)
	}
	if m.session.Data().Name != "Ada Lovelace" {
		t.Error("back must keep the captured profile")
	}
}

// =============================================================================
// CLOSE TRIGGER TESTS
// =============================================================================

// Every close trigger must behave identically: session gone, inputs
// wiped, and the next open starting from scratch.
func TestUpdate_CloseTriggersFullyReset(t *testing.T) {
	t.Parallel()

	triggers := map[string]func(*testing.T, Model) Model{
		"cancel key": func(t *testing.T, m Model) Model {
			return press(t, m, keyMsg("esc"))
		},
		"close control": func(t *testing.T, m Model) Model {
			return press(t, m, keyMsg("ctrl+w"))
		},
		"click outside": func(t *testing.T, m Model) Model {
			return press(t, m, tea.MouseMsg{
				X: 0, Y: 0,
				Action: tea.MouseActionPress,
				Button: tea.MouseButtonLeft,
			})
		},
	}

	for name, trigger := range triggers {
		t.Run(name, func(t *testing.T) {
			m := newTestModel(t)
			m = openWizardOnFirstStudy(t, m)
			m = submitProfile(t, m)

			m = trigger(t, m)

			if m.session.IsOpen() {
				t.Fatal("session should be closed")
			}
			if m.session.Panel() != wizard.PanelNone {
				t.Errorf("expected no panel, got %s", m.session.Panel())
			}
			if !m.form.data().IsZero() {
				t.Error("close must wipe the form inputs")
			}

			// Reopening starts a fresh run at onboarding.
			m = openWizardOnFirstStudy(t, m)
			if !m.session.Data().IsZero() {
				t.Error("reopened session must not carry the old profile")
			}
		})
	}
}

func TestUpdate_ClickInsideModalDoesNotClose(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)
	m = openWizardOnFirstStudy(t, m)

	m = press(t, m, tea.MouseMsg{
		X: m.width / 2, Y: m.height / 2,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	})

	if !m.session.IsOpen() {
		t.Error("clicks inside the modal must not close it")
	}
}

func TestUpdate_KeysWhileBrowsing(t *testing.T) {
	t.Parallel()
	m := newTestModel(t)

	// esc with no modal open is a no-op, not a close and not a crash.
	m = press(t, m, keyMsg("esc"))
	if m.session.IsOpen() {
		t.Fatal("esc while browsing must not open anything")
	}

	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("q while browsing should quit")
	}
}
