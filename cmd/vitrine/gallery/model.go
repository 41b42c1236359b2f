// Package gallery is the interactive study catalog: a browsable list of
// cards with a modal wizard that walks a visitor from a card to an
// outbound artifact (calendar booking or full-study request).
package gallery

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"vitrine/cmd/vitrine/ui"
	"vitrine/internal/catalog"
	"vitrine/internal/config"
	"vitrine/internal/feed"
	"vitrine/internal/wizard"
)

// catalogMsg carries a freshly built catalog into the update loop.
type catalogMsg struct {
	catalog *catalog.Catalog
}

// reloadMsg asks for the feed to be loaded again. Only the file watcher
// emits it; a remote feed is fetched exactly once per run.
type reloadMsg struct{}

// Model is the gallery's bubbletea model.
type Model struct {
	cfg    *config.Config
	styles ui.Styles
	log    *zap.Logger
	loader *catalog.Loader

	catalog  *catalog.Catalog
	list     list.Model
	spinner  spinner.Model
	session  *wizard.Session
	form     wizardForm
	renderer *glamour.TermRenderer

	width   int
	height  int
	ready   bool
	loading bool
	status  string
}

// New builds the gallery model. The loader decides where studies come
// from; the model only asks for them.
func New(cfg *config.Config, loader *catalog.Loader, log *zap.Logger) Model {
	if log == nil {
		log = zap.NewNop()
	}
	styles := ui.NewStyles(ui.ThemeFromName(cfg.UI.Theme))

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	d := list.NewDefaultDelegate()
	d.Styles.SelectedTitle = d.Styles.SelectedTitle.
		Foreground(styles.Theme.Accent).
		BorderLeftForeground(styles.Theme.Accent)
	d.Styles.SelectedDesc = d.Styles.SelectedDesc.
		Foreground(styles.Theme.Muted).
		BorderLeftForeground(styles.Theme.Accent)

	l := list.New(nil, d, 0, 0)
	l.Title = "Studies"
	l.SetShowHelp(false)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.Styles.Title = styles.Title

	renderer := newMarkdownRenderer(styles, 80)

	return Model{
		cfg:      cfg,
		styles:   styles,
		log:      log,
		loader:   loader,
		catalog:  catalog.New(),
		list:     l,
		spinner:  sp,
		session:  wizard.NewSession(log),
		form:     newWizardForm(),
		renderer: renderer,
		loading:  true,
	}
}

// newMarkdownRenderer builds a glamour renderer for the current theme
// and wrap width.
func newMarkdownRenderer(styles ui.Styles, wrap int) *glamour.TermRenderer {
	if wrap < 20 {
		wrap = 20
	}
	var renderer *glamour.TermRenderer
	if styles.Theme.IsDark {
		renderer, _ = glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(wrap),
		)
	} else {
		renderer, _ = glamour.NewTermRenderer(
			glamour.WithStylePath("light"),
			glamour.WithWordWrap(wrap),
		)
	}
	return renderer
}

// Init kicks off the spinner and the one catalog load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.loadCatalog())
}

// loadCatalog fetches and parses the feed off the update loop. It never
// fails; a broken feed arrives as an empty catalog.
func (m Model) loadCatalog() tea.Cmd {
	loader := m.loader
	return func() tea.Msg {
		return catalogMsg{catalog: loader.Load(context.Background())}
	}
}

// Launch runs the gallery program. When watchPath is set, the feed file
// is watched and each change triggers a reload inside the program.
func Launch(cfg *config.Config, loader *catalog.Loader, watchPath string, log *zap.Logger) error {
	m := New(cfg, loader, log)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if watchPath != "" {
		w, err := feed.NewWatcher(watchPath, log, func() {
			p.Send(reloadMsg{})
		})
		if err != nil {
			return err
		}
		if err := w.Start(context.Background()); err != nil {
			return err
		}
		defer w.Stop()
	}

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("gallery exited: %w", err)
	}
	return nil
}
