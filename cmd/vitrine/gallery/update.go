package gallery

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"vitrine/internal/wizard"
)

// Update routes messages to the browsing list or the open wizard.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = max(msg.Width, 0)
		m.height = max(msg.Height, 0)
		m.ready = m.width > 0 && m.height > 0
		m.list.SetSize(m.width, max(m.height-2, 0))
		m.renderer = newMarkdownRenderer(m.styles, m.modalWidth()-6)
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case catalogMsg:
		m.loading = false
		m.catalog = msg.catalog
		return m, m.list.SetItems(catalogItems(msg.catalog))

	case reloadMsg:
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.loadCatalog())

	case tea.KeyMsg:
		if m.session.IsOpen() {
			return m.updateWizard(msg)
		}
		return m.updateBrowsing(msg)

	case tea.MouseMsg:
		return m.updateMouse(msg)
	}

	// Cursor blink and other component ticks go to the focused input.
	if m.session.Panel() == wizard.PanelOnboarding {
		var cmd tea.Cmd
		m.form.inputs[m.form.focused], cmd = m.form.inputs[m.form.focused].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateBrowsing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the filter prompt is active every key belongs to it.
	if m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "enter":
		if item, ok := m.list.SelectedItem().(studyItem); ok {
			return m.openWizard(item)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// updateMouse closes the wizard on any left click outside the modal,
// the terminal equivalent of clicking the page overlay. Clicks inside
// the modal and all mouse traffic while browsing go to the list.
func (m Model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.session.IsOpen() {
		if msg.Action == tea.MouseActionPress &&
			msg.Button == tea.MouseButtonLeft &&
			!m.inModal(msg.X, msg.Y) {
			return m.closeWizard(), nil
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}
