package gallery

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"vitrine/internal/wizard"
)

// View renders either the browsing surface or, when the wizard is open,
// the single visible panel centered as a modal. The two never mix; the
// modal replaces the page the way an overlay covers it.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.session.IsOpen() {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.modalView())
	}
	return m.browsingView()
}

func (m Model) browsingView() string {
	header := m.styles.Header.Width(m.width).Render("vitrine")

	var body string
	if m.loading {
		body = lipgloss.Place(m.width, max(m.height-2, 0), lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading studies...")
	} else {
		body = m.list.View()
	}

	footer := m.styles.Footer.Width(m.width).Render(m.footerHelp())
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m Model) footerHelp() string {
	if m.loading {
		return "q: quit"
	}
	return fmt.Sprintf("%d studies · enter: open · /: filter · q: quit", m.catalog.Len())
}

// modalView renders the panel the session says is visible.
func (m Model) modalView() string {
	var content string
	switch m.session.Panel() {
	case wizard.PanelOnboarding:
		content = m.viewOnboarding()
	case wizard.PanelPricing:
		content = m.viewPricing()
	case wizard.PanelBooking:
		content = m.viewBooking()
	case wizard.PanelFullStudy:
		content = m.viewFullStudy()
	default:
		return ""
	}
	return m.styles.Modal.Width(m.modalWidth()).Render(content)
}

// modalWidth sizes the modal to the terminal, within sane bounds.
func (m Model) modalWidth() int {
	w := m.width - 8
	if w > 72 {
		w = 72
	}
	if w < 28 {
		w = 28
	}
	return w
}

// inModal reports whether a terminal cell lies inside the rendered
// modal. The origin mirrors how lipgloss.Place centers content, so the
// hit test and the rendering agree.
func (m Model) inModal(x, y int) bool {
	modal := m.modalView()
	if modal == "" {
		return false
	}
	w := lipgloss.Width(modal)
	h := lipgloss.Height(modal)
	x0 := int(math.Round(float64(m.width-w) * 0.5))
	y0 := int(math.Round(float64(m.height-h) * 0.5))
	return x >= x0 && x < x0+w && y >= y0 && y < y0+h
}

// renderMarkdown renders study descriptions with panic recovery; a
// glamour failure falls back to the plain text.
func (m Model) renderMarkdown(content string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = content
		}
	}()

	if m.renderer != nil && content != "" {
		rendered, err := m.renderer.Render(content)
		if err == nil {
			return strings.TrimRight(rendered, "\n") + "\n"
		}
	}
	return content
}
