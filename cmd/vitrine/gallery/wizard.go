package gallery

import (
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"vitrine/internal/lead"
	"vitrine/internal/wizard"
)

// clipboardWriteAll is a package-level variable to allow mocking in tests.
var clipboardWriteAll = clipboard.WriteAll

// Onboarding field order, top to bottom.
const (
	fieldName = iota
	fieldEmail
	fieldCompany
	fieldExperience
	fieldCompanyType
	fieldPosition
	fieldGeography
	fieldUsage
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Name",
	"Email",
	"Company",
	"Experience",
	"Company type",
	"Position",
	"Geography",
	"Usage",
}

var fieldPlaceholders = [fieldCount]string{
	"Ada Lovelace",
	"ada@example.com",
	"Company name",
	"Years in the field",
	"Agency, brand, other",
	"Your role",
	"Markets you operate in",
	"What the study is for",
}

// wizardForm holds the modal's input state: the onboarding text inputs,
// which one has focus, and the pricing selection. It is rebuilt from
// scratch on every open and close so no prior visit leaks through.
type wizardForm struct {
	inputs  []textinput.Model
	focused int
	choice  int
	note    string
}

func newWizardForm() wizardForm {
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.Placeholder = fieldPlaceholders[i]
		ti.CharLimit = 120
		ti.Width = 38
		ti.Prompt = ""
		inputs[i] = ti
	}
	inputs[fieldName].Focus()
	return wizardForm{inputs: inputs}
}

// data collects the trimmed input values into an onboarding profile.
func (f wizardForm) data() lead.Onboarding {
	return lead.Onboarding{
		Name:        strings.TrimSpace(f.inputs[fieldName].Value()),
		Email:       strings.TrimSpace(f.inputs[fieldEmail].Value()),
		Company:     strings.TrimSpace(f.inputs[fieldCompany].Value()),
		Experience:  strings.TrimSpace(f.inputs[fieldExperience].Value()),
		CompanyType: strings.TrimSpace(f.inputs[fieldCompanyType].Value()),
		Position:    strings.TrimSpace(f.inputs[fieldPosition].Value()),
		Geography:   strings.TrimSpace(f.inputs[fieldGeography].Value()),
		Usage:       strings.TrimSpace(f.inputs[fieldUsage].Value()),
	}
}

func (f *wizardForm) focusNext() {
	f.inputs[f.focused].Blur()
	f.focused = (f.focused + 1) % fieldCount
	f.inputs[f.focused].Focus()
}

func (f *wizardForm) focusPrev() {
	f.inputs[f.focused].Blur()
	f.focused = (f.focused + fieldCount - 1) % fieldCount
	f.inputs[f.focused].Focus()
}

// openWizard starts a fresh wizard session for the given study.
func (m Model) openWizard(study studyItem) (tea.Model, tea.Cmd) {
	m.form = newWizardForm()
	m.status = ""
	if err := m.session.Open(study.study); err != nil {
		m.log.Warn("wizard open rejected", zap.Error(err))
		return m, nil
	}
	return m, textinput.Blink
}

// closeWizard routes every close trigger to the same full reset: the
// session, the form inputs, and any status line all go back to zero.
func (m Model) closeWizard() Model {
	m.session.Close()
	m.form = newWizardForm()
	m.status = ""
	return m
}

// updateWizard handles keys while the modal is open.
func (m Model) updateWizard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "ctrl+w":
		return m.closeWizard(), nil
	}

	switch m.session.Panel() {
	case wizard.PanelOnboarding:
		return m.updateOnboarding(msg)
	case wizard.PanelPricing:
		return m.updatePricing(msg)
	case wizard.PanelBooking, wizard.PanelFullStudy:
		return m.updateArtifact(msg)
	}
	return m, nil
}

func (m Model) updateOnboarding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		m.form.focusNext()
		return m, nil
	case "shift+tab", "up":
		m.form.focusPrev()
		return m, nil
	case "enter":
		if m.form.focused < fieldCount-1 {
			m.form.focusNext()
			return m, nil
		}
		return m.submitOnboarding()
	}

	var cmd tea.Cmd
	m.form.inputs[m.form.focused], cmd = m.form.inputs[m.form.focused].Update(msg)
	return m, cmd
}

// submitOnboarding validates the two required fields and advances to
// Pricing. The state machine itself accepts any profile; requiring name
// and email is this surface's policy.
func (m Model) submitOnboarding() (tea.Model, tea.Cmd) {
	data := m.form.data()
	if data.Name == "" || data.Email == "" {
		m.form.note = "Name and email are required."
		return m, nil
	}
	if err := m.session.Submit(data); err != nil {
		m.log.Warn("onboarding submit rejected", zap.Error(err))
		return m, nil
	}
	m.form.note = ""
	return m, nil
}

func (m Model) updatePricing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "h", "1":
		m.form.choice = 0
	case "right", "l", "2":
		m.form.choice = 1
	case "tab":
		m.form.choice = 1 - m.form.choice
	case "enter":
		var err error
		if m.form.choice == 0 {
			err = m.session.ChooseBrief()
		} else {
			err = m.session.ChooseFullStudy()
		}
		if err != nil {
			m.log.Warn("pricing choice rejected", zap.Error(err))
		}
	}
	return m, nil
}

func (m Model) updateArtifact(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "b", "left", "backspace":
		if err := m.session.Back(); err != nil {
			m.log.Warn("back rejected", zap.Error(err))
		}
		m.status = ""
	case "c", "y":
		return m.copyArtifact()
	}
	return m, nil
}

// copyArtifact puts the current panel's outbound link on the clipboard.
func (m Model) copyArtifact() (tea.Model, tea.Cmd) {
	var artifact string
	switch m.session.Panel() {
	case wizard.PanelBooking:
		if link, ok := m.bookingArtifact(); ok {
			artifact = link
		}
	case wizard.PanelFullStudy:
		if link, ok := m.mailArtifact(); ok {
			artifact = link
		}
	}
	if artifact == "" {
		return m, nil
	}

	if err := clipboardWriteAll(artifact); err != nil {
		m.status = m.styles.Error.Render("Copy failed")
		m.log.Warn("clipboard write failed", zap.Error(err))
	} else {
		m.status = m.styles.Success.Render("Copied to clipboard")
	}
	return m, nil
}

// bookingArtifact builds the prefilled booking link, when a calendar is
// configured. The unconfigured case is normal and renders a fallback.
func (m Model) bookingArtifact() (string, bool) {
	base, ok := m.cfg.Booking.Configured()
	if !ok {
		return "", false
	}
	link, err := lead.BookingURL(base, m.session.Data())
	if err != nil {
		m.log.Warn("booking link failed", zap.Error(err))
		return "", false
	}
	return link, true
}

// mailArtifact builds the full-study mail link, when a contact address
// is configured.
func (m Model) mailArtifact() (string, bool) {
	recipient := strings.TrimSpace(m.cfg.Contact.Email)
	if recipient == "" {
		return "", false
	}
	study, _ := m.session.Study()
	return lead.MailLink(recipient, study.Title), true
}

// ---- Panel rendering ----

func (m Model) viewOnboarding() string {
	study, _ := m.session.Study()

	var b strings.Builder
	b.WriteString(m.styles.ModalTitle.Render("Before we send it over"))
	b.WriteString("\n\n")
	b.WriteString(m.renderStudyHeader(study.Title, study.Tag, study.Date))
	if study.Description != "" {
		b.WriteString(m.renderMarkdown(study.Description))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.RenderDivider(m.modalWidth() - 6))
	b.WriteString("\n\n")

	for i := range m.form.inputs {
		b.WriteString(m.styles.FieldLabel.Render(fieldLabels[i]))
		b.WriteString(" ")
		b.WriteString(m.form.inputs[i].View())
		b.WriteString("\n")
	}

	if m.form.note != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render(m.form.note))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("enter: next · tab: move · esc: close"))
	return b.String()
}

func (m Model) viewPricing() string {
	study, _ := m.session.Study()

	var b strings.Builder
	b.WriteString(m.styles.ModalTitle.Render("How would you like it?"))
	b.WriteString("\n\n")
	b.WriteString(m.renderStudyHeader(study.Title, study.Tag, study.Date))

	if len(study.Includes) > 0 {
		b.WriteString(m.styles.Bold.Render("Included:"))
		b.WriteString("\n")
		for _, inc := range study.Includes {
			b.WriteString(m.styles.Body.Render("  • " + inc))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	brief := "Briefing call\nWalk through the findings\non a call with the team"
	full := "Full study\nThe complete report with\ndata and methodology"

	var left, right string
	if m.form.choice == 0 {
		left = m.styles.ChoiceSelected.Render(brief)
		right = m.styles.Choice.Render(full)
	} else {
		left = m.styles.Choice.Render(brief)
		right = m.styles.ChoiceSelected.Render(full)
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Muted.Render("←/→: choose · enter: confirm · esc: close"))
	return b.String()
}

func (m Model) viewBooking() string {
	data := m.session.Data()

	var b strings.Builder
	b.WriteString(m.styles.ModalTitle.Render("Book a briefing call"))
	b.WriteString("\n\n")

	if link, ok := m.bookingArtifact(); ok {
		b.WriteString(m.styles.Body.Render("Pick a slot that suits you:"))
		b.WriteString("\n\n")
		b.WriteString(m.styles.Link.Render(link))
		b.WriteString("\n\n")
		b.WriteString(m.styles.Muted.Render("The form arrives prefilled with your name and email."))
	} else {
		b.WriteString(m.styles.Warning.Render("No booking calendar is configured."))
		b.WriteString("\n\n")
		b.WriteString(m.styles.Body.Render("We saved your details; the team will reach out."))
		b.WriteString("\n\n")
		b.WriteString(m.renderProfileRow("Name", data.Name))
		b.WriteString(m.renderProfileRow("Email", data.Email))
		b.WriteString(m.renderProfileRow("Company", data.Company))
		b.WriteString(m.renderProfileRow("Position", data.Position))
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("ref: " + m.session.Reference()))
	b.WriteString("\n\n")
	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Muted.Render("b: back · c: copy link · esc: close"))
	return b.String()
}

func (m Model) viewFullStudy() string {
	study, _ := m.session.Study()
	fields := lead.FormFields(m.session.Data(), study.Title, m.session.Reference())

	var b strings.Builder
	b.WriteString(m.styles.ModalTitle.Render("Request the full study"))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Body.Render("Your request will carry these details:"))
	b.WriteString("\n\n")

	for _, f := range fields {
		b.WriteString(m.renderProfileRow(f.Name, f.Value))
	}

	b.WriteString("\n")
	if link, ok := m.mailArtifact(); ok {
		b.WriteString(m.styles.Body.Render("Or email us directly:"))
		b.WriteString("\n")
		b.WriteString(m.styles.Link.Render(link))
		b.WriteString("\n\n")
	} else {
		b.WriteString(m.styles.Warning.Render("No contact address is configured."))
		b.WriteString("\n\n")
	}

	if m.status != "" {
		b.WriteString(m.status)
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Muted.Render("b: back · c: copy mail link · esc: close"))
	return b.String()
}

func (m Model) renderProfileRow(label, value string) string {
	if value == "" {
		value = "-"
	}
	return m.styles.FieldLabel.Render(label) + " " + m.styles.FieldValue.Render(value) + "\n"
}

func (m Model) renderStudyHeader(title, tag, date string) string {
	if title == "" {
		if study, ok := m.session.Study(); ok {
			title = study.ID
		}
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(title))
	if tag != "" {
		b.WriteString("  ")
		b.WriteString(m.styles.Badge.Render(tag))
	}
	if date != "" {
		b.WriteString("  ")
		b.WriteString(m.styles.Date.Render(date))
	}
	b.WriteString("\n")
	return b.String()
}
