// Package wizard drives the multi-step lead-capture modal: onboarding,
// then a pricing choice, then either a calendar booking or a full-study
// request. The session is a plain state machine with no rendering; the
// gallery decides how each panel looks.
//
// The flow, as a visitor experiences it:
//
//	(closed) --open(study)--> Onboarding
//	Onboarding --submit--> Pricing          captures the profile
//	Pricing --brief--> Booking              calendar artifact
//	Pricing --full study--> FullStudy       prefilled request
//	Booking | FullStudy --back--> Pricing
//	anywhere --close--> (closed)            full reset
package wizard

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"vitrine/internal/catalog"
	"vitrine/internal/lead"
)

// Panel identifies which wizard step is visible. PanelNone means the
// modal is closed. At most one panel is ever visible because the
// session stores exactly one Panel value.
type Panel int

const (
	PanelNone Panel = iota
	PanelOnboarding
	PanelPricing
	PanelBooking
	PanelFullStudy
)

func (p Panel) String() string {
	switch p {
	case PanelNone:
		return "closed"
	case PanelOnboarding:
		return "onboarding"
	case PanelPricing:
		return "pricing"
	case PanelBooking:
		return "booking"
	case PanelFullStudy:
		return "full-study"
	default:
		return fmt.Sprintf("panel(%d)", int(p))
	}
}

// Session owns the wizard state for one visitor: the visible panel,
// the study that opened the modal, and the captured onboarding
// profile. Closing resets everything; a new session never resumes a
// prior one.
type Session struct {
	panel Panel
	study catalog.Study
	open  bool
	data  lead.Onboarding
	ref   string
	log   *zap.Logger
}

// NewSession returns a closed session. A nil logger silences it.
func NewSession(log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{log: log}
}

// Open starts the wizard at Onboarding for the given study. It fails
// if a session is already open; the caller must close first. Opening
// clears any stale profile so no prior session can leak into this one.
func (s *Session) Open(study catalog.Study) error {
	if s.open {
		return fmt.Errorf("wizard already open at %s", s.panel)
	}
	s.reset()
	s.open = true
	s.study = study
	s.panel = PanelOnboarding
	s.ref = uuid.NewString()
	s.log.Info("wizard opened", zap.String("study", study.ID), zap.String("ref", s.ref))
	return nil
}

// Submit captures the onboarding profile and advances to Pricing. The
// profile is stored as given; field validation is the form's concern,
// not the state machine's.
func (s *Session) Submit(data lead.Onboarding) error {
	if s.panel != PanelOnboarding {
		return fmt.Errorf("cannot submit onboarding from %s", s.panel)
	}
	s.data = data
	s.panel = PanelPricing
	s.log.Info("onboarding captured", zap.String("ref", s.ref))
	return nil
}

// ChooseBrief moves from Pricing to Booking. Entering Booking is what
// triggers the calendar artifact on the rendering side.
func (s *Session) ChooseBrief() error {
	if s.panel != PanelPricing {
		return fmt.Errorf("cannot choose brief from %s", s.panel)
	}
	s.panel = PanelBooking
	s.log.Info("brief chosen", zap.String("ref", s.ref))
	return nil
}

// ChooseFullStudy moves from Pricing to the full-study request panel,
// which is prefilled from the captured profile.
func (s *Session) ChooseFullStudy() error {
	if s.panel != PanelPricing {
		return fmt.Errorf("cannot choose full study from %s", s.panel)
	}
	s.panel = PanelFullStudy
	s.log.Info("full study chosen", zap.String("ref", s.ref))
	return nil
}

// Back returns from Booking or FullStudy to Pricing. The captured
// profile stays; only a close discards it.
func (s *Session) Back() error {
	if s.panel != PanelBooking && s.panel != PanelFullStudy {
		return fmt.Errorf("cannot go back from %s", s.panel)
	}
	s.panel = PanelPricing
	return nil
}

// Close fully resets the session regardless of the current panel. All
// close triggers (close control, cancel key, click outside the modal)
// must route here so none of them can leave a half-reset session.
// Closing a closed session is a no-op.
func (s *Session) Close() {
	if !s.open {
		return
	}
	s.log.Info("wizard closed", zap.String("ref", s.ref), zap.String("panel", s.panel.String()))
	s.reset()
}

func (s *Session) reset() {
	s.panel = PanelNone
	s.study = catalog.Study{}
	s.open = false
	s.data = lead.Onboarding{}
	s.ref = ""
}

// Panel reports the currently visible panel, PanelNone when closed.
func (s *Session) Panel() Panel {
	return s.panel
}

// Visible reports whether the given panel is the one on screen.
func (s *Session) Visible(p Panel) bool {
	return p != PanelNone && p == s.panel
}

// IsOpen reports whether any panel is visible.
func (s *Session) IsOpen() bool {
	return s.open
}

// Study returns the study this session was opened for.
func (s *Session) Study() (catalog.Study, bool) {
	return s.study, s.open
}

// Data returns the captured onboarding profile, zero until Submit.
func (s *Session) Data() lead.Onboarding {
	return s.data
}

// Reference is the per-session lead reference attached to outbound
// artifacts, empty when closed.
func (s *Session) Reference() string {
	return s.ref
}
