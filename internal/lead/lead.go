// Package lead holds the visitor data captured by the wizard and
// shapes it into outbound artifacts: a mail link, hidden form fields,
// and a prefilled booking URL. Nothing here performs I/O; artifacts are
// values handed to whatever surface presents them.
package lead

import (
	"fmt"
	"net/url"
	"strings"
)

// Onboarding is the profile collected once per wizard session. The
// fields are free text, captured as typed; validation beyond presence
// is deliberately not this package's business.
type Onboarding struct {
	Name        string
	Email       string
	Company     string
	Experience  string
	CompanyType string
	Position    string
	Geography   string
	Usage       string
}

// IsZero reports whether nothing has been captured.
func (o Onboarding) IsZero() bool {
	return o == Onboarding{}
}

// Field is one hidden form field, ordered for stable submission.
type Field struct {
	Name  string
	Value string
}

// FormFields flattens the captured profile, the selected study's
// title, and the session reference into the hidden fields an external
// form processor expects.
func FormFields(o Onboarding, studyTitle, ref string) []Field {
	return []Field{
		{Name: "study_title", Value: studyTitle},
		{Name: "lead_ref", Value: ref},
		{Name: "name", Value: o.Name},
		{Name: "email", Value: o.Email},
		{Name: "company", Value: o.Company},
		{Name: "experience", Value: o.Experience},
		{Name: "company_type", Value: o.CompanyType},
		{Name: "position", Value: o.Position},
		{Name: "geography", Value: o.Geography},
		{Name: "usage", Value: o.Usage},
	}
}

// MailLink builds the mailto target for a full-study request, with the
// study title percent-encoded into the subject.
func MailLink(recipient, studyTitle string) string {
	subject := "Full study request: " + studyTitle
	return "mailto:" + recipient + "?subject=" + escape(subject)
}

// escape percent-encodes the way browsers do for URI components:
// spaces become %20, never +, so mail clients keep the subject intact.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// BookingURL merges the visitor's name and email into the configured
// booking endpoint so the calendar form arrives prefilled.
func BookingURL(base string, o Onboarding) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("invalid booking URL %q: %w", base, err)
	}
	q := u.Query()
	q.Set("name", o.Name)
	q.Set("email", o.Email)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
