package voice

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

const (
	report_dialer_place_call = "dialer.place-call"
)

var ErrNoForwardingNumber = errors.New("voice: no forwarding number set")

var phoneNumberPattern = regexp.MustCompile(`^\(?\b[0-9]{3}\)?[-. ]?[0-9]{3}[-. ]?[0-9]{4}\b$`)

// ValidPhoneNumber matches a 10 digit number such as 555-555-5555 or (555) 555 5555.
func ValidPhoneNumber(number string) bool {
	return phoneNumberPattern.MatchString(number)
}

// Dialer places calls that the backend bridges: it first rings
// ForwardingNumber, then connects it to the number being called.
type Dialer struct {
	session *Session

	ForwardingNumber string
	// PhoneType is sent along when non-empty, see PhoneNumber.Type.
	PhoneType string
}

func NewDialer(session *Session, forwardingNumber, phoneType string) Dialer {
	return Dialer{
		session:          session,
		ForwardingNumber: forwardingNumber,
		PhoneType:        phoneType,
	}
}

// PlaceCall asks the backend to connect ForwardingNumber to `number` and
// returns the raw response body. There is no success flag, the body is
// passed on for the caller to interpret.
func (d Dialer) PlaceCall(ctx context.Context, number string) (string, error) {
	err := d.session.requireLogin()
	if err != nil {
		return "", err
	}
	if d.ForwardingNumber == "" {
		return "", ErrNoForwardingNumber
	}

	form := map[string]string{
		"outgoingNumber":   number,
		"forwardingNumber": d.ForwardingNumber,
		"subscriberNumber": "undefined",
		"remember":         "0",
		"_rnr_se":          d.session.Token,
	}
	if d.PhoneType != "" {
		form["phoneType"] = d.PhoneType
	}

	body, err := postForm(ctx, d.session.Http, d.session.endpoints.CallConnect, form)
	if err != nil {
		d.session.tel.ReportBroken(
			report_dialer_place_call,
			fmt.Errorf("fetch: %w", err),
			number,
		)
		return "", err
	}
	return string(body), nil
}
