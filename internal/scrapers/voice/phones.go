package voice

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

const (
	report_phones_load = "phones.load"
)

type PhoneNumber struct {
	Name   string
	Number string
	// Type is the backend's phone type discriminator, it is empty when the
	// page did not expose one.
	Type string
}

func (p PhoneNumber) String() string {
	return fmt.Sprintf("%s (%s)", p.Name, p.Number)
}

var (
	phoneSettingsPattern = regexp.MustCompile(`(?s)<json><!\[CDATA\[(.*?)\]\]></json>`)
	phoneEntryPattern    = regexp.MustCompile(`"name":"([^"]+)","phoneNumber":"([^"]+)"`)
)

type phoneSettings struct {
	Phones map[string]struct {
		Name        string          `json:"name"`
		PhoneNumber string          `json:"phoneNumber"`
		Type        json.RawMessage `json:"type"`
	} `json:"phones"`
}

func scalarString(raw json.RawMessage) string {
	raw = json.RawMessage(strings.TrimSpace(string(raw)))
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if json.Unmarshal(raw, &s) == nil {
			return s
		}
	}
	return string(raw)
}

// numeric ids sort before anything else, by value
func comparePhoneIds(a, b string) int {
	an, aerr := strconv.Atoi(a)
	bn, berr := strconv.Atoi(b)
	switch {
	case aerr == nil && berr == nil:
		return cmp.Compare(an, bn)
	case aerr == nil:
		return -1
	case berr == nil:
		return 1
	}
	return strings.Compare(a, b)
}

// ParsePhones reads the registered phone numbers off the phone settings page.
//
// newer pages carry a JSON blob in <json><![CDATA[...]]></json>, older ones
// only have flat "name":"...","phoneNumber":"..." pairs. the blob wins when
// both are present.
func ParsePhones(body []byte) ([]PhoneNumber, error) {
	groups := phoneSettingsPattern.FindSubmatch(body)
	if len(groups) >= 2 {
		var settings phoneSettings
		err := json.Unmarshal(groups[1], &settings)
		if err != nil {
			return nil, fmt.Errorf("unmarshal phone settings: %w", err)
		}

		ids := make([]string, 0, len(settings.Phones))
		for id := range settings.Phones {
			ids = append(ids, id)
		}
		slices.SortFunc(ids, comparePhoneIds)

		out := make([]PhoneNumber, 0, len(ids))
		for _, id := range ids {
			phone := settings.Phones[id]
			out = append(out, PhoneNumber{
				Name:   phone.Name,
				Number: phone.PhoneNumber,
				Type:   scalarString(phone.Type),
			})
		}
		return out, nil
	}

	var out []PhoneNumber
	for _, match := range phoneEntryPattern.FindAllSubmatch(body, -1) {
		out = append(out, PhoneNumber{
			Name:   string(match[1]),
			Number: string(match[2]),
		})
	}
	return out, nil
}

// LoadPhones fetches the phone numbers registered on the account, these are
// the candidates for a call's forwarding number.
func LoadPhones(ctx context.Context, session *Session) ([]PhoneNumber, error) {
	err := session.requireLogin()
	if err != nil {
		return nil, err
	}

	body, err := fetch(ctx, session.Http, session.endpoints.PhoneSettings)
	if err != nil {
		session.tel.ReportBroken(
			report_phones_load,
			fmt.Errorf("fetch: %w", err),
		)
		return nil, err
	}

	phones, err := ParsePhones(body)
	if err != nil {
		session.tel.ReportBroken(report_phones_load, err)
		return nil, err
	}
	if len(phones) == 0 {
		session.tel.ReportWarning(
			report_phones_load,
			fmt.Errorf("no phone numbers found on settings page"),
		)
	}
	session.tel.ReportCount(report_phones_load, int64(len(phones)))

	return phones, nil
}
