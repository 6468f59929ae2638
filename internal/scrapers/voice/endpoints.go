package voice

import (
	"net/url"
	"strings"

	"gvmass/internal/components/assert"

	"dario.cat/mergo"
)

// Endpoints are the backend URLs the client talks to. They are not a stable
// API, any of them can be overridden from config when the service moves.
type Endpoints struct {
	LoginPage    string `json:"login_page"`
	Authenticate string `json:"authenticate"`
	// Continue is sent as the `continue` form field, the backend redirects here after signing in.
	Continue string `json:"continue"`
	Home     string `json:"home"`
	// ContactManager may contain a `{username}` placeholder.
	ContactManager string `json:"contact_manager"`
	ContactsExport string `json:"contacts_export"`
	PhoneSettings  string `json:"phone_settings"`
	SmsSend        string `json:"sms_send"`
	CallConnect    string `json:"call_connect"`
}

const usernamePlaceholder = "{username}"

func DefaultEndpoints() Endpoints {
	return Endpoints{
		LoginPage:      "https://accounts.google.com/ServiceLogin?service=grandcentral",
		Authenticate:   "https://accounts.google.com/ServiceLoginAuth?service=grandcentral",
		Continue:       "https://www.google.com/voice/account/signin",
		Home:           "https://www.google.com/voice/",
		ContactManager: "https://www.google.com/voice/c/u/{username}/ui/ContactManager",
		ContactsExport: "https://mail.google.com/mail/c/u/0/data/export",
		PhoneSettings:  "https://www.google.com/voice/settings/tab/phones",
		SmsSend:        "https://www.google.com/voice/sms/send/",
		CallConnect:    "https://www.google.com/voice/call/connect/",
	}
}

// withDefaults fills every empty endpoint from DefaultEndpoints.
func (e Endpoints) withDefaults() (Endpoints, error) {
	out := e
	err := mergo.Merge(&out, DefaultEndpoints())
	if err != nil {
		return out, err
	}
	for _, endpoint := range out.all() {
		assert.NotEmptyStr(endpoint)
	}
	return out, nil
}

func (e Endpoints) all() []string {
	return []string{
		e.LoginPage,
		e.Authenticate,
		e.Continue,
		e.Home,
		e.ContactManager,
		e.ContactsExport,
		e.PhoneSettings,
		e.SmsSend,
		e.CallConnect,
	}
}

func (e Endpoints) contactManagerFor(username string) string {
	return strings.ReplaceAll(e.ContactManager, usernamePlaceholder, url.PathEscape(username))
}
