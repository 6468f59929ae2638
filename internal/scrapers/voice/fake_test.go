package voice

import (
	_ "embed"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/mazen160/go-random"
)

var (
	//go:embed testdata/login_page.html
	loginPageFixture string
	//go:embed testdata/home_page.html
	homePageFixture string
	//go:embed testdata/signed_out_page.html
	signedOutPageFixture string
	//go:embed testdata/contact_manager.html
	contactManagerFixture string
	//go:embed testdata/contacts.csv
	contactsFixture string
	//go:embed testdata/phones_cdata.html
	phonesCdataFixture string
	//go:embed testdata/phones_flat.html
	phonesFlatFixture string
)

const (
	fakeEmail    = "someone@example.com"
	fakePassword = "correct horse"
)

func mustRandom(t testing.TB, n int) string {
	value, err := random.String(n)
	if err != nil {
		t.Fatal(err)
	}
	return value
}

// fakeVoice is an in-process stand-in for the login, contacts, phone
// settings, sms and call endpoints.
type fakeVoice struct {
	t      testing.TB
	server *httptest.Server

	galx         string
	sid          string
	token        string
	contactToken string

	// omitGalx serves a login page without the GALX input.
	omitGalx bool
	// omitContactToken serves a contacts manager page without `var tok`.
	omitContactToken bool
	// export is served by the contacts export endpoint.
	export string
	// phonesPage is served by the phone settings endpoint.
	phonesPage string
	// smsReply is the body returned by the sms endpoint.
	smsReply string
	// callReply is the body returned by the call endpoint.
	callReply string

	mu        sync.Mutex
	smsForms  []url.Values
	callForms []url.Values
	exports   []url.Values
}

func newFakeVoice(t testing.TB) *fakeVoice {
	f := &fakeVoice{
		t:            t,
		galx:         mustRandom(t, 16),
		sid:          mustRandom(t, 24),
		token:        mustRandom(t, 20),
		contactToken: mustRandom(t, 20),
		export:       contactsFixture,
		phonesPage:   phonesCdataFixture,
		smsReply:     `{"ok":true,"data":{"code":0}}`,
		callReply:    `{"ok":true,"data":{"code":0}}`,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /ServiceLogin", f.handleLoginPage)
	mux.HandleFunc("POST /ServiceLoginAuth", f.handleAuthenticate)
	mux.HandleFunc("GET /voice/", f.handleHome)
	mux.HandleFunc("GET /voice/c/u/{username}/ui/ContactManager", f.handleContactManager)
	mux.HandleFunc("GET /export", f.handleExport)
	mux.HandleFunc("GET /voice/settings/tab/phones", f.handlePhones)
	mux.HandleFunc("POST /voice/sms/send/", f.handleSms)
	mux.HandleFunc("POST /voice/call/connect/", f.handleCall)

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeVoice) endpoints() Endpoints {
	base := f.server.URL
	return Endpoints{
		LoginPage:      base + "/ServiceLogin",
		Authenticate:   base + "/ServiceLoginAuth",
		Continue:       base + "/voice/",
		Home:           base + "/voice/",
		ContactManager: base + "/voice/c/u/{username}/ui/ContactManager",
		ContactsExport: base + "/export",
		PhoneSettings:  base + "/voice/settings/tab/phones",
		SmsSend:        base + "/voice/sms/send/",
		CallConnect:    base + "/voice/call/connect/",
	}
}

func (f *fakeVoice) signedIn(r *http.Request) bool {
	cookie, err := r.Cookie("SID")
	return err == nil && cookie.Value == f.sid
}

func (f *fakeVoice) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	page := strings.ReplaceAll(loginPageFixture, "{{galx}}", f.galx)
	if f.omitGalx {
		page = strings.ReplaceAll(page, `name="GALX"`, `name="unrelated"`)
	}
	w.Write([]byte(page))
}

func (f *fakeVoice) handleAuthenticate(w http.ResponseWriter, r *http.Request) {
	err := r.ParseForm()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if r.PostForm.Get("Email") != fakeEmail || r.PostForm.Get("Passwd") != fakePassword {
		w.Write([]byte(strings.ReplaceAll(loginPageFixture, "{{galx}}", f.galx)))
		return
	}
	if !f.omitGalx && r.PostForm.Get("GALX") != f.galx {
		http.Error(w, "bad GALX", http.StatusForbidden)
		return
	}
	http.SetCookie(w, &http.Cookie{Name: "SID", Value: f.sid, Path: "/"})
	http.Redirect(w, r, r.PostForm.Get("continue"), http.StatusSeeOther)
}

func (f *fakeVoice) handleHome(w http.ResponseWriter, r *http.Request) {
	if !f.signedIn(r) {
		w.Write([]byte(signedOutPageFixture))
		return
	}
	w.Write([]byte(strings.ReplaceAll(homePageFixture, "{{token}}", f.token)))
}

func (f *fakeVoice) handleContactManager(w http.ResponseWriter, r *http.Request) {
	if !f.signedIn(r) {
		http.Error(w, "signed out", http.StatusUnauthorized)
		return
	}
	if r.PathValue("username") != "someone" {
		http.NotFound(w, r)
		return
	}
	if f.omitContactToken {
		w.Write([]byte(signedOutPageFixture))
		return
	}
	w.Write([]byte(strings.ReplaceAll(contactManagerFixture, "{{tok}}", f.contactToken)))
}

func (f *fakeVoice) handleExport(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	f.mu.Lock()
	f.exports = append(f.exports, query)
	f.mu.Unlock()

	if !f.signedIn(r) || query.Get("tok") != f.contactToken {
		http.Error(w, "bad token", http.StatusForbidden)
		return
	}
	w.Header().Set("content-type", "text/csv")
	w.Write([]byte(f.export))
}

func (f *fakeVoice) handlePhones(w http.ResponseWriter, r *http.Request) {
	if !f.signedIn(r) {
		http.Error(w, "signed out", http.StatusUnauthorized)
		return
	}
	w.Write([]byte(f.phonesPage))
}

func (f *fakeVoice) handleSms(w http.ResponseWriter, r *http.Request) {
	err := r.ParseForm()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	f.mu.Lock()
	f.smsForms = append(f.smsForms, r.PostForm)
	f.mu.Unlock()

	if r.PostForm.Get("_rnr_se") != f.token {
		w.Write([]byte(`{"ok":false}`))
		return
	}
	w.Write([]byte(f.smsReply))
}

func (f *fakeVoice) handleCall(w http.ResponseWriter, r *http.Request) {
	err := r.ParseForm()
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	f.mu.Lock()
	f.callForms = append(f.callForms, r.PostForm)
	f.mu.Unlock()
	w.Write([]byte(f.callReply))
}
