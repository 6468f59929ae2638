// client.go contains the session login flow, every other request in this
// package rides on the cookie jar and tokens it produces.

package voice

import (
	"context"
	"errors"
	"fmt"
	"net/http/cookiejar"
	"regexp"
	"strings"
	"time"

	"gvmass/internal/components/assert"
	"gvmass/internal/components/telemetry"
	"gvmass/lib/restyutil"
	"gvmass/lib/scrape"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
)

const (
	report_client_login         = "client.login"
	report_client_login_form    = "client.login-form"
	report_client_contact_token = "client.contact-token"
)

var (
	ErrNotLoggedIn      = errors.New("voice: session is not logged in")
	ErrUnexpectedStatus = errors.New("voice: unexpected http status")
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

var (
	galxPattern         = regexp.MustCompile(`(?i)name="GALX"\s*value="([^"]+)"`)
	sessionTokenPattern = regexp.MustCompile(`name="_rnr_se".*?value="(.*?)"`)
	contactTokenPattern = regexp.MustCompile(`(?i)var\s+tok\s*=\s*'([^']+)'`)
)

// Extractors pull the three tokens the login flow needs out of page bodies.
// A nil field falls back to the default extractor for that token.
type Extractors struct {
	// LoginForm finds the anti-forgery value on the sign-in page.
	LoginForm scrape.Extractor
	// SessionToken finds the per-session authorization token on the home page.
	SessionToken scrape.Extractor
	// ContactToken finds the access token for the contact export on the contacts manager page.
	ContactToken scrape.Extractor
}

func DefaultExtractors() Extractors {
	return Extractors{
		LoginForm:    scrape.FirstOf(scrape.InputValue("GALX"), scrape.Regex(galxPattern)),
		SessionToken: scrape.FirstOf(scrape.InputValue("_rnr_se"), scrape.Regex(sessionTokenPattern)),
		ContactToken: scrape.FirstOf(scrape.Script(contactTokenPattern), scrape.Regex(contactTokenPattern)),
	}
}

func (e Extractors) withDefaults() Extractors {
	defaults := DefaultExtractors()
	if e.LoginForm == nil {
		e.LoginForm = defaults.LoginForm
	}
	if e.SessionToken == nil {
		e.SessionToken = defaults.SessionToken
	}
	if e.ContactToken == nil {
		e.ContactToken = defaults.ContactToken
	}
	return e
}

type ClientOptions struct {
	Email    string
	Password string

	// Endpoints left empty take the value from DefaultEndpoints.
	Endpoints  Endpoints
	Extractors Extractors

	UserAgent string
	// Timeout applies to each request, defaults to 30 seconds.
	Timeout          time.Duration
	CloudflareBypass bool
	// Dump receives every HTTP exchange when set.
	Dump restyutil.Output

	Telemetry telemetry.API
}

// Session is the result of a login attempt. Token and ContactToken are only
// populated when Authenticated is true. A Session is not modified after
// Login returns.
type Session struct {
	Authenticated bool
	Token         string
	ContactToken  string
	Username      string
	Http          *resty.Client

	endpoints Endpoints
	tel       telemetry.API
}

func (s *Session) requireLogin() error {
	if s == nil || !s.Authenticated {
		return ErrNotLoggedIn
	}
	return nil
}

func newHttpClient(opts ClientOptions, tel telemetry.API) (*resty.Client, error) {
	httpClient := resty.New()
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	httpClient.SetCookieJar(jar)
	if opts.CloudflareBypass {
		httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	httpClient.SetHeader("user-agent", userAgent)

	// the login flow bounces between the accounts host and the voice host
	httpClient.SetRedirectPolicy(resty.FlexibleRedirectPolicy(10))

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = time.Second * 30
	}
	httpClient.SetTimeout(timeout)

	telemetry.InstrumentResty(httpClient, tel)
	if opts.Dump != nil {
		restyutil.DumpExchanges(httpClient, opts.Dump)
	}

	return httpClient, nil
}

func checkStatus(res *resty.Response) error {
	if res.IsError() {
		return fmt.Errorf("%w: %s %s", ErrUnexpectedStatus, res.Status(), res.Request.URL)
	}
	return nil
}

func fetch(ctx context.Context, client *resty.Client, endpoint string) ([]byte, error) {
	res, err := client.R().
		SetContext(ctx).
		Get(endpoint)
	if err != nil {
		return nil, err
	}
	err = checkStatus(res)
	if err != nil {
		return nil, err
	}
	return res.Body(), nil
}

func postForm(ctx context.Context, client *resty.Client, endpoint string, form map[string]string) ([]byte, error) {
	res, err := client.R().
		SetContext(ctx).
		SetFormData(form).
		Post(endpoint)
	if err != nil {
		return nil, err
	}
	err = checkStatus(res)
	if err != nil {
		return nil, err
	}
	return res.Body(), nil
}

func usernameOf(email string) string {
	username, _, _ := strings.Cut(email, "@")
	return username
}

// Login signs in with the given credentials. Rejected credentials are not an
// error, they produce a Session with Authenticated set to false. Errors are
// only returned for transport failures and non-2xx responses.
func Login(ctx context.Context, opts ClientOptions) (*Session, error) {
	assert.NotNil(opts.Telemetry)
	tel := telemetry.NewScopedAPI("voice", opts.Telemetry)

	loginError := func(err error) error {
		return fmt.Errorf("voice: login failed: %w", err)
	}

	endpoints, err := opts.Endpoints.withDefaults()
	if err != nil {
		return nil, loginError(err)
	}
	extractors := opts.Extractors.withDefaults()

	httpClient, err := newHttpClient(opts, tel)
	if err != nil {
		return nil, loginError(err)
	}

	loginPage, err := fetch(ctx, httpClient, endpoints.LoginPage)
	if err != nil {
		tel.ReportBroken(
			report_client_login,
			fmt.Errorf("login page request: %w", err),
		)
		return nil, loginError(err)
	}

	galx := scrape.OrEmpty(extractors.LoginForm, loginPage)
	if galx == "" {
		tel.ReportWarning(
			report_client_login_form,
			fmt.Errorf("could not find GALX on login page"),
		)
	}

	_, err = postForm(ctx, httpClient, endpoints.Authenticate, map[string]string{
		"Email":    opts.Email,
		"Passwd":   opts.Password,
		"continue": endpoints.Continue,
		"GALX":     galx,
	})
	if err != nil {
		tel.ReportBroken(
			report_client_login,
			fmt.Errorf("authenticate request: %w", err),
		)
		return nil, loginError(err)
	}

	home, err := fetch(ctx, httpClient, endpoints.Home)
	if err != nil {
		tel.ReportBroken(
			report_client_login,
			fmt.Errorf("home page request: %w", err),
		)
		return nil, loginError(err)
	}

	token, ok := extractors.SessionToken.Extract(home)
	if !ok {
		tel.ReportWarning(
			report_client_login,
			fmt.Errorf("could not find session token on home page"),
			usernameOf(opts.Email),
		)
		return &Session{
			Http:      httpClient,
			endpoints: endpoints,
			tel:       tel,
		}, nil
	}

	username := usernameOf(opts.Email)
	manager, err := fetch(ctx, httpClient, endpoints.contactManagerFor(username))
	if err != nil {
		tel.ReportBroken(
			report_client_contact_token,
			fmt.Errorf("contacts manager request: %w", err),
			username,
		)
		return nil, loginError(err)
	}

	contactToken := scrape.OrEmpty(extractors.ContactToken, manager)
	if contactToken == "" {
		tel.ReportWarning(
			report_client_contact_token,
			fmt.Errorf("could not find contact token on contacts manager page"),
			username,
		)
	}

	return &Session{
		Authenticated: true,
		Token:         token,
		ContactToken:  contactToken,
		Username:      username,
		Http:          httpClient,
		endpoints:     endpoints,
		tel:           tel,
	}, nil
}
