// Package outreach walks a list of contacts and texts or calls each of them.
package outreach

import (
	"context"
	"time"

	"gvmass/internal/components/assert"
	"gvmass/internal/components/telemetry"
	"gvmass/internal/scrapers/voice"

	"golang.org/x/time/rate"
)

const (
	report_text_all_send       = "text-all.send"
	report_text_all_no_mobile  = "text-all.no-mobile"
	report_text_all_sent       = "text-all.sent"
	report_call_all_place_call = "call-all.place-call"
	report_call_all_no_mobile  = "call-all.no-mobile"
	report_call_all_placed     = "call-all.placed"
)

// DefaultSendInterval is the pause between two texts.
const DefaultSendInterval = time.Second * 5

type Sender interface {
	Send(ctx context.Context, number, text string) (bool, error)
}

type Caller interface {
	PlaceCall(ctx context.Context, number string) (string, error)
}

type TextResult struct {
	Contact voice.Contact
	// Skipped is set for contacts without a mobile number, nothing was sent.
	Skipped bool
	Sent    bool
}

type TextOptions struct {
	// Interval is the minimum time between two sends, zero means
	// DefaultSendInterval and a negative value disables pacing.
	Interval time.Duration
	// OnResult is called after each contact, it may be nil.
	OnResult  func(TextResult)
	Telemetry telemetry.API
}

func newLimiter(interval time.Duration) *rate.Limiter {
	if interval == 0 {
		interval = DefaultSendInterval
	}
	if interval < 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	return rate.NewLimiter(rate.Every(interval), 1)
}

// TextAll sends `text` to every contact with a mobile number, waiting
// opts.Interval between sends. A rejected send is reported and the loop goes
// on, a transport error stops it. The results gathered so far are returned
// alongside any error.
func TextAll(ctx context.Context, sender Sender, contacts []voice.Contact, text string, opts TextOptions) ([]TextResult, error) {
	assert.NotNil(opts.Telemetry)
	tel := telemetry.NewScopedAPI("outreach", opts.Telemetry)
	limiter := newLimiter(opts.Interval)

	results := make([]TextResult, 0, len(contacts))
	sent := 0
	defer func() {
		tel.ReportCount(report_text_all_sent, int64(sent))
	}()

	for _, contact := range contacts {
		result := TextResult{Contact: contact}
		if contact.Mobile == "" {
			tel.ReportWarning(report_text_all_no_mobile, contact.String())
			result.Skipped = true
		} else {
			err := limiter.Wait(ctx)
			if err != nil {
				return results, err
			}
			ok, err := sender.Send(ctx, contact.Mobile, text)
			if err != nil {
				tel.ReportBroken(report_text_all_send, err, contact.String())
				return results, err
			}
			if !ok {
				tel.ReportWarning(report_text_all_send, "send rejected", contact.String())
			} else {
				sent++
			}
			result.Sent = ok
		}

		results = append(results, result)
		if opts.OnResult != nil {
			opts.OnResult(result)
		}
	}
	return results, nil
}

type Decision int

const (
	Proceed Decision = iota
	Skip
	Quit
)

func (d Decision) String() string {
	switch d {
	case Proceed:
		return "proceed"
	case Skip:
		return "skip"
	case Quit:
		return "quit"
	}
	return "unknown"
}

// Decide is asked before every call, ex. to let the operator hang up the
// previous call first.
type Decide func(ctx context.Context, contact voice.Contact) (Decision, error)

type CallResult struct {
	Contact voice.Contact
	Skipped bool
	// Response is the backend's raw reply, it is empty for skipped contacts.
	Response string
}

type CallOptions struct {
	// OnResult is called after each contact, it may be nil.
	OnResult  func(CallResult)
	Telemetry telemetry.API
}

// CallAll calls the contacts one at a time, asking `decide` before each one.
// Contacts without a mobile number are skipped without asking. Quit ends the
// loop without error.
func CallAll(ctx context.Context, caller Caller, contacts []voice.Contact, decide Decide, opts CallOptions) ([]CallResult, error) {
	assert.NotNil(opts.Telemetry)
	assert.NotNil(decide)
	tel := telemetry.NewScopedAPI("outreach", opts.Telemetry)

	results := make([]CallResult, 0, len(contacts))
	placed := 0
	defer func() {
		tel.ReportCount(report_call_all_placed, int64(placed))
	}()

	for _, contact := range contacts {
		err := ctx.Err()
		if err != nil {
			return results, err
		}

		result := CallResult{Contact: contact}
		if contact.Mobile == "" {
			tel.ReportWarning(report_call_all_no_mobile, contact.String())
			result.Skipped = true
		} else {
			decision, err := decide(ctx, contact)
			if err != nil {
				return results, err
			}
			switch decision {
			case Quit:
				return results, nil
			case Skip:
				result.Skipped = true
			default:
				response, err := caller.PlaceCall(ctx, contact.Mobile)
				if err != nil {
					tel.ReportBroken(report_call_all_place_call, err, contact.String())
					return results, err
				}
				result.Response = response
				placed++
			}
		}

		results = append(results, result)
		if opts.OnResult != nil {
			opts.OnResult(result)
		}
	}
	return results, nil
}
