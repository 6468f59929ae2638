package voice

import (
	"context"
	"fmt"
	"strings"
)

const (
	report_messenger_send = "messenger.send"
)

type Messenger struct {
	session *Session
}

func NewMessenger(session *Session) Messenger {
	return Messenger{session: session}
}

// Send texts `text` to `number`. The backend has no structured reply for
// this, a send counts as successful when the response body contains "true"
// anywhere.
func (m Messenger) Send(ctx context.Context, number, text string) (bool, error) {
	err := m.session.requireLogin()
	if err != nil {
		return false, err
	}

	body, err := postForm(ctx, m.session.Http, m.session.endpoints.SmsSend, map[string]string{
		"_rnr_se":     m.session.Token,
		"phoneNumber": number,
		"text":        text,
	})
	if err != nil {
		m.session.tel.ReportBroken(
			report_messenger_send,
			fmt.Errorf("fetch: %w", err),
			number,
		)
		return false, err
	}

	ok := sendSucceeded(body)
	if !ok {
		m.session.tel.ReportWarning(report_messenger_send, "send rejected", number, string(body))
	}
	return ok, nil
}

func sendSucceeded(body []byte) bool {
	return strings.Contains(string(body), "true")
}
