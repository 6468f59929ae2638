package commands

import (
	"context"
	"fmt"

	"gvmass/internal/outreach"
	"gvmass/internal/scrapers/voice"
	"gvmass/internal/selection"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(textCmd)
}

var textCmd = &cobra.Command{
	Use:   "text",
	Short: "Texts every contact in a group.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := login(cmd.Context())
		if err != nil {
			return err
		}
		return textFlow(cmd.Context(), session)
	},
}

func pickContacts(ctx context.Context, session *voice.Session) (*selection.Selection, error) {
	dir, err := loadSelection(ctx, session)
	if err != nil {
		return nil, err
	}
	sel := selection.New(dir)
	err = promptGroup(ctx, sel)
	if err != nil {
		return nil, err
	}
	err = promptExclusions(ctx, sel)
	if err != nil {
		return nil, err
	}
	return sel, nil
}

func contactsOf(sel *selection.Selection) []voice.Contact {
	indexed := sel.Contacts()
	out := make([]voice.Contact, len(indexed))
	for i, c := range indexed {
		out[i] = c.Contact
	}
	return out
}

func textFlow(ctx context.Context, session *voice.Session) error {
	sel, err := pickContacts(ctx, session)
	if err != nil {
		return err
	}
	contacts := contactsOf(sel)
	if len(contacts) == 0 {
		fmt.Println(warningStyle.Render("No contacts left to text."))
		return nil
	}

	message, err := promptMessage(ctx, len(contacts))
	if err != nil {
		return err
	}
	if message == "" {
		fmt.Println(infoStyle.Render("Cancelled, nothing was sent."))
		return nil
	}

	results, err := outreach.TextAll(ctx, voice.NewMessenger(session), contacts, message, outreach.TextOptions{
		Interval:  cfg.sendInterval(),
		Telemetry: tel,
		OnResult:  printTextResult,
	})
	sent := 0
	for _, r := range results {
		if r.Sent {
			sent++
		}
	}
	fmt.Println(infoStyle.Render(fmt.Sprintf("Sent %d of %d texts.", sent, len(contacts))))
	return err
}

func printTextResult(r outreach.TextResult) {
	switch {
	case r.Skipped:
		fmt.Println(warningStyle.Render(fmt.Sprintf("Skipped %s, no mobile number.", r.Contact.String())))
	case r.Sent:
		fmt.Println(successStyle.Render(fmt.Sprintf("Message sent to %s.", r.Contact.String())))
	default:
		fmt.Println(errorStyle.Render(fmt.Sprintf("Message to %s was not accepted.", r.Contact.String())))
	}
}
