package commands

import (
	"context"
	"fmt"

	"gvmass/internal/outreach"
	"gvmass/internal/scrapers/voice"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(callCmd)
}

var callCmd = &cobra.Command{
	Use:   "call",
	Short: "Calls every contact in a group one after another.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := login(cmd.Context())
		if err != nil {
			return err
		}
		return callFlow(cmd.Context(), session)
	},
}

func callFlow(ctx context.Context, session *voice.Session) error {
	sel, err := pickContacts(ctx, session)
	if err != nil {
		return err
	}
	contacts := contactsOf(sel)
	if len(contacts) == 0 {
		fmt.Println(warningStyle.Render("No contacts left to call."))
		return nil
	}

	phones, err := voice.LoadPhones(ctx, session)
	if err != nil {
		return fmt.Errorf("failed to load phones: %w", err)
	}
	forward, err := promptForwarding(ctx, phones)
	if err != nil {
		return err
	}
	dialer := voice.NewDialer(session, forward.Number, forward.Type)

	fmt.Println(infoStyle.Render(fmt.Sprintf("Each call will ring %s first.", forward.String())))
	results, err := outreach.CallAll(ctx, dialer, contacts, decideCall, outreach.CallOptions{
		Telemetry: tel,
		OnResult:  printCallResult,
	})
	placed := 0
	for _, r := range results {
		if !r.Skipped {
			placed++
		}
	}
	fmt.Println(infoStyle.Render(fmt.Sprintf("Placed %d of %d calls.", placed, len(contacts))))
	return err
}

func printCallResult(r outreach.CallResult) {
	if r.Skipped {
		fmt.Println(warningStyle.Render(fmt.Sprintf("Skipped %s.", r.Contact.String())))
		return
	}
	fmt.Println(successStyle.Render(fmt.Sprintf("Calling %s: %s", r.Contact.String(), r.Response)))
}
