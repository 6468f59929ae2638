package commands

import (
	"fmt"

	"gvmass/internal/scrapers/voice"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(phonesCmd)
}

var phonesCmd = &cobra.Command{
	Use:   "phones",
	Short: "Lists the phones registered on the account, any of them can be used as a forwarding number.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := login(cmd.Context())
		if err != nil {
			return err
		}
		phones, err := voice.LoadPhones(cmd.Context(), session)
		if err != nil {
			return fmt.Errorf("failed to load phones: %w", err)
		}
		if len(phones) == 0 {
			fmt.Println(warningStyle.Render("No phones are registered on this account."))
			return nil
		}
		renderPhones(phones)
		return nil
	},
}
