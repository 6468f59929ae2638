package commands

import (
	"fmt"

	"gvmass/internal/scrapers/voice"

	"github.com/spf13/cobra"
)

var (
	dialForward   *string
	dialPhoneType *string
)

func init() {
	dialForward = dialCmd.Flags().StringP("forward", "f", "", "The phone to ring first.")
	dialPhoneType = dialCmd.Flags().String("phone-type", "", "The type of the forwarding phone, see the phones command.")
	dialCmd.MarkFlagRequired("forward")
	rootCmd.AddCommand(dialCmd)
}

var dialCmd = &cobra.Command{
	Use:   "dial <number> --forward <number>",
	Short: "Places a single call.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		number := args[0]
		for _, n := range []string{number, *dialForward} {
			err := validPhone(n)
			if err != nil {
				return fmt.Errorf("%s: %w", n, err)
			}
		}

		session, err := login(cmd.Context())
		if err != nil {
			return err
		}
		res, err := voice.NewDialer(session, *dialForward, *dialPhoneType).PlaceCall(cmd.Context(), number)
		if err != nil {
			return fmt.Errorf("failed to place call: %w", err)
		}
		fmt.Println(successStyle.Render("Calling " + number + ": " + res))
		return nil
	},
}
