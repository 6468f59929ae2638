package commands

import (
	"fmt"

	"gvmass/internal/scrapers/voice"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(sendCmd)
}

var sendCmd = &cobra.Command{
	Use:   "send <number> <text>",
	Short: "Sends a single text.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		number := args[0]
		err := validPhone(number)
		if err != nil {
			return err
		}

		session, err := login(cmd.Context())
		if err != nil {
			return err
		}
		ok, err := voice.NewMessenger(session).Send(cmd.Context(), number, args[1])
		if err != nil {
			return fmt.Errorf("failed to send text: %w", err)
		}
		if !ok {
			return fmt.Errorf("the text to %s was not accepted", number)
		}
		fmt.Println(successStyle.Render("Message sent to " + number + "."))
		return nil
	},
}
