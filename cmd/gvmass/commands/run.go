package commands

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(runCmd)
}

type mode string

const (
	modeText mode = "text"
	modeCall mode = "call"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Logs in, then asks whether to text or call a group.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		fmt.Println(titleStyle.Render("gvmass"))

		session, err := login(ctx)
		if err != nil {
			return err
		}
		fmt.Println(successStyle.Render("Logged in as " + session.Username))

		choice := modeText
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[mode]().
					Title("What would you like to do?").
					Options(
						huh.NewOption("Send a mass text", modeText),
						huh.NewOption("Start a call chain", modeCall),
					).
					Value(&choice),
			),
		)
		err = form.RunWithContext(ctx)
		if err != nil {
			return fmt.Errorf("failed to get mode: %w", err)
		}

		if choice == modeCall {
			return callFlow(ctx, session)
		}
		return textFlow(ctx, session)
	},
}
