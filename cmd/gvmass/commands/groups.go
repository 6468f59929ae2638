package commands

import (
	"gvmass/internal/selection"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(groupsCmd)
}

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "Lists the contact groups of the account.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := login(cmd.Context())
		if err != nil {
			return err
		}
		dir, err := loadSelection(cmd.Context(), session)
		if err != nil {
			return err
		}
		renderGroups(selection.New(dir).Groups())
		return nil
	},
}
