package commands

import (
	"fmt"

	"gvmass/internal/selection"

	"github.com/spf13/cobra"
)

var contactsGroup *string

func init() {
	contactsGroup = contactsCmd.Flags().StringP("group", "g", "", "The group to list, prompts for one when empty.")
	rootCmd.AddCommand(contactsCmd)
}

var contactsCmd = &cobra.Command{
	Use:   "contacts [--group <label>]",
	Short: "Lists the contacts in a group.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		session, err := login(ctx)
		if err != nil {
			return err
		}
		dir, err := loadSelection(ctx, session)
		if err != nil {
			return err
		}
		sel := selection.New(dir)

		if *contactsGroup == "" {
			err = promptGroup(ctx, sel)
			if err != nil {
				return err
			}
		} else {
			index, ok := sel.FindGroup(*contactsGroup)
			if !ok {
				suggestion, found := sel.SuggestGroup(*contactsGroup)
				if found {
					return fmt.Errorf("no group named %q, did you mean %q?", *contactsGroup, suggestion)
				}
				return fmt.Errorf("no group named %q", *contactsGroup)
			}
			err = sel.SelectGroup(index)
			if err != nil {
				return err
			}
		}

		fmt.Println(titleStyle.Render(sel.Label()))
		renderContacts(sel.Contacts())
		return nil
	},
}
