package commands

import (
	"context"
	"fmt"
	"strings"

	"gvmass/internal/outreach"
	"gvmass/internal/scrapers/voice"
	"gvmass/internal/selection"

	"github.com/charmbracelet/huh"
)

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func promptCredentials(ctx context.Context, email, password *string) error {
	var fields []huh.Field
	if *email == "" {
		fields = append(fields, huh.NewInput().
			Title("Email").
			Value(email).
			Validate(required("email")))
	}
	if *password == "" {
		fields = append(fields, huh.NewInput().
			Title("Password").
			EchoMode(huh.EchoModePassword).
			Value(password).
			Validate(required("password")))
	}
	if len(fields) == 0 {
		return nil
	}

	err := huh.NewForm(huh.NewGroup(fields...)).RunWithContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to get credentials: %w", err)
	}
	return nil
}

func promptGroup(ctx context.Context, sel *selection.Selection) error {
	var options []huh.Option[int]
	for _, g := range sel.Groups() {
		options = append(options, huh.NewOption(fmt.Sprintf("%s (%d)", g.Label, g.Size), g.Index))
	}

	var index int
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Which group do you want to contact?").
				Options(options...).
				Value(&index),
		),
	)
	err := form.RunWithContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to get group: %w", err)
	}
	return sel.SelectGroup(index)
}

// only an empty answer ends the exclusion loop, input without numbers
// removes nothing and prompts again
func exclusionsDone(input string) bool {
	return strings.TrimSpace(input) == ""
}

// promptExclusions lists the selected contacts until the operator stops
// removing any.
func promptExclusions(ctx context.Context, sel *selection.Selection) error {
	for {
		contacts := sel.Contacts()
		fmt.Println(titleStyle.Render(sel.Label()))
		renderContacts(contacts)
		if len(contacts) == 0 {
			return nil
		}

		var input string
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Contacts to remove").
					Description("Enter the numbers of the contacts to leave out, or nothing to continue.").
					Value(&input),
			),
		)
		err := form.RunWithContext(ctx)
		if err != nil {
			return fmt.Errorf("failed to get exclusions: %w", err)
		}

		if exclusionsDone(input) {
			return nil
		}
		sel.Remove(selection.ParseIndices(input)...)
	}
}

func promptMessage(ctx context.Context, recipients int) (string, error) {
	var message string
	confirmed := false
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("Message").
				Value(&message).
				Validate(required("message")),
			huh.NewConfirm().
				Title(fmt.Sprintf("Send to %d contacts?", recipients)).
				Value(&confirmed),
		),
	)
	err := form.RunWithContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get message: %w", err)
	}
	if !confirmed {
		return "", nil
	}
	return message, nil
}

const otherPhone = -1

func validPhone(s string) error {
	if !voice.ValidPhoneNumber(s) {
		return fmt.Errorf("enter a 10 digit phone number, ex. 555-555-5555")
	}
	return nil
}

// promptForwarding picks the phone that is rung first on every call, either
// one registered on the account or one typed in.
func promptForwarding(ctx context.Context, phones []voice.PhoneNumber) (voice.PhoneNumber, error) {
	var options []huh.Option[int]
	for i, p := range phones {
		options = append(options, huh.NewOption(p.String(), i))
	}
	options = append(options, huh.NewOption("Other", otherPhone))

	choice := otherPhone
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Which phone should ring first?").
				Options(options...).
				Value(&choice),
		),
	)
	err := form.RunWithContext(ctx)
	if err != nil {
		return voice.PhoneNumber{}, fmt.Errorf("failed to get forwarding number: %w", err)
	}
	if choice != otherPhone {
		return phones[choice], nil
	}

	var number string
	form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Forwarding number").
				Value(&number).
				Validate(validPhone),
		),
	)
	err = form.RunWithContext(ctx)
	if err != nil {
		return voice.PhoneNumber{}, fmt.Errorf("failed to get forwarding number: %w", err)
	}
	return voice.PhoneNumber{Name: "Other", Number: number}, nil
}

func decideCall(ctx context.Context, contact voice.Contact) (outreach.Decision, error) {
	decision := outreach.Proceed
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[outreach.Decision]().
				Title(fmt.Sprintf("Call %s (%s)?", contact.String(), contact.Mobile)).
				Options(
					huh.NewOption("Call", outreach.Proceed),
					huh.NewOption("Skip", outreach.Skip),
					huh.NewOption("Quit", outreach.Quit),
				).
				Value(&decision),
		),
	)
	err := form.RunWithContext(ctx)
	if err != nil {
		return outreach.Quit, fmt.Errorf("failed to get call decision: %w", err)
	}
	return decision, nil
}
