package commands

import (
	"os"

	"gvmass/internal/scrapers/voice"
	"gvmass/internal/selection"

	"github.com/jedib0t/go-pretty/v6/table"
)

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}

func renderGroups(groups []selection.IndexedGroup) {
	t := newTable()
	t.AppendHeader(table.Row{"#", "Group", "Contacts"})
	for _, g := range groups {
		t.AppendRow(table.Row{g.Index, g.Label, g.Size})
	}
	t.Render()
}

func renderContacts(contacts []selection.IndexedContact) {
	t := newTable()
	t.AppendHeader(table.Row{"#", "Name", "Mobile", "Email"})
	for _, c := range contacts {
		t.AppendRow(table.Row{c.Index, c.Contact.String(), c.Contact.Mobile, c.Contact.Email})
	}
	t.Render()
}

func renderPhones(phones []voice.PhoneNumber) {
	t := newTable()
	t.AppendHeader(table.Row{"#", "Name", "Number", "Type"})
	for i, p := range phones {
		t.AppendRow(table.Row{i + 1, p.Name, p.Number, p.Type})
	}
	t.Render()
}
