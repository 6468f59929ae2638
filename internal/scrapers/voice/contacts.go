package voice

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	report_contacts_load = "contacts.load"
)

const (
	columnFirstName  = "First Name"
	columnLastName   = "Last Name"
	columnMobile     = "Mobile Phone"
	columnEmail      = "E-mail Address"
	columnCategories = "Categories"
)

// UngroupedLabel is the group for contacts that list no category.
const UngroupedLabel = "Ungrouped"

const categorySeparator = ";"

var ErrMissingColumn = errors.New("voice: contacts export is missing a column")

type Contact struct {
	FirstName string
	LastName  string
	Mobile    string
	Email     string
}

func (c Contact) String() string {
	return c.FirstName + " " + c.LastName
}

type Group struct {
	Label    string
	Contacts []Contact
}

// Directory holds the contact groups in the order their label was first
// seen in the export.
type Directory struct {
	Groups []Group
}

func (d *Directory) Lookup(label string) ([]Contact, bool) {
	for _, g := range d.Groups {
		if g.Label == label {
			return g.Contacts, true
		}
	}
	return nil, false
}

func (d *Directory) Labels() []string {
	labels := make([]string, len(d.Groups))
	for i, g := range d.Groups {
		labels[i] = g.Label
	}
	return labels
}

type directoryBuilder struct {
	index map[string]int
	dir   *Directory
}

func (b *directoryBuilder) add(label string, contact Contact) {
	i, ok := b.index[label]
	if !ok {
		i = len(b.dir.Groups)
		b.index[label] = i
		b.dir.Groups = append(b.dir.Groups, Group{Label: label})
	}
	b.dir.Groups[i].Contacts = append(b.dir.Groups[i].Contacts, contact)
}

// ParseContacts groups the rows of an Outlook-style contacts CSV by category.
//
// rows with an empty first name are skipped. a contact is added once per
// category it lists (separated by ';'), an empty category maps to
// UngroupedLabel.
func ParseContacts(r io.Reader) (*Directory, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	// exports carry free-text columns with stray quotes in unquoted cells
	reader.LazyQuotes = true

	dir := &Directory{}
	header, err := reader.Read()
	if err == io.EOF {
		return dir, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	columns := map[string]int{}
	for i, name := range header {
		columns[name] = i
	}
	required := []string{columnFirstName, columnLastName, columnMobile, columnEmail, columnCategories}
	for _, name := range required {
		if _, ok := columns[name]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
	}

	field := func(record []string, name string) string {
		i := columns[name]
		if i >= len(record) {
			return ""
		}
		return record[i]
	}

	b := directoryBuilder{index: map[string]int{}, dir: dir}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}

		if field(record, columnFirstName) == "" {
			continue
		}
		contact := Contact{
			FirstName: strings.TrimSpace(field(record, columnFirstName)),
			LastName:  strings.TrimSpace(field(record, columnLastName)),
			Mobile:    strings.TrimSpace(field(record, columnMobile)),
			Email:     strings.TrimSpace(field(record, columnEmail)),
		}

		for _, category := range strings.Split(field(record, columnCategories), categorySeparator) {
			if category == "" {
				category = UngroupedLabel
			}
			b.add(category, contact)
		}
	}

	return dir, nil
}

// LoadContacts downloads the account's contacts export and groups it.
func LoadContacts(ctx context.Context, session *Session) (*Directory, error) {
	err := session.requireLogin()
	if err != nil {
		return nil, err
	}

	res, err := session.Http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"groupToExport": "^Mine",
			"exportType":    "ALL",
			"out":           "OUTLOOK_CSV",
			"tok":           session.ContactToken,
		}).
		Get(session.endpoints.ContactsExport)
	if err != nil {
		session.tel.ReportBroken(
			report_contacts_load,
			fmt.Errorf("fetch: %w", err),
		)
		return nil, err
	}
	err = checkStatus(res)
	if err != nil {
		session.tel.ReportBroken(report_contacts_load, err)
		return nil, err
	}

	dir, err := ParseContacts(bytes.NewReader(res.Body()))
	if err != nil {
		session.tel.ReportBroken(
			report_contacts_load,
			fmt.Errorf("parse: %w", err),
		)
		return nil, err
	}
	session.tel.ReportCount(report_contacts_load, int64(len(dir.Groups)))

	return dir, nil
}
