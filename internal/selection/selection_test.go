package selection

import (
	"strings"
	"testing"

	"gvmass/internal/scrapers/voice"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

var (
	contactA = voice.Contact{FirstName: "A", Mobile: "5555550101"}
	contactB = voice.Contact{FirstName: "B", Mobile: "5555550102"}
	contactC = voice.Contact{FirstName: "C", Mobile: "5555550103"}
)

func testDirectory() *voice.Directory {
	return &voice.Directory{Groups: []voice.Group{
		{Label: "Friends", Contacts: []voice.Contact{contactA, contactB}},
		{Label: voice.UngroupedLabel, Contacts: []voice.Contact{contactC}},
	}}
}

func TestSelectAndRemove(t *testing.T) {
	s := New(testDirectory())

	groups := s.Groups()
	diff := cmp.Diff([]IndexedGroup{
		{Index: 1, Label: "Friends", Size: 2},
		{Index: 2, Label: voice.UngroupedLabel, Size: 1},
	}, groups)
	if diff != "" {
		t.Fatal("unexpected groups", diff)
	}

	require.NoError(t, s.SelectGroup(1))
	require.Equal(t, "Friends", s.Label())
	s.Remove(1)

	diff = cmp.Diff([]IndexedContact{{Index: 1, Contact: contactB}}, s.Contacts())
	if diff != "" {
		t.Fatal("unexpected contacts", diff)
	}
}

func TestContactsBeforeSelection(t *testing.T) {
	s := New(testDirectory())
	require.Empty(t, s.Contacts())
	s.Remove(1)
	require.Empty(t, s.Contacts())
	require.Empty(t, s.Label())
}

func TestSelectGroupOutOfRange(t *testing.T) {
	s := New(testDirectory())
	require.NoError(t, s.SelectGroup(2))

	for _, index := range []int{0, -1, 3} {
		require.ErrorIs(t, s.SelectGroup(index), ErrGroupOutOfRange)
	}
	require.Len(t, s.Contacts(), 1)
	require.Equal(t, contactC, s.Contacts()[0].Contact)
}

func TestRemove(t *testing.T) {
	table := []struct {
		name     string
		remove   []int
		expected []voice.Contact
	}{
		{name: "nothing", remove: nil, expected: []voice.Contact{contactA, contactB}},
		{name: "first", remove: []int{1}, expected: []voice.Contact{contactB}},
		{name: "last", remove: []int{2}, expected: []voice.Contact{contactA}},
		{name: "all", remove: []int{2, 1}, expected: []voice.Contact{}},
		{name: "duplicates", remove: []int{1, 1}, expected: []voice.Contact{contactB}},
		{name: "out of range", remove: []int{0, -1, 3}, expected: []voice.Contact{contactA, contactB}},
	}

	for _, row := range table {
		t.Run(row.name, func(t *testing.T) {
			s := New(testDirectory())
			require.NoError(t, s.SelectGroup(1))
			s.Remove(row.remove...)

			contacts := []voice.Contact{}
			for _, c := range s.Contacts() {
				contacts = append(contacts, c.Contact)
			}
			require.Equal(t, row.expected, contacts)
		})
	}
}

func TestRemoveRenumbers(t *testing.T) {
	s := New(testDirectory())
	require.NoError(t, s.SelectGroup(1))
	s.Remove(1)
	// B is now at position 1
	s.Remove(2)
	require.Len(t, s.Contacts(), 1)
	s.Remove(1)
	require.Empty(t, s.Contacts())
}

func TestSelectionDoesNotMutateDirectory(t *testing.T) {
	dir := testDirectory()
	s := New(dir)
	require.NoError(t, s.SelectGroup(1))
	s.Remove(1, 2)

	friends, ok := dir.Lookup("Friends")
	require.True(t, ok)
	require.Equal(t, []voice.Contact{contactA, contactB}, friends)

	require.NoError(t, s.SelectGroup(1))
	require.Len(t, s.Contacts(), 2)
}

func TestFindGroup(t *testing.T) {
	s := New(testDirectory())
	index, ok := s.FindGroup(voice.UngroupedLabel)
	require.True(t, ok)
	require.Equal(t, 2, index)

	_, ok = s.FindGroup("friends")
	require.False(t, ok)
}

func TestSuggestGroup(t *testing.T) {
	s := New(testDirectory())

	label, ok := s.SuggestGroup("freinds")
	require.True(t, ok)
	require.Equal(t, "Friends", label)

	_, ok = s.SuggestGroup("zzzzzzzzzzzzzz")
	require.False(t, ok)

	_, ok = New(nil).SuggestGroup("Friends")
	require.False(t, ok)
}

func TestParseIndices(t *testing.T) {
	table := []struct {
		input    string
		expected []int
	}{
		{input: "1", expected: []int{1}},
		{input: "1, 3 and 7", expected: []int{1, 3, 7}},
		{input: "12 x3", expected: []int{12, 3}},
		{input: "none", expected: nil},
		{input: "", expected: nil},
	}
	for _, row := range table {
		require.Equal(t, row.expected, ParseIndices(row.input), row.input)
	}
}

func TestRemoveFromThree(t *testing.T) {
	dir := &voice.Directory{Groups: []voice.Group{
		{Label: "Team", Contacts: []voice.Contact{contactA, contactB, contactC}},
	}}

	s := New(dir)
	require.NoError(t, s.SelectGroup(1))
	s.Remove(99)
	require.Len(t, s.Contacts(), 3)

	s.Remove(2)
	diff := cmp.Diff([]IndexedContact{
		{Index: 1, Contact: contactA},
		{Index: 2, Contact: contactC},
	}, s.Contacts())
	if diff != "" {
		t.Fatal("unexpected contacts", diff)
	}
}

func TestSelectionFromExport(t *testing.T) {
	export := "First Name,Last Name,Mobile Phone,E-mail Address,Categories\n" +
		"A,,5555550101,,Friends\n" +
		"B,,5555550102,,Friends\n" +
		"C,,5555550103,,\n"
	dir, err := voice.ParseContacts(strings.NewReader(export))
	require.NoError(t, err)

	s := New(dir)
	index, ok := s.FindGroup("Friends")
	require.True(t, ok)
	require.NoError(t, s.SelectGroup(index))
	s.Remove(1)

	contacts := s.Contacts()
	require.Len(t, contacts, 1)
	require.Equal(t, 1, contacts[0].Index)
	require.Equal(t, "B", contacts[0].Contact.FirstName)

	ungrouped, ok := dir.Lookup(voice.UngroupedLabel)
	require.True(t, ok)
	require.Equal(t, "C", ungrouped[0].FirstName)
}
