// Package selection tracks which group of the contact directory the operator
// picked and which of its contacts they excluded.
//
// all indices handed out and accepted here are 1-based and refer to the
// position in the most recent listing.
package selection

import (
	"errors"
	"regexp"
	"strconv"
	"strings"

	"gvmass/internal/scrapers/voice"

	"github.com/antzucaro/matchr"
)

var ErrGroupOutOfRange = errors.New("selection: group index out of range")

// suggestions below this similarity are not worth offering
const suggestionThreshold = 0.7

type IndexedGroup struct {
	Index int
	Label string
	Size  int
}

type IndexedContact struct {
	Index   int
	Contact voice.Contact
}

type Selection struct {
	groups  []voice.Group
	current []voice.Contact
	label   string
}

func New(dir *voice.Directory) *Selection {
	s := &Selection{}
	if dir != nil {
		s.groups = dir.Groups
	}
	return s
}

func (s *Selection) Groups() []IndexedGroup {
	out := make([]IndexedGroup, len(s.groups))
	for i, g := range s.groups {
		out[i] = IndexedGroup{
			Index: i + 1,
			Label: g.Label,
			Size:  len(g.Contacts),
		}
	}
	return out
}

// SelectGroup replaces the working set with a copy of the group's contacts.
// On error the working set is left as it was.
func (s *Selection) SelectGroup(index int) error {
	if index < 1 || index > len(s.groups) {
		return ErrGroupOutOfRange
	}
	group := s.groups[index-1]
	s.current = make([]voice.Contact, len(group.Contacts))
	copy(s.current, group.Contacts)
	s.label = group.Label
	return nil
}

// Label is the label of the selected group, it is empty before a group is
// selected.
func (s *Selection) Label() string {
	return s.label
}

func (s *Selection) Contacts() []IndexedContact {
	out := make([]IndexedContact, len(s.current))
	for i, c := range s.current {
		out[i] = IndexedContact{Index: i + 1, Contact: c}
	}
	return out
}

// Remove drops the contacts at the given positions of the current listing.
// Positions that do not exist are ignored.
func (s *Selection) Remove(indices ...int) {
	if len(indices) == 0 || len(s.current) == 0 {
		return
	}
	drop := make(map[int]bool, len(indices))
	for _, i := range indices {
		drop[i] = true
	}

	kept := make([]voice.Contact, 0, len(s.current))
	for i, c := range s.current {
		if drop[i+1] {
			continue
		}
		kept = append(kept, c)
	}
	s.current = kept
}

// FindGroup returns the 1-based index of the group with the given label.
func (s *Selection) FindGroup(label string) (int, bool) {
	for i, g := range s.groups {
		if g.Label == label {
			return i + 1, true
		}
	}
	return 0, false
}

// SuggestGroup finds the existing label closest to `label`, for "did you
// mean" hints.
func (s *Selection) SuggestGroup(label string) (string, bool) {
	target := strings.ToLower(label)

	best := ""
	bestSimilarity := 0.0
	for _, g := range s.groups {
		similarity := matchr.JaroWinkler(target, strings.ToLower(g.Label), false)
		if similarity > bestSimilarity {
			best = g.Label
			bestSimilarity = similarity
		}
	}
	if bestSimilarity < suggestionThreshold {
		return "", false
	}
	return best, true
}

var digitRunPattern = regexp.MustCompile(`[0-9]+`)

// ParseIndices pulls every run of digits out of free-form input, so
// "1, 3 and 7" gives [1 3 7].
func ParseIndices(input string) []int {
	var out []int
	for _, run := range digitRunPattern.FindAllString(input, -1) {
		n, err := strconv.Atoi(run)
		if err != nil {
			// too large to be a position
			continue
		}
		out = append(out, n)
	}
	return out
}
