package verbs

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/mesh-intelligence/verby/pkg/types"
)

// Assessment grades a candidate entry before it is committed.
type Assessment int

const (
	// AssessInvalid means Insert would reject the candidate.
	AssessInvalid Assessment = iota
	// AssessShort means the candidate is insertable but some form is
	// shorter than the store's minimum form length.
	AssessShort
	// AssessOK means the candidate is insertable with no warnings.
	AssessOK
)

// String returns a lowercase name for the assessment.
func (a Assessment) String() string {
	switch a {
	case AssessInvalid:
		return "invalid"
	case AssessShort:
		return "short"
	case AssessOK:
		return "ok"
	default:
		return "unknown"
	}
}

// slot is one stored entry. The id never changes while the entry lives,
// so grid cells and picks survive index shifts in the store.
type slot struct {
	id    uuid.UUID
	entry types.Entry
}

// EntryStore is the ordered, duplicate-free table of verb entries.
// Entries are appended by Insert and removed by DeleteAt; the positional
// index seen by callers compacts on delete.
type EntryStore struct {
	slots         []slot
	revision      uint64
	minFormLength int
}

// NewEntryStore returns an empty store using DefaultMinFormLength.
func NewEntryStore() *EntryStore {
	return &EntryStore{minFormLength: types.DefaultMinFormLength}
}

// SetMinFormLength changes the threshold used by Assess. Values below 1
// disable the short-form warning.
func (s *EntryStore) SetMinFormLength(n int) {
	s.minFormLength = n
}

// Insert appends a new entry. It returns an error wrapping
// ErrValidationRejected and either ErrEmptyField or ErrDuplicateEntry;
// a rejected insert leaves the store unchanged.
func (s *EntryStore) Insert(first, second, third string) error {
	_, err := s.insert(types.NewEntry(first, second, third))
	return err
}

func (s *EntryStore) insert(e types.Entry) (uuid.UUID, error) {
	if err := s.check(e); err != nil {
		return uuid.Nil, fmt.Errorf("%w: %w", types.ErrValidationRejected, err)
	}
	id := newEntryID()
	s.slots = append(s.slots, slot{id: id, entry: e})
	s.revision++
	return id, nil
}

// check applies the insertion rules without mutating the store.
func (s *EntryStore) check(e types.Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if s.Contains(e) {
		return types.ErrDuplicateEntry
	}
	return nil
}

// DeleteAt removes the entry at index; later entries shift down by one.
// Returns ErrIndexOutOfRange when index is not a valid position.
func (s *EntryStore) DeleteAt(index int) error {
	if index < 0 || index >= len(s.slots) {
		return fmt.Errorf("%w: %d (have %d entries)", types.ErrIndexOutOfRange, index, len(s.slots))
	}
	s.slots = slices.Delete(s.slots, index, index+1)
	s.revision++
	return nil
}

// Entries returns a copy of the entries in store order.
func (s *EntryStore) Entries() []types.Entry {
	out := make([]types.Entry, len(s.slots))
	for i, sl := range s.slots {
		out[i] = sl.entry
	}
	return out
}

// Len returns the number of stored entries.
func (s *EntryStore) Len() int {
	return len(s.slots)
}

// At returns the entry at index.
func (s *EntryStore) At(index int) (types.Entry, error) {
	if index < 0 || index >= len(s.slots) {
		return types.Entry{}, fmt.Errorf("%w: %d", types.ErrIndexOutOfRange, index)
	}
	return s.slots[index].entry, nil
}

// Contains reports whether an entry field-wise equal to e is stored.
func (s *EntryStore) Contains(e types.Entry) bool {
	return slices.ContainsFunc(s.slots, func(sl slot) bool { return sl.entry.Equal(e) })
}

// IsValidCandidate reports whether Insert would accept the forms.
func (s *EntryStore) IsValidCandidate(first, second, third string) bool {
	return s.check(types.NewEntry(first, second, third)) == nil
}

// Assess grades a candidate for the editor: invalid candidates cannot be
// added, short ones can but deserve a warning.
func (s *EntryStore) Assess(first, second, third string) Assessment {
	e := types.NewEntry(first, second, third)
	if s.check(e) != nil {
		return AssessInvalid
	}
	if s.minFormLength > 0 && e.ShortestForm() < s.minFormLength {
		return AssessShort
	}
	return AssessOK
}

// Revision increases on every successful mutation. A grid built at an
// older revision is stale.
func (s *EntryStore) Revision() uint64 {
	return s.revision
}

// newEntryID generates a UUID v7, falling back to v4 if v7 generation fails.
func newEntryID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}
