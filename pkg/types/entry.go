package types

import (
	"errors"
	"strings"
)

// FormCount is the number of principal forms held by every entry.
const FormCount = 3

// Form indexes an entry's principal forms.
type Form int

// Principal forms in column order.
const (
	FormFirst Form = iota
	FormSecond
	FormThird
)

// String returns the column heading used by list output and the editor.
func (f Form) String() string {
	switch f {
	case FormFirst:
		return "First form"
	case FormSecond:
		return "Second form"
	case FormThird:
		return "Third form"
	default:
		return "Unknown form"
	}
}

// Entry is one verb with its three principal forms (e.g. go, went, gone).
// Equality is exact and field-wise: First must match First, and so on.
type Entry struct {
	First  string `json:"first"`
	Second string `json:"second"`
	Third  string `json:"third"`
}

// NewEntry builds an entry from its forms in column order.
func NewEntry(first, second, third string) Entry {
	return Entry{First: first, Second: second, Third: third}
}

// EntryFromForms builds an entry from a column-ordered array.
func EntryFromForms(forms [FormCount]string) Entry {
	return Entry{First: forms[FormFirst], Second: forms[FormSecond], Third: forms[FormThird]}
}

// Forms returns the forms in column order.
func (e Entry) Forms() [FormCount]string {
	return [FormCount]string{e.First, e.Second, e.Third}
}

// Form returns the form at column f, or "" when f is out of range.
func (e Entry) Form(f Form) string {
	switch f {
	case FormFirst:
		return e.First
	case FormSecond:
		return e.Second
	case FormThird:
		return e.Third
	default:
		return ""
	}
}

// Equal reports field-wise equality.
func (e Entry) Equal(other Entry) bool {
	return e == other
}

// Validate returns ErrEmptyField if any form is empty. No trimming is
// applied; callers normalize input before building the entry.
func (e Entry) Validate() error {
	for _, f := range e.Forms() {
		if f == "" {
			return ErrEmptyField
		}
	}
	return nil
}

// ShortestForm returns the length, in runes, of the shortest form.
func (e Entry) ShortestForm() int {
	shortest := -1
	for _, f := range e.Forms() {
		n := len([]rune(f))
		if shortest < 0 || n < shortest {
			shortest = n
		}
	}
	return shortest
}

// String renders the entry as "first / second / third".
func (e Entry) String() string {
	forms := e.Forms()
	return strings.Join(forms[:], " / ")
}

// Entry validation and store errors.
var (
	ErrValidationRejected = errors.New("entry rejected")
	ErrEmptyField         = errors.New("form must not be empty")
	ErrDuplicateEntry     = errors.New("entry already exists")
	ErrIndexOutOfRange    = errors.New("index out of range")
	ErrInvalidPosition    = errors.New("grid position out of range")
	ErrGridStale          = errors.New("grid was stale and has been rebuilt")
)

// DemoEntry is the placeholder entry a fresh notebook starts with, showing
// which column holds which form.
func DemoEntry() Entry {
	return NewEntry("first", "second", "third")
}
