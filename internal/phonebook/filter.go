package phonebook

import (
	"fmt"

	"github.com/jeanpaul/phonebook/internal/contact"
)

// Filter selects contacts by exact match. A nil field is not part of the
// query; the zero Filter matches every contact.
type Filter struct {
	FirstName      *string
	LastName       *string
	Patronymic     *string
	Organization   *string
	OfficeNumber   *string
	PersonalNumber *string
}

// Update lists replacement values. Nil fields keep their stored value.
type Update Filter

// NewFilter builds a Filter from raw key/value pairs.
func NewFilter(m map[string]string) (Filter, error) {
	var f Filter
	for k, v := range m {
		field, err := contact.ParseField(k)
		if err != nil {
			return Filter{}, fmt.Errorf("%w: %q", ErrUnknownField, k)
		}
		f.Set(field, v)
	}
	return f, nil
}

// NewUpdate builds an Update from raw key/value pairs.
func NewUpdate(m map[string]string) (Update, error) {
	f, err := NewFilter(m)
	return Update(f), err
}

// Where is shorthand for a single-field Filter.
func Where(field contact.Field, value string) Filter {
	var f Filter
	f.Set(field, value)
	return f
}

// Set adds field == value to the filter.
func (f *Filter) Set(field contact.Field, value string) {
	if p := f.ptr(field); p != nil {
		v := value
		*p = &v
	}
}

// Set supplies a replacement value for field.
func (u *Update) Set(field contact.Field, value string) {
	(*Filter)(u).Set(field, value)
}

// Fields returns the supplied fields in form order.
func (f Filter) Fields() []contact.Field {
	var out []contact.Field
	for _, field := range contact.Fields {
		if p := f.ptr(field); p != nil && *p != nil {
			out = append(out, field)
		}
	}
	return out
}

// Fields returns the supplied fields in form order.
func (u Update) Fields() []contact.Field {
	return Filter(u).Fields()
}

// Value returns the supplied value for field.
func (f Filter) Value(field contact.Field) (string, bool) {
	p := f.ptr(field)
	if p == nil || *p == nil {
		return "", false
	}
	return **p, true
}

// Empty reports whether no field is set.
func (f Filter) Empty() bool {
	return len(f.Fields()) == 0
}

// apply copies the supplied values onto c.
func (u Update) apply(c *contact.Contact) {
	f := Filter(u)
	for _, field := range f.Fields() {
		v, _ := f.Value(field)
		c.Set(field, v)
	}
}

// values returns the supplied fields as a partial document for validation.
func (u Update) values() map[string]string {
	f := Filter(u)
	out := make(map[string]string)
	for _, field := range f.Fields() {
		v, _ := f.Value(field)
		out[string(field)] = v
	}
	return out
}

func (f *Filter) ptr(field contact.Field) **string {
	switch field {
	case contact.FirstName:
		return &f.FirstName
	case contact.LastName:
		return &f.LastName
	case contact.Patronymic:
		return &f.Patronymic
	case contact.Organization:
		return &f.Organization
	case contact.OfficeNumber:
		return &f.OfficeNumber
	case contact.PersonalNumber:
		return &f.PersonalNumber
	}
	return nil
}

type predicate func(contact.Contact) bool

// matcher builds the conjunction of per-field equality tests for f.
func matcher(f Filter) predicate {
	var preds []predicate
	for _, field := range f.Fields() {
		want, _ := f.Value(field)
		preds = append(preds, func(c contact.Contact) bool {
			return c.Get(field) == want
		})
	}
	return func(c contact.Contact) bool {
		for _, p := range preds {
			if !p(c) {
				return false
			}
		}
		return true
	}
}
