package phonebook

import "github.com/jeanpaul/phonebook/internal/contact"

// Ensure Phonebook implements Store
var _ Store = (*Phonebook)(nil)

// Store is the contract the terminal shell and the headless runner use.
type Store interface {
	// AddContact validates and stores a new contact.
	AddContact(c contact.Contact) Outcome

	// GetContacts returns contacts matching every field set in the filter.
	GetContacts(f Filter) []Record

	// DeleteContact removes the contact keyed by personalNumber.
	DeleteContact(personalNumber string) Outcome

	// UpdateContact overwrites the supplied fields of one contact.
	UpdateContact(personalNumber string, u Update) Outcome

	// Close releases the backing file.
	Close() error
}
