// Package phonebook is the contact record store. It persists contacts in a
// single JSON document file, keeps personal numbers unique and converts
// every rejected operation into an Outcome instead of an error.
package phonebook

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/jeanpaul/phonebook/internal/contact"
	"github.com/jeanpaul/phonebook/internal/schema"
)

// Phonebook owns one document file for its lifetime.
type Phonebook struct {
	mu      sync.Mutex
	path    string
	records []Record
	others  map[string]json.RawMessage
	nextID  int
	closed  bool

	validator     *schema.Validator
	log           *slog.Logger
	strictUpdates bool
}

// Option configures a Phonebook.
type Option func(*Phonebook)

// WithLogger sets the logger used for mutations and rejections.
func WithLogger(l *slog.Logger) Option {
	return func(p *Phonebook) {
		if l != nil {
			p.log = l
		}
	}
}

// WithStrictUpdates makes UpdateContact validate replacement values the
// same way AddContact validates new contacts.
func WithStrictUpdates(strict bool) Option {
	return func(p *Phonebook) { p.strictUpdates = strict }
}

// Open loads the phonebook stored at path, creating the parent directory
// when needed. It fails if the file exists but cannot be read or decoded,
// if two stored records share a personal number, or if the location is not
// writable.
func Open(path string, opts ...Option) (*Phonebook, error) {
	p := &Phonebook{
		path:      path,
		validator: schema.NewValidator(),
		log:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(p)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("open phonebook: %w", err)
	}
	doc, err := readDocument(path)
	if err != nil {
		return nil, fmt.Errorf("open phonebook: %w", err)
	}
	if err := p.check(doc.records); err != nil {
		return nil, fmt.Errorf("open phonebook: %w", err)
	}
	p.records = doc.records
	p.others = doc.others
	p.nextID = 1
	if n := len(doc.records); n > 0 {
		p.nextID = doc.records[n-1].ID + 1
	}

	// Write once so an unwritable location fails here and not on first add.
	if err := writeDocument(path, doc); err != nil {
		return nil, fmt.Errorf("open phonebook: %w", err)
	}

	p.log.Debug("phonebook opened", "path", path, "records", len(doc.records))
	return p, nil
}

// Path returns the document file location.
func (p *Phonebook) Path() string { return p.path }

// AddContact validates c and stores it under a new document id.
func (p *Phonebook) AddContact(c contact.Contact) Outcome {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return fail(MsgClosed, ErrClosed)
	}
	if err := p.validator.Validate(contact.Schema(), c); err != nil {
		p.log.Warn("contact rejected", "reason", "validation", "err", err)
		return fail(MsgInvalid, fmt.Errorf("%w: %w", ErrValidation, err))
	}
	if p.indexOf(c.PersonalNumber) >= 0 {
		p.log.Warn("contact rejected", "reason", "duplicate", "personal_number", c.PersonalNumber)
		return fail(MsgDuplicate, ErrDuplicateKey)
	}

	rec := Record{ID: p.nextID, Contact: c}
	prev := p.records
	p.records = append(slices.Clip(p.records), rec)
	if err := p.flush(); err != nil {
		p.records = prev
		return fail(MsgSaveFailed, err)
	}
	p.nextID++

	p.log.Debug("contact created", "id", rec.ID, "personal_number", c.PersonalNumber)
	return ok(MsgCreated, rec.ID)
}

// GetContacts returns every record matching all fields set in f, in
// storage order. The zero Filter returns everything.
func (p *Phonebook) GetContacts(f Filter) []Record {
	p.mu.Lock()
	defer p.mu.Unlock()

	match := matcher(f)
	out := []Record{}
	for _, r := range p.records {
		if match(r.Contact) {
			out = append(out, r)
		}
	}
	return out
}

// GetAllContacts returns every stored record.
func (p *Phonebook) GetAllContacts() []Record {
	return p.GetContacts(Filter{})
}

// DeleteContact removes the contact with the given personal number.
func (p *Phonebook) DeleteContact(personalNumber string) Outcome {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return fail(MsgClosed, ErrClosed)
	}
	i := p.indexOf(personalNumber)
	if i < 0 {
		return fail(MsgDoesNotExist, ErrNotFound)
	}

	prev := p.records
	p.records = slices.Delete(slices.Clone(p.records), i, i+1)
	if err := p.flush(); err != nil {
		p.records = prev
		return fail(MsgSaveFailed, err)
	}

	p.log.Debug("contact deleted", "id", prev[i].ID, "personal_number", personalNumber)
	return ok(MsgDeleted, 0)
}

// UpdateContact overwrites the fields supplied in u on the contact with the
// given personal number. Replacement values are only validated when the
// phonebook was opened WithStrictUpdates; moving a contact onto a personal
// number owned by another contact is always rejected.
func (p *Phonebook) UpdateContact(personalNumber string, u Update) Outcome {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return fail(MsgClosed, ErrClosed)
	}
	i := p.indexOf(personalNumber)
	if i < 0 {
		return fail(MsgNotFound, ErrNotFound)
	}

	if p.strictUpdates {
		if err := p.validator.Validate(contact.FieldSchema(u.Fields()), u.values()); err != nil {
			p.log.Warn("update rejected", "reason", "validation", "err", err)
			return fail(MsgInvalid, fmt.Errorf("%w: %w", ErrValidation, err))
		}
	}

	updated := p.records[i]
	u.apply(&updated.Contact)
	if updated.PersonalNumber != personalNumber {
		if j := p.indexOf(updated.PersonalNumber); j >= 0 && j != i {
			p.log.Warn("update rejected", "reason", "duplicate", "personal_number", updated.PersonalNumber)
			return fail(MsgDuplicate, ErrDuplicateKey)
		}
	}

	prev := p.records
	p.records = slices.Clone(p.records)
	p.records[i] = updated
	if err := p.flush(); err != nil {
		p.records = prev
		return fail(MsgSaveFailed, err)
	}

	p.log.Debug("contact updated", "id", updated.ID, "fields", u.Fields())
	return ok(MsgUpdated, updated.ID)
}

// Close writes the phonebook one last time and releases it. Operations on a
// closed phonebook fail with ErrClosed.
func (p *Phonebook) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}
	err := p.flush()
	p.closed = true
	p.records = nil
	p.log.Debug("phonebook closed", "path", p.path)
	return err
}

// check refuses records that share a personal number. Records failing the
// contact schema are only logged: UpdateContact stores unchecked values
// unless strict updates are on, so such records are legitimate.
func (p *Phonebook) check(records []Record) error {
	owner := make(map[string]int, len(records))
	for _, r := range records {
		if id, dup := owner[r.PersonalNumber]; dup {
			return fmt.Errorf("%w: personal number %s is stored under ids %d and %d",
				ErrDuplicateKey, r.PersonalNumber, id, r.ID)
		}
		owner[r.PersonalNumber] = r.ID
		if err := p.validator.Validate(contact.Schema(), r.Contact); err != nil {
			p.log.Warn("stored contact does not match schema", "id", r.ID, "err", err)
		}
	}
	return nil
}

func (p *Phonebook) indexOf(personalNumber string) int {
	return slices.IndexFunc(p.records, func(r Record) bool {
		return r.PersonalNumber == personalNumber
	})
}

func (p *Phonebook) flush() error {
	if err := writeDocument(p.path, document{records: p.records, others: p.others}); err != nil {
		p.log.Error("phonebook write failed", "path", p.path, "err", err)
		return fmt.Errorf("save phonebook: %w", err)
	}
	return nil
}
