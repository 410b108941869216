// Package contact defines the phonebook record and the rules every stored
// record has to satisfy.
package contact

import (
	"fmt"

	"github.com/jeanpaul/phonebook/internal/schema"
)

const (
	// NamePattern matches a single capitalised Cyrillic word.
	NamePattern = `^[А-Я][а-я]*$`
	// NumberPattern matches an 11-digit phone number.
	NumberPattern = `^[0-9]{11}$`
)

var rules = schema.NewValidator()

// Contact is one directory entry. PersonalNumber is its unique key.
type Contact struct {
	FirstName      string `json:"first_name" yaml:"first_name"`
	LastName       string `json:"last_name" yaml:"last_name"`
	Patronymic     string `json:"patronymic" yaml:"patronymic"`
	Organization   string `json:"organization" yaml:"organization"`
	OfficeNumber   string `json:"office_number" yaml:"office_number"`
	PersonalNumber string `json:"personal_number" yaml:"personal_number"`
}

func (c Contact) String() string {
	return fmt.Sprintf("%s %s %s", c.LastName, c.FirstName, c.Patronymic)
}

// Get returns the value of f.
func (c Contact) Get(f Field) string {
	switch f {
	case FirstName:
		return c.FirstName
	case LastName:
		return c.LastName
	case Patronymic:
		return c.Patronymic
	case Organization:
		return c.Organization
	case OfficeNumber:
		return c.OfficeNumber
	case PersonalNumber:
		return c.PersonalNumber
	}
	return ""
}

// Set overwrites the value of f.
func (c *Contact) Set(f Field, v string) {
	switch f {
	case FirstName:
		c.FirstName = v
	case LastName:
		c.LastName = v
	case Patronymic:
		c.Patronymic = v
	case Organization:
		c.Organization = v
	case OfficeNumber:
		c.OfficeNumber = v
	case PersonalNumber:
		c.PersonalNumber = v
	}
}

// ValidateField checks a single raw value against the schema rule for f.
// The form in the terminal shell uses it to reject input early; the error
// describes the rule in words instead of quoting the pattern.
func ValidateField(f Field, v string) error {
	if _, ok := labels[f]; !ok {
		return fmt.Errorf("unknown field %q", string(f))
	}
	if err := rules.Validate(FieldSchema([]Field{f}), map[string]string{string(f): v}); err != nil {
		return fmt.Errorf("%s %s", f.Label(), f.rule())
	}
	return nil
}

func (f Field) rule() string {
	switch f {
	case Organization:
		return "must not be empty"
	case OfficeNumber, PersonalNumber:
		return "must contain exactly 11 digits"
	}
	return "must be one Cyrillic word starting with a capital letter"
}
