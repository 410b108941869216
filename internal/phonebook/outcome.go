package phonebook

import "errors"

var (
	ErrValidation   = errors.New("phonebook: invalid contact data")
	ErrDuplicateKey = errors.New("phonebook: personal number already exists")
	ErrNotFound     = errors.New("phonebook: contact not found")
	ErrClosed       = errors.New("phonebook: closed")
	ErrUnknownField = errors.New("phonebook: unknown field")
)

const (
	MsgCreated      = "Contact created"
	MsgInvalid      = "Invalid data provided."
	MsgDuplicate    = "Contact with this personal number already exists."
	MsgDeleted      = "Contact deleted."
	MsgDoesNotExist = "Contact does not exist."
	MsgUpdated      = "Contact updated."
	MsgNotFound     = "Contact not found."
	MsgClosed       = "Phonebook is closed."
	MsgSaveFailed   = "Could not save phonebook."
)

// Outcome is the result of a mutating operation. Callers branch on Success
// and show Message as is; Err carries the cause for errors.Is.
type Outcome struct {
	Success bool   `json:"success" yaml:"success"`
	Message string `json:"message" yaml:"message"`
	ID      int    `json:"id,omitempty" yaml:"id,omitempty"`
	Err     error  `json:"-" yaml:"-"`
}

func ok(msg string, id int) Outcome {
	return Outcome{Success: true, Message: msg, ID: id}
}

func fail(msg string, err error) Outcome {
	return Outcome{Message: msg, Err: err}
}
