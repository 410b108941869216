package contact

import "fmt"

// Field names one of the six contact attributes. The value is the JSON key.
type Field string

const (
	FirstName      Field = "first_name"
	LastName       Field = "last_name"
	Patronymic     Field = "patronymic"
	Organization   Field = "organization"
	OfficeNumber   Field = "office_number"
	PersonalNumber Field = "personal_number"
)

// Fields lists every attribute in form order.
var Fields = []Field{FirstName, LastName, Patronymic, Organization, OfficeNumber, PersonalNumber}

var labels = map[Field]string{
	FirstName:      "First name",
	LastName:       "Last name",
	Patronymic:     "Patronymic",
	Organization:   "Organization",
	OfficeNumber:   "Office number",
	PersonalNumber: "Personal number",
}

// ParseField maps a raw key onto a Field. Dashes are accepted in place of
// underscores so CLI flags like --personal-number work.
func ParseField(s string) (Field, error) {
	b := []byte(s)
	for i := range b {
		if b[i] == '-' {
			b[i] = '_'
		}
	}
	f := Field(b)
	if _, ok := labels[f]; !ok {
		return "", fmt.Errorf("unknown field %q", s)
	}
	return f, nil
}

// Label is the human readable column title.
func (f Field) Label() string {
	if l, ok := labels[f]; ok {
		return l
	}
	return string(f)
}
