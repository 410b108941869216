package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeanpaul/phonebook/internal/contact"
)

type formKind int

const (
	formFind formKind = iota // every field optional, no checks
	formAdd                  // every field required and checked
	formKey                  // personal number only
	formEdit                 // prefilled, changed fields are checked
)

// FormModel collects raw field values and checks them before they reach
// the store.
type FormModel struct {
	kind    formKind
	title   string
	fields  []contact.Field
	inputs  []textinput.Model
	initial []string
	errs    []string
	focus   int
	theme   Theme

	submitted bool
	cancelled bool
}

func newForm(kind formKind, title string, theme Theme, initial *contact.Contact) FormModel {
	fields := contact.Fields
	if kind == formKey {
		fields = []contact.Field{contact.PersonalNumber}
	}

	f := FormModel{
		kind:    kind,
		title:   title,
		fields:  fields,
		inputs:  make([]textinput.Model, len(fields)),
		initial: make([]string, len(fields)),
		errs:    make([]string, len(fields)),
		theme:   theme,
	}
	for i, field := range fields {
		ti := textinput.New()
		ti.Prompt = "> "
		ti.CharLimit = 64
		ti.Width = 40
		ti.TextStyle = theme.Input
		ti.PromptStyle = theme.Help
		switch field {
		case contact.OfficeNumber, contact.PersonalNumber:
			ti.Placeholder = "11 digits"
			ti.CharLimit = 11
		case contact.Organization:
			ti.Placeholder = "any text"
		default:
			ti.Placeholder = "Иван"
		}
		if initial != nil {
			f.initial[i] = initial.Get(field)
			ti.SetValue(f.initial[i])
		}
		f.inputs[i] = ti
	}
	f.inputs[0].Focus()
	return f
}

func (f FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			f.cancelled = true
			return f, nil
		case "tab", "down":
			return f.move(1), nil
		case "shift+tab", "up":
			return f.move(-1), nil
		case "ctrl+s":
			return f.submit(), nil
		case "enter":
			if f.focus == len(f.inputs)-1 {
				return f.submit(), nil
			}
			return f.move(1), nil
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	f.errs[f.focus] = ""
	return f, cmd
}

func (f FormModel) move(delta int) FormModel {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
	return f
}

func (f FormModel) submit() FormModel {
	valid := true
	for i, field := range f.fields {
		f.errs[i] = ""
		v := strings.TrimSpace(f.inputs[i].Value())
		if !f.checked(i, v) {
			continue
		}
		if err := contact.ValidateField(field, v); err != nil {
			f.errs[i] = err.Error()
			valid = false
		}
	}
	f.submitted = valid
	if !valid {
		for i := range f.errs {
			if f.errs[i] != "" {
				f.inputs[f.focus].Blur()
				f.focus = i
				f.inputs[i].Focus()
				break
			}
		}
	}
	return f
}

func (f FormModel) checked(i int, v string) bool {
	switch f.kind {
	case formFind:
		return false
	case formEdit:
		return v != f.initial[i]
	default:
		return true
	}
}

// Values returns the fields the user supplied: non-empty ones when
// searching, changed ones when editing, all of them otherwise.
func (f FormModel) Values() map[string]string {
	out := make(map[string]string)
	for i, field := range f.fields {
		v := strings.TrimSpace(f.inputs[i].Value())
		switch f.kind {
		case formFind:
			if v == "" {
				continue
			}
		case formEdit:
			if v == f.initial[i] {
				continue
			}
		}
		out[string(field)] = v
	}
	return out
}

// Contact returns the form as a full contact.
func (f FormModel) Contact() contact.Contact {
	var c contact.Contact
	for i, field := range f.fields {
		c.Set(field, strings.TrimSpace(f.inputs[i].Value()))
	}
	return c
}

func (f FormModel) View() string {
	var b strings.Builder
	b.WriteString(f.theme.Title.Render(f.title) + "\n")
	for i, field := range f.fields {
		b.WriteString(f.theme.Label.Render(field.Label()+":") + f.inputs[i].View() + "\n")
		if f.errs[i] != "" {
			b.WriteString(strings.Repeat(" ", 18) + f.theme.Error.Render(f.errs[i]) + "\n")
		}
	}
	b.WriteString("\n" + f.theme.Help.Render("tab/↓: next • shift+tab/↑: previous • enter on last field or ctrl+s: submit • esc: back"))
	return b.String()
}
