package tui

import (
	"github.com/charmbracelet/glamour"

	"github.com/jeanpaul/phonebook/internal/contact"
)

const helpMarkdown = `# Phonebook

## Menu
Pick an entry with **↑/↓** and **enter**, or press its number.

## Field rules
| Field | Rule |
| --- | --- |
| First name, last name, patronymic | one Cyrillic word starting with a capital letter |
| Organization | any non-empty text |
| Office number, personal number | exactly 11 digits |

The personal number identifies a contact: two contacts can never share one.

## Search
Fill in any fields. A contact is shown only when **every** filled field matches exactly.

## Browsing results
- **←/→** previous / next page
- **g** then a page number and **enter** to jump
- **esc** back to the menu
`

// renderHelp renders the help text for a terminal of the given width.
func renderHelp(width int) string {
	if width < 40 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width-4),
	)
	if err != nil {
		return helpMarkdown
	}
	out, err := r.Render(helpMarkdown + "\nName pattern: `" + contact.NamePattern + "`\n")
	if err != nil {
		return helpMarkdown
	}
	return out
}
