package tui

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Action is what a main menu entry does.
type Action int

const (
	ActionNone Action = iota
	ActionList
	ActionFind
	ActionAdd
	ActionUpdate
	ActionDelete
	ActionHelp
	ActionQuit
)

type item struct {
	title, desc string
	action      Action
}

func (i item) Title() string       { return i.title }
func (i item) Description() string { return i.desc }
func (i item) FilterValue() string { return i.title }

type MenuModel struct {
	list     list.Model
	selected Action
}

func NewMenuModel(theme Theme) MenuModel {
	items := []list.Item{
		item{title: "1. Show all contacts", desc: "Browse every contact, sorted by name", action: ActionList},
		item{title: "2. Find contacts", desc: "Search by one or more exact field values", action: ActionFind},
		item{title: "3. Add contact", desc: "Create a new contact", action: ActionAdd},
		item{title: "4. Update contact", desc: "Change fields of a contact by personal number", action: ActionUpdate},
		item{title: "5. Delete contact", desc: "Remove a contact by personal number", action: ActionDelete},
		item{title: "?. Help", desc: "Keys and field rules", action: ActionHelp},
		item{title: "0. Exit", desc: "Close the phonebook", action: ActionQuit},
	}

	d := list.NewDefaultDelegate()
	d.Styles.SelectedTitle = lipgloss.NewStyle().Foreground(theme.Palette.Accent).Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(theme.Palette.Accent).PaddingLeft(1)
	d.Styles.SelectedDesc = d.Styles.SelectedTitle.Foreground(theme.Palette.Dim)

	l := list.New(items, d, 60, 20)
	l.Title = "Main menu"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = lipgloss.NewStyle().Foreground(theme.Palette.Accent).Bold(true).MarginLeft(2)

	return MenuModel{list: l}
}

func (m MenuModel) Update(msg tea.Msg) (MenuModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			if it, ok := m.list.SelectedItem().(item); ok {
				m.selected = it.action
			}
			return m, nil
		case "1", "2", "3", "4", "5", "0", "?":
			// number shortcuts mirror the item prefixes
			for i, li := range m.list.Items() {
				if it := li.(item); it.title[:1] == key.String() {
					m.list.Select(i)
					m.selected = it.action
				}
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// Selected returns and clears the chosen action.
func (m *MenuModel) Selected() Action {
	a := m.selected
	m.selected = ActionNone
	return a
}

func (m *MenuModel) SetSize(w, h int) {
	m.list.SetSize(w, h)
}

func (m MenuModel) View() string {
	return m.list.View()
}
