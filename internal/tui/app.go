// Package tui is the interactive terminal shell around the phonebook store.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeanpaul/phonebook/internal/contact"
	"github.com/jeanpaul/phonebook/internal/phonebook"
)

type screen int

const (
	screenMenu screen = iota
	screenForm
	screenResults
	screenPreview
	screenConfirmDelete
	screenHelp
)

// pending is a form submission waiting for its next step.
type pending struct {
	action Action
	key    string
	before contact.Contact
	update phonebook.Update
	diff   string
}

type Options struct {
	PageSize int
	Theme    string
	DBPath   string
}

type Model struct {
	width, height int
	screen        screen
	store         phonebook.Store
	opts          Options
	theme         Theme

	menu    MenuModel
	form    FormModel
	results ResultsModel
	help    viewport.Model
	pending pending

	status   string
	statusOK bool
}

func NewModel(store phonebook.Store, opts Options) Model {
	if opts.PageSize < 1 {
		opts.PageSize = 5
	}
	theme := NewTheme(opts.Theme)
	return Model{
		store:  store,
		opts:   opts,
		theme:  theme,
		menu:   NewMenuModel(theme),
		help:   viewport.New(80, 20),
		screen: screenMenu,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.menu.SetSize(msg.Width, max(msg.Height-10, 8))
		m.help.Width = msg.Width
		m.help.Height = max(msg.Height-4, 5)
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	}

	switch m.screen {
	case screenMenu:
		return m.updateMenu(msg)
	case screenForm:
		return m.updateForm(msg)
	case screenResults:
		var cmd tea.Cmd
		m.results, cmd = m.results.Update(msg)
		if m.results.closed {
			m.screen = screenMenu
		}
		return m, cmd
	case screenPreview, screenConfirmDelete:
		return m.updateConfirm(msg)
	case screenHelp:
		if key, ok := msg.(tea.KeyMsg); ok && (key.String() == "esc" || key.String() == "q") {
			m.screen = screenMenu
			return m, nil
		}
		var cmd tea.Cmd
		m.help, cmd = m.help.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.menu, cmd = m.menu.Update(msg)

	action := m.menu.Selected()
	if action != ActionNone {
		m.status = ""
	}
	switch action {
	case ActionList:
		m.results = newResults("All contacts", m.store.GetContacts(phonebook.Filter{}), m.opts.PageSize, m.theme)
		m.screen = screenResults
	case ActionFind:
		m.openForm(action, newForm(formFind, "Find contacts", m.theme, nil))
	case ActionAdd:
		m.openForm(action, newForm(formAdd, "New contact", m.theme, nil))
	case ActionUpdate:
		m.openForm(action, newForm(formKey, "Update contact", m.theme, nil))
	case ActionDelete:
		m.openForm(action, newForm(formKey, "Delete contact", m.theme, nil))
	case ActionHelp:
		m.help.SetContent(renderHelp(m.width))
		m.help.GotoTop()
		m.screen = screenHelp
	case ActionQuit:
		return m, tea.Quit
	}
	return m, cmd
}

func (m *Model) openForm(action Action, f FormModel) {
	m.pending = pending{action: action}
	m.form = f
	m.screen = screenForm
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)

	if m.form.cancelled {
		m.screen = screenMenu
		return m, nil
	}
	if !m.form.submitted {
		return m, cmd
	}

	switch m.pending.action {
	case ActionFind:
		f, err := phonebook.NewFilter(m.form.Values())
		if err != nil {
			m.setStatus(err.Error(), false)
			m.screen = screenMenu
			return m, nil
		}
		m.results = newResults("Search results", m.store.GetContacts(f), m.opts.PageSize, m.theme)
		m.screen = screenResults

	case ActionAdd:
		o := m.store.AddContact(m.form.Contact())
		text := o.Message
		if o.Success {
			text = fmt.Sprintf("%s (id %d)", o.Message, o.ID)
		}
		m.setStatus(text, o.Success)
		m.screen = screenMenu

	case ActionUpdate:
		if m.form.kind == formKey {
			return m.startEdit(), nil
		}
		u, err := phonebook.NewUpdate(m.form.Values())
		if err != nil {
			m.setStatus(err.Error(), false)
			m.screen = screenMenu
			return m, nil
		}
		m.pending.update = u
		m.pending.diff = RecordDiff(m.pending.before, m.form.Contact())
		if m.pending.diff == "" {
			m.setStatus("Nothing to update.", true)
			m.screen = screenMenu
			return m, nil
		}
		m.screen = screenPreview

	case ActionDelete:
		key := m.form.Values()[string(contact.PersonalNumber)]
		found := m.store.GetContacts(phonebook.Where(contact.PersonalNumber, key))
		if len(found) == 0 {
			m.setStatus(phonebook.MsgDoesNotExist, false)
			m.screen = screenMenu
			return m, nil
		}
		m.pending.key = key
		m.pending.before = found[0].Contact
		m.screen = screenConfirmDelete
	}
	return m, nil
}

// startEdit looks up the contact named in the key form and opens the
// edit form prefilled with its values.
func (m Model) startEdit() Model {
	key := m.form.Values()[string(contact.PersonalNumber)]
	found := m.store.GetContacts(phonebook.Where(contact.PersonalNumber, key))
	if len(found) == 0 {
		m.setStatus(phonebook.MsgNotFound, false)
		m.screen = screenMenu
		return m
	}
	m.pending.key = key
	m.pending.before = found[0].Contact
	m.form = newForm(formEdit, "Edit "+found[0].Contact.String(), m.theme, &found[0].Contact)
	return m
}

func (m Model) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "y", "Y", "enter":
		var o phonebook.Outcome
		if m.screen == screenPreview {
			o = m.store.UpdateContact(m.pending.key, m.pending.update)
		} else {
			o = m.store.DeleteContact(m.pending.key)
		}
		m.setStatus(o.Message, o.Success)
		m.screen = screenMenu
	case "n", "N", "esc":
		m.setStatus("Cancelled.", true)
		m.screen = screenMenu
	}
	return m, nil
}

func (m *Model) setStatus(msg string, ok bool) {
	m.status = msg
	m.statusOK = ok
}

// Status returns the last outcome message shown to the user.
func (m Model) Status() string { return m.status }

func (m Model) View() string {
	var b strings.Builder

	switch m.screen {
	case screenMenu:
		b.WriteString(m.theme.Banner.Render(Banner) + "\n")
		if m.opts.DBPath != "" {
			b.WriteString(m.theme.Help.Render("  "+m.opts.DBPath) + "\n\n")
		}
		b.WriteString(m.menu.View())
		b.WriteString("\n" + m.theme.Help.Render("  ↑/↓: move • enter or 0-5: select • ?: help • ctrl+c: quit"))
	case screenForm:
		b.WriteString(m.theme.Box.Render(m.form.View()))
	case screenResults:
		b.WriteString(m.results.View())
	case screenPreview:
		b.WriteString(m.theme.Title.Render("Update "+m.pending.before.String()) + "\n")
		b.WriteString(m.theme.Box.Render(m.theme.renderDiff(m.pending.diff)) + "\n")
		b.WriteString(m.theme.Confirm.Render("Apply these changes? [y/n]"))
	case screenConfirmDelete:
		b.WriteString(m.theme.Box.Render(recordText(m.pending.before)) + "\n")
		b.WriteString(m.theme.Confirm.Render(fmt.Sprintf("Delete %s? [y/n]", m.pending.before.String())))
	case screenHelp:
		b.WriteString(m.help.View() + "\n")
		b.WriteString(m.theme.Help.Render("↑/↓: scroll • esc: back"))
	}

	if m.status != "" {
		style := m.theme.Error
		prefix := "✗ "
		if m.statusOK {
			style = m.theme.Success
			prefix = "✓ "
		}
		b.WriteString("\n\n" + style.Render(prefix+m.status))
	}
	return b.String()
}
