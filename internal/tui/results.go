package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeanpaul/phonebook/internal/export"
	"github.com/jeanpaul/phonebook/internal/phonebook"
)

// PageCount is the number of pages n records fill at size per page.
// An empty result still has one (empty) page.
func PageCount(n, size int) int {
	if size < 1 {
		size = 1
	}
	if n == 0 {
		return 1
	}
	return (n + size - 1) / size
}

// Paginate returns page (zero based) of records. Out of range pages are
// clamped to the first or last page.
func Paginate(records []phonebook.Record, page, size int) []phonebook.Record {
	if size < 1 {
		size = 1
	}
	last := PageCount(len(records), size) - 1
	page = max(0, min(page, last))
	start := min(page*size, len(records))
	end := min(start+size, len(records))
	return records[start:end]
}

var columnWidths = []int{5, 14, 12, 14, 18, 14, 15}

// ResultsModel shows sorted records one page at a time.
type ResultsModel struct {
	title    string
	records  []phonebook.Record
	table    table.Model
	pager    paginator.Model
	theme    Theme
	jumping  bool
	jumpBuf  string
	closed   bool
	pageSize int
}

func newResults(title string, records []phonebook.Record, pageSize int, theme Theme) ResultsModel {
	phonebook.SortByName(records)

	header := export.Header()
	cols := make([]table.Column, len(header))
	for i, h := range header {
		cols[i] = table.Column{Title: h, Width: columnWidths[i]}
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(pageSize+1),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Palette.Dim).
		BorderBottom(true).
		Bold(true).
		Foreground(theme.Palette.Accent)
	s.Selected = s.Selected.
		Foreground(theme.Palette.Text).
		Background(theme.Palette.Muted).
		Bold(false)
	t.SetStyles(s)

	p := paginator.New()
	p.Type = paginator.Arabic
	p.PerPage = pageSize
	p.SetTotalPages(len(records))

	r := ResultsModel{
		title:    title,
		records:  records,
		table:    t,
		pager:    p,
		theme:    theme,
		pageSize: pageSize,
	}
	r.refresh()
	return r
}

func (r *ResultsModel) refresh() {
	page := Paginate(r.records, r.pager.Page, r.pageSize)
	rows := make([]table.Row, len(page))
	for i, rec := range page {
		rows[i] = table.Row(export.Row(rec))
	}
	r.table.SetRows(rows)
	r.table.SetCursor(0)
}

// Page is the zero based page on screen.
func (r ResultsModel) Page() int { return r.pager.Page }

// Visible returns the records on the current page.
func (r ResultsModel) Visible() []phonebook.Record {
	return Paginate(r.records, r.pager.Page, r.pageSize)
}

func (r ResultsModel) Update(msg tea.Msg) (ResultsModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return r, nil
	}

	if r.jumping {
		switch key.String() {
		case "enter":
			if n, err := strconv.Atoi(r.jumpBuf); err == nil {
				r.gotoPage(n - 1)
			}
			r.jumping, r.jumpBuf = false, ""
		case "esc":
			r.jumping, r.jumpBuf = false, ""
		case "backspace":
			if len(r.jumpBuf) > 0 {
				r.jumpBuf = r.jumpBuf[:len(r.jumpBuf)-1]
			}
		default:
			if s := key.String(); len(s) == 1 && s[0] >= '0' && s[0] <= '9' {
				r.jumpBuf += s
			}
		}
		return r, nil
	}

	switch key.String() {
	case "esc", "q":
		r.closed = true
		return r, nil
	case "right", "l", "pgdown", "n":
		r.gotoPage(r.pager.Page + 1)
		return r, nil
	case "left", "h", "pgup", "p":
		r.gotoPage(r.pager.Page - 1)
		return r, nil
	case "home":
		r.gotoPage(0)
		return r, nil
	case "end":
		r.gotoPage(r.pager.TotalPages - 1)
		return r, nil
	case "g":
		r.jumping = true
		return r, nil
	}

	var cmd tea.Cmd
	r.table, cmd = r.table.Update(msg)
	return r, cmd
}

func (r *ResultsModel) gotoPage(page int) {
	last := PageCount(len(r.records), r.pageSize) - 1
	page = max(0, min(page, last))
	if page != r.pager.Page {
		r.pager.Page = page
		r.refresh()
	}
}

func (r ResultsModel) View() string {
	var b strings.Builder
	b.WriteString(r.theme.Title.Render(fmt.Sprintf("%s (%d)", r.title, len(r.records))) + "\n")
	if len(r.records) == 0 {
		b.WriteString(r.theme.Help.Render("No contacts found.") + "\n\n")
		b.WriteString(r.theme.Help.Render("esc: back"))
		return b.String()
	}
	b.WriteString(r.table.View() + "\n\n")
	b.WriteString(fmt.Sprintf("Page %s", r.pager.View()))
	if r.jumping {
		b.WriteString(r.theme.Confirm.Render("   go to page: " + r.jumpBuf + "_"))
	}
	b.WriteString("\n" + r.theme.Help.Render("←/→: page • home/end: first/last • g: jump to page • ↑/↓: row • esc: back"))
	return b.String()
}
