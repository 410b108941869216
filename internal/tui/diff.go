package tui

import (
	"fmt"
	"strings"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"

	"github.com/jeanpaul/phonebook/internal/contact"
)

func recordText(c contact.Contact) string {
	var b strings.Builder
	for _, f := range contact.Fields {
		fmt.Fprintf(&b, "%s: %s\n", f.Label(), c.Get(f))
	}
	return b.String()
}

// RecordDiff renders the change from before to after as a unified diff.
// It is empty when nothing changes.
func RecordDiff(before, after contact.Contact) string {
	a, b := recordText(before), recordText(after)
	if a == b {
		return ""
	}
	edits := myers.ComputeEdits(span.URIFromPath("before"), a, b)
	return fmt.Sprint(gotextdiff.ToUnified("before", "after", a, edits))
}

func (t Theme) renderDiff(diff string) string {
	var b strings.Builder
	for _, line := range strings.Split(strings.TrimRight(diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			b.WriteString(t.Help.Render(line))
		case strings.HasPrefix(line, "@@"):
			b.WriteString(t.DiffHunk.Render(line))
		case strings.HasPrefix(line, "+"):
			b.WriteString(t.DiffAdd.Render(line))
		case strings.HasPrefix(line, "-"):
			b.WriteString(t.DiffDel.Render(line))
		default:
			b.WriteString(line)
		}
		b.WriteString("\n")
	}
	return b.String()
}
