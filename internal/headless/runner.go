package headless

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/jeanpaul/phonebook/internal/contact"
	"github.com/jeanpaul/phonebook/internal/export"
	"github.com/jeanpaul/phonebook/internal/phonebook"
)

// KeyArg selects the contact to update or delete.
const KeyArg = "key"

// FileArg names the export or import file.
const FileArg = "file"

// ErrFailed is returned when the store reports an unsuccessful outcome. The
// outcome message has already been written to the output.
var ErrFailed = errors.New("operation failed")

// Commands lists what Run understands.
var Commands = []string{"list", "find", "add", "update", "delete", "export", "import"}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

// Run executes one phonebook command without the terminal UI. Results go to
// out; contact fields come from args keyed by field name.
func Run(ctx context.Context, store phonebook.Store, out io.Writer, cmd string, args map[string]string) error {
	switch cmd {
	case "list":
		return printRecords(out, store.GetContacts(phonebook.Filter{}))

	case "find":
		f, err := phonebook.NewFilter(args)
		if err != nil {
			return err
		}
		return printRecords(out, store.GetContacts(f))

	case "add":
		c, err := contactFrom(args)
		if err != nil {
			return err
		}
		return report(out, store.AddContact(c))

	case "update":
		key, rest, err := splitKey(args)
		if err != nil {
			return err
		}
		u, err := phonebook.NewUpdate(rest)
		if err != nil {
			return err
		}
		return report(out, store.UpdateContact(key, u))

	case "delete":
		key, _, err := splitKey(args)
		if err != nil {
			return err
		}
		return report(out, store.DeleteContact(key))

	case "export":
		return exportTo(out, store, args[FileArg])

	case "import":
		return importFrom(ctx, out, store, args[FileArg])

	default:
		return fmt.Errorf("unknown command %q (expected one of %s)", cmd, strings.Join(Commands, ", "))
	}
}

func contactFrom(args map[string]string) (contact.Contact, error) {
	var c contact.Contact
	var missing []string
	for _, f := range contact.Fields {
		v, ok := args[string(f)]
		if !ok {
			missing = append(missing, string(f))
			continue
		}
		c.Set(f, v)
	}
	for k := range args {
		if _, err := contact.ParseField(k); err != nil {
			return c, fmt.Errorf("%w: %q", phonebook.ErrUnknownField, k)
		}
	}
	if len(missing) > 0 {
		return c, fmt.Errorf("missing fields: %s", strings.Join(missing, ", "))
	}
	return c, nil
}

func splitKey(args map[string]string) (string, map[string]string, error) {
	key, ok := args[KeyArg]
	if !ok {
		// a lone personal number identifies the contact as well
		if pn, has := args[string(contact.PersonalNumber)]; has && len(args) == 1 {
			return pn, nil, nil
		}
		return "", nil, fmt.Errorf("--%s <personal number> is required", KeyArg)
	}
	rest := make(map[string]string, len(args))
	for k, v := range args {
		if k != KeyArg {
			rest[k] = v
		}
	}
	return key, rest, nil
}

func report(out io.Writer, o phonebook.Outcome) error {
	if o.ID != 0 && o.Success {
		fmt.Fprintf(out, "%s (id %d)\n", o.Message, o.ID)
	} else {
		fmt.Fprintln(out, o.Message)
	}
	if !o.Success {
		return fmt.Errorf("%w: %w", ErrFailed, o.Err)
	}
	return nil
}

func printRecords(out io.Writer, records []phonebook.Record) error {
	if len(records) == 0 {
		fmt.Fprintln(out, "No contacts found.")
		return nil
	}
	phonebook.SortByName(records)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(export.Header()...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	for _, r := range records {
		t.Row(export.Row(r)...)
	}
	_, err := fmt.Fprintln(out, t.Render())
	return err
}

func exportTo(out io.Writer, store phonebook.Store, path string) error {
	if path == "" {
		return fmt.Errorf("--%s <path> is required", FileArg)
	}
	format, err := export.FormatFor(path)
	if err != nil {
		return err
	}
	records := store.GetContacts(phonebook.Filter{})
	phonebook.SortByName(records)

	switch format {
	case export.XLSX:
		err = export.WriteXLSX(path, records)
	case export.YAML:
		var f *os.File
		f, err = os.Create(path)
		if err != nil {
			return err
		}
		err = export.WriteYAML(f, records)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	fmt.Fprintf(out, "Exported %d contacts to %s\n", len(records), path)
	return nil
}

func importFrom(ctx context.Context, out io.Writer, store phonebook.Store, path string) error {
	if path == "" {
		return fmt.Errorf("--%s <path> is required", FileArg)
	}
	contacts, err := export.ReadXLSX(path)
	if err != nil {
		return fmt.Errorf("import %s: %w", path, err)
	}

	added, rejected := 0, 0
	for i, c := range contacts {
		if err := ctx.Err(); err != nil {
			return err
		}
		o := store.AddContact(c)
		if o.Success {
			added++
			continue
		}
		rejected++
		fmt.Fprintf(out, "row %d (%s): %s\n", i+2, c.PersonalNumber, o.Message)
	}
	fmt.Fprintf(out, "Imported %d contacts, %d rejected\n", added, rejected)
	if rejected > 0 {
		return fmt.Errorf("%w: %d rows rejected", ErrFailed, rejected)
	}
	return nil
}
