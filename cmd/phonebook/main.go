package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeanpaul/phonebook/internal/config"
	"github.com/jeanpaul/phonebook/internal/headless"
	"github.com/jeanpaul/phonebook/internal/health"
	"github.com/jeanpaul/phonebook/internal/logger"
	"github.com/jeanpaul/phonebook/internal/phonebook"
	"github.com/jeanpaul/phonebook/internal/tui"
)

// Set with -ldflags "-X main.version=..."
var (
	version = "dev"
	commit  = "none"
)

var theme = tui.NewTheme("green")

func main() {
	dbFlag := flag.String("db", "", "Phonebook file (default from config)")
	pageSizeFlag := flag.Int("page-size", 0, "Contacts per page in the browser")
	strictFlag := flag.Bool("strict-updates", false, "Validate updated fields like new contacts")
	themeFlag := flag.String("theme", "", "Color theme (green, amber, mono)")
	logLevelFlag := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	logFileFlag := flag.String("log-file", "", "Append logs to this file ('-' for stderr)")
	versionFlag := flag.Bool("version", false, "Print version")
	helpFlag := flag.Bool("help", false, "Show help")
	flag.BoolVar(helpFlag, "h", false, "Show help")

	flag.Usage = showHelp
	flag.Parse()

	if *helpFlag {
		showHelp()
		os.Exit(0)
	}
	if *versionFlag {
		fmt.Printf("phonebook %s (%s)\n", version, commit)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fatal("config error: %s", err)
	}

	// Flags win over config and environment
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "db":
			cfg.DBPath = *dbFlag
		case "page-size":
			cfg.PageSize = *pageSizeFlag
		case "strict-updates":
			cfg.StrictUpdates = *strictFlag
		case "theme":
			cfg.Theme = *themeFlag
		case "log-level":
			cfg.Log.Level = *logLevelFlag
		case "log-file":
			cfg.Log.File = *logFileFlag
		}
	})
	if err := cfg.Validate(); err != nil {
		fatal("%s", err)
	}
	theme = tui.NewTheme(cfg.Theme)

	args := flag.Args()
	if len(args) > 0 {
		switch args[0] {
		case "help":
			showHelp()
			return
		case "init":
			cmdInit(cfg)
			return
		case "doctor":
			cmdDoctor(cfg)
			return
		}
	}

	log := logger.New(logger.Options{
		Level:  cfg.Log.Level,
		File:   cfg.Log.File,
		Format: cfg.Log.Format,
	})
	code := run(log.Logger, cfg, args)
	if err := log.Close(); err != nil {
		printErr("close log: %s", err)
	}
	os.Exit(code)
}

// run opens the phonebook, runs one command or the interactive shell and
// closes the phonebook again. It returns the process exit code.
func run(log *slog.Logger, cfg *config.Config, args []string) int {
	pb, err := phonebook.Open(cfg.DBPath,
		phonebook.WithLogger(log),
		phonebook.WithStrictUpdates(cfg.StrictUpdates),
	)
	if err != nil {
		printErr("%s", err)
		return 1
	}

	var code int
	if len(args) > 0 {
		code = runHeadless(pb, args[0], args[1:])
	} else {
		code = launchTUI(pb, cfg)
	}
	if err := pb.Close(); err != nil {
		log.Error("close phonebook", "err", err)
		printErr("close phonebook: %s", err)
		code = 1
	}
	return code
}

func runHeadless(pb *phonebook.Phonebook, cmd string, rest []string) int {
	fields, err := parseFieldArgs(rest)
	if err != nil {
		printErr("%s", err)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := headless.Run(ctx, pb, os.Stdout, cmd, fields); err != nil {
		// the outcome message is already on stdout
		if !errors.Is(err, headless.ErrFailed) {
			printErr("%s", err)
		}
		return 1
	}
	return 0
}

func launchTUI(pb *phonebook.Phonebook, cfg *config.Config) int {
	m := tui.NewModel(pb, tui.Options{
		PageSize: cfg.PageSize,
		Theme:    cfg.Theme,
		DBPath:   cfg.DBPath,
	})
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		printErr("%s", err)
		return 1
	}
	return 0
}

func cmdInit(cfg *config.Config) {
	path, err := config.Save(cfg, config.Dir())
	if err != nil {
		fatal("write config: %s", err)
	}
	fmt.Println(theme.Success.Render("✓ Wrote " + path))
}

func cmdDoctor(cfg *config.Config) {
	fmt.Println(theme.Banner.Render("  Phonebook doctor"))
	fmt.Println()

	s := health.Check(cfg.DBPath)
	check := func(ok bool, msg string) {
		if ok {
			fmt.Printf("  %s %s\n", theme.Success.Render("✓"), msg)
		} else {
			fmt.Printf("  %s %s\n", theme.Error.Render("✗"), msg)
		}
	}

	check(true, "file: "+s.Path)
	if !s.Exists {
		check(true, "file does not exist yet, it will be created on first use")
	}
	check(s.Writable, "directory is writable")
	if s.Error != "" {
		check(false, s.Error)
	}
	if s.Exists && s.Error == "" {
		check(true, fmt.Sprintf("%d records read in %s", s.Records, s.Latency))
	}
	check(len(s.Invalid) == 0, fmt.Sprintf("invalid records: %s", listOrNone(s.Invalid)))
	check(len(s.Duplicates) == 0, fmt.Sprintf("duplicate personal numbers: %s", listOrNone(s.Duplicates)))

	if !s.Healthy() {
		os.Exit(1)
	}
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

func printErr(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(os.Stderr, theme.Error.Render("error: "+msg))
}

func fatal(format string, args ...any) {
	printErr(format, args...)
	os.Exit(1)
}

func showHelp() {
	help := `
` + theme.Banner.Render("Phonebook") + ` - contact directory for your terminal

` + theme.Title.Render("USAGE:") + `
  phonebook [flags]                 Start the interactive menu
  phonebook [flags] <command> ...   Run one command and exit

` + theme.Title.Render("COMMANDS:") + `
  list                              Show all contacts sorted by name
  find --<field> <value> ...        Show contacts matching every given field
  add --<field> <value> ...         Add a contact (all six fields required)
  update --key <number> --<field> <value> ...
                                    Change fields of the contact with that personal number
  delete --key <number>             Delete the contact with that personal number
  export --file <path>              Write all contacts to .xlsx or .yaml
  import --file <path>              Add contacts from an .xlsx sheet
  doctor                            Check the phonebook file
  init                              Write the current settings to the config file
  help                              Show this help

` + theme.Title.Render("FIELDS:") + `
  --first-name --last-name --patronymic --organization --office-number --personal-number

` + theme.Title.Render("FLAGS:") + `
  --db <path>                       Phonebook file
  --page-size <n>                   Contacts per page (default 5)
  --strict-updates                  Validate updated values like new contacts
  --theme <name>                    green, amber or mono
  --log-level <level>               debug, info, warn or error
  --log-file <path>                 Append logs to a file ('-' for stderr)
  --version                         Show version
  --help, -h                        Show this help

` + theme.Title.Render("EXAMPLES:") + `
  phonebook add --first-name Иван --last-name Иванов --patronymic Иванович \
    --organization "Effective Mobile" --office-number 89991575656 --personal-number 89991575656
  phonebook find --last-name Иванов
  phonebook update --key 89991575656 --organization "Dunder Mifflin"

` + theme.Help.Render("Config: "+config.Dir()+"/config.yaml, env PHONEBOOK_*") + `
`
	fmt.Println(help)
}
