package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/example/markup/internal/config"
	"github.com/example/markup/internal/export"
	"github.com/example/markup/internal/notify"
	"github.com/example/markup/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs           *flag.FlagSet
	program      string
	notifier     *notify.Notifier
	config       *config.Config
	loader       *config.Loader
	exportAlerts bool
	copyAlerts   bool
	themeName    string
	activeTheme  *theme.Theme
	stdin        io.Reader
	stdout       io.Writer
	stderr       io.Writer
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func (r *root) Template() string {
	return "root.txt"
}

// subcommand returns a copy of r named for the given subcommand. The copy
// has no flag set of its own.
func (r *root) subcommand(name string) *root {
	c := *r
	c.program = strings.TrimSpace(r.program + " " + name)
	c.fs = nil
	return &c
}

func newRoot() *root {
	loader := config.NewLoader(version, configPathOverride)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}

	r := &root{
		fs:       flag.NewFlagSet("markup", flag.ExitOnError),
		program:  "markup",
		notifier: notify.New(notify.LoadPreferences()),
		config:   cfg,
		loader:   loader,
		stdin:    os.Stdin,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
	r.fs.BoolVar(&r.exportAlerts, "notify-export", cfg.Notify.Export, "show a desktop notification after exporting an image")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", cfg.Notify.Copy, "show a desktop notification after copying to the clipboard")
	r.fs.StringVar(&r.themeName, "theme", "", "color theme to use (default, dark, light)")
	r.fs.Usage = usageFunc(r)
	return r
}

// resolveTheme applies CLI > env > config > default precedence.
func (r *root) resolveTheme() *theme.Theme {
	name := r.config.ThemeName(r.themeName)
	t, err := r.config.LoadTheme(theme.NewLoader(), name)
	if err != nil {
		if name != "default" {
			fmt.Fprintf(r.stderr, "warning: failed to load theme '%s': %v. using default.\n", name, err)
		}
		t = theme.Default()
	}
	return t
}

// exporter returns an Exporter that raises the enabled notifications.
func (r *root) exporter() *export.Exporter {
	return export.New(export.WithNotifier(r.notifier))
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	r.notifier.Enable(notify.EventExport, r.exportAlerts)
	r.notifier.Enable(notify.EventCopy, r.copyAlerts)
	r.activeTheme = r.resolveTheme()

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "annotate":
		cmd, err = parseAnnotateCmd(subArgs, r.subcommand(cmdName))
	case "script":
		cmd, err = parseScriptCmd(subArgs, r.subcommand(cmdName))
	case "monitors":
		cmd, err = parseMonitorsCmd(subArgs, r.subcommand(cmdName))
	case "config":
		cmd, err = parseConfigCmd(subArgs, r.subcommand(cmdName))
	case "version":
		cmd = &versionCmd{root: r}
	case "help":
		cmd, err = parseHelpCmd(subArgs, r)
	default:
		err = &UsageError{of: r}
	}
	if err != nil {
		return err
	}
	return cmd.Run()
}

func main() {
	r := newRoot()
	if err := r.Run(os.Args[1:]); err != nil {
		var uerr *UsageError
		if errors.As(err, &uerr) {
			fmt.Fprintln(os.Stderr, uerr.Error())
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
