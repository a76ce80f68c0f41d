package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/example/cropview/internal/config"
	"github.com/example/cropview/internal/notify"
	"github.com/example/cropview/internal/theme"
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
	configPath   string
	selectAlerts bool
	commitAlerts bool
	themeName    string
	verbose      bool
	activeTheme  *theme.Theme
	logger       *slog.Logger
}

func (r *root) Program() string {
	return r.program
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func (r *root) subcommand(name string) string {
	return strings.TrimSpace(strings.Join([]string{r.program, name}, " "))
}

func newRoot() *root {
	r := &root{
		fs:       flag.NewFlagSet("cropview", flag.ExitOnError),
		program:  "cropview",
		notifier: notify.New(notify.LoadPreferences()),
		config:   config.New(),
	}
	r.fs.StringVar(&r.configPath, "config", "", "configuration file to load instead of the default search path")
	r.fs.BoolVar(&r.selectAlerts, "notify-select", false, "show a desktop notification when a crop rectangle is picked")
	r.fs.BoolVar(&r.commitAlerts, "notify-commit", false, "show a desktop notification when the crop is confirmed")
	// Precedence: CLI > Env > Config > Default
	r.fs.StringVar(&r.themeName, "theme", "", "color theme to use (default, light, contrast or a theme file)")
	r.fs.BoolVar(&r.verbose, "v", false, "log interaction details to stderr")
	r.fs.Usage = usageFunc(r)
	return r
}

// loadConfig reads the configuration file. Flags the user did not set take
// their value from it.
func (r *root) loadConfig() {
	override := configPathOverride
	if r.configPath != "" {
		override = r.configPath
	}
	if env := os.Getenv("CROPVIEW_CONFIG"); env != "" && override == "" {
		override = env
	}
	loader := config.NewLoader(version, override)
	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
		cfg = config.New()
	}
	r.config = cfg

	set := map[string]bool{}
	r.fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if !set["notify-select"] {
		r.selectAlerts = cfg.Notify.Select
	}
	if !set["notify-commit"] {
		r.commitAlerts = cfg.Notify.Commit
	}
}

// resolveTheme picks the theme named on the command line, in the
// environment or in the config file, in that order.
func (r *root) resolveTheme() *theme.Theme {
	themeName := r.themeName
	if themeName == "" {
		themeName = os.Getenv("CROPVIEW_THEME")
	}
	if themeName == "" {
		themeName = r.config.Theme
	}
	t, err := theme.NewLoader(r.config.Themes).Load(themeName)
	if err != nil {
		if themeName != "" && themeName != "default" {
			fmt.Fprintf(os.Stderr, "warning: failed to load theme '%s': %v. using default.\n", themeName, err)
		}
		t = theme.Default()
	}
	return t
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	r.loadConfig()
	if r.notifier != nil {
		r.notifier.Enable(notify.EventSelect, r.selectAlerts)
		r.notifier.Enable(notify.EventCommit, r.commitAlerts)
	}
	level := slog.LevelWarn
	if r.verbose {
		level = slog.LevelDebug
	}
	r.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	r.activeTheme = r.resolveTheme()

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var (
		cmd runnable
		err error
	)
	switch cmdName {
	case "open":
		cmd, err = parseOpenCmd(subArgs, r)
	case "clipboard":
		cmd, err = parseClipboardCmd(subArgs, r)
	case "grab":
		cmd, err = parseGrabCmd(subArgs, r)
	case "themes":
		cmd, err = parseThemesCmd(subArgs, r)
	case "config":
		cmd, err = parseConfigCmd(subArgs, r)
	case "version":
		cmd = &versionCmd{r: r}
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
