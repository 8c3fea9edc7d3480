package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"strings"

	"github.com/example/snapmark/internal/config"
	"github.com/example/snapmark/internal/logutil"
	"github.com/example/snapmark/internal/notify"
	"github.com/example/snapmark/internal/theme"
)

var (
	version            = "dev"
	commit             = ""
	date               = ""
	configPathOverride = ""
)

type runnable interface{ Run() error }

type root struct {
	fs            *flag.FlagSet
	program       string
	notifier      *notify.Notifier
	config        *config.Config
	configPath    string
	envFile       string
	captureAlerts bool
	saveAlerts    bool
	copyAlerts    bool
	themeName     string
	verbose       bool
	logFile       string
	activeTheme   *theme.Theme
	debug         *log.Logger
}

func (r *root) Program() string {
	return r.program
}

func (r *root) subcommand(name string) *root {
	child := *r
	child.fs = nil
	child.program = strings.TrimSpace(strings.Join([]string{r.program, name}, " "))
	return &child
}

func (r *root) FlagSet() *flag.FlagSet {
	return r.fs
}

func newRoot() *root {
	r := &root{
		fs:      flag.NewFlagSet("snapmark", flag.ExitOnError),
		program: "snapmark",
	}
	// Notification defaults come from the rc file, which is only known
	// after -config is parsed, so the flags start unset and are resolved
	// in Run.
	r.fs.BoolVar(&r.captureAlerts, "notify-capture", false, "show a desktop notification after finishing a region")
	r.fs.BoolVar(&r.saveAlerts, "notify-save", false, "show a desktop notification after saving an image")
	r.fs.BoolVar(&r.copyAlerts, "notify-copy", false, "show a desktop notification after copying to the clipboard")

	// Precedence: CLI > Env > Config > Default
	r.fs.StringVar(&r.themeName, "theme", "", "color theme name or file (see the themes command)")
	r.fs.StringVar(&r.configPath, "config", configPathOverride, "path to an rc file to load instead of the default location")
	r.fs.StringVar(&r.envFile, "env-file", "", "dotenv file with SNAPMARK_* overrides (default ./.env when present)")
	r.fs.BoolVar(&r.verbose, "verbose", false, "log every gesture and key to the log output")
	r.fs.StringVar(&r.logFile, "log-file", "", "write logs to this file instead of stderr, rotating at 10MB")
	r.fs.Usage = usageFunc(r)
	return r
}

func (r *root) Run(args []string) error {
	if err := r.fs.Parse(args); err != nil {
		return err
	}
	if r.fs.NArg() < 1 {
		return &UsageError{of: r}
	}
	closeLog, err := logutil.Setup(r.logFile)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer closeLog()

	if r.config == nil {
		loader := config.NewLoader(version, r.configPath)
		loader.EnvFile = r.envFile
		cfg, err := loader.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to load config: %v\n", err)
			cfg = config.New()
		}
		r.config = cfg
	}
	r.applyNotifyDefaults()

	if r.notifier == nil {
		r.notifier = notify.New(notify.LoadPreferences(), nil)
	}
	r.notifier.Enable(notify.EventCapture, r.captureAlerts)
	r.notifier.Enable(notify.EventSave, r.saveAlerts)
	r.notifier.Enable(notify.EventCopy, r.copyAlerts)

	r.activeTheme = r.resolveTheme()
	r.debug = logutil.Debug(r.verbose)

	cmdName := r.fs.Arg(0)
	subArgs := r.fs.Args()[1:]

	var cmd runnable
	switch cmdName {
	case "capture":
		cmd, err = parseCaptureCmd(subArgs, r.subcommand("capture"))
	case "open":
		cmd, err = parseOpenCmd(subArgs, r.subcommand("open"))
	case "monitors":
		cmd, err = parseMonitorsCmd(subArgs, r.subcommand("monitors"))
	case "themes":
		cmd, err = parseThemesCmd(subArgs, r.subcommand("themes"))
	case "config":
		cmd, err = parseConfigCmd(subArgs, r.subcommand("config"))
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

// applyNotifyDefaults fills notification switches the command line left
// alone from the loaded config.
func (r *root) applyNotifyDefaults() {
	set := map[string]bool{}
	r.fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	if !set["notify-capture"] {
		r.captureAlerts = r.config.Notify.Capture
	}
	if !set["notify-save"] {
		r.saveAlerts = r.config.Notify.Save
	}
	if !set["notify-copy"] {
		r.copyAlerts = r.config.Notify.Copy
	}
}

// resolveTheme picks the theme by -theme, then the config (which already
// carries SNAPMARK_THEME), then the built-in default.
func (r *root) resolveTheme() *theme.Theme {
	themeName := r.themeName
	if themeName == "" && r.config != nil {
		themeName = r.config.Theme
	}
	if r.config != nil {
		if t, ok := r.config.Themes[themeName]; ok {
			return t
		}
	}
	t, err := theme.NewLoader().Load(themeName)
	if err != nil {
		if themeName != "" && themeName != "default" {
			fmt.Fprintf(os.Stderr, "warning: failed to load theme '%s': %v. using default.\n", themeName, err)
		}
		return theme.Default()
	}
	return t
}

func main() {
	r := newRoot()
	err := r.Run(os.Args[1:])
	if err == nil {
		return
	}
	var uerr *UsageError
	if errors.As(err, &uerr) {
		fmt.Fprintln(os.Stderr, uerr.Error())
		os.Exit(2)
	}
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func (r *root) notifyCapture(img image.Image) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Capture(img)
}

func (r *root) notifySave(path string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Save(path)
}

func (r *root) notifyCopy(detail string) {
	if r == nil || r.notifier == nil {
		return
	}
	r.notifier.Copy(detail)
}
