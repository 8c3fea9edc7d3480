package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/example/snapmark/internal/config"
	"github.com/example/snapmark/internal/theme"
)

type configCmd struct {
	*root
	fs     *flag.FlagSet
	output string
}

func parseConfigCmd(args []string, r *root) (*configCmd, error) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	c := &configCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	fs.StringVar(&c.output, "output", "", "file to write for save (default: the loaded rc file or the user config dir)")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *configCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *configCmd) Template() string {
	return "config.txt"
}

func (c *configCmd) Run() error {
	args := c.fs.Args()
	if len(args) < 1 {
		return &UsageError{of: c}
	}

	switch args[0] {
	case "print":
		fmt.Fprint(os.Stdout, c.current().String())
		return nil
	case "save":
		return c.runSave()
	case "path":
		return c.runPath()
	default:
		return fmt.Errorf("unknown config command: %s", args[0])
	}
}

func (c *configCmd) current() *config.Config {
	if c.root.config == nil {
		return config.New()
	}
	return c.root.config
}

func (c *configCmd) loader() *config.Loader {
	return config.NewLoader(version, c.root.configPath)
}

func (c *configCmd) runSave() error {
	path := c.output
	if path == "" {
		path = c.loader().GetConfigPath()
	}
	if path == "" {
		path = config.DefaultPath()
	}
	if path == "" {
		return fmt.Errorf("no config location: pass -output")
	}
	if err := config.Save(c.current(), path); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Configuration saved to %s\n", path)
	return nil
}

func (c *configCmd) runPath() error {
	loaded := c.loader().GetConfigPath()
	if loaded == "" {
		loaded = "(none)"
	}
	fmt.Fprintf(os.Stdout, "loaded: %s\n", loaded)
	fmt.Fprintf(os.Stdout, "default: %s\n", config.DefaultPath())
	return nil
}

type themesCmd struct {
	*root
	fs *flag.FlagSet
}

func parseThemesCmd(args []string, r *root) (*themesCmd, error) {
	fs := flag.NewFlagSet("themes", flag.ExitOnError)
	cmd := &themesCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *themesCmd) Run() error {
	active := c.themeName
	if active == "" && c.config != nil {
		active = c.config.Theme
	}
	if active == "" {
		active = "default"
	}
	fmt.Fprintln(os.Stdout, "available themes (* marks the active theme):")
	names := theme.Names()
	if c.config != nil {
		for name := range c.config.Themes {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	seen := map[string]bool{}
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		marker := " "
		if strings.EqualFold(name, active) {
			marker = "*"
		}
		fmt.Fprintf(os.Stdout, "%s %s\n", marker, name)
	}
	return nil
}

func (c *themesCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *themesCmd) Template() string {
	return "themes.txt"
}
