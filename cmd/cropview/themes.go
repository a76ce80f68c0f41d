package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/example/cropview/internal/theme"
)

type themesCmd struct {
	*root
	fs *flag.FlagSet
}

func (c *themesCmd) Program() string        { return c.root.subcommand("themes") }
func (c *themesCmd) FlagSet() *flag.FlagSet { return c.fs }

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
	loader := theme.NewLoader(c.root.config.Themes)
	names := loader.Names()
	if len(names) == 0 {
		fmt.Fprintln(os.Stdout, "no themes available")
		return nil
	}
	active := ""
	if c.root.activeTheme != nil {
		active = c.root.activeTheme.Name
	}
	fmt.Fprintln(os.Stdout, "available themes (* marks the active theme):")
	for _, name := range names {
		t, err := loader.Load(name)
		if err != nil {
			fmt.Fprintf(os.Stdout, "  %-12s (%v)\n", name, err)
			continue
		}
		marker := " "
		if t.Name == active {
			marker = "*"
		}
		col := t.OutlineFocused
		block := fmt.Sprintf("\x1b[48;2;%d;%d;%dm  \x1b[0m", col.R, col.G, col.B)
		fmt.Fprintf(os.Stdout, "%s %-12s %s %s\n", marker, name, theme.Hex(col), block)
	}
	return nil
}
