package main

import (
	"flag"
	"fmt"
)

type configCmd struct {
	*root
	fs *flag.FlagSet
}

func (c *configCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *configCmd) Template() string {
	return "config.txt"
}

func parseConfigCmd(args []string, r *root) (*configCmd, error) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	c := &configCmd{root: r, fs: fs}
	fs.Usage = usageFunc(c)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *configCmd) Run() error {
	args := c.fs.Args()
	if len(args) != 1 {
		return &UsageError{of: c}
	}
	switch args[0] {
	case "print":
		fmt.Fprint(c.stdout, c.config.String())
		return nil
	case "save":
		path, err := c.loader.Save(c.config)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.stderr, "Configuration saved to %s\n", path)
		return nil
	case "path":
		fmt.Fprintln(c.stdout, c.loader.SavePath())
		return nil
	default:
		return &UsageError{of: c, msg: fmt.Sprintf("unknown config command: %s", args[0])}
	}
}
