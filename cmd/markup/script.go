package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/example/markup/internal/imageload"
	"github.com/example/markup/internal/script"
)

// commandList collects repeated -e flags.
type commandList []string

func (c *commandList) String() string { return strings.Join(*c, "; ") }

func (c *commandList) Set(v string) error {
	*c = append(*c, v)
	return nil
}

// scriptCmd drives a headless editor from commands.
type scriptCmd struct {
	*root
	fs    *flag.FlagSet
	exprs commandList
	file  string
}

func (s *scriptCmd) FlagSet() *flag.FlagSet {
	return s.fs
}

func (s *scriptCmd) Template() string {
	return "script.txt"
}

func scriptFlags(s *scriptCmd) *flag.FlagSet {
	fs := flag.NewFlagSet("script", flag.ExitOnError)
	fs.Var(&s.exprs, "e", "command to run; may be repeated")
	fs.StringVar(&s.file, "f", "", "read commands from file instead of stdin")
	return fs
}

func parseScriptCmd(args []string, r *root) (*scriptCmd, error) {
	s := &scriptCmd{root: r}
	s.fs = scriptFlags(s)
	s.fs.Usage = usageFunc(s)
	if err := s.fs.Parse(args); err != nil {
		return nil, err
	}
	if s.fs.NArg() != 0 {
		return nil, &UsageError{of: s}
	}
	if len(s.exprs) > 0 && s.file != "" {
		return nil, &UsageError{of: s, msg: "-e and -f cannot be combined"}
	}
	return s, nil
}

func (s *scriptCmd) Run() error {
	sess, err := script.New(
		script.WithLoader(imageload.New()),
		script.WithExporter(s.exporter()),
		script.WithTheme(s.activeTheme),
		script.WithOutput(s.stdout),
		script.WithEditorOptions(s.config.EditorOptions()...),
	)
	if err != nil {
		return fmt.Errorf("start script session: %w", err)
	}
	if len(s.exprs) > 0 {
		for i, line := range s.exprs {
			done, err := sess.Exec(line)
			if err != nil {
				return fmt.Errorf("-e #%d: %w", i+1, err)
			}
			if done {
				break
			}
		}
		return nil
	}
	var in io.Reader = s.stdin
	if s.file != "" {
		f, err := os.Open(s.file)
		if err != nil {
			return fmt.Errorf("open %s: %w", s.file, err)
		}
		defer f.Close()
		in = f
	}
	return sess.Run(in)
}
