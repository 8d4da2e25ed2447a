package main

import (
	"bytes"
	"embed"
	"flag"
	"fmt"
	"log"
	"sync"
	"text/template"
)

//go:embed templates/*.txt
var helpFS embed.FS

var (
	helpOnce sync.Once
	helpTmpl *template.Template
)

func parseHelpTemplates() {
	helpTmpl = template.Must(template.New("").Funcs(map[string]any{
		"flags": func(fs *flag.FlagSet) []flagInfo {
			result := []flagInfo{}
			if fs == nil {
				return result
			}
			fs.VisitAll(func(f *flag.Flag) {
				result = append(result, flagInfo{f.Name, f.DefValue, f.Usage})
			})
			return result
		},
	}).ParseFS(helpFS, "templates/*.txt"))
}

type flagInfo struct {
	Name     string
	DefValue string
	Usage    string
}

type HelpData interface {
	Program() string
	Template() string
	FlagSet() *flag.FlagSet
}

type UsageError struct {
	of  HelpData
	msg string
}

func (e *UsageError) Error() string {
	help, err := e.renderHelp()
	if err != nil {
		return err.Error()
	}
	if e.msg != "" {
		return e.msg + "\n\n" + help
	}
	return help
}

func (e *UsageError) renderHelp() (string, error) {
	helpOnce.Do(parseHelpTemplates)
	var buf bytes.Buffer
	if err := helpTmpl.ExecuteTemplate(&buf, e.of.Template(), e.of); err != nil {
		log.Printf("error rendering help template: %v", err)
		return "", err
	}
	return buf.String(), nil
}

func usageFunc(h HelpData) func() {
	return func() {
		out := flag.CommandLine.Output()
		if fs := h.FlagSet(); fs != nil {
			out = fs.Output()
		}
		fmt.Fprint(out, (&UsageError{of: h}).Error())
	}
}

// helpCmd prints the help for a subcommand, or the root help.
type helpCmd struct {
	*root
	topic string
}

func parseHelpCmd(args []string, r *root) (*helpCmd, error) {
	h := &helpCmd{root: r}
	if len(args) > 0 {
		h.topic = args[0]
	}
	return h, nil
}

func (h *helpCmd) Run() error {
	var of HelpData = h.root
	switch h.topic {
	case "":
	case "annotate":
		a := &annotateCmd{root: h.subcommand(h.topic)}
		a.fs = annotateFlags(a)
		of = a
	case "script":
		s := &scriptCmd{root: h.subcommand(h.topic)}
		s.fs = scriptFlags(s)
		of = s
	case "monitors":
		of = &monitorsCmd{root: h.subcommand(h.topic)}
	case "config":
		of = &configCmd{root: h.subcommand(h.topic)}
	case "version":
		of = &versionCmd{root: h.subcommand(h.topic)}
	default:
		return &UsageError{of: h.root, msg: fmt.Sprintf("unknown help topic %q", h.topic)}
	}
	fmt.Fprint(h.stdout, (&UsageError{of: of}).Error())
	return nil
}
