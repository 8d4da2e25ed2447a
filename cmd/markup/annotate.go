package main

import (
	"flag"

	"github.com/example/markup/internal/appstate"
	"github.com/example/markup/internal/render"
)

// runApp opens the window. Tests replace it to inspect the configured state.
var runApp = func(st *appstate.AppState) { st.Run() }

// annotateCmd opens the editor window on an optional background source.
type annotateCmd struct {
	*root
	fs     *flag.FlagSet
	source string
	output string
	shadow bool
	width  int
	height int
}

func (a *annotateCmd) FlagSet() *flag.FlagSet {
	return a.fs
}

func (a *annotateCmd) Template() string {
	return "annotate.txt"
}

func annotateFlags(a *annotateCmd) *flag.FlagSet {
	fs := flag.NewFlagSet("annotate", flag.ExitOnError)
	fs.StringVar(&a.source, "file", "", "image to annotate; also clipboard: or screen:[OPTIONS]")
	fs.StringVar(&a.output, "output", "", "path written by save (default from config, else "+appstate.DefaultOutput+")")
	fs.BoolVar(&a.shadow, "shadow", false, "add a drop shadow to saved images")
	fs.IntVar(&a.width, "width", 1024, "initial window width")
	fs.IntVar(&a.height, "height", 768, "initial window height")
	return fs
}

func parseAnnotateCmd(args []string, r *root) (*annotateCmd, error) {
	a := &annotateCmd{root: r}
	a.fs = annotateFlags(a)
	a.fs.Usage = usageFunc(a)
	if err := a.fs.Parse(args); err != nil {
		return nil, err
	}
	switch a.fs.NArg() {
	case 0:
	case 1:
		if a.source != "" {
			return nil, &UsageError{of: a, msg: "give the source either with -file or as an argument"}
		}
		a.source = a.fs.Arg(0)
	default:
		return nil, &UsageError{of: a}
	}
	if a.width <= 0 || a.height <= 0 {
		return nil, &UsageError{of: a, msg: "window size must be positive"}
	}
	if a.output == "" {
		a.output = r.config.Output
	}
	return a, nil
}

func (a *annotateCmd) options() []appstate.Option {
	opts := []appstate.Option{
		appstate.WithTheme(a.activeTheme),
		appstate.WithEditorOptions(a.config.EditorOptions()...),
		appstate.WithExporter(a.exporter()),
		appstate.WithSource(a.source),
		appstate.WithOutput(a.output),
		appstate.WithSize(a.width, a.height),
	}
	if a.shadow {
		s := render.DefaultShadowOptions()
		opts = append(opts, appstate.WithShadow(&s))
	}
	return opts
}

func (a *annotateCmd) Run() error {
	runApp(appstate.New(a.options()...))
	return nil
}
