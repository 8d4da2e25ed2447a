package main

import (
	"flag"
	"fmt"
)

type versionCmd struct{ *root }

func (v *versionCmd) FlagSet() *flag.FlagSet { return nil }

func (v *versionCmd) Template() string { return "version.txt" }

func (v *versionCmd) Run() error {
	fmt.Fprintf(v.stdout, "%s version %s", v.program, version)
	if commit != "" {
		fmt.Fprintf(v.stdout, " (%s", commit)
		if date != "" {
			fmt.Fprintf(v.stdout, ", %s", date)
		}
		fmt.Fprint(v.stdout, ")")
	}
	fmt.Fprintln(v.stdout)
	return nil
}
