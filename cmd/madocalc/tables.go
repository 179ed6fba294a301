package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/udisondev/madocalc/internal/buff"
	"github.com/udisondev/madocalc/internal/data"
)

func runBreak(_ context.Context, a *app, args []string) error {
	fs := newFlagSet("break")
	role := fs.String("role", "", "show one role only")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	roles := data.Roles()
	if *role != "" {
		r, ok := data.ParseRole(*role)
		if !ok {
			return fmt.Errorf("%w: unknown role %q", errUsage, *role)
		}
		roles = []data.Role{r}
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	for _, r := range roles {
		fmt.Fprintf(tw, "%s\t%v\n", r, data.BreakBonusByRole[r])
	}
	return tw.Flush()
}

// runConvert rewrites one buff value for a mode switch, keeping its
// effective coefficient.
func runConvert(_ context.Context, a *app, args []string) error {
	fs := newFlagSet("convert")
	field := fs.String("field", "", "buff field key: "+joinNames(buff.Keys()))
	from := fs.String("from", "", "current mode; defaults to the configured mode")
	to := fs.String("to", "", "split or total")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: convert takes exactly one value", errUsage)
	}

	key := buff.FieldKey(*field)
	if !key.Valid() {
		return fmt.Errorf("%w: unknown buff field %q", errUsage, *field)
	}
	oldMode := a.modes.Of(key)
	if *from != "" {
		m, ok := buff.ParseMode(*from)
		if !ok {
			return fmt.Errorf("%w: invalid mode %q", errUsage, *from)
		}
		oldMode = m
	}
	newMode, ok := buff.ParseMode(*to)
	if !ok {
		return fmt.Errorf("%w: invalid mode %q", errUsage, *to)
	}

	raw := fs.Arg(0)
	out := buff.RewriteOnModeChange(oldMode, newMode, key.Semantics(), raw)
	fmt.Fprintln(a.out, out)
	return nil
}
