package main

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/udisondev/madocalc/internal/store"
)

func subcommand(args []string) (string, []string) {
	if len(args) == 0 {
		return "list", nil
	}
	return args[0], args[1:]
}

func runPreset(ctx context.Context, a *app, args []string) error {
	repo := store.NewPresetRepository(a.store)
	sub, rest := subcommand(args)

	switch sub {
	case "list":
		catalog, err := repo.Catalog(ctx)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
		for _, p := range catalog.All() {
			mark := ""
			if p.Custom {
				mark = "custom"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Defense, mark)
		}
		return tw.Flush()

	case "save":
		fs := newFlagSet("preset save")
		name := fs.String("name", "", "preset name")
		value := fs.String("value", "", "base defense")
		id := fs.String("id", "", "ID of the preset to edit")
		if err := parseFlags(fs, rest); err != nil {
			return err
		}
		p, err := repo.Save(ctx, *name, *value, *id)
		if err != nil {
			return err
		}
		slog.Info("preset saved", "id", p.ID, "name", p.Name, "value", p.Defense)
		fmt.Fprintln(a.out, p.ID)
		return nil

	case "delete":
		fs := newFlagSet("preset delete")
		id := fs.String("id", "", "preset ID")
		if err := parseFlags(fs, rest); err != nil {
			return err
		}
		if err := repo.Delete(ctx, *id); err != nil {
			return err
		}
		slog.Info("preset deleted", "id", *id)
		return nil
	}
	return fmt.Errorf("%w: preset list|save|delete, got %q", errUsage, sub)
}

func runMemo(ctx context.Context, a *app, args []string) error {
	repo := store.NewMemoRepository(a.store)
	sub, rest := subcommand(args)

	if sub == "sections" {
		for _, s := range store.MemoSections() {
			fmt.Fprintln(a.out, s)
		}
		return nil
	}

	fs := newFlagSet("memo " + sub)
	section := fs.String("section", "", "memo section, see 'memo sections'")
	name := fs.String("name", "", "memo name (save)")
	id := fs.String("id", "", "memo ID (delete)")
	if err := parseFlags(fs, rest); err != nil {
		return err
	}
	sec, err := store.ParseMemoSection(*section)
	if err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}

	switch sub {
	case "list":
		memos, err := repo.List(ctx, sec)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
		for _, m := range memos {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", m.ID, m.Name, formatValues(m.Values))
		}
		return tw.Flush()

	case "save":
		values, err := parseAssignments(fs.Args())
		if err != nil {
			return err
		}
		m, err := repo.Save(ctx, sec, *name, values)
		if err != nil {
			return err
		}
		slog.Info("memo saved", "section", sec, "id", m.ID, "name", m.Name)
		fmt.Fprintln(a.out, m.ID)
		return nil

	case "delete":
		if err := repo.Delete(ctx, sec, *id); err != nil {
			return err
		}
		slog.Info("memo deleted", "section", sec, "id", *id)
		return nil
	}
	return fmt.Errorf("%w: memo sections|list|save|delete, got %q", errUsage, sub)
}

func formatValues(values map[string]string) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + values[k]
	}
	return strings.Join(parts, " ")
}
