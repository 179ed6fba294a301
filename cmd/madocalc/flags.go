package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/udisondev/madocalc/internal/buff"
	"github.com/udisondev/madocalc/internal/store"
)

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet("madocalc "+name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return fs
}

// parseFlags maps flag errors to errUsage; the flag package has already
// printed the message.
func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", errUsage, err)
	}
	return nil
}

// choice is a flag.Value over a closed set of names.
type choice[T ~string] struct {
	p     *T
	parse func(string) (T, bool)
	what  string
}

func (c choice[T]) String() string {
	if c.p == nil {
		return ""
	}
	return string(*c.p)
}

func (c choice[T]) Set(s string) error {
	v, ok := c.parse(s)
	if !ok {
		return fmt.Errorf("unknown %s %q", c.what, s)
	}
	*c.p = v
	return nil
}

// listFlag collects a repeatable string flag.
type listFlag []string

func (l *listFlag) String() string { return strings.Join(*l, ",") }

func (l *listFlag) Set(s string) error {
	*l = append(*l, s)
	return nil
}

func joinNames[T any](names []T) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, ", ")
}

// parseAssignments splits key=value pairs.
func parseAssignments(args []string) (map[string]string, error) {
	out := make(map[string]string, len(args))
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		k = strings.TrimSpace(strings.TrimLeft(k, "-"))
		if !ok || k == "" {
			return nil, fmt.Errorf("%w: expected key=value, got %q", errUsage, arg)
		}
		out[k] = v
	}
	return out, nil
}

// setAll assigns values to the flags of fs. Keys already set on the
// command line are skipped so explicit flags win.
func setAll(fs *flag.FlagSet, values map[string]string, explicit map[string]bool) error {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, k := range keys {
		if explicit[k] {
			continue
		}
		if fs.Lookup(k) == nil {
			return fmt.Errorf("unknown input %q", k)
		}
		if err := fs.Set(k, values[k]); err != nil {
			return fmt.Errorf("input %s: %w", k, err)
		}
	}
	return nil
}

func explicitFlags(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}

var errMemoSection = errors.New("memo does not belong to this calculator")

// applyMemos loads each memo ID from one of sections and writes its values
// into fs. Memo values are stored under flag names.
func (a *app) applyMemos(ctx context.Context, fs *flag.FlagSet, ids []string, sections ...store.MemoSection) error {
	if len(ids) == 0 {
		return nil
	}
	explicit := explicitFlags(fs)
	repo := store.NewMemoRepository(a.store)

	for _, id := range ids {
		m, err := findMemo(ctx, repo, id, sections)
		if err != nil {
			return err
		}
		if err := setAll(fs, m.Values, explicit); err != nil {
			return fmt.Errorf("memo %s: %w", m.Name, err)
		}
	}
	return nil
}

func findMemo(ctx context.Context, repo *store.MemoRepository, id string, sections []store.MemoSection) (store.Memo, error) {
	for _, sec := range sections {
		m, err := repo.Get(ctx, sec, id)
		if err == nil {
			return m, nil
		}
		if !errors.Is(err, store.ErrMemoNotFound) {
			return store.Memo{}, err
		}
	}
	return store.Memo{}, fmt.Errorf("%w: %s (sections %v)", errMemoSection, id, sections)
}

// rangeKey links a flag to its entry in the numeric range settings. Buff
// fields are only checked in total mode, where the value is one number.
// Only values the user set, directly or through a memo, are checked.
type rangeKey struct {
	key  string
	buff buff.FieldKey
}

func (a *app) warnRanges(fs *flag.FlagSet, keys map[string]rangeKey) {
	fs.Visit(func(f *flag.Flag) {
		rk, ok := keys[f.Name]
		if !ok {
			return
		}
		if rk.buff != "" && a.modes.Of(rk.buff) != buff.ModeTotal {
			return
		}
		a.cfg.CheckInput(rk.key, f.Value.String())
	})
}
