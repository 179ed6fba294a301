// Command madocalc runs the damage, recovery, status and action value
// calculators from the command line.
//
// Usage:
//
//	madocalc damage -base-attack 2500 -skill-multiplier 180
//	madocalc av -solve speed -target 41
//	madocalc batch -xlsx report.xlsx scenarios.yaml
//	madocalc --list
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/udisondev/madocalc/internal/buff"
	"github.com/udisondev/madocalc/internal/config"
	"github.com/udisondev/madocalc/internal/store"
)

var errUsage = errors.New("usage")

// app is the state shared by every command.
type app struct {
	cfg   config.Config
	modes buff.Modes
	store *store.Store
	out   io.Writer
}

type command struct {
	name string
	desc string
	run  func(ctx context.Context, a *app, args []string) error
}

var commands []command

func registerCommand(name, desc string, fn func(ctx context.Context, a *app, args []string) error) {
	commands = append(commands, command{name: name, desc: desc, run: fn})
}

func init() {
	registerCommand("damage", "Final damage and reverse solving of any damage input", runDamage)
	registerCommand("hp", "HP recovery amount", runHP)
	registerCommand("mp", "MP recovery per action or from a skill effect", runMP)
	registerCommand("status", "Aggregated HP/Attack/Defense/Speed with optional comparison", runStatus)
	registerCommand("av", "Initial and modified action value, with reverse solving", runAV)
	registerCommand("break", "Break bonus by role", runBreak)
	registerCommand("convert", "Rewrite a buff value between split and total mode", runConvert)
	registerCommand("preset", "List, save or delete custom defense presets", runPreset)
	registerCommand("memo", "List, save or delete section memos", runMemo)
	registerCommand("batch", "Evaluate a scenario file concurrently", runBatch)
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.LoadFromEnv(config.DefaultPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: config.ParseLogLevel(cfg.LogLevel),
	})))
	slog.Debug("config loaded", "log_level", cfg.LogLevel, "store", cfg.StorePath)

	a, err := newApp(cfg, os.Stdout)
	if err != nil {
		return err
	}
	return execute(ctx, a, os.Args[1:])
}

func newApp(cfg config.Config, out io.Writer) (*app, error) {
	modes, err := cfg.BuffModes()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	st, err := store.Open(cfg.StorePath)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	return &app{cfg: cfg, modes: modes, store: st, out: out}, nil
}

func execute(ctx context.Context, a *app, args []string) error {
	if len(args) == 0 {
		printUsage(os.Stderr)
		return errUsage
	}
	if args[0] == "--list" || args[0] == "-h" || args[0] == "help" {
		printList(a.out)
		return nil
	}

	for _, c := range commands {
		if c.name == args[0] {
			err := c.run(ctx, a, args[1:])
			if err != nil && !errors.Is(err, errUsage) {
				return fmt.Errorf("%s: %w", c.name, err)
			}
			return err
		}
	}

	fmt.Fprintf(os.Stderr, "unknown command: %s\n", args[0])
	printList(os.Stderr)
	return errUsage
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: madocalc <command> [flags]")
	fmt.Fprintln(w, "       madocalc --list")
}

func printList(w io.Writer) {
	names := make([]string, 0, len(commands))
	maxLen := 0
	byName := make(map[string]command, len(commands))
	for _, c := range commands {
		names = append(names, c.name)
		byName[c.name] = c
		maxLen = max(maxLen, len(c.name))
	}
	sort.Strings(names)

	fmt.Fprintln(w, "Available commands:")
	for _, name := range names {
		padding := strings.Repeat(" ", maxLen-len(name)+2)
		fmt.Fprintf(w, "  %s%s%s\n", name, padding, byName[name].desc)
	}
}
