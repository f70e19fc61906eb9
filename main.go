package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"
)

const description = `Render styled terminal text.

Text fragments written as @style:text take a named style from the theme.
If no text is given, reads from stdin (pipe).`

// CLI is the root command line.
type CLI struct {
	Debug bool `short:"d" env:"AFORMAT_DEBUG" help:"Enable debug logging (dumps rendered escapes)."`

	Render  RenderCmd  `cmd:"" default:"withargs" help:"Render styled text (default command)."`
	Catalog CatalogCmd `cmd:"" help:"List every escape of the catalog."`
	Styles  StylesCmd  `cmd:"" help:"List the styles of the theme."`
	Demo    DemoCmd    `cmd:"" help:"Show nested style restoration."`
}

// runContext carries the process environment to the commands.
type runContext struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger

	// stdinPiped is true when stdin is not a terminal.
	stdinPiped bool
	// stdoutTerminal is true when stdout is a terminal.
	stdoutTerminal bool
	getenv         func(string) string
	newScreen      func() (tcell.Screen, error)
}

func main() {
	rc := &runContext{
		stdin:          os.Stdin,
		stdout:         os.Stdout,
		stderr:         os.Stderr,
		stdinPiped:     !term.IsTerminal(int(os.Stdin.Fd())),
		stdoutTerminal: term.IsTerminal(int(os.Stdout.Fd())),
		getenv:         os.Getenv,
		newScreen:      tcell.NewScreen,
	}
	os.Exit(run(os.Args[1:], rc))
}

func run(args []string, rc *runContext) int {
	var cli CLI

	exited := false
	exitCode := 0
	parser, err := kong.New(&cli,
		kong.Name("aformat"),
		kong.Description(description),
		kong.Writers(rc.stdout, rc.stderr),
		kong.Exit(func(code int) {
			exited = true
			exitCode = code
		}),
	)
	if err != nil {
		fmt.Fprintf(rc.stderr, "Error building command line: %v\n", err)
		return 1
	}

	ctx, err := parser.Parse(args)
	if exited {
		return exitCode
	}
	if err != nil {
		fmt.Fprintf(rc.stderr, "Error: %v\n", err)
		return 1
	}

	rc.logger = newLogger(rc.stderr, cli.Debug)

	if err := ctx.Run(rc); err != nil {
		rc.logger.Debug("command failed", "command", ctx.Command(), "error", err)
		fmt.Fprintf(rc.stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
